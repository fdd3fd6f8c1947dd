package detection

import (
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/hough-lines/internal/hough"
)

// AccumulatorStats summarizes the raw vote counts of an accumulator.
// MeanVotes and StdDevVotes are taken over non-zero cells only.
type AccumulatorStats struct {
	MaxVotes     int     `json:"max_votes" yaml:"max_votes"`
	TotalVotes   int     `json:"total_votes" yaml:"total_votes"`
	NonZeroCells int     `json:"non_zero_cells" yaml:"non_zero_cells"`
	MeanVotes    float64 `json:"mean_votes" yaml:"mean_votes"`
	StdDevVotes  float64 `json:"std_dev_votes" yaml:"std_dev_votes"`
	Dropped      int     `json:"dropped" yaml:"dropped"`
}

func computeStats(acc *hough.Accumulator) AccumulatorStats {
	votes := make([]float64, 0, len(acc.Votes)/8)
	for _, v := range acc.Votes {
		if v > 0 {
			votes = append(votes, float64(v))
		}
	}

	s := AccumulatorStats{
		MaxVotes:     int(acc.Max()),
		TotalVotes:   int(acc.Total()),
		NonZeroCells: len(votes),
		Dropped:      acc.Dropped,
	}
	switch len(votes) {
	case 0:
	case 1:
		s.MeanVotes = votes[0]
	default:
		s.MeanVotes, s.StdDevVotes = stat.MeanStdDev(votes, nil)
	}
	return s
}
