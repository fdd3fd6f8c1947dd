package cli

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/hough-lines/internal/config"
	"github.com/ironsheep/hough-lines/internal/detection"
)

// Report is the YAML document written by `hough lines --report`.
type Report struct {
	Source string                 `yaml:"source"`
	Width  int                    `yaml:"width"`
	Height int                    `yaml:"height"`
	Config config.Config          `yaml:"config"`
	Result *detection.LinesResult `yaml:"result"`
}

// WriteReport writes a report to a YAML file
func WriteReport(report *Report, path string) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadReport reads a report from a YAML file
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var report Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, err
	}

	return &report, nil
}
