// Package cli implements the hough batch command line.
package cli

import (
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/hough-lines/internal/config"
	"github.com/ironsheep/hough-lines/internal/detection"
	"github.com/ironsheep/hough-lines/internal/hough"
	"github.com/ironsheep/hough-lines/internal/imaging"
	"github.com/ironsheep/hough-lines/internal/logger"
)

// Version is reported by --version.
var Version = "dev"

// app holds the state shared by the subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	cache   *imaging.ImageCache

	detectEdges bool
	blurRadius  float64
}

// flagKeys maps persistent flags to configuration keys.
var flagKeys = map[string]string{
	"angle-bins":    "angle_bins",
	"distance-bins": "distance_bins",
	"kernel-size":   "kernel_size",
	"threshold":     "threshold",
	"edge-level":    "edge_level",
	"workers":       "workers",
	"range-policy":  "range_policy",
	"line-color":    "line_color",
	"normal-color":  "normal_color",
	"line-width":    "line_width",
	"log-level":     "log_level",
	"log-format":    "log_format",
}

// NewRootCmd builds the hough command tree. Each call returns an independent
// tree with its own configuration state.
func NewRootCmd() *cobra.Command {
	a := &app{
		v:     viper.New(),
		cache: imaging.NewImageCache(),
	}

	rootCmd := &cobra.Command{
		Use:   "hough",
		Short: "Straight-line detection with the Hough transform",
		Long: `Detect straight lines in edge images with the Hough transform.

Each subcommand runs the pipeline up to one stage and writes that stage's
view of the input as a PNG: the accumulator, its peaks, or the detected
lines drawn over the source image.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	def := config.Default()
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is $HOME/.hough.yaml)")
	pf.Int("angle-bins", def.AngleBins, "number of angle bins covering [0, pi)")
	pf.Int("distance-bins", def.DistanceBins, "number of distance bins")
	pf.Int("kernel-size", def.KernelSize, "side length of the non-maximum suppression window")
	pf.Float64("threshold", def.PeakThreshold, "fraction of full intensity a peak must exceed")
	pf.Int("edge-level", def.EdgeLevel, "luminance (1-255) at or above which a pixel is an edge")
	pf.Int("workers", def.Workers, "voting goroutines (0 = one per CPU)")
	pf.String("range-policy", def.RangePolicy, "strict or discard")
	pf.String("line-color", def.LineColor, "hex color of drawn lines")
	pf.String("normal-color", def.NormalColor, "hex color of drawn normals")
	pf.Float64("line-width", def.LineWidth, "stroke width of drawn lines")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text or json)")
	pf.BoolVar(&a.detectEdges, "detect-edges", false, "run a Sobel filter first (for photographs)")
	pf.Float64Var(&a.blurRadius, "blur", 0, "Gaussian blur radius applied before --detect-edges")

	for flag, key := range flagKeys {
		a.v.BindPFlag(key, pf.Lookup(flag))
	}

	rootCmd.AddCommand(
		a.accumulatorCmd(),
		a.peaksCmd(),
		a.linesCmd(),
		a.emptyCmd(),
	)
	return rootCmd
}

// Execute runs the command line and exits with status 1 on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig merges, from lowest to highest precedence, the defaults, the
// config file, HOUGH_* environment variables and explicit flags.
func (a *app) initConfig() error {
	if a.cfgFile != "" {
		// Use config file from the flag.
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}

		// Search config in home directory with name ".hough" (without extension).
		a.v.AddConfigPath(home)
		a.v.SetConfigName(".hough")
	}

	a.v.SetEnvPrefix("HOUGH")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err == nil {
		logger.WithField("file", a.v.ConfigFileUsed()).Info("using config file")
	} else if a.cfgFile != "" {
		return fmt.Errorf("failed to read config file %s: %w", a.cfgFile, err)
	}

	logger.Configure(a.v.GetString("log_level"), a.v.GetString("log_format"))

	cfg := config.Default()
	if err := a.v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// prepare builds the pipeline and loads the edge image of in.
func (a *app) prepare(in string) (*detection.Pipeline, *hough.EdgeImage, error) {
	p, err := detection.NewPipeline(a.cfg)
	if err != nil {
		return nil, nil, err
	}

	if !a.detectEdges {
		edges, err := a.cache.LoadEdges(in, a.cfg.EdgeLevel)
		if err != nil {
			return nil, nil, err
		}
		return p, edges, nil
	}

	img, err := a.cache.Load(in)
	if err != nil {
		return nil, nil, err
	}
	edges, err := imaging.DetectEdges(img, a.cfg.EdgeLevel, a.blurRadius)
	if err != nil {
		return nil, nil, err
	}
	return p, edges, nil
}
