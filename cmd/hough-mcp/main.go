package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/hough-lines/internal/config"
	"github.com/ironsheep/hough-lines/internal/logger"
	"github.com/ironsheep/hough-lines/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("hough-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("hough-mcp - MCP server for Hough line detection")
			fmt.Println()
			fmt.Println("Usage: hough-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  HOUGH_LOG_LEVEL=debug        Log level (debug, info, warn, error)")
			fmt.Println("  HOUGH_LOG_FORMAT=json        Log as JSON instead of text")
			fmt.Println("  HOUGH_ANGLE_BINS=360         Default angle bins")
			fmt.Println("  HOUGH_DISTANCE_BINS=500      Default distance bins")
			fmt.Println("  HOUGH_KERNEL_SIZE=21         Default suppression window")
			fmt.Println("  HOUGH_THRESHOLD=0.6          Default peak threshold")
			fmt.Println("  HOUGH_EDGE_LEVEL=1           Default edge level")
			fmt.Println("  HOUGH_RANGE_POLICY=strict    strict or discard")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client.")
			return
		}
	}

	// Logs go to stderr; stdout is for MCP protocol
	logger.Configure(os.Getenv("HOUGH_LOG_LEVEL"), os.Getenv("HOUGH_LOG_FORMAT"))

	cfg, err := config.FromEnv()
	if err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	logger.WithField("version", Version).
		WithField("build_time", BuildTime).
		WithField("commit", GitCommit).
		Info("Hough MCP server starting")

	if err := server.New(cfg).Run(); err != nil {
		logger.WithError(err).Fatal("server error")
	}
}
