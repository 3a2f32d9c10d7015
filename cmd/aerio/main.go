// Command aerio prepares a directory of scanned aerial photographs for
// photogrammetric triangulation: crops the collection to a common size,
// matches histograms, locates fiducial marks, and rasterizes exclusion
// masks for borders and printed labels.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cartolab/aerio/internal/config"
	"github.com/cartolab/aerio/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML pipeline configuration")
	inputDir := flag.String("input", "", "Directory of scanned photographs (overrides config)")
	outputDir := flag.String("output", "", "Directory for masks and processed photos (overrides config)")
	labelDir := flag.String("labels", "", "Directory of per-photo label coordinate JSON files (overrides config)")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("aerio %s (commit %s)\n", Version, GitCommit)
		return
	}

	// Optional .env for local runs; environment beats file values.
	_ = godotenv.Load()
	if *configPath == "" {
		*configPath = os.Getenv("AERIO_CONFIG")
	}

	logger := newLogger(os.Getenv("AERIO_LOG_LEVEL"))
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if *inputDir != "" {
		cfg.Input.Dir = *inputDir
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *labelDir != "" {
		cfg.Labels.Dir = *labelDir
	}

	if err := pipeline.New(cfg, log).Run(); err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}
}

func newLogger(level string) *zap.Logger {
	zc := zap.NewProductionConfig()
	if level == "debug" {
		zc = zap.NewDevelopmentConfig()
	}
	logger, err := zc.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
