package config

import (
	"flag"
	"fmt"
	"net/url"
	"time"
)

// Config holds all runtime configuration parameters
type Config struct {
	SeedURL        string
	OutputPath     string
	CSVPath        string
	DBPath         string
	MetricsPath    string
	MaxDepth       int
	TimeoutSeconds int
	ImageWorkers   int
}

// FromFlags parses command line arguments into a validated Config
func FromFlags(name string, args []string) (*Config, error) {
	var cfg Config

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.SeedURL, "url", "", "seed URL to start scanning (required)")
	fs.StringVar(&cfg.OutputPath, "output", "", "HTML report output path")
	fs.StringVar(&cfg.CSVPath, "csv", "", "optional CSV export path for broken assets")
	fs.StringVar(&cfg.DBPath, "db", "", "optional sqlite database for findings history")
	fs.StringVar(&cfg.MetricsPath, "metrics", "", "optional JSON metrics output path")
	fs.IntVar(&cfg.MaxDepth, "depth", 1, "max BFS depth from the seed page")
	fs.IntVar(&cfg.TimeoutSeconds, "timeout", 0, "per-request timeout in seconds")
	fs.IntVar(&cfg.ImageWorkers, "workers", 0, "max concurrent image checks per page")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Timeout returns the per-request timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// applyDefaults sets default values for unspecified fields
func applyDefaults(cfg *Config) {
	if cfg.OutputPath == "" {
		cfg.OutputPath = "report.html"
	}
	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = 5
	}
	if cfg.ImageWorkers == 0 {
		cfg.ImageWorkers = 20
	}
}

// validate checks that required fields are present and values are sensible
func validate(cfg *Config) error {
	if cfg.SeedURL == "" {
		return fmt.Errorf("url is required")
	}

	parsed, err := url.Parse(cfg.SeedURL)
	if err != nil {
		return fmt.Errorf("unparsable seed URL %q: %w", cfg.SeedURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("seed URL scheme must be http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("seed URL %q has no host", cfg.SeedURL)
	}

	if cfg.MaxDepth < 0 {
		return fmt.Errorf("depth must be >= 0")
	}
	if cfg.TimeoutSeconds < 1 {
		return fmt.Errorf("timeout must be >= 1")
	}
	if cfg.ImageWorkers < 1 {
		return fmt.Errorf("workers must be >= 1")
	}
	return nil
}
