// internal/config/config.go
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Company struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`

	// VCPortfolio marks an Ashby umbrella board aggregating postings for
	// a whole portfolio of companies. Ignored for other sources.
	VCPortfolio bool `yaml:"vc_portfolio"`
}

type SourceConfig struct {
	Enabled   bool      `yaml:"enabled"`
	Companies []Company `yaml:"companies"`
}

type LeverConfig struct {
	SourceConfig `yaml:",inline"`

	// MaxAgeDays drops postings older than this at extract time.
	MaxAgeDays int `yaml:"max_age_days"`
}

type Config struct {
	App struct {
		DataDir   string `yaml:"data_dir"`
		OutputDir string `yaml:"output_dir"`
	} `yaml:"app"`

	Harvest struct {
		MaxConcurrent         int     `yaml:"max_concurrent"`
		RunTimeoutSeconds     int     `yaml:"run_timeout_seconds"`
		RequestTimeoutSeconds int     `yaml:"request_timeout_seconds"`
		RequestsPerSecond     float64 `yaml:"requests_per_second"`
		Burst                 int     `yaml:"burst"`
	} `yaml:"harvest"`

	Retry struct {
		MaxAttempts int `yaml:"max_attempts"`
		BaseDelayMS int `yaml:"base_delay_ms"`
	} `yaml:"retry"`

	Filters struct {
		Keywords        []string `yaml:"keywords"`
		UnknownLocation string   `yaml:"unknown_location"` // us | non-us
		MaxAgeDays      int      `yaml:"max_age_days"`     // 0 disables
	} `yaml:"filters"`

	Seen struct {
		PruneAfterDays int `yaml:"prune_after_days"` // 0 disables
	} `yaml:"seen"`

	Sources struct {
		Ashby      SourceConfig `yaml:"ashby"`
		Greenhouse SourceConfig `yaml:"greenhouse"`
		Lever      LeverConfig  `yaml:"lever"`
	} `yaml:"sources"`

	Export struct {
		CSV    bool `yaml:"csv"`
		Notion struct {
			Enabled    bool   `yaml:"enabled"`
			DatabaseID string `yaml:"database_id"`
		} `yaml:"notion"`
	} `yaml:"export"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Default is the config a fresh install starts from when no packaged
// config.yml is available to copy.
func Default() Config {
	var cfg Config
	cfg.Harvest.MaxConcurrent = 8
	cfg.Harvest.RunTimeoutSeconds = 300
	cfg.Harvest.RequestTimeoutSeconds = 20
	cfg.Harvest.RequestsPerSecond = 2
	cfg.Harvest.Burst = 4
	cfg.Retry.MaxAttempts = 3
	cfg.Retry.BaseDelayMS = 1000
	cfg.Filters.UnknownLocation = "non-us"
	cfg.Filters.MaxAgeDays = 365
	cfg.Seen.PruneAfterDays = 90
	cfg.Sources.Ashby.Enabled = true
	cfg.Sources.Greenhouse.Enabled = true
	cfg.Sources.Lever.Enabled = true
	cfg.Export.CSV = true
	return cfg
}

// UnknownLocationIsUS reports the policy for empty or unrecognized
// location strings.
func (c Config) UnknownLocationIsUS() bool {
	return c.Filters.UnknownLocation == "us"
}

func (c Config) RunTimeout() time.Duration {
	return time.Duration(c.Harvest.RunTimeoutSeconds) * time.Second
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Harvest.RequestTimeoutSeconds) * time.Second
}

func (c Config) RetryBaseDelay() time.Duration {
	return time.Duration(c.Retry.BaseDelayMS) * time.Millisecond
}
