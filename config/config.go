package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/mww/lolstats/model"
)

type Config struct {
	Port       int    `env:"PORT" envDefault:"5000"`
	RiotAPIKey string `env:"RIOT_API_KEY" envDefault:""`
	// A SQLite file path, or a postgres:// URL.
	Database string `env:"DATABASE" envDefault:"matches.db"`

	DefaultServer     string        `env:"DEFAULT_SERVER" envDefault:"br"`
	DefaultMatchCount int           `env:"DEFAULT_MATCH_COUNT" envDefault:"10"`
	FetchWorkers      int           `env:"FETCH_WORKERS" envDefault:"4"`
	UpstreamTimeout   time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"1m"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT" envDefault:"2m"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

func ReadEnvConfig(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}
	if c.Database == "" {
		errs = append(errs, errors.New("DATABASE must not be empty"))
	}
	if model.ParseRegion(c.DefaultServer) == nil {
		errs = append(errs, fmt.Errorf("DEFAULT_SERVER %q is not a known server", c.DefaultServer))
	}
	if c.DefaultMatchCount < 1 || c.DefaultMatchCount > 100 {
		errs = append(errs, fmt.Errorf("DEFAULT_MATCH_COUNT %d must be between 1 and 100", c.DefaultMatchCount))
	}
	if c.FetchWorkers < 1 {
		errs = append(errs, fmt.Errorf("FETCH_WORKERS %d must be positive", c.FetchWorkers))
	}
	if c.UpstreamTimeout <= 0 {
		errs = append(errs, fmt.Errorf("UPSTREAM_TIMEOUT %v must be positive", c.UpstreamTimeout))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT %v must be positive", c.RequestTimeout))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q must be text or json", c.LogFormat))
	}
	return errors.Join(errs...)
}
