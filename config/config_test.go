package config

import (
	"strings"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
)

func parse(t *testing.T, environment map[string]string) (*Config, error) {
	t.Helper()
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		t.Fatalf("error parsing environment: %v", err)
	}
	return cfg, cfg.Validate()
}

func TestDefaults(t *testing.T) {
	cfg, err := parse(t, map[string]string{})
	if err != nil {
		t.Fatalf("defaults should be valid, got: %v", err)
	}

	want := Config{
		Port:              5000,
		Database:          "matches.db",
		DefaultServer:     "br",
		DefaultMatchCount: 10,
		FetchWorkers:      4,
		UpstreamTimeout:   time.Minute,
		RequestTimeout:    2 * time.Minute,
		LogLevel:          "info",
		LogFormat:         "text",
	}
	if *cfg != want {
		t.Errorf("expected %+v, got %+v", want, *cfg)
	}
}

func TestOverrides(t *testing.T) {
	cfg, err := parse(t, map[string]string{
		"PORT":                "8080",
		"RIOT_API_KEY":        "RGAPI-123",
		"DATABASE":            "postgres://localhost/lolstats",
		"DEFAULT_SERVER":      "EUW",
		"DEFAULT_MATCH_COUNT": "20",
		"FETCH_WORKERS":       "8",
		"UPSTREAM_TIMEOUT":    "30s",
		"LOG_FORMAT":          "json",
	})
	if err != nil {
		t.Fatalf("config should be valid, got: %v", err)
	}
	if cfg.Port != 8080 || cfg.RiotAPIKey != "RGAPI-123" || cfg.DefaultServer != "EUW" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.UpstreamTimeout != 30*time.Second || cfg.FetchWorkers != 8 || cfg.DefaultMatchCount != 20 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		env     map[string]string
		wantErr string
	}{
		"unknown server": {env: map[string]string{"DEFAULT_SERVER": "xx"}, wantErr: "DEFAULT_SERVER"},
		"zero count":     {env: map[string]string{"DEFAULT_MATCH_COUNT": "0"}, wantErr: "DEFAULT_MATCH_COUNT"},
		"huge count":     {env: map[string]string{"DEFAULT_MATCH_COUNT": "500"}, wantErr: "DEFAULT_MATCH_COUNT"},
		"no workers":     {env: map[string]string{"FETCH_WORKERS": "0"}, wantErr: "FETCH_WORKERS"},
		"bad port":       {env: map[string]string{"PORT": "70000"}, wantErr: "PORT"},
		"bad format":     {env: map[string]string{"LOG_FORMAT": "xml"}, wantErr: "LOG_FORMAT"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parse(t, tc.env)
			if err == nil {
				t.Fatalf("expected an error mentioning %s", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected an error mentioning %s, got: %v", tc.wantErr, err)
			}
		})
	}
}
