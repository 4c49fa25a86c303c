package config

import (
	"os"
	"testing"
	"time"

	"audimatch/internal/constants"
)

func TestLoad(t *testing.T) {
	cfg := Load()

	if cfg.Port != constants.DefaultPort {
		t.Errorf("Expected Port to be %s, got %s", constants.DefaultPort, cfg.Port)
	}
	if cfg.CachePath != constants.DefaultCachePath {
		t.Errorf("Expected CachePath to be %s, got %s", constants.DefaultCachePath, cfg.CachePath)
	}
	if cfg.CacheTTL != constants.DefaultCacheTTL {
		t.Errorf("Expected CacheTTL to be %s, got %s", constants.DefaultCacheTTL, cfg.CacheTTL)
	}
	if cfg.Region != constants.DefaultRegion {
		t.Errorf("Expected Region to be %s, got %s", constants.DefaultRegion, cfg.Region)
	}
	if !cfg.AuthorsAsMoods {
		t.Error("Expected AuthorsAsMoods to default to true")
	}
	if cfg.CoverPolicy != CoverMissing {
		t.Errorf("Expected CoverPolicy to be %s, got %s", CoverMissing, cfg.CoverPolicy)
	}
}

func TestLoadWithEnvVars(t *testing.T) {
	os.Setenv("PORT", "9090")
	os.Setenv("AUDIMATCH_REGION", "UK")
	os.Setenv("CACHE_TTL", "48h")
	os.Setenv("SIMPLIFY_TITLES", "true")
	os.Setenv("COVER_POLICY", "always")
	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("AUDIMATCH_REGION")
		os.Unsetenv("CACHE_TTL")
		os.Unsetenv("SIMPLIFY_TITLES")
		os.Unsetenv("COVER_POLICY")
	}()

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Expected Port to be 9090, got %s", cfg.Port)
	}
	if cfg.Region != "uk" {
		t.Errorf("Expected Region to be lowercased to uk, got %s", cfg.Region)
	}
	if cfg.CacheTTL != 48*time.Hour {
		t.Errorf("Expected CacheTTL to be 48h, got %s", cfg.CacheTTL)
	}
	if !cfg.SimplifyTitles {
		t.Error("Expected SimplifyTitles to be true")
	}
	if cfg.CoverPolicy != CoverAlways {
		t.Errorf("Expected CoverPolicy to be always, got %s", cfg.CoverPolicy)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:        "8271",
			CachePath:   "audimatch.db",
			CacheTTL:    time.Hour,
			Region:      "us",
			LogLevel:    "info",
			LogFormat:   "text",
			CoverPolicy: CoverMissing,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"empty port", func(c *Config) { c.Port = "" }, true},
		{"non-numeric port", func(c *Config) { c.Port = "abc" }, true},
		{"port out of range", func(c *Config) { c.Port = "70000" }, true},
		{"empty cache path", func(c *Config) { c.CachePath = "" }, true},
		{"negative ttl", func(c *Config) { c.CacheTTL = -time.Hour }, true},
		{"unknown region", func(c *Config) { c.Region = "zz" }, true},
		{"unknown cover policy", func(c *Config) { c.CoverPolicy = "sometimes" }, true},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
