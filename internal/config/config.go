package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"audimatch/internal/constants"
	"audimatch/internal/domain"
)

// Cover art policies
const (
	CoverAlways  = "always"  // always replace the stored cover
	CoverMissing = "missing" // download but keep an existing cover
	CoverNever   = "never"
)

// Config holds all application configuration
type Config struct {
	Port      string
	CachePath string
	CacheTTL  time.Duration
	Region    string
	LogLevel  string
	LogFormat string

	// Matching and write-back preferences
	KeepExistingGenres    bool
	AuthorsAsMoods        bool
	SortAuthorsByLastName bool
	SimplifyTitles        bool
	CoverPolicy           string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", constants.DefaultPort),
		CachePath: getEnv("CACHE_DB_PATH", constants.DefaultCachePath),
		CacheTTL:  getDurationEnv("CACHE_TTL", constants.DefaultCacheTTL),
		Region:    strings.ToLower(getEnv("AUDIMATCH_REGION", constants.DefaultRegion)),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		KeepExistingGenres:    getBoolEnv("KEEP_EXISTING_GENRES", false),
		AuthorsAsMoods:        getBoolEnv("AUTHORS_AS_MOODS", true),
		SortAuthorsByLastName: getBoolEnv("SORT_AUTHORS_BY_LAST_NAME", false),
		SimplifyTitles:        getBoolEnv("SIMPLIFY_TITLES", false),
		CoverPolicy:           getEnv("COVER_POLICY", CoverMissing),
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	if c.CachePath == "" {
		errors = append(errors, "CACHE_DB_PATH cannot be empty")
	}

	if c.CacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("CACHE_TTL cannot be negative, got: %s", c.CacheTTL))
	}

	if !domain.ValidRegion(c.Region) {
		errors = append(errors, fmt.Sprintf("AUDIMATCH_REGION must be one of %s, got: %s",
			strings.Join(domain.RegionCodes(), ", "), c.Region))
	}

	switch c.CoverPolicy {
	case CoverAlways, CoverMissing, CoverNever:
	default:
		errors = append(errors, fmt.Sprintf("COVER_POLICY must be one of always, missing, never, got: %s", c.CoverPolicy))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of debug, info, warn, error, got: %s", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
