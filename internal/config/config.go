// Package config loads the run configuration from the environment.
//
// Behavior is fully parameterized by environment variables; a .env file in
// the working directory is honored when present. The Config struct is
// built once at startup and passed explicitly to each component; no
// component reads the environment on its own.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/apodwall/apodwall/pkg/apod"
	"github.com/apodwall/apodwall/pkg/errors"
)

// Environment variable names. The NASA_/WINDOWS_ forms are accepted as
// fallbacks for setups migrated from older scripts.
const (
	EnvAPIKey        = "APOD_API_KEY"
	EnvAPIKeyLegacy  = "NASA_APOD_API_KEY"
	EnvSaveDir       = "APOD_SAVE_DIR"
	EnvSaveDirLegacy = "WINDOWS_SAVE_DIR"
	EnvLogFile       = "LOG_FILE_PATH"
	EnvBaseURL       = "APOD_BASE_URL"
	EnvDate          = "APOD_DATE"
	EnvTimeout       = "APOD_TIMEOUT"
	EnvRetryAttempts = "APOD_RETRY_ATTEMPTS"
	EnvPathRules     = "APOD_PATH_RULES"
)

// DefaultLogFile is relative to the working directory.
const DefaultLogFile = "logs.txt"

// Config holds everything a run needs, validated up front.
type Config struct {
	APIKey        string        // required, opaque
	SaveDir       string        // required, possibly foreign-namespace notation
	LogFile       string        // append-mode run log
	BaseURL       string        // API endpoint override, empty means production
	Date          string        // YYYY-MM-DD override, empty means today
	Timeout       time.Duration // per-request bound
	RetryAttempts int           // 1 = the documented single-attempt contract
	RulesFile     string        // optional TOML path-translation table
}

// LogPath returns the run log location without requiring a valid Config,
// so a failure to load the configuration can still be recorded there.
func LogPath() string {
	_ = godotenv.Load()
	if v := os.Getenv(EnvLogFile); v != "" {
		return v
	}
	return DefaultLogFile
}

// Load reads the environment (and .env, when present) into a Config.
// Missing required values are CONFIG_ERROR, reported before any network
// call is made.
func Load() (*Config, error) {
	// Missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:        firstEnv(EnvAPIKey, EnvAPIKeyLegacy),
		SaveDir:       firstEnv(EnvSaveDir, EnvSaveDirLegacy),
		LogFile:       os.Getenv(EnvLogFile),
		BaseURL:       os.Getenv(EnvBaseURL),
		Date:          os.Getenv(EnvDate),
		Timeout:       apod.DefaultTimeout,
		RetryAttempts: 1,
		RulesFile:     os.Getenv(EnvPathRules),
	}

	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile
	}

	if raw := os.Getenv(EnvTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, errors.New(errors.ErrCodeConfig, "%s must be a positive duration, got %q", EnvTimeout, raw)
		}
		cfg.Timeout = d
	}

	if raw := os.Getenv(EnvRetryAttempts); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, errors.New(errors.ErrCodeConfig, "%s must be a positive integer, got %q", EnvRetryAttempts, raw)
		}
		cfg.RetryAttempts = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the required fields and the date format.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New(errors.ErrCodeConfig, "%s is not set", EnvAPIKey)
	}
	if c.SaveDir == "" {
		return errors.New(errors.ErrCodeConfig, "%s is not set", EnvSaveDir)
	}
	if c.Date != "" {
		if _, err := time.Parse("2006-01-02", c.Date); err != nil {
			return errors.New(errors.ErrCodeConfig, "%s must be YYYY-MM-DD, got %q", EnvDate, c.Date)
		}
	}
	return nil
}

// EffectiveDate returns the date the run is keyed by: the configured
// override, or today in local time.
func (c *Config) EffectiveDate() string {
	if c.Date != "" {
		return c.Date
	}
	return time.Now().Format("2006-01-02")
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
