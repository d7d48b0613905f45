package config

import (
	"testing"
	"time"

	"github.com/apodwall/apodwall/pkg/errors"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAPIKey, "testkey")
	t.Setenv(EnvSaveDir, `C:\Users\me\Pictures`)
}

func TestLoad(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvLogFile, "/tmp/apodwall-test.log")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.APIKey != "testkey" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.SaveDir != `C:\Users\me\Pictures` {
		t.Errorf("SaveDir = %q", cfg.SaveDir)
	}
	if cfg.LogFile != "/tmp/apodwall-test.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
	if cfg.RetryAttempts != 1 {
		t.Errorf("RetryAttempts = %d, want the single-attempt default", cfg.RetryAttempts)
	}
}

func TestLoadDefaultLogFile(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvLogFile, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.LogFile != DefaultLogFile {
		t.Errorf("LogFile = %q, want %q", cfg.LogFile, DefaultLogFile)
	}
}

func TestLogPath(t *testing.T) {
	t.Setenv(EnvLogFile, "/tmp/apodwall-test.log")
	if got := LogPath(); got != "/tmp/apodwall-test.log" {
		t.Errorf("LogPath() = %q", got)
	}

	t.Setenv(EnvLogFile, "")
	if got := LogPath(); got != DefaultLogFile {
		t.Errorf("LogPath() = %q, want %q", got, DefaultLogFile)
	}
}

func TestLoadLegacyNames(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvSaveDir, "")
	t.Setenv(EnvAPIKeyLegacy, "legacykey")
	t.Setenv(EnvSaveDirLegacy, `D:\walls`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.APIKey != "legacykey" {
		t.Errorf("APIKey = %q, want legacy fallback", cfg.APIKey)
	}
	if cfg.SaveDir != `D:\walls` {
		t.Errorf("SaveDir = %q, want legacy fallback", cfg.SaveDir)
	}
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvAPIKeyLegacy, "")
	t.Setenv(EnvSaveDir, "/tmp")

	_, err := Load()
	if !errors.Is(err, errors.ErrCodeConfig) {
		t.Fatalf("err = %v, want CONFIG_ERROR", err)
	}
}

func TestLoadMissingSaveDir(t *testing.T) {
	t.Setenv(EnvAPIKey, "testkey")
	t.Setenv(EnvSaveDir, "")
	t.Setenv(EnvSaveDirLegacy, "")

	_, err := Load()
	if !errors.Is(err, errors.ErrCodeConfig) {
		t.Fatalf("err = %v, want CONFIG_ERROR", err)
	}
}

func TestLoadTimeout(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvTimeout, "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
}

func TestLoadBadTimeout(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvTimeout, "soon")

	if _, err := Load(); !errors.Is(err, errors.ErrCodeConfig) {
		t.Fatalf("err = %v, want CONFIG_ERROR", err)
	}
}

func TestLoadRetryAttempts(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvRetryAttempts, "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.RetryAttempts != 3 {
		t.Errorf("RetryAttempts = %d, want 3", cfg.RetryAttempts)
	}

	t.Setenv(EnvRetryAttempts, "0")
	if _, err := Load(); !errors.Is(err, errors.ErrCodeConfig) {
		t.Fatalf("err = %v, want CONFIG_ERROR for zero attempts", err)
	}
}

func TestLoadBadDate(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvDate, "29/08/2026")

	if _, err := Load(); !errors.Is(err, errors.ErrCodeConfig) {
		t.Fatalf("err = %v, want CONFIG_ERROR", err)
	}
}

func TestEffectiveDate(t *testing.T) {
	cfg := &Config{Date: "2026-01-15"}
	if got := cfg.EffectiveDate(); got != "2026-01-15" {
		t.Errorf("EffectiveDate = %q, want override", got)
	}

	cfg.Date = ""
	if got := cfg.EffectiveDate(); len(got) != len("2006-01-02") {
		t.Errorf("EffectiveDate = %q, want YYYY-MM-DD shape", got)
	}
}
