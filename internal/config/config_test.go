package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "formos" {
		t.Errorf("expected Name=formos, got %s", cfg.Name)
	}
	if cfg.Runtime.PollIntervalDuration() != 100*time.Millisecond {
		t.Errorf("expected 100ms poll interval, got %s", cfg.Runtime.PollIntervalDuration())
	}
	if cfg.Runtime.StopTimeoutDuration() != time.Second {
		t.Errorf("expected 1s stop timeout, got %s", cfg.Runtime.StopTimeoutDuration())
	}
	if cfg.Runtime.MountSrc != "/form" || cfg.Runtime.MountDest != "/mnt/app" {
		t.Errorf("unexpected mount defaults: %s -> %s", cfg.Runtime.MountSrc, cfg.Runtime.MountDest)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected level=info, got %s", cfg.Logging.Level)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("FORMOS_LOG_LEVEL", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "formos", "config.yaml")

	cfg := DefaultConfig()
	cfg.Runtime.PollInterval = "25ms"
	cfg.Logging.Level = "warn"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Runtime.PollIntervalDuration() != 25*time.Millisecond {
		t.Errorf("expected 25ms, got %s", loaded.Runtime.PollIntervalDuration())
	}
	if loaded.Logging.Level != "warn" {
		t.Errorf("expected level=warn, got %s", loaded.Logging.Level)
	}
}

func TestConfig_EnvOverride(t *testing.T) {
	t.Setenv("FORMOS_LOG_LEVEL", "debug")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("expected env override to debug, got %s", loaded.Logging.Level)
	}
}

func TestConfig_BadDurationFallsBack(t *testing.T) {
	r := RuntimeConfig{PollInterval: "not-a-duration", StopTimeout: "-5s"}
	if r.PollIntervalDuration() != 100*time.Millisecond {
		t.Errorf("bad poll interval should fall back to 100ms")
	}
	if r.StopTimeoutDuration() != time.Second {
		t.Errorf("negative stop timeout should fall back to 1s")
	}
}

func TestConfig_LoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}
