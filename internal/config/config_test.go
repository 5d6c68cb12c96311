package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.Version != Version {
		t.Errorf("expected version %d, got %d", Version, cfg.Version)
	}
	if !cfg.Menu.AutoReload {
		t.Error("auto reload should default on")
	}
	if !strings.Contains(cfg.State.Path, "menukit") {
		t.Errorf("state path should contain menukit: %s", cfg.State.Path)
	}
	if cfg.Export.BusName == "" {
		t.Error("default bus name must not be empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestConfigPath(t *testing.T) {
	path := ConfigPath()
	if path == "" {
		t.Error("ConfigPath returned empty string")
	}
	if !strings.HasSuffix(path, "config.toml") {
		t.Errorf("expected path ending with config.toml, got %s", path)
	}
}

func TestLoadNonexistent(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing", "config.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.Menu.DefinitionPath == "" {
		t.Error("defaults should apply for a missing file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menukit", "config.toml")

	cfg := DefaultConfig()
	cfg.Menu.DefinitionPath = "/etc/menukit/menu.yaml"
	cfg.Logging.Level = "debug"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Menu.DefinitionPath != "/etc/menukit/menu.yaml" {
		t.Errorf("definition path lost: %s", got.Menu.DefinitionPath)
	}
	if got.Logging.Level != "debug" {
		t.Errorf("logging level lost: %s", got.Logging.Level)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "version = 1\n[menu]\ndefinition_path = \"\"\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for empty definition path")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Output = "syslog"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown logging output")
	}

	cfg = DefaultConfig()
	cfg.Logging.Output = "file"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for file output without path")
	}

	cfg = DefaultConfig()
	cfg.Version = Version + 1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for future config version")
	}
}
