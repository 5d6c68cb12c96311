// Package config handles configuration loading and validation for the
// menukit commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Version is the current configuration schema version.
const Version = 1

// Config holds the complete menukit configuration.
type Config struct {
	// Version is the configuration schema version.
	Version int `toml:"version"`

	// Menu configuration for the definition source.
	Menu MenuConfig `toml:"menu"`

	// State configuration for item state persistence.
	State StateConfig `toml:"state"`

	// Export configuration for the D-Bus surface.
	Export ExportConfig `toml:"export"`

	// Logging configuration.
	Logging LoggingConfig `toml:"logging"`
}

// MenuConfig holds the definition source configuration.
type MenuConfig struct {
	// DefinitionPath is the menu definition file (.json, .toml, .yaml).
	DefinitionPath string `toml:"definition_path"`

	// AutoReload rebuilds the menu when the definition file changes.
	AutoReload bool `toml:"auto_reload"`
}

// StateConfig holds item state persistence configuration.
type StateConfig struct {
	// Persist enables saving and restoring item state across runs.
	Persist bool `toml:"persist"`

	// Path is the path to the state database.
	Path string `toml:"path"`
}

// ExportConfig holds the D-Bus export configuration.
type ExportConfig struct {
	// BusName is the well-known session bus name to claim.
	BusName string `toml:"bus_name"`

	// ObjectPath is the object path the menu is exported at.
	ObjectPath string `toml:"object_path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is debug, info, warn, or error.
	Level string `toml:"level"`

	// Format is text or json.
	Format string `toml:"format"`

	// Output is stdout, stderr, file, or both.
	Output string `toml:"output"`

	// FilePath is the log file used by file and both outputs.
	FilePath string `toml:"file_path"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Version: Version,
		Menu: MenuConfig{
			DefinitionPath: filepath.Join(DataDir(), "menu.toml"),
			AutoReload:     true,
		},
		State: StateConfig{
			Persist: true,
			Path:    filepath.Join(DataDir(), "state.db"),
		},
		Export: ExportConfig{
			BusName:    "org.menukit.Menu",
			ObjectPath: "/org/menukit/Menu",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// DataDir returns the platform-specific data directory.
//
// Platform paths:
//   - macOS:   ~/Library/Application Support/menukit/
//   - Linux:   $XDG_DATA_HOME/menukit/ or ~/.local/share/menukit/
//   - Windows: %APPDATA%\menukit\
//
// Falls back to ~/.menukit if platform detection fails.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "menukit")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "menukit")
		}
		return filepath.Join(home, ".menukit")
	case "linux":
		if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
			return filepath.Join(dataHome, "menukit")
		}
		return filepath.Join(home, ".local", "share", "menukit")
	default:
		return filepath.Join(home, ".menukit")
	}
}

// ConfigPath returns the default configuration file path.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	switch runtime.GOOS {
	case "linux":
		if cfgHome := os.Getenv("XDG_CONFIG_HOME"); cfgHome != "" {
			return filepath.Join(cfgHome, "menukit", "config.toml")
		}
		return filepath.Join(home, ".config", "menukit", "config.toml")
	default:
		return filepath.Join(DataDir(), "config.toml")
	}
}

// Load reads the configuration at path. A missing file is not an error:
// defaults are returned so first runs need no setup.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return nil
}

// Validate checks the configuration for values no command can run with.
func (c *Config) Validate() error {
	if c.Version > Version {
		return fmt.Errorf("config version %d is newer than supported version %d", c.Version, Version)
	}
	if c.Menu.DefinitionPath == "" {
		return fmt.Errorf("menu.definition_path must not be empty")
	}
	if c.State.Persist && c.State.Path == "" {
		return fmt.Errorf("state.path must not be empty when state.persist is on")
	}
	if c.Export.BusName == "" {
		return fmt.Errorf("export.bus_name must not be empty")
	}
	switch c.Logging.Output {
	case "", "stdout", "stderr", "file", "both":
	default:
		return fmt.Errorf("logging.output %q is not one of stdout, stderr, file, both", c.Logging.Output)
	}
	if (c.Logging.Output == "file" || c.Logging.Output == "both") && c.Logging.FilePath == "" {
		return fmt.Errorf("logging.file_path must be set for output %q", c.Logging.Output)
	}
	return nil
}
