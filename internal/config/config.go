// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/xonecas/tap/internal/constants"
)

// Config is the root configuration structure.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Editor  EditorConfig  `toml:"editor"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig locates the notes database.
type StorageConfig struct {
	// Path of the SQLite file. Defaults to ~/.tap/notes.db.
	Path string `toml:"path"`
}

// EditorConfig holds editing settings.
type EditorConfig struct {
	// TabWidth is the tab stop distance in cells.
	TabWidth int `toml:"tab_width"`
	// SoftTabs inserts TabWidth spaces instead of a tab character.
	SoftTabs bool `toml:"soft_tabs"`
}

// TabWidthOrDefault returns the configured tab width or 4 if unset.
func (e EditorConfig) TabWidthOrDefault() int {
	if e.TabWidth <= 0 {
		return constants.SoftTabWidth
	}
	return e.TabWidth
}

// UIConfig holds user-interface settings.
type UIConfig struct {
	ListWidth int    `toml:"list_width"`
	Theme     string `toml:"theme"` // "dark" or "light"
}

// ListWidthOrDefault returns the configured note list width or the default.
func (u UIConfig) ListWidthOrDefault() int {
	if u.ListWidth <= 0 {
		return constants.DefaultListWidth
	}
	return u.ListWidth
}

// ThemeOrDefault returns the configured theme or "dark" if unset.
func (u UIConfig) ThemeOrDefault() string {
	if u.Theme == "" {
		return constants.DefaultTheme
	}
	return u.Theme
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// LevelOrDefault parses the configured level, defaulting to info.
func (l LogConfig) LevelOrDefault() zerolog.Level {
	if l.Level == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(l.Level))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{}
}

// Load reads configuration from a TOML file and applies environment variable
// overrides. An empty path means the default location, where a missing file
// is not an error; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		dir, err := DataDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, constants.ConfigFile)
	}

	if _, err := os.Stat(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	} else if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

const maxTabWidth = 16

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.Editor.TabWidth < 0 || c.Editor.TabWidth > maxTabWidth {
		errs = append(errs, fmt.Errorf("editor.tab_width=%d must be between 1 and %d", c.Editor.TabWidth, maxTabWidth))
	}

	if c.UI.ListWidth != 0 && c.UI.ListWidth < constants.MinListWidth {
		errs = append(errs, fmt.Errorf("ui.list_width=%d must be at least %d", c.UI.ListWidth, constants.MinListWidth))
	}

	switch c.UI.Theme {
	case "", "dark", "light":
	default:
		errs = append(errs, fmt.Errorf("ui.theme=%q must be \"dark\" or \"light\"", c.UI.Theme))
	}

	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
			errs = append(errs, fmt.Errorf("log.level=%q is invalid: %v", c.Log.Level, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// DBPath returns the configured database path or ~/.tap/notes.db.
func (c *Config) DBPath() (string, error) {
	if c.Storage.Path != "" {
		return expandHome(c.Storage.Path)
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.DBFile), nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"TAP_DB_PATH", func(v string) {
			if v != "" {
				cfg.Storage.Path = v
			}
		}},
		{"TAP_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.Log.Level = v
			}
		}},
		{"TAP_THEME", func(v string) {
			if v != "" {
				cfg.UI.Theme = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}

// DataDir returns the path to the tap data directory (~/.tap).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "."+constants.AppName), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
