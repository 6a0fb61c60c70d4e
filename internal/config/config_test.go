package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[storage]
path = "/tmp/elsewhere.db"

[editor]
tab_width = 2
soft_tabs = true

[ui]
list_width = 32
theme = "light"

[log]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Path != "/tmp/elsewhere.db" {
		t.Errorf("storage.path = %q", cfg.Storage.Path)
	}
	if cfg.Editor.TabWidthOrDefault() != 2 || !cfg.Editor.SoftTabs {
		t.Errorf("editor = %+v", cfg.Editor)
	}
	if cfg.UI.ListWidthOrDefault() != 32 || cfg.UI.ThemeOrDefault() != "light" {
		t.Errorf("ui = %+v", cfg.UI)
	}
	if cfg.Log.LevelOrDefault() != zerolog.DebugLevel {
		t.Errorf("log level = %v", cfg.Log.LevelOrDefault())
	}
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TAP_DB_PATH", "")
	t.Setenv("TAP_LOG_LEVEL", "")
	t.Setenv("TAP_THEME", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.TabWidthOrDefault() != 4 || cfg.Editor.SoftTabs {
		t.Errorf("editor defaults = %+v", cfg.Editor)
	}
	if cfg.UI.ListWidthOrDefault() != 28 || cfg.UI.ThemeOrDefault() != "dark" {
		t.Errorf("ui defaults = %+v", cfg.UI)
	}
	if cfg.Log.LevelOrDefault() != zerolog.InfoLevel {
		t.Errorf("log level = %v", cfg.Log.LevelOrDefault())
	}

	path, err := cfg.DBPath()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, filepath.Join(".tap", "notes.db")) {
		t.Errorf("DBPath = %q", path)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "[ui\nlist_width = ")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("err = %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[storage]
path = "/from/file.db"
`)
	t.Setenv("TAP_DB_PATH", "/from/env.db")
	t.Setenv("TAP_LOG_LEVEL", "warn")
	t.Setenv("TAP_THEME", "light")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Path != "/from/env.db" {
		t.Errorf("storage.path = %q", cfg.Storage.Path)
	}
	if cfg.Log.LevelOrDefault() != zerolog.WarnLevel {
		t.Errorf("level = %v", cfg.Log.LevelOrDefault())
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q", cfg.UI.Theme)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Editor: EditorConfig{TabWidth: 40},
		UI:     UIConfig{ListWidth: 3, Theme: "neon"},
		Log:    LogConfig{Level: "loud"},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, want := range []string{"editor.tab_width", "ui.list_width", "ui.theme", "log.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q: %v", want, err)
		}
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestDBPathExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := &Config{Storage: StorageConfig{Path: "~/notes/tap.db"}}
	got, err := cfg.DBPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, "notes", "tap.db"); got != want {
		t.Errorf("DBPath = %q, want %q", got, want)
	}
}

func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	st, err := loadStateFile(path)
	if err != nil {
		t.Fatalf("missing state: %v", err)
	}
	if st.ActiveNote != "" {
		t.Errorf("fresh state = %+v", st)
	}

	st.ActiveNote = "0b6d6bd2-4c7e-4c53-9c1a-3f3f6f0e0a11"
	if err := saveStateFile(path, st); err != nil {
		t.Fatal(err)
	}
	got, err := loadStateFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.ActiveNote != st.ActiveNote {
		t.Errorf("ActiveNote = %q", got.ActiveNote)
	}
}

func TestSaveStateUsesDataDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := SaveState(&State{ActiveNote: "abc"}); err != nil {
		t.Fatal(err)
	}
	st, err := LoadState()
	if err != nil {
		t.Fatal(err)
	}
	if st.ActiveNote != "abc" {
		t.Errorf("ActiveNote = %q", st.ActiveNote)
	}
	if _, err := os.Stat(filepath.Join(home, ".tap", "state.json")); err != nil {
		t.Errorf("state file: %v", err)
	}
}
