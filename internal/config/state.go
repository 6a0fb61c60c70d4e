package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/xonecas/tap/internal/constants"
)

// State is UI state carried between runs.
type State struct {
	// ActiveNote is the id of the note open at exit.
	ActiveNote string `json:"active_note,omitempty"`
}

// LoadState reads ~/.tap/state.json. A missing file yields an empty state.
func LoadState() (*State, error) {
	path, err := statePath()
	if err != nil {
		return nil, err
	}
	return loadStateFile(path)
}

func loadStateFile(path string) (*State, error) {
	st := &State{}

	//nolint:gosec // G304: path is inside the data dir
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return st, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, st); err != nil {
		return nil, err
	}

	return st, nil
}

// SaveState writes ~/.tap/state.json with 0600 permissions.
func SaveState(st *State) error {
	dir, err := EnsureDataDir()
	if err != nil {
		return err
	}
	return saveStateFile(filepath.Join(dir, constants.StateFile), st)
}

func saveStateFile(path string, st *State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func statePath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.StateFile), nil
}
