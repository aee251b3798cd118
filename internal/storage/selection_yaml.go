package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"sandglass/internal/core/model"
)

const selectionFileName = "selection.yaml"

type yamlSelection struct {
	Minutes int `yaml:"minutes"`
	Seconds int `yaml:"seconds"`
}

// SelectionStore persists the last chosen duration as a single yaml record.
// Every failure mode degrades to the default selection; nothing here is
// fatal to the countdown itself.
type SelectionStore struct {
	path string
}

// NewSelectionStore creates a store rooted in the user config directory.
func NewSelectionStore(appName string) (*SelectionStore, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user config dir: %w", err)
	}
	return &SelectionStore{path: filepath.Join(configDir, appName, selectionFileName)}, nil
}

// Load reads the persisted selection. Missing, unreadable, or corrupt data
// yields the default selection; the returned error is informational only.
func (store *SelectionStore) Load() (model.Selection, error) {
	fallback := model.DefaultSelection()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fallback, nil
		}
		return fallback, fmt.Errorf("read selection file: %w", err)
	}

	var fileData yamlSelection
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return fallback, fmt.Errorf("parse selection yaml: %w", err)
	}

	selection := model.Selection{Minutes: fileData.Minutes, Seconds: fileData.Seconds}
	if !selection.Valid() {
		return fallback, fmt.Errorf("selection out of range: %dm%ds", fileData.Minutes, fileData.Seconds)
	}
	return selection, nil
}

// Save writes the selection, creating the config directory if needed.
func (store *SelectionStore) Save(selection model.Selection) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(yamlSelection{
		Minutes: selection.Minutes,
		Seconds: selection.Seconds,
	})
	if err != nil {
		return fmt.Errorf("marshal selection yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write selection file: %w", err)
	}

	return nil
}
