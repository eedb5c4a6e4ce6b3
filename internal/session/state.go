// Package session persists which calendar file was opened last.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// State is the content of the session file.
type State struct {
	LastFile      string `yaml:"last_file"`
	LastDirectory string `yaml:"last_directory"`
}

// Remember records path as the most recently opened calendar.
func (s *State) Remember(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	s.LastFile = path
	s.LastDirectory = filepath.Dir(path)
}

// Load reads the session file. A missing file yields an empty state.
func Load(path string) (*State, error) {
	if path == "" {
		return nil, errors.New("session path is empty")
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &State{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse session file %s: %w", path, err)
	}
	return &st, nil
}

// Save writes the state atomically through a temp file in the same
// directory. The file ends up with 0600 permissions.
func Save(path string, st *State) error {
	if path == "" {
		return errors.New("session path is empty")
	}
	if st == nil {
		return errors.New("session state is nil")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(st)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".homecal-session-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
