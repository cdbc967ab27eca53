package siteconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store manages user overrides of the built-in hostname configurations.
type Store interface {
	// Merged returns the defaults with user overrides applied.
	Merged() (map[string]Config, error)

	// Save writes or replaces the override for a hostname.
	Save(host string, cfg Config) error

	// Remove deletes the override for a hostname. Removing a hostname
	// that has no override is not an error.
	Remove(host string) error

	// Reset deletes all overrides, returning to the built-in defaults.
	Reset() error
}

// FileStore is a Store backed by a YAML file mapping hostname to
// Config. A missing file is treated as an empty override set.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a FileStore at the given path. The file and
// its parent directory are created lazily on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultStorePath returns the conventional location of the override
// file under the user's config directory.
func DefaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "sites.yaml"
	}
	return filepath.Join(dir, "page2md", "sites.yaml")
}

// Merged implements Store.
func (s *FileStore) Merged() (map[string]Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	overrides, err := s.load()
	if err != nil {
		return nil, err
	}
	return Merged(Defaults(), overrides), nil
}

// Save implements Store.
func (s *FileStore) Save(host string, cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	overrides, err := s.load()
	if err != nil {
		return err
	}
	overrides[host] = cfg
	return s.write(overrides)
}

// Remove implements Store.
func (s *FileStore) Remove(host string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	overrides, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := overrides[host]; !ok {
		return nil
	}
	delete(overrides, host)
	return s.write(overrides)
}

// Reset implements Store.
func (s *FileStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reset overrides: %w", err)
	}
	return nil
}

func (s *FileStore) load() (map[string]Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Config{}, nil
		}
		return nil, fmt.Errorf("read overrides: %w", err)
	}

	overrides := map[string]Config{}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse overrides: %w", err)
	}
	return overrides, nil
}

func (s *FileStore) write(overrides map[string]Config) error {
	data, err := yaml.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("encode overrides: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write overrides: %w", err)
	}
	return nil
}
