// Package config holds the companion's build identity and the agent's
// config.toml under ~/.bambooclaw. The agent defines its own schema, so
// the store treats the file as an open key/value document rather than a
// closed struct.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	appDirName     = ".bambooclaw"
	configFileName = "config.toml"
)

// DefaultConfigPath returns the agent config file path under the user's
// home directory.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, appDirName, configFileName), nil
}

// Store reads and writes the agent's config.toml.
type Store struct {
	path string
}

// NewStore constructs a Store for the config file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the config file location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the config file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// ReadRaw returns the raw file content.
func (s *Store) ReadRaw() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to read config: %w", err)
	}
	return string(data), nil
}

// WriteRaw replaces the file content after validating it parses as TOML.
// The parent directory is created if absent.
func (s *Store) WriteRaw(content string) error {
	var probe map[string]interface{}
	if err := toml.Unmarshal([]byte(content), &probe); err != nil {
		return fmt.Errorf("refusing to write invalid TOML: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Read parses the file into a key/value document. A missing file yields
// an empty document, not an error.
func (s *Store) Read() (map[string]interface{}, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]interface{}{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	doc := map[string]interface{}{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return doc, nil
}

// Get returns the value stored under key, or an error when absent.
func (s *Store) Get(key string) (interface{}, error) {
	doc, err := s.Read()
	if err != nil {
		return nil, err
	}
	value, ok := doc[key]
	if !ok {
		return nil, fmt.Errorf("key %q not set in %s", key, s.path)
	}
	return value, nil
}

// Set writes key=value, preserving all other keys in the document.
func (s *Store) Set(key string, value interface{}) error {
	doc, err := s.Read()
	if err != nil {
		return err
	}
	doc[key] = value

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ExportYAML renders the document as YAML for display.
func (s *Store) ExportYAML() (string, error) {
	doc, err := s.Read()
	if err != nil {
		return "", err
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to render config as yaml: %w", err)
	}
	return string(out), nil
}
