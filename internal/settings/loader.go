package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// FileName is the settings file name inside the data directory.
const FileName = "settings.yaml"

// DataDir returns ~/.pong, or ".pong" when the home directory is unknown.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pong"
	}
	return filepath.Join(home, ".pong")
}

// DefaultPath returns ~/.pong/settings.yaml.
func DefaultPath() string {
	return filepath.Join(DataDir(), FileName)
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Load reads settings from path (DefaultPath when empty).
// Search order: path -> ./configs/settings.yaml -> embedded default -> Default().
// A missing file silently falls through. A corrupt or invalid file is
// logged as a warning and also falls through, so Load always returns
// usable settings.
func Load(path string, logger *log.Logger) *GameSettings {
	if path == "" {
		path = DefaultPath()
	}
	path = ExpandPath(path)

	if s, err := readFile(path); err == nil {
		return s
	} else if !os.IsNotExist(err) {
		logger.Warn("ignoring settings file", "path", path, "error", err)
	}

	if s, err := readFile(filepath.Join("configs", FileName)); err == nil {
		return s
	}

	s, err := decode(defaultSettingsYAML)
	if err != nil {
		logger.Warn("embedded settings are invalid, using built-in defaults", "error", err)
		return Default()
	}
	return s
}

func readFile(path string) (*GameSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("settings: %s: %w", path, err)
	}
	return s, nil
}

// decode parses YAML on top of the defaults, so keys missing from the file
// keep their default values.
func decode(data []byte) (*GameSettings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes the settings atomically: the YAML goes to a temp file in the
// same directory which is then renamed over path. Parent directories are
// created as needed.
func (s *GameSettings) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	path = ExpandPath(path)

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("settings: create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("settings: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("settings: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("settings: close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("settings: rename: %w", err)
	}
	return nil
}
