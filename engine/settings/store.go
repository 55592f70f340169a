package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

var logger = log.New(os.Stderr, "[settings] ", log.LstdFlags)

// Store reads and writes a DisplayMode as a TOML document.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{Path: path}
}

// Read loads the display mode. A missing or empty file yields the defaults;
// keys absent from the file keep their default values.
func (s *Store) Read() (DisplayMode, error) {
	mode := Defaults()
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return mode, nil
	}
	if err != nil {
		return mode, fmt.Errorf("settings: read %s: %w", s.Path, err)
	}
	if len(data) == 0 {
		return mode, nil
	}
	if err := toml.Unmarshal(data, &mode); err != nil {
		return Defaults(), fmt.Errorf("settings: parse %s: %w", s.Path, err)
	}
	return mode, nil
}

// Save writes mode when it differs from the defaults and reports whether a
// write happened.
func (s *Store) Save(mode DisplayMode) (bool, error) {
	if mode.IsDefault() {
		return false, nil
	}
	data, err := toml.Marshal(mode)
	if err != nil {
		return false, fmt.Errorf("settings: encode: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("settings: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return false, fmt.Errorf("settings: write %s: %w", s.Path, err)
	}
	logger.Printf("saved display mode to %s", s.Path)
	return true, nil
}
