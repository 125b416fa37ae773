package file

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
)

// Ensure SettingsFile implements the interface.
var _ driven.SettingsStore = (*SettingsFile)(nil)

// DefaultSettingsFileName is the file created inside the settings directory.
const DefaultSettingsFileName = "config.toml"

// SettingsFile stores domain.Settings as a TOML document.
type SettingsFile struct {
	mu       sync.RWMutex
	filePath string
}

// NewSettingsFile creates a settings file store at path.
// If path is empty, defaults to ~/.voxrag/config.toml.
// The file itself is not created until Save.
func NewSettingsFile(path string) (*SettingsFile, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		path = filepath.Join(home, ".voxrag", DefaultSettingsFileName)
	}
	return &SettingsFile{filePath: path}, nil
}

// Load decodes the file onto s. A missing file is not an error.
// Unknown keys are rejected so typos surface at startup.
func (f *SettingsFile) Load(s *domain.Settings) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read settings: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(s); err != nil {
		return false, fmt.Errorf("parse settings %s: %w", f.filePath, err)
	}
	return true, nil
}

// Save writes s, creating the parent directory if needed.
func (f *SettingsFile) Save(s domain.Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.filePath), 0700); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	// Settings may carry API keys
	return os.WriteFile(f.filePath, data, 0600)
}

// Path returns the settings file path.
func (f *SettingsFile) Path() string {
	return f.filePath
}
