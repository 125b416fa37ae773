package driven

import "github.com/custodia-labs/voxrag/internal/core/domain"

// SettingsStore persists the optional settings file.
type SettingsStore interface {
	// Load overlays the stored settings onto s. Keys absent from the
	// store leave the matching fields untouched. Returns false when
	// nothing is stored.
	Load(s *domain.Settings) (bool, error)

	// Save replaces the stored settings with s.
	Save(s domain.Settings) error

	// Path returns the backing location.
	Path() string
}
