package driving

import "github.com/mukesh2006/medic/internal/core/domain"

// SettingsService reads and writes the store, SMS and gateway settings.
// Missing keys fall back to domain.DefaultAppSettings.
type SettingsService interface {
	Get() (*domain.AppSettings, error)
	Save(settings *domain.AppSettings) error

	// SetStoreDriver switches the document store used on the next start.
	SetStoreDriver(driver domain.StoreDriver) error

	// Validate reports the first setting that would stop medic from starting.
	Validate() error

	GetDefaults() domain.AppSettings
}
