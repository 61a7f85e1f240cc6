package services

import (
	"fmt"
	"time"

	"github.com/mukesh2006/medic/internal/core/domain"
	"github.com/mukesh2006/medic/internal/core/ports/driven"
	"github.com/mukesh2006/medic/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStoreDriver   = "store.driver"
	keyStorePath     = "store.path"
	keyMongoURI      = "store.mongo_uri"
	keyMongoDatabase = "store.mongo_database"
	keyStoreTimeout  = "store.timeout"
	keySMSLocale     = "sms.locale"
	keySMSTaskLocale = "sms.task_locale"
	keyFormsPath     = "forms.path"
	keyGatewayAddr   = "gateway.addr"
	keyGatewayRate   = "gateway.rate_per_second"
	keyGatewayBurst  = "gateway.burst"
	keyVerbose       = "log.verbose"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Store: domain.StoreSettings{
			Driver:        s.getStoreDriver(defaults.Store.Driver),
			Path:          s.configStore.GetString(keyStorePath), // Empty selects the home directory
			MongoURI:      s.getString(keyMongoURI, defaults.Store.MongoURI),
			MongoDatabase: s.getString(keyMongoDatabase, defaults.Store.MongoDatabase),
			Timeout:       s.getDuration(keyStoreTimeout, defaults.Store.Timeout),
		},
		SMS: domain.SMSSettings{
			Locale:     s.getString(keySMSLocale, defaults.SMS.Locale),
			TaskLocale: s.getString(keySMSTaskLocale, defaults.SMS.TaskLocale),
			FormsPath:  s.configStore.GetString(keyFormsPath),
		},
		Gateway: domain.GatewaySettings{
			Addr:          s.getString(keyGatewayAddr, defaults.Gateway.Addr),
			RatePerSecond: s.getFloat(keyGatewayRate, defaults.Gateway.RatePerSecond),
			Burst:         s.getInt(keyGatewayBurst, defaults.Gateway.Burst),
		},
		Verbose: s.getBool(keyVerbose, defaults.Verbose),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyStoreDriver, settings.Store.Driver.String()},
		{keyStorePath, settings.Store.Path},
		{keyMongoURI, settings.Store.MongoURI},
		{keyMongoDatabase, settings.Store.MongoDatabase},
		{keyStoreTimeout, settings.Store.Timeout.String()},
		{keySMSLocale, settings.SMS.Locale},
		{keySMSTaskLocale, settings.SMS.TaskLocale},
		{keyFormsPath, settings.SMS.FormsPath},
		{keyGatewayAddr, settings.Gateway.Addr},
		{keyGatewayRate, settings.Gateway.RatePerSecond},
		{keyGatewayBurst, settings.Gateway.Burst},
		{keyVerbose, settings.Verbose},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// SetStoreDriver updates the store backend.
func (s *SettingsService) SetStoreDriver(driver domain.StoreDriver) error {
	if !driver.IsValid() {
		return fmt.Errorf("invalid store driver: %s", driver)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Store.Driver = driver
	return s.Save(settings)
}

// Validate checks that current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Store.Driver.IsValid() {
		return fmt.Errorf("invalid store driver: %s", settings.Store.Driver)
	}
	if settings.Store.Driver == domain.StoreDriverMongo && settings.Store.MongoURI == "" {
		return fmt.Errorf("store driver %q requires %s", settings.Store.Driver.Description(), keyMongoURI)
	}
	if settings.Store.Timeout <= 0 {
		return fmt.Errorf("%s must be positive, got %s", keyStoreTimeout, settings.Store.Timeout)
	}
	if settings.Gateway.RatePerSecond < 0 || settings.Gateway.Burst < 0 {
		return fmt.Errorf("gateway rate limits must not be negative")
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getDuration accepts a duration string ("5s") or a number of seconds.
func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	if str := s.configStore.GetString(key); str != "" {
		d, err := time.ParseDuration(str)
		if err != nil {
			return defaultVal
		}
		return d
	}
	if secs := s.configStore.GetInt(key); secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}

func (s *SettingsService) getStoreDriver(defaultVal domain.StoreDriver) domain.StoreDriver {
	val := s.configStore.GetString(keyStoreDriver)
	if val == "" {
		return defaultVal
	}
	driver := domain.StoreDriver(val)
	if !driver.IsValid() {
		return defaultVal
	}
	return driver
}
