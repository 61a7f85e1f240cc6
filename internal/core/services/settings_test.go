package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukesh2006/medic/internal/adapters/driven/storage/memory"
	"github.com/mukesh2006/medic/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("store.driver", "mongo")
	_ = store.Set("store.mongo_uri", "mongodb://db:27017")
	_ = store.Set("store.timeout", "3s")
	_ = store.Set("sms.locale", "fr")
	_ = store.Set("gateway.rate_per_second", 0.5)
	_ = store.Set("gateway.burst", 0)
	_ = store.Set("log.verbose", true)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.StoreDriverMongo, settings.Store.Driver)
	assert.Equal(t, "mongodb://db:27017", settings.Store.MongoURI)
	assert.Equal(t, 3*time.Second, settings.Store.Timeout)
	assert.Equal(t, "fr", settings.SMS.Locale)
	assert.Equal(t, "fr", settings.SMS.TaskLocale)
	assert.InDelta(t, 0.5, settings.Gateway.RatePerSecond, 0.0001)
	assert.Equal(t, 0, settings.Gateway.Burst)
	assert.True(t, settings.Verbose)
}

func TestSettingsService_Get_TimeoutInSeconds(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("store.timeout", 7)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, settings.Store.Timeout)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("store.driver", "couchdb")
	_ = store.Set("store.timeout", "soon")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Store.Driver, settings.Store.Driver)
	assert.Equal(t, defaults.Store.Timeout, settings.Store.Timeout)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	want := domain.DefaultAppSettings()
	want.Store.Driver = domain.StoreDriverMemory
	want.Store.Path = "/var/lib/medic"
	want.Store.Timeout = 2 * time.Second
	want.SMS.Locale = "fr"
	want.SMS.FormsPath = "/etc/medic/forms"
	want.Gateway.Addr = ":8080"
	want.Gateway.Burst = 3
	want.Verbose = true

	require.NoError(t, service.Save(&want))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, want, *got)
	assert.Equal(t, "2s", store.GetString("store.timeout"))
}

func TestSettingsService_SetStoreDriver(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetStoreDriver(domain.StoreDriverMongo))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StoreDriverMongo, settings.Store.Driver)

	assert.Error(t, service.SetStoreDriver("couchdb"))
}

func TestSettingsService_Validate(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		wantErr bool
	}{
		{"defaults", nil, false},
		{"mongo falls back to default uri", map[string]any{"store.driver": "mongo", "store.mongo_uri": ""}, false},
		{"negative burst", map[string]any{"gateway.burst": -1}, true},
		{"negative rate", map[string]any{"gateway.rate_per_second": -2.0}, true},
		{"zero timeout", map[string]any{"store.timeout": "0s"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			for k, v := range tt.values {
				_ = store.Set(k, v)
			}

			err := NewSettingsService(store).Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
