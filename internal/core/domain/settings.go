package domain

import "time"

// StoreDriver selects the document store backend.
type StoreDriver string

// Available store drivers.
const (
	// StoreDriverSQLite keeps documents in a local SQLite file.
	StoreDriverSQLite StoreDriver = "sqlite"

	// StoreDriverMongo keeps documents in a MongoDB database.
	StoreDriverMongo StoreDriver = "mongo"

	// StoreDriverMemory keeps documents in process memory. Data is lost on exit.
	StoreDriverMemory StoreDriver = "memory"
)

// IsValid returns true if the driver is recognised.
func (d StoreDriver) IsValid() bool {
	switch d {
	case StoreDriverSQLite, StoreDriverMongo, StoreDriverMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d StoreDriver) String() string {
	return string(d)
}

// Description returns a human-readable description of the driver.
func (d StoreDriver) Description() string {
	switch d {
	case StoreDriverSQLite:
		return "SQLite (local file)"
	case StoreDriverMongo:
		return "MongoDB (server)"
	case StoreDriverMemory:
		return "Memory (ephemeral)"
	default:
		return "Unknown"
	}
}

// AllStoreDrivers returns all available store drivers.
func AllStoreDrivers() []StoreDriver {
	return []StoreDriver{StoreDriverSQLite, StoreDriverMongo, StoreDriverMemory}
}

// StoreSettings holds document store configuration.
type StoreSettings struct {
	// Driver is the store backend.
	Driver StoreDriver

	// Path is the SQLite data directory. Empty means ~/.medic/data.
	Path string

	// MongoURI is the connection string for the mongo driver.
	MongoURI string

	// MongoDatabase is the database name for the mongo driver.
	MongoDatabase string

	// Timeout bounds every store call.
	Timeout time.Duration
}

// SMSSettings holds SMS intake configuration.
type SMSSettings struct {
	// Locale is used for the acknowledgement sent back to the reporter.
	Locale string

	// TaskLocale is used for the summary forwarded to the clinic contact.
	TaskLocale string

	// FormsPath is a directory of additional YAML form definitions.
	FormsPath string
}

// GatewaySettings holds HTTP gateway configuration.
type GatewaySettings struct {
	// Addr is the listen address.
	Addr string

	// RatePerSecond limits inbound requests. Zero disables limiting.
	RatePerSecond float64

	// Burst is the limiter bucket size.
	Burst int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Store   StoreSettings
	SMS     SMSSettings
	Gateway GatewaySettings

	// Verbose enables debug logging.
	Verbose bool
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Store: StoreSettings{
			Driver:        StoreDriverSQLite,
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "medic",
			Timeout:       10 * time.Second,
		},
		SMS: SMSSettings{
			Locale:     "en",
			TaskLocale: "fr",
		},
		Gateway: GatewaySettings{
			Addr:          "127.0.0.1:5988",
			RatePerSecond: 20,
			Burst:         40,
		},
	}
}
