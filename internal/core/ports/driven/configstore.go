package driven

// ConfigStore holds flat settings keyed with dot notation such as
// "store.driver" or "gateway.burst".
//
// Typed getters return the zero value when the key is missing or cannot be
// coerced. String values are parsed, which lets environment overrides feed
// numeric and boolean settings.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64
	GetBool(key string) bool

	// Set records a value. Stores backed by a file persist it immediately.
	Set(key string, value any) error

	Save() error
	Load() error

	// Path is where the settings live, or ":memory:".
	Path() string
}
