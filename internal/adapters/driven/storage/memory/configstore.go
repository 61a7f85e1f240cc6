package memory

import (
	"maps"
	"sync"

	"github.com/mukesh2006/medic/internal/adapters/driven/config"
	"github.com/mukesh2006/medic/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in memory. String values are coerced the same
// way the file store coerces environment overrides, so "2.5" reads as a float.
//
// Save snapshots the current values and Load rolls back to the last snapshot.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
	saved  map[string]any
}

// NewConfigStore returns a store holding a copy of seed.
func NewConfigStore(seed ...map[string]any) *ConfigStore {
	values := make(map[string]any)
	for _, m := range seed {
		maps.Copy(values, m)
	}
	return &ConfigStore{values: values, saved: maps.Clone(values)}
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	return config.String(val)
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	return config.Int(val)
}

// GetFloat retrieves a numeric configuration value.
func (s *ConfigStore) GetFloat(key string) float64 {
	val, _ := s.Get(key)
	return config.Float(val)
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	return config.Bool(val)
}

// Set stores a configuration value.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Save snapshots the current values.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = maps.Clone(s.values)
	return nil
}

// Load restores the values of the last snapshot.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = maps.Clone(s.saved)
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return ":memory:"
}
