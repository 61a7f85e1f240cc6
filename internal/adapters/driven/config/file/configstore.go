package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/mukesh2006/medic/internal/adapters/driven/config"
	"github.com/mukesh2006/medic/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// EnvPrefix prefixes environment variables that override file values.
// "store.driver" is overridden by MEDIC_STORE_DRIVER.
const EnvPrefix = "MEDIC_"

const fileName = "config.toml"

// ConfigStore keeps settings in a TOML file, written as nested tables
// ([store], [sms], [gateway]) and read back as dotted keys.
// Environment variables take precedence over the file.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
	lookup   func(string) (string, bool)
}

// NewConfigStore opens the config in configDir, ~/.medic when empty.
// A missing file is not an error; it is created on the first Set.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locating home directory: %w", err)
		}
		configDir = filepath.Join(home, ".medic")
	}
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, fileName),
		data:     make(map[string]any),
		lookup:   os.LookupEnv,
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// EnvKey returns the environment variable that overrides key.
func EnvKey(key string) string {
	return EnvPrefix + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// Get returns the environment override for key, else the file value.
// Overrides are always strings.
func (s *ConfigStore) Get(key string) (any, bool) {
	if v, ok := s.lookup(EnvKey(key)); ok {
		return v, true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
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

// Set stores a value and rewrites the file.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return s.write()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write()
}

// write replaces the file through a temp file in the same directory so a
// crash never leaves a truncated config behind. Caller holds the lock.
func (s *ConfigStore) write() error {
	data, err := toml.Marshal(nestMap(s.data))
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), fileName+".*")
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.filePath); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Load replaces the in-memory values with the file contents.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		s.data = make(map[string]any)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}
	s.data = flattenMap(loaded, "")
	return nil
}

// flattenMap turns {"a": {"b": 1}} into {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		if prefix != "" {
			key = prefix + "." + key
		}
		nested, ok := value.(map[string]any)
		if !ok {
			out[key] = value
			continue
		}
		for k, v := range flattenMap(nested, key) {
			out[k] = v
		}
	}
	return out
}

// nestMap is the inverse of flattenMap.
func nestMap(flat map[string]any) map[string]any {
	out := make(map[string]any)
	for key, value := range flat {
		parts := strings.Split(key, ".")
		cur := out
		for _, part := range parts[:len(parts)-1] {
			next, ok := cur[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				cur[part] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = value
	}
	return out
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
