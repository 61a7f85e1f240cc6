// Package config holds helpers shared by the configuration store adapters.
package config

import (
	"strconv"
	"strings"
)

// String returns v when it is a string.
func String(v any) string {
	s, _ := v.(string)
	return s
}

// Int coerces TOML integers, floats and numeric strings. Floats truncate.
func Int(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	}
	return 0
}

// Float coerces numbers and numeric strings.
func Float(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// Bool accepts booleans and anything strconv.ParseBool understands.
func Bool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	}
	return false
}
