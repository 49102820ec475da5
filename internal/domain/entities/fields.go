package entities

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "github.com/stayhive/backend/pkg/errors"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// requiredString trims value and enforces non-blank plus a maximum length in
// characters, returning the trimmed result.
func requiredString(field, value string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperrors.NewValidationError(field, "cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > maxLen {
		return "", apperrors.NewValidationError(field, "exceeds maximum length")
	}
	return trimmed, nil
}

// StringField extracts a string from a field map. Returns present=false when
// the key is absent.
func StringField(fields map[string]any, name string) (string, bool, error) {
	raw, ok := fields[name]
	if !ok {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", true, apperrors.NewValidationError(name, "must be a string")
	}
	return s, true, nil
}

// FloatField extracts a numeric value from a field map, coercing any numeric
// type to float64. Non-numeric input is a validation error, never a silent
// default.
func FloatField(fields map[string]any, name string) (float64, bool, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, true, nil
	case float32:
		return float64(v), true, nil
	case int:
		return float64(v), true, nil
	case int32:
		return float64(v), true, nil
	case int64:
		return float64(v), true, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, true, apperrors.NewValidationError(name, "must be a number")
		}
		return f, true, nil
	default:
		return 0, true, apperrors.NewValidationError(name, "must be a number")
	}
}

// IntField extracts an integer from a field map. JSON numbers decode as
// float64, so integral floats are accepted; fractional values are rejected.
func IntField(fields map[string]any, name string) (int, bool, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case int:
		return v, true, nil
	case int32:
		return int(v), true, nil
	case int64:
		return int(v), true, nil
	case float64:
		if v != float64(int(v)) {
			return 0, true, apperrors.NewValidationError(name, "must be an integer")
		}
		return int(v), true, nil
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, true, apperrors.NewValidationError(name, "must be an integer")
		}
		return int(i), true, nil
	default:
		return 0, true, apperrors.NewValidationError(name, "must be an integer")
	}
}

// BoolField extracts a boolean from a field map.
func BoolField(fields map[string]any, name string) (bool, bool, error) {
	raw, ok := fields[name]
	if !ok {
		return false, false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, true, apperrors.NewValidationError(name, "must be a boolean")
	}
	return b, true, nil
}
