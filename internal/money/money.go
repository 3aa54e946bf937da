package money

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToCents coerces a JSON-decoded value to an integer cent amount.
// It accepts the types encoding/json produces for numeric fields
// (float64, json.Number) as well as integer types and numeric strings.
// Non-finite or non-numeric input returns fallback rather than an error,
// so malformed client payloads degrade to a rejectable zero amount.
func ToCents(v any, fallback int64) int64 {
	switch n := v.(type) {
	case nil:
		return fallback
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return fromFloat(n, fallback)
	case json.Number:
		return fromString(n.String(), fallback)
	case string:
		return fromString(n, fallback)
	default:
		return fallback
	}
}

func fromFloat(f float64, fallback int64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return int64(math.Trunc(f))
}

func fromString(s string, fallback int64) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return fromFloat(f, fallback)
}

// Clamp limits v to the inclusive range [min, max].
func Clamp(v, min, max int64) int64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
