package statvalue

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Float coerces a loosely typed provider value into a float64. It never fails: nil, empty and
// unparseable input resolve to 0, and a trailing percent sign is stripped ("57%" -> 57).
func Float(value any) float64 {
	switch typed := value.(type) {
	case nil:
		return 0
	case float64:
		return finite(typed)
	case float32:
		return finite(float64(typed))
	case int:
		return float64(typed)
	case int32:
		return float64(typed)
	case int64:
		return float64(typed)
	case json.Number:
		return parseString(typed.String())
	case bool:
		if typed {
			return 1
		}
		return 0
	case string:
		return parseString(typed)
	default:
		return 0
	}
}

// Int is Float truncated toward zero.
func Int(value any) int {
	return int(Float(value))
}

// Pick returns the raw numeric value when the provider sent one, otherwise the display value.
func Pick(value, display any) any {
	switch typed := value.(type) {
	case float64, float32, int, int32, int64, json.Number:
		return value
	case string:
		if strings.TrimSpace(typed) != "" && isBlank(display) {
			return typed
		}
	}
	if isBlank(display) {
		return nil
	}
	return display
}

func parseString(raw string) float64 {
	value := strings.TrimSpace(raw)
	value = strings.TrimSuffix(value, "%")
	value = strings.ReplaceAll(value, ",", "")
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return finite(parsed)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func isBlank(value any) bool {
	if value == nil {
		return true
	}
	if text, ok := value.(string); ok {
		return strings.TrimSpace(text) == ""
	}
	return false
}
