package espn

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// ESPN payloads are decoded loosely: ids flip between strings and numbers and
// stat values between numbers and display strings.
var looseJSON = sonic.Config{UseNumber: true}.Froze()

type object = map[string]any

func decodeObject(raw []byte) (object, error) {
	var doc object
	if err := looseJSON.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// dig walks nested objects; an int segment indexes into an array.
func dig(node any, path ...any) any {
	current := node
	for _, segment := range path {
		switch key := segment.(type) {
		case string:
			m, ok := current.(object)
			if !ok {
				return nil
			}
			current = m[key]
		case int:
			items, ok := current.([]any)
			if !ok || key < 0 || key >= len(items) {
				return nil
			}
			current = items[key]
		default:
			return nil
		}
	}
	return current
}

func asObject(node any) object {
	m, _ := node.(object)
	return m
}

func asObjects(node any) []object {
	items, _ := node.([]any)
	out := make([]object, 0, len(items))
	for _, item := range items {
		if m, ok := item.(object); ok {
			out = append(out, m)
		}
	}
	return out
}

func asString(node any) string {
	switch value := node.(type) {
	case string:
		return strings.TrimSpace(value)
	case json.Number:
		return value.String()
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}

func asBool(node any) bool {
	switch value := node.(type) {
	case bool:
		return value
	case string:
		parsed, _ := strconv.ParseBool(strings.TrimSpace(value))
		return parsed
	default:
		return false
	}
}

func asScore(node any) *int {
	text := asString(node)
	if text == "" {
		return nil
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		return nil
	}
	return &value
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z",
	"2006-01-02",
}

func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
