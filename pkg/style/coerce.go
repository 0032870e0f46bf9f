package style

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// stringValue returns a trimmed, non-empty string for key.
func stringValue(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", false
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case fmt.Stringer:
		s = t.String()
	default:
		s = fmt.Sprint(t)
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func boolInto(m map[string]any, key string, dst *bool) {
	if b, ok := toBool(m[key]); ok {
		*dst = b
	}
}

func toBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return b, err == nil
	case float64:
		return t != 0, true
	case int:
		return t != 0, true
	case int64:
		return t != 0, true
	}
	return false, false
}

// ToFloat coerces numbers and numeric strings. Non-finite results are rejected.
func ToFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint64:
		f = float64(t)
	case interface{ Float64() (float64, error) }:
		x, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = x
	case string:
		x, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = x
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func floatValue(m map[string]any, key string) (float64, bool) {
	return ToFloat(m[key])
}

func floatPtr(m map[string]any, key string) *float64 {
	if f, ok := floatValue(m, key); ok {
		return &f
	}
	return nil
}

// quadrantLabels accepts a list of four strings or a single string with the
// labels separated by "|". Empty entries keep their default.
func quadrantLabels(v any) ([4]string, bool) {
	var parts []string
	switch t := v.(type) {
	case []string:
		parts = t
	case []any:
		for _, p := range t {
			s, ok := p.(string)
			if !ok {
				return [4]string{}, false
			}
			parts = append(parts, s)
		}
	case string:
		if strings.TrimSpace(t) == "" {
			return [4]string{}, false
		}
		parts = strings.Split(t, "|")
	default:
		return [4]string{}, false
	}
	if len(parts) != 4 {
		return [4]string{}, false
	}
	out := DefaultQuadrantLabels
	for i, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out[i] = p
		}
	}
	return out, true
}
