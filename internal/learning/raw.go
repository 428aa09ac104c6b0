package learning

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Raw input arrives either from parsed form submissions (strings everywhere) or from
// decoded JSON/YAML documents (float64, json.Number, int, []any, map[string]any).
// These readers accept both and ignore unknown keys.

func getString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			switch t := v.(type) {
			case string:
				return strings.TrimSpace(t)
			case float64:
				return strconv.FormatFloat(t, 'f', -1, 64)
			default:
				return fmt.Sprintf("%v", t)
			}
		}
	}
	return ""
}

func getFloat(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			if f, ok := toFloat(v); ok {
				return f, true
			}
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func getInt(m map[string]any, keys ...string) (int, bool) {
	f, ok := getFloat(m, keys...)
	if !ok || f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return int(f), true
}

func getBool(m map[string]any, keys ...string) (bool, bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case bool:
			return t, true
		case string:
			switch strings.ToLower(strings.TrimSpace(t)) {
			case "true", "on", "yes", "1":
				return true, true
			case "false", "off", "no", "0", "":
				return false, true
			}
		}
	}
	return false, false
}

// getStrings reads a list of codes. A lone string (one checkbox ticked on a form) is a one-item list.
func getStrings(m map[string]any, key string) ([]string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case []string:
		return t, nil
	case string:
		if strings.TrimSpace(t) == "" {
			return nil, nil
		}
		return []string{strings.TrimSpace(t)}, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s must hold strings, got %T", ErrMalformedInput, key, item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s must be a list, got %T", ErrMalformedInput, key, v)
}

func getMap(m map[string]any, key string) (map[string]any, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	if sub, ok := v.(map[string]any); ok {
		return sub, nil
	}
	return nil, fmt.Errorf("%w: %s must be an object, got %T", ErrMalformedInput, key, v)
}

func getList(m map[string]any, key string) ([]map[string]any, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case []map[string]any:
		return t, nil
	case []any:
		out := make([]map[string]any, 0, len(t))
		for i, item := range t {
			sub, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] must be an object, got %T", ErrMalformedInput, key, i, item)
			}
			out = append(out, sub)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s must be a list, got %T", ErrMalformedInput, key, v)
}
