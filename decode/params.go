package decode

import "fmt"

// Params is the free-form parameter block passed to factories and hooks.
// The typed getters normalize the numeric representations the different
// source formats produce.
type Params map[string]any

// Get returns the raw value.
func (p Params) Get(key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

// Int returns the value as an int. JSON decodes numbers as float64 and
// TOML as int64; both convert.
func (p Params) Int(key string) (int, error) {
	v, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("param %q missing", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("param %q is %T, want int", key, v)
	}
}

// Float returns the value as a float64.
func (p Params) Float(key string) (float64, error) {
	v, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("param %q missing", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("param %q is %T, want float", key, v)
	}
}

// String returns the value as a string.
func (p Params) String(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", fmt.Errorf("param %q missing", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("param %q is %T, want string", key, v)
	}
	return s, nil
}

// Bool returns the value as a bool.
func (p Params) Bool(key string) (bool, error) {
	v, ok := p[key]
	if !ok {
		return false, fmt.Errorf("param %q missing", key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("param %q is %T, want bool", key, v)
	}
	return b, nil
}

// Slice returns the value as a []any.
func (p Params) Slice(key string) ([]any, error) {
	v, ok := p[key]
	if !ok {
		return nil, fmt.Errorf("param %q missing", key)
	}
	s, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("param %q is %T, want slice", key, v)
	}
	return s, nil
}

// IntOr returns the value as an int, or def when absent.
func (p Params) IntOr(key string, def int) int {
	if _, ok := p[key]; !ok {
		return def
	}
	n, err := p.Int(key)
	if err != nil {
		return def
	}
	return n
}

// FloatOr returns the value as a float64, or def when absent.
func (p Params) FloatOr(key string, def float64) float64 {
	if _, ok := p[key]; !ok {
		return def
	}
	f, err := p.Float(key)
	if err != nil {
		return def
	}
	return f
}

// StringOr returns the value as a string, or def when absent.
func (p Params) StringOr(key, def string) string {
	if _, ok := p[key]; !ok {
		return def
	}
	s, err := p.String(key)
	if err != nil {
		return def
	}
	return s
}
