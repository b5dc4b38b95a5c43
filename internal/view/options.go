package view

import "strconv"

// Options is a view's render configuration.
type Options map[string]any

// Float returns the numeric option key, or def when it is missing or not a
// number.
func (o Options) Float(key string, def float64) float64 {
	switch v := o[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// Text returns the string option key, or def.
func (o Options) Text(key, def string) string {
	if v, ok := o[key].(string); ok && v != "" {
		return v
	}
	return def
}
