package server

import "strings"

// StringParam returns a string argument or def.
func StringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

// BoolParam returns a boolean argument or def.
func BoolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

// ListParam splits a comma-separated string argument, dropping blanks.
func ListParam(params map[string]interface{}, key string) []string {
	var out []string
	for _, part := range strings.Split(StringParam(params, key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
