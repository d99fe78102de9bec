package normalize

import "encoding/json"

// A rule extracts one candidate value from a payload. An empty result means
// "try the next rule".
type rule func(payload map[string]any) string

// firstOf runs the rules in order and returns the first non-empty value, or
// fallback when every rule comes up empty.
func firstOf(payload map[string]any, fallback string, rules ...rule) string {
	for _, r := range rules {
		if v := r(payload); v != "" {
			return v
		}
	}
	return fallback
}

// field reads a scalar at the given key path. Numbers are rendered as written
// in the response (user ids come back numeric from some backends). Any other
// shape yields "".
func field(path ...string) rule {
	return func(payload map[string]any) string {
		return scalar(lookup(payload, path...))
	}
}

// prefix truncates the value of another rule to at most n runes.
func prefix(r rule, n int) rule {
	return func(payload map[string]any) string {
		return truncate(r(payload), n)
	}
}

func lookup(payload map[string]any, path ...string) any {
	var current any = payload
	for _, key := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = obj[key]
	}
	return current
}

func scalar(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case json.Number:
		return value.String()
	default:
		return ""
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
