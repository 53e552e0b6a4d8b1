package artifact

import (
	"encoding/json"
	"strings"
)

// Document is a schema-free view over a decoded JSON object. Upstream artifact
// shapes drift across versions, so every accessor tries a list of field names in
// priority order and returns a zero value instead of failing when nothing matches.
type Document map[string]any

// AsDocument coerces an arbitrary decoded JSON value into a Document.
func AsDocument(v any) (Document, bool) {
	switch d := v.(type) {
	case Document:
		return d, true
	case map[string]any:
		return Document(d), true
	default:
		return nil, false
	}
}

// Str returns the first non-empty string found under the given keys.
func (d Document) Str(keys ...string) string {
	for _, key := range keys {
		if s, ok := d[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// Num returns the first numeric value found under the given keys.
func (d Document) Num(keys ...string) (float64, bool) {
	for _, key := range keys {
		if n, ok := asNumber(d[key]); ok {
			return n, true
		}
	}
	return 0, false
}

// Items returns the first array value found under the given keys.
func (d Document) Items(keys ...string) []any {
	for _, key := range keys {
		if items, ok := d[key].([]any); ok {
			return items
		}
	}
	return nil
}

// Sub returns the first nested object found under the given keys.
func (d Document) Sub(keys ...string) Document {
	for _, key := range keys {
		if sub, ok := AsDocument(d[key]); ok {
			return sub
		}
	}
	return nil
}

// Strings returns the first array value under the given keys, keeping only its
// non-empty string entries.
func (d Document) Strings(keys ...string) []string {
	items := d.Items(keys...)
	if len(items) == 0 {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// Docs returns the first array value under the given keys, keeping only its
// object entries.
func (d Document) Docs(keys ...string) []Document {
	items := d.Items(keys...)
	if len(items) == 0 {
		return nil
	}
	var out []Document
	for _, item := range items {
		if doc, ok := AsDocument(item); ok {
			out = append(out, doc)
		}
	}
	return out
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
