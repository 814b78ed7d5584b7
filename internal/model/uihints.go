package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

const messagePrefix = "message."

var (
	uiHintKeys = []string{
		"cssClass",
		"downloadLabel",
		"helpText",
		"hideLabel",
		"icon",
		"inputType",
		"label",
		"placeholder",
		"rows",
		"submitLabel",
		"widget",
	}

	uiHintKeySet = func(keys []string) map[string]struct{} {
		result := make(map[string]struct{}, len(keys))
		for _, key := range keys {
			result[key] = struct{}{}
		}
		return result
	}(uiHintKeys)
)

// IsAllowedUIHintKey reports whether key participates in the UI hint contract.
func IsAllowedUIHintKey(key string) bool {
	_, ok := uiHintKeySet[key]
	return ok
}

// ParseUIExtensions splits x-formpdf extensions into metadata (every key) and
// the curated UI hints subset. Nil maps are returned when nothing applies.
func ParseUIExtensions(ext map[string]any) (map[string]string, map[string]string) {
	metadata := metadataFromExtensions(ext)
	return metadata, filterUIHints(metadata)
}

// CanonicalizeExtensionValue turns an extension value into a stable string.
// Returns false when the value cannot be represented deterministically.
func CanonicalizeExtensionValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, v != ""
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case []any, map[string]any:
		payload, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(payload), true
	default:
		return "", false
	}
}

func metadataFromExtensions(ext map[string]any) map[string]string {
	if len(ext) == 0 {
		return nil
	}
	result := make(map[string]string, len(ext))
	for key, value := range ext {
		if str, ok := CanonicalizeExtensionValue(value); ok {
			result[strings.TrimSpace(key)] = str
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func filterUIHints(metadata map[string]string) map[string]string {
	var hints map[string]string
	for key, value := range metadata {
		if !IsAllowedUIHintKey(key) {
			continue
		}
		if hints == nil {
			hints = make(map[string]string)
		}
		hints[key] = value
	}
	return hints
}

func mergeStrings(target, updates map[string]string) map[string]string {
	if len(updates) == 0 {
		return target
	}
	if target == nil {
		target = make(map[string]string, len(updates))
	}
	for key, value := range updates {
		target[key] = value
	}
	return target
}
