package utils

import (
	"sort"
	"strings"
)

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Every hash, comparison and cache key is computed on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasDomainSuffix reports whether a normalized email ends with suffix.
// An empty suffix accepts every address.
func HasDomainSuffix(email, suffix string) bool {
	if suffix == "" {
		return true
	}
	return strings.HasSuffix(email, strings.ToLower(suffix))
}

// GenerateCacheKey builds "prefix:k1:v1|k2:v2" with keys in sorted order so the
// same parameters always produce the same key.
func GenerateCacheKey(prefix string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+":"+params[k])
	}
	return prefix + ":" + strings.Join(parts, "|")
}
