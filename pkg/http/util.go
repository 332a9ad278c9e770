package http

import (
	"strings"
)

// JoinURL appends path to baseURL verbatim, without normalising slashes or
// re-encoding either part.
func JoinURL(baseURL, path string) string {
	return baseURL + path
}

// CloneHeaders returns an independent copy of headers. A nil map yields an
// empty, non-nil map.
func CloneHeaders(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		out[k] = v
	}
	return out
}

// headerValue looks a header up case-insensitively.
func headerValue(headers map[string]string, key string) string {
	if v, ok := headers[key]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}
