package catalog

import "strings"

// ResolveURL turns a relative asset path into an absolute URL against base.
// Already-absolute URLs pass through unchanged. Slashes are normalized so
// the join never doubles a separator.
func ResolveURL(base string, raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(raw, "/")
}
