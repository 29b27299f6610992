package catalog

import (
	"sort"
	"strings"
)

// Field names that commonly carry asset links.
var linkKeys = map[string]struct{}{
	"url":          {},
	"href":         {},
	"downloadlink": {},
	"file":         {},
	"link":         {},
}

// FindZipLinks scans a decoded JSON tree for strings that look like ZIP
// asset links. The scan is a permissive heuristic, not a schema-aware parse:
// the upstream response shape is not fixed, so any string containing ".zip"
// is collected, whether it was reached through a link-ish field name or not.
// A link-ish field whose value has no ".zip" in it is skipped. The result is
// deduplicated and sorted.
func FindZipLinks(v any) []string {
	found := make(map[string]struct{})
	walkLinks(v, found)
	links := make([]string, 0, len(found))
	for l := range found {
		links = append(links, l)
	}
	sort.Strings(links)
	return links
}

func walkLinks(node any, found map[string]struct{}) {
	switch n := node.(type) {
	case map[string]any:
		// An explicit 'data' section is searched first. Order does not
		// change the result set, only the traversal.
		if data, ok := n["data"]; ok {
			walkLinks(data, found)
		}
		for k, v := range n {
			switch val := v.(type) {
			case map[string]any, []any:
				walkLinks(val, found)
			case string:
				_, linkish := linkKeys[strings.ToLower(k)]
				if linkish || strings.HasSuffix(val, ".zip") || strings.Contains(val, ".zip") {
					if strings.Contains(strings.ToLower(val), ".zip") {
						found[val] = struct{}{}
					}
				}
			}
		}
	case []any:
		for _, item := range n {
			walkLinks(item, found)
		}
	}
}
