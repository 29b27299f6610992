package catalog

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// queryUnescaper restores the characters that stay literal in the query
// string so bounding-box and range values remain readable, and swaps the
// form-style plus for a percent-encoded space.
var queryUnescaper = strings.NewReplacer(
	"%2C", ",",
	"%5B", "[",
	"%5D", "]",
	"%3A", ":",
	"+", "%20",
)

func encodeQueryComponent(s string) string {
	return queryUnescaper.Replace(url.QueryEscape(s))
}

// BuildSearchURL combines the base URL and the query parameters into the
// catalog request URL. httpAccept=json is asserted here as well, so the URL
// is correct even when the config skipped the injection. Keys are emitted in
// sorted order for a deterministic URL.
func BuildSearchURL(baseURL string, params map[string]any) string {
	query := make(map[string]string, len(params)+1)
	for k, v := range params {
		query[k] = fmt.Sprint(v)
	}
	if _, ok := query["httpAccept"]; !ok {
		query["httpAccept"] = "json"
	}
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(baseURL)
	b.WriteByte('?')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(encodeQueryComponent(k))
		b.WriteByte('=')
		b.WriteString(encodeQueryComponent(query[k]))
	}
	return b.String()
}
