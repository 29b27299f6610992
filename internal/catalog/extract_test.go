package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestFindZipLinksHeuristicCapture(t *testing.T) {
	v := decode(t, `{"data": {"items": [
		{"url": "http://x/a.zip"},
		{"href": "rel/b.ZIP"},
		{"note": "see a.zip for details"}
	]}}`)

	links := FindZipLinks(v)
	// the non-link "note" field still qualifies through the substring match
	assert.Equal(t, []string{"http://x/a.zip", "rel/b.ZIP", "see a.zip for details"}, links)
}

func TestFindZipLinksFieldNameAloneIsNotEnough(t *testing.T) {
	v := decode(t, `{"url": "http://x/readme.txt"}`)
	assert.Empty(t, FindZipLinks(v))
}

func TestFindZipLinksUppercaseZipNeedsLinkishKey(t *testing.T) {
	// a link-ish key admits any case; a plain key only matches lowercase .zip
	v := decode(t, `{"link": "B.ZIP", "note": "C.ZIP"}`)
	assert.Equal(t, []string{"B.ZIP"}, FindZipLinks(v))
}

func TestFindZipLinksDeduplicates(t *testing.T) {
	v := decode(t, `{"a": {"url": "http://x/a.zip"}, "b": {"href": "http://x/a.zip"}}`)
	assert.Equal(t, []string{"http://x/a.zip"}, FindZipLinks(v))
}

func TestFindZipLinksDeepNesting(t *testing.T) {
	v := decode(t, `[[{"wrapped": {"downloadLink": "deep/product.zip"}}], {"file": "another.zip"}]`)
	assert.Equal(t, []string{"another.zip", "deep/product.zip"}, FindZipLinks(v))
}

func TestFindZipLinksIgnoresNonStringScalars(t *testing.T) {
	v := decode(t, `{"url": 42, "href": true, "link": null, "items": [1, 2.5, false]}`)
	assert.Empty(t, FindZipLinks(v))
}

func TestFindZipLinksScalarRoot(t *testing.T) {
	assert.Empty(t, FindZipLinks("just-a-string.zip-less"))
	assert.Empty(t, FindZipLinks(nil))
}
