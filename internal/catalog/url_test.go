package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSearchURLKeepsRangeSyntaxLiteral(t *testing.T) {
	url := BuildSearchURL("https://collgs.lu/catalog/oseo/search", map[string]any{
		"a": "[1,2]",
	})
	assert.Contains(t, url, "a=[1,2]")
	assert.NotContains(t, url, "%5B")
}

func TestBuildSearchURLEncodesSpaces(t *testing.T) {
	url := BuildSearchURL("https://collgs.lu/catalog/oseo/search", map[string]any{
		"q": "two words",
	})
	assert.Contains(t, url, "q=two%20words")
	assert.NotContains(t, url, "two+words")
}

func TestBuildSearchURLBoundingBox(t *testing.T) {
	url := BuildSearchURL("https://collgs.lu/catalog/oseo/search", map[string]any{
		"box":       "-73.35,45.78,-73.23,45.87",
		"timeStart": "2025-03-01T00:00:00.000Z",
	})
	assert.Contains(t, url, "box=-73.35,45.78,-73.23,45.87")
	assert.Contains(t, url, "timeStart=2025-03-01T00:00:00.000Z")
}

func TestBuildSearchURLAssertsHTTPAccept(t *testing.T) {
	url := BuildSearchURL("https://collgs.lu/catalog/oseo/search", map[string]any{})
	assert.Contains(t, url, "httpAccept=json")
}

func TestBuildSearchURLDoesNotDuplicateHTTPAccept(t *testing.T) {
	url := BuildSearchURL("https://collgs.lu/catalog/oseo/search", map[string]any{
		"httpAccept": "json",
	})
	assert.Equal(t, 1, strings.Count(url, "httpAccept="))
}

func TestBuildSearchURLNonStringValues(t *testing.T) {
	url := BuildSearchURL("https://collgs.lu/catalog/oseo/search", map[string]any{
		"maxRecords": 100,
	})
	assert.Contains(t, url, "maxRecords=100")
}

func TestBuildSearchURLDeterministicOrder(t *testing.T) {
	params := map[string]any{"b": "2", "a": "1", "c": "3"}
	first := BuildSearchURL("https://x", params)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildSearchURL("https://x", params))
	}
}
