package download

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressLifecycle(t *testing.T) {
	pm := NewProgressManager()
	pm.Register("a.zip", -1)
	pm.SetTotal("a.zip", 100)
	pm.Update("a.zip", 60)
	pm.Update("a.zip", 40)
	pm.Complete("a.zip")

	info := pm.progressMap["a.zip"]
	require.NotNil(t, info)
	assert.True(t, info.Completed)
	assert.Equal(t, int64(100), info.CompletedSize)
	assert.Equal(t, int64(100), info.TotalSize)
}

func TestProgressFailure(t *testing.T) {
	pm := NewProgressManager()
	pm.Register("b.zip", -1)
	pm.Fail("b.zip", errors.New("unexpected status code: 500"))

	info := pm.progressMap["b.zip"]
	require.NotNil(t, info)
	assert.True(t, info.Completed)
	assert.Contains(t, info.Failure, "500")
}

func TestProgressUnknownNameIsIgnored(t *testing.T) {
	pm := NewProgressManager()
	pm.Update("never-registered.zip", 10)
	pm.Complete("never-registered.zip")
	assert.Empty(t, pm.progressMap)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[>"+strings.Repeat(" ", 29)+"]", progressBar(0))
	assert.Equal(t, "["+strings.Repeat("=", 30)+"]", progressBar(1))
	half := progressBar(0.5)
	assert.Equal(t, 15, strings.Count(half, "="))
	assert.Contains(t, half, ">")
}
