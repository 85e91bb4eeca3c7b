package raster

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.White)
	return img
}

func TestStore_SaveWritesDecodablePNG(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, "http://localhost:8080")
	require.NoError(t, err)

	url, err := store.Save(testImage())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080"+PublicPathPrefix+"/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	f, err := os.Open(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
}

func TestStore_NamesAreUnique(t *testing.T) {
	store, err := NewStore(t.TempDir(), "http://localhost:8080/")
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		url, err := store.Save(testImage())
		require.NoError(t, err)
		assert.False(t, seen[url], "duplicate name %s", url)
		seen[url] = true
	}
}

func TestStore_TrimsTrailingSlashFromBaseURL(t *testing.T) {
	store, err := NewStore(t.TempDir(), "https://api.example.com/")
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com"+PublicPathPrefix+"/x.png", store.URL("x.png"))
}

func TestNewStore_CreatesOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "static", "png_output")
	_, err := NewStore(dir, "http://localhost:8080")
	require.NoError(t, err)
	assert.DirExists(t, dir)
}
