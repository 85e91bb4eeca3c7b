// Package raster renders PDF pages to PNG files and manages their
// retention in a shared output directory.
package raster

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/sunyuchen88/pdfapi/internal/domain"
)

// PublicPathPrefix is the URL path under which stored files are served.
const PublicPathPrefix = "/static/png_output"

// Store writes PNG files under a configured output directory and builds
// their retrieval URLs. Names are uuid-based so concurrent requests never
// collide.
type Store struct {
	dir     string
	baseURL string
}

// NewStore creates the output directory if needed and returns a store.
func NewStore(outputDir, publicBaseURL string) (*Store, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, domain.IOError("failed to create output directory", err)
	}
	return &Store{
		dir:     outputDir,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Dir returns the output directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Save encodes img as PNG under a generated unique name and returns the
// file's retrieval URL.
func (s *Store) Save(img image.Image) (string, error) {
	name := strings.ReplaceAll(uuid.New().String(), "-", "") + ".png"
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", domain.IOError("failed to create PNG file", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", domain.IOError("failed to encode PNG", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", domain.IOError("failed to close PNG file", err)
	}

	return s.URL(name), nil
}

// URL returns the retrieval URL for a stored file name.
func (s *Store) URL(name string) string {
	return s.baseURL + PublicPathPrefix + "/" + name
}
