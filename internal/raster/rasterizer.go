package raster

import (
	"fmt"

	"github.com/gen2brain/go-fitz"

	"github.com/sunyuchen88/pdfapi/internal/domain"
	"github.com/sunyuchen88/pdfapi/internal/observability"
)

// Rasterizer renders PDF pages to PNG files via go-fitz (MuPDF).
type Rasterizer struct {
	store  *Store
	logger *observability.Logger
}

// NewRasterizer creates a rasterizer writing into store.
func NewRasterizer(store *Store, logger *observability.Logger) *Rasterizer {
	return &Rasterizer{store: store, logger: logger}
}

// RasterizePDF renders every page of pdfData to a PNG file and returns the
// retrieval URLs in page order. A document with zero pages yields an empty
// slice, not an error.
func (r *Rasterizer) RasterizePDF(pdfData []byte) ([]string, error) {
	if len(pdfData) == 0 {
		return nil, domain.InputError("PDF data must not be empty", nil)
	}

	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, domain.RasterError("failed to open PDF", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	urls := make([]string, 0, pageCount)

	for n := 0; n < pageCount; n++ {
		img, err := doc.Image(n)
		if err != nil {
			return nil, domain.RasterError(fmt.Sprintf("failed to render page %d", n+1), err)
		}

		url, err := r.store.Save(img)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	r.logger.Info().Int("pages", pageCount).Msg("PDF rasterized")

	return urls, nil
}
