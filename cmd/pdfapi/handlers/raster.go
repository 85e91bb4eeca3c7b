package handlers

import (
	"net/http"

	"github.com/sunyuchen88/pdfapi/internal/observability"
)

// RasterHandler serves the PDF to PNG endpoint.
type RasterHandler struct {
	logger     *observability.Logger
	rasterizer PageRasterizer
	intake     *Intake
}

// NewRasterHandler creates a raster handler.
func NewRasterHandler(logger *observability.Logger, rasterizer PageRasterizer, intake *Intake) *RasterHandler {
	return &RasterHandler{
		logger:     logger,
		rasterizer: rasterizer,
		intake:     intake,
	}
}

// ImageURLsResponse lists the retrieval URLs of rasterized pages.
type ImageURLsResponse struct {
	ImageURLs []string `json:"image_urls"`
}

// PDFToPNG handles POST /pdf_to_png.
func (h *RasterHandler) PDFToPNG(w http.ResponseWriter, r *http.Request) {
	h.logger.Info().Msg("PDF to PNG request received")

	data, name, err := h.intake.ReadFile(r, KindPDF)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info().Str("filename", name).Int("bytes", len(data)).Msg("Rasterizing PDF")

	urls, err := h.rasterizer.RasterizePDF(data)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if len(urls) == 0 {
		writeJSON(w, http.StatusOK, MessageResponse{Message: "no PNG images were generated from the PDF"})
		return
	}

	writeJSON(w, http.StatusOK, ImageURLsResponse{ImageURLs: urls})
}
