// Package handlers provides HTTP handlers for the pdfapi service.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sunyuchen88/pdfapi/internal/domain"
	"github.com/sunyuchen88/pdfapi/internal/observability"
	"github.com/sunyuchen88/pdfapi/internal/parse"
)

// PDFParser is the parsing surface the handlers depend on.
type PDFParser interface {
	ParsePDF(pdfData []byte, pdfName string) (parse.ParseResult, error)
	ParseArchive(zipData []byte) ([]parse.EntryResult, error)
}

// PageRasterizer renders PDF pages to stored PNG files.
type PageRasterizer interface {
	RasterizePDF(pdfData []byte) ([]string, error)
}

// Downloader fetches payload bytes from a caller-supplied URL.
type Downloader interface {
	Download(ctx context.Context, rawURL string) ([]byte, error)
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries informational 200 responses.
type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps the error to the HTTP surface: client-input errors are
// 400, everything else 500. The message embeds the underlying error text.
func writeError(w http.ResponseWriter, logger *observability.Logger, err error) {
	status := http.StatusInternalServerError
	if domain.IsClientError(err) {
		status = http.StatusBadRequest
	}
	logger.Error().Err(err).Int("status", status).Msg("Request failed")
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
