package handlers

import (
	"net/http"

	"github.com/sunyuchen88/pdfapi/internal/observability"
)

// ParseHandler serves the PDF and ZIP parsing endpoints.
type ParseHandler struct {
	logger *observability.Logger
	parser PDFParser
	intake *Intake
}

// NewParseHandler creates a parse handler.
func NewParseHandler(logger *observability.Logger, parser PDFParser, intake *Intake) *ParseHandler {
	return &ParseHandler{
		logger: logger,
		parser: parser,
		intake: intake,
	}
}

// ParsePDF handles POST /pdf_parser.
func (h *ParseHandler) ParsePDF(w http.ResponseWriter, r *http.Request) {
	h.logger.Info().Msg("PDF parse request received")

	data, name, err := h.intake.ReadFile(r, KindPDF)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	result, err := h.parser.ParsePDF(data, name)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ParseZIP handles POST /zip_parser.
func (h *ParseHandler) ParseZIP(w http.ResponseWriter, r *http.Request) {
	h.logger.Info().Msg("ZIP parse request received")

	// The archive's own filename is irrelevant; its entries carry names.
	data, _, err := h.intake.ReadFile(r, KindZIP)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	results, err := h.parser.ParseArchive(data)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if len(results) == 0 {
		writeJSON(w, http.StatusOK, MessageResponse{Message: "no parsable PDF files found in the ZIP archive"})
		return
	}

	writeJSON(w, http.StatusOK, results)
}
