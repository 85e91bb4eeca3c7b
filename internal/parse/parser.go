// Package parse extracts PDF content as ordered Markdown. Text and table
// extraction is delegated to the tabula engine; this package orders the
// extracted elements by vertical position and renders them.
package parse

import (
	"os"
	"strings"

	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/tables"

	"github.com/sunyuchen88/pdfapi/internal/domain"
	"github.com/sunyuchen88/pdfapi/internal/observability"
)

// DefaultPDFName is used when no filename could be resolved for a request.
const DefaultPDFName = "unknown_pdf.pdf"

// ParseResult is the extracted Markdown for one PDF.
type ParseResult struct {
	PDFName string `json:"pdfname"`
	Content string `json:"content"`
}

// Parser converts PDF bytes into Markdown.
type Parser struct {
	logger      *observability.Logger
	detectorCfg tables.Config
}

// NewParser creates a parser with default table detection settings.
func NewParser(logger *observability.Logger) *Parser {
	return &Parser{
		logger:      logger,
		detectorCfg: tables.DefaultConfig(),
	}
}

// ParsePDF extracts text and tables from pdfData and returns them as one
// Markdown document. Per page, elements are ordered top of page first;
// pages are concatenated in page order and the result trimmed once.
func (p *Parser) ParsePDF(pdfData []byte, pdfName string) (ParseResult, error) {
	if pdfName == "" {
		pdfName = DefaultPDFName
	}
	if len(pdfData) == 0 {
		return ParseResult{}, domain.InputError("PDF data must not be empty", nil)
	}

	p.logger.Info().Str("pdfname", pdfName).Int("bytes", len(pdfData)).Msg("Parsing PDF")

	// The engine reads from a file, so stage the bytes in a temp file for
	// the duration of the parse.
	path, cleanup, err := stageTempPDF(pdfData)
	if err != nil {
		return ParseResult{}, err
	}
	defer cleanup()

	r, err := reader.Open(path)
	if err != nil {
		return ParseResult{}, domain.ParseError("failed to open PDF", err)
	}
	defer r.Close()

	pageCount, err := r.PageCount()
	if err != nil {
		return ParseResult{}, domain.ParseError("failed to read page count", err)
	}

	var fragments []string
	for i := 0; i < pageCount; i++ {
		elements, err := extractPageElements(r, i, p.detectorCfg)
		if err != nil {
			return ParseResult{}, domain.ParseError("failed to extract page content", err)
		}
		sortElements(elements)
		fragments = append(fragments, composePage(elements)...)
	}

	content := strings.TrimSpace(strings.Join(fragments, "\n\n"))

	p.logger.Info().Str("pdfname", pdfName).Int("pages", pageCount).Msg("PDF parsed")

	return ParseResult{PDFName: pdfName, Content: content}, nil
}

// stageTempPDF writes data to a temp file and returns its path plus a
// cleanup func that removes it.
func stageTempPDF(data []byte) (string, func(), error) {
	f, err := os.CreateTemp("", "pdfapi-*.pdf")
	if err != nil {
		return "", nil, domain.IOError("failed to create temp file", err)
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := f.Write(data); err != nil {
		f.Close()
		cleanup()
		return "", nil, domain.IOError("failed to write temp file", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, domain.IOError("failed to close temp file", err)
	}

	return path, cleanup, nil
}
