package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunyuchen88/pdfapi/internal/domain"
	"github.com/sunyuchen88/pdfapi/internal/observability"
	"github.com/sunyuchen88/pdfapi/internal/parse"
)

type stubParser struct {
	parsePDF     func(data []byte, name string) (parse.ParseResult, error)
	parseArchive func(data []byte) ([]parse.EntryResult, error)
}

func (s *stubParser) ParsePDF(data []byte, name string) (parse.ParseResult, error) {
	return s.parsePDF(data, name)
}

func (s *stubParser) ParseArchive(data []byte) ([]parse.EntryResult, error) {
	return s.parseArchive(data)
}

type stubRasterizer struct {
	urls []string
	err  error
}

func (s *stubRasterizer) RasterizePDF(_ []byte) ([]string, error) {
	return s.urls, s.err
}

func TestParsePDFHandler(t *testing.T) {
	logger := observability.NopLogger()
	intake := newTestIntake(&stubDownloader{})

	t.Run("success", func(t *testing.T) {
		parser := &stubParser{
			parsePDF: func(data []byte, name string) (parse.ParseResult, error) {
				return parse.ParseResult{PDFName: name, Content: "# Title"}, nil
			},
		}
		h := NewParseHandler(logger, parser, intake)

		r := httptest.NewRequest("POST", "/pdf_parser", strings.NewReader("%PDF-data"))
		r.Header.Set("X-File-Name", "report.pdf")
		w := httptest.NewRecorder()

		h.ParsePDF(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var result parse.ParseResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "report.pdf", result.PDFName)
		assert.Equal(t, "# Title", result.Content)
	})

	t.Run("empty body is a client error", func(t *testing.T) {
		parser := &stubParser{
			parsePDF: func([]byte, string) (parse.ParseResult, error) {
				t.Fatal("parser must not be called for an empty body")
				return parse.ParseResult{}, nil
			},
		}
		h := NewParseHandler(logger, parser, intake)

		r := httptest.NewRequest("POST", "/pdf_parser", strings.NewReader(""))
		w := httptest.NewRecorder()

		h.ParsePDF(w, r)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "request body is empty")
	})

	t.Run("parse failure is a server error", func(t *testing.T) {
		parser := &stubParser{
			parsePDF: func([]byte, string) (parse.ParseResult, error) {
				return parse.ParseResult{}, domain.ParseError("failed to open PDF", errors.New("bad xref"))
			},
		}
		h := NewParseHandler(logger, parser, intake)

		r := httptest.NewRequest("POST", "/pdf_parser", strings.NewReader("not a pdf"))
		w := httptest.NewRecorder()

		h.ParsePDF(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestParseZIPHandler(t *testing.T) {
	logger := observability.NopLogger()
	intake := newTestIntake(&stubDownloader{})

	t.Run("entry results returned in order", func(t *testing.T) {
		parser := &stubParser{
			parseArchive: func([]byte) ([]parse.EntryResult, error) {
				return []parse.EntryResult{
					{PDFName: "a.pdf", Content: "A", Status: parse.StatusParsed},
					{PDFName: "b.pdf", Content: "parse failed: bad xref", Status: parse.StatusFailed},
				}, nil
			},
		}
		h := NewParseHandler(logger, parser, intake)

		r := httptest.NewRequest("POST", "/zip_parser", strings.NewReader("PK\x03\x04zipdata"))
		w := httptest.NewRecorder()

		h.ParseZIP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var results []parse.EntryResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
		require.Len(t, results, 2)
		assert.Equal(t, "a.pdf", results[0].PDFName)
		assert.Equal(t, parse.StatusParsed, results[0].Status)
		assert.Equal(t, parse.StatusFailed, results[1].Status)
	})

	t.Run("no PDFs yields a message", func(t *testing.T) {
		parser := &stubParser{
			parseArchive: func([]byte) ([]parse.EntryResult, error) {
				return []parse.EntryResult{}, nil
			},
		}
		h := NewParseHandler(logger, parser, intake)

		r := httptest.NewRequest("POST", "/zip_parser", strings.NewReader("PK\x03\x04zipdata"))
		w := httptest.NewRecorder()

		h.ParseZIP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var resp MessageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "no parsable PDF files found in the ZIP archive", resp.Message)
	})

	t.Run("invalid archive is a client error", func(t *testing.T) {
		parser := &stubParser{
			parseArchive: func([]byte) ([]parse.EntryResult, error) {
				return nil, domain.InputError("request body is not a valid ZIP archive", nil)
			},
		}
		h := NewParseHandler(logger, parser, intake)

		r := httptest.NewRequest("POST", "/zip_parser", strings.NewReader("not a zip"))
		w := httptest.NewRecorder()

		h.ParseZIP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPDFToPNGHandler(t *testing.T) {
	logger := observability.NopLogger()
	intake := newTestIntake(&stubDownloader{})

	t.Run("image urls returned", func(t *testing.T) {
		rasterizer := &stubRasterizer{urls: []string{
			"/static/png_output/aaa.png",
			"/static/png_output/bbb.png",
		}}
		h := NewRasterHandler(logger, rasterizer, intake)

		r := httptest.NewRequest("POST", "/pdf_to_png", strings.NewReader("%PDF-data"))
		w := httptest.NewRecorder()

		h.PDFToPNG(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var resp ImageURLsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, rasterizer.urls, resp.ImageURLs)
	})

	t.Run("zero pages yields a message", func(t *testing.T) {
		h := NewRasterHandler(logger, &stubRasterizer{urls: []string{}}, intake)

		r := httptest.NewRequest("POST", "/pdf_to_png", strings.NewReader("%PDF-data"))
		w := httptest.NewRecorder()

		h.PDFToPNG(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var resp MessageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "no PNG images were generated from the PDF", resp.Message)
	})

	t.Run("raster failure is a server error", func(t *testing.T) {
		h := NewRasterHandler(logger, &stubRasterizer{err: domain.RasterError("failed to open PDF", errors.New("boom"))}, intake)

		r := httptest.NewRequest("POST", "/pdf_to_png", strings.NewReader("not a pdf"))
		w := httptest.NewRecorder()

		h.PDFToPNG(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
