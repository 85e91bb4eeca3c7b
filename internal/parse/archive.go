package parse

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"

	"github.com/sunyuchen88/pdfapi/internal/domain"
	"github.com/sunyuchen88/pdfapi/internal/observability"
)

// EntryStatus tells archive callers whether an entry parsed or degraded.
type EntryStatus string

const (
	StatusParsed EntryStatus = "parsed"
	StatusFailed EntryStatus = "failed"
)

// failurePrefix marks degraded entry content.
const failurePrefix = "parse failed: "

// EntryResult is the outcome for one PDF entry of an archive.
type EntryResult struct {
	PDFName string      `json:"pdfname"`
	Content string      `json:"content"`
	Status  EntryStatus `json:"status"`
}

// parseFunc is the per-entry parse operation; injectable for tests.
type parseFunc func(data []byte, name string) (ParseResult, error)

// ParseArchive extracts every entry whose name ends in .pdf (case
// insensitive) and parses it, preserving archive order. A failing entry
// degrades to a result embedding the error text; it never aborts the
// archive. Zero PDF entries yields an empty, non-nil slice.
func (p *Parser) ParseArchive(zipData []byte) ([]EntryResult, error) {
	return parseArchive(zipData, p.ParsePDF, p.logger)
}

func parseArchive(zipData []byte, parse parseFunc, logger *observability.Logger) ([]EntryResult, error) {
	if len(zipData) == 0 {
		return nil, domain.InputError("ZIP data must not be empty", nil)
	}

	zr, err := zip.NewReader(bytes.NewReader(zipData), int64(len(zipData)))
	if err != nil {
		return nil, domain.InputError("request body is not a valid ZIP archive", err)
	}

	results := make([]EntryResult, 0)
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name), ".pdf") {
			logger.Info().Str("entry", entry.Name).Msg("Skipping non-PDF archive entry")
			continue
		}

		data, err := readArchiveEntry(entry)
		if err == nil {
			var res ParseResult
			res, err = parse(data, entry.Name)
			if err == nil {
				results = append(results, EntryResult{
					PDFName: res.PDFName,
					Content: res.Content,
					Status:  StatusParsed,
				})
				continue
			}
		}

		logger.Warn().Str("entry", entry.Name).Err(err).Msg("Archive entry failed to parse")
		results = append(results, EntryResult{
			PDFName: entry.Name,
			Content: failurePrefix + err.Error(),
			Status:  StatusFailed,
		})
	}

	return results, nil
}

func readArchiveEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
