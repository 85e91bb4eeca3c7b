package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"strings"

	"github.com/sunyuchen88/pdfapi/internal/domain"
	"github.com/sunyuchen88/pdfapi/internal/fetch"
	"github.com/sunyuchen88/pdfapi/internal/observability"
)

// FileKind names the expected payload type, used for fallback filenames.
type FileKind string

const (
	KindPDF FileKind = "pdf"
	KindZIP FileKind = "zip"
)

func (k FileKind) defaultName() string {
	return "unknown_" + string(k) + "." + string(k)
}

func (k FileKind) downloadName() string {
	return "downloaded_" + string(k) + "." + string(k)
}

var contentDispositionFilename = regexp.MustCompile(`filename="([^"]+)"`)

// urlRequest is the JSON body for the URL input mode.
type urlRequest struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Intake resolves a request's file payload from one of three input modes:
// multipart upload, JSON body with a download URL, or raw request bytes.
type Intake struct {
	downloader Downloader
	maxBody    int64
	logger     *observability.Logger
}

// NewIntake creates an intake layer.
func NewIntake(downloader Downloader, maxBody int64, logger *observability.Logger) *Intake {
	return &Intake{
		downloader: downloader,
		maxBody:    maxBody,
		logger:     logger,
	}
}

// ReadFile returns the payload bytes and resolved filename for a request.
func (i *Intake) ReadFile(r *http.Request, kind FileKind) ([]byte, string, error) {
	ct := r.Header.Get("Content-Type")

	switch {
	case strings.HasPrefix(ct, "multipart/form-data"):
		return i.readMultipart(r)
	case strings.HasPrefix(ct, "application/json"):
		return i.readFromURL(r, kind)
	default:
		return i.readRaw(r, kind)
	}
}

func (i *Intake) readMultipart(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(i.maxBody); err != nil {
		return nil, "", domain.InputError("invalid multipart form", err)
	}

	header := firstFileHeader(r.MultipartForm)
	if header == nil || header.Filename == "" {
		return nil, "", domain.InputError("no file found in multipart form", nil)
	}

	f, err := header.Open()
	if err != nil {
		return nil, "", domain.InputError("failed to open uploaded file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, i.maxBody))
	if err != nil {
		return nil, "", domain.IOError("failed to read uploaded file", err)
	}

	i.logger.Info().Str("filename", header.Filename).Int("bytes", len(data)).Msg("File received via multipart upload")
	return data, header.Filename, nil
}

// firstFileHeader picks the uploaded file: a part named "file" wins,
// otherwise the first file part found.
func firstFileHeader(form *multipart.Form) *multipart.FileHeader {
	if form == nil {
		return nil
	}
	if headers, ok := form.File["file"]; ok && len(headers) > 0 {
		return headers[0]
	}
	for _, headers := range form.File {
		if len(headers) > 0 {
			return headers[0]
		}
	}
	return nil
}

func (i *Intake) readFromURL(r *http.Request, kind FileKind) ([]byte, string, error) {
	var req urlRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		return nil, "", domain.InputError("invalid JSON body", err)
	}
	if req.URL == "" {
		return nil, "", domain.InputError("'url' key not found in JSON body", nil)
	}

	data, err := i.downloader.Download(r.Context(), req.URL)
	if err != nil {
		return nil, "", err
	}

	name := req.Filename
	if name == "" {
		name = fetch.FilenameFromURL(req.URL)
	}
	if name == "" {
		name = kind.downloadName()
	}

	return data, name, nil
}

func (i *Intake) readRaw(r *http.Request, kind FileKind) ([]byte, string, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, i.maxBody))
	if err != nil {
		return nil, "", domain.IOError("failed to read request body", err)
	}
	if len(data) == 0 {
		return nil, "", domain.InputError("request body is empty", nil)
	}

	name := r.Header.Get("X-File-Name")
	if name == "" {
		if m := contentDispositionFilename.FindStringSubmatch(r.Header.Get("Content-Disposition")); m != nil {
			name = m[1]
		}
	}
	if name == "" {
		name = r.URL.Query().Get("filename")
	}
	if name == "" {
		name = kind.defaultName()
	}

	i.logger.Info().Str("filename", name).Int("bytes", len(data)).Msg("File received via raw body")
	return data, name, nil
}
