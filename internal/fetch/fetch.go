// Package fetch downloads request payloads from caller-supplied URLs.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/sunyuchen88/pdfapi/internal/domain"
	"github.com/sunyuchen88/pdfapi/internal/observability"
)

// Client downloads files over HTTP with a bounded timeout and body size.
// Transient upstream failures are retried with exponential backoff.
type Client struct {
	http    *http.Client
	maxBody int64
	retry   RetryConfig
	logger  *observability.Logger
}

// NewClient creates a download client. timeout bounds each request
// attempt; maxBody caps how many bytes are read from the response.
func NewClient(timeout time.Duration, maxBody int64, logger *observability.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		maxBody: maxBody,
		retry:   DefaultRetryConfig(),
		logger:  logger,
	}
}

// Download fetches rawURL and returns the response body. Failures are
// classified as client errors since the URL came from the caller.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	c.logger.Info().Str("url", rawURL).Msg("Downloading file")

	resp, err := c.doWithRetry(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		return c.http.Do(req)
	})
	if err != nil {
		var de *domain.DomainError
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, domain.FetchError("failed to download file", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.FetchError(fmt.Sprintf("download returned status %d", resp.StatusCode), nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, domain.FetchError("failed to read downloaded file", err)
	}

	c.logger.Info().Str("url", rawURL).Int("bytes", len(data)).Msg("Download complete")

	return data, nil
}

// FilenameFromURL derives a filename from the last path segment of
// rawURL, with any query string already stripped by URL parsing. Returns
// the empty string when no usable segment exists.
func FilenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return ""
	}
	return base
}
