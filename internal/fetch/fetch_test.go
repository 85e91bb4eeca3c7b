package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunyuchen88/pdfapi/internal/domain"
	"github.com/sunyuchen88/pdfapi/internal/observability"
)

func TestDownload_ReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("%PDF-1.7 fake"))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, 1<<20, observability.NopLogger())
	data, err := c.Download(context.Background(), srv.URL+"/doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 fake"), data)
}

func TestDownload_Non2xxIsClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, 1<<20, observability.NopLogger())
	_, err := c.Download(context.Background(), srv.URL+"/missing.pdf")
	require.Error(t, err)
	assert.True(t, domain.IsClientError(err))
}

func TestDownload_UnreachableHostIsClientError(t *testing.T) {
	c := NewClient(500*time.Millisecond, 1<<20, observability.NopLogger())
	c.retry.MaxRetries = 0
	_, err := c.Download(context.Background(), "http://127.0.0.1:1/doc.pdf")
	require.Error(t, err)
	assert.True(t, domain.IsClientError(err))
}

func TestDownload_RetriesTransientFailures(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("%PDF-1.7 fake"))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, 1<<20, observability.NopLogger())
	c.retry.InitialBackoff = time.Millisecond

	data, err := c.Download(context.Background(), srv.URL+"/doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 fake"), data)
	assert.Equal(t, 2, calls)
}

func TestDownload_NoRetryOn404(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, 1<<20, observability.NopLogger())
	_, err := c.Download(context.Background(), srv.URL+"/missing.pdf")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDownload_CapsBodySize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 2048))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, 1024, observability.NopLogger())
	data, err := c.Download(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, data, 1024)
}

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/files/report.pdf", "report.pdf"},
		{"https://example.com/files/report.pdf?token=abc", "report.pdf"},
		{"https://example.com/", ""},
		{"https://example.com", ""},
		{"://bad url", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FilenameFromURL(tt.url), tt.url)
	}
}
