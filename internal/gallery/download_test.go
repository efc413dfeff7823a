package gallery

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestDownload(t *testing.T) {
	content := []byte("vsix archive bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(content)))
		w.Write(content)
	}))
	defer server.Close()

	// A nested destination exercises parent directory creation.
	dest := filepath.Join(t.TempDir(), "dist", "nested", "acme.widget-1.0.0.vsix")

	c := New(WithHTTPClient(server.Client()))
	if err := c.Download(server.URL, dest); err != nil {
		t.Fatalf("Download failed: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("downloaded content = %q, want %q", got, content)
	}
}

func TestDownloadHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	c := New(WithHTTPClient(server.Client()))
	err := c.Download(server.URL, filepath.Join(t.TempDir(), "x.vsix"))
	if err == nil {
		t.Fatal("Download succeeded on 404 response")
	}
}

func TestDownloadIfAbsentSkipsExisting(t *testing.T) {
	var hits atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("fresh bytes"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "cached.vsix")
	stale := []byte("stale cached bytes")
	if err := os.WriteFile(dest, stale, 0644); err != nil {
		t.Fatal(err)
	}

	c := New(WithHTTPClient(server.Client()))
	skipped, err := c.DownloadIfAbsent(server.URL, dest)
	if err != nil {
		t.Fatalf("DownloadIfAbsent failed: %v", err)
	}
	if !skipped {
		t.Error("existing destination was not skipped")
	}
	if hits.Load() != 0 {
		t.Errorf("server was hit %d times, want 0", hits.Load())
	}

	// Presence-based idempotence: the stale content is trusted as-is.
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, stale) {
		t.Error("existing file content was replaced")
	}
}

func TestDownloadIfAbsentFetchesMissing(t *testing.T) {
	content := []byte("fresh bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "new.vsix")

	c := New(WithHTTPClient(server.Client()))
	skipped, err := c.DownloadIfAbsent(server.URL, dest)
	if err != nil {
		t.Fatalf("DownloadIfAbsent failed: %v", err)
	}
	if skipped {
		t.Error("missing destination was reported as skipped")
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("downloaded content = %q, want %q", got, content)
	}
}
