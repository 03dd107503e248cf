package ocr

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "label.png")
	if err := os.WriteFile(path, []byte("fake-image-bytes"), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	return path
}

func TestHFProviderConfigured(t *testing.T) {
	if (&HFProvider{Model: "org/model"}).Configured() {
		t.Fatal("Configured() without token")
	}
	if (&HFProvider{Token: "hf_x"}).Configured() {
		t.Fatal("Configured() without model")
	}
	if !NewHFProvider(" org/model ", " hf_x ").Configured() {
		t.Fatal("Configured() = false with model and token set")
	}
}

func TestHFProviderTryExtract(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`[{"text": "SCANNED TEXT"}]`))
	}))
	defer srv.Close()

	p := NewHFProvider("org/model", "hf_token")
	p.BaseURL = srv.URL

	text, err := p.TryExtract(context.Background(), writeImage(t))
	if err != nil {
		t.Fatalf("TryExtract() error: %v", err)
	}

	if text != "SCANNED TEXT" {
		t.Fatalf("text = %q", text)
	}
	if gotAuth != "Bearer hf_token" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotPath != "/models/org/model" {
		t.Fatalf("path = %q", gotPath)
	}
	if string(gotBody) != "fake-image-bytes" {
		t.Fatalf("body = %q, want raw image bytes", gotBody)
	}
}

func TestHFProviderNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model is loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewHFProvider("org/model", "hf_token")
	p.BaseURL = srv.URL

	if _, err := p.TryExtract(context.Background(), writeImage(t)); err == nil {
		t.Fatal("TryExtract() on a 503 returned no error")
	}
}

func TestHFProviderMissingImage(t *testing.T) {
	p := NewHFProvider("org/model", "hf_token")

	if _, err := p.TryExtract(context.Background(), filepath.Join(t.TempDir(), "absent.png")); err == nil {
		t.Fatal("TryExtract() on a missing image returned no error")
	}
}
