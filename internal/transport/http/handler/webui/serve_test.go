package webui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	h, err := NewFS(fstest.MapFS{
		"index.html":          {Data: []byte("<html>app</html>")},
		"assets/main.js":      {Data: []byte("console.log(1)")},
		"images/logo.png":     {Data: []byte("png")},
		"assets/nested/x.css": {Data: []byte("body{}")},
	})
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	t.Cleanup(h.Close)
	return h
}

func TestServeWebUI(t *testing.T) {
	h := newTestHandlers(t)
	handler := h.ServeWebUI()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"index", http.MethodGet, "/", http.StatusOK, "<html>app</html>"},
		{"static asset", http.MethodGet, "/assets/main.js", http.StatusOK, "console.log(1)"},
		{"nested asset", http.MethodGet, "/assets/nested/x.css", http.StatusOK, "body{}"},
		{"client route falls back", http.MethodGet, "/login", http.StatusOK, "<html>app</html>"},
		{"deep client route falls back", http.MethodGet, "/forgot-password/step/2", http.StatusOK, "<html>app</html>"},
		{"directory falls back", http.MethodGet, "/assets", http.StatusOK, "<html>app</html>"},
		{"traversal stays inside", http.MethodGet, "/../../etc/passwd", http.StatusOK, "<html>app</html>"},
		{"post rejected", http.MethodPost, "/login", http.StatusMethodNotAllowed, "method not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Twice: the second request is answered from the lookup cache.
			for i := 0; i < 2; i++ {
				req := httptest.NewRequest(tt.method, tt.path, nil)
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, req)

				if rec.Code != tt.wantStatus {
					t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
				}
				if !strings.Contains(rec.Body.String(), tt.wantBody) {
					t.Errorf("expected body to contain %q, got %q", tt.wantBody, rec.Body.String())
				}
				h.exists.Wait()
			}
		})
	}
}

func TestNewFSRequiresIndex(t *testing.T) {
	if _, err := NewFS(fstest.MapFS{"app.js": {Data: []byte("x")}}); err == nil {
		t.Error("expected error for bundle without index.html")
	}
}

func TestNewEmbedded(t *testing.T) {
	h, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer h.Close()

	rec := httptest.NewRecorder()
	h.ServeWebUI().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected embedded stylesheet, got status %d", rec.Code)
	}
}

func TestNewMissingDir(t *testing.T) {
	if _, err := New(t.TempDir() + "/missing"); err == nil {
		t.Error("expected error for missing static dir")
	}
}
