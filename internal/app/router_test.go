package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/mandalnilabja/authdash/internal/transport/http/handler"
	"github.com/mandalnilabja/authdash/internal/transport/http/handler/proxy"
	"github.com/mandalnilabja/authdash/internal/transport/http/handler/webui"
	"github.com/mandalnilabja/authdash/internal/transport/http/middleware/ratelimit"
)

func newTestRouter(t *testing.T, limiter *ratelimit.Limiter) http.Handler {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"path":   r.URL.Path,
			"client": r.Header.Get("client_id"),
		})
	}))
	t.Cleanup(upstream.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	prox, err := proxy.New(proxy.Options{
		Upstream:  upstream.URL,
		APIKey:    "svc-key",
		KeyHeader: "client_id",
		Logger:    logger,
	})
	if err != nil {
		t.Fatalf("proxy.New: %v", err)
	}

	webUI, err := webui.NewFS(fstest.MapFS{
		"index.html":     {Data: []byte("<html>app</html>")},
		"static/app.css": {Data: []byte("body{}")},
	})
	if err != nil {
		t.Fatalf("webui.NewFS: %v", err)
	}
	t.Cleanup(webUI.Close)

	return NewRouter(handler.NewRepo(webUI, prox), &RouterOptions{Logger: logger, Limiter: limiter})
}

func TestRouterHealth(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "active" {
		t.Errorf("expected status active, got %v", body["status"])
	}
}

func TestRouterProxiesAPI(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["path"] != "/api/v1/auth/login" {
		t.Errorf("expected path to be kept, got %q", body["path"])
	}
	if body["client"] != "svc-key" {
		t.Errorf("expected injected key, got %q", body["client"])
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID on response")
	}
}

func TestRouterServesSPA(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		path string
		want string
	}{
		{"/", "<html>app</html>"},
		{"/login", "<html>app</html>"},
		{"/deep/client/route", "<html>app</html>"},
		{"/static/app.css", "body{}"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if rec.Body.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, rec.Body.String())
			}
		})
	}
}

func TestRouterRateLimitsAPIOnly(t *testing.T) {
	router := newTestRouter(t, ratelimit.New(1))

	get := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := get("/api/v1/me"); code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", code)
	}
	if code := get("/api/v1/me"); code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", code)
	}
	if code := get("/"); code != http.StatusOK {
		t.Errorf("web bundle should not be limited, got %d", code)
	}
}
