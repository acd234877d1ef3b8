package middleware

import (
	"compress/gzip"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name           string
		existingID     string
		wantNewID      bool
		wantPassedThru bool
	}{
		{
			name:           "generates new ID when none provided",
			existingID:     "",
			wantNewID:      true,
			wantPassedThru: false,
		},
		{
			name:           "uses existing ID from header",
			existingID:     "existing-request-id",
			wantNewID:      false,
			wantPassedThru: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var capturedID string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				capturedID = GetRequestID(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.existingID != "" {
				req.Header.Set(RequestIDHeader, tt.existingID)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			// Check response header
			respID := rec.Header().Get(RequestIDHeader)
			if respID == "" {
				t.Error("expected X-Request-ID in response header")
			}

			// Check context value
			if capturedID == "" {
				t.Error("expected request ID in context")
			}

			// Check if ID was passed through or generated
			if tt.wantPassedThru && respID != tt.existingID {
				t.Errorf("expected ID %q, got %q", tt.existingID, respID)
			}

			if tt.wantNewID {
				if _, err := uuid.Parse(respID); err != nil {
					t.Errorf("expected generated UUID, got %q", respID)
				}
			}
		})
	}
}

func TestCORS(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("sets CORS headers on regular request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("expected Access-Control-Allow-Origin header")
		}
		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
	})

	t.Run("handles OPTIONS preflight request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/test", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
		}
	})
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{
			name:       "remote address without forwarding",
			remoteAddr: "192.0.2.10:51234",
			want:       "192.0.2.10",
		},
		{
			name:       "forwarded header is ignored",
			remoteAddr: "192.0.2.10:51234",
			forwarded:  "203.0.113.7",
			want:       "192.0.2.10",
		},
		{
			name:       "remote address without port",
			remoteAddr: "192.0.2.10",
			want:       "192.0.2.10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			if got := ClientIP(req); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTrustedClientIP(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.0.2.1"})
	if err != nil {
		t.Fatalf("ParseTrustedProxies: %v", err)
	}
	clientIP := TrustedClientIP(trusted)

	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{
			name:       "trusted network uses first forwarded hop",
			remoteAddr: "10.1.2.3:80",
			forwarded:  "203.0.113.7, 10.1.2.3",
			want:       "203.0.113.7",
		},
		{
			name:       "trusted single address",
			remoteAddr: "192.0.2.1:80",
			forwarded:  "203.0.113.8",
			want:       "203.0.113.8",
		},
		{
			name:       "untrusted caller cannot spoof",
			remoteAddr: "198.51.100.4:5000",
			forwarded:  "203.0.113.7",
			want:       "198.51.100.4",
		},
		{
			name:       "trusted without header",
			remoteAddr: "10.1.2.3:80",
			want:       "10.1.2.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			if got := clientIP(req); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	prefixes, err := ParseTrustedProxies([]string{" 10.0.0.0/8 ", "", "::1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prefixes) != 2 {
		t.Fatalf("expected 2 prefixes, got %d", len(prefixes))
	}
	if prefixes[1].Bits() != 128 {
		t.Errorf("expected bare address as /128, got /%d", prefixes[1].Bits())
	}

	if _, err := ParseTrustedProxies([]string{"not-an-ip"}); err == nil {
		t.Error("expected error for invalid entry")
	}
}

func TestCompress(t *testing.T) {
	body := strings.Repeat("authdash ", 512)
	handler := Compress(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))

	t.Run("gzips when accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Header().Get("Content-Encoding") != "gzip" {
			t.Fatalf("expected gzip encoding, got %q", rec.Header().Get("Content-Encoding"))
		}
		zr, err := gzip.NewReader(rec.Body)
		if err != nil {
			t.Fatalf("gzip reader: %v", err)
		}
		decoded, err := io.ReadAll(zr)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if string(decoded) != body {
			t.Error("decoded body does not match")
		}
	})

	t.Run("plain when not accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Header().Get("Content-Encoding") != "" {
			t.Error("expected no content encoding")
		}
		if rec.Body.String() != body {
			t.Error("expected body unchanged")
		}
	})
}

func TestRequestLogger(t *testing.T) {
	// Use a discard handler to avoid test output noise
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestResponseWriterFlush(t *testing.T) {
	handler := RequestLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Test that Flush is available
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestGetRequestID_NoContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	id := GetRequestID(req.Context())
	if id != "" {
		t.Errorf("expected empty ID, got %q", id)
	}
}
