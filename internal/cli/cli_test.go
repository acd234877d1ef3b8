package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandalnilabja/authdash/internal/app"
	"github.com/mandalnilabja/authdash/internal/config"
	"github.com/mandalnilabja/authdash/internal/storage/encryption"
)

// fakeAPI serves the auth endpoints behind /api.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Email, Password string }
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		if body.Password == "revoked1" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"wrong email or password"}`))
			return
		}
		if body.Password != "secret1" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"invalid credentials"}`))
			return
		}
		w.Write([]byte(`{"id":"u1","name":"Ana","email":"` + body.Email + `","access_token":"tok1"}`))
	})
	mux.HandleFunc("GET /api/v1/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer tok1" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"unauthorized"}`))
			return
		}
		w.Write([]byte(`{"id":"u1"}`))
	})
	mux.HandleFunc("GET /api/v1/expired", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("POST /api/v1/auth/forgot-password", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"code sent"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type harness struct {
	srv    *httptest.Server
	dbPath string
	enc    encryption.Encryptor
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("CI", "1") // never prompt
	key := bytes.Repeat([]byte{7}, 32)
	enc, err := encryption.NewWithKey(key)
	require.NoError(t, err)
	return &harness{
		srv:    fakeAPI(t),
		dbPath: filepath.Join(t.TempDir(), "authdash.db"),
		enc:    enc,
	}
}

func (h *harness) factory(cfg *config.Config, out io.Writer, logger *slog.Logger) (*app.Client, error) {
	cfg.BaseURL = h.srv.URL
	return app.NewClient(cfg, app.ClientOptions{
		DBPath:    h.dbPath,
		Encryptor: h.enc,
		Out:       out,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// run executes one invocation, like a separate process start.
func (h *harness) run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand(h.factory)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestLoginPersistsAcrossInvocations(t *testing.T) {
	h := newHarness(t)

	stdout, stderr, err := h.run(t, "login", "--email", "ana@example.com", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Signed in.")
	assert.Contains(t, stdout, "Dashboard")
	assert.Contains(t, stdout, "Ana")

	stdout, _, err = h.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "u1")
	assert.Contains(t, stdout, "ana@example.com")
	assert.Contains(t, stdout, "opaque")

	stdout, _, err = h.run(t, "get", "/v1/me")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"id": "u1"`)

	stdout, _, err = h.run(t, "open", "/login")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Dashboard", "login page redirects when signed in")
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	h := newHarness(t)

	_, stderr, err := h.run(t, "login", "--email", "ana@example.com", "--password", "wrong-pass")
	require.Error(t, err)
	assert.True(t, IsReported(err))
	assert.Contains(t, stderr, "invalid credentials")

	_, stderr, err = h.run(t, "whoami")
	require.Error(t, err)
	assert.Contains(t, stderr, "Not signed in.")
}

func TestLoginUnauthorizedShowsServerMessage(t *testing.T) {
	h := newHarness(t)

	stdout, stderr, err := h.run(t, "login", "--email", "ana@example.com", "--password", "revoked1")
	require.Error(t, err)
	assert.True(t, IsReported(err))
	assert.Contains(t, stderr, "wrong email or password")
	assert.NotContains(t, stderr, "superseded")
	assert.Contains(t, stdout, "Sign in", "401 redirects to the login page")

	_, stderr, err = h.run(t, "whoami")
	require.Error(t, err)
	assert.Contains(t, stderr, "Not signed in.")
}

func TestLoginValidationFailsWithoutRequest(t *testing.T) {
	h := newHarness(t)

	_, stderr, err := h.run(t, "login", "--email", "not-an-email", "--password", "secret1")
	require.Error(t, err)
	assert.Contains(t, stderr, "invalid input")
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "login", "--email", "ana@example.com", "--password", "secret1")
	require.NoError(t, err)

	stdout, stderr, err := h.run(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Signed out.")
	assert.Contains(t, stdout, "Sign in")

	_, _, err = h.run(t, "logout")
	require.NoError(t, err)

	stdout, _, err = h.run(t, "open")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Sign in", "dashboard redirects to login")
}

func TestUnauthorizedEndsSession(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "login", "--email", "ana@example.com", "--password", "secret1")
	require.NoError(t, err)

	stdout, _, err := h.run(t, "get", "/v1/expired")
	require.Error(t, err)
	assert.Contains(t, stdout, "Sign in")

	_, stderr, err := h.run(t, "whoami")
	require.Error(t, err)
	assert.Contains(t, stderr, "Not signed in.")
}

func TestForgotPasswordSendOnly(t *testing.T) {
	h := newHarness(t)

	_, stderr, err := h.run(t, "forgot-password", "--email", "ana@example.com", "--send-only")
	require.NoError(t, err)
	assert.Contains(t, stderr, "code sent")
}

func TestResetPurgesSession(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "login", "--email", "ana@example.com", "--password", "secret1")
	require.NoError(t, err)

	_, _, err = h.run(t, "theme", "light")
	require.NoError(t, err)

	_, stderr, err := h.run(t, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, stderr, "removed 1 stored preference(s)")

	_, stderr, err = h.run(t, "whoami")
	require.Error(t, err)
	assert.Contains(t, stderr, "Not signed in.")

	stdout, _, err := h.run(t, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", stdout)
}

func TestThemeSurvivesLogout(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "login", "--email", "ana@example.com", "--password", "secret1")
	require.NoError(t, err)

	_, stderr, err := h.run(t, "theme", "light")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Theme set to light.")

	_, _, err = h.run(t, "logout")
	require.NoError(t, err)

	stdout, _, err := h.run(t, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light\n", stdout)

	_, _, err = h.run(t, "theme", "neon")
	require.Error(t, err)
}
