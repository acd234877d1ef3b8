package session

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mandalnilabja/authdash/internal/authapi"
	"github.com/mandalnilabja/authdash/internal/storage"
	"github.com/mandalnilabja/authdash/internal/storage/encryption"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestKV(t *testing.T) storage.Storage {
	t.Helper()
	kv, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func newTestEncryptor(t *testing.T) *encryption.AES {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i * 7)
	}
	enc, err := encryption.NewWithKey(key)
	require.NoError(t, err)
	return enc
}

func newTestStore(t *testing.T) (*Store, storage.Storage) {
	t.Helper()
	kv := newTestKV(t)
	return NewStore(kv, newTestEncryptor(t)), kv
}

// fakeAuth answers logins through fn.
type fakeAuth struct {
	fn func(ctx context.Context, creds authapi.Credentials) (*authapi.LoginResponse, error)
}

func (f fakeAuth) Login(ctx context.Context, creds authapi.Credentials) (*authapi.LoginResponse, error) {
	return f.fn(ctx, creds)
}

func okAuth(id, token string) fakeAuth {
	return fakeAuth{fn: func(ctx context.Context, creds authapi.Credentials) (*authapi.LoginResponse, error) {
		return &authapi.LoginResponse{
			User:        authapi.User{ID: id, Name: "A", Email: creds.Email},
			AccessToken: token,
		}, nil
	}}
}

// gatedAuth blocks each login until the test releases it with a result.
type gatedAuth struct {
	mu      sync.Mutex
	pending map[string]chan gatedResult
	started chan string
}

type gatedResult struct {
	resp *authapi.LoginResponse
	err  error
}

func newGatedAuth() *gatedAuth {
	return &gatedAuth{pending: make(map[string]chan gatedResult), started: make(chan string, 8)}
}

func (g *gatedAuth) Login(ctx context.Context, creds authapi.Credentials) (*authapi.LoginResponse, error) {
	ch := make(chan gatedResult, 1)
	g.mu.Lock()
	g.pending[creds.Email] = ch
	g.mu.Unlock()
	g.started <- creds.Email

	res := <-ch
	return res.resp, res.err
}

func (g *gatedAuth) release(email string, res gatedResult) {
	g.mu.Lock()
	ch := g.pending[email]
	g.mu.Unlock()
	ch <- res
}
