// Package routes maps URL paths to pages and enforces authentication on the
// protected ones.
package routes

import (
	"sync"

	"github.com/mandalnilabja/authdash/internal/session"
)

// SessionSource is the part of the session controller the guard depends on.
type SessionSource interface {
	Snapshot() session.Snapshot
	Subscribe(fn func(session.Snapshot)) (cancel func())
	Invalidate(reason string)
}

// Decision is the outcome of a guard check: either a redirect target or the
// session the protected page renders for.
type Decision struct {
	Redirect string
	Session  *session.Session
}

// Allowed reports whether the protected page may render.
func (d Decision) Allowed() bool { return d.Redirect == "" }

// Guard protects routes that require a session. It keeps the latest
// controller snapshot instead of reading storage on every check.
type Guard struct {
	src       SessionSource
	loginPath string

	mu     sync.RWMutex
	latest session.Snapshot
	cancel func()
}

// NewGuard subscribes to src. Call Close to unsubscribe.
func NewGuard(src SessionSource, loginPath string) *Guard {
	g := &Guard{src: src, loginPath: loginPath}
	g.cancel = src.Subscribe(g.observe)
	g.observe(src.Snapshot())
	return g
}

// observe keeps the newest snapshot; deliveries can arrive out of order.
func (g *Guard) observe(s session.Snapshot) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s.Seq < g.latest.Seq {
		return
	}
	g.latest = s
}

// Snapshot returns the cached controller snapshot.
func (g *Guard) Snapshot() session.Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.latest
}

// Check decides whether a protected page may render. Without a session it
// redirects to login and, unless a login or rehydration is in flight, asks
// the controller to invalidate so stale durable entries cannot linger.
func (g *Guard) Check() Decision {
	snap := g.Snapshot()
	if snap.Session != nil {
		return Decision{Session: snap.Session}
	}

	if !snap.Loading() {
		g.src.Invalidate("protected route requested without a session")
	}
	return Decision{Redirect: g.loginPath}
}

// Close stops observing the controller.
func (g *Guard) Close() {
	if g.cancel != nil {
		g.cancel()
	}
}
