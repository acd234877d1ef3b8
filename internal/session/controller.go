package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mandalnilabja/authdash/internal/authapi"
)

var (
	// ErrSuperseded is returned by a Login whose result arrived after a newer
	// Login, Logout or Start took over. Its response was discarded.
	ErrSuperseded = errors.New("login superseded by a newer session operation")

	// ErrInvalidLoginResponse is returned when the login body lacks an id or token.
	ErrInvalidLoginResponse = errors.New("login response missing id or access token")
)

// State is the controller's position in the session state machine.
type State int

const (
	StateUnauthenticated State = iota
	StateLoading
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Snapshot is a consistent view of the controller at one point in time.
// Seq increases with every change, so observers can drop stale deliveries.
type Snapshot struct {
	Seq     uint64
	State   State
	Session *Session
}

// Loading reports whether a login or rehydration is in flight.
func (s Snapshot) Loading() bool { return s.State == StateLoading }

// Authenticator performs the login round trip.
type Authenticator interface {
	Login(ctx context.Context, creds authapi.Credentials) (*authapi.LoginResponse, error)
}

// Persister is the durable side of the session.
type Persister interface {
	Set(token string, profile []byte) error
	Get() (token string, profile []byte, err error)
	Clear() error
}

// Controller owns the in-memory Session and the loading flag and is the only
// writer of the persistent session entries. Construct one per process.
type Controller struct {
	store  Persister
	auth   Authenticator
	logger *slog.Logger

	mu         sync.Mutex
	state      State
	session    *Session
	generation uint64
	seq        uint64

	subMu     sync.Mutex
	subs      map[int]func(Snapshot)
	nextSubID int
}

// NewController creates a controller in the unauthenticated state.
// Call Start to rehydrate from the store.
func NewController(store Persister, auth Authenticator, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:  store,
		auth:   auth,
		logger: logger,
		subs:   make(map[int]func(Snapshot)),
	}
}

// Start rehydrates the session from the store. A missing or corrupt entry
// runs the logout procedure; both present and readable yields authenticated.
func (c *Controller) Start() Snapshot {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.state = StateLoading
	snap := c.changedLocked()
	c.mu.Unlock()
	c.notify(snap)

	token, profile, err := c.store.Get()

	c.mu.Lock()
	if gen != c.generation {
		snap = c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	var restored *Session
	switch {
	case err != nil:
		c.logger.Warn("session rehydration failed", "error", err)
	case token == "" || len(profile) == 0:
		c.logger.Debug("no persisted session", "has_token", token != "", "has_profile", len(profile) > 0)
	default:
		restored, err = decodeProfile(profile, token)
		if err != nil {
			c.logger.Warn("discarding persisted session", "error", err)
		}
	}

	if restored == nil {
		c.logoutLocked()
	} else {
		c.session = restored
		c.state = StateAuthenticated
		c.logger.Debug("session rehydrated", "user_id", restored.UserID)
	}
	snap = c.changedLocked()
	c.mu.Unlock()

	c.notify(snap)
	return snap
}

// Login authenticates against the API and persists the resulting session.
// On failure the controller ends unauthenticated and the error is returned
// unchanged. If a newer operation started meanwhile, a successful response
// is dropped and ErrSuperseded is returned; a failed request still returns
// its own error.
func (c *Controller) Login(ctx context.Context, email, password string) (*Session, error) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.state = StateLoading
	snap := c.changedLocked()
	c.mu.Unlock()
	c.notify(snap)

	resp, err := c.auth.Login(ctx, authapi.Credentials{Email: email, Password: password})
	if err == nil && (resp == nil || resp.ID == "" || resp.AccessToken == "") {
		err = ErrInvalidLoginResponse
	}

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		// A 401 on the login call itself invalidates through the HTTP
		// client and lands here; the newer operation owns the state.
		if err != nil {
			return nil, err
		}
		c.logger.Debug("discarding superseded login", "email", email)
		return nil, ErrSuperseded
	}

	if err != nil {
		c.logoutLocked()
		snap = c.changedLocked()
		c.mu.Unlock()
		c.notify(snap)
		return nil, err
	}

	sess := FromLogin(resp)
	if perr := c.persistLocked(sess); perr != nil {
		c.logoutLocked()
		snap = c.changedLocked()
		c.mu.Unlock()
		c.notify(snap)
		return nil, perr
	}

	c.session = sess
	c.state = StateAuthenticated
	snap = c.changedLocked()
	c.mu.Unlock()

	c.logger.Info("logged in", "user_id", sess.UserID)
	c.notify(snap)
	return sess.Clone(), nil
}

// Logout clears the persistent entries and drops the in-memory session.
// It also supersedes any login still in flight. Calling it with no session
// is harmless.
func (c *Controller) Logout() error {
	c.mu.Lock()
	c.generation++
	err := c.logoutLocked()
	snap := c.changedLocked()
	c.mu.Unlock()

	c.notify(snap)
	return err
}

// Invalidate is the single entry point for forced session loss, used by the
// HTTP client on 401 and by the route guard.
func (c *Controller) Invalidate(reason string) {
	c.logger.Warn("session invalidated", "reason", reason)
	_ = c.Logout()
}

// Session returns a copy of the current session, or nil.
func (c *Controller) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Clone()
}

// Loading reports whether a login or rehydration is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateLoading
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the current state and session together.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to receive a Snapshot after every state change.
// fn runs on the goroutine that caused the change and must not block.
func (c *Controller) Subscribe(fn func(Snapshot)) (cancel func()) {
	c.subMu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = fn
	c.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs, id)
			c.subMu.Unlock()
		})
	}
}

func (c *Controller) persistLocked(sess *Session) error {
	profile, err := sess.Profile()
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := c.store.Set(sess.AccessToken, profile); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// logoutLocked must be called with c.mu held.
func (c *Controller) logoutLocked() error {
	c.session = nil
	c.state = StateUnauthenticated
	if err := c.store.Clear(); err != nil {
		c.logger.Error("failed to clear persisted session", "error", err)
		return err
	}
	return nil
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{Seq: c.seq, State: c.state, Session: c.session.Clone()}
}

// changedLocked records a state change and returns the snapshot to publish.
func (c *Controller) changedLocked() Snapshot {
	c.seq++
	return c.snapshotLocked()
}

func (c *Controller) notify(snap Snapshot) {
	c.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
