package routes

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/mandalnilabja/authdash/internal/session"
)

// Route paths known to the application.
const (
	PathDashboard      = "/"
	PathLogin          = "/login"
	PathRegister       = "/register"
	PathForgotPassword = "/forgot-password"
)

// maxRedirects bounds redirect chains such as / -> /login -> /.
const maxRedirects = 5

// ErrTooManyRedirects is returned when redirects do not settle.
var ErrTooManyRedirects = errors.New("too many redirects")

// Page renders the content of one route. sess is nil on public pages
// visited without a session.
type Page interface {
	Title() string
	Render(w io.Writer, sess *session.Session) error
}

// Chrome wraps page content in the shared layout.
type Chrome interface {
	Wrap(sess *session.Session, title, body string) string
}

// Route binds a path to a page.
type Route struct {
	Path string
	Page Page

	// Protected routes go through the guard and render inside the chrome.
	Protected bool

	// RedirectIfAuthenticated, when set, sends visitors that already have a
	// session elsewhere (the login page sends them to the dashboard).
	RedirectIfAuthenticated string
}

// Router resolves paths against a static route table and renders the
// resulting page to its writer. It satisfies apiclient.Navigator.
type Router struct {
	guard    *Guard
	chrome   Chrome
	notFound Page
	logger   *slog.Logger

	routes map[string]Route

	mu       sync.Mutex
	out      io.Writer
	location string
}

// NewRouter creates a router that renders to out.
func NewRouter(guard *Guard, chrome Chrome, notFound Page, out io.Writer, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		guard:    guard,
		chrome:   chrome,
		notFound: notFound,
		logger:   logger,
		routes:   make(map[string]Route),
		out:      out,
	}
}

// Handle registers r, replacing any route with the same path.
func (rt *Router) Handle(r Route) {
	rt.routes[cleanPath(r.Path)] = r
}

// Location returns the path of the last rendered page.
func (rt *Router) Location() string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.location
}

// Navigate renders the page at path. Errors are logged; use Open to get them.
func (rt *Router) Navigate(path string) {
	if _, err := rt.Open(path); err != nil {
		rt.logger.Error("navigation failed", "path", path, "error", err)
	}
}

// Open resolves path, follows redirects and renders the final page.
// It returns the path that was rendered.
func (rt *Router) Open(path string) (string, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	current := cleanPath(path)
	for hops := 0; hops <= maxRedirects; hops++ {
		next, err := rt.visit(current)
		if err != nil {
			return current, err
		}
		if next == "" {
			rt.location = current
			return current, nil
		}
		rt.logger.Debug("redirect", "from", current, "to", next)
		current = cleanPath(next)
	}
	return current, fmt.Errorf("%w: stopped at %s", ErrTooManyRedirects, current)
}

// visit renders current, or returns the path to redirect to.
func (rt *Router) visit(current string) (string, error) {
	route, ok := rt.routes[current]
	if !ok {
		return "", rt.render(rt.notFound, rt.guard.Snapshot().Session, true)
	}

	if route.Protected {
		decision := rt.guard.Check()
		if !decision.Allowed() {
			return decision.Redirect, nil
		}
		return "", rt.render(route.Page, decision.Session, true)
	}

	sess := rt.guard.Snapshot().Session
	if route.RedirectIfAuthenticated != "" && sess != nil {
		return route.RedirectIfAuthenticated, nil
	}
	return "", rt.render(route.Page, sess, false)
}

func (rt *Router) render(page Page, sess *session.Session, withChrome bool) error {
	var buf bytes.Buffer
	if err := page.Render(&buf, sess); err != nil {
		return fmt.Errorf("failed to render %s: %w", page.Title(), err)
	}

	body := buf.String()
	if withChrome && rt.chrome != nil {
		body = rt.chrome.Wrap(sess, page.Title(), body)
	}
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}

	_, err := io.WriteString(rt.out, body)
	return err
}

// cleanPath drops query and fragment and any trailing slash except on "/".
func cleanPath(p string) string {
	if u, err := url.Parse(p); err == nil {
		p = u.Path
	}
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
