// Package proxy forwards /api requests to the upstream API.
package proxy

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/mandalnilabja/authdash/internal/transport/http/middleware"
)

// Handlers holds the dependencies for proxy HTTP handlers.
type Handlers struct {
	target    *url.URL
	apiKey    string
	keyHeader string
	logger    *slog.Logger
	proxy     *httputil.ReverseProxy
}

// Options configures the upstream.
type Options struct {
	// Upstream is the API base URL; requests keep their /api path.
	Upstream string
	// APIKey is injected into every forwarded request under KeyHeader.
	APIKey    string
	KeyHeader string
	// Transport overrides http.DefaultTransport.
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// New creates the proxy handlers.
func New(opts Options) (*Handlers, error) {
	target, err := url.Parse(strings.TrimRight(opts.Upstream, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid upstream URL: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid upstream URL %q: scheme and host required", opts.Upstream)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handlers{
		target:    target,
		apiKey:    opts.APIKey,
		keyHeader: opts.KeyHeader,
		logger:    logger,
	}
	h.proxy = &httputil.ReverseProxy{
		Rewrite:      h.rewrite,
		Transport:    opts.Transport,
		ErrorHandler: h.handleError,
	}
	return h, nil
}

// ServeAPI forwards the request to the upstream API.
func (h *Handlers) ServeAPI(w http.ResponseWriter, r *http.Request) {
	h.proxy.ServeHTTP(w, r)
}

// rewrite points the request at the upstream, rewrites Host and injects the
// service credential.
func (h *Handlers) rewrite(pr *httputil.ProxyRequest) {
	pr.SetURL(h.target)
	pr.SetXForwarded()
	pr.Out.Host = h.target.Host

	if h.apiKey != "" && h.keyHeader != "" {
		pr.Out.Header.Set(h.keyHeader, h.apiKey)
	}
	if id := middleware.GetRequestID(pr.In.Context()); id != "" {
		pr.Out.Header.Set(middleware.RequestIDHeader, id)
	}
}

func (h *Handlers) handleError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("proxy error",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
		"request_id", middleware.GetRequestID(r.Context()),
	)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte("Proxy Error"))
}
