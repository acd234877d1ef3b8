package app

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mandalnilabja/authdash/internal/transport/http/handler"
	"github.com/mandalnilabja/authdash/internal/transport/http/middleware"
	"github.com/mandalnilabja/authdash/internal/transport/http/middleware/ratelimit"
)

// RouterOptions configures the HTTP router behavior.
type RouterOptions struct {
	Logger  *slog.Logger
	Limiter *ratelimit.Limiter
	// ClientIP keys the rate limit; nil uses the connection address.
	ClientIP func(*http.Request) string
}

// NewRouter creates and configures the host router: /api is forwarded
// upstream, everything else is the web bundle.
// Returns an http.Handler with middleware applied.
func NewRouter(repo *handler.Repo, opts *RouterOptions) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", repo.Infra.HealthCheck)

	var api http.Handler = http.HandlerFunc(repo.Proxy.ServeAPI)
	if opts.Limiter != nil {
		api = ratelimit.Middleware(opts.Limiter, opts.ClientIP)(api)
	}
	mux.Handle("/api/", api)
	mux.Handle("/api", api)

	// Static files and the SPA fallback. No method in the pattern: it
	// would conflict with the method-less /api/ route.
	mux.Handle("/", repo.WebUI.ServeWebUI())

	// Apply middleware chain (order: outer to inner)
	var h http.Handler = mux

	// Compression
	h = middleware.Compress(h)

	// Request logging (if logger provided)
	if opts.Logger != nil {
		h = middleware.RequestLogger(opts.Logger)(h)
	}

	// Request ID (always applied)
	h = middleware.RequestID(h)

	// CORS
	h = middleware.CORS(h)

	// Server spans
	return otelhttp.NewHandler(h, "authdash-server")
}
