package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mandalnilabja/authdash/internal/apiclient"
	"github.com/mandalnilabja/authdash/internal/authapi"
	"github.com/mandalnilabja/authdash/internal/config"
	"github.com/mandalnilabja/authdash/internal/routes"
	"github.com/mandalnilabja/authdash/internal/session"
	"github.com/mandalnilabja/authdash/internal/storage"
	"github.com/mandalnilabja/authdash/internal/storage/encryption"
	"github.com/mandalnilabja/authdash/internal/ui"
)

// Client is the client application: one session controller and everything
// that depends on it, wired once per process.
type Client struct {
	Storage storage.Storage
	Store   *session.Store
	API     *apiclient.Client
	Auth    *authapi.Service
	Session *session.Controller
	Guard   *routes.Guard
	Router  *routes.Router
}

// ClientOptions configures NewClient.
type ClientOptions struct {
	// DBPath overrides the database location (config.DBPath by default).
	DBPath string
	// Encryptor overrides the token encryptor (encryption.New by default).
	Encryptor encryption.Encryptor
	// Out receives rendered pages.
	Out    io.Writer
	Logger *slog.Logger
	// Width is the terminal width used by the page chrome.
	Width int
}

// NewClient opens storage, wires the session core and rehydrates the session.
func NewClient(cfg *config.Config, opts ClientOptions) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	dbPath := opts.DBPath
	if dbPath == "" {
		if err := config.EnsureDataDir(); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		dbPath = config.DBPath()
	}

	kv, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	enc := opts.Encryptor
	if enc == nil {
		enc, err = encryption.New()
		if err != nil {
			kv.Close()
			return nil, fmt.Errorf("failed to initialize encryption: %w", err)
		}
	}

	store := session.NewStore(kv, enc)
	api := apiclient.New(cfg.BaseURL, store, apiclient.WithLogger(logger), apiclient.WithLoginPath(routes.PathLogin))
	auth := authapi.New(api, cfg.PhoneRegion)
	ctrl := session.NewController(store, auth, logger)

	layout := ui.NewLayout(opts.Width)
	if theme, err := store.Preference(session.ThemeKey); err != nil {
		logger.Warn("failed to read theme", "error", err)
	} else {
		layout.SetTheme(theme)
	}

	guard := routes.NewGuard(ctrl, routes.PathLogin)
	router := routes.NewRouter(guard, layout, ui.NewNotFoundPage(), opts.Out, logger)
	router.Handle(routes.Route{Path: routes.PathDashboard, Page: ui.NewDashboardPage(), Protected: true})
	router.Handle(routes.Route{Path: routes.PathLogin, Page: ui.NewLoginPage(), RedirectIfAuthenticated: routes.PathDashboard})
	router.Handle(routes.Route{Path: routes.PathRegister, Page: ui.NewRegisterPage()})
	router.Handle(routes.Route{Path: routes.PathForgotPassword, Page: ui.NewForgotPasswordPage()})

	// The client is built before the controller, so the 401 path is
	// attached afterwards.
	api.SetUnauthorizedHandler(ctrl.Invalidate)
	api.SetNavigator(router)

	ctrl.Start()

	return &Client{
		Storage: kv,
		Store:   store,
		API:     api,
		Auth:    auth,
		Session: ctrl,
		Guard:   guard,
		Router:  router,
	}, nil
}

// Close releases the guard subscription and the storage handle.
func (c *Client) Close() error {
	c.Guard.Close()
	return c.Storage.Close()
}
