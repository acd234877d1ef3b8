package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mandalnilabja/authdash/internal/app"
	"github.com/mandalnilabja/authdash/internal/config"
	"github.com/mandalnilabja/authdash/internal/telemetry"
	"github.com/mandalnilabja/authdash/internal/transport/http/handler"
	"github.com/mandalnilabja/authdash/internal/transport/http/handler/proxy"
	"github.com/mandalnilabja/authdash/internal/transport/http/handler/webui"
	"github.com/mandalnilabja/authdash/internal/transport/http/middleware"
	"github.com/mandalnilabja/authdash/internal/transport/http/middleware/ratelimit"
)

func main() {
	// 1. Config and logging
	if err := config.EnsureConfigFile(); err != nil {
		// Non-fatal: env vars and defaults still apply
		os.Stderr.WriteString("warning: " + err.Error() + "\n")
	}
	cfg := config.Load()
	logger := setupLogger(cfg)

	if cfg.APIURL == "" {
		logger.Error("API_URL is required")
		os.Exit(1)
	}

	shutdownTelemetry := telemetry.Setup("authdash-server", logger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	// 2. Handlers
	prox, err := proxy.New(proxy.Options{
		Upstream:  cfg.APIURL,
		APIKey:    cfg.APIKey,
		KeyHeader: cfg.APIKeyHeader,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("failed to configure proxy", "error", err)
		os.Exit(1)
	}

	webUI, err := webui.New(cfg.StaticDir)
	if err != nil {
		logger.Error("failed to load web bundle", "error", err)
		os.Exit(1)
	}
	defer webUI.Close()

	repo := handler.NewRepo(webUI, prox)

	// 3. Router
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	trusted, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		logger.Error("failed to parse trusted proxies", "error", err)
		os.Exit(1)
	}

	opts := &app.RouterOptions{Logger: logger, ClientIP: middleware.TrustedClientIP(trusted)}
	if cfg.RateLimitPerMinute > 0 {
		opts.Limiter = ratelimit.New(cfg.RateLimitPerMinute)
		opts.Limiter.StartSweeper(time.Minute, ctx.Done())
	}
	router := app.NewRouter(repo, opts)

	// 4. Serve
	printStartupBanner(cfg)
	if err := app.NewServer(cfg, router, logger).Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
