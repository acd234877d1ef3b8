package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mandalnilabja/authdash/internal/config"
	"github.com/mandalnilabja/authdash/internal/version"
)

func setupLogger(cfg *config.Config) *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})
	return slog.New(handler)
}

func printStartupBanner(cfg *config.Config) {
	static := "embedded"
	if cfg.StaticDir != "" {
		static = cfg.StaticDir
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "authdash %s - dashboard host\n", version.Version)
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "App:        http://localhost%s/\n", cfg.ServerPort)
	fmt.Fprintf(os.Stderr, "API proxy:  http://localhost%s/api -> %s/api\n", cfg.ServerPort, cfg.APIURL)
	fmt.Fprintf(os.Stderr, "Static:     %s\n", static)
	fmt.Fprintf(os.Stderr, "Config:     %s\n", config.ConfigPath())
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "\n")
}
