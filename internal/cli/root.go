// Package cli implements the authdash command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mandalnilabja/authdash/internal/apiclient"
	"github.com/mandalnilabja/authdash/internal/app"
	"github.com/mandalnilabja/authdash/internal/authapi"
	"github.com/mandalnilabja/authdash/internal/config"
	"github.com/mandalnilabja/authdash/internal/version"
)

// ClientFactory builds the application for one invocation.
type ClientFactory func(cfg *config.Config, out io.Writer, logger *slog.Logger) (*app.Client, error)

// DefaultClientFactory opens the database in the data directory.
func DefaultClientFactory(cfg *config.Config, out io.Writer, logger *slog.Logger) (*app.Client, error) {
	return app.NewClient(cfg, app.ClientOptions{Out: out, Logger: logger})
}

// env carries per-invocation state shared by the subcommands.
type env struct {
	factory ClientFactory
	cfg     *config.Config
	client  *app.Client

	baseURL  string
	logLevel string
}

// NewRootCommand builds the command tree. factory may be nil.
func NewRootCommand(factory ClientFactory) *cobra.Command {
	if factory == nil {
		factory = DefaultClientFactory
	}
	e := &env{factory: factory}

	root := &cobra.Command{
		Use:   "authdash",
		Short: "Dashboard client with a persistent login session",
		Long: `authdash signs you in to the dashboard API and keeps the session on disk,
so later invocations start already authenticated.

Pages are rendered in the terminal. Protected pages redirect to the login page
when there is no session, and any 401 from the API ends the session.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&e.baseURL, "url", "", "host URL (default from AUTHDASH_URL or config.toml)")
	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "log level: debug, info, warn, error (default warn)")

	root.AddCommand(
		newLoginCmd(e),
		newLogoutCmd(e),
		newRegisterCmd(e),
		newWhoamiCmd(e),
		newForgotPasswordCmd(e),
		newValidateCodeCmd(e),
		newResetPasswordCmd(e),
		newOpenCmd(e),
		newGetCmd(e),
		newResetCmd(e),
		newThemeCmd(e),
	)

	// Post-run hooks are skipped when RunE fails, so storage is released here.
	for _, sub := range root.Commands() {
		run := sub.RunE
		if run == nil {
			continue
		}
		sub.RunE = func(cmd *cobra.Command, args []string) (err error) {
			defer func() { err = errors.Join(err, e.teardown()) }()
			return run(cmd, args)
		}
	}
	return root
}

// ExecuteContext runs the CLI with the default factory.
func ExecuteContext(ctx context.Context) error {
	return NewRootCommand(nil).ExecuteContext(ctx)
}

func (e *env) setup(cmd *cobra.Command) error {
	cfg := config.Load()
	if e.baseURL != "" {
		cfg.BaseURL = e.baseURL
	}

	// Page output goes to stdout, so logs stay quiet unless asked for.
	level := slog.LevelWarn
	if e.logLevel != "" {
		cfg.LogLevel = e.logLevel
		level = cfg.SlogLevel()
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	client, err := e.factory(cfg, cmd.OutOrStdout(), logger)
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.client = client
	return nil
}

func (e *env) teardown() error {
	if e.client == nil {
		return nil
	}
	err := e.client.Close()
	e.client = nil
	return err
}

// userMessage turns an error into what the user should read: the server
// message when there is one, validation details, or fallback.
func userMessage(err error, fallback string) string {
	if errors.Is(err, authapi.ErrValidation) {
		return err.Error()
	}
	if errors.Is(err, apiclient.ErrTransport) {
		return "could not reach the server, try again later"
	}
	return apiclient.MessageOf(err, fallback)
}

// fail prints a user-facing message and returns err for the exit status.
func fail(cmd *cobra.Command, err error, fallback string) error {
	fmt.Fprintln(cmd.ErrOrStderr(), "Error:", userMessage(err, fallback))
	return errReported{err}
}

// errReported marks an error that was already shown to the user.
type errReported struct{ error }

func (e errReported) Unwrap() error { return e.error }

// IsReported reports whether err was already printed by a command.
func IsReported(err error) bool {
	var r errReported
	return errors.As(err, &r)
}

// Main runs the CLI and returns the process exit code.
func Main(ctx context.Context) int {
	if err := ExecuteContext(ctx); err != nil {
		if !IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
