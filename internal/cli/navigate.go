package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mandalnilabja/authdash/internal/routes"
	"github.com/mandalnilabja/authdash/internal/session"
	"github.com/mandalnilabja/authdash/internal/ui"
)

func newOpenCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "open [path]",
		Short: "Render a page",
		Long: `Render the page at path (the dashboard by default).

Known paths: / (dashboard, requires a session), /login, /register,
/forgot-password. Protected pages redirect to /login without a session.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := routes.PathDashboard
			if len(args) == 1 {
				path = args[0]
			}
			_, err := e.client.Router.Open(path)
			return err
		},
	}
}

func newGetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "Send an authenticated GET to the API",
		Long: `Send a GET request to <host>/api<path> with the session's bearer token and
print the JSON response. A 401 ends the session and shows the login page.

Examples:
  authdash get /v1/users/me`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw json.RawMessage
			if err := e.client.API.Get(cmd.Context(), args[0], &raw); err != nil {
				return fail(cmd, err, internalErrorMessage)
			}

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, raw, "", "  "); err != nil {
				pretty.Reset()
				pretty.Write(raw)
			}
			fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
			return nil
		},
	}
}

func newResetCmd(e *env) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Sign out and remove all locally stored data, preferences included",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := ui.Confirm("Remove the session and all local preferences?", false)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}

			if err := e.client.Session.Logout(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			n, err := e.client.Store.Purge()
			if err != nil {
				return fmt.Errorf("failed to purge %s data: %w", session.Namespace, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Signed out and removed %d stored preference(s).\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newThemeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light]",
		Short:     "Show or set the page theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{ui.ThemeDark, ui.ThemeLight},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				theme, err := e.client.Store.Preference(session.ThemeKey)
				if err != nil {
					return err
				}
				if !ui.ValidTheme(theme) {
					theme = ui.ThemeDark
				}
				fmt.Fprintln(cmd.OutOrStdout(), theme)
				return nil
			}

			if !ui.ValidTheme(args[0]) {
				return fmt.Errorf("unknown theme %q (want %s or %s)", args[0], ui.ThemeDark, ui.ThemeLight)
			}
			if err := e.client.Store.SetPreference(session.ThemeKey, args[0]); err != nil {
				return fmt.Errorf("failed to save theme: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Theme set to %s.\n", args[0])
			return nil
		},
	}
}
