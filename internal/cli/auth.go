package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mandalnilabja/authdash/internal/authapi"
	"github.com/mandalnilabja/authdash/internal/routes"
	"github.com/mandalnilabja/authdash/internal/session"
	"github.com/mandalnilabja/authdash/internal/ui"
)

const internalErrorMessage = "internal error, try again later"

func newLoginCmd(e *env) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session",
		Long: `Sign in with your email and password. Missing values are prompted for.

If a session already exists the dashboard is shown instead, as the login page
does. On success the dashboard is rendered.

Examples:
  authdash login --email user@example.com
  authdash login`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if e.client.Session.Session() != nil {
				e.client.Router.Navigate(routes.PathLogin)
				return nil
			}

			err := ui.PromptMissing(
				ui.Field{Title: "Email", Value: &email},
				ui.Field{Title: "Password", Value: &password, Secret: true},
			)
			if err != nil {
				return err
			}

			if _, err := e.client.Session.Login(cmd.Context(), email, password); err != nil {
				if errors.Is(err, session.ErrSuperseded) {
					return err
				}
				return fail(cmd, err, "login failed")
			}

			fmt.Fprintln(cmd.ErrOrStderr(), "Signed in.")
			_, err = e.client.Router.Open(routes.PathDashboard)
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and remove it from disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.client.Session.Logout(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Signed out.")
			_, err := e.client.Router.Open(routes.PathLogin)
			return err
		},
	}
}

func newRegisterCmd(e *env) *cobra.Command {
	var in authapi.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account. Missing values are prompted for.

The phone number may be given without a country code, in which case the
configured phone region is assumed.

Examples:
  authdash register --first-name Ana --last-name Lima --email ana@example.com --phone "11 91234-5678"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := ui.PromptMissing(
				ui.Field{Title: "First name", Value: &in.FirstName},
				ui.Field{Title: "Last name", Value: &in.LastName},
				ui.Field{Title: "Email", Value: &in.Email},
				ui.Field{Title: "Phone", Value: &in.Phone},
				ui.Field{Title: "Password", Value: &in.Password, Secret: true},
				ui.Field{Title: "Confirm password", Value: &in.ConfirmPassword, Secret: true},
			)
			if err != nil {
				return err
			}

			if _, err := e.client.Auth.Register(cmd.Context(), in); err != nil {
				return fail(cmd, err, internalErrorMessage)
			}

			fmt.Fprintln(cmd.ErrOrStderr(), "Account created. Sign in to continue.")
			_, err = e.client.Router.Open(routes.PathLogin)
			return err
		},
	}

	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&in.Password, "password", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&in.ConfirmPassword, "confirm-password", "", "password confirmation (prompted when omitted)")
	return cmd
}

func newWhoamiCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := e.client.Session.Session()
			if sess == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Not signed in.")
				return errReported{errors.New("not signed in")}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:     %s\n", sess.UserID)
			fmt.Fprintf(out, "Name:   %s\n", sess.DisplayName)
			fmt.Fprintf(out, "Email:  %s\n", sess.Email)
			if sess.Phone != "" {
				fmt.Fprintf(out, "Phone:  %s\n", sess.Phone)
			}
			if sess.Role != "" {
				fmt.Fprintf(out, "Role:   %s\n", sess.Role)
			}
			if sess.OrganizationID != "" {
				fmt.Fprintf(out, "Org:    %s\n", sess.OrganizationID)
			}

			info, err := session.InspectToken(sess.AccessToken)
			if err != nil {
				fmt.Fprintln(out, "Token:  opaque")
				return nil
			}
			if info.Subject != "" {
				fmt.Fprintf(out, "Token subject: %s\n", info.Subject)
			}
			if !info.ExpiresAt.IsZero() {
				fmt.Fprintf(out, "Token expires: %s\n", info.ExpiresAt.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}
