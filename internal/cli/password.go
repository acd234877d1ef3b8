package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mandalnilabja/authdash/internal/authapi"
	"github.com/mandalnilabja/authdash/internal/routes"
	"github.com/mandalnilabja/authdash/internal/ui"
)

func newForgotPasswordCmd(e *env) *cobra.Command {
	var email string
	var sendOnly bool

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Reset a forgotten password",
		Long: `Reset a forgotten password in three steps: a code is sent to your email,
you confirm the code, then you choose a new password.

In a terminal all three steps run in sequence. With --send-only (or without a
terminal) only the code is requested; finish with validate-code and
reset-password.

Examples:
  authdash forgot-password --email user@example.com
  authdash forgot-password --email user@example.com --send-only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ui.PromptMissing(ui.Field{Title: "Email", Value: &email}); err != nil {
				return err
			}

			resp, err := e.client.Auth.ForgotPassword(cmd.Context(), authapi.ForgotPasswordInput{Email: email})
			if err != nil {
				return fail(cmd, err, internalErrorMessage)
			}
			printMessage(cmd, resp, "Code sent to "+email+".")

			if sendOnly || !ui.ShouldPrompt() {
				return nil
			}

			var code string
			if err := ui.PromptMissing(ui.Field{Title: "Verification code", Value: &code}); err != nil {
				return err
			}
			if err := validateCode(cmd, e, email, code); err != nil {
				return err
			}

			var password, confirm string
			err = ui.PromptMissing(
				ui.Field{Title: "New password", Value: &password, Secret: true},
				ui.Field{Title: "Confirm password", Value: &confirm, Secret: true},
			)
			if err != nil {
				return err
			}
			return resetPassword(cmd, e, authapi.ResetPasswordInput{
				Email: email, Code: code, Password: password, ConfirmPassword: confirm,
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().BoolVar(&sendOnly, "send-only", false, "only request the code")
	return cmd
}

func newValidateCodeCmd(e *env) *cobra.Command {
	var email, code string

	cmd := &cobra.Command{
		Use:   "validate-code",
		Short: "Confirm a password reset code",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := ui.PromptMissing(
				ui.Field{Title: "Email", Value: &email},
				ui.Field{Title: "Verification code", Value: &code},
			)
			if err != nil {
				return err
			}
			return validateCode(cmd, e, email, code)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&code, "code", "", "code received by email")
	return cmd
}

func newResetPasswordCmd(e *env) *cobra.Command {
	var in authapi.ResetPasswordInput

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password with a validated code",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := ui.PromptMissing(
				ui.Field{Title: "Email", Value: &in.Email},
				ui.Field{Title: "Verification code", Value: &in.Code},
				ui.Field{Title: "New password", Value: &in.Password, Secret: true},
				ui.Field{Title: "Confirm password", Value: &in.ConfirmPassword, Secret: true},
			)
			if err != nil {
				return err
			}
			return resetPassword(cmd, e, in)
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Code, "code", "", "validated code")
	cmd.Flags().StringVar(&in.Password, "password", "", "new password (prompted when omitted)")
	cmd.Flags().StringVar(&in.ConfirmPassword, "confirm-password", "", "new password confirmation (prompted when omitted)")
	return cmd
}

func validateCode(cmd *cobra.Command, e *env, email, code string) error {
	resp, err := e.client.Auth.ValidateCode(cmd.Context(), authapi.ValidateCodeInput{Email: email, Code: code})
	if err != nil {
		return fail(cmd, err, internalErrorMessage)
	}
	printMessage(cmd, resp, "Code validated.")
	return nil
}

func resetPassword(cmd *cobra.Command, e *env, in authapi.ResetPasswordInput) error {
	resp, err := e.client.Auth.ResetPassword(cmd.Context(), in)
	if err != nil {
		return fail(cmd, err, internalErrorMessage)
	}
	printMessage(cmd, resp, "Password changed.")
	_, err = e.client.Router.Open(routes.PathLogin)
	return err
}

func printMessage(cmd *cobra.Command, resp *authapi.MessageResponse, fallback string) {
	msg := fallback
	if resp != nil && resp.Message != "" {
		msg = resp.Message
	}
	fmt.Fprintln(cmd.ErrOrStderr(), msg)
}
