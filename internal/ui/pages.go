package ui

import (
	"fmt"
	"io"

	"github.com/mandalnilabja/authdash/internal/session"
)

// LoginPage is the sign-in screen.
type LoginPage struct{ styles Styles }

// NewLoginPage creates the login page with the default styles.
func NewLoginPage() *LoginPage { return &LoginPage{styles: DefaultStyles()} }

// Title is shown in the page chrome.
func (p *LoginPage) Title() string { return "Login" }

// Render prints the sign-in instructions.
func (p *LoginPage) Render(w io.Writer, _ *session.Session) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n\n%s\n%s\n%s\n",
		p.styles.Title.Render("Sign in"),
		p.styles.Muted.Render("Enter your email and password to access your account."),
		"  authdash login [--email EMAIL]",
		p.styles.Muted.Render("No account yet?      authdash register"),
		p.styles.Muted.Render("Forgot your password? authdash forgot-password"),
	)
	return err
}

// RegisterPage is the sign-up screen.
type RegisterPage struct{ styles Styles }

// NewRegisterPage creates the register page with the default styles.
func NewRegisterPage() *RegisterPage { return &RegisterPage{styles: DefaultStyles()} }

// Title is shown in the page chrome.
func (p *RegisterPage) Title() string { return "Register" }

func (p *RegisterPage) Render(w io.Writer, _ *session.Session) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n\n%s\n%s\n",
		p.styles.Title.Render("Create an account"),
		p.styles.Muted.Render("First and last name, email, phone and a password of at least 6 characters."),
		"  authdash register",
		p.styles.Muted.Render("Already registered?  authdash login"),
	)
	return err
}

// ForgotPasswordPage describes the three-step password reset.
type ForgotPasswordPage struct{ styles Styles }

// NewForgotPasswordPage creates the forgot-password page with the default styles.
func NewForgotPasswordPage() *ForgotPasswordPage {
	return &ForgotPasswordPage{styles: DefaultStyles()}
}

// Title is shown in the page chrome.
func (p *ForgotPasswordPage) Title() string { return "Forgot password" }

// Render lists the three reset steps in order.
func (p *ForgotPasswordPage) Render(w io.Writer, _ *session.Session) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n\n%s\n%s\n%s\n",
		p.styles.Title.Render("Reset your password"),
		p.styles.Muted.Render("We send a code to your email, you confirm it, then choose a new password."),
		"  1. authdash forgot-password --email EMAIL",
		"  2. authdash validate-code --email EMAIL --code CODE",
		"  3. authdash reset-password --email EMAIL --code CODE",
	)
	return err
}

// NotFoundPage is rendered for unknown paths.
type NotFoundPage struct{ styles Styles }

// NewNotFoundPage creates the not-found page with the default styles.
func NewNotFoundPage() *NotFoundPage { return &NotFoundPage{styles: DefaultStyles()} }

// Title is shown in the page chrome.
func (p *NotFoundPage) Title() string { return "404 - Page not found" }

func (p *NotFoundPage) Render(w io.Writer, _ *session.Session) error {
	_, err := fmt.Fprintln(w, p.styles.Muted.Render(
		"Sorry, the page you are looking for does not exist or you do not have permission to access it."))
	return err
}
