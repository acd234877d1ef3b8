// Package authapi issues the authentication requests of the remote API:
// login, registration and the three-step password reset.
package authapi

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the user profile returned by the API.
type User struct {
	ID             string `json:"id"`
	CreatedAt      string `json:"createdAt,omitempty"`
	UpdatedAt      string `json:"updatedAt,omitempty"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	OrganizationID string `json:"organizationId,omitempty"`
	Role           string `json:"role,omitempty"`
	Invites        []int  `json:"invites,omitempty"`
}

// LoginResponse is the login success body: the profile plus the access token.
type LoginResponse struct {
	User
	AccessToken string `json:"access_token"`
}

// RegisterInput is what the registration form collects. FirstName and
// LastName are joined into the single name the API expects.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// registerRequest is the register request body.
type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ForgotPasswordInput starts a password reset.
type ForgotPasswordInput struct {
	Email string `json:"email"`
}

// ValidateCodeInput checks the code sent by ForgotPassword.
type ValidateCodeInput struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ResetPasswordInput sets a new password using a validated code.
type ResetPasswordInput struct {
	Email           string `json:"email"`
	Code            string `json:"code"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// MessageResponse is the body of the password reset endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
