package authapi

import (
	"context"
	"strings"
)

// Endpoint paths, relative to the client's /api base.
const (
	PathLogin          = "/v1/auth/login"
	PathRegister       = "/v1/auth/register"
	PathForgotPassword = "/v1/auth/forgot-password"
	PathValidateCode   = "/v1/auth/validate-code"
	PathResetPassword  = "/v1/auth/reset-password"
)

// Poster sends a JSON body and decodes the JSON response into out.
type Poster interface {
	Post(ctx context.Context, path string, body, out any) error
}

// Service holds the auth operations. It keeps no state between calls:
// each operation is one round trip, with no retries and no caching.
type Service struct {
	client      Poster
	phoneRegion string
}

// New creates a Service. phoneRegion is the default region for phone
// numbers given without a country code.
func New(client Poster, phoneRegion string) *Service {
	return &Service{client: client, phoneRegion: phoneRegion}
}

// Login exchanges credentials for a profile and access token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	var resp LoginResponse
	if err := s.client.Post(ctx, PathLogin, creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	phone, err := NormalizePhone(in.Phone, s.phoneRegion)
	if err != nil {
		return nil, err
	}

	req := registerRequest{
		Name:            strings.TrimSpace(in.FirstName) + " " + strings.TrimSpace(in.LastName),
		Email:           in.Email,
		Phone:           phone,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
	}

	var user User
	if err := s.client.Post(ctx, PathRegister, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ForgotPassword asks the API to send a reset code to the email.
func (s *Service) ForgotPassword(ctx context.Context, in ForgotPasswordInput) (*MessageResponse, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.message(ctx, PathForgotPassword, in)
}

// ValidateCode checks a reset code.
func (s *Service) ValidateCode(ctx context.Context, in ValidateCodeInput) (*MessageResponse, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Code = strings.TrimSpace(in.Code)
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.message(ctx, PathValidateCode, in)
}

// ResetPassword sets a new password.
func (s *Service) ResetPassword(ctx context.Context, in ResetPasswordInput) (*MessageResponse, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Code = strings.TrimSpace(in.Code)
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.message(ctx, PathResetPassword, in)
}

func (s *Service) message(ctx context.Context, path string, body any) (*MessageResponse, error) {
	var resp MessageResponse
	if err := s.client.Post(ctx, path, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
