package authapi

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
)

// ErrValidation wraps every input validation failure. No request is sent
// when it is returned.
var ErrValidation = errors.New("invalid input")

// minPasswordLength matches the forms of the web client.
const minPasswordLength = 6

var (
	errPasswordMismatch = errors.New("passwords do not match")
	errInvalidPhone     = errors.New("invalid phone number")
)

// Validate checks the login form.
func (c Credentials) Validate() error {
	return wrapValidation(validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, validation.Required, validation.Length(minPasswordLength, 0)),
	))
}

// Validate checks the registration form.
func (r RegisterInput) Validate() error {
	return wrapValidation(validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required),
		validation.Field(&r.LastName, validation.Required),
		validation.Field(&r.Phone, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(minPasswordLength, 0)),
		validation.Field(&r.ConfirmPassword,
			validation.Required,
			validation.Length(minPasswordLength, 0),
			validation.By(matches(r.Password)),
		),
	))
}

// Validate checks the first step of the password reset.
func (f ForgotPasswordInput) Validate() error {
	return wrapValidation(validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required, is.Email),
	))
}

// Validate checks the second step of the password reset.
func (v ValidateCodeInput) Validate() error {
	return wrapValidation(validation.ValidateStruct(&v,
		validation.Field(&v.Email, validation.Required, is.Email),
		validation.Field(&v.Code, validation.Required),
	))
}

// Validate checks the final step of the password reset.
func (r ResetPasswordInput) Validate() error {
	return wrapValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Code, validation.Required),
		validation.Field(&r.Password, validation.Required, validation.Length(minPasswordLength, 0)),
		validation.Field(&r.ConfirmPassword,
			validation.Required,
			validation.Length(minPasswordLength, 0),
			validation.By(matches(r.Password)),
		),
	))
}

// NormalizePhone parses phone in region and formats it as E.164.
func NormalizePhone(phone, region string) (string, error) {
	num, err := phonenumbers.Parse(strings.TrimSpace(phone), region)
	if err != nil {
		return "", fmt.Errorf("%w: %w: %v", ErrValidation, errInvalidPhone, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: %w", ErrValidation, errInvalidPhone)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func matches(password string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != password {
			return errPasswordMismatch
		}
		return nil
	}
}

func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
