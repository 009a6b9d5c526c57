package valueobject

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrMissingPassword  = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	emailRegex          = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

const MinPasswordLength = 8

type Credentials struct {
	email    string
	password string
}

// NewCredentials validates a login pair. Login only requires a non-empty
// password; length rules apply when a password is set.
func NewCredentials(email, password string) (*Credentials, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrMissingPassword
	}
	return &Credentials{
		email:    email,
		password: password,
	}, nil
}

func (c *Credentials) Email() string {
	return c.email
}

func (c *Credentials) Password() string {
	return c.password
}

// ValidateNewPassword checks a password being set together with its confirmation.
func ValidateNewPassword(password, confirmation string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirmation {
		return ErrPasswordMismatch
	}
	return nil
}

func ValidateEmail(email string) error {
	return validateEmail(strings.TrimSpace(strings.ToLower(email)))
}

func validateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}
