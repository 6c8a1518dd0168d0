package validator

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrEmptyUsername indicates the username is empty
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrInvalidUsernameLength indicates the username is too short or too long
	ErrInvalidUsernameLength = errors.New("username must be between 3 and 150 characters")

	// ErrInvalidUsernameFormat indicates the username contains invalid characters
	ErrInvalidUsernameFormat = errors.New("username may contain only letters, digits and @/./+/-/_")

	// ErrPasswordTooShort indicates the password is below the minimum length
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")

	// ErrPasswordTooLong indicates the password exceeds what bcrypt can hash
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")

	// ErrPasswordTooSimple indicates the password lacks a letter or a digit
	ErrPasswordTooSimple = errors.New("password must contain at least one letter and one digit")

	// ErrPasswordMatchesUsername indicates the password equals the username
	ErrPasswordMatchesUsername = errors.New("password is too similar to the username")

	// ErrInvalidEmail indicates the email address does not parse
	ErrInvalidEmail = errors.New("enter a valid email address")
)

// usernameRegex matches letters, digits and @/./+/-/_
var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

// CredentialsValidator checks registration credentials
type CredentialsValidator struct {
	minPasswordLength int
}

// NewCredentialsValidator creates a new credentials validator instance
func NewCredentialsValidator() *CredentialsValidator {
	return &CredentialsValidator{minPasswordLength: 8}
}

// ValidateUsername returns the trimmed username or an error
func (v *CredentialsValidator) ValidateUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", ErrEmptyUsername
	}

	if len(username) < 3 || len(username) > 150 {
		return "", ErrInvalidUsernameLength
	}

	if !usernameRegex.MatchString(username) {
		return "", ErrInvalidUsernameFormat
	}

	return username, nil
}

// ValidatePassword checks password strength against the username
func (v *CredentialsValidator) ValidatePassword(password, username string) error {
	if len(password) < v.minPasswordLength {
		return ErrPasswordTooShort
	}

	// bcrypt rejects longer input
	if len(password) > 72 {
		return ErrPasswordTooLong
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrPasswordTooSimple
	}

	if username != "" && strings.EqualFold(password, username) {
		return ErrPasswordMatchesUsername
	}

	return nil
}

// ValidateEmail accepts an empty address or a bare address like jane@example.com
func (v *CredentialsValidator) ValidateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", nil
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}

	return strings.ToLower(email), nil
}
