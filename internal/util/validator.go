package util

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateUsername enforces 3-20 chars, letters/digits/underscore only.
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username must be 3-20 letters, digits or underscores")
	}
	return nil
}

// ValidatePassword enforces 8-32 chars with upper, lower and digit.
func ValidatePassword(pwd string) error {
	// character count, not bytes; the byte cap is what bcrypt accepts
	if n := utf8.RuneCountInString(pwd); n < 8 || n > 32 || len(pwd) > 72 {
		return fmt.Errorf("password must be 8-32 characters")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, ch := range pwd {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= 'a' && ch <= 'z':
			hasLower = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("password must contain upper, lower and digit")
	}
	return nil
}

// ValidateEmail does a light format check; emails are not unique.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is empty")
	}
	if len(email) > 50 || !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email")
	}
	return nil
}

// ValidateTitle limits post titles to the column size.
func ValidateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("title is empty")
	}
	if utf8.RuneCountInString(title) > 200 {
		return fmt.Errorf("title too long, max 200 characters")
	}
	return nil
}
