package util

import (
	"strings"
	"testing"
)

func TestValidateUsername_Valid(t *testing.T) {
	testCases := []string{"abc", "alice", "user_01", "A1234567890123456789"}

	for _, username := range testCases {
		if err := ValidateUsername(username); err != nil {
			t.Errorf("ValidateUsername(%q) error = %v, want nil", username, err)
		}
	}
}

func TestValidateUsername_Invalid(t *testing.T) {
	testCases := []string{"", "ab", "has space", "way_too_long_username_over_20", "bad-dash", "uniçode"}

	for _, username := range testCases {
		if err := ValidateUsername(username); err == nil {
			t.Errorf("ValidateUsername(%q) error = nil, want error", username)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	// the multibyte one is 13 characters in 33 bytes; length counts characters
	valid := []string{"Password1", "Abcdefg1", "XyZ12345", "Aa1" + strings.Repeat("한", 10)}
	for _, pwd := range valid {
		if err := ValidatePassword(pwd); err != nil {
			t.Errorf("ValidatePassword(%q) error = %v, want nil", pwd, err)
		}
	}

	invalid := []string{
		"", "short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere",
		"Aa1" + strings.Repeat("한", 30), // 33 characters
		"Aa1" + strings.Repeat("한", 29), // 32 characters but past the bcrypt byte cap
	}
	for _, pwd := range invalid {
		if err := ValidatePassword(pwd); err == nil {
			t.Errorf("ValidatePassword(%q) error = nil, want error", pwd)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "alice@example.com", "x.y@sub.domain.org"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) error = %v, want nil", email, err)
		}
	}

	invalid := []string{"", "plain", "no@tld", "two@@example.com", "spa ce@example.com"}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) error = nil, want error", email)
		}
	}
}

func TestValidateTitle(t *testing.T) {
	if err := ValidateTitle("Hello"); err != nil {
		t.Errorf("ValidateTitle(Hello) error = %v, want nil", err)
	}
	if err := ValidateTitle(""); err == nil {
		t.Error("empty title should return error")
	}

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidateTitle(string(long)); err == nil {
		t.Error("201-char title should return error")
	}

	// 70 characters in 210 bytes; the limit counts characters
	if err := ValidateTitle(strings.Repeat("한", 70)); err != nil {
		t.Errorf("70-char multibyte title error = %v, want nil", err)
	}
	if err := ValidateTitle(strings.Repeat("한", 201)); err == nil {
		t.Error("201-char multibyte title should return error")
	}
}
