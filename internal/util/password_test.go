package util

import "testing"

func TestHashPassword(t *testing.T) {
	password := "MyPassword123"

	hashed, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hashed == password {
		t.Error("hash equals the plaintext")
	}

	// empty password is rejected
	if _, err := HashPassword(""); err == nil {
		t.Error("empty password should return error")
	}

	// same password hashes differently (random salt)
	hashed2, _ := HashPassword(password)
	if hashed == hashed2 {
		t.Error("same password should produce different hashes")
	}
}

func TestCheckPassword(t *testing.T) {
	password := "TestPass456"
	hashed, _ := HashPassword(password)

	if !CheckPassword(password, hashed) {
		t.Error("correct password rejected")
	}
	if CheckPassword("WrongPass", hashed) {
		t.Error("wrong password accepted")
	}
	if CheckPassword("", hashed) {
		t.Error("empty password accepted")
	}
	if CheckPassword(password, "") {
		t.Error("empty hash accepted")
	}
	if CheckPassword(password, "invalid-format") {
		t.Error("garbage hash accepted")
	}
}
