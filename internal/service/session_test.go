package service

import (
	"errors"
	"testing"
)

func TestSessionRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice", "Alice")
	sessions := NewSessionService(db, "test-secret", 1)

	token, session, err := sessions.Create(user.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if token == "" || session.ID == "" {
		t.Fatal("Create returned empty token or session ID")
	}

	got, gotSession, err := sessions.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Validate user = %d, want %d", got.ID, user.ID)
	}
	if gotSession.ID != session.ID {
		t.Errorf("Validate session = %s, want %s", gotSession.ID, session.ID)
	}
}

func TestValidate_RevokedSession(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice", "Alice")
	sessions := NewSessionService(db, "test-secret", 1)

	token, session, err := sessions.Create(user.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := sessions.Revoke(session.ID); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	if _, _, err := sessions.Validate(token); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("Validate after revoke = %v, want ErrSessionInvalid", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice", "Alice")

	token, _, err := NewSessionService(db, "secret-a", 1).Create(user.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	other := NewSessionService(db, "secret-b", 1)
	if _, _, err := other.Validate(token); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("Validate with wrong secret = %v, want ErrSessionInvalid", err)
	}
}

func TestRevokeOthers(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice", "Alice")
	sessions := NewSessionService(db, "test-secret", 1)

	tokenA, sessionA, err := sessions.Create(user.ID)
	if err != nil {
		t.Fatalf("Create session A failed: %v", err)
	}
	tokenB, _, err := sessions.Create(user.ID)
	if err != nil {
		t.Fatalf("Create session B failed: %v", err)
	}

	if err := sessions.RevokeOthers(user.ID, sessionA.ID); err != nil {
		t.Fatalf("RevokeOthers failed: %v", err)
	}

	if _, _, err := sessions.Validate(tokenA); err != nil {
		t.Errorf("kept session stopped validating: %v", err)
	}
	if _, _, err := sessions.Validate(tokenB); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("other session still valid, want ErrSessionInvalid, got %v", err)
	}
}

func TestRevokeAllForUser(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice", "Alice")
	bob := createTestUser(t, db, "bob", "Bob")
	sessions := NewSessionService(db, "test-secret", 1)

	aliceToken, _, err := sessions.Create(alice.ID)
	if err != nil {
		t.Fatalf("Create alice session failed: %v", err)
	}
	bobToken, _, err := sessions.Create(bob.ID)
	if err != nil {
		t.Fatalf("Create bob session failed: %v", err)
	}

	if err := sessions.RevokeAllForUser(alice.ID); err != nil {
		t.Fatalf("RevokeAllForUser failed: %v", err)
	}

	if _, _, err := sessions.Validate(aliceToken); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("alice session still valid, want ErrSessionInvalid, got %v", err)
	}
	if _, _, err := sessions.Validate(bobToken); err != nil {
		t.Errorf("bob session caught by alice revocation: %v", err)
	}
}
