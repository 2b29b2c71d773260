package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/ljy0221/spring-board/internal/models"
	"github.com/ljy0221/spring-board/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionService owns the session rows behind the signed tokens handed to
// clients. Tokens carry the row ID; the row decides revocation and expiry.
type SessionService struct {
	DB     *gorm.DB
	Secret string
	TTL    time.Duration
}

func NewSessionService(db *gorm.DB, secret string, ttlHours int) *SessionService {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &SessionService{
		DB:     db,
		Secret: secret,
		TTL:    time.Duration(ttlHours) * time.Hour,
	}
}

// Create inserts a session row for the user and returns the signed token.
func (s *SessionService) Create(userID uint) (string, *models.Session, error) {
	session := models.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.TTL),
	}
	if err := s.DB.Create(&session).Error; err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	token, err := util.GenerateToken(s.Secret, userID, session.ID, s.TTL)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, &session, nil
}

// Validate parses the token and checks the backing row. Returns the session
// user on success.
func (s *SessionService) Validate(token string) (*models.User, *models.Session, error) {
	claims, err := util.ParseToken(s.Secret, token)
	if err != nil {
		return nil, nil, ErrSessionInvalid
	}

	var session models.Session
	if err := s.DB.First(&session, "id = ?", claims.SessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionInvalid
		}
		return nil, nil, fmt.Errorf("query session: %w", err)
	}
	if session.Revoked || time.Now().After(session.ExpiresAt) || session.UserID != claims.UserID {
		return nil, nil, ErrSessionInvalid
	}

	var user models.User
	if err := s.DB.First(&user, session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionInvalid
		}
		return nil, nil, fmt.Errorf("query user: %w", err)
	}
	return &user, &session, nil
}

// Revoke invalidates one session (logout).
func (s *SessionService) Revoke(sessionID string) error {
	if err := s.DB.Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("revoked", true).Error; err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// RevokeOthers invalidates every session of the user except the one given.
// Used after a password change so stolen tokens stop working.
func (s *SessionService) RevokeOthers(userID uint, keepSessionID string) error {
	if err := s.DB.Model(&models.Session{}).
		Where("user_id = ? AND id <> ? AND revoked = ?", userID, keepSessionID, false).
		Update("revoked", true).Error; err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}

// RevokeAllForUser invalidates every session of the user.
func (s *SessionService) RevokeAllForUser(userID uint) error {
	if err := s.DB.Model(&models.Session{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error; err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}
