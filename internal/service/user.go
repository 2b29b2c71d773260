package service

import (
	"errors"
	"fmt"

	"github.com/ljy0221/spring-board/internal/models"
	"github.com/ljy0221/spring-board/internal/util"

	"gorm.io/gorm"
)

// UserService handles registration, authentication and profile mutation.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Register creates a new user. The unique index on username is the backstop
// for the existence check.
func (s *UserService) Register(username, password, name, email string) (*models.User, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Email:        email,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		// two registrations can pass the count check at once; the index
		// decides the loser
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Authenticate returns the matching user, or (nil, nil) when the username
// does not exist or the password does not verify. A failed login is a normal
// outcome, not an error.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	if !util.CheckPassword(password, user.PasswordHash) {
		return nil, nil
	}
	return &user, nil
}

// Get loads a user by ID.
func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}

// UpdateProfile overwrites display name and email. Existing posts keep the
// writer name they were created with.
func (s *UserService) UpdateProfile(id uint, name, email string) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	user.Name = name
	user.Email = email
	if err := s.DB.Save(user).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// ChangePassword replaces the hash only when current verifies.
func (s *UserService) ChangePassword(id uint, current, newPassword string) (bool, error) {
	user, err := s.Get(id)
	if err != nil {
		return false, err
	}
	if !util.CheckPassword(current, user.PasswordHash) {
		return false, nil
	}
	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return false, err
	}
	if err := s.DB.Model(user).Update("password_hash", hash).Error; err != nil {
		return false, fmt.Errorf("update password: %w", err)
	}
	return true, nil
}

// DeleteAccount verifies the password, then removes the user and revokes all
// their sessions. Posts and comments stay behind, attributed by the stored
// writer name.
func (s *UserService) DeleteAccount(id uint, password string) (bool, error) {
	user, err := s.Get(id)
	if err != nil {
		return false, err
	}
	if !util.CheckPassword(password, user.PasswordHash) {
		return false, nil
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	return true, nil
}
