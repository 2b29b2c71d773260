package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ljy0221/spring-board/internal/models"

	"gorm.io/gorm"
)

// LikeService keeps the per-(user, post) like rows.
type LikeService struct {
	DB *gorm.DB
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{DB: db}
}

// Toggle flips the like state and reports the new one: true means the post
// is now liked. The delete-then-insert runs in one transaction; if a
// concurrent toggle wins the insert race, the unique index rejects ours and
// the pair counts as liked.
func (s *LikeService) Toggle(postID, userID uint) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check post: %w", err)
	}
	if count == 0 {
		return false, ErrPostNotFound
	}

	liked := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			// was liked, now unliked
			return nil
		}

		like := models.Like{PostID: postID, UserID: userID}
		if err := tx.Create(&like).Error; err != nil {
			if isUniqueViolation(err) {
				liked = true
				return nil
			}
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("toggle like: %w", err)
	}
	return liked, nil
}

// Count returns the number of likes for a post.
func (s *LikeService) Count(postID uint) (int64, error) {
	var count int64
	if err := s.DB.Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

// IsLiked reports whether the user has liked the post.
func (s *LikeService) IsLiked(postID, userID uint) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return count > 0, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
