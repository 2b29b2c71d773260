package service

import (
	"errors"
	"fmt"

	"github.com/ljy0221/spring-board/internal/models"

	"gorm.io/gorm"
)

// CommentService handles comments scoped to a post.
type CommentService struct {
	DB *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{DB: db}
}

// ListByPost returns comments oldest first.
func (s *CommentService) ListByPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.DB.Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Create stores a comment after checking the post still exists.
func (s *CommentService) Create(postID, authorID uint, writer, content string) (*models.Comment, error) {
	var count int64
	if err := s.DB.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check post: %w", err)
	}
	if count == 0 {
		return nil, ErrPostNotFound
	}

	comment := models.Comment{
		PostID:   postID,
		Content:  content,
		Writer:   writer,
		AuthorID: authorID,
	}
	if err := s.DB.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &comment, nil
}

// Get loads one comment, for the authorship check before delete.
func (s *CommentService) Get(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.DB.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("query comment: %w", err)
	}
	return &comment, nil
}

// Delete removes a comment unconditionally; the caller verifies authorship.
func (s *CommentService) Delete(id uint) error {
	if err := s.DB.Delete(&models.Comment{}, id).Error; err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
