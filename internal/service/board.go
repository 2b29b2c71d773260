package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ljy0221/spring-board/internal/models"

	"gorm.io/gorm"
)

// BoardService handles post CRUD, listing, search and the view counter.
type BoardService struct {
	DB *gorm.DB
	// StrictSearch rejects unknown search types instead of listing
	// everything. Off by default; the fallback matches the historic
	// behavior and is pinned by tests.
	StrictSearch bool
}

func NewBoardService(db *gorm.DB, strictSearch bool) *BoardService {
	return &BoardService{DB: db, StrictSearch: strictSearch}
}

// DefaultSortOrder is newest first.
const DefaultSortOrder = "id DESC"

// sortColumns maps the public sort field names onto real columns. Only these
// can reach an ORDER BY clause.
var sortColumns = map[string]string{
	"id":        "id",
	"title":     "title",
	"writer":    "writer",
	"viewCount": "view_count",
	"createdAt": "created_at",
}

// ParseSortOrder turns a "field,direction" query value into an ORDER BY
// clause. Unknown fields fall back to the default; direction is DESC unless
// asc is asked for explicitly.
func ParseSortOrder(raw string) string {
	parts := strings.SplitN(raw, ",", 2)
	col, ok := sortColumns[strings.TrimSpace(parts[0])]
	if !ok {
		return DefaultSortOrder
	}
	dir := "DESC"
	if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[1]), "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}

// Page is one page of a post listing.
type Page struct {
	Posts      []models.Post `json:"posts"`
	Total      int64         `json:"total"`
	PageNumber int           `json:"page"`
	PageSize   int           `json:"size"`
}

func (s *BoardService) paginate(query *gorm.DB, page, size int, sortOrder string) (*Page, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	if sortOrder == "" {
		sortOrder = DefaultSortOrder
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	var posts []models.Post
	if err := query.
		Order(sortOrder).
		Offset((page - 1) * size).
		Limit(size).
		Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return &Page{Posts: posts, Total: total, PageNumber: page, PageSize: size}, nil
}

// List returns a page of posts. An empty sortOrder means newest first; use
// ParseSortOrder to build one from the query string.
func (s *BoardService) List(page, size int, sortOrder string) (*Page, error) {
	return s.paginate(s.DB.Model(&models.Post{}), page, size, sortOrder)
}

// Search filters by substring containment on one of title, content, writer
// or titleOrContent. An unknown searchType lists everything unless
// StrictSearch is set.
func (s *BoardService) Search(searchType, keyword string, page, size int, sortOrder string) (*Page, error) {
	if keyword == "" {
		return s.List(page, size, sortOrder)
	}

	pattern := "%" + keyword + "%"
	query := s.DB.Model(&models.Post{})
	switch searchType {
	case "title":
		query = query.Where("title LIKE ?", pattern)
	case "content":
		query = query.Where("content LIKE ?", pattern)
	case "writer":
		query = query.Where("writer LIKE ?", pattern)
	case "titleOrContent":
		query = query.Where("title LIKE ? OR content LIKE ?", pattern, pattern)
	default:
		if s.StrictSearch {
			return nil, ErrBadSearchType
		}
	}
	return s.paginate(query, page, size, sortOrder)
}

// Get loads a post and bumps its view counter. Every read is a write; a lost
// increment under concurrent reads is acceptable.
func (s *BoardService) Get(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.DB.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("query post: %w", err)
	}

	if err := s.DB.Model(&post).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
		return nil, fmt.Errorf("bump view count: %w", err)
	}
	post.ViewCount++
	return &post, nil
}

// GetForEdit loads a post without touching the view counter.
func (s *BoardService) GetForEdit(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.DB.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("query post: %w", err)
	}
	return &post, nil
}

// Create stores a new post. Writer and author come from the session user,
// never from the request body.
func (s *BoardService) Create(authorID uint, writer, title, content string) (*models.Post, error) {
	post := models.Post{
		Title:    title,
		Content:  content,
		Writer:   writer,
		AuthorID: authorID,
	}
	if err := s.DB.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &post, nil
}

// Update overwrites title and content only. The write is column-scoped so a
// view counter bumped by a concurrent read is never clobbered.
func (s *BoardService) Update(id uint, title, content string) (*models.Post, error) {
	res := s.DB.Model(&models.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"title": title, "content": content})
	if res.Error != nil {
		return nil, fmt.Errorf("update post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrPostNotFound
	}
	return s.GetForEdit(id)
}

// Delete removes the post with its comments, likes and attachment rows in
// one transaction, and returns the on-disk paths of the attachments so the
// caller can unlink them after commit.
func (s *BoardService) Delete(id uint) ([]string, error) {
	var paths []string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		var files []models.Attachment
		if err := tx.Where("post_id = ?", id).Find(&files).Error; err != nil {
			return err
		}
		for _, f := range files {
			paths = append(paths, f.Path)
		}

		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("delete post: %w", err)
	}
	return paths, nil
}
