package service

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/ljy0221/spring-board/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileService stores attachment bytes on disk and their metadata in the
// database.
type FileService struct {
	DB        *gorm.DB
	UploadDir string
}

func NewFileService(db *gorm.DB, uploadDir string) *FileService {
	return &FileService{DB: db, UploadDir: uploadDir}
}

// SaveAll persists each non-empty upload for the post. A failing file is
// logged and skipped; the post itself is already committed and stays. This
// best-effort behavior is deliberate and covered by tests.
func (s *FileService) SaveAll(files []*multipart.FileHeader, post *models.Post) []models.Attachment {
	if len(files) == 0 {
		return nil
	}

	if err := os.MkdirAll(s.UploadDir, 0o755); err != nil {
		log.Printf("create upload dir: %v", err)
		return nil
	}

	var saved []models.Attachment
	for _, fh := range files {
		if fh == nil || fh.Size == 0 || fh.Filename == "" {
			continue
		}

		att, err := s.saveOne(fh, post.ID)
		if err != nil {
			log.Printf("save attachment %q for post %d: %v", fh.Filename, post.ID, err)
			continue
		}
		saved = append(saved, *att)
	}
	return saved
}

func (s *FileService) saveOne(fh *multipart.FileHeader, postID uint) (*models.Attachment, error) {
	originalName := filepath.Base(fh.Filename)
	storedName := uuid.New().String() + "_" + originalName
	path := filepath.Join(s.UploadDir, storedName)

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	written, err := dst.ReadFrom(src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write file: %w", err)
	}

	att := models.Attachment{
		PostID:       postID,
		OriginalName: originalName,
		StoredName:   storedName,
		Path:         path,
		Size:         written,
	}
	if err := s.DB.Create(&att).Error; err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("create attachment row: %w", err)
	}
	return &att, nil
}

// ListByPost returns attachment metadata for a post.
func (s *FileService) ListByPost(postID uint) ([]models.Attachment, error) {
	var files []models.Attachment
	if err := s.DB.Where("post_id = ?", postID).
		Order("id ASC").
		Find(&files).Error; err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	return files, nil
}

// Get loads one attachment row.
func (s *FileService) Get(id uint) (*models.Attachment, error) {
	var att models.Attachment
	if err := s.DB.First(&att, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("query attachment: %w", err)
	}
	return &att, nil
}

// Delete unlinks the object if present, then removes the row. A missing
// object on disk is tolerated.
func (s *FileService) Delete(id uint) error {
	att, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := os.Remove(att.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	if err := s.DB.Delete(att).Error; err != nil {
		return fmt.Errorf("delete attachment row: %w", err)
	}
	return nil
}

// RemoveObjects unlinks on-disk objects after a cascade delete committed.
// Failures only get logged; the rows are already gone.
func (s *FileService) RemoveObjects(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			log.Printf("remove attachment object %s: %v", p, err)
		}
	}
}
