package service

import (
	"path/filepath"
	"testing"

	"github.com/ljy0221/spring-board/internal/config"
	"github.com/ljy0221/spring-board/internal/database"
	"github.com/ljy0221/spring-board/internal/models"

	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Path:    filepath.Join(t.TempDir(), "test.db"),
		LogMode: false,
	}

	db, err := database.Init(cfg)
	if err != nil {
		t.Fatalf("Init test database failed: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, name string) *models.User {
	t.Helper()

	user, err := NewUserService(db).Register(username, "Password123", name, username+"@example.com")
	if err != nil {
		t.Fatalf("Register %s failed: %v", username, err)
	}
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, author *models.User, title, content string) *models.Post {
	t.Helper()

	post, err := NewBoardService(db, false).Create(author.ID, author.Name, title, content)
	if err != nil {
		t.Fatalf("Create post failed: %v", err)
	}
	return post
}
