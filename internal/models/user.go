package models

import "time"

// User represents application user.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:20;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:100;not null"`
	Name         string `gorm:"size:20;not null"` // display name, denormalized onto posts/comments
	Email        string `gorm:"size:50;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
