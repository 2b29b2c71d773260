package models

import "time"

// Post is a single board entry.
// Writer keeps the author's display name as it was at write time; ownership
// checks go through AuthorID, never through Writer.
type Post struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:200;not null"`
	Content   string `gorm:"type:text;not null"`
	Writer    string `gorm:"size:50;not null"`
	AuthorID  uint   `gorm:"index;not null"`
	ViewCount int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
