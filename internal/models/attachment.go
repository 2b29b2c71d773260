package models

import "time"

// Attachment is the metadata row for an uploaded file. The bytes live on
// disk under StoredName; OriginalName is what the client gets back on
// download.
type Attachment struct {
	ID           uint   `gorm:"primaryKey"`
	PostID       uint   `gorm:"index;not null"`
	OriginalName string `gorm:"size:200;not null"`
	StoredName   string `gorm:"size:200;not null"`
	Path         string `gorm:"size:500;not null"`
	Size         int64  `gorm:"not null"`
	CreatedAt    time.Time

	Post Post `gorm:"constraint:OnDelete:CASCADE"`
}
