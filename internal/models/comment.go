package models

import "time"

// Comment belongs to a post and is removed together with it.
type Comment struct {
	ID        uint   `gorm:"primaryKey"`
	PostID    uint   `gorm:"index;not null"`
	Content   string `gorm:"type:text;not null"`
	Writer    string `gorm:"size:50;not null"`
	AuthorID  uint   `gorm:"index;not null"`
	CreatedAt time.Time

	Post Post `gorm:"constraint:OnDelete:CASCADE"`
}
