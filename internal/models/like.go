package models

import "time"

// Like records that a user liked a post. The composite unique index is the
// real guarantee that a (user, post) pair never holds two rows; the
// application-level existence check is only a fast path.
type Like struct {
	ID        uint `gorm:"primaryKey"`
	PostID    uint `gorm:"uniqueIndex:idx_likes_post_user;not null"`
	UserID    uint `gorm:"uniqueIndex:idx_likes_post_user;not null"`
	CreatedAt time.Time

	Post Post `gorm:"constraint:OnDelete:CASCADE"`
	User User `gorm:"constraint:OnDelete:CASCADE"`
}
