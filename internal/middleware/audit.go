package middleware

import (
	"github.com/ljy0221/spring-board/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Audit persists one row per authenticated request. Anonymous traffic is not
// recorded.
func Audit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		user, ok := CurrentUser(c)
		if !ok {
			return
		}
		userID := user.ID

		entry := models.AuditLog{
			UserID:    &userID,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		_ = db.Create(&entry).Error
	}
}
