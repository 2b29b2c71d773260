package handler

import (
	"net/http"
	"strings"

	"github.com/ljy0221/spring-board/internal/middleware"
	"github.com/ljy0221/spring-board/internal/models"
	"github.com/ljy0221/spring-board/internal/service"
	"github.com/ljy0221/spring-board/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProfileHandler covers the logged-in user's own account.
type ProfileHandler struct {
	DB         *gorm.DB
	Users      *service.UserService
	Sessions   *service.SessionService
	CookieName string
}

func NewProfileHandler(db *gorm.DB, users *service.UserService, sessions *service.SessionService, cookieName string) *ProfileHandler {
	return &ProfileHandler{
		DB:         db,
		Users:      users,
		Sessions:   sessions,
		CookieName: cookieName,
	}
}

// Profile returns the current user.
func (h *ProfileHandler) Profile(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	util.Success(c, util.Response{
		"user": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"name":       user.Name,
			"email":      user.Email,
			"created_at": user.CreatedAt,
		},
	})
}

// UpdateProfile overwrites display name and email.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	if name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name is empty")
		return
	}
	if err := util.ValidateEmail(email); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	if _, err := h.Users.UpdateProfile(user.ID, name, email); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update failed")
		return
	}

	c.Redirect(http.StatusFound, "/user/profile")
}

// ChangePassword swaps the hash only when the current password verifies.
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	current := c.PostForm("currentPassword")
	newPassword := c.PostForm("newPassword")
	if err := util.ValidatePassword(newPassword); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	ok, err := h.Users.ChangePassword(user.ID, current, newPassword)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update password failed")
		return
	}
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "current password is wrong")
		return
	}

	// Kick every other device; the session that changed the password stays.
	if session, found := middleware.CurrentSession(c); found {
		if err := h.Sessions.RevokeOthers(user.ID, session.ID); err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "revoke sessions failed")
			return
		}
	}

	c.Redirect(http.StatusFound, "/user/profile")
}

// DeleteAccount verifies the password, removes the account and ends the
// session. Posts stay behind under the stored writer name.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	ok, err := h.Users.DeleteAccount(user.ID, c.PostForm("password"))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete account failed")
		return
	}
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "password is wrong")
		return
	}

	c.SetCookie(h.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/user/login")
}

// Activity lists the user's recent audit-log rows.
func (h *ProfileHandler) Activity(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var entries []models.AuditLog
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("id DESC").
		Limit(50).
		Find(&entries).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query activity failed")
		return
	}

	util.Success(c, util.Response{"activity": entries})
}
