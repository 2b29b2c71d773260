package handler

import (
	"net/http"
	"strings"

	"github.com/ljy0221/spring-board/internal/middleware"
	"github.com/ljy0221/spring-board/internal/service"
	"github.com/ljy0221/spring-board/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler covers registration, login and logout.
type AuthHandler struct {
	Users      *service.UserService
	Sessions   *service.SessionService
	CookieName string
}

func NewAuthHandler(users *service.UserService, sessions *service.SessionService, cookieName string) *AuthHandler {
	return &AuthHandler{
		Users:      users,
		Sessions:   sessions,
		CookieName: cookieName,
	}
}

// RegisterForm is the registration page context.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	util.Success(c, util.Response{"form": "register"})
}

// Register handles the registration form post.
func (h *AuthHandler) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))

	if err := util.ValidateUsername(username); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidatePassword(password); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name is empty")
		return
	}
	if err := util.ValidateEmail(email); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	if _, err := h.Users.Register(username, password, name, email); err != nil {
		if err == service.ErrDuplicateUsername {
			util.Error(c, http.StatusConflict, util.CodeInvalidParam, "username already exists")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create user failed")
		}
		return
	}

	c.Redirect(http.StatusFound, "/user/login")
}

// LoginForm is the login page context.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	util.Success(c, util.Response{"form": "login"})
}

// Login verifies credentials, opens a session and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	if username == "" || password == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "username and password required")
		return
	}

	user, err := h.Users.Authenticate(username, password)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query user failed")
		return
	}
	if user == nil {
		// wrong username or password, a normal negative outcome
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid username or password")
		return
	}

	token, _, err := h.Sessions.Create(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create session failed")
		return
	}

	maxAge := int(h.Sessions.TTL.Seconds())
	c.SetCookie(h.CookieName, token, maxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, "/board/list")
}

// Logout revokes the current session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if session, ok := middleware.CurrentSession(c); ok {
		if err := h.Sessions.Revoke(session.ID); err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "logout failed")
			return
		}
	}
	c.SetCookie(h.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/user/login")
}
