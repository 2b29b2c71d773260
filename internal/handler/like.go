package handler

import (
	"net/http"
	"strconv"

	"github.com/ljy0221/spring-board/internal/middleware"
	"github.com/ljy0221/spring-board/internal/service"
	"github.com/ljy0221/spring-board/internal/util"

	"github.com/gin-gonic/gin"
)

// LikeHandler covers the like toggle.
type LikeHandler struct {
	Likes *service.LikeService
}

func NewLikeHandler(likes *service.LikeService) *LikeHandler {
	return &LikeHandler{Likes: likes}
}

// Toggle flips the like state for the session user and reports the result.
func (h *LikeHandler) Toggle(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	liked, err := h.Likes.Toggle(uint(id), user.ID)
	if err != nil {
		if err == service.ErrPostNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "post not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "toggle like failed")
		}
		return
	}

	count, err := h.Likes.Count(uint(id))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "count likes failed")
		return
	}

	util.Success(c, util.Response{
		"liked":      liked,
		"like_count": count,
	})
}
