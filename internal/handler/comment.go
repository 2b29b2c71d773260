package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ljy0221/spring-board/internal/middleware"
	"github.com/ljy0221/spring-board/internal/service"
	"github.com/ljy0221/spring-board/internal/util"

	"github.com/gin-gonic/gin"
)

// CommentHandler covers comment creation and deletion.
type CommentHandler struct {
	Comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{Comments: comments}
}

// Write creates a comment on a post; the writer comes from the session.
func (h *CommentHandler) Write(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	postID, err := strconv.ParseUint(c.PostForm("boardId"), 10, 32)
	if err != nil || postID == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid board id")
		return
	}
	content := strings.TrimSpace(c.PostForm("content"))
	if content == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "content is empty")
		return
	}

	if _, err := h.Comments.Create(uint(postID), user.ID, user.Name, content); err != nil {
		if err == service.ErrPostNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "post not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create comment failed")
		}
		return
	}

	c.Redirect(http.StatusFound, "/board/detail/"+strconv.FormatUint(postID, 10))
}

// Delete removes the caller's own comment and returns to the post detail.
func (h *CommentHandler) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	comment, err := h.Comments.Get(uint(id))
	if err != nil {
		if err == service.ErrCommentNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "comment not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query comment failed")
		}
		return
	}
	if comment.AuthorID != user.ID {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "only the writer can delete this comment")
		return
	}

	if err := h.Comments.Delete(uint(id)); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete comment failed")
		return
	}

	boardID := c.Query("boardId")
	if boardID == "" {
		boardID = strconv.FormatUint(uint64(comment.PostID), 10)
	}
	c.Redirect(http.StatusFound, "/board/detail/"+boardID)
}
