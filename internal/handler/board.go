package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ljy0221/spring-board/internal/middleware"
	"github.com/ljy0221/spring-board/internal/models"
	"github.com/ljy0221/spring-board/internal/service"
	"github.com/ljy0221/spring-board/internal/util"

	"github.com/gin-gonic/gin"
)

// BoardHandler covers post listing, detail and CRUD.
type BoardHandler struct {
	Boards   *service.BoardService
	Comments *service.CommentService
	Likes    *service.LikeService
	Files    *service.FileService
	PageSize int
}

func NewBoardHandler(boards *service.BoardService, comments *service.CommentService,
	likes *service.LikeService, files *service.FileService, pageSize int) *BoardHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &BoardHandler{
		Boards:   boards,
		Comments: comments,
		Likes:    likes,
		Files:    files,
		PageSize: pageSize,
	}
}

// postResp is the wire shape of a post. Models never marshal directly.
type postResp struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Writer    string    `json:"writer"`
	AuthorID  uint      `json:"author_id"`
	ViewCount int       `json:"view_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newPostResp(p *models.Post) postResp {
	return postResp{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Writer:    p.Writer,
		AuthorID:  p.AuthorID,
		ViewCount: p.ViewCount,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func newPostList(posts []models.Post) []postResp {
	out := make([]postResp, 0, len(posts))
	for i := range posts {
		out = append(out, newPostResp(&posts[i]))
	}
	return out
}

type commentResp struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	Writer    string    `json:"writer"`
	AuthorID  uint      `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type fileResp struct {
	ID           uint   `json:"id"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// List returns one page of posts, optionally filtered by searchType/keyword.
func (h *BoardHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(h.PageSize)))

	searchType := c.Query("searchType")
	keyword := c.Query("keyword")
	sortOrder := service.ParseSortOrder(c.Query("sort"))

	var (
		result *service.Page
		err    error
	)
	if keyword != "" {
		result, err = h.Boards.Search(searchType, keyword, page, size, sortOrder)
	} else {
		result, err = h.Boards.List(page, size, sortOrder)
	}
	if err != nil {
		if err == service.ErrBadSearchType {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown search type")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "list posts failed")
		}
		return
	}

	util.Success(c, util.Response{
		"posts":      newPostList(result.Posts),
		"total":      result.Total,
		"page":       result.PageNumber,
		"size":       result.PageSize,
		"searchType": searchType,
		"keyword":    keyword,
	})
}

// Detail returns a post with its comments, attachments and like state.
// Reading the detail bumps the view counter.
func (h *BoardHandler) Detail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	post, err := h.Boards.Get(id)
	if err != nil {
		if err == service.ErrPostNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "post not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query post failed")
		}
		return
	}

	comments, err := h.Comments.ListByPost(id)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query comments failed")
		return
	}

	likeCount, err := h.Likes.Count(id)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query likes failed")
		return
	}

	isLiked := false
	if user, ok := middleware.CurrentUser(c); ok {
		isLiked, err = h.Likes.IsLiked(id, user.ID)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query likes failed")
			return
		}
	}

	files, err := h.Files.ListByPost(id)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query attachments failed")
		return
	}

	commentList := make([]commentResp, 0, len(comments))
	for i := range comments {
		commentList = append(commentList, commentResp{
			ID:        comments[i].ID,
			PostID:    comments[i].PostID,
			Writer:    comments[i].Writer,
			AuthorID:  comments[i].AuthorID,
			Content:   comments[i].Content,
			CreatedAt: comments[i].CreatedAt,
		})
	}
	fileList := make([]fileResp, 0, len(files))
	for i := range files {
		fileList = append(fileList, fileResp{
			ID:           files[i].ID,
			OriginalName: files[i].OriginalName,
			Size:         files[i].Size,
		})
	}

	util.Success(c, util.Response{
		"post":       newPostResp(post),
		"comments":   commentList,
		"like_count": likeCount,
		"is_liked":   isLiked,
		"files":      fileList,
	})
}

// WriteForm is the write page context.
func (h *BoardHandler) WriteForm(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	util.Success(c, util.Response{"writer": user.Name})
}

// Write creates a post from the multipart form. The author always comes from
// the session; uploads are saved best effort after the post committed.
func (h *BoardHandler) Write(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	title := strings.TrimSpace(c.PostForm("title"))
	content := c.PostForm("content")
	if err := util.ValidateTitle(title); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if strings.TrimSpace(content) == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "content is empty")
		return
	}

	post, err := h.Boards.Create(user.ID, user.Name, title, content)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create post failed")
		return
	}

	// upload failures must not undo the post
	if form, err := c.MultipartForm(); err == nil && form != nil {
		h.Files.SaveAll(form.File["uploadFiles"], post)
	}

	c.Redirect(http.StatusFound, "/board/list")
}

// EditForm returns the post for the edit page without bumping the counter.
func (h *BoardHandler) EditForm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	post, ok := h.requireOwnPost(c, id)
	if !ok {
		return
	}
	util.Success(c, util.Response{"post": newPostResp(post)})
}

// Edit updates title and content of the caller's own post.
func (h *BoardHandler) Edit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, ok := h.requireOwnPost(c, id); !ok {
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	content := c.PostForm("content")
	if err := util.ValidateTitle(title); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if strings.TrimSpace(content) == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "content is empty")
		return
	}

	if _, err := h.Boards.Update(id, title, content); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update post failed")
		return
	}

	c.Redirect(http.StatusFound, "/board/detail/"+strconv.FormatUint(uint64(id), 10))
}

// Delete removes the caller's own post together with its comments, likes and
// attachments.
func (h *BoardHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, ok := h.requireOwnPost(c, id); !ok {
		return
	}

	paths, err := h.Boards.Delete(id)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete post failed")
		return
	}
	h.Files.RemoveObjects(paths)

	c.Redirect(http.StatusFound, "/board/list")
}

// requireOwnPost loads the post and checks the session user is its author.
func (h *BoardHandler) requireOwnPost(c *gin.Context, id uint) (*models.Post, bool) {
	user, _ := middleware.CurrentUser(c)

	post, err := h.Boards.GetForEdit(id)
	if err != nil {
		if err == service.ErrPostNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "post not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query post failed")
		}
		return nil, false
	}
	if post.AuthorID != user.ID {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "only the writer can do this")
		return nil, false
	}
	return post, true
}
