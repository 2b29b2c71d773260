package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/ljy0221/spring-board/internal/service"
	"github.com/ljy0221/spring-board/internal/util"

	"github.com/gin-gonic/gin"
)

// FileHandler streams attachment downloads.
type FileHandler struct {
	Files *service.FileService
}

func NewFileHandler(files *service.FileService) *FileHandler {
	return &FileHandler{Files: files}
}

// Download resolves the attachment row, sniffs a content type from the
// stored bytes and streams the file under its original name.
func (h *FileHandler) Download(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("fileId"), 10, 32)
	if err != nil || id == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid file id")
		return
	}

	att, err := h.Files.Get(uint(id))
	if err != nil {
		if err == service.ErrFileNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "file not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query file failed")
		}
		return
	}

	contentType, err := sniffContentType(att.Path)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "read file failed")
		return
	}

	// percent-encode the original name, spaces as %20
	encoded := strings.ReplaceAll(url.QueryEscape(att.OriginalName), "+", "%20")

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", encoded))
	c.File(att.Path)
}

// sniffContentType reads up to the first 512 bytes and falls back to a
// generic binary type when nothing can be detected.
func sniffContentType(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		return "application/octet-stream", nil
	}
	return http.DetectContentType(buf[:n]), nil
}
