package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ljy0221/spring-board/internal/middleware"
	"github.com/ljy0221/spring-board/internal/models"
	"github.com/ljy0221/spring-board/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler dumps the caller's own posts as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeader = []string{"ID", "Title", "Content", "Writer", "Views", "Created", "Updated"}

func exportRow(p *models.Post) []string {
	return []string{
		strconv.FormatUint(uint64(p.ID), 10),
		p.Title,
		p.Content,
		p.Writer,
		strconv.Itoa(p.ViewCount),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *ExportHandler) ownPosts(c *gin.Context) ([]models.Post, bool) {
	user, _ := middleware.CurrentUser(c)

	var posts []models.Post
	if err := h.DB.Where("author_id = ?", user.ID).
		Order("id ASC").
		Find(&posts).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query posts failed")
		return nil, false
	}
	return posts, true
}

// ExportCSV streams the caller's posts as a CSV file.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	posts, ok := h.ownPosts(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(exportHeader)
	for i := range posts {
		_ = w.Write(exportRow(&posts[i]))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "write csv failed")
		return
	}

	fileName := fmt.Sprintf("posts-%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", fileName))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// ExportXLSX streams the caller's posts as an Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	posts, ok := h.ownPosts(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Posts"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "build xlsx failed")
		return
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	for col, name := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, name)
	}
	for row := range posts {
		for col, val := range exportRow(&posts[row]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, val)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "write xlsx failed")
		return
	}

	fileName := fmt.Sprintf("posts-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", fileName))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
