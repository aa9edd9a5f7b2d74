package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tims-dev/tims-admin-bff/internal/service"
	appErrors "github.com/tims-dev/tims-admin-bff/pkg/errors"
	"github.com/tims-dev/tims-admin-bff/pkg/response"
)

// ExportHandler exposes the list-export pipeline: enqueue a render, poll its
// status and download the file through a signed token.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs the export handler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Register mounts the export routes onto the group.
func (h *ExportHandler) Register(group *gin.RouterGroup) {
	group.POST("", h.Enqueue)
	group.GET("/download", h.Download)
	group.GET("/:id", h.Status)
}

type exportRequest struct {
	Resource string `json:"resource" binding:"required"`
	Format   string `json:"format" binding:"required"`
}

// Enqueue schedules an export job for a registered list screen.
func (h *ExportHandler) Enqueue(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "resource and format are required"))
		return
	}
	job, err := h.exports.Enqueue(req.Resource, service.ExportFormat(strings.ToLower(req.Format)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job, nil)
}

// Status reports the job's lifecycle state, including the signed download
// token once rendering finished.
func (h *ExportHandler) Status(c *gin.Context) {
	job, err := h.exports.Status(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Download streams the rendered file for a valid signed token.
func (h *ExportHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	file, relPath, err := h.exports.Open(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read export file"))
		return
	}

	filename := filepath.Base(relPath)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.DataFromReader(http.StatusOK, info.Size(), contentTypeFor(filename), file, nil)
}

func contentTypeFor(filename string) string {
	switch filepath.Ext(filename) {
	case ".pdf":
		return "application/pdf"
	case ".csv":
		return "text/csv"
	}
	return "application/octet-stream"
}
