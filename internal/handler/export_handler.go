package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/service"
	appErrors "github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/errors"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/export"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/response"
)

// ExportHandler wires the export service to HTTP routes.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs a new ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

type enqueueExportRequest struct {
	Grade   int    `json:"grade"`
	Subject string `json:"subject"`
	Format  string `json:"format"`
}

// Enqueue godoc
// @Summary Queue a class report export
// @Tags Exports
// @Accept json
// @Produce json
// @Param payload body enqueueExportRequest true "Report selection"
// @Success 202 {object} response.Envelope
// @Router /reports/class-average/export [post]
func (h *ExportHandler) Enqueue(c *gin.Context) {
	var req enqueueExportRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Format == "" {
		req.Format = string(export.FormatCSV)
	}
	job, err := h.exports.Enqueue(c.Request.Context(), req.Grade, req.Subject, export.Format(req.Format))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job)
}

// Get godoc
// @Summary Get export job status
// @Tags Exports
// @Produce json
// @Param id path string true "Export ID"
// @Success 200 {object} response.Envelope
// @Router /exports/{id} [get]
func (h *ExportHandler) Get(c *gin.Context) {
	job, err := h.exports.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job)
}

// Download godoc
// @Summary Download a completed export
// @Tags Exports
// @Produce octet-stream
// @Param id path string true "Export ID"
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /exports/{id}/download [get]
func (h *ExportHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "download token required"))
		return
	}
	file, name, err := h.exports.Download(c.Param("id"), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stat export file"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.DataFromReader(http.StatusOK, info.Size(), "application/octet-stream", file, nil)
}
