package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/service"
	appErrors "github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/errors"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/response"
)

// ReportHandler wires the report service to HTTP routes.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs a new ReportHandler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// ClassAverage godoc
// @Summary Aggregate one subject's scores across a grade
// @Tags Reports
// @Produce json
// @Param grade query int true "Grade (1-10)"
// @Param subject query string true "Subject name"
// @Success 200 {object} response.Envelope
// @Router /reports/class-average [get]
func (h *ReportHandler) ClassAverage(c *gin.Context) {
	grade, err := strconv.Atoi(c.Query("grade"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "grade must be an integer"))
		return
	}
	subject := c.Query("subject")
	if subject == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrMissingField, `missing required field "subject"`))
		return
	}
	stats, err := h.reports.ClassAverage(c.Request.Context(), grade, subject)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}
