package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/service"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/response"
)

// EvaluationHandler wires the evaluation service to HTTP routes.
type EvaluationHandler struct {
	evaluations *service.EvaluationService
}

// NewEvaluationHandler constructs a new EvaluationHandler.
func NewEvaluationHandler(evaluations *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluations: evaluations}
}

// Record godoc
// @Summary Record a test result
// @Tags Evaluations
// @Accept json
// @Produce json
// @Param rollNo path int true "Roll number"
// @Param payload body service.RecordTestResultRequest true "Test scores"
// @Success 201 {object} response.Envelope
// @Router /students/{rollNo}/test-results [post]
func (h *EvaluationHandler) Record(c *gin.Context) {
	rollNo, ok := pathID(c, "rollNo")
	if !ok {
		return
	}
	var req service.RecordTestResultRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.evaluations.Record(c.Request.Context(), rollNo, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// History godoc
// @Summary List a student's test results, newest first
// @Tags Evaluations
// @Produce json
// @Param rollNo path int true "Roll number"
// @Param subject query string false "Filter by subject"
// @Success 200 {object} response.Envelope
// @Router /students/{rollNo}/test-results [get]
func (h *EvaluationHandler) History(c *gin.Context) {
	rollNo, ok := pathID(c, "rollNo")
	if !ok {
		return
	}
	results, err := h.evaluations.History(c.Request.Context(), rollNo, c.Query("subject"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, map[string]interface{}{"count": len(results)})
}
