package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/service"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/response"
)

// RecommendationHandler wires the recommendation service to HTTP routes.
type RecommendationHandler struct {
	recommendations *service.RecommendationService
}

// NewRecommendationHandler constructs a new RecommendationHandler.
func NewRecommendationHandler(recommendations *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

// Replace godoc
// @Summary Replace a student's recommendation set
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param rollNo path int true "Roll number"
// @Param payload body service.ReplaceRecommendationsRequest true "Candidate videos"
// @Success 200 {object} response.Envelope
// @Router /students/{rollNo}/recommendations [put]
func (h *RecommendationHandler) Replace(c *gin.Context) {
	rollNo, ok := pathID(c, "rollNo")
	if !ok {
		return
	}
	var req service.ReplaceRecommendationsRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.recommendations.Replace(c.Request.Context(), rollNo, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// List godoc
// @Summary List a student's recommendations
// @Tags Recommendations
// @Produce json
// @Param rollNo path int true "Roll number"
// @Param subject query string false "Filter by subject"
// @Success 200 {object} response.Envelope
// @Router /students/{rollNo}/recommendations [get]
func (h *RecommendationHandler) List(c *gin.Context) {
	rollNo, ok := pathID(c, "rollNo")
	if !ok {
		return
	}
	recs, err := h.recommendations.List(c.Request.Context(), rollNo, c.Query("subject"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, recs, map[string]interface{}{"count": len(recs)})
}

// Delete godoc
// @Summary Delete all recommendations for a student
// @Tags Recommendations
// @Produce json
// @Param rollNo path int true "Roll number"
// @Success 200 {object} response.Envelope
// @Router /students/{rollNo}/recommendations [delete]
func (h *RecommendationHandler) Delete(c *gin.Context) {
	rollNo, ok := pathID(c, "rollNo")
	if !ok {
		return
	}
	deleted, err := h.recommendations.Delete(c.Request.Context(), rollNo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, map[string]interface{}{"roll_no": rollNo, "deleted": deleted})
}
