package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers bundles the HTTP handlers mounted under the API prefix.
type Handlers struct {
	Students        *StudentHandler
	Teachers        *TeacherHandler
	Recommendations *RecommendationHandler
	Evaluations     *EvaluationHandler
	Reports         *ReportHandler
	Exports         *ExportHandler
}

// RegisterRoutes mounts all API routes on the group.
func (h Handlers) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/students", h.Students.Register)
	api.HEAD("/students/:rollNo", h.Students.Exists)
	api.GET("/students/:rollNo", h.Students.Get)
	api.PATCH("/students/:rollNo", h.Students.Update)
	api.GET("/students/:rollNo/weak-subjects", h.Students.WeakSubjects)

	api.POST("/teachers", h.Teachers.Register)
	api.HEAD("/teachers/:staffID", h.Teachers.Exists)
	api.GET("/teachers/:staffID", h.Teachers.Get)
	api.PATCH("/teachers/:staffID", h.Teachers.Update)

	api.PUT("/students/:rollNo/recommendations", h.Recommendations.Replace)
	api.GET("/students/:rollNo/recommendations", h.Recommendations.List)
	api.DELETE("/students/:rollNo/recommendations", h.Recommendations.Delete)

	api.POST("/students/:rollNo/test-results", h.Evaluations.Record)
	api.GET("/students/:rollNo/test-results", h.Evaluations.History)

	api.GET("/reports/class-average", h.Reports.ClassAverage)

	if h.Exports != nil {
		api.POST("/reports/class-average/export", h.Exports.Enqueue)
		api.GET("/exports/:id", h.Exports.Get)
		api.GET("/exports/:id/download", h.Exports.Download)
	}
}
