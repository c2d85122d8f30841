package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/service"
	appErrors "github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/errors"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/response"
)

// StudentHandler wires student services to HTTP routes.
type StudentHandler struct {
	students *service.StudentService
}

// NewStudentHandler constructs a new StudentHandler.
func NewStudentHandler(students *service.StudentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// Register godoc
// @Summary Register a student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.RegisterStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Register(c *gin.Context) {
	var req service.RegisterStudentRequest
	if !bindJSON(c, &req) {
		return
	}
	profile, err := h.students.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, profile)
}

// Exists godoc
// @Summary Check whether a roll number is registered
// @Tags Students
// @Param rollNo path int true "Roll number"
// @Success 204
// @Router /students/{rollNo} [head]
func (h *StudentHandler) Exists(c *gin.Context) {
	rollNo, ok := pathID(c, "rollNo")
	if !ok {
		return
	}
	exists, err := h.students.Exists(c.Request.Context(), rollNo)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !exists {
		c.Status(http.StatusNotFound)
		return
	}
	response.NoContent(c)
}

// Get godoc
// @Summary Get a student profile
// @Tags Students
// @Produce json
// @Param rollNo path int true "Roll number"
// @Success 200 {object} response.Envelope
// @Router /students/{rollNo} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	rollNo, ok := pathID(c, "rollNo")
	if !ok {
		return
	}
	profile, err := h.students.Get(c.Request.Context(), rollNo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile)
}

// Update godoc
// @Summary Update student fields or scores
// @Tags Students
// @Accept json
// @Produce json
// @Param rollNo path int true "Roll number"
// @Param payload body service.UpdateStudentRequest true "Fields to overlay"
// @Success 200 {object} response.Envelope
// @Router /students/{rollNo} [patch]
func (h *StudentHandler) Update(c *gin.Context) {
	rollNo, ok := pathID(c, "rollNo")
	if !ok {
		return
	}
	var req service.UpdateStudentRequest
	if !bindJSON(c, &req) {
		return
	}
	profile, err := h.students.Update(c.Request.Context(), rollNo, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile)
}

// WeakSubjects godoc
// @Summary List subjects a student scores below the threshold in
// @Tags Students
// @Produce json
// @Param rollNo path int true "Roll number"
// @Param threshold query int false "Score threshold (default 60)"
// @Success 200 {object} response.Envelope
// @Router /students/{rollNo}/weak-subjects [get]
func (h *StudentHandler) WeakSubjects(c *gin.Context) {
	rollNo, ok := pathID(c, "rollNo")
	if !ok {
		return
	}
	threshold := 0
	if raw := c.Query("threshold"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "threshold must be an integer"))
			return
		}
		threshold = val
	}
	report, err := h.students.WeakSubjects(c.Request.Context(), rollNo, threshold)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}
