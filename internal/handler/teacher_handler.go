package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/service"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/response"
)

// TeacherHandler wires teacher services to HTTP routes.
type TeacherHandler struct {
	teachers *service.TeacherService
}

// NewTeacherHandler constructs a new TeacherHandler.
func NewTeacherHandler(teachers *service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teachers: teachers}
}

// Register godoc
// @Summary Register a teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body service.RegisterTeacherRequest true "Teacher payload"
// @Success 201 {object} response.Envelope
// @Router /teachers [post]
func (h *TeacherHandler) Register(c *gin.Context) {
	var req service.RegisterTeacherRequest
	if !bindJSON(c, &req) {
		return
	}
	teacher, err := h.teachers.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, teacher)
}

// Exists godoc
// @Summary Check whether a staff ID is registered
// @Tags Teachers
// @Param staffID path int true "Staff ID"
// @Success 204
// @Router /teachers/{staffID} [head]
func (h *TeacherHandler) Exists(c *gin.Context) {
	staffID, ok := pathID(c, "staffID")
	if !ok {
		return
	}
	exists, err := h.teachers.Exists(c.Request.Context(), staffID)
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
// @Summary Get a teacher record
// @Tags Teachers
// @Produce json
// @Param staffID path int true "Staff ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{staffID} [get]
func (h *TeacherHandler) Get(c *gin.Context) {
	staffID, ok := pathID(c, "staffID")
	if !ok {
		return
	}
	teacher, err := h.teachers.Get(c.Request.Context(), staffID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher)
}

// Update godoc
// @Summary Update teacher fields
// @Tags Teachers
// @Accept json
// @Produce json
// @Param staffID path int true "Staff ID"
// @Param payload body service.UpdateTeacherRequest true "Fields to overlay"
// @Success 200 {object} response.Envelope
// @Router /teachers/{staffID} [patch]
func (h *TeacherHandler) Update(c *gin.Context) {
	staffID, ok := pathID(c, "staffID")
	if !ok {
		return
	}
	var req service.UpdateTeacherRequest
	if !bindJSON(c, &req) {
		return
	}
	teacher, err := h.teachers.Update(c.Request.Context(), staffID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher)
}
