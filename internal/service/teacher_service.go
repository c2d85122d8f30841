package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/models"
	appErrors "github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/errors"
)

type teacherRepository interface {
	Exists(ctx context.Context, staffID int64) (bool, error)
	Find(ctx context.Context, staffID int64) (*models.Teacher, error)
	Insert(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
}

// RegisterTeacherRequest represents payload for registering a teacher.
type RegisterTeacherRequest struct {
	StaffID int64  `json:"staff_id" validate:"required,gt=0"`
	Name    string `json:"name" validate:"required"`
	Grades  []int  `json:"grades" validate:"required,min=1,dive,min=1,max=10"`
	Subject string `json:"subject" validate:"required"`
}

// UpdateTeacherRequest represents a partial update. Nil or empty fields keep
// their stored values.
type UpdateTeacherRequest struct {
	Name    *string `json:"name"`
	Grades  []int   `json:"grades" validate:"omitempty,min=1,dive,min=1,max=10"`
	Subject *string `json:"subject"`
}

// TeacherService orchestrates teacher record operations.
type TeacherService struct {
	repo      teacherRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, validator: validate, logger: logger}
}

// Register stores a new teacher record. Duplicate staff IDs are the caller's
// responsibility; no uniqueness check is enforced here.
func (s *TeacherService) Register(ctx context.Context, req RegisterTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "teacher")
	}
	teacher := &models.Teacher{
		StaffID: req.StaffID,
		Name:    strings.TrimSpace(req.Name),
		Grades:  models.GradeList(req.Grades),
		Subject: strings.TrimSpace(req.Subject),
	}
	if err := s.repo.Insert(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register teacher")
	}
	return teacher, nil
}

// Exists reports whether a teacher with the staff ID is registered.
func (s *TeacherService) Exists(ctx context.Context, staffID int64) (bool, error) {
	exists, err := s.repo.Exists(ctx, staffID)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teacher")
	}
	return exists, nil
}

// Get returns a teacher by staff ID.
func (s *TeacherService) Get(ctx context.Context, staffID int64) (*models.Teacher, error) {
	return s.find(ctx, staffID)
}

// Update overlays the supplied fields on the stored record and writes the
// merged row back. An unknown staff ID leaves the store untouched.
func (s *TeacherService) Update(ctx context.Context, staffID int64, req UpdateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "teacher")
	}
	teacher, err := s.find(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		teacher.Name = strings.TrimSpace(*req.Name)
	}
	if len(req.Grades) > 0 {
		teacher.Grades = models.GradeList(req.Grades)
	}
	if req.Subject != nil {
		teacher.Subject = strings.TrimSpace(*req.Subject)
	}
	if err := s.repo.Update(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update teacher")
	}
	return teacher, nil
}

func (s *TeacherService) find(ctx context.Context, staffID int64) (*models.Teacher, error) {
	teacher, err := s.repo.Find(ctx, staffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("teacher %d not found", staffID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	return teacher, nil
}
