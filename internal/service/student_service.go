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

type studentRepository interface {
	Exists(ctx context.Context, rollNo int64) (bool, error)
	Find(ctx context.Context, rollNo int64) (*models.Student, error)
	Insert(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
}

// RegisterStudentRequest represents payload for registering a student.
type RegisterStudentRequest struct {
	RollNo   int64          `json:"roll_no" validate:"required,gt=0"`
	Name     string         `json:"name" validate:"required"`
	Grade    int            `json:"grade" validate:"required,min=1,max=10"`
	Language string         `json:"language" validate:"required"`
	Scores   map[string]int `json:"scores" validate:"omitempty,dive,min=0,max=100"`
}

// UpdateStudentRequest represents a partial update. Nil fields keep their
// stored values; score entries overwrite only the subjects supplied.
type UpdateStudentRequest struct {
	Name     *string        `json:"name"`
	Grade    *int           `json:"grade" validate:"omitempty,min=1,max=10"`
	Language *string        `json:"language"`
	Scores   map[string]int `json:"scores" validate:"omitempty,dive,min=0,max=100"`
}

// WeakSubjectsReport lists the subjects a student needs help with.
type WeakSubjectsReport struct {
	RollNo       int64    `json:"roll_no"`
	Threshold    int      `json:"threshold"`
	WeakSubjects []string `json:"weak_subjects"`
}

// StudentService orchestrates student record operations.
type StudentService struct {
	repo      studentRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Register stores a new student record. Duplicate roll numbers are the
// caller's responsibility; no uniqueness check is enforced here.
func (s *StudentService) Register(ctx context.Context, req RegisterStudentRequest) (*models.StudentProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "student")
	}
	student := &models.Student{
		RollNo:   req.RollNo,
		Name:     strings.TrimSpace(req.Name),
		Grade:    req.Grade,
		Language: strings.TrimSpace(req.Language),
	}
	if err := applyScores(student, req.Scores); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register student")
	}
	s.invalidateReports(ctx, student.Grade)
	profile := student.Profile()
	return &profile, nil
}

// Exists reports whether a student with the roll number is registered.
func (s *StudentService) Exists(ctx context.Context, rollNo int64) (bool, error) {
	exists, err := s.repo.Exists(ctx, rollNo)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check student")
	}
	return exists, nil
}

// Get returns a student profile by roll number.
func (s *StudentService) Get(ctx context.Context, rollNo int64) (*models.StudentProfile, error) {
	student, err := s.find(ctx, rollNo)
	if err != nil {
		return nil, err
	}
	profile := student.Profile()
	return &profile, nil
}

// Update overlays the supplied fields on the stored record and writes the
// merged row back. An unknown roll number leaves the store untouched.
func (s *StudentService) Update(ctx context.Context, rollNo int64, req UpdateStudentRequest) (*models.StudentProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "student")
	}
	student, err := s.find(ctx, rollNo)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		student.Name = strings.TrimSpace(*req.Name)
	}
	if req.Grade != nil {
		student.Grade = *req.Grade
	}
	if req.Language != nil {
		student.Language = strings.TrimSpace(*req.Language)
	}
	if err := applyScores(student, req.Scores); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	s.invalidateReports(ctx, student.Grade)
	profile := student.Profile()
	return &profile, nil
}

// WeakSubjects reports the subjects scoring below the threshold for the
// student. A threshold of 0 uses the default.
func (s *StudentService) WeakSubjects(ctx context.Context, rollNo int64, threshold int) (*WeakSubjectsReport, error) {
	if threshold < 0 || threshold > 100 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "threshold must be between 0 and 100")
	}
	if threshold == 0 {
		threshold = DefaultWeakThreshold
	}
	student, err := s.find(ctx, rollNo)
	if err != nil {
		return nil, err
	}
	return &WeakSubjectsReport{
		RollNo:       rollNo,
		Threshold:    threshold,
		WeakSubjects: WeakSubjects(student.Scores(), threshold),
	}, nil
}

func (s *StudentService) find(ctx context.Context, rollNo int64) (*models.Student, error) {
	student, err := s.repo.Find(ctx, rollNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %d not found", rollNo))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

func (s *StudentService) invalidateReports(ctx context.Context, grade int) {
	if !s.cache.Enabled() {
		return
	}
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("reports:class:%d:*", grade)); err != nil {
		s.logger.Warn("report cache invalidation failed", zap.Int("grade", grade), zap.Error(err))
	}
}

// applyScores overlays the supplied subject scores on the record. Unknown
// subject names are rejected before any write happens.
func applyScores(student *models.Student, scores map[string]int) error {
	for subject := range scores {
		if !models.ValidSubject(subject) {
			return appErrors.Clone(appErrors.ErrInvalidSubject, fmt.Sprintf("unknown subject %q", subject))
		}
	}
	set := func(dst **int, subject string) {
		if v, ok := scores[subject]; ok {
			val := v
			*dst = &val
		}
	}
	set(&student.Language1, models.SubjectLanguage1)
	set(&student.Language2, models.SubjectLanguage2)
	set(&student.Language3, models.SubjectLanguage3)
	set(&student.Maths, models.SubjectMaths)
	set(&student.Science, models.SubjectScience)
	set(&student.Social, models.SubjectSocial)
	return nil
}
