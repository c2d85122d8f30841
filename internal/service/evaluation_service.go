package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/models"
	appErrors "github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/errors"
)

type testResultRepository interface {
	Insert(ctx context.Context, result *models.TestResult) error
	ListByRollNo(ctx context.Context, rollNo int64) ([]models.TestResult, error)
	ListBySubject(ctx context.Context, rollNo int64, subject string) ([]models.TestResult, error)
}

// RecordTestResultRequest carries one test outcome: the quiz score and the
// teacher-evaluated score, both on a 0-100 scale.
type RecordTestResultRequest struct {
	Subject        string `json:"subject" validate:"required"`
	QuizScore      int    `json:"quiz_score" validate:"min=0,max=100"`
	EvaluatedScore int    `json:"evaluated_score" validate:"min=0,max=100"`
}

// EvaluationService records test results and computes combined scores and
// performance tiers.
type EvaluationService struct {
	repo      testResultRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEvaluationService constructs an EvaluationService.
func NewEvaluationService(repo testResultRepository, validate *validator.Validate, logger *zap.Logger) *EvaluationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluationService{repo: repo, validator: validate, logger: logger}
}

// Record appends a test result. The total is the rounded average of the two
// scores and the tier is derived from the total.
func (s *EvaluationService) Record(ctx context.Context, rollNo int64, req RecordTestResultRequest) (*models.TestResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "test result")
	}
	if !models.ValidSubject(req.Subject) {
		return nil, appErrors.Clone(appErrors.ErrInvalidSubject, fmt.Sprintf("unknown subject %q", req.Subject))
	}

	total := CombineScores(req.QuizScore, req.EvaluatedScore)
	result := &models.TestResult{
		RollNo:         rollNo,
		Subject:        req.Subject,
		QuizScore:      req.QuizScore,
		EvaluatedScore: req.EvaluatedScore,
		TotalScore:     total,
		TakenAt:        time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, result); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record test result")
	}
	result.Tier = PerformanceTier(total)
	return result, nil
}

// History returns a student's test results newest first, optionally narrowed
// to one subject. Tiers are derived on the way out.
func (s *EvaluationService) History(ctx context.Context, rollNo int64, subject string) ([]models.TestResult, error) {
	if subject != "" && !models.ValidSubject(subject) {
		return nil, appErrors.Clone(appErrors.ErrInvalidSubject, fmt.Sprintf("unknown subject %q", subject))
	}
	var (
		results []models.TestResult
		err     error
	)
	if subject != "" {
		results, err = s.repo.ListBySubject(ctx, rollNo, subject)
	} else {
		results, err = s.repo.ListByRollNo(ctx, rollNo)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list test results")
	}
	for i := range results {
		results[i].Tier = PerformanceTier(results[i].TotalScore)
	}
	if results == nil {
		results = []models.TestResult{}
	}
	return results, nil
}
