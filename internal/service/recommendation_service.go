package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/models"
	appErrors "github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/errors"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/videolink"
)

type recommendationRepository interface {
	Replace(ctx context.Context, rollNo int64, recs []models.Recommendation) error
	ListByRollNo(ctx context.Context, rollNo int64) ([]models.Recommendation, error)
	ListBySubject(ctx context.Context, rollNo int64, subject string) ([]models.Recommendation, error)
	DeleteByRollNo(ctx context.Context, rollNo int64) (int64, error)
}

// ReplaceRecommendationsRequest carries the full candidate set for a student.
// Whatever is stored for the roll number is discarded and rebuilt from the
// candidates that survive link validation.
type ReplaceRecommendationsRequest struct {
	StudentName string                `json:"student_name" validate:"required"`
	Videos      []videolink.Candidate `json:"videos" validate:"required,min=1"`
}

// ReplaceResult summarizes a replacement: how many candidates were stored and
// how many were dropped by link validation.
type ReplaceResult struct {
	RollNo          int64                   `json:"roll_no"`
	Saved           int                     `json:"saved"`
	Dropped         int                     `json:"dropped"`
	Recommendations []models.Recommendation `json:"recommendations"`
}

// RecommendationService validates candidate video links and manages the
// per-student recommendation sets.
type RecommendationService struct {
	repo        recommendationRepository
	checker     videolink.ReachabilityChecker
	concurrency int
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewRecommendationService constructs a RecommendationService.
func NewRecommendationService(repo recommendationRepository, checker videolink.ReachabilityChecker, concurrency int, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *RecommendationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendationService{
		repo:        repo,
		checker:     checker,
		concurrency: concurrency,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
	}
}

// Replace filters the candidates down to reachable YouTube links and swaps
// them in as the student's recommendation set. Candidates with dead or
// non-video links are dropped silently; dropping all of them still clears the
// stored set.
func (s *RecommendationService) Replace(ctx context.Context, rollNo int64, req ReplaceRecommendationsRequest) (*ReplaceResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "recommendations")
	}
	for _, cand := range req.Videos {
		if cand.Subject != "" && !models.ValidSubject(cand.Subject) {
			return nil, appErrors.Clone(appErrors.ErrInvalidSubject, fmt.Sprintf("unknown subject %q", cand.Subject))
		}
	}

	valid := videolink.FilterValid(ctx, s.checker, req.Videos, s.concurrency)
	dropped := len(req.Videos) - len(valid)
	s.metrics.RecordLinkChecks(len(valid), dropped)
	if dropped > 0 {
		s.logger.Info("dropped unreachable recommendation links",
			zap.Int64("roll_no", rollNo),
			zap.Int("dropped", dropped),
			zap.Int("kept", len(valid)))
	}

	now := time.Now().UTC()
	recs := make([]models.Recommendation, 0, len(valid))
	for _, cand := range valid {
		recs = append(recs, models.Recommendation{
			RollNo:      rollNo,
			StudentName: req.StudentName,
			ChannelName: defaultString(cand.ChannelName, "Unknown"),
			Title:       cand.Title,
			Description: cand.Description,
			Link:        cand.Link,
			Language:    defaultString(cand.Language, "English"),
			Subject:     cand.Subject,
			CreatedAt:   now,
		})
	}

	if err := s.repo.Replace(ctx, rollNo, recs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace recommendations")
	}
	return &ReplaceResult{
		RollNo:          rollNo,
		Saved:           len(recs),
		Dropped:         dropped,
		Recommendations: recs,
	}, nil
}

// List returns a student's stored recommendations, optionally narrowed to one
// subject. An empty result is not an error.
func (s *RecommendationService) List(ctx context.Context, rollNo int64, subject string) ([]models.Recommendation, error) {
	if subject != "" && !models.ValidSubject(subject) {
		return nil, appErrors.Clone(appErrors.ErrInvalidSubject, fmt.Sprintf("unknown subject %q", subject))
	}
	var (
		recs []models.Recommendation
		err  error
	)
	if subject != "" {
		recs, err = s.repo.ListBySubject(ctx, rollNo, subject)
	} else {
		recs, err = s.repo.ListByRollNo(ctx, rollNo)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list recommendations")
	}
	if recs == nil {
		recs = []models.Recommendation{}
	}
	return recs, nil
}

// Delete removes all recommendations for the student and returns how many
// rows went away. Deleting an empty set succeeds with a count of zero.
func (s *RecommendationService) Delete(ctx context.Context, rollNo int64) (int64, error) {
	deleted, err := s.repo.DeleteByRollNo(ctx, rollNo)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete recommendations")
	}
	return deleted, nil
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
