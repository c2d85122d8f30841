package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/models"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/repository"
	appErrors "github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/errors"
)

type reportRepository interface {
	ClassStats(ctx context.Context, grade int, column string) (*repository.ClassAggregate, error)
}

// ReportService computes class-level aggregates over student scores.
type ReportService struct {
	repo     reportRepository
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(repo reportRepository, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// ClassAverage aggregates one subject's scores across a grade. Students with
// no recorded score for the subject are excluded from every statistic. The
// subject is checked against the known enumerants before any query runs.
func (s *ReportService) ClassAverage(ctx context.Context, grade int, subject string) (*models.ClassStats, error) {
	column, ok := models.SubjectColumn(subject)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidSubject, fmt.Sprintf("unknown subject %q", subject))
	}
	if grade < 1 || grade > 10 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "grade must be between 1 and 10")
	}

	cacheKey := fmt.Sprintf("reports:class:%d:%s", grade, subject)
	var cached models.ClassStats
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	agg, err := s.repo.ClassStats(ctx, grade, column)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate class scores")
	}
	if agg.StudentCount == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoStudentsFound, fmt.Sprintf("no students with %s scores in grade %d", subject, grade))
	}

	stats := &models.ClassStats{
		Grade:        grade,
		Subject:      subject,
		AverageScore: round2(agg.AverageScore.Float64),
		StudentCount: agg.StudentCount,
		MinScore:     int(agg.MinScore.Int64),
		MaxScore:     int(agg.MaxScore.Int64),
	}

	if err := s.cache.Set(ctx, cacheKey, stats, s.cacheTTL); err != nil {
		s.logger.Warn("class report cache write failed", zap.String("key", cacheKey), zap.Error(err))
	}
	return stats, nil
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
