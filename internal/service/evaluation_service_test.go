package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/models"
	appErrors "github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/errors"
)

type mockTestResultRepo struct {
	results []models.TestResult
}

func (m *mockTestResultRepo) Insert(ctx context.Context, result *models.TestResult) error {
	m.results = append(m.results, *result)
	return nil
}

func (m *mockTestResultRepo) ListByRollNo(ctx context.Context, rollNo int64) ([]models.TestResult, error) {
	var out []models.TestResult
	for _, r := range m.results {
		if r.RollNo == rollNo {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockTestResultRepo) ListBySubject(ctx context.Context, rollNo int64, subject string) ([]models.TestResult, error) {
	var out []models.TestResult
	for _, r := range m.results {
		if r.RollNo == rollNo && r.Subject == subject {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestEvaluationServiceRecord(t *testing.T) {
	repo := &mockTestResultRepo{}
	service := NewEvaluationService(repo, validator.New(), zap.NewNop())

	result, err := service.Record(context.Background(), 101, RecordTestResultRequest{
		Subject:        models.SubjectMaths,
		QuizScore:      80,
		EvaluatedScore: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, 70, result.TotalScore)
	assert.Equal(t, TierDeveloping, result.Tier)
	assert.False(t, result.TakenAt.IsZero())
	require.Len(t, repo.results, 1)
	// tier is derived, never stored
	assert.Empty(t, repo.results[0].Tier)
}

func TestEvaluationServiceRecordTiers(t *testing.T) {
	repo := &mockTestResultRepo{}
	service := NewEvaluationService(repo, validator.New(), zap.NewNop())

	low, err := service.Record(context.Background(), 101, RecordTestResultRequest{
		Subject: models.SubjectScience, QuizScore: 40, EvaluatedScore: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, TierNeedsImprovement, low.Tier)

	high, err := service.Record(context.Background(), 101, RecordTestResultRequest{
		Subject: models.SubjectScience, QuizScore: 90, EvaluatedScore: 80,
	})
	require.NoError(t, err)
	assert.Equal(t, 85, high.TotalScore)
	assert.Equal(t, TierProficient, high.Tier)
}

func TestEvaluationServiceRecordUnknownSubject(t *testing.T) {
	service := NewEvaluationService(&mockTestResultRepo{}, validator.New(), zap.NewNop())

	_, err := service.Record(context.Background(), 101, RecordTestResultRequest{
		Subject: "History", QuizScore: 50, EvaluatedScore: 50,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidSubject.Code, appErrors.FromError(err).Code)
}

func TestEvaluationServiceRecordScoreOutOfRange(t *testing.T) {
	service := NewEvaluationService(&mockTestResultRepo{}, validator.New(), zap.NewNop())

	_, err := service.Record(context.Background(), 101, RecordTestResultRequest{
		Subject: models.SubjectMaths, QuizScore: 101, EvaluatedScore: 50,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEvaluationServiceHistoryDerivesTiers(t *testing.T) {
	repo := &mockTestResultRepo{
		results: []models.TestResult{
			{RollNo: 101, Subject: models.SubjectMaths, TotalScore: 55},
			{RollNo: 101, Subject: models.SubjectScience, TotalScore: 90},
			{RollNo: 202, Subject: models.SubjectMaths, TotalScore: 70},
		},
	}
	service := NewEvaluationService(repo, validator.New(), zap.NewNop())

	results, err := service.History(context.Background(), 101, "")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, TierNeedsImprovement, results[0].Tier)
	assert.Equal(t, TierProficient, results[1].Tier)
}

func TestEvaluationServiceHistoryEmpty(t *testing.T) {
	service := NewEvaluationService(&mockTestResultRepo{}, validator.New(), zap.NewNop())

	results, err := service.History(context.Background(), 101, models.SubjectMaths)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}
