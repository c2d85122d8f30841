package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/models"
	appErrors "github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/errors"
)

type mockStudentRepo struct {
	items map[int64]*models.Student
}

func (m *mockStudentRepo) Exists(ctx context.Context, rollNo int64) (bool, error) {
	_, ok := m.items[rollNo]
	return ok, nil
}

func (m *mockStudentRepo) Find(ctx context.Context, rollNo int64) (*models.Student, error) {
	if student, ok := m.items[rollNo]; ok {
		cp := *student
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) Insert(ctx context.Context, student *models.Student) error {
	if m.items == nil {
		m.items = make(map[int64]*models.Student)
	}
	cp := *student
	m.items[student.RollNo] = &cp
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	if m.items == nil {
		m.items = make(map[int64]*models.Student)
	}
	cp := *student
	m.items[student.RollNo] = &cp
	return nil
}

func intPtr(v int) *int { return &v }

func TestStudentServiceRegister(t *testing.T) {
	repo := &mockStudentRepo{}
	service := NewStudentService(repo, nil, validator.New(), zap.NewNop())

	profile, err := service.Register(context.Background(), RegisterStudentRequest{
		RollNo:   101,
		Name:     "Asha",
		Grade:    7,
		Language: "English",
		Scores:   map[string]int{models.SubjectMaths: 45},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(101), profile.RollNo)
	assert.Equal(t, 45, profile.Scores[models.SubjectMaths])
	assert.Equal(t, 0, profile.Scores[models.SubjectScience])
	assert.Len(t, repo.items, 1)
}

func TestStudentServiceRegisterMissingLanguage(t *testing.T) {
	service := NewStudentService(&mockStudentRepo{}, nil, validator.New(), zap.NewNop())

	_, err := service.Register(context.Background(), RegisterStudentRequest{
		RollNo: 101,
		Name:   "Asha",
		Grade:  7,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMissingField.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceRegisterUnknownSubject(t *testing.T) {
	repo := &mockStudentRepo{}
	service := NewStudentService(repo, nil, validator.New(), zap.NewNop())

	_, err := service.Register(context.Background(), RegisterStudentRequest{
		RollNo:   101,
		Name:     "Asha",
		Grade:    7,
		Language: "English",
		Scores:   map[string]int{"History": 80},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidSubject.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.items)
}

func TestStudentServiceGetNotFound(t *testing.T) {
	service := NewStudentService(&mockStudentRepo{}, nil, validator.New(), zap.NewNop())

	_, err := service.Get(context.Background(), 404)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestStudentServiceUpdateMergesScores(t *testing.T) {
	repo := &mockStudentRepo{
		items: map[int64]*models.Student{
			101: {RollNo: 101, Name: "Asha", Grade: 7, Language: "English", Maths: intPtr(45), Science: intPtr(70)},
		},
	}
	service := NewStudentService(repo, nil, validator.New(), zap.NewNop())

	profile, err := service.Update(context.Background(), 101, UpdateStudentRequest{
		Scores: map[string]int{models.SubjectMaths: 85},
	})
	require.NoError(t, err)
	assert.Equal(t, 85, profile.Scores[models.SubjectMaths])
	assert.Equal(t, 70, profile.Scores[models.SubjectScience])
	assert.Equal(t, "Asha", profile.Name)
}

func TestStudentServiceUpdateUnknownStudent(t *testing.T) {
	repo := &mockStudentRepo{}
	service := NewStudentService(repo, nil, validator.New(), zap.NewNop())

	name := "Nobody"
	_, err := service.Update(context.Background(), 404, UpdateStudentRequest{Name: &name})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.items)
}

func TestStudentServiceWeakSubjects(t *testing.T) {
	repo := &mockStudentRepo{
		items: map[int64]*models.Student{
			101: {RollNo: 101, Name: "Asha", Grade: 7, Language: "English", Maths: intPtr(45), Science: intPtr(80), Social: intPtr(0)},
		},
	}
	service := NewStudentService(repo, nil, validator.New(), zap.NewNop())

	report, err := service.WeakSubjects(context.Background(), 101, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultWeakThreshold, report.Threshold)
	assert.Equal(t, []string{models.SubjectMaths}, report.WeakSubjects)
}

func TestStudentServiceWeakSubjectsCustomThreshold(t *testing.T) {
	repo := &mockStudentRepo{
		items: map[int64]*models.Student{
			101: {RollNo: 101, Name: "Asha", Grade: 7, Language: "English", Maths: intPtr(72), Science: intPtr(80)},
		},
	}
	service := NewStudentService(repo, nil, validator.New(), zap.NewNop())

	report, err := service.WeakSubjects(context.Background(), 101, 75)
	require.NoError(t, err)
	assert.Equal(t, []string{models.SubjectMaths}, report.WeakSubjects)
}
