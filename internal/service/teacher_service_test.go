package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/models"
	appErrors "github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/errors"
)

type mockTeacherRepo struct {
	items map[int64]*models.Teacher
}

func (m *mockTeacherRepo) Exists(ctx context.Context, staffID int64) (bool, error) {
	_, ok := m.items[staffID]
	return ok, nil
}

func (m *mockTeacherRepo) Find(ctx context.Context, staffID int64) (*models.Teacher, error) {
	if teacher, ok := m.items[staffID]; ok {
		cp := *teacher
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherRepo) Insert(ctx context.Context, teacher *models.Teacher) error {
	if m.items == nil {
		m.items = make(map[int64]*models.Teacher)
	}
	cp := *teacher
	m.items[teacher.StaffID] = &cp
	return nil
}

func (m *mockTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	if m.items == nil {
		m.items = make(map[int64]*models.Teacher)
	}
	cp := *teacher
	m.items[teacher.StaffID] = &cp
	return nil
}

func TestTeacherServiceRegister(t *testing.T) {
	repo := &mockTeacherRepo{}
	service := NewTeacherService(repo, validator.New(), zap.NewNop())

	teacher, err := service.Register(context.Background(), RegisterTeacherRequest{
		StaffID: 9001,
		Name:    "Meera",
		Grades:  []int{6, 7},
		Subject: models.SubjectMaths,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9001), teacher.StaffID)
	assert.Equal(t, models.GradeList{6, 7}, teacher.Grades)
	assert.Len(t, repo.items, 1)
}

func TestTeacherServiceRegisterMissingGrades(t *testing.T) {
	service := NewTeacherService(&mockTeacherRepo{}, validator.New(), zap.NewNop())

	_, err := service.Register(context.Background(), RegisterTeacherRequest{
		StaffID: 9001,
		Name:    "Meera",
		Subject: models.SubjectMaths,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMissingField.Code, appErrors.FromError(err).Code)
}

func TestTeacherServiceGetNotFound(t *testing.T) {
	service := NewTeacherService(&mockTeacherRepo{}, validator.New(), zap.NewNop())

	_, err := service.Get(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTeacherServiceUpdatePartial(t *testing.T) {
	repo := &mockTeacherRepo{
		items: map[int64]*models.Teacher{
			9001: {StaffID: 9001, Name: "Meera", Grades: models.GradeList{6}, Subject: models.SubjectMaths},
		},
	}
	service := NewTeacherService(repo, validator.New(), zap.NewNop())

	updated, err := service.Update(context.Background(), 9001, UpdateTeacherRequest{
		Grades: []int{6, 7, 8},
	})
	require.NoError(t, err)
	assert.Equal(t, models.GradeList{6, 7, 8}, updated.Grades)
	assert.Equal(t, "Meera", updated.Name)
	assert.Equal(t, models.SubjectMaths, updated.Subject)
}

func TestTeacherServiceUpdateUnknownTeacher(t *testing.T) {
	repo := &mockTeacherRepo{}
	service := NewTeacherService(repo, validator.New(), zap.NewNop())

	name := "Nobody"
	_, err := service.Update(context.Background(), 404, UpdateTeacherRequest{Name: &name})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.items)
}
