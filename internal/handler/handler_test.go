package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/models"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/repository"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/service"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/response"
)

type studentRepoStub struct {
	items map[int64]*models.Student
}

func (m *studentRepoStub) Exists(ctx context.Context, rollNo int64) (bool, error) {
	_, ok := m.items[rollNo]
	return ok, nil
}

func (m *studentRepoStub) Find(ctx context.Context, rollNo int64) (*models.Student, error) {
	if s, ok := m.items[rollNo]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *studentRepoStub) Insert(ctx context.Context, s *models.Student) error {
	if m.items == nil {
		m.items = make(map[int64]*models.Student)
	}
	cp := *s
	m.items[s.RollNo] = &cp
	return nil
}

func (m *studentRepoStub) Update(ctx context.Context, s *models.Student) error {
	cp := *s
	m.items[s.RollNo] = &cp
	return nil
}

type recommendationRepoStub struct {
	stored map[int64][]models.Recommendation
}

func (m *recommendationRepoStub) Replace(ctx context.Context, rollNo int64, recs []models.Recommendation) error {
	if m.stored == nil {
		m.stored = make(map[int64][]models.Recommendation)
	}
	m.stored[rollNo] = recs
	return nil
}

func (m *recommendationRepoStub) ListByRollNo(ctx context.Context, rollNo int64) ([]models.Recommendation, error) {
	return m.stored[rollNo], nil
}

func (m *recommendationRepoStub) ListBySubject(ctx context.Context, rollNo int64, subject string) ([]models.Recommendation, error) {
	var out []models.Recommendation
	for _, rec := range m.stored[rollNo] {
		if rec.Subject == subject {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *recommendationRepoStub) DeleteByRollNo(ctx context.Context, rollNo int64) (int64, error) {
	count := int64(len(m.stored[rollNo]))
	delete(m.stored, rollNo)
	return count, nil
}

type reportRepoStub struct {
	agg *repository.ClassAggregate
}

func (m *reportRepoStub) ClassStats(ctx context.Context, grade int, column string) (*repository.ClassAggregate, error) {
	if m.agg == nil {
		return &repository.ClassAggregate{}, nil
	}
	return m.agg, nil
}

type alwaysReachable struct{}

func (alwaysReachable) Reachable(ctx context.Context, link string) bool { return true }

func newTestRouter(students *studentRepoStub, recs *recommendationRepoStub, reports *reportRepoStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validate := validator.New()
	logger := zap.NewNop()

	handlers := Handlers{
		Students:        NewStudentHandler(service.NewStudentService(students, nil, validate, logger)),
		Teachers:        NewTeacherHandler(service.NewTeacherService(&teacherRepoStub{}, validate, logger)),
		Recommendations: NewRecommendationHandler(service.NewRecommendationService(recs, alwaysReachable{}, 2, nil, validate, logger)),
		Evaluations:     NewEvaluationHandler(service.NewEvaluationService(&testResultRepoStub{}, validate, logger)),
		Reports:         NewReportHandler(service.NewReportService(reports, nil, 0, logger)),
	}

	router := gin.New()
	handlers.RegisterRoutes(router.Group("/api/v1"))
	return router
}

type teacherRepoStub struct {
	items map[int64]*models.Teacher
}

func (m *teacherRepoStub) Exists(ctx context.Context, staffID int64) (bool, error) {
	_, ok := m.items[staffID]
	return ok, nil
}

func (m *teacherRepoStub) Find(ctx context.Context, staffID int64) (*models.Teacher, error) {
	if t, ok := m.items[staffID]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *teacherRepoStub) Insert(ctx context.Context, t *models.Teacher) error {
	if m.items == nil {
		m.items = make(map[int64]*models.Teacher)
	}
	cp := *t
	m.items[t.StaffID] = &cp
	return nil
}

func (m *teacherRepoStub) Update(ctx context.Context, t *models.Teacher) error {
	cp := *t
	m.items[t.StaffID] = &cp
	return nil
}

type testResultRepoStub struct {
	results []models.TestResult
}

func (m *testResultRepoStub) Insert(ctx context.Context, r *models.TestResult) error {
	m.results = append(m.results, *r)
	return nil
}

func (m *testResultRepoStub) ListByRollNo(ctx context.Context, rollNo int64) ([]models.TestResult, error) {
	return m.results, nil
}

func (m *testResultRepoStub) ListBySubject(ctx context.Context, rollNo int64, subject string) ([]models.TestResult, error) {
	return m.results, nil
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStudentRegisterAndGet(t *testing.T) {
	students := &studentRepoStub{}
	router := newTestRouter(students, &recommendationRepoStub{}, &reportRepoStub{})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/students", map[string]interface{}{
		"roll_no":  101,
		"name":     "Asha",
		"grade":    7,
		"language": "English",
		"scores":   map[string]int{"Maths": 45},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/students/101", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, "Asha", data["name"])
	scores := data["scores"].(map[string]interface{})
	assert.Equal(t, float64(45), scores["Maths"])
	assert.Equal(t, float64(0), scores["Science"])
}

func TestStudentRegisterMissingField(t *testing.T) {
	router := newTestRouter(&studentRepoStub{}, &recommendationRepoStub{}, &reportRepoStub{})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/students", map[string]interface{}{
		"roll_no": 101,
		"name":    "Asha",
		"grade":   7,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_FIELD")
}

func TestStudentExists(t *testing.T) {
	maths := 45
	students := &studentRepoStub{items: map[int64]*models.Student{
		101: {RollNo: 101, Name: "Asha", Grade: 7, Language: "English", Maths: &maths},
	}}
	router := newTestRouter(students, &recommendationRepoStub{}, &reportRepoStub{})

	rec := doJSON(t, router, http.MethodHead, "/api/v1/students/101", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodHead, "/api/v1/students/404", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudentGetNotFound(t *testing.T) {
	router := newTestRouter(&studentRepoStub{}, &recommendationRepoStub{}, &reportRepoStub{})

	rec := doJSON(t, router, http.MethodGet, "/api/v1/students/404", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudentWeakSubjects(t *testing.T) {
	maths := 45
	students := &studentRepoStub{items: map[int64]*models.Student{
		101: {RollNo: 101, Name: "Asha", Grade: 7, Language: "English", Maths: &maths},
	}}
	router := newTestRouter(students, &recommendationRepoStub{}, &reportRepoStub{})

	rec := doJSON(t, router, http.MethodGet, "/api/v1/students/101/weak-subjects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Maths")
}

func TestRecommendationsReplaceAndList(t *testing.T) {
	recs := &recommendationRepoStub{}
	router := newTestRouter(&studentRepoStub{}, recs, &reportRepoStub{})

	rec := doJSON(t, router, http.MethodPut, "/api/v1/students/101/recommendations", map[string]interface{}{
		"student_name": "Asha",
		"videos": []map[string]string{
			{"title": "Fractions", "link": "https://youtu.be/abc123", "subject": "Maths"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"saved":1`)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/students/101/recommendations?subject=Maths", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "watch?v=abc123")
}

func TestRecommendationsDelete(t *testing.T) {
	recs := &recommendationRepoStub{stored: map[int64][]models.Recommendation{
		101: {{RollNo: 101, Title: "Fractions"}},
	}}
	router := newTestRouter(&studentRepoStub{}, recs, &reportRepoStub{})

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/students/101/recommendations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deleted":1`)
}

func TestTestResultRecord(t *testing.T) {
	router := newTestRouter(&studentRepoStub{}, &recommendationRepoStub{}, &reportRepoStub{})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/students/101/test-results", map[string]interface{}{
		"subject":         "Maths",
		"quiz_score":      80,
		"evaluated_score": 60,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_score":70`)
	assert.Contains(t, rec.Body.String(), "developing")
}

func TestClassAverageReport(t *testing.T) {
	reports := &reportRepoStub{agg: &repository.ClassAggregate{
		AverageScore: sql.NullFloat64{Float64: 60, Valid: true},
		StudentCount: 3,
		MinScore:     sql.NullInt64{Int64: 40, Valid: true},
		MaxScore:     sql.NullInt64{Int64: 80, Valid: true},
	}}
	router := newTestRouter(&studentRepoStub{}, &recommendationRepoStub{}, reports)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/reports/class-average?grade=7&subject=Maths", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"average_score":60`)
	assert.Contains(t, rec.Body.String(), `"student_count":3`)
}

func TestClassAverageInvalidSubject(t *testing.T) {
	router := newTestRouter(&studentRepoStub{}, &recommendationRepoStub{}, &reportRepoStub{})

	rec := doJSON(t, router, http.MethodGet, "/api/v1/reports/class-average?grade=7&subject=History", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_SUBJECT")
}

func TestClassAverageNoStudents(t *testing.T) {
	router := newTestRouter(&studentRepoStub{}, &recommendationRepoStub{}, &reportRepoStub{})

	rec := doJSON(t, router, http.MethodGet, "/api/v1/reports/class-average?grade=9&subject=Social", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_STUDENTS_FOUND")
}
