package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/models"
)

func expectTeachersTable(mock sqlmock.Sqlmock) {
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS teachers").
		WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestTeacherRepositoryFind(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	expectTeachersTable(mock)
	rows := sqlmock.NewRows([]string{"staff_id", "name", "grades", "subject", "updated_at"}).
		AddRow(int64(9001), "Meera", []byte("[6,7]"), models.SubjectMaths, time.Now())
	mock.ExpectQuery("SELECT staff_id, name, grades, subject").
		WithArgs(int64(9001)).
		WillReturnRows(rows)

	teacher, err := repo.Find(context.Background(), 9001)
	require.NoError(t, err)
	assert.Equal(t, "Meera", teacher.Name)
	assert.Equal(t, models.GradeList{6, 7}, teacher.Grades)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryFindAbsent(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	expectTeachersTable(mock)
	mock.ExpectQuery("SELECT staff_id, name, grades, subject").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), 404)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	expectTeachersTable(mock)
	mock.ExpectExec("INSERT INTO teachers").
		WillReturnResult(sqlmock.NewResult(0, 1))

	teacher := &models.Teacher{StaffID: 9001, Name: "Meera", Grades: models.GradeList{6, 7}, Subject: models.SubjectMaths}
	err := repo.Insert(context.Background(), teacher)
	require.NoError(t, err)
	assert.False(t, teacher.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	expectTeachersTable(mock)
	mock.ExpectExec("UPDATE teachers SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	teacher := &models.Teacher{StaffID: 9001, Name: "Meera", Grades: models.GradeList{8}, Subject: models.SubjectScience}
	err := repo.Update(context.Background(), teacher)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
