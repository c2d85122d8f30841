package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRepositoryClassStats(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewReportRepository(db)

	expectStudentsTable(mock)
	rows := sqlmock.NewRows([]string{"average_score", "student_count", "min_score", "max_score"}).
		AddRow(60.0, 3, 40, 80)
	mock.ExpectQuery(`SELECT AVG\(maths\) AS average_score, COUNT\(maths\) AS student_count`).
		WithArgs(7).
		WillReturnRows(rows)

	agg, err := repo.ClassStats(context.Background(), 7, "maths")
	require.NoError(t, err)
	assert.Equal(t, 60.0, agg.AverageScore.Float64)
	assert.Equal(t, 3, agg.StudentCount)
	assert.Equal(t, int64(40), agg.MinScore.Int64)
	assert.Equal(t, int64(80), agg.MaxScore.Int64)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryClassStatsNoScores(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewReportRepository(db)

	expectStudentsTable(mock)
	rows := sqlmock.NewRows([]string{"average_score", "student_count", "min_score", "max_score"}).
		AddRow(nil, 0, nil, nil)
	mock.ExpectQuery(`SELECT AVG\(science\) AS average_score, COUNT\(science\) AS student_count`).
		WithArgs(9).
		WillReturnRows(rows)

	agg, err := repo.ClassStats(context.Background(), 9, "science")
	require.NoError(t, err)
	assert.Zero(t, agg.StudentCount)
	assert.False(t, agg.AverageScore.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}
