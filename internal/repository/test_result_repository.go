package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/models"
)

const testResultsDDL = `CREATE TABLE IF NOT EXISTS student_test_results (
	roll_no BIGINT NOT NULL,
	subject TEXT NOT NULL,
	quiz_score INT NOT NULL,
	evaluated_score INT NOT NULL,
	total_score INT NOT NULL,
	taken_at TIMESTAMPTZ NOT NULL
)`

// TestResultRepository manages the append-only test result log.
type TestResultRepository struct {
	db     *sqlx.DB
	schema lazySchema
}

// NewTestResultRepository constructs a TestResultRepository.
func NewTestResultRepository(db *sqlx.DB) *TestResultRepository {
	return &TestResultRepository{db: db, schema: lazySchema{ddl: testResultsDDL}}
}

// Insert appends one test result. Results are never updated or deleted.
func (r *TestResultRepository) Insert(ctx context.Context, result *models.TestResult) error {
	if err := r.schema.ensure(ctx, r.db); err != nil {
		return err
	}
	if result.TakenAt.IsZero() {
		result.TakenAt = time.Now().UTC()
	}
	const query = `INSERT INTO student_test_results (roll_no, subject, quiz_score, evaluated_score, total_score, taken_at)
        VALUES (:roll_no, :subject, :quiz_score, :evaluated_score, :total_score, :taken_at)`
	if _, err := r.db.NamedExecContext(ctx, query, result); err != nil {
		return fmt.Errorf("insert test result: %w", err)
	}
	return nil
}

// ListByRollNo returns a student's full test history, newest first.
func (r *TestResultRepository) ListByRollNo(ctx context.Context, rollNo int64) ([]models.TestResult, error) {
	if err := r.schema.ensure(ctx, r.db); err != nil {
		return nil, err
	}
	const query = `SELECT roll_no, subject, quiz_score, evaluated_score, total_score, taken_at
        FROM student_test_results WHERE roll_no = $1 ORDER BY taken_at DESC`
	var results []models.TestResult
	if err := r.db.SelectContext(ctx, &results, query, rollNo); err != nil {
		return nil, fmt.Errorf("list test results: %w", err)
	}
	return results, nil
}

// ListBySubject returns a student's test history for one subject, newest first.
func (r *TestResultRepository) ListBySubject(ctx context.Context, rollNo int64, subject string) ([]models.TestResult, error) {
	if err := r.schema.ensure(ctx, r.db); err != nil {
		return nil, err
	}
	const query = `SELECT roll_no, subject, quiz_score, evaluated_score, total_score, taken_at
        FROM student_test_results WHERE roll_no = $1 AND subject = $2 ORDER BY taken_at DESC`
	var results []models.TestResult
	if err := r.db.SelectContext(ctx, &results, query, rollNo, subject); err != nil {
		return nil, fmt.Errorf("list test results by subject: %w", err)
	}
	return results, nil
}
