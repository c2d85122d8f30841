package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/models"
)

const recommendationsDDL = `CREATE TABLE IF NOT EXISTS student_recommendations (
	roll_no BIGINT NOT NULL,
	student_name TEXT NOT NULL,
	channel_name TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	link TEXT NOT NULL,
	language TEXT NOT NULL,
	subject TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

// RecommendationRepository manages the per-student recommendation sets.
type RecommendationRepository struct {
	db     *sqlx.DB
	schema lazySchema
}

// NewRecommendationRepository constructs a RecommendationRepository.
func NewRecommendationRepository(db *sqlx.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db, schema: lazySchema{ddl: recommendationsDDL}}
}

// Replace swaps the whole recommendation set for a roll number. Delete and
// bulk insert run in one transaction so readers never observe a partial set.
func (r *RecommendationRepository) Replace(ctx context.Context, rollNo int64, recs []models.Recommendation) error {
	if err := r.schema.ensure(ctx, r.db); err != nil {
		return err
	}
	now := time.Now().UTC()
	for i := range recs {
		recs[i].RollNo = rollNo
		if recs[i].CreatedAt.IsZero() {
			recs[i].CreatedAt = now
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace recommendations: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM student_recommendations WHERE roll_no = $1`, rollNo); err != nil {
		return fmt.Errorf("clear recommendations: %w", err)
	}
	if len(recs) > 0 {
		const query = `INSERT INTO student_recommendations (roll_no, student_name, channel_name, title, description, link, language, subject, created_at)
            VALUES (:roll_no, :student_name, :channel_name, :title, :description, :link, :language, :subject, :created_at)`
		if _, err := tx.NamedExecContext(ctx, query, recs); err != nil {
			return fmt.Errorf("insert recommendations: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace recommendations: %w", err)
	}
	return nil
}

// ListByRollNo returns all recommendations for a student grouped by subject,
// newest first within each subject.
func (r *RecommendationRepository) ListByRollNo(ctx context.Context, rollNo int64) ([]models.Recommendation, error) {
	if err := r.schema.ensure(ctx, r.db); err != nil {
		return nil, err
	}
	const query = `SELECT roll_no, student_name, channel_name, title, description, link, language, subject, created_at
        FROM student_recommendations WHERE roll_no = $1 ORDER BY subject ASC, created_at DESC`
	var recs []models.Recommendation
	if err := r.db.SelectContext(ctx, &recs, query, rollNo); err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	return recs, nil
}

// ListBySubject returns a student's recommendations for one subject.
func (r *RecommendationRepository) ListBySubject(ctx context.Context, rollNo int64, subject string) ([]models.Recommendation, error) {
	if err := r.schema.ensure(ctx, r.db); err != nil {
		return nil, err
	}
	const query = `SELECT roll_no, student_name, channel_name, title, description, link, language, subject, created_at
        FROM student_recommendations WHERE roll_no = $1 AND subject = $2 ORDER BY created_at DESC`
	var recs []models.Recommendation
	if err := r.db.SelectContext(ctx, &recs, query, rollNo, subject); err != nil {
		return nil, fmt.Errorf("list recommendations by subject: %w", err)
	}
	return recs, nil
}

// DeleteByRollNo removes every recommendation row for the student. Deleting a
// roll number with no rows succeeds with zero rows affected.
func (r *RecommendationRepository) DeleteByRollNo(ctx context.Context, rollNo int64) (int64, error) {
	if err := r.schema.ensure(ctx, r.db); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM student_recommendations WHERE roll_no = $1`, rollNo)
	if err != nil {
		return 0, fmt.Errorf("delete recommendations: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return affected, nil
}
