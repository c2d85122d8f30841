package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ClassAggregate carries the raw aggregate row for one grade + subject.
// Average, min and max are NULL when no student in the grade has a recorded
// score for the subject.
type ClassAggregate struct {
	AverageScore sql.NullFloat64 `db:"average_score"`
	StudentCount int             `db:"student_count"`
	MinScore     sql.NullInt64   `db:"min_score"`
	MaxScore     sql.NullInt64   `db:"max_score"`
}

// ReportRepository exposes aggregate queries over the students table.
type ReportRepository struct {
	db     *sqlx.DB
	schema lazySchema
}

// NewReportRepository constructs a ReportRepository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db, schema: lazySchema{ddl: studentsDDL}}
}

// ClassStats computes avg/count/min/max of one subject column across a grade.
// The column name must come from the models.SubjectColumn allow-list; it is
// the only value ever interpolated into the query text.
func (r *ReportRepository) ClassStats(ctx context.Context, grade int, column string) (*ClassAggregate, error) {
	if err := r.schema.ensure(ctx, r.db); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT AVG(%[1]s) AS average_score, COUNT(%[1]s) AS student_count,
        MIN(%[1]s) AS min_score, MAX(%[1]s) AS max_score
        FROM students WHERE grade = $1 AND %[1]s IS NOT NULL`, column)
	var agg ClassAggregate
	if err := r.db.GetContext(ctx, &agg, query, grade); err != nil {
		return nil, fmt.Errorf("class stats: %w", err)
	}
	return &agg, nil
}
