package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/models"
)

const teachersDDL = `CREATE TABLE IF NOT EXISTS teachers (
	staff_id BIGINT NOT NULL,
	name TEXT NOT NULL,
	grades JSONB NOT NULL,
	subject TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// TeacherRepository manages persistence for teacher profiles.
type TeacherRepository struct {
	db     *sqlx.DB
	schema lazySchema
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db, schema: lazySchema{ddl: teachersDDL}}
}

// Exists reports whether a teacher with the given staff ID is present.
func (r *TeacherRepository) Exists(ctx context.Context, staffID int64) (bool, error) {
	if err := r.schema.ensure(ctx, r.db); err != nil {
		return false, err
	}
	const query = `SELECT 1 FROM teachers WHERE staff_id = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, staffID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check teacher: %w", err)
	}
	return true, nil
}

// Find fetches a teacher by staff ID. Returns sql.ErrNoRows when absent.
func (r *TeacherRepository) Find(ctx context.Context, staffID int64) (*models.Teacher, error) {
	if err := r.schema.ensure(ctx, r.db); err != nil {
		return nil, err
	}
	const query = `SELECT staff_id, name, grades, subject, updated_at FROM teachers WHERE staff_id = $1 LIMIT 1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, staffID); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Insert adds a new teacher profile.
func (r *TeacherRepository) Insert(ctx context.Context, teacher *models.Teacher) error {
	if err := r.schema.ensure(ctx, r.db); err != nil {
		return err
	}
	if teacher.UpdatedAt.IsZero() {
		teacher.UpdatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO teachers (staff_id, name, grades, subject, updated_at)
        VALUES (:staff_id, :name, :grades, :subject, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("insert teacher: %w", err)
	}
	return nil
}

// Update writes the merged profile back, refreshing the modification timestamp.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	if err := r.schema.ensure(ctx, r.db); err != nil {
		return err
	}
	teacher.UpdatedAt = time.Now().UTC()
	const query = `UPDATE teachers SET name = :name, grades = :grades, subject = :subject, updated_at = :updated_at
        WHERE staff_id = :staff_id`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	return nil
}
