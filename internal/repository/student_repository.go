package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/models"
)

const studentsDDL = `CREATE TABLE IF NOT EXISTS students (
	roll_no BIGINT NOT NULL,
	name TEXT NOT NULL,
	grade INT NOT NULL,
	language TEXT NOT NULL,
	language1 INT,
	language2 INT,
	language3 INT,
	maths INT,
	science INT,
	social INT,
	updated_at TIMESTAMPTZ NOT NULL
)`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db     *sqlx.DB
	schema lazySchema
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db, schema: lazySchema{ddl: studentsDDL}}
}

// Exists reports whether a student with the given roll number is present.
func (r *StudentRepository) Exists(ctx context.Context, rollNo int64) (bool, error) {
	if err := r.schema.ensure(ctx, r.db); err != nil {
		return false, err
	}
	const query = `SELECT 1 FROM students WHERE roll_no = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, rollNo); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check student: %w", err)
	}
	return true, nil
}

// Find fetches a student by roll number. Returns sql.ErrNoRows when absent.
func (r *StudentRepository) Find(ctx context.Context, rollNo int64) (*models.Student, error) {
	if err := r.schema.ensure(ctx, r.db); err != nil {
		return nil, err
	}
	const query = `SELECT roll_no, name, grade, language, language1, language2, language3, maths, science, social, updated_at
        FROM students WHERE roll_no = $1 LIMIT 1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, rollNo); err != nil {
		return nil, err
	}
	return &student, nil
}

// Insert adds a new student record. Key uniqueness is the caller's
// responsibility; this layer performs no duplicate check.
func (r *StudentRepository) Insert(ctx context.Context, student *models.Student) error {
	if err := r.schema.ensure(ctx, r.db); err != nil {
		return err
	}
	if student.UpdatedAt.IsZero() {
		student.UpdatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO students (roll_no, name, grade, language, language1, language2, language3, maths, science, social, updated_at)
        VALUES (:roll_no, :name, :grade, :language, :language1, :language2, :language3, :maths, :science, :social, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

// Update writes the full merged record back, refreshing the modification
// timestamp. The caller merges supplied fields over the existing row.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	if err := r.schema.ensure(ctx, r.db); err != nil {
		return err
	}
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET name = :name, grade = :grade, language = :language,
        language1 = :language1, language2 = :language2, language3 = :language3,
        maths = :maths, science = :science, social = :social, updated_at = :updated_at
        WHERE roll_no = :roll_no`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}
