package models

import "time"

// TestResult is one append-only record of a student's test performance.
// TotalScore is the rounded average of quiz and evaluated scores.
type TestResult struct {
	RollNo         int64     `db:"roll_no" json:"roll_no"`
	Subject        string    `db:"subject" json:"subject"`
	QuizScore      int       `db:"quiz_score" json:"quiz_score"`
	EvaluatedScore int       `db:"evaluated_score" json:"evaluated_score"`
	TotalScore     int       `db:"total_score" json:"total_score"`
	TakenAt        time.Time `db:"taken_at" json:"taken_at"`

	// Tier is derived from TotalScore when a result is recorded; it is not
	// persisted.
	Tier string `db:"-" json:"tier,omitempty"`
}
