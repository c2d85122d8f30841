package models

import "time"

// Recommendation is one stored YouTube tutorial suggestion for a student.
// The full set per roll number is replaced whole; there is no partial update.
type Recommendation struct {
	RollNo      int64     `db:"roll_no" json:"roll_no"`
	StudentName string    `db:"student_name" json:"student_name"`
	ChannelName string    `db:"channel_name" json:"channel_name"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Link        string    `db:"link" json:"link"`
	Language    string    `db:"language" json:"language"`
	Subject     string    `db:"subject" json:"subject"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
