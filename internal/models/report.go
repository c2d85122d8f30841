package models

import "time"

// ClassStats summarises one subject's scores across a grade.
type ClassStats struct {
	Grade        int     `json:"grade"`
	Subject      string  `json:"subject"`
	AverageScore float64 `json:"average_score"`
	StudentCount int     `json:"student_count"`
	MinScore     int     `json:"min_score"`
	MaxScore     int     `json:"max_score"`
}

// Export job lifecycle states.
const (
	ExportStatusPending   = "pending"
	ExportStatusCompleted = "completed"
	ExportStatusFailed    = "failed"
)

// ExportJob tracks an asynchronous class report export.
type ExportJob struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	Format      string     `json:"format"`
	Grade       int        `json:"grade"`
	Subject     string     `json:"subject"`
	FilePath    string     `json:"-"`
	DownloadURL string     `json:"download_url,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Failure     string     `json:"failure,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
