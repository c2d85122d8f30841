package service

import (
	"context"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/models"
	appErrors "github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/errors"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/export"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/jobs"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/storage"
)

type classReportPayload struct {
	Grade   int
	Subject string
	Format  export.Format
}

// ExportService renders class reports to downloadable files in the
// background. Job state lives in memory; a restart forgets unfinished jobs,
// which callers handle by re-enqueueing.
type ExportService struct {
	reports  *ReportService
	store    *storage.LocalStorage
	signer   *storage.SignedURLSigner
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	queue    *jobs.Queue
	basePath string
	logger   *zap.Logger

	mu   sync.RWMutex
	jobs map[string]models.ExportJob
}

// NewExportService constructs an ExportService with its own worker queue.
// basePath prefixes generated download URLs (typically the API prefix).
func NewExportService(reports *ReportService, store *storage.LocalStorage, signer *storage.SignedURLSigner, basePath string, queueCfg jobs.QueueConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ExportService{
		reports:  reports,
		store:    store,
		signer:   signer,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		basePath: strings.TrimSuffix(basePath, "/"),
		logger:   logger,
		jobs:     make(map[string]models.ExportJob),
	}
	queueCfg.Logger = logger
	s.queue = jobs.NewQueue("class-report-export", s.process, queueCfg)
	return s
}

// Start launches the export workers.
func (s *ExportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the export workers.
func (s *ExportService) Stop() {
	s.queue.Stop()
}

// Enqueue registers a pending export job and hands it to the workers.
func (s *ExportService) Enqueue(ctx context.Context, grade int, subject string, format export.Format) (*models.ExportJob, error) {
	if !format.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if !models.ValidSubject(subject) {
		return nil, appErrors.Clone(appErrors.ErrInvalidSubject, fmt.Sprintf("unknown subject %q", subject))
	}
	if grade < 1 || grade > 10 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "grade must be between 1 and 10")
	}

	now := time.Now().UTC()
	job := models.ExportJob{
		ID:        uuid.NewString(),
		Status:    models.ExportStatusPending,
		Format:    string(format),
		Grade:     grade,
		Subject:   subject,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	err := s.queue.Enqueue(jobs.Job{
		ID:      job.ID,
		Type:    "class-report-export",
		Payload: classReportPayload{Grade: grade, Subject: subject, Format: format},
	})
	if err != nil {
		s.fail(job.ID, "export queue unavailable")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export")
	}
	return &job, nil
}

// Get returns a snapshot of the job's current state.
func (s *ExportService) Get(id string) (*models.ExportJob, error) {
	s.mu.RLock()
	job, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("export %s not found", id))
	}
	return &job, nil
}

// Download verifies the signed token and opens the rendered file. The caller
// owns the returned file handle.
func (s *ExportService) Download(id, token string) (*os.File, string, error) {
	exportID, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	if exportID != id {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "token does not match export")
	}
	s.mu.RLock()
	job, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("export %s not found", id))
	}
	if job.Status != models.ExportStatusCompleted {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("export %s is %s", id, job.Status))
	}
	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export file")
	}
	return file, path.Base(relPath), nil
}

func (s *ExportService) process(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(classReportPayload)
	if !ok {
		s.fail(job.ID, "malformed export payload")
		return nil
	}

	stats, err := s.reports.ClassAverage(ctx, payload.Grade, payload.Subject)
	if err != nil {
		if appErrors.FromError(err).Status < 500 {
			s.fail(job.ID, err.Error())
			return nil
		}
		s.fail(job.ID, "report aggregation failed")
		return err
	}

	dataset := export.Dataset{
		Headers: []string{"Grade", "Subject", "Average Score", "Student Count", "Min Score", "Max Score"},
		Rows: [][]string{{
			strconv.Itoa(stats.Grade),
			stats.Subject,
			strconv.FormatFloat(stats.AverageScore, 'f', 2, 64),
			strconv.Itoa(stats.StudentCount),
			strconv.Itoa(stats.MinScore),
			strconv.Itoa(stats.MaxScore),
		}},
	}

	var data []byte
	switch payload.Format {
	case export.FormatCSV:
		data, err = s.csv.Render(dataset)
	case export.FormatPDF:
		title := fmt.Sprintf("Grade %d %s Class Report", payload.Grade, payload.Subject)
		data, err = s.pdf.Render(dataset, title)
	default:
		s.fail(job.ID, fmt.Sprintf("unsupported export format %q", payload.Format))
		return nil
	}
	if err != nil {
		s.fail(job.ID, "render failed")
		return fmt.Errorf("render export %s: %w", job.ID, err)
	}

	filename := fmt.Sprintf("class_%d_%s_%s.%s", payload.Grade, strings.ToLower(payload.Subject), job.ID, payload.Format)
	relPath, err := s.store.Save(filename, data)
	if err != nil {
		s.fail(job.ID, "storage write failed")
		return fmt.Errorf("save export %s: %w", job.ID, err)
	}

	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		s.fail(job.ID, "token generation failed")
		return fmt.Errorf("sign export %s: %w", job.ID, err)
	}

	s.mu.Lock()
	stored := s.jobs[job.ID]
	stored.Status = models.ExportStatusCompleted
	stored.FilePath = relPath
	stored.DownloadURL = fmt.Sprintf("%s/exports/%s/download?token=%s", s.basePath, job.ID, token)
	stored.ExpiresAt = &expiresAt
	stored.Failure = ""
	stored.UpdatedAt = time.Now().UTC()
	s.jobs[job.ID] = stored
	s.mu.Unlock()

	s.logger.Info("class report exported",
		zap.String("export_id", job.ID),
		zap.Int("grade", payload.Grade),
		zap.String("subject", payload.Subject),
		zap.String("format", string(payload.Format)))
	return nil
}

func (s *ExportService) fail(id, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return
	}
	job.Status = models.ExportStatusFailed
	job.Failure = reason
	job.UpdatedAt = time.Now().UTC()
	s.jobs[id] = job
}
