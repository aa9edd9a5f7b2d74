package service

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tims-dev/tims-admin-bff/pkg/config"
	appErrors "github.com/tims-dev/tims-admin-bff/pkg/errors"
	"github.com/tims-dev/tims-admin-bff/pkg/export"
	"github.com/tims-dev/tims-admin-bff/pkg/jobs"
	"github.com/tims-dev/tims-admin-bff/pkg/storage"
)

// ExportFormat selects the rendered file type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportStatus tracks an export job's lifecycle.
type ExportStatus string

const (
	ExportStatusQueued  ExportStatus = "QUEUED"
	ExportStatusRunning ExportStatus = "RUNNING"
	ExportStatusDone    ExportStatus = "DONE"
	ExportStatusFailed  ExportStatus = "FAILED"
)

// ExportJob is the tracked state of one list export.
type ExportJob struct {
	ID        string       `json:"id"`
	Resource  string       `json:"resource"`
	Format    ExportFormat `json:"format"`
	Status    ExportStatus `json:"status"`
	Filename  string       `json:"filename,omitempty"`
	Error     string       `json:"error,omitempty"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt time.Time    `json:"expires_at,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// DatasetSource produces the tabular content for one exportable list screen.
type DatasetSource func(ctx context.Context) (export.Dataset, string, error)

// ExportService renders filtered list screens into CSV or PDF files through
// a background worker queue and hands out signed download URLs.
type ExportService struct {
	queue  *jobs.Queue
	store  *storage.LocalStorage
	signer *storage.SignedURLSigner
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger

	// artifacts older than this are swept from storage; matches the signed
	// URL lifetime so a valid token never points at a deleted file
	retention time.Duration

	mu      sync.Mutex
	tracked map[string]*ExportJob
	sources map[string]DatasetSource
}

// NewExportService wires the export pipeline. Start must be called before
// enqueueing.
func NewExportService(store *storage.LocalStorage, signer *storage.SignedURLSigner, logger *zap.Logger, cfg config.ExportsConfig) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	retention := cfg.SignedURLTTL
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	s := &ExportService{
		store:     store,
		signer:    signer,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
		retention: retention,
		tracked:   make(map[string]*ExportJob),
		sources:   make(map[string]DatasetSource),
	}
	s.queue = jobs.NewQueue("exports", s.process, jobs.QueueConfig{
		Workers:    cfg.WorkerConcurrency,
		MaxRetries: cfg.WorkerRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the export workers and the artifact sweeper.
func (s *ExportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
	go s.sweep(ctx)
}

// sweep periodically removes artifacts whose download window has closed.
func (s *ExportService) sweep(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.store.CleanupOlderThan(s.retention)
			if err != nil {
				s.logger.Warn("export cleanup failed", zap.Error(err))
				continue
			}
			if len(deleted) > 0 {
				s.logger.Info("expired exports removed", zap.Int("count", len(deleted)))
			}
		}
	}
}

// Stop drains the export workers.
func (s *ExportService) Stop() {
	s.queue.Stop()
}

// RegisterSource binds an exportable resource name to its dataset builder.
func (s *ExportService) RegisterSource(resource string, source DatasetSource) {
	s.mu.Lock()
	s.sources[resource] = source
	s.mu.Unlock()
}

// Enqueue schedules an export and returns the tracked job.
func (s *ExportService) Enqueue(resource string, format ExportFormat) (*ExportJob, error) {
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	s.mu.Lock()
	_, known := s.sources[resource]
	s.mu.Unlock()
	if !known {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no export defined for %q", resource))
	}

	job := &ExportJob{
		ID:        uuid.NewString(),
		Resource:  resource,
		Format:    format,
		Status:    ExportStatusQueued,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.tracked[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: resource}); err != nil {
		s.setFailure(job.ID, "failed to enqueue export")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export")
	}
	return snapshot(job), nil
}

// Status returns the tracked job, including a signed download token once the
// render finished.
func (s *ExportService) Status(id string) (*ExportJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.tracked[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	return snapshot(job), nil
}

// Open resolves a signed token to the rendered file.
func (s *ExportService) Open(token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid download token")
	}
	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export file not found")
	}
	return file, relPath, nil
}

func (s *ExportService) process(ctx context.Context, queued jobs.Job) error {
	s.mu.Lock()
	job, ok := s.tracked[queued.ID]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	source := s.sources[job.Resource]
	job.Status = ExportStatusRunning
	resource, format, jobID := job.Resource, job.Format, job.ID
	s.mu.Unlock()

	dataset, title, err := source(ctx)
	if err != nil {
		s.setFailure(jobID, err.Error())
		return fmt.Errorf("build %s dataset: %w", resource, err)
	}

	var rendered []byte
	switch format {
	case ExportFormatPDF:
		rendered, err = s.pdf.Render(dataset, title)
	default:
		rendered, err = s.csv.Render(dataset)
	}
	if err != nil {
		s.setFailure(jobID, err.Error())
		return fmt.Errorf("render %s export: %w", resource, err)
	}

	filename := fmt.Sprintf("%s-%s.%s", resource, jobID, format)
	if _, err := s.store.Save(filename, rendered); err != nil {
		s.setFailure(jobID, err.Error())
		return fmt.Errorf("store %s export: %w", resource, err)
	}

	token, expiresAt, err := s.signer.Generate(jobID, filename)
	if err != nil {
		s.setFailure(jobID, err.Error())
		return fmt.Errorf("sign %s export: %w", resource, err)
	}

	s.mu.Lock()
	job.Status = ExportStatusDone
	job.Filename = filename
	job.Token = token
	job.ExpiresAt = expiresAt
	s.mu.Unlock()

	s.logger.Info("export rendered",
		zap.String("job_id", jobID),
		zap.String("resource", resource),
		zap.String("format", string(format)),
	)
	return nil
}

func (s *ExportService) setFailure(id, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.tracked[id]; ok {
		job.Status = ExportStatusFailed
		job.Error = message
	}
}

func snapshot(job *ExportJob) *ExportJob {
	copied := *job
	return &copied
}
