package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/mmarks/auditdeck/internal/api"
	"github.com/mmarks/auditdeck/internal/domain"
	"github.com/mmarks/auditdeck/internal/store"
)

// AuditService handles audit runs: starting them, polling their
// progress, and exporting finished reports. The HTTP client underneath
// never retries; transient failures are absorbed here so one flaky poll
// doesn't kill a watch.
type AuditService struct {
	api    domain.AuditAPI
	store  *store.Store
	logger *slog.Logger
}

// NewAuditService creates an audit service
func NewAuditService(a domain.AuditAPI, st *store.Store, logger *slog.Logger) *AuditService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditService{api: a, store: st, logger: logger}
}

// Start kicks off an audit for a company and returns the audit ID.
func (s *AuditService) Start(ctx context.Context, companyID string) (string, error) {
	auditID, err := s.api.StartAudit(ctx, companyID)
	if err != nil {
		return "", err
	}

	s.logger.Info("audit started", "companyID", companyID, "auditID", auditID)
	return auditID, nil
}

// Get fetches an audit record and caches the snapshot.
func (s *AuditService) Get(ctx context.Context, auditID string) (*domain.Audit, error) {
	audit, err := s.api.GetAudit(ctx, auditID)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveAudit(audit); err != nil {
		s.logger.Warn("failed to cache audit", "auditID", auditID, "error", err)
	}
	return audit, nil
}

// LatestAuditID returns the cached most-recent audit for a company.
func (s *AuditService) LatestAuditID(companyID string) (string, bool) {
	return s.store.GetLatestAuditID(companyID)
}

// Progress fetches one progress snapshot, retrying transient server
// failures with exponential backoff. Client errors (4xx) are permanent.
func (s *AuditService) Progress(ctx context.Context, auditID string) (*domain.Progress, error) {
	var progress *domain.Progress

	op := func() error {
		p, err := s.api.GetAuditProgress(ctx, auditID)
		if err != nil {
			var apiErr *api.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}
		progress = p
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxElapsedTime = 10 * time.Second

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return progress, nil
}

// Watch polls an audit's progress on the given interval, invoking fn for
// every snapshot, until the audit reaches a terminal status, the context
// is cancelled, or a poll fails permanently.
func (s *AuditService) Watch(ctx context.Context, auditID string, interval time.Duration, fn func(domain.Progress)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		progress, err := s.Progress(ctx, auditID)
		if err != nil {
			return err
		}

		fn(*progress)

		if progress.Status.IsTerminal() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// ExportFormat names a report download format.
type ExportFormat string

const (
	ExportPDF ExportFormat = "pdf"
	ExportCSV ExportFormat = "csv"
)

// Export downloads a finished audit's report and writes it to path.
func (s *AuditService) Export(ctx context.Context, auditID string, format ExportFormat, path string) error {
	var data []byte
	var err error

	switch format {
	case ExportPDF:
		data, err = s.api.ExportPDF(ctx, auditID)
	case ExportCSV:
		data, err = s.api.ExportCSV(ctx, auditID)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	s.logger.Info("report exported", "auditID", auditID, "format", format, "path", path, "bytes", len(data))
	return nil
}
