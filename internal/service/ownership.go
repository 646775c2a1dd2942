package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmarks/auditdeck/internal/domain"
	"github.com/mmarks/auditdeck/internal/store"
)

// OwnershipService handles ownership discovery. The backend exposes a
// single idempotent endpoint: the first call triggers discovery and
// later calls report the current (possibly partial) graph, so watching
// is just re-fetching. Stop and resume act locally by cancelling and
// restarting the watch; the discovery itself keeps its server-side
// state.
type OwnershipService struct {
	api    domain.OwnershipAPI
	store  *store.Store
	logger *slog.Logger
}

// NewOwnershipService creates an ownership service
func NewOwnershipService(a domain.OwnershipAPI, st *store.Store, logger *slog.Logger) *OwnershipService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OwnershipService{api: a, store: st, logger: logger}
}

// Discover fetches the current discovery result and caches it.
func (s *OwnershipService) Discover(ctx context.Context, companyID string) (*domain.Ownership, error) {
	ownership, err := s.api.DiscoverOwnership(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveOwnership(ownership); err != nil {
		s.logger.Warn("failed to cache ownership result", "companyID", companyID, "error", err)
	}
	return ownership, nil
}

// Cached returns the last cached discovery result for a company.
func (s *OwnershipService) Cached(companyID string) (*domain.Ownership, bool) {
	return s.store.GetOwnership(companyID)
}

// Watch polls discovery on the given interval, invoking fn for every
// result, until discovery reaches a terminal status, the context is
// cancelled, or a fetch fails.
func (s *OwnershipService) Watch(ctx context.Context, companyID string, interval time.Duration, fn func(domain.Ownership)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ownership, err := s.Discover(ctx, companyID)
		if err != nil {
			return err
		}

		fn(*ownership)

		if ownership.Status.IsTerminal() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
