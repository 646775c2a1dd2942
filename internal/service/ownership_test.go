package service

import (
	"context"
	"testing"
	"time"

	"github.com/mmarks/auditdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOwnershipAPI scripts discovery responses per call.
type fakeOwnershipAPI struct {
	calls int
	fn    func(call int) (*domain.Ownership, error)
}

func (f *fakeOwnershipAPI) DiscoverOwnership(ctx context.Context, companyID string) (*domain.Ownership, error) {
	f.calls++
	return f.fn(f.calls)
}

func TestDiscoverCachesResult(t *testing.T) {
	fake := &fakeOwnershipAPI{
		fn: func(call int) (*domain.Ownership, error) {
			return &domain.Ownership{
				CompanyID: "c-1",
				Status:    domain.StatusCompleted,
				Percent:   100,
				Entities:  []domain.Entity{{ID: "e-1", Name: "Holdings BV"}},
			}, nil
		},
	}
	svc := NewOwnershipService(fake, memStore(t), nil)

	_, err := svc.Discover(context.Background(), "c-1")
	require.NoError(t, err)

	cached, ok := svc.Cached("c-1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusCompleted, cached.Status)
	assert.Len(t, cached.Entities, 1)
}

func TestOwnershipWatchStopsAtTerminal(t *testing.T) {
	fake := &fakeOwnershipAPI{
		fn: func(call int) (*domain.Ownership, error) {
			status := domain.StatusRunning
			if call >= 2 {
				status = domain.StatusQuotaExceeded
			}
			// Quota exhaustion is not terminal; completion is
			if call >= 3 {
				status = domain.StatusCompleted
			}
			return &domain.Ownership{CompanyID: "c-1", Status: status, Percent: float64(call * 30)}, nil
		},
	}
	svc := NewOwnershipService(fake, memStore(t), nil)

	var statuses []domain.Status
	err := svc.Watch(context.Background(), "c-1", 5*time.Millisecond, func(o domain.Ownership) {
		statuses = append(statuses, o.Status)
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.Status{
		domain.StatusRunning,
		domain.StatusQuotaExceeded,
		domain.StatusCompleted,
	}, statuses)
}
