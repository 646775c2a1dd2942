package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	fuzzysearch "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmarks/auditdeck/internal/domain"
	"github.com/mmarks/auditdeck/internal/store"
	"github.com/sahilm/fuzzy"
)

// companyIndex implements fuzzy.Source over the company list for
// zero-allocation matching.
type companyIndex struct {
	companies  []domain.Company
	lowerNames []string // Pre-computed lowercase names
}

func (idx *companyIndex) String(i int) string { return idx.lowerNames[i] }
func (idx *companyIndex) Len() int            { return len(idx.companies) }

// CompanyService handles the company list, creation, and fuzzy filtering.
// Reads are cache-first: the bbolt store answers immediately and the
// backend refreshes in the background on demand.
type CompanyService struct {
	api    domain.CompanyAPI
	store  *store.Store
	logger *slog.Logger

	mu    sync.RWMutex
	index *companyIndex
}

// NewCompanyService creates a company service
func NewCompanyService(api domain.CompanyAPI, st *store.Store, logger *slog.Logger) *CompanyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompanyService{
		api:    api,
		store:  st,
		logger: logger,
		index:  &companyIndex{},
	}
}

// List returns the company list. With refresh false a cached list is
// returned when present; otherwise the backend is queried and the cache
// updated.
func (s *CompanyService) List(ctx context.Context, refresh bool) ([]domain.Company, error) {
	if !refresh {
		if companies, ok := s.store.GetCompanies(); ok {
			s.rebuildIndex(companies)
			return companies, nil
		}
	}

	companies, err := s.api.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveCompanies(companies); err != nil {
		s.logger.Warn("failed to cache company list", "error", err)
	}
	s.rebuildIndex(companies)

	return companies, nil
}

// Get fetches a single company from the backend.
func (s *CompanyService) Get(ctx context.Context, companyID string) (*domain.Company, error) {
	return s.api.GetCompany(ctx, companyID)
}

// Create registers a company with its filing documents and returns the
// new company ID. The cached list is invalidated so the next List sees
// the new entry.
func (s *CompanyService) Create(ctx context.Context, fields map[string]string, files []domain.Upload) (string, error) {
	companyID, err := s.api.CreateCompany(ctx, fields, files)
	if err != nil {
		return "", err
	}

	s.store.InvalidateCompanies()
	s.logger.Info("company created", "companyID", companyID)

	return companyID, nil
}

// Filter ranks companies against a query by fuzzy match on name. An
// empty query returns the full list in original order.
func (s *CompanyService) Filter(query string) []domain.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if query == "" {
		return s.index.companies
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), s.index)
	results := make([]domain.Company, len(matches))
	for i, m := range matches {
		results[i] = s.index.companies[m.Index]
	}
	return results
}

// Resolve turns a company reference from the command line into a
// company record: an exact ID match first, then the closest fuzzy name
// match.
func (s *CompanyService) Resolve(ctx context.Context, ref string) (*domain.Company, error) {
	companies, err := s.List(ctx, false)
	if err != nil {
		return nil, err
	}

	for i := range companies {
		if companies[i].ID == ref {
			return &companies[i], nil
		}
	}

	names := make([]string, len(companies))
	for i, c := range companies {
		names[i] = c.Name
	}

	ranks := fuzzysearch.RankFindNormalizedFold(ref, names)
	if len(ranks) == 0 {
		return nil, domain.ErrNotFound
	}

	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return &companies[best.OriginalIndex], nil
}

// rebuildIndex replaces the filter index after a list change.
func (s *CompanyService) rebuildIndex(companies []domain.Company) {
	lower := make([]string, len(companies))
	for i, c := range companies {
		lower[i] = strings.ToLower(c.Name)
	}

	s.mu.Lock()
	s.index = &companyIndex{companies: companies, lowerNames: lower}
	s.mu.Unlock()
}
