package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmarks/auditdeck/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketCompanies = []byte("companies")
	bucketAudits    = []byte("audits")
	bucketOwnership = []byte("ownership")
)

// Store caches backend snapshots in BoltDB so the TUI has something to
// show between polls and across restarts. Entries are promoted into an
// in-memory map on access.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	cache map[string][]byte
}

// New opens the snapshot store under baseCacheDir, partitioned per
// server so pointing at a different backend never mixes data. An empty
// baseCacheDir gives a memory-only store with no persistence.
func New(baseCacheDir, serverURL string) (*Store, error) {
	if baseCacheDir == "" {
		return &Store{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if serverURL != "" {
		dir = filepath.Join(baseCacheDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "auditdeck.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketCompanies, bucketAudits, bucketOwnership} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *Store) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *Store) delete(bucket []byte, key string) {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

func (s *Store) deletePrefix(bucket []byte, prefix string) {
	s.mu.Lock()
	cachePrefix := string(bucket) + ":" + prefix
	for k := range s.cache {
		if strings.HasPrefix(k, cachePrefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		prefixBytes := []byte(prefix)
		for k, _ := c.Seek(prefixBytes); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Companies ===

func (s *Store) GetCompanies() ([]domain.Company, bool) {
	var companies []domain.Company
	ok := s.get(bucketCompanies, "list", &companies)
	return companies, ok
}

func (s *Store) SaveCompanies(companies []domain.Company) error {
	return s.set(bucketCompanies, "list", companies)
}

// === Audits (keyed by audit ID, with a latest-pointer per company) ===

func (s *Store) GetAudit(auditID string) (*domain.Audit, bool) {
	var audit domain.Audit
	if !s.get(bucketAudits, "audit:"+auditID, &audit) {
		return nil, false
	}
	return &audit, true
}

func (s *Store) SaveAudit(audit *domain.Audit) error {
	if err := s.set(bucketAudits, "audit:"+audit.ID, audit); err != nil {
		return err
	}
	// Latest-pointer so the UI can restore a company's audit on startup
	return s.set(bucketAudits, "company:"+audit.CompanyID+":latest", audit.ID)
}

func (s *Store) GetLatestAuditID(companyID string) (string, bool) {
	var auditID string
	ok := s.get(bucketAudits, "company:"+companyID+":latest", &auditID)
	return auditID, ok
}

// === Ownership (keyed by company ID) ===

func (s *Store) GetOwnership(companyID string) (*domain.Ownership, bool) {
	var ownership domain.Ownership
	if !s.get(bucketOwnership, "company:"+companyID, &ownership) {
		return nil, false
	}
	return &ownership, true
}

func (s *Store) SaveOwnership(ownership *domain.Ownership) error {
	return s.set(bucketOwnership, "company:"+ownership.CompanyID, ownership)
}

// === Invalidation ===

// InvalidateCompany wipes a company's cached audits and ownership result
func (s *Store) InvalidateCompany(companyID string) {
	s.deletePrefix(bucketAudits, "company:"+companyID+":")
	s.delete(bucketOwnership, "company:"+companyID)
}

// InvalidateCompanies drops the cached company list
func (s *Store) InvalidateCompanies() {
	s.delete(bucketCompanies, "list")
}

func (s *Store) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketCompanies, bucketAudits, bucketOwnership} {
			b := tx.Bucket(bucket)
			if b == nil {
				continue
			}
			c := b.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
