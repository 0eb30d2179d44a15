package dataset

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wonny/ledger/internal/contracts"
	"github.com/wonny/ledger/pkg/logger"
)

// Store holds the loaded company list in memory
// ⭐ SSOT: 회사 목록 캐싱은 이 구조체에서만
//
// Readers get copies of the slice; a Replace never shows through a view
// that is already being computed.
type Store struct {
	mu        sync.RWMutex
	companies []contracts.Company
	index     map[string]int
	loadedAt  time.Time
	source    string
	logger    *logger.Logger
}

// NewStore creates an empty store
func NewStore(log *logger.Logger) *Store {
	return &Store{
		companies: []contracts.Company{},
		index:     make(map[string]int),
		logger:    log,
	}
}

// Replace swaps the whole list
func (s *Store) Replace(companies []contracts.Company, source string) error {
	if err := Validate(companies); err != nil {
		return err
	}

	index := make(map[string]int, len(companies))
	for i, c := range companies {
		index[c.Ticker] = i
	}
	list := append([]contracts.Company(nil), companies...)

	s.mu.Lock()
	s.companies = list
	s.index = index
	s.loadedAt = time.Now()
	s.source = source
	s.mu.Unlock()

	s.logger.WithFields(map[string]interface{}{
		"companies": len(list),
		"source":    source,
	}).Info("Company store replaced")

	return nil
}

// Reload loads src and replaces the list. On failure the old list stays.
func (s *Store) Reload(ctx context.Context, src contracts.CompanySource) (int, error) {
	companies, err := src.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", src.Describe(), err)
	}
	if err := s.Replace(companies, src.Describe()); err != nil {
		return 0, err
	}
	return len(companies), nil
}

// All returns a copy of the list in document order
func (s *Store) All() []contracts.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]contracts.Company(nil), s.companies...)
}

// Get returns the company with ticker
func (s *Store) Get(ticker string) (contracts.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[ticker]
	if !ok {
		return contracts.Company{}, fmt.Errorf("%w: %s", ErrNotFound, ticker)
	}
	return s.companies[i], nil
}

// First returns the default selection (first company of the document)
func (s *Store) First() (contracts.Company, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.companies) == 0 {
		return contracts.Company{}, false
	}
	return s.companies[0], true
}

// Len returns the number of companies
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.companies)
}

// Status describes the last successful load
type Status struct {
	Companies int       `json:"companies"`
	Source    string    `json:"source"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// Status returns the store status
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		Companies: len(s.companies),
		Source:    s.source,
		LoadedAt:  s.loadedAt,
	}
}
