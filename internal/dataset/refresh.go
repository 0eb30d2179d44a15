package dataset

import (
	"context"
	"sync"

	"github.com/wonny/ledger/internal/contracts"
	"github.com/wonny/ledger/internal/metrics"
	"github.com/wonny/ledger/pkg/logger"
)

// invalidator is implemented by sources that keep a cached copy
type invalidator interface {
	Invalidate(ctx context.Context) error
}

// Refresher reloads the store from its source and notifies listeners
// ⭐ SSOT: 데이터셋 갱신 경로는 여기서만 (API, 스케줄러 공용)
type Refresher struct {
	store  *Store
	source contracts.CompanySource
	logger *logger.Logger

	mu        sync.Mutex
	listeners []func()
}

// NewRefresher creates a refresher for store
func NewRefresher(store *Store, source contracts.CompanySource, log *logger.Logger) *Refresher {
	return &Refresher{
		store:  store,
		source: source,
		logger: log,
	}
}

// OnReload registers fn to run after every successful reload
func (r *Refresher) OnReload(fn func()) {
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}

// Source returns the configured source
func (r *Refresher) Source() contracts.CompanySource {
	return r.source
}

// Refresh reloads the document. With force, a cached copy is dropped first.
func (r *Refresher) Refresh(ctx context.Context, force bool) (int, error) {
	if force {
		if inv, ok := r.source.(invalidator); ok {
			if err := inv.Invalidate(ctx); err != nil {
				r.logger.WithError(err).Warn("Document cache invalidation failed")
			}
		}
	}

	n, err := r.store.Reload(ctx, r.source)
	metrics.ObserveReload(n, err)
	if err != nil {
		r.logger.WithError(err).WithField("source", r.source.Describe()).Error("Dataset reload failed")
		return 0, err
	}

	r.mu.Lock()
	listeners := append([]func(){}, r.listeners...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	return n, nil
}
