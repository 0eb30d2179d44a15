package commands

import (
	"context"
	"fmt"

	"github.com/wonny/ledger/internal/dataset"
	"github.com/wonny/ledger/pkg/config"
	"github.com/wonny/ledger/pkg/httputil"
	"github.com/wonny/ledger/pkg/logger"
	"github.com/wonny/ledger/pkg/redis"
)

// runtime holds the components shared by every command
type runtime struct {
	store     *dataset.Store
	refresher *dataset.Refresher
	redis     *redis.Client
}

func (r *runtime) Close() {
	if r.redis != nil {
		r.redis.Close()
	}
}

// bootstrap wires cache, HTTP client and document source, then loads the document
// ⭐ SSOT: 데이터셋 초기화 순서는 여기서만
func bootstrap(ctx context.Context, cfg *config.Config, log *logger.Logger) (*runtime, error) {
	rdb, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	var cache *redis.Cache
	if rdb.Enabled() {
		cache = redis.NewCache(rdb, "ledger")
		log.Info("Connected to Redis")
	}

	httpClient := httputil.New(cfg, log)
	src := dataset.NewSource(cfg, httpClient, cache, log)

	store := dataset.NewStore(log)
	refresher := dataset.NewRefresher(store, src, log)

	if _, err := refresher.Refresh(ctx, false); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("load document: %w", err)
	}

	return &runtime{
		store:     store,
		refresher: refresher,
		redis:     rdb,
	}, nil
}
