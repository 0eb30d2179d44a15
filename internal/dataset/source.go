package dataset

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/wonny/ledger/internal/contracts"
	"github.com/wonny/ledger/pkg/config"
	"github.com/wonny/ledger/pkg/httputil"
	"github.com/wonny/ledger/pkg/logger"
	"github.com/wonny/ledger/pkg/redis"
)

// FileSource reads the document from the local filesystem
type FileSource struct {
	Path string
}

// Load reads and decodes the file
func (s *FileSource) Load(ctx context.Context) ([]contracts.Company, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", s.Path, err)
	}
	return Decode(data, FormatFor(s.Path))
}

// Describe names the source for logs
func (s *FileSource) Describe() string {
	return "file:" + s.Path
}

// HTTPSource fetches the document over HTTP, optionally through the Redis cache
type HTTPSource struct {
	URL    string
	client *httputil.Client
	cache  *redis.Cache
	ttl    time.Duration
	logger *logger.Logger
}

// NewHTTPSource creates a remote source. cache may be nil.
func NewHTTPSource(url string, client *httputil.Client, cache *redis.Cache, ttl time.Duration, log *logger.Logger) *HTTPSource {
	return &HTTPSource{
		URL:    url,
		client: client,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}
}

// Load returns the cached document when present, otherwise fetches it
func (s *HTTPSource) Load(ctx context.Context) ([]contracts.Company, error) {
	key := redis.DocumentKey(s.URL)

	if s.cache != nil {
		var cached []contracts.Company
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			// 캐시 장애는 원격 조회로 대체
			s.logger.WithError(err).Warn("Document cache read failed")
		} else if found {
			s.logger.WithField("source", s.URL).Debug("Document served from cache")
			return cached, nil
		}
	}

	data, err := s.client.GetBytes(ctx, s.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}

	companies, err := Decode(data, FormatFor(s.URL))
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, companies, s.ttl); err != nil {
			s.logger.WithError(err).Warn("Document cache write failed")
		}
	}

	return companies, nil
}

// Invalidate drops the cached copy so the next Load hits the origin
func (s *HTTPSource) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, redis.DocumentKey(s.URL))
}

// Describe names the source for logs
func (s *HTTPSource) Describe() string {
	return "http:" + s.URL
}

// NewSource picks the source for cfg.Data.Source
// ⭐ SSOT: 문서 소스 선택은 여기서만
func NewSource(cfg *config.Config, client *httputil.Client, cache *redis.Cache, log *logger.Logger) contracts.CompanySource {
	if cfg.Data.IsRemote() {
		return NewHTTPSource(cfg.Data.Source, client, cache, cfg.Data.CacheTTL, log)
	}
	return &FileSource{Path: cfg.Data.Source}
}
