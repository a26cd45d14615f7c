package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultListLimit     = 20
	defaultFeaturedLimit = 8
	maxLimit             = 100

	featuredCachePrefix = "catalog:featured:"
	featuredCacheTTL    = 30 * time.Second
)

// Service exposes catalog reads with input clamping and a short-lived Redis
// cache for the featured list. The cache is optional and fails open: any
// Redis error falls through to the repository.
type Service struct {
	repo   Repository
	cache  *redis.Client
	logger *slog.Logger
}

// NewService builds a catalog service. cache may be nil.
func NewService(repo Repository, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// List returns available products. Zero or negative limit falls back to the
// default page size; offsets below zero are treated as zero.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Product, error) {
	limit = clampLimit(limit, defaultListLimit)
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListAvailable(ctx, limit, offset)
}

// Featured returns available, in-stock products, served from cache when warm.
func (s *Service) Featured(ctx context.Context, limit int) ([]Product, error) {
	limit = clampLimit(limit, defaultFeaturedLimit)

	key := fmt.Sprintf("%s%d", featuredCachePrefix, limit)
	if cached, ok := s.cacheGet(ctx, key); ok {
		return cached, nil
	}

	products, err := s.repo.ListFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, products)
	return products, nil
}

// Get fetches a single product by id.
func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) cacheGet(ctx context.Context, key string) ([]Product, bool) {
	if s.cache == nil {
		return nil, false
	}
	payload, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil && s.logger != nil {
			s.logger.Warn("featured cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var products []Product
	if err := json.Unmarshal(payload, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (s *Service) cacheSet(ctx context.Context, key string, products []Product) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, featuredCacheTTL).Err(); err != nil && s.logger != nil {
		s.logger.Warn("featured cache write failed", "key", key, "error", err)
	}
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
