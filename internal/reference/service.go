// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package reference

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/constants"
)

// # Service Layer

// Service serves reference data through a Redis read-through cache.
//
// # Cache policy
//
// The cache is an optimization only: every cache error — read, decode, or
// write — falls back to PostgreSQL and is logged, never surfaced. Entries
// expire after [constants.RefCacheTTL]; reference data is immutable enough
// that no explicit invalidation exists.
type Service struct {
	repo   Repository
	cache  *redis.Client
	logger *slog.Logger
}

// NewService constructs the reference [Service].
func NewService(repo Repository, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// ListCategories returns all categories, cached.
func (service *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return cached(ctx, service, "categories", service.repo.ListCategories)
}

// ListTags returns all tags, cached.
func (service *Service) ListTags(ctx context.Context) ([]*Tag, error) {
	return cached(ctx, service, "tags", service.repo.ListTags)
}

// ListActivityTypes returns all activity types, cached.
func (service *Service) ListActivityTypes(ctx context.Context) ([]*ActivityType, error) {
	return cached(ctx, service, "activity_types", service.repo.ListActivityTypes)
}

// cached is the generic read-through: Redis hit → decode, otherwise load from
// the repository and repopulate.
func cached[T any](ctx context.Context, service *Service, key string, load func(context.Context) ([]*T, error)) ([]*T, error) {
	cacheKey := constants.RedisPrefixRefCache + key

	if payload, err := service.cache.Get(ctx, cacheKey).Bytes(); err == nil {
		var items []*T
		if err := json.Unmarshal(payload, &items); err == nil {
			return items, nil
		}
		// Corrupt entry: fall through to the database and overwrite it.
		service.logger.WarnContext(ctx, "ref_cache_decode_failed", slog.String("key", cacheKey))
	} else if !errors.Is(err, redis.Nil) {
		service.logger.WarnContext(ctx, "ref_cache_read_failed",
			slog.String("key", cacheKey),
			slog.String("error", err.Error()),
		)
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(items); err == nil {
		if err := service.cache.Set(ctx, cacheKey, payload, constants.RefCacheTTL).Err(); err != nil {
			service.logger.WarnContext(ctx, "ref_cache_write_failed",
				slog.String("key", cacheKey),
				slog.String("error", err.Error()),
			)
		}
	}

	return items, nil
}
