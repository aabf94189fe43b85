// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/apperr"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/constants"
)

// redisSessionRepository implements [SessionRepository] on Redis.
//
// Sessions are keyed by the refresh token hash and expire automatically at
// the session deadline, so no background cleanup job exists.
type redisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository constructs a Redis backed session store.
func NewRedisSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client}
}

// sessionKey builds the Redis key for a token hash.
func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

// Create persists a new session with a TTL matching its expiry.
func (repository *redisSessionRepository) Create(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return apperr.Internal(fmt.Errorf("auth: failed to encode session: %w", err))
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return apperr.Internal(fmt.Errorf("auth: session already expired at creation"))
	}

	if err := repository.client.Set(ctx, sessionKey(session.TokenHash), payload, ttl).Err(); err != nil {
		return apperr.Unavailable(fmt.Errorf("auth: failed to store session: %w", err))
	}
	return nil
}

// FindByTokenHash returns the live session for a token hash.
func (repository *redisSessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error) {
	payload, err := repository.client.Get(ctx, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return nil, apperr.Unavailable(fmt.Errorf("auth: failed to read session: %w", err))
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth: failed to decode session: %w", err))
	}
	session.TokenHash = tokenHash
	return session, nil
}

// Revoke removes a session immediately.
func (repository *redisSessionRepository) Revoke(ctx context.Context, tokenHash string) error {
	if err := repository.client.Del(ctx, sessionKey(tokenHash)).Err(); err != nil {
		return apperr.Unavailable(fmt.Errorf("auth: failed to revoke session: %w", err))
	}
	return nil
}
