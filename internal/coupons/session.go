package coupons

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vitrinalabs/vitrina-backend/pkg/redis"
)

// SessionStore keeps the applied coupon code for the current checkout
// session. The state lives outside the cart snapshot so it survives quote
// recomputations but is discarded on cart clear or navigation away.
type SessionStore interface {
	Save(ctx context.Context, sessionID, code string) error
	Fetch(ctx context.Context, sessionID string) (string, error)
	Clear(ctx context.Context, sessionID string) error
}

// RedisSessionStore persists applied coupon codes in Redis with a TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore wires the session store onto the shared Redis client.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) (*RedisSessionStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &RedisSessionStore{client: client, ttl: ttl}, nil
}

// Save stores the applied code, refreshing the session TTL.
func (s *RedisSessionStore) Save(ctx context.Context, sessionID, code string) error {
	return s.client.Set(ctx, s.client.CouponSessionKey(sessionID), code, s.ttl)
}

// Fetch returns the stored code, or empty when no coupon is applied.
func (s *RedisSessionStore) Fetch(ctx context.Context, sessionID string) (string, error) {
	code, err := s.client.Get(ctx, s.client.CouponSessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return code, nil
}

// Clear drops the applied coupon for the session.
func (s *RedisSessionStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.client.CouponSessionKey(sessionID))
}
