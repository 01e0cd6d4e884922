package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore tracks issued refresh tokens so they can be rotated and revoked
type TokenStore interface {
	Save(ctx context.Context, jti, userID string, ttl time.Duration) error
	Consume(ctx context.Context, jti string) (string, error)
	Revoke(ctx context.Context, jti string) error
}

// RedisTokenStore backs the refresh token store with Redis
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates Redis-backed token store
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func refreshKey(jti string) string {
	return fmt.Sprintf("refresh:%s", jti)
}

func (s *RedisTokenStore) Save(ctx context.Context, jti, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, refreshKey(jti), userID, ttl).Err()
}

// Consume returns the user id bound to the token and deletes it, so a
// refresh token can be used exactly once.
func (s *RedisTokenStore) Consume(ctx context.Context, jti string) (string, error) {
	key := refreshKey(jti)
	userID, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrInvalidRefresh
		}
		return "", err
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return "", err
	}
	return userID, nil
}

func (s *RedisTokenStore) Revoke(ctx context.Context, jti string) error {
	return s.client.Del(ctx, refreshKey(jti)).Err()
}
