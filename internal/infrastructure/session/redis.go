package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vendwatch/fleet-gateway/internal/core/domain"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis so several gateway instances can share
// them. Sessions carry no TTL: the gateway has no expiry policy beyond
// explicit logout.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Create(ctx context.Context, session *domain.Session) error {
	return s.write(ctx, session)
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &session, nil
}

func (s *RedisStore) Save(ctx context.Context, session *domain.Session) error {
	n, err := s.client.Exists(ctx, keyPrefix+session.ID).Result()
	if err != nil {
		return fmt.Errorf("session exists: %w", err)
	}
	if n == 0 {
		return domain.ErrUnauthenticated
	}
	return s.write(ctx, session)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *RedisStore) write(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+session.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}
