package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devport/portfolio/internal/session"
)

// SessionBackend stores session records as plain string values that expire
// together with the token that references them.
type SessionBackend struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionBackend(client *redis.Client, ttl time.Duration) *SessionBackend {
	return &SessionBackend{client: client, ttl: ttl}
}

func (b *SessionBackend) Load(ctx context.Context, key string) ([]byte, error) {
	raw, err := b.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return raw, nil
}

func (b *SessionBackend) Save(ctx context.Context, key string, data []byte) error {
	if err := b.client.Set(ctx, key, data, b.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (b *SessionBackend) Remove(ctx context.Context, key string) error {
	if err := b.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
