package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const submissionTTL = time.Hour

// SubmissionGuard claims idempotency keys for public submissions.
// Key format: dedup:<scope>:<idempotency_key>
type SubmissionGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSubmissionGuard creates a SubmissionGuard wrapping the given Redis client.
// A non-positive ttl falls back to one hour.
func NewSubmissionGuard(client *redis.Client, ttl time.Duration) *SubmissionGuard {
	if ttl <= 0 {
		ttl = submissionTTL
	}
	return &SubmissionGuard{client: client, ttl: ttl}
}

// Claim atomically records the key and reports whether this call was the
// first to do so within the TTL.
func (g *SubmissionGuard) Claim(ctx context.Context, scope, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(scope, key), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim submission: %w", err)
	}
	return ok, nil
}

func (g *SubmissionGuard) key(scope, key string) string {
	return fmt.Sprintf("dedup:%s:%s", scope, key)
}
