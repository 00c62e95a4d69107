package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore maps order-placement idempotency keys to the order they
// produced, so a retried checkout returns the original order instead of
// placing a second one. Key format: order:idem:<user_id>:<key>
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Lookup returns the order ID previously remembered for this key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, userID, key string) (string, bool, error) {
	orderID, err := s.client.Get(ctx, s.key(userID, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return orderID, true, nil
}

// Remember records the order created for this key (expires after idempotencyTTL).
func (s *IdempotencyStore) Remember(ctx context.Context, userID, key, orderID string) error {
	return s.client.Set(ctx, s.key(userID, key), orderID, idempotencyTTL).Err()
}

func (s *IdempotencyStore) key(userID, key string) string {
	return fmt.Sprintf("order:idem:%s:%s", userID, key)
}
