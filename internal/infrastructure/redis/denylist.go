package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist remembers revoked token ids until the tokens would have expired
// anyway.
type Denylist struct {
	client redis.Cmdable
	prefix string
}

func NewDenylist(client redis.Cmdable, prefix string) *Denylist {
	return &Denylist{client: client, prefix: prefix}
}

func (d *Denylist) key(tokenID string) string {
	return d.prefix + ":revoked:" + tokenID
}

// Revoke is a no-op for tokens that are already expired.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, d.key(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}

func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}

	return n > 0, nil
}
