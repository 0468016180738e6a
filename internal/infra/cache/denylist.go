package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenDenylist guarda os jti revogados no sign-out até o token expirar.
type TokenDenylist struct {
	rdb *redis.Client
}

func NewTokenDenylist(rdb *redis.Client) *TokenDenylist {
	return &TokenDenylist{rdb: rdb}
}

func denyKey(jti string) string {
	return "jwt:revoked:" + jti
}

func (d *TokenDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.rdb.Set(ctx, denyKey(jti), "1", ttl).Err()
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.rdb.Exists(ctx, denyKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
