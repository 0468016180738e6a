package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RateLimiter is a fixed-window counter per key.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, limit: limit, window: window, prefix: "ratelimit:"}
}

func (l *RateLimiter) Limit() int {
	return l.limit
}

// INCR e PEXPIRE numa só ida ao Redis: a chave nunca fica sem TTL,
// e uma chave órfã de antes ganha TTL no próximo hit.
var hitScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {n, ttl}
`)

// Allow counts one hit. On Redis errors the hit is allowed and err is set.
func (l *RateLimiter) Allow(ctx context.Context, key string) (allowed bool, remaining int, retryAfter time.Duration, err error) {
	k := l.prefix + key

	res, err := hitScript.Run(ctx, l.rdb, []string{k}, l.window.Milliseconds()).Slice()
	if err != nil {
		return true, l.limit, 0, err
	}
	n, ttl, err := hitResult(res)
	if err != nil {
		return true, l.limit, 0, err
	}

	count := int(n)
	remaining = l.limit - count
	if remaining < 0 {
		remaining = 0
	}

	if count > l.limit {
		retryAfter = time.Duration(ttl) * time.Millisecond
		if retryAfter <= 0 || retryAfter > l.window {
			retryAfter = l.window
		}
		return false, 0, retryAfter, nil
	}
	return true, remaining, 0, nil
}

func hitResult(res []interface{}) (count, ttlMillis int64, err error) {
	if len(res) != 2 {
		return 0, 0, fmt.Errorf("ratelimit: unexpected script reply %v", res)
	}
	count, ok1 := res[0].(int64)
	ttlMillis, ok2 := res[1].(int64)
	if !ok1 || !ok2 {
		return 0, 0, fmt.Errorf("ratelimit: unexpected script reply %v", res)
	}
	return count, ttlMillis, nil
}
