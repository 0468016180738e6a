package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/troia-reservas/internal/config"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
)

// NewClient connects and pings Redis. Callers treat an error as
// "run without Redis": every component here fails open.
func NewClient(cfg config.RedisConfig, lg *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	lg.Info("CACHE", fmt.Sprintf("Connected to Redis at %s", cfg.Addr))
	return client, nil
}
