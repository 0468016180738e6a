package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/troia-reservas/internal/caldate"
	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
)

const (
	capacityKeyPrefix = "capacity:"
	capacityGenPrefix = "capacity:gen:"

	// maior que qualquer leitura em voo
	capacityGenTTL = 48 * time.Hour
)

// Só grava se ninguém invalidou o dia desde que a leitura começou.
var storeIfCurrent = redis.NewScript(`
if (redis.call('GET', KEYS[2]) or '') == ARGV[2] then
  redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
  return 1
end
return 0
`)

// CapacityCache decorates a reservation repository, caching
// get_reservations_status per day. Writes drop the affected days.
// Redis failures fall through to the database.
type CapacityCache struct {
	domain.Repository
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

func NewCapacityCache(
	repo domain.Repository,
	rdb *redis.Client,
	ttl time.Duration,
	lg *logger.Logger,
) *CapacityCache {
	// PX exige valor positivo
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CapacityCache{Repository: repo, rdb: rdb, ttl: ttl, log: lg}
}

func capacityKey(date caldate.Date) string {
	return capacityKeyPrefix + date.String()
}

func capacityGenKey(date caldate.Date) string {
	return capacityGenPrefix + date.String()
}

func (c *CapacityCache) GetCapacityStatus(
	ctx context.Context,
	date caldate.Date,
) (*domain.CapacityStatus, error) {

	key := capacityKey(date)

	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var status domain.CapacityStatus
		if err := json.Unmarshal(raw, &status); err == nil {
			return &status, nil
		}
	} else if err != redis.Nil {
		c.log.Warn("CACHE", fmt.Sprintf("capacity cache read %s: %v", key, err))
	}

	genKey := capacityGenKey(date)
	gen, genErr := c.rdb.Get(ctx, genKey).Result()
	if genErr == redis.Nil {
		gen, genErr = "", nil
	}

	status, err := c.Repository.GetCapacityStatus(ctx, date)
	if err != nil {
		return nil, err
	}

	// sem a geração não dá para saber se o valor ainda vale
	if genErr != nil {
		return status, nil
	}

	if b, err := json.Marshal(status); err == nil {
		err := storeIfCurrent.Run(ctx, c.rdb, []string{key, genKey}, b, gen, c.ttl.Milliseconds()).Err()
		if err != nil {
			c.log.Warn("CACHE", fmt.Sprintf("capacity cache write %s: %v", key, err))
		}
	}

	return status, nil
}

func (c *CapacityCache) CreateReservation(ctx context.Context, r *models.Reservation) error {
	err := c.Repository.CreateReservation(ctx, r)
	c.invalidate(ctx, r.Date)
	return err
}

func (c *CapacityCache) UpdateReservation(ctx context.Context, r *models.Reservation) error {
	// a reserva pode ter mudado de dia: invalida os dois
	var before caldate.Date
	if old, err := c.Repository.GetReservation(ctx, r.ID); err == nil {
		before = old.Date
	}

	err := c.Repository.UpdateReservation(ctx, r)
	c.invalidate(ctx, before, r.Date)
	return err
}

func (c *CapacityCache) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	var day caldate.Date
	if old, err := c.Repository.GetReservation(ctx, id); err == nil {
		day = old.Date
	}

	err := c.Repository.DeleteReservation(ctx, id)
	c.invalidate(ctx, day)
	return err
}

// invalidate bumps each day's generation and drops its cached status, so
// a read that started before the write cannot store what it saw.
func (c *CapacityCache) invalidate(ctx context.Context, dates ...caldate.Date) {
	days := make([]caldate.Date, 0, len(dates))
	for _, d := range dates {
		if !d.IsZero() {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return
	}

	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, d := range days {
			pipe.Incr(ctx, capacityGenKey(d))
			pipe.Expire(ctx, capacityGenKey(d), capacityGenTTL)
			pipe.Del(ctx, capacityKey(d))
		}
		return nil
	})
	if err != nil {
		c.log.Warn("CACHE", fmt.Sprintf("capacity cache invalidate: %v", err))
	}
}

var _ domain.Repository = (*CapacityCache)(nil)
