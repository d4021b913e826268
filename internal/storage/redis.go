package storage

import (
	"context"
	"strconv"
	"time"

	"restaurant-api/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	popularityKey = "stats:popular_dishes"
	profitKey     = "stats:profit"
)

// AggregateCache keeps the popularity ranking and the last computed profit in
// Redis. The ranking ZSET is seeded from the store by the stats service and
// kept current by the aggregator consumer; the profit value is written lazily
// by the stats service and dropped on every write.
type AggregateCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewAggregateCache(client *redis.Client, ttl time.Duration) *AggregateCache {
	return &AggregateCache{Client: client, TTL: ttl}
}

func (c *AggregateCache) Profit(ctx context.Context) (float64, bool, error) {
	val, err := c.Client.Get(ctx, profitKey).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	profit, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, err
	}
	return profit, true, nil
}

func (c *AggregateCache) SetProfit(ctx context.Context, profit float64) error {
	return c.Client.Set(ctx, profitKey, strconv.FormatFloat(profit, 'f', -1, 64), c.TTL).Err()
}

func (c *AggregateCache) InvalidateProfit(ctx context.Context) error {
	return c.Client.Del(ctx, profitKey).Err()
}

// AdjustPopularity applies a quantity delta to the ranking. A delta is only
// meaningful on top of full counts, so an absent ranking is left absent until
// RebuildPopularity seeds it from the store.
func (c *AggregateCache) AdjustPopularity(ctx context.Context, dishID uuid.UUID, delta int) error {
	exists, err := c.Client.Exists(ctx, popularityKey).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return nil
	}
	return c.Client.ZIncrBy(ctx, popularityKey, float64(delta), dishID.String()).Err()
}

// RebuildPopularity replaces the ranking with the store's full counts.
func (c *AggregateCache) RebuildPopularity(ctx context.Context, counts []domain.DishPopularity) error {
	members := make([]redis.Z, 0, len(counts))
	for _, count := range counts {
		members = append(members, redis.Z{
			Score:  float64(count.Quantity),
			Member: count.DishID.String(),
		})
	}

	pipe := c.Client.TxPipeline()
	pipe.Del(ctx, popularityKey)
	if len(members) > 0 {
		pipe.ZAdd(ctx, popularityKey, members...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// InvalidatePopularity drops the ranking so the next stats read rebuilds it
// from the store.
func (c *AggregateCache) InvalidatePopularity(ctx context.Context) error {
	return c.Client.Del(ctx, popularityKey).Err()
}

// MostPopular returns the dish id with the highest summed quantity. Ties go
// to the lowest id; an empty or zeroed ranking reports a miss so the caller
// falls back to the store.
func (c *AggregateCache) MostPopular(ctx context.Context) (uuid.UUID, bool, error) {
	top, err := c.Client.ZRevRangeWithScores(ctx, popularityKey, 0, 0).Result()
	if err != nil || len(top) == 0 {
		return uuid.Nil, false, err
	}
	best := top[0].Score
	if best <= 0 {
		return uuid.Nil, false, nil
	}

	// ZRANGEBYSCORE returns equal-score members in ascending lexical order,
	// which for canonical UUID strings is ascending id order.
	score := strconv.FormatFloat(best, 'f', -1, 64)
	tied, err := c.Client.ZRangeByScore(ctx, popularityKey, &redis.ZRangeBy{
		Min: score,
		Max: score,
	}).Result()
	if err != nil || len(tied) == 0 {
		return uuid.Nil, false, err
	}

	id, err := uuid.Parse(tied[0])
	if err != nil {
		return uuid.Nil, false, nil
	}
	return id, true, nil
}
