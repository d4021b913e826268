package aggregator

import (
	"context"
	"encoding/json"
	"log/slog"

	"restaurant-api/internal/domain"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type Cache interface {
	AdjustPopularity(ctx context.Context, dishID uuid.UUID, delta int) error
	InvalidateProfit(ctx context.Context) error
}

// Consumer applies order events to the Redis aggregates so the popularity
// ranking stays warm without re-scanning the store on every read.
type Consumer struct {
	Reader *kafka.Reader
	Cache  Cache
	Log    *slog.Logger
}

func NewConsumer(reader *kafka.Reader, cache Cache, log *slog.Logger) *Consumer {
	return &Consumer{Reader: reader, Cache: cache, Log: log}
}

func (c *Consumer) Start(ctx context.Context) {
	c.Log.Info("starting order event consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.Log.Error("failed to read message", slog.String("error", err.Error()))
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.Log.Error("failed to unmarshal order event", slog.String("error", err.Error()))
			continue
		}

		c.Process(ctx, event)
	}
}

func (c *Consumer) Process(ctx context.Context, event domain.OrderEvent) {
	switch event.Type {
	case domain.EventOrderCreated, domain.EventOrderUpdated, domain.EventOrderDeleted:
	default:
		return
	}

	for _, item := range event.Items {
		if err := c.Cache.AdjustPopularity(ctx, item.DishID, item.Quantity); err != nil {
			c.Log.Error("failed to adjust popularity",
				slog.String("dish_id", item.DishID.String()),
				slog.String("error", err.Error()))
		}
	}
	for _, item := range event.Removed {
		if err := c.Cache.AdjustPopularity(ctx, item.DishID, -item.Quantity); err != nil {
			c.Log.Error("failed to adjust popularity",
				slog.String("dish_id", item.DishID.String()),
				slog.String("error", err.Error()))
		}
	}

	if err := c.Cache.InvalidateProfit(ctx); err != nil {
		c.Log.Error("failed to invalidate profit cache", slog.String("error", err.Error()))
	}
}
