package service

import (
	"context"
	"log/slog"

	"restaurant-api/internal/domain"
)

// StatsService serves the aggregate read queries. Redis is a fast path only:
// any cache error or miss falls back to the store, which is authoritative.
type StatsService struct {
	repo  StatsRepository
	cache AggregateCache
	log   *slog.Logger
}

func NewStatsService(repo StatsRepository, cache AggregateCache, log *slog.Logger) *StatsService {
	return &StatsService{repo: repo, cache: cache, log: log}
}

func (s *StatsService) CalculateProfit(ctx context.Context) (float64, error) {
	if s.cache != nil {
		if profit, ok, err := s.cache.Profit(ctx); err == nil && ok {
			return profit, nil
		}
	}

	profit, err := s.repo.SumProfit(ctx)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if err := s.cache.SetProfit(ctx, profit); err != nil {
			s.log.Warn("failed to cache profit", slog.String("error", err.Error()))
		}
	}
	return profit, nil
}

func (s *StatsService) MostPopularDish(ctx context.Context) (*domain.Dish, error) {
	if s.cache != nil {
		if id, ok, err := s.cache.MostPopular(ctx); err == nil && ok {
			dish, err := s.repo.GetDish(ctx, id)
			if err == nil {
				return dish, nil
			}
			// Ranking can lag behind the catalog; recompute from the store.
		}
	}

	dish, err := s.repo.MostPopularDish(ctx)
	if err != nil {
		return nil, err
	}
	s.rebuildPopularity(ctx)
	return dish, nil
}

// rebuildPopularity reseeds the ranking with the store's full counts so the
// aggregator's deltas land on top of true totals again.
func (s *StatsService) rebuildPopularity(ctx context.Context) {
	if s.cache == nil {
		return
	}
	counts, err := s.repo.DishPopularity(ctx)
	if err != nil {
		s.log.Warn("failed to load dish popularity", slog.String("error", err.Error()))
		return
	}
	if err := s.cache.RebuildPopularity(ctx, counts); err != nil {
		s.log.Warn("failed to rebuild popularity ranking", slog.String("error", err.Error()))
	}
}

var _ StatsServiceInterface = (*StatsService)(nil)
