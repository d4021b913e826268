package service

import (
	"context"
	"log/slog"

	"restaurant-api/internal/domain"

	"github.com/google/uuid"
)

type DishService struct {
	repo  CatalogRepository
	cache AggregateCache
	log   *slog.Logger
}

func NewDishService(repo CatalogRepository, cache AggregateCache, log *slog.Logger) *DishService {
	return &DishService{repo: repo, cache: cache, log: log}
}

func validateDish(dish *domain.Dish) error {
	if dish.Name == "" {
		return domain.Invalid("dish name must not be empty")
	}
	if len(dish.Name) > domain.MaxDishNameLen {
		return domain.Invalid("dish name must be at most 100 characters")
	}
	if dish.Price <= 0 {
		return domain.Invalid("dish price must be positive")
	}
	if len(dish.Description) > domain.MaxDishDescriptionLen {
		return domain.Invalid("dish description must be at most 500 characters")
	}
	return nil
}

func (s *DishService) Create(ctx context.Context, dish *domain.Dish) error {
	if err := validateDish(dish); err != nil {
		return err
	}
	dish.ID = uuid.New()
	if err := s.repo.CreateDish(ctx, dish); err != nil {
		return err
	}
	s.log.Info("dish created", slog.String("dish_id", dish.ID.String()))
	return nil
}

func (s *DishService) List(ctx context.Context) ([]domain.Dish, error) {
	return s.repo.ListDishes(ctx)
}

func (s *DishService) Get(ctx context.Context, id uuid.UUID) (*domain.Dish, error) {
	return s.repo.GetDish(ctx, id)
}

func (s *DishService) Update(ctx context.Context, dish *domain.Dish) error {
	if err := validateDish(dish); err != nil {
		return err
	}
	if err := s.repo.UpdateDish(ctx, dish); err != nil {
		return err
	}
	// A price edit changes the profit of every order referencing the dish.
	if s.cache != nil {
		_ = s.cache.InvalidateProfit(ctx)
	}
	s.log.Info("dish updated", slog.String("dish_id", dish.ID.String()))
	return nil
}

func (s *DishService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteDish(ctx, id); err != nil {
		return err
	}
	s.log.Info("dish deleted", slog.String("dish_id", id.String()))
	return nil
}

var _ DishServiceInterface = (*DishService)(nil)
