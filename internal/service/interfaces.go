package service

import (
	"context"

	"restaurant-api/internal/domain"

	"github.com/google/uuid"
)

type CatalogRepository interface {
	CreateDish(ctx context.Context, dish *domain.Dish) error
	ListDishes(ctx context.Context) ([]domain.Dish, error)
	GetDish(ctx context.Context, id uuid.UUID) (*domain.Dish, error)
	UpdateDish(ctx context.Context, dish *domain.Dish) error
	DeleteDish(ctx context.Context, id uuid.UUID) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ReplaceOrder(ctx context.Context, order *domain.Order) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type StatsRepository interface {
	SumProfit(ctx context.Context) (float64, error)
	MostPopularDish(ctx context.Context) (*domain.Dish, error)
	DishPopularity(ctx context.Context) ([]domain.DishPopularity, error)
	GetDish(ctx context.Context, id uuid.UUID) (*domain.Dish, error)
}

type AggregateCache interface {
	Profit(ctx context.Context) (float64, bool, error)
	SetProfit(ctx context.Context, profit float64) error
	InvalidateProfit(ctx context.Context) error
	MostPopular(ctx context.Context) (uuid.UUID, bool, error)
	RebuildPopularity(ctx context.Context, counts []domain.DishPopularity) error
	InvalidatePopularity(ctx context.Context) error
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type ReceiptGenerator interface {
	Generate(orderID uuid.UUID) ([]byte, error)
}

type DishServiceInterface interface {
	Create(ctx context.Context, dish *domain.Dish) error
	List(ctx context.Context) ([]domain.Dish, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Dish, error)
	Update(ctx context.Context, dish *domain.Dish) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OrderServiceInterface interface {
	Create(ctx context.Context, customerName string, quantities map[uuid.UUID]int) (*domain.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, id uuid.UUID, customerName string, quantities map[uuid.UUID]int) (*domain.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ReceiptQR(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type StatsServiceInterface interface {
	CalculateProfit(ctx context.Context) (float64, error)
	MostPopularDish(ctx context.Context) (*domain.Dish, error)
}
