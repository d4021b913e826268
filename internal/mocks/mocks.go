// Package mocks provides testify mocks for the service-side interfaces.
package mocks

import (
	"context"

	"restaurant-api/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CatalogRepository struct {
	mock.Mock
}

func (m *CatalogRepository) CreateDish(ctx context.Context, dish *domain.Dish) error {
	return m.Called(ctx, dish).Error(0)
}

func (m *CatalogRepository) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	ret := m.Called(ctx)
	var dishes []domain.Dish
	if ret.Get(0) != nil {
		dishes = ret.Get(0).([]domain.Dish)
	}
	return dishes, ret.Error(1)
}

func (m *CatalogRepository) GetDish(ctx context.Context, id uuid.UUID) (*domain.Dish, error) {
	ret := m.Called(ctx, id)
	var dish *domain.Dish
	if ret.Get(0) != nil {
		dish = ret.Get(0).(*domain.Dish)
	}
	return dish, ret.Error(1)
}

func (m *CatalogRepository) UpdateDish(ctx context.Context, dish *domain.Dish) error {
	return m.Called(ctx, dish).Error(0)
}

func (m *CatalogRepository) DeleteDish(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	ret := m.Called(ctx, id)
	var order *domain.Order
	if ret.Get(0) != nil {
		order = ret.Get(0).(*domain.Order)
	}
	return order, ret.Error(1)
}

func (m *OrderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	ret := m.Called(ctx)
	var orders []domain.Order
	if ret.Get(0) != nil {
		orders = ret.Get(0).([]domain.Order)
	}
	return orders, ret.Error(1)
}

func (m *OrderRepository) ReplaceOrder(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type StatsRepository struct {
	mock.Mock
}

func (m *StatsRepository) SumProfit(ctx context.Context) (float64, error) {
	ret := m.Called(ctx)
	return ret.Get(0).(float64), ret.Error(1)
}

func (m *StatsRepository) MostPopularDish(ctx context.Context) (*domain.Dish, error) {
	ret := m.Called(ctx)
	var dish *domain.Dish
	if ret.Get(0) != nil {
		dish = ret.Get(0).(*domain.Dish)
	}
	return dish, ret.Error(1)
}

func (m *StatsRepository) DishPopularity(ctx context.Context) ([]domain.DishPopularity, error) {
	ret := m.Called(ctx)
	var counts []domain.DishPopularity
	if ret.Get(0) != nil {
		counts = ret.Get(0).([]domain.DishPopularity)
	}
	return counts, ret.Error(1)
}

func (m *StatsRepository) GetDish(ctx context.Context, id uuid.UUID) (*domain.Dish, error) {
	ret := m.Called(ctx, id)
	var dish *domain.Dish
	if ret.Get(0) != nil {
		dish = ret.Get(0).(*domain.Dish)
	}
	return dish, ret.Error(1)
}

type AggregateCache struct {
	mock.Mock
}

func (m *AggregateCache) Profit(ctx context.Context) (float64, bool, error) {
	ret := m.Called(ctx)
	return ret.Get(0).(float64), ret.Get(1).(bool), ret.Error(2)
}

func (m *AggregateCache) SetProfit(ctx context.Context, profit float64) error {
	return m.Called(ctx, profit).Error(0)
}

func (m *AggregateCache) InvalidateProfit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *AggregateCache) MostPopular(ctx context.Context) (uuid.UUID, bool, error) {
	ret := m.Called(ctx)
	return ret.Get(0).(uuid.UUID), ret.Get(1).(bool), ret.Error(2)
}

func (m *AggregateCache) AdjustPopularity(ctx context.Context, dishID uuid.UUID, delta int) error {
	return m.Called(ctx, dishID, delta).Error(0)
}

func (m *AggregateCache) RebuildPopularity(ctx context.Context, counts []domain.DishPopularity) error {
	return m.Called(ctx, counts).Error(0)
}

func (m *AggregateCache) InvalidatePopularity(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

type ReceiptGenerator struct {
	mock.Mock
}

func (m *ReceiptGenerator) Generate(orderID uuid.UUID) ([]byte, error) {
	ret := m.Called(orderID)
	var png []byte
	if ret.Get(0) != nil {
		png = ret.Get(0).([]byte)
	}
	return png, ret.Error(1)
}
