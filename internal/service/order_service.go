package service

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"time"

	"restaurant-api/internal/domain"

	"github.com/google/uuid"
)

type OrderService struct {
	orders    OrderRepository
	catalog   CatalogRepository
	cache     AggregateCache
	publisher EventPublisher
	receipts  ReceiptGenerator
	log       *slog.Logger
}

func NewOrderService(orders OrderRepository, catalog CatalogRepository, cache AggregateCache, publisher EventPublisher, receipts ReceiptGenerator, log *slog.Logger) *OrderService {
	return &OrderService{
		orders:    orders,
		catalog:   catalog,
		cache:     cache,
		publisher: publisher,
		receipts:  receipts,
		log:       log,
	}
}

func validateCustomerName(name string) error {
	if name == "" {
		return domain.Invalid("customer name must not be empty")
	}
	if len(name) > domain.MaxCustomerNameLen {
		return domain.Invalid("customer name must be at most 50 characters")
	}
	return nil
}

// resolveItems turns the requested dish->quantity mapping into line items
// with the dish resolved against the catalog. Dishes are processed in
// ascending id order so the first reported missing id is deterministic; the
// first miss short-circuits.
func (s *OrderService) resolveItems(ctx context.Context, quantities map[uuid.UUID]int) ([]domain.OrderItem, error) {
	if len(quantities) == 0 {
		return nil, domain.Invalid("at least one dish must be included in the order")
	}

	ids := make([]uuid.UUID, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })

	items := make([]domain.OrderItem, 0, len(ids))
	for _, id := range ids {
		qty := quantities[id]
		if qty < 1 {
			return nil, domain.Invalid("dish quantity must be at least 1")
		}
		dish, err := s.catalog.GetDish(ctx, id)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.OrderItem{
			DishID:   id,
			Quantity: qty,
			Dish:     *dish,
		})
	}
	return items, nil
}

func (s *OrderService) Create(ctx context.Context, customerName string, quantities map[uuid.UUID]int) (*domain.Order, error) {
	if err := validateCustomerName(customerName); err != nil {
		return nil, err
	}
	items, err := s.resolveItems(ctx, quantities)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:           uuid.New(),
		CustomerName: customerName,
		CreatedAt:    time.Now().UTC(),
		Items:        items,
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	s.log.Info("order created",
		slog.String("order_id", order.ID.String()),
		slog.Int("items", len(order.Items)))
	s.invalidateProfit(ctx)

	s.publish(ctx, domain.OrderEvent{
		Type:    domain.EventOrderCreated,
		OrderID: order.ID,
		Items:   eventItems(order.Items),
	})
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.orders.GetOrder(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListOrders(ctx)
}

// Update replaces the customer name and the whole line-item set. Every dish
// id is resolved before anything is written, so a failed lookup leaves the
// stored order untouched. The creation timestamp is never altered.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, customerName string, quantities map[uuid.UUID]int) (*domain.Order, error) {
	existing, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateCustomerName(customerName); err != nil {
		return nil, err
	}
	items, err := s.resolveItems(ctx, quantities)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:           id,
		CustomerName: customerName,
		CreatedAt:    existing.CreatedAt,
		Items:        items,
	}
	if err := s.orders.ReplaceOrder(ctx, order); err != nil {
		return nil, err
	}
	s.log.Info("order updated", slog.String("order_id", id.String()))
	s.invalidateProfit(ctx)

	s.publish(ctx, domain.OrderEvent{
		Type:    domain.EventOrderUpdated,
		OrderID: id,
		Items:   eventItems(order.Items),
		Removed: eventItems(existing.Items),
	})
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	if err := s.orders.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.log.Info("order deleted", slog.String("order_id", id.String()))
	s.invalidateProfit(ctx)

	s.publish(ctx, domain.OrderEvent{
		Type:    domain.EventOrderDeleted,
		OrderID: id,
		Removed: eventItems(existing.Items),
	})
	return nil
}

func (s *OrderService) ReceiptQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if _, err := s.orders.GetOrder(ctx, id); err != nil {
		return nil, err
	}
	return s.receipts.Generate(id)
}

// publish is best effort. The order is already persisted; a broker outage
// must not fail the request. An undelivered event would leave the popularity
// ranking out of step with the store with nothing left to correct it, so the
// ranking is dropped and the next stats read rebuilds it from the store.
func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.log.Error("failed to publish order event",
			slog.String("type", event.Type),
			slog.String("order_id", event.OrderID.String()),
			slog.String("error", err.Error()))
		if s.cache != nil {
			if err := s.cache.InvalidatePopularity(ctx); err != nil {
				s.log.Error("failed to drop popularity ranking",
					slog.String("error", err.Error()))
			}
		}
	}
}

// The cached profit is dropped on every order write instead of waiting for
// the consumed event to do it.
func (s *OrderService) invalidateProfit(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateProfit(ctx); err != nil {
		s.log.Warn("failed to invalidate profit cache", slog.String("error", err.Error()))
	}
}

func eventItems(items []domain.OrderItem) []domain.EventItem {
	out := make([]domain.EventItem, 0, len(items))
	for _, item := range items {
		out = append(out, domain.EventItem{DishID: item.DishID, Quantity: item.Quantity})
	}
	return out
}

var _ OrderServiceInterface = (*OrderService)(nil)
