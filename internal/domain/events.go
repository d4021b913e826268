package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderCreated = "order_created"
	EventOrderUpdated = "order_updated"
	EventOrderDeleted = "order_deleted"
)

// OrderEvent is published on every order write. Items holds the line items
// now on the order, Removed the ones that were replaced or deleted, so the
// aggregator can apply quantity deltas without re-reading the store.
type OrderEvent struct {
	Type      string      `json:"type"`
	OrderID   uuid.UUID   `json:"order_id"`
	Items     []EventItem `json:"items,omitempty"`
	Removed   []EventItem `json:"removed_items,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type EventItem struct {
	DishID   uuid.UUID `json:"dish_id"`
	Quantity int       `json:"quantity"`
}
