package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaxDishNameLen        = 100
	MaxDishDescriptionLen = 500
	MaxCustomerNameLen    = 50
)

type Dish struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
}

type Order struct {
	ID           uuid.UUID   `json:"id"`
	CustomerName string      `json:"customerName"`
	CreatedAt    time.Time   `json:"createdAt"`
	Items        []OrderItem `json:"dishesInOrder"`
}

// OrderItem ties one dish to one order. Dish carries the catalog record as it
// is at read time, not a snapshot taken when the order was placed.
type OrderItem struct {
	DishID   uuid.UUID `json:"dishId"`
	Quantity int       `json:"quantity"`
	Dish     Dish      `json:"dish"`
}

// DishPopularity is one row of the ordered-quantity ranking.
type DishPopularity struct {
	DishID   uuid.UUID
	Quantity int
}
