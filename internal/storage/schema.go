package storage

import (
	"context"
	"fmt"
)

// EnsureSchema creates the tables on startup when they do not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS dishes (
			id UUID PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			price NUMERIC(18,2) NOT NULL CHECK (price > 0),
			description VARCHAR(500) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			customer_name VARCHAR(50) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			dish_id UUID NOT NULL REFERENCES dishes(id),
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			quantity INT NOT NULL CHECK (quantity > 0),
			PRIMARY KEY (dish_id, order_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
