package storage

import (
	"context"
	"database/sql"
	"errors"

	"restaurant-api/internal/domain"

	"github.com/google/uuid"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) CreateDish(ctx context.Context, dish *domain.Dish) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO dishes (id, name, price, description) VALUES ($1, $2, $3, $4)",
		dish.ID, dish.Name, dish.Price, dish.Description)
	return err
}

func (r *PostgresRepository) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, price, COALESCE(description, '')
		FROM dishes
		ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dishes := []domain.Dish{}
	for rows.Next() {
		var dish domain.Dish
		if err := rows.Scan(&dish.ID, &dish.Name, &dish.Price, &dish.Description); err != nil {
			return nil, err
		}
		dishes = append(dishes, dish)
	}
	return dishes, rows.Err()
}

func (r *PostgresRepository) GetDish(ctx context.Context, id uuid.UUID) (*domain.Dish, error) {
	var dish domain.Dish
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, price, COALESCE(description, '') FROM dishes WHERE id = $1", id).
		Scan(&dish.ID, &dish.Name, &dish.Price, &dish.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("dish", id.String())
	}
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *PostgresRepository) UpdateDish(ctx context.Context, dish *domain.Dish) error {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE dishes SET name = $1, price = $2, description = $3 WHERE id = $4",
		dish.Name, dish.Price, dish.Description, dish.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFound("dish", dish.ID.String())
	}
	return nil
}

// DeleteDish refuses to remove a dish that is still referenced by order line
// items, so historical orders keep resolving.
func (r *PostgresRepository) DeleteDish(ctx context.Context, id uuid.UUID) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var referenced bool
	if err := tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM order_items WHERE dish_id = $1)", id).
		Scan(&referenced); err != nil {
		return err
	}
	if referenced {
		return domain.Invalid("dish is referenced by existing orders")
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM dishes WHERE id = $1", id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFound("dish", id.String())
	}
	return tx.Commit()
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO orders (id, customer_name, created_at) VALUES ($1, $2, $3)",
		order.ID, order.CustomerName, order.CreatedAt); err != nil {
		return err
	}

	if err := insertItems(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}

	return tx.Commit()
}

// ReplaceOrder overwrites the customer name and the full line-item set in one
// transaction. A failure partway leaves the previous rows intact.
func (r *PostgresRepository) ReplaceOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE orders SET customer_name = $1 WHERE id = $2",
		order.CustomerName, order.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFound("order", order.ID.String())
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM order_items WHERE order_id = $1", order.ID); err != nil {
		return err
	}

	if err := insertItems(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}

	return tx.Commit()
}

func insertItems(ctx context.Context, tx *sql.Tx, orderID uuid.UUID, items []domain.OrderItem) error {
	for _, item := range items {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO order_items (dish_id, order_id, quantity) VALUES ($1, $2, $3)",
			item.DishID, orderID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var order domain.Order
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, customer_name, created_at FROM orders WHERE id = $1", id).
		Scan(&order.ID, &order.CustomerName, &order.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("order", id.String())
	}
	if err != nil {
		return nil, err
	}

	items, err := r.orderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (r *PostgresRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, customer_name, created_at
		FROM orders
		ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.CustomerName, &order.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.orderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *PostgresRepository) orderItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT oi.dish_id, oi.quantity, d.id, d.name, d.price, COALESCE(d.description, '')
		FROM order_items oi
		JOIN dishes d ON oi.dish_id = d.id
		WHERE oi.order_id = $1
		ORDER BY oi.dish_id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.DishID, &item.Quantity,
			&item.Dish.ID, &item.Dish.Name, &item.Dish.Price, &item.Dish.Description); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFound("order", id.String())
	}
	return nil
}

// SumProfit uses the current catalog price for every line item, so editing a
// dish price retroactively changes the reported profit.
func (r *PostgresRepository) SumProfit(ctx context.Context) (float64, error) {
	var profit float64
	err := r.DB.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(oi.quantity * d.price), 0)
		FROM order_items oi
		JOIN dishes d ON oi.dish_id = d.id`).Scan(&profit)
	return profit, err
}

// DishPopularity returns the summed ordered quantity per dish.
func (r *PostgresRepository) DishPopularity(ctx context.Context) ([]domain.DishPopularity, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT dish_id, SUM(quantity)
		FROM order_items
		GROUP BY dish_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []domain.DishPopularity{}
	for rows.Next() {
		var count domain.DishPopularity
		if err := rows.Scan(&count.DishID, &count.Quantity); err != nil {
			return nil, err
		}
		counts = append(counts, count)
	}
	return counts, rows.Err()
}

// MostPopularDish breaks ties on the lowest dish id.
func (r *PostgresRepository) MostPopularDish(ctx context.Context) (*domain.Dish, error) {
	var dish domain.Dish
	err := r.DB.QueryRowContext(ctx, `
		SELECT d.id, d.name, d.price, COALESCE(d.description, '')
		FROM order_items oi
		JOIN dishes d ON oi.dish_id = d.id
		GROUP BY d.id, d.name, d.price, d.description
		ORDER BY SUM(oi.quantity) DESC, d.id ASC
		LIMIT 1`).
		Scan(&dish.ID, &dish.Name, &dish.Price, &dish.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("dish", "")
	}
	if err != nil {
		return nil, err
	}
	return &dish, nil
}
