package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/vaidashi/dessert-order-tracker/internal/database"
	"github.com/vaidashi/dessert-order-tracker/internal/models"
	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
)

const uniqueViolation = "23505"

const orderColumnsSQL = `order_no, order_date, customer_name, phone_number, address, qty_500g, qty_1kg, total, status`

// PGOrderRepository handles database operations for orders
type PGOrderRepository struct {
	db     *database.Database
	logger logger.Logger
}

// NewPGOrderRepository creates a new PGOrderRepository
func NewPGOrderRepository(db *database.Database, logger logger.Logger) *PGOrderRepository {
	return &PGOrderRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new order into the database
func (r *PGOrderRepository) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (` + orderColumnsSQL + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.DB.ExecContext(
		ctx,
		query,
		order.OrderNo,
		order.Date,
		order.CustomerName,
		order.PhoneNumber,
		order.Address,
		order.Qty500g,
		order.Qty1kg,
		order.Total,
		order.Status,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicate
		}

		r.logger.Error("Failed to create order", "error", err, "orderNo", order.OrderNo)
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return nil
}

// GetByID retrieves an order by its order number
func (r *PGOrderRepository) GetByID(ctx context.Context, orderNo string) (*models.Order, error) {
	query := `SELECT ` + orderColumnsSQL + ` FROM orders WHERE order_no = $1`

	var order models.Order
	err := r.db.DB.GetContext(ctx, &order, query, orderNo)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("Failed to get order", "error", err, "orderNo", orderNo)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return &order, nil
}

// GetAll retrieves all orders in insertion order
func (r *PGOrderRepository) GetAll(ctx context.Context) ([]*models.Order, error) {
	query := `SELECT ` + orderColumnsSQL + ` FROM orders ORDER BY seq`

	orders := []*models.Order{}
	err := r.db.DB.SelectContext(ctx, &orders, query)

	if err != nil {
		r.logger.Error("Failed to get all orders", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return orders, nil
}

// Update updates an existing order
func (r *PGOrderRepository) Update(ctx context.Context, order *models.Order) error {
	query := `
		UPDATE orders
		SET order_date = $1, customer_name = $2, phone_number = $3, address = $4,
			qty_500g = $5, qty_1kg = $6, total = $7, status = $8
		WHERE order_no = $9
	`

	result, err := r.db.DB.ExecContext(
		ctx,
		query,
		order.Date,
		order.CustomerName,
		order.PhoneNumber,
		order.Address,
		order.Qty500g,
		order.Qty1kg,
		order.Total,
		order.Status,
		order.OrderNo,
	)

	if err != nil {
		r.logger.Error("Failed to update order", "error", err, "orderNo", order.OrderNo)
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return expectOneRow(result)
}

// Delete deletes an order by its order number
func (r *PGOrderRepository) Delete(ctx context.Context, orderNo string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM orders WHERE order_no = $1`, orderNo)

	if err != nil {
		r.logger.Error("Failed to delete order", "error", err, "orderNo", orderNo)
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return expectOneRow(result)
}

func expectOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()

	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
