package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/vaidashi/dessert-order-tracker/internal/config"
	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
)

// Database represents a database connection
type Database struct {
	DB     *sqlx.DB
	logger logger.Logger
}

// New creates a new database connection
func New(cfg *config.Config, logger logger.Logger) (*Database, error) {
	db, err := sqlx.Connect("postgres", cfg.GetDBConnString())

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// one operator, one request at a time
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	logger.Info("Connected to database", "host", cfg.DB.Host, "database", cfg.DB.Name)

	return NewFromDB(db, logger), nil
}

// NewFromDB wraps an existing connection
func NewFromDB(db *sqlx.DB, logger logger.Logger) *Database {
	return &Database{
		DB:     db,
		logger: logger,
	}
}

// Ping checks the database connection
func (d *Database) Ping(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.DB.Close()
}

// EnsureSchema creates the orders and price_list tables when they are missing
func (d *Database) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS orders (
		seq BIGSERIAL,
		order_no VARCHAR(16) PRIMARY KEY,
		order_date VARCHAR(10) NOT NULL,
		customer_name TEXT NOT NULL DEFAULT '',
		phone_number VARCHAR(20) NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		qty_500g INT NOT NULL DEFAULT 0,
		qty_1kg INT NOT NULL DEFAULT 0,
		total NUMERIC(12, 2) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'Pending'
	);

	CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders(order_date);

	CREATE TABLE IF NOT EXISTS price_list (
		id SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		price_500g NUMERIC(12, 2) NOT NULL,
		price_1kg NUMERIC(12, 2) NOT NULL
	);
	`

	if _, err := d.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	d.logger.Info("Database schema ready")
	return nil
}
