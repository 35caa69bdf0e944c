package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vaidashi/dessert-order-tracker/internal/database"
	"github.com/vaidashi/dessert-order-tracker/internal/models"
	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
)

// PGPriceRepository keeps the price list in a single-row table
type PGPriceRepository struct {
	db     *database.Database
	logger logger.Logger
}

// NewPGPriceRepository creates a new PGPriceRepository
func NewPGPriceRepository(db *database.Database, logger logger.Logger) *PGPriceRepository {
	return &PGPriceRepository{
		db:     db,
		logger: logger,
	}
}

// Get returns the saved price list, storing the defaults on first use
func (r *PGPriceRepository) Get(ctx context.Context) (*models.PriceList, error) {
	var prices models.PriceList
	err := r.db.DB.GetContext(ctx, &prices, `SELECT price_500g, price_1kg FROM price_list WHERE id = 1`)

	if errors.Is(err, sql.ErrNoRows) {
		defaults := models.DefaultPriceList()

		if err := r.Save(ctx, defaults); err != nil {
			return nil, err
		}

		return defaults, nil
	}

	if err != nil {
		r.logger.Error("Failed to get price list", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return &prices, nil
}

// Save upserts the price list
func (r *PGPriceRepository) Save(ctx context.Context, prices *models.PriceList) error {
	query := `
		INSERT INTO price_list (id, price_500g, price_1kg)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE
		SET price_500g = EXCLUDED.price_500g, price_1kg = EXCLUDED.price_1kg
	`

	if _, err := r.db.DB.ExecContext(ctx, query, prices.Price500g, prices.Price1kg); err != nil {
		r.logger.Error("Failed to save price list", "error", err)
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return nil
}
