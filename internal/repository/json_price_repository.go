package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/vaidashi/dessert-order-tracker/internal/models"
	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
)

// priceFile mirrors the on-disk layout: {"500g": 500, "1kg": 1000}
type priceFile struct {
	Price500g json.Number `json:"500g"`
	Price1kg  json.Number `json:"1kg"`
}

// JSONPriceRepository keeps the price list in a small JSON file
type JSONPriceRepository struct {
	path   string
	logger logger.Logger
	mu     sync.Mutex
}

// NewJSONPriceRepository creates a price repository backed by the file at path
func NewJSONPriceRepository(path string, logger logger.Logger) *JSONPriceRepository {
	return &JSONPriceRepository{
		path:   path,
		logger: logger,
	}
}

// Get reads the price list, writing the defaults first if the file is missing
func (r *JSONPriceRepository) Get(ctx context.Context) (*models.PriceList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)

	if errors.Is(err, fs.ErrNotExist) {
		prices := models.DefaultPriceList()

		if err := r.write(prices); err != nil {
			return nil, err
		}

		r.logger.Info("Created default price list", "path", r.path)
		return prices, nil
	}

	if err != nil {
		r.logger.Error("Failed to read price list", "error", err, "path", r.path)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	var raw priceFile

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStorage, r.path, err)
	}

	p500, err := decimal.NewFromString(raw.Price500g.String())

	if err != nil {
		return nil, fmt.Errorf("%w: %s: 500g price: %v", ErrStorage, r.path, err)
	}

	p1kg, err := decimal.NewFromString(raw.Price1kg.String())

	if err != nil {
		return nil, fmt.Errorf("%w: %s: 1kg price: %v", ErrStorage, r.path, err)
	}

	return &models.PriceList{Price500g: p500, Price1kg: p1kg}, nil
}

// Save overwrites the price file with prices
func (r *JSONPriceRepository) Save(ctx context.Context, prices *models.PriceList) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.write(prices)
}

func (r *JSONPriceRepository) write(prices *models.PriceList) error {
	data, err := json.Marshal(priceFile{
		Price500g: json.Number(prices.Price500g.String()),
		Price1kg:  json.Number(prices.Price1kg.String()),
	})

	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if err := writeFileAtomic(r.path, data); err != nil {
		r.logger.Error("Failed to save price list", "error", err, "path", r.path)
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return nil
}
