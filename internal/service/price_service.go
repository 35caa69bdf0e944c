package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vaidashi/dessert-order-tracker/internal/models"
	"github.com/vaidashi/dessert-order-tracker/internal/repository"
	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
)

// PriceService reads and edits the unit prices
type PriceService struct {
	priceRepo repository.PriceRepository
	logger    logger.Logger
}

// Quote is a priced preview of quantities that have not been saved as an order
type Quote struct {
	Qty500g int             `json:"qty_500g"`
	Qty1kg  int             `json:"qty_1kg"`
	Total   decimal.Decimal `json:"total"`
}

// NewPriceService creates a new PriceService
func NewPriceService(priceRepo repository.PriceRepository, logger logger.Logger) *PriceService {
	return &PriceService{
		priceRepo: priceRepo,
		logger:    logger.With("service", "prices"),
	}
}

// GetPrices returns the current price list
func (s *PriceService) GetPrices(ctx context.Context) (*models.PriceList, error) {
	prices, err := s.priceRepo.Get(ctx)

	if err != nil {
		return nil, translateError(err, "")
	}

	return prices, nil
}

// UpdatePrices replaces both unit prices. Existing order totals are not recomputed.
func (s *PriceService) UpdatePrices(ctx context.Context, price500g, price1kg decimal.Decimal) (*models.PriceList, error) {
	prices, err := models.NewPriceList(price500g, price1kg)

	if err != nil {
		return nil, translateError(err, "")
	}

	if err := s.priceRepo.Save(ctx, prices); err != nil {
		return nil, translateError(err, "")
	}

	s.logger.Info("Prices updated",
		"price500g", prices.Price500g.StringFixed(2),
		"price1kg", prices.Price1kg.StringFixed(2))

	return prices, nil
}

// Quote computes the total the given quantities would cost at current prices
func (s *PriceService) Quote(ctx context.Context, qty500g, qty1kg int) (*Quote, error) {
	if qty500g < 0 || qty1kg < 0 {
		return nil, translateError(models.ErrNegativeQuantity, "")
	}

	prices, err := s.GetPrices(ctx)

	if err != nil {
		return nil, err
	}

	return &Quote{
		Qty500g: qty500g,
		Qty1kg:  qty1kg,
		Total:   prices.Total(qty500g, qty1kg),
	}, nil
}
