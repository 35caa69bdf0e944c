package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/vaidashi/dessert-order-tracker/internal/report"
	"github.com/vaidashi/dessert-order-tracker/internal/repository"
	apperrors "github.com/vaidashi/dessert-order-tracker/pkg/errors"
	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
)

// ReportService builds the sales dashboard and its charts
type ReportService struct {
	orderRepo repository.OrderRepository
	priceRepo repository.PriceRepository
	currency  string
	logger    logger.Logger
	now       func() time.Time
}

// NewReportService creates a new ReportService. currency labels chart axes.
func NewReportService(
	orderRepo repository.OrderRepository,
	priceRepo repository.PriceRepository,
	currency string,
	logger logger.Logger,
) *ReportService {
	return &ReportService{
		orderRepo: orderRepo,
		priceRepo: priceRepo,
		currency:  currency,
		logger:    logger.With("service", "reports"),
		now:       time.Now,
	}
}

// Dashboard summarizes every stored order
func (s *ReportService) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	orders, err := s.orderRepo.GetAll(ctx)

	if err != nil {
		return nil, translateError(err, "")
	}

	prices, err := s.priceRepo.Get(ctx)

	if err != nil {
		return nil, translateError(err, "")
	}

	return report.Summarize(orders, prices, s.now()), nil
}

// SalesChart writes the sales-by-date bar chart to w as PNG
func (s *ReportService) SalesChart(ctx context.Context, w io.Writer) error {
	d, err := s.Dashboard(ctx)

	if err != nil {
		return err
	}

	return s.chartError(report.RenderSalesByDate(w, d.SalesByDate, s.currency))
}

// RevenueChart writes the revenue-by-size pie chart to w as PNG
func (s *ReportService) RevenueChart(ctx context.Context, w io.Writer) error {
	d, err := s.Dashboard(ctx)

	if err != nil {
		return err
	}

	return s.chartError(report.RenderRevenueBreakdown(w, d.RevenueBreakdown))
}

func (s *ReportService) chartError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, report.ErrNoData) {
		return apperrors.NewNotFoundError(err.Error()).WithCause(err)
	}

	s.logger.Error("Failed to render chart", "error", err)
	return apperrors.NewInternalError("failed to render chart").WithCause(err)
}
