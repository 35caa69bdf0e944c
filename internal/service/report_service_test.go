package service

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaidashi/dessert-order-tracker/internal/models"
	"github.com/vaidashi/dessert-order-tracker/internal/report"
	apperrors "github.com/vaidashi/dessert-order-tracker/pkg/errors"
	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
)

func newReportService(orders []*models.Order) *ReportService {
	orderRepo := &mockOrderRepository{}
	orderRepo.On("GetAll", context.Background()).Return(orders, nil)

	priceRepo := &mockPriceRepository{}
	priceRepo.On("Get", context.Background()).Return(models.DefaultPriceList(), nil)

	s := NewReportService(orderRepo, priceRepo, "Rs", logger.NewNop())
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestReportService_Dashboard(t *testing.T) {
	s := newReportService([]*models.Order{
		storedOrder("a", "2024-05-01"),
		storedOrder("b", "2024-05-02"),
	})

	d, err := s.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, d.TotalOrders)
	assert.Equal(t, 1, d.OrdersToday)
	assert.True(t, d.TotalSales.Equal(decimal.NewFromInt(1000)))
	assert.True(t, d.SalesToday.Equal(decimal.NewFromInt(500)))
}

func TestReportService_Charts(t *testing.T) {
	s := newReportService([]*models.Order{storedOrder("a", "2024-05-01")})

	var sales, revenue bytes.Buffer
	require.NoError(t, s.SalesChart(context.Background(), &sales))
	require.NoError(t, s.RevenueChart(context.Background(), &revenue))

	assert.NotZero(t, sales.Len())
	assert.NotZero(t, revenue.Len())
}

func TestReportService_ChartsWithoutOrders(t *testing.T) {
	s := newReportService(nil)

	err := s.SalesChart(context.Background(), &bytes.Buffer{})
	assert.Equal(t, http.StatusNotFound, apperrors.StatusCode(err))
	assert.ErrorIs(t, err, report.ErrNoData)

	err = s.RevenueChart(context.Background(), &bytes.Buffer{})
	assert.Equal(t, http.StatusNotFound, apperrors.StatusCode(err))
}
