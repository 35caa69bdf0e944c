package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaidashi/dessert-order-tracker/internal/models"
)

func order(date string, q500, q1kg int, total int64) *models.Order {
	return &models.Order{
		OrderNo: "o-" + date,
		Date:    date,
		Qty500g: q500,
		Qty1kg:  q1kg,
		Total:   decimal.NewFromInt(total),
		Status:  models.OrderStatusPending,
	}
}

func TestSummarize(t *testing.T) {
	today := time.Date(2024, 5, 2, 15, 0, 0, 0, time.UTC)
	orders := []*models.Order{
		order("2024-05-02", 1, 0, 500),
		order("2024-05-01", 0, 1, 1000),
		order("2024-05-02", 2, 1, 2000),
	}

	d := Summarize(orders, models.DefaultPriceList(), today)

	assert.Equal(t, "2024-05-02", d.Today)
	assert.Equal(t, 3, d.TotalOrders)
	assert.True(t, d.TotalSales.Equal(decimal.NewFromInt(3500)))
	assert.Equal(t, 2, d.OrdersToday)
	assert.True(t, d.SalesToday.Equal(decimal.NewFromInt(2500)))

	require.Len(t, d.SalesByDate, 2)
	assert.Equal(t, "2024-05-01", d.SalesByDate[0].Date)
	assert.True(t, d.SalesByDate[0].Total.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "2024-05-02", d.SalesByDate[1].Date)
	assert.True(t, d.SalesByDate[1].Total.Equal(decimal.NewFromInt(2500)))

	// 3 × 500 and 2 × 1000 at current prices
	require.Len(t, d.RevenueBreakdown, 2)
	assert.Equal(t, models.Size500g, d.RevenueBreakdown[0].Size)
	assert.True(t, d.RevenueBreakdown[0].Revenue.Equal(decimal.NewFromInt(1500)))
	assert.InDelta(t, 42.9, d.RevenueBreakdown[0].Percent, 0.01)
	assert.True(t, d.RevenueBreakdown[1].Revenue.Equal(decimal.NewFromInt(2000)))
	assert.InDelta(t, 57.1, d.RevenueBreakdown[1].Percent, 0.01)
}

func TestSummarize_Empty(t *testing.T) {
	d := Summarize(nil, models.DefaultPriceList(), time.Now())

	assert.Zero(t, d.TotalOrders)
	assert.True(t, d.TotalSales.IsZero())
	assert.Empty(t, d.SalesByDate)
	for _, s := range d.RevenueBreakdown {
		assert.Zero(t, s.Percent)
	}
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRenderSalesByDate(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSalesByDate(&buf, []DailySales{
		{Date: "2024-05-01", Total: decimal.NewFromInt(1000)},
		{Date: "2024-05-02", Total: decimal.NewFromInt(2500)},
	}, "Rs")

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderSalesByDate_SingleDay(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSalesByDate(&buf, []DailySales{{Date: "2024-05-01", Total: decimal.NewFromInt(500)}}, "Rs")

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderSalesByDate_NoData(t *testing.T) {
	assert.ErrorIs(t, RenderSalesByDate(&bytes.Buffer{}, nil, "Rs"), ErrNoData)
}

func TestRenderRevenueBreakdown(t *testing.T) {
	var buf bytes.Buffer
	err := RenderRevenueBreakdown(&buf, []RevenueShare{
		{Size: models.Size500g, Revenue: decimal.NewFromInt(1500), Percent: 42.9},
		{Size: models.Size1kg, Revenue: decimal.Zero},
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderRevenueBreakdown_NoRevenue(t *testing.T) {
	err := RenderRevenueBreakdown(&bytes.Buffer{}, []RevenueShare{
		{Size: models.Size500g, Revenue: decimal.Zero},
		{Size: models.Size1kg, Revenue: decimal.Zero},
	})

	assert.ErrorIs(t, err, ErrNoData)
}
