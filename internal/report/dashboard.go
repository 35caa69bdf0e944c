// Package report aggregates orders into the sales dashboard and draws its charts.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vaidashi/dessert-order-tracker/internal/models"
)

// Dashboard is the sales summary shown to the operator
type Dashboard struct {
	Today            string          `json:"today"`
	TotalOrders      int             `json:"total_orders"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	OrdersToday      int             `json:"orders_today"`
	SalesToday       decimal.Decimal `json:"sales_today"`
	SalesByDate      []DailySales    `json:"sales_by_date"`
	RevenueBreakdown []RevenueShare  `json:"revenue_breakdown"`
}

// DailySales is the sum of order totals for one calendar day
type DailySales struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// RevenueShare is the revenue attributed to one size at current prices
type RevenueShare struct {
	Size    models.Size     `json:"size"`
	Revenue decimal.Decimal `json:"revenue"`
	Percent float64         `json:"percent"`
}

// Summarize builds the dashboard for orders as of today.
// Sales figures sum the stored order totals; the revenue breakdown prices the
// ordered quantities at the current price list.
func Summarize(orders []*models.Order, prices *models.PriceList, today time.Time) *Dashboard {
	day := models.FormatDate(today)

	d := &Dashboard{
		Today:       day,
		TotalOrders: len(orders),
		TotalSales:  decimal.Zero,
		SalesToday:  decimal.Zero,
	}

	byDate := make(map[string]decimal.Decimal)
	quantities := make(map[models.Size]int64)

	for _, o := range orders {
		d.TotalSales = d.TotalSales.Add(o.Total)

		if o.Date == day {
			d.OrdersToday++
			d.SalesToday = d.SalesToday.Add(o.Total)
		}

		if sum, ok := byDate[o.Date]; ok {
			byDate[o.Date] = sum.Add(o.Total)
		} else {
			byDate[o.Date] = o.Total
		}

		for _, size := range models.Sizes() {
			quantities[size] += int64(o.Quantity(size))
		}
	}

	d.SalesByDate = make([]DailySales, 0, len(byDate))

	for date, total := range byDate {
		d.SalesByDate = append(d.SalesByDate, DailySales{Date: date, Total: total.Round(2)})
	}

	sort.Slice(d.SalesByDate, func(i, j int) bool {
		return d.SalesByDate[i].Date < d.SalesByDate[j].Date
	})

	d.RevenueBreakdown = revenueBreakdown(quantities, prices)
	d.TotalSales = d.TotalSales.Round(2)
	d.SalesToday = d.SalesToday.Round(2)

	return d
}

func revenueBreakdown(quantities map[models.Size]int64, prices *models.PriceList) []RevenueShare {
	shares := make([]RevenueShare, 0, len(models.Sizes()))
	total := decimal.Zero

	for _, size := range models.Sizes() {
		revenue := prices.Price(size).Mul(decimal.NewFromInt(quantities[size])).Round(2)
		total = total.Add(revenue)
		shares = append(shares, RevenueShare{Size: size, Revenue: revenue})
	}

	if total.IsZero() {
		return shares
	}

	for i := range shares {
		pct := shares[i].Revenue.Div(total).Mul(decimal.NewFromInt(100)).Round(1)
		shares[i].Percent = pct.InexactFloat64()
	}

	return shares
}
