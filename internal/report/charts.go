package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there is nothing to plot
var ErrNoData = errors.New("no sales to chart yet")

var (
	barColor   = drawing.ColorFromHex("87CEEB") // skyblue
	pieColors  = []drawing.Color{drawing.ColorFromHex("4CAF50"), drawing.ColorFromHex("FF9800")}
	chartWidth = 1024
)

// RenderSalesByDate draws the "Sales by Date" bar chart as PNG
func RenderSalesByDate(w io.Writer, sales []DailySales, currency string) error {
	if len(sales) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, 0, len(sales))
	maxTotal := 0.0

	for _, s := range sales {
		v := s.Total.InexactFloat64()
		if v > maxTotal {
			maxTotal = v
		}

		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s (%s)", s.Date, s.Total.StringFixed(2)),
			Value: v,
			Style: chart.Style{
				FillColor:   barColor,
				StrokeColor: barColor.WithAlpha(255),
				StrokeWidth: 1,
			},
		})
	}

	// An explicit range keeps single-bar and all-equal charts drawable
	if maxTotal <= 0 {
		maxTotal = 1
	}

	graph := chart.BarChart{
		Title:      "Sales by Date",
		Width:      chartWidth,
		Height:     512,
		BarWidth:   barWidth(len(bars)),
		Background: chart.Style{Padding: chart.Box{Top: 40, Bottom: 40}},
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Name:  fmt.Sprintf("Total Sales (%s)", currency),
			Range: &chart.ContinuousRange{Min: 0, Max: maxTotal * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	return graph.Render(chart.PNG, w)
}

// RenderRevenueBreakdown draws the "Revenue Breakdown" pie chart as PNG.
// Sizes without revenue are left out.
func RenderRevenueBreakdown(w io.Writer, shares []RevenueShare) error {
	values := make([]chart.Value, 0, len(shares))

	for i, s := range shares {
		if !s.Revenue.IsPositive() {
			continue
		}

		color := pieColors[i%len(pieColors)]
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", s.Size, s.Percent),
			Value: s.Revenue.InexactFloat64(),
			Style: chart.Style{FillColor: color, StrokeColor: drawing.ColorWhite, StrokeWidth: 2},
		})
	}

	if len(values) == 0 {
		return ErrNoData
	}

	pie := chart.PieChart{
		Title:  "Revenue Breakdown",
		Width:  512,
		Height: 512,
		Values: values,
	}

	return pie.Render(chart.PNG, w)
}

func barWidth(bars int) int {
	w := (chartWidth - 120) / (bars * 2)

	switch {
	case w > 80:
		return 80
	case w < 8:
		return 8
	}

	return w
}
