package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/vaidashi/dessert-order-tracker/internal/models"
	"github.com/vaidashi/dessert-order-tracker/internal/report"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeOrderTable(w io.Writer, orders []*models.Order) error {
	if len(orders) == 0 {
		_, err := fmt.Fprintln(w, "No orders found")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ORDER NO\tDATE\tCUSTOMER\tPHONE\tADDRESS\t500G\t1KG\tTOTAL\tSTATUS")

	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			o.OrderNo, o.Date, o.CustomerName, o.DisplayPhone(), o.Address,
			o.Qty500g, o.Qty1kg, o.Total.StringFixed(2), o.Status)
	}

	return tw.Flush()
}

func writeOrderDetail(w io.Writer, o *models.Order) error {
	tw := newTable(w)

	fmt.Fprintf(tw, "Order No:\t%s\n", o.OrderNo)
	fmt.Fprintf(tw, "Date:\t%s\n", o.Date)
	fmt.Fprintf(tw, "Customer Name:\t%s\n", o.CustomerName)
	fmt.Fprintf(tw, "Phone Number:\t%s\n", o.DisplayPhone())
	fmt.Fprintf(tw, "Address:\t%s\n", o.Address)
	fmt.Fprintf(tw, "500g Quantity:\t%d\n", o.Qty500g)
	fmt.Fprintf(tw, "1kg Quantity:\t%d\n", o.Qty1kg)
	fmt.Fprintf(tw, "Total:\t%s\n", o.Total.StringFixed(2))
	fmt.Fprintf(tw, "Status:\t%s\n", o.Status)

	return tw.Flush()
}

func writePrices(w io.Writer, p *models.PriceList) error {
	tw := newTable(w)

	for _, size := range models.Sizes() {
		fmt.Fprintf(tw, "%s\t%s\n", size, p.Price(size).StringFixed(2))
	}

	return tw.Flush()
}

func writeDashboard(w io.Writer, d *report.Dashboard) error {
	tw := newTable(w)

	fmt.Fprintf(tw, "Total Orders:\t%d\n", d.TotalOrders)
	fmt.Fprintf(tw, "Total Sales:\t%s\n", d.TotalSales.StringFixed(2))
	fmt.Fprintf(tw, "Orders Today:\t%d\n", d.OrdersToday)
	fmt.Fprintf(tw, "Sales Today:\t%s\n", d.SalesToday.StringFixed(2))

	if len(d.SalesByDate) > 0 {
		fmt.Fprintln(tw, "\t")
		fmt.Fprintln(tw, "DATE\tSALES")
		for _, day := range d.SalesByDate {
			fmt.Fprintf(tw, "%s\t%s\n", day.Date, day.Total.StringFixed(2))
		}
	}

	fmt.Fprintln(tw, "\t")
	fmt.Fprintln(tw, "SIZE\tREVENUE\tSHARE")
	for _, share := range d.RevenueBreakdown {
		fmt.Fprintf(tw, "%s\t%s\t%.1f%%\n", share.Size, share.Revenue.StringFixed(2), share.Percent)
	}

	return tw.Flush()
}
