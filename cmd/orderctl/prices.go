package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/vaidashi/dessert-order-tracker/internal/app"
)

func pricesCommand() *cli.Command {
	return &cli.Command{
		Name:  "prices",
		Usage: "show or change the unit prices",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print the current prices",
				Action: action(func(ctx context.Context, c *cli.Context, a *app.App) error {
					prices, err := a.Prices.GetPrices(ctx)

					if err != nil {
						return err
					}

					return writePrices(c.App.Writer, prices)
				}),
			},
			{
				Name:  "set",
				Usage: "replace both prices; existing orders keep their totals",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "500g", Usage: "price of a 500g portion", Required: true},
					&cli.StringFlag{Name: "1kg", Usage: "price of a 1kg portion", Required: true},
				},
				Action: action(func(ctx context.Context, c *cli.Context, a *app.App) error {
					p500, err := decimal.NewFromString(c.String("500g"))

					if err != nil {
						return fmt.Errorf("invalid 500g price %q", c.String("500g"))
					}

					p1kg, err := decimal.NewFromString(c.String("1kg"))

					if err != nil {
						return fmt.Errorf("invalid 1kg price %q", c.String("1kg"))
					}

					prices, err := a.Prices.UpdatePrices(ctx, p500, p1kg)

					if err != nil {
						return err
					}

					fmt.Fprintln(c.App.Writer, "Prices updated")
					return writePrices(c.App.Writer, prices)
				}),
			},
		},
	}
}

func quoteCommand() *cli.Command {
	return &cli.Command{
		Name:  "quote",
		Usage: "preview the total for some quantities at current prices",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "qty-500g", Usage: "number of 500g portions"},
			&cli.IntFlag{Name: "qty-1kg", Usage: "number of 1kg portions"},
		},
		Action: action(func(ctx context.Context, c *cli.Context, a *app.App) error {
			quote, err := a.Prices.Quote(ctx, c.Int("qty-500g"), c.Int("qty-1kg"))

			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "Total: %s\n", quote.Total.StringFixed(2))
			return nil
		}),
	}
}
