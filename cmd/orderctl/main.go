// Command orderctl manages dessert orders, prices, reports and receipts from the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/vaidashi/dessert-order-tracker/internal/app"
	"github.com/vaidashi/dessert-order-tracker/internal/config"
	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "orderctl",
		Usage: "track dessert orders, prices and sales",
		Commands: []*cli.Command{
			addCommand(),
			updateCommand(),
			statusCommand(),
			deleteCommand(),
			listCommand(),
			showCommand(),
			pricesCommand(),
			quoteCommand(),
			reportCommand(),
			receiptCommand(),
		},
	}
}

// action wraps a command body with configuration loading and store setup
func action(run func(ctx context.Context, c *cli.Context, a *app.App) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.Load()

		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		l := logger.NewLogger(cfg.LogLevel, cfg.Env)
		defer l.Sync()

		ctx := c.Context
		a, err := app.New(ctx, cfg, l)

		if err != nil {
			return err
		}
		defer a.Close()

		return run(ctx, c, a)
	}
}

// orderNoArg returns the single positional order number
func orderNoArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one order number, got %d arguments", c.NArg())
	}

	return c.Args().First(), nil
}
