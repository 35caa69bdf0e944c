package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/vaidashi/dessert-order-tracker/internal/app"
	apperrors "github.com/vaidashi/dessert-order-tracker/pkg/errors"
)

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "print sales metrics and write the dashboard charts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out-dir", Value: "reports", Usage: "folder for the chart images"},
		},
		Action: action(func(ctx context.Context, c *cli.Context, a *app.App) error {
			dashboard, err := a.Reports.Dashboard(ctx)

			if err != nil {
				return err
			}

			if err := writeDashboard(c.App.Writer, dashboard); err != nil {
				return err
			}

			dir := c.String("out-dir")

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}

			charts := []struct {
				file   string
				render func(context.Context, io.Writer) error
			}{
				{"sales_by_date.png", a.Reports.SalesChart},
				{"revenue_breakdown.png", a.Reports.RevenueChart},
			}

			for _, chart := range charts {
				var buf bytes.Buffer

				if err := chart.render(ctx, &buf); err != nil {
					if errors.Is(err, apperrors.ErrNotFound) {
						fmt.Fprintf(c.App.Writer, "Skipped %s: %v\n", chart.file, err)
						continue
					}
					return err
				}

				path := filepath.Join(dir, chart.file)

				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}

				fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
			}

			return nil
		}),
	}
}
