package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/vaidashi/dessert-order-tracker/internal/app"
	"github.com/vaidashi/dessert-order-tracker/internal/models"
	"github.com/vaidashi/dessert-order-tracker/internal/service"
)

func orderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "customer name"},
		&cli.StringFlag{Name: "phone", Aliases: []string{"p"}, Usage: "phone number, digits only"},
		&cli.StringFlag{Name: "address", Aliases: []string{"a"}, Usage: "delivery address"},
		&cli.IntFlag{Name: "qty-500g", Usage: "number of 500g portions"},
		&cli.IntFlag{Name: "qty-1kg", Usage: "number of 1kg portions"},
		&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "Pending, In Progress or Completed"},
	}
}

// detailsFromFlags starts from base and overrides every flag the user set
func detailsFromFlags(c *cli.Context, base models.OrderDetails) models.OrderDetails {
	if c.IsSet("name") {
		base.CustomerName = c.String("name")
	}
	if c.IsSet("phone") {
		base.PhoneNumber = c.String("phone")
	}
	if c.IsSet("address") {
		base.Address = c.String("address")
	}
	if c.IsSet("qty-500g") {
		base.Qty500g = c.Int("qty-500g")
	}
	if c.IsSet("qty-1kg") {
		base.Qty1kg = c.Int("qty-1kg")
	}
	if c.IsSet("status") {
		base.Status = models.OrderStatus(c.String("status"))
	}

	return base
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "record a new order dated today",
		Flags: orderFlags(),
		Action: action(func(ctx context.Context, c *cli.Context, a *app.App) error {
			order, err := a.Orders.CreateOrder(ctx, detailsFromFlags(c, models.OrderDetails{}))

			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "Order %s added, total %s\n", order.OrderNo, order.Total.StringFixed(2))
			return nil
		}),
	}
}

func updateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "change an order; fields not given keep their value",
		ArgsUsage: "<order-no>",
		Flags:     orderFlags(),
		Action: action(func(ctx context.Context, c *cli.Context, a *app.App) error {
			orderNo, err := orderNoArg(c)

			if err != nil {
				return err
			}

			current, err := a.Orders.GetOrder(ctx, orderNo)

			if err != nil {
				return err
			}

			details := detailsFromFlags(c, models.OrderDetails{
				CustomerName: current.CustomerName,
				PhoneNumber:  current.PhoneNumber,
				Address:      current.Address,
				Qty500g:      current.Qty500g,
				Qty1kg:       current.Qty1kg,
				Status:       current.Status,
			})

			order, err := a.Orders.UpdateOrder(ctx, orderNo, details)

			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "Order %s updated, total %s\n", order.OrderNo, order.Total.StringFixed(2))
			return nil
		}),
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "move an order to another status",
		ArgsUsage: "<order-no> <status>",
		Action: action(func(ctx context.Context, c *cli.Context, a *app.App) error {
			if c.NArg() != 2 {
				return fmt.Errorf("expected an order number and a status")
			}

			order, err := a.Orders.UpdateOrderStatus(ctx, c.Args().Get(0), c.Args().Get(1))

			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "Order %s is now %s\n", order.OrderNo, order.Status)
			return nil
		}),
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "remove an order",
		ArgsUsage: "<order-no>",
		Action: action(func(ctx context.Context, c *cli.Context, a *app.App) error {
			orderNo, err := orderNoArg(c)

			if err != nil {
				return err
			}

			if err := a.Orders.DeleteOrder(ctx, orderNo); err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "Order %s deleted\n", orderNo)
			return nil
		}),
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list orders, optionally between two dates (inclusive)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "start date, YYYY-MM-DD"},
			&cli.StringFlag{Name: "to", Usage: "end date, YYYY-MM-DD"},
		},
		Action: action(func(ctx context.Context, c *cli.Context, a *app.App) error {
			orders, err := a.Orders.ListOrders(ctx, service.DateRange{From: c.String("from"), To: c.String("to")})

			if err != nil {
				return err
			}

			return writeOrderTable(c.App.Writer, orders)
		}),
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "print one order",
		ArgsUsage: "<order-no>",
		Action: action(func(ctx context.Context, c *cli.Context, a *app.App) error {
			orderNo, err := orderNoArg(c)

			if err != nil {
				return err
			}

			order, err := a.Orders.GetOrder(ctx, orderNo)

			if err != nil {
				return err
			}

			return writeOrderDetail(c.App.Writer, order)
		}),
	}
}

func receiptCommand() *cli.Command {
	return &cli.Command{
		Name:      "receipt",
		Usage:     "save the receipt image of an order",
		ArgsUsage: "<order-no>",
		Action: action(func(ctx context.Context, c *cli.Context, a *app.App) error {
			orderNo, err := orderNoArg(c)

			if err != nil {
				return err
			}

			path, err := a.Receipts.Generate(ctx, orderNo)

			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "Receipt saved as %s\n", path)
			return nil
		}),
	}
}
