package main

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xenking/ercm/internal/app"
	"github.com/xenking/ercm/internal/domain/order"
	"github.com/xenking/ercm/internal/handler"
	"github.com/xenking/ercm/internal/storage"
)

func (c *cli) ordersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Inspect orders without starting the console",
	}
	cmd.AddCommand(c.ordersListCommand(), c.ordersShowCommand())
	return cmd
}

func (c *cli) ordersListCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all orders with totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			orders, err := svc.OrderService.List(ctx)
			if err != nil {
				return errors.Wrap(err, "list orders")
			}
			if asJSON {
				var e jx.Encoder
				e.ArrStart()
				for i := range orders {
					e.Raw(storage.EncodeOrder(&orders[i]))
				}
				e.ArrEnd()
				_, err := cmd.OutOrStdout().Write(append(e.Bytes(), '\n'))
				return err
			}

			out, err := app.NewPrinter(c.cfg.Locale, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			f := out.Format()
			out.Title("Bestellungen")
			for _, o := range orders {
				out.Bullet("%s  %s  %s  %s", o.ID, f.Date(o.OrderDate), o.Description, f.Money(o.Price))
			}

			totals := order.TotalsFor(orders)
			if summer, ok := svc.Backend.(storage.Summer); ok {
				revenue, err := summer.Sum(ctx, storage.Orders, string(order.FieldPrice))
				if err != nil {
					zctx.From(ctx).Warn("Sum orders", zap.Error(err))
				} else {
					totals.Revenue = revenue
					if totals.Orders > 0 {
						totals.Average = revenue.Div(decimal.NewFromInt(int64(totals.Orders))).Round(2)
					}
				}
			}
			out.Field("Anzahl:", f.Int(totals.Orders))
			out.Field("Umsatz:", f.Money(totals.Revenue))
			out.Field("Durchschnitt:", f.Money(totals.Average))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored records as a JSON array")
	return cmd
}

func (c *cli) ordersShowCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the summary of one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			o, err := svc.OrderService.Get(ctx, args[0])
			if err != nil {
				return errors.Wrapf(err, "get order %s", args[0])
			}
			if asJSON {
				_, err := cmd.OutOrStdout().Write(append(storage.EncodeOrder(o), '\n'))
				return err
			}

			articles, err := svc.Articles.List(ctx)
			if err != nil {
				return errors.Wrap(err, "list articles")
			}
			clients, err := svc.Clients.List(ctx)
			if err != nil {
				return errors.Wrap(err, "list clients")
			}
			out, err := app.NewPrinter(c.cfg.Locale, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			handler.PrintSummary(out, order.Summarize(o, articles, clients))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored record as JSON")
	return cmd
}
