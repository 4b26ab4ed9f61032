package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/shop-service/internal/client/api"
	"github.com/spec-kit/shop-service/internal/client/guard"
)

var errNotAuthorized = errors.New("not authorized; sign in and try again")

func ordersCmd(getApp func() (*app, error)) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List orders (requires a valid session)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}

			// The guard verifies the held token with the server before
			// the protected listing runs; a confirmed-stale session is
			// discarded, a network failure keeps it.
			g := a.userGuard()
			if all {
				g = a.adminGuard()
			}
			if g.Evaluate(cmd.Context()) != guard.StateAuthorized {
				return errNotAuthorized
			}

			if all {
				orders, err := a.client.AllOrders(cmd.Context())
				if err != nil {
					return err
				}
				printOrders(orders)
				return nil
			}

			orders, err := a.client.MyOrders(cmd.Context())
			if err != nil {
				return err
			}
			printOrders(orders)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every order (admin)")
	return cmd
}

func printOrders(orders []api.Order) {
	if len(orders) == 0 {
		fmt.Println("No orders")
		return
	}
	for _, o := range orders {
		fmt.Printf("%s  %-13s %10s  %d item(s)\n",
			o.CreatedAt.Format("2006-01-02"), o.Status, formatCents(o.TotalCents), len(o.Items))
	}
}
