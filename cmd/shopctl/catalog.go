package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func catalogCmd(getApp func() (*app, error)) *cobra.Command {
	var keyword string
	var page int

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the product catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}

			products, err := a.client.Products(cmd.Context(), keyword, page)
			if err != nil {
				return err
			}
			if len(products) == 0 {
				fmt.Println("No products found")
				return nil
			}
			for _, p := range products {
				fmt.Printf("%-30s %10s  %s\n", p.Name, formatCents(p.PriceCents), p.Slug)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&keyword, "keyword", "", "Search keyword")
	cmd.Flags().IntVar(&page, "page", 1, "Catalog page")

	cmd.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}

			categories, err := a.client.Categories(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range categories {
				fmt.Printf("%-30s %s\n", c.Name, c.Slug)
			}
			return nil
		},
	})
	return cmd
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
