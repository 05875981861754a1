package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwhitfield/salespipe/internal/catalog"
	"github.com/mwhitfield/salespipe/internal/common"
)

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Fetch and print the external product catalog",
		Long: `Catalog fetches the product catalog the enrichment stage matches against
and prints every entry. Useful for checking the collaborator boundary when
enrichment match rates look wrong.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := catalog.NewClient(
				viper.GetString("catalog.base_url"),
				viper.GetInt("catalog.limit"),
				viper.GetDuration("catalog.timeout"),
			)

			products, err := client.Fetch(cmd.Context())
			if err != nil {
				return common.NewUserError("catalog fetch failed", err)
			}

			out := cmd.OutOrStdout()
			for _, p := range products {
				fmt.Fprintf(out, "%s | %s | %s | %.2f\n", p.Title, p.Category, p.Brand, p.Rating)
			}
			fmt.Fprintf(out, "\n%d products\n", len(products))

			return nil
		},
	}
}
