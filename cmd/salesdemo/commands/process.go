package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sghaida/graphioc/di"
	"github.com/sghaida/graphioc/examples/sales"
)

func newProcessCommand(a *app) *cobra.Command {
	var (
		quantity int
		stub     bool
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process the demo sale",
		Long: `Resolve the SalesProcessor from the container and process one sale of
"Example Product" to Foo Bar.

Quantities above 2 are out of stock in the production inventory.`,
		Example: `  # Process the demo sale
  salesdemo process

  # Exceed the stock limit
  salesdemo process --quantity 3

  # Use the always-succeeding stubs
  salesdemo process --stub --quantity 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.container(stub)
			if err != nil {
				return err
			}
			processor, err := di.Resolve[sales.SalesProcessor](c)
			if err != nil {
				return err
			}

			sale := sales.DemoSale(time.Now())
			for p := range sale.ProductsBoughtWithQuantity {
				sale.ProductsBoughtWithQuantity[p] = quantity
			}
			if err := sale.Validate(); err != nil {
				return fmt.Errorf("invalid sale: %w", err)
			}

			results := processor.ProcessSales([]sales.Sale{sale})
			fmt.Fprintf(cmd.OutOrStdout(), "Sale %s was processed successfully: %t\n", sale, results[sale.SaleID])
			return nil
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 2, "units of the demo product")
	cmd.Flags().BoolVar(&stub, "stub", false, "use the stub databases")

	return cmd
}
