package commands

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sghaida/graphioc/di/fixture"
	"github.com/sghaida/graphioc/examples/sales"
)

// saleReport is the rendered form of one generated sale.
type saleReport struct {
	SaleID    string       `yaml:"sale_id"`
	Customer  string       `yaml:"customer"`
	Email     string       `yaml:"email,omitempty"`
	Date      string       `yaml:"date"`
	Total     string       `yaml:"total"`
	Processed bool         `yaml:"processed"`
	Lines     []lineReport `yaml:"lines"`
}

type lineReport struct {
	Product  string `yaml:"product"`
	Price    string `yaml:"price"`
	Quantity int    `yaml:"quantity"`
}

func newGenerateCommand(a *app) *cobra.Command {
	var (
		count       int
		maxQuantity int
		stub        bool
		output      string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Synthesize random sales and process them",
		Long: `Generate sales with the fixture and process them through the resolved
SalesProcessor. Line quantities are drawn from 1 to --max-quantity, so values
above 2 exercise the out-of-stock path of the production inventory.

Set seed in the config file or GRAPHIOC_SEED for reproducible output.`,
		Example: `  # Five sales as text
  salesdemo generate

  # Ten sales as YAML, never out of stock
  salesdemo generate --count 10 --max-quantity 2 --output yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output != "text" && output != "yaml" {
				return fmt.Errorf("unknown output format %q (want text or yaml)", output)
			}
			if maxQuantity < 1 {
				return fmt.Errorf("max-quantity must be at least 1, got %d", maxQuantity)
			}

			c, err := a.container(stub)
			if err != nil {
				return err
			}
			opts := append(a.cfg.FixtureOptions(), fixture.WithKindGenerator(reflect.Int, func(src *fixture.Source) any {
				return src.Between(1, maxQuantity)
			}))
			f := fixture.Wrap(c, opts...)

			generated, err := fixture.CreateMany[sales.Sale](f, count)
			if err != nil {
				return fmt.Errorf("generate sales: %w", err)
			}
			processor, err := fixture.Create[sales.SalesProcessor](f)
			if err != nil {
				return err
			}
			results := processor.ProcessSales(generated)

			reports := make([]saleReport, 0, len(generated))
			for _, s := range generated {
				r, err := newSaleReport(s, results[s.SaleID])
				if err != nil {
					return err
				}
				reports = append(reports, r)
			}
			a.log.Debug().Int("count", len(reports)).Str("output", output).Msg("sales generated")

			if output == "yaml" {
				return writeYAML(cmd.OutOrStdout(), reports)
			}
			writeText(cmd.OutOrStdout(), reports)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 5, "number of sales to generate")
	cmd.Flags().IntVar(&maxQuantity, "max-quantity", 3, "largest quantity per line")
	cmd.Flags().BoolVar(&stub, "stub", false, "use the stub databases")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, yaml)")

	return cmd
}

func newSaleReport(s sales.Sale, processed bool) (saleReport, error) {
	total, err := s.TotalCost()
	if err != nil {
		return saleReport{}, fmt.Errorf("total of sale %s: %w", s.SaleID, err)
	}
	r := saleReport{
		SaleID:    s.SaleID.String(),
		Date:      s.TransactionDate.Format(time.RFC3339),
		Total:     total.String(),
		Processed: processed,
	}
	if s.Customer != nil {
		r.Customer = s.Customer.String()
		if s.Customer.Email != nil {
			r.Email = s.Customer.Email.String()
		}
	}
	for p, qty := range s.ProductsBoughtWithQuantity {
		if p == nil {
			continue
		}
		r.Lines = append(r.Lines, lineReport{Product: p.ProductName, Price: p.RetailPrice.String(), Quantity: qty})
	}
	sort.Slice(r.Lines, func(i, j int) bool { return r.Lines[i].Product < r.Lines[j].Product })
	return r, nil
}

func writeYAML(w io.Writer, reports []saleReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func writeText(w io.Writer, reports []saleReport) {
	for _, r := range reports {
		fmt.Fprintf(w, "Sale %s__%s\n", r.SaleID, r.Customer)
		fmt.Fprintf(w, "  date:      %s\n", r.Date)
		for _, l := range r.Lines {
			fmt.Fprintf(w, "  %-32s %10s x %d\n", l.Product, l.Price, l.Quantity)
		}
		fmt.Fprintf(w, "  total:     %s\n", r.Total)
		fmt.Fprintf(w, "  processed: %t\n", r.Processed)
	}
}
