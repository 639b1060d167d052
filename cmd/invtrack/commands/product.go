package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dkravets812/invtrack/cmd/invtrack/output"
	"github.com/dkravets812/invtrack/internal/inventory"
	"github.com/dkravets812/invtrack/internal/storage"
	"github.com/dkravets812/invtrack/internal/storage/sqlite"
)

var (
	productName     string
	productQuantity string
	productPrice    string

	lowStockThreshold int
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage product records",
}

var productAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product to the inventory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireSession(); err != nil {
			return err
		}

		quantity, price, err := parseProductFields()
		if err != nil {
			return err
		}

		return withStorage(func(ctx context.Context, store *sqlite.Storage) error {
			service := inventory.New(store, logger)

			id, err := service.Add(ctx, productName, quantity, price)
			if err != nil {
				return err
			}

			output.Success("added product %q with id %d", productName, id)
			return nil
		})
	},
}

var productEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Replace a product's name, quantity and price",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireSession(); err != nil {
			return err
		}

		id, err := parseProductID(args[0])
		if err != nil {
			return err
		}
		quantity, price, err := parseProductFields()
		if err != nil {
			return err
		}

		return withStorage(func(ctx context.Context, store *sqlite.Storage) error {
			service := inventory.New(store, logger)

			if err := service.Edit(ctx, id, productName, quantity, price); err != nil {
				if errors.Is(err, storage.ErrProductNotFound) {
					return fmt.Errorf("no product with id %d", id)
				}
				return err
			}

			output.Success("updated product %d", id)
			return nil
		})
	},
}

var productDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a product from the inventory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireSession(); err != nil {
			return err
		}

		id, err := parseProductID(args[0])
		if err != nil {
			return err
		}

		return withStorage(func(ctx context.Context, store *sqlite.Storage) error {
			service := inventory.New(store, logger)

			if err := service.Delete(ctx, id); err != nil {
				if errors.Is(err, storage.ErrProductNotFound) {
					return fmt.Errorf("no product with id %d", id)
				}
				return err
			}

			output.Success("deleted product %d", id)
			return nil
		})
	},
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every product in the inventory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireSession(); err != nil {
			return err
		}

		return withStorage(func(ctx context.Context, store *sqlite.Storage) error {
			service := inventory.New(store, logger)

			products, err := service.List(ctx)
			if err != nil {
				return err
			}

			if len(products) == 0 {
				output.Muted("inventory is empty")
				return nil
			}
			fmt.Print(output.ProductTable(products))
			return nil
		})
	},
}

var productLowStockCmd = &cobra.Command{
	Use:   "low-stock",
	Short: "List products whose quantity is below the threshold",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireSession(); err != nil {
			return err
		}

		return withStorage(func(ctx context.Context, store *sqlite.Storage) error {
			service := inventory.New(store, logger)

			products, err := service.LowStock(ctx, lowStockThreshold)
			if err != nil {
				return err
			}

			if len(products) == 0 {
				output.Success("no low stock products")
				return nil
			}
			output.Warning("%d product(s) below %d units", len(products), lowStockThreshold)
			fmt.Print(output.ProductTable(products))
			return nil
		})
	},
}

// parseProductID validates the raw id argument before the core is invoked.
func parseProductID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q, expected an integer", raw)
	}
	return id, nil
}

// parseProductFields coerces the raw quantity and price flags. Rejecting
// non-numeric text is this layer's job, not the core's.
func parseProductFields() (int, float64, error) {
	quantity, err := strconv.Atoi(productQuantity)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid quantity %q, expected an integer", productQuantity)
	}

	price, err := strconv.ParseFloat(productPrice, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid price %q, expected a number", productPrice)
	}

	return quantity, price, nil
}

func init() {
	for _, cmd := range []*cobra.Command{productAddCmd, productEditCmd} {
		cmd.Flags().StringVar(&productName, "name", "", "product name")
		cmd.Flags().StringVar(&productQuantity, "quantity", "", "units in stock")
		cmd.Flags().StringVar(&productPrice, "price", "", "unit price")
		_ = cmd.MarkFlagRequired("name")
		_ = cmd.MarkFlagRequired("quantity")
		_ = cmd.MarkFlagRequired("price")
	}

	productLowStockCmd.Flags().IntVar(&lowStockThreshold, "threshold",
		inventory.DefaultLowStockThreshold, "low stock threshold")

	productCmd.AddCommand(productAddCmd, productEditCmd, productDeleteCmd, productListCmd, productLowStockCmd)
	rootCmd.AddCommand(productCmd)
}
