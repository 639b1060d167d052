// Package inventory implements product CRUD and the low-stock rule on top of
// an injected product store.
package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dkravets812/invtrack/internal/domain/models"
)

// DefaultLowStockThreshold is used when the caller does not supply one.
// A product is low on stock when its quantity is strictly below the threshold.
const DefaultLowStockThreshold = 5

// ProductStore is the slice of the store the product service needs. Zero-row
// updates and deletes surface as storage.ErrProductNotFound.
type ProductStore interface {
	SaveProduct(ctx context.Context, name string, quantity int, price float64) (int64, error)
	UpdateProduct(ctx context.Context, id int64, name string, quantity int, price float64) error
	DeleteProduct(ctx context.Context, id int64) error
	Products(ctx context.Context) ([]models.Product, error)
	LowStock(ctx context.Context, threshold int) ([]models.Product, error)
}

type Service struct {
	products ProductStore
	logger   *slog.Logger
}

func New(products ProductStore, logger *slog.Logger) *Service {
	return &Service{
		products: products,
		logger:   logger,
	}
}

// Add inserts a product and returns the id the store assigned. Quantity and
// price are persisted as given; validating raw user input happens before this
// layer is called.
func (s *Service) Add(ctx context.Context, name string, quantity int, price float64) (int64, error) {
	const op = "inventory.Add"

	id, err := s.products.SaveProduct(ctx, name, quantity, price)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Info("added product",
		slog.Int64("id", id),
		slog.String("name", name),
		slog.Int("quantity", quantity),
	)

	return id, nil
}

// Edit replaces all three business fields of the product matching id.
func (s *Service) Edit(ctx context.Context, id int64, name string, quantity int, price float64) error {
	const op = "inventory.Edit"

	if err := s.products.UpdateProduct(ctx, id, name, quantity, price); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Info("edited product", slog.Int64("id", id))

	return nil
}

// Delete removes the product matching id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	const op = "inventory.Delete"

	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Info("deleted product", slog.Int64("id", id))

	return nil
}

// List returns every stored product, id ascending.
func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	const op = "inventory.List"

	products, err := s.products.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}

// LowStock returns every product with quantity strictly below threshold.
func (s *Service) LowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	const op = "inventory.LowStock"

	products, err := s.products.LowStock(ctx, threshold)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}
