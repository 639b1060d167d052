// Package report extracts recorded sales into a delimited text file.
package report

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/dkravets812/invtrack/internal/domain/models"
)

// ErrNoSales is returned when the store holds no sales. The destination file
// is left untouched in that case; callers can tell "no data" apart from
// "wrote a 0-row file".
var ErrNoSales = errors.New("no sales to export")

// Header matches the report layout of the legacy system, column for column.
var Header = []string{"Sale ID", "Product ID", "Quantity", "Sale Date", "Total Price"}

// SaleStore is the slice of the store the exporter needs.
type SaleStore interface {
	Sales(ctx context.Context) ([]models.Sale, error)
}

type Exporter struct {
	sales  SaleStore
	logger *slog.Logger
}

func New(sales SaleStore, logger *slog.Logger) *Exporter {
	return &Exporter{
		sales:  sales,
		logger: logger,
	}
}

// Export writes every recorded sale to dest as CSV, header first, rows in
// store insertion order, and returns the number of data rows written. Store
// and I/O failures come back wrapped; they never panic the process.
func (e *Exporter) Export(ctx context.Context, dest string) (int, error) {
	const op = "report.Export"

	sales, err := e.sales.Sales(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if len(sales) == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrNoSales)
	}

	file, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)

	if err := w.Write(Header); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	for _, sale := range sales {
		record := []string{
			strconv.Itoa(sale.ID),
			strconv.Itoa(sale.ProductID),
			strconv.Itoa(sale.Quantity),
			sale.SaleDate,
			strconv.FormatFloat(sale.TotalPrice, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := file.Close(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	e.logger.Info("exported sales report",
		slog.String("dest", dest),
		slog.Int("rows", len(sales)),
	)

	return len(sales), nil
}
