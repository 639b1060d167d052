package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkravets812/invtrack/internal/storage"
)

func setupStorage(t *testing.T) (*Storage, context.Context) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := New(filepath.Join(t.TempDir(), "inventory.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Stop())
	})

	ctx := context.Background()
	require.NoError(t, store.Init(ctx))

	return store, ctx
}

func TestInitIdempotent(t *testing.T) {
	store, ctx := setupStorage(t)

	_, err := store.SaveProduct(ctx, "Widget", 10, 2.50)
	require.NoError(t, err)

	// A second Init must not drop existing data.
	require.NoError(t, store.Init(ctx))

	products, err := store.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Widget", products[0].Name)
}

func TestSaveUserDuplicate(t *testing.T) {
	store, ctx := setupStorage(t)

	require.NoError(t, store.SaveUser(ctx, "alice", "hash1"))

	err := store.SaveUser(ctx, "alice", "hash2")
	require.ErrorIs(t, err, storage.ErrUserExists)

	user, err := store.UserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "hash1", user.PasswordHash, "stored hash must survive a duplicate insert")
}

func TestUserByUsernameMissing(t *testing.T) {
	store, ctx := setupStorage(t)

	_, err := store.UserByUsername(ctx, "nobody")
	require.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestProductCRUD(t *testing.T) {
	store, ctx := setupStorage(t)

	id, err := store.SaveProduct(ctx, "Widget", 10, 2.50)
	require.NoError(t, err)
	require.Positive(t, id)

	id2, err := store.SaveProduct(ctx, "Gadget", 3, 9.99)
	require.NoError(t, err)
	require.Greater(t, id2, id)

	products, err := store.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Widget", products[0].Name, "list order is id ascending")
	assert.Equal(t, 10, products[0].Quantity)
	assert.Equal(t, 2.50, products[0].Price)

	require.NoError(t, store.UpdateProduct(ctx, id, "Widget v2", 4, 3.00))
	products, err = store.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", products[0].Name)
	assert.Equal(t, 4, products[0].Quantity)

	require.NoError(t, store.DeleteProduct(ctx, id))
	products, err = store.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Gadget", products[0].Name)

	require.ErrorIs(t, store.DeleteProduct(ctx, id), storage.ErrProductNotFound)
	require.ErrorIs(t, store.UpdateProduct(ctx, id, "x", 0, 0), storage.ErrProductNotFound)
}

func TestLowStockStrictThreshold(t *testing.T) {
	store, ctx := setupStorage(t)

	_, err := store.SaveProduct(ctx, "plenty", 10, 1.0)
	require.NoError(t, err)
	_, err = store.SaveProduct(ctx, "exactly", 5, 1.0)
	require.NoError(t, err)
	_, err = store.SaveProduct(ctx, "low", 4, 1.0)
	require.NoError(t, err)

	low, err := store.LowStock(ctx, 5)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "low", low[0].Name, "quantity equal to the threshold is not low stock")
}

func TestSalesInsertionOrder(t *testing.T) {
	store, ctx := setupStorage(t)

	sales, err := store.Sales(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales, "fresh store has an empty sales table, not a missing one")

	for i, date := range []string{"2024-05-01", "2024-05-02", "2024-05-03"} {
		_, err := store.DB().ExecContext(ctx,
			"INSERT INTO sales (product_id, quantity, sale_date, total_price) VALUES (?, ?, ?, ?)",
			i+1, 2, date, float64(i+1)*2.5)
		require.NoError(t, err)
	}

	sales, err = store.Sales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 3)
	for i, sale := range sales {
		assert.Equal(t, i+1, sale.ID)
		assert.Equal(t, i+1, sale.ProductID)
	}
	assert.Equal(t, "2024-05-01", sales[0].SaleDate)
	assert.Equal(t, 7.5, sales[2].TotalPrice)
}

func TestSalesTableMissing(t *testing.T) {
	store, ctx := setupStorage(t)

	// A store initialized by an older version of the tool has no sales table.
	_, err := store.DB().ExecContext(ctx, "DROP TABLE sales")
	require.NoError(t, err)

	_, err = store.Sales(ctx)
	require.ErrorIs(t, err, storage.ErrSalesUnavailable)
}
