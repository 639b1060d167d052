// Package sqlite implements the durable store over a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dkravets812/invtrack/internal/domain/models"
	"github.com/dkravets812/invtrack/internal/storage"
	"github.com/mattn/go-sqlite3"
)

// Schema DDL. Creation is conditional so Init stays idempotent.
const (
	createUsers = `CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL
)`

	createProducts = `CREATE TABLE IF NOT EXISTS products (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    price REAL NOT NULL
)`

	// Sales rows are written by a future sale-recording feature; the table
	// exists from day one so exports against a fresh store see "no sales"
	// rather than a missing table.
	createSales = `CREATE TABLE IF NOT EXISTS sales (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    product_id INTEGER NOT NULL,
    quantity INTEGER NOT NULL,
    sale_date TEXT NOT NULL,
    total_price REAL NOT NULL
)`
)

type Storage struct {
	db     *sql.DB
	logger *slog.Logger
}

// New opens the SQLite database at path and verifies the connection. The
// returned Storage owns the handle; callers release it with Stop.
func New(path string, logger *slog.Logger) (*Storage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("database connection error %s", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect database error %s", err)
	}

	return &Storage{db: db, logger: logger}, nil
}

func (s *Storage) Stop() error {
	return s.db.Close()
}

// DB exposes the underlying handle for tests.
func (s *Storage) DB() *sql.DB {
	return s.db
}

// Init creates the users, products and sales tables if they are absent. Safe
// to call on every process start.
func (s *Storage) Init(ctx context.Context) error {
	const op = "storage.sqlite.Init"

	for _, ddl := range []string{createUsers, createProducts, createSales} {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

func (s *Storage) SaveUser(ctx context.Context, username, passwordHash string) error {
	const op = "storage.sqlite.SaveUser"

	stmt, err := s.db.Prepare("INSERT INTO users (username, password) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, username, passwordHash)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.sqlite.UserByUsername"

	var user models.User

	stmt, err := s.db.Prepare("SELECT id, username, password FROM users WHERE username = ?")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	row := stmt.QueryRowContext(ctx, username)
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

func (s *Storage) SaveProduct(ctx context.Context, name string, quantity int, price float64) (int64, error) {
	const op = "storage.sqlite.SaveProduct"

	stmt, err := s.db.Prepare("INSERT INTO products (name, quantity, price) VALUES (?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, name, quantity, price)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) UpdateProduct(ctx context.Context, id int64, name string, quantity int, price float64) error {
	const op = "storage.sqlite.UpdateProduct"

	stmt, err := s.db.Prepare("UPDATE products SET name = ?, quantity = ?, price = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, name, quantity, price, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
	}

	return nil
}

func (s *Storage) DeleteProduct(ctx context.Context, id int64) error {
	const op = "storage.sqlite.DeleteProduct"

	stmt, err := s.db.Prepare("DELETE FROM products WHERE id = ?")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
	}

	return nil
}

func (s *Storage) Products(ctx context.Context) ([]models.Product, error) {
	const op = "storage.sqlite.Products"

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, quantity, price FROM products ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return scanProducts(rows, op)
}

// LowStock returns every product whose quantity is strictly below threshold.
func (s *Storage) LowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	const op = "storage.sqlite.LowStock"

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, quantity, price FROM products WHERE quantity < ? ORDER BY id", threshold)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return scanProducts(rows, op)
}

func scanProducts(rows *sql.Rows, op string) ([]models.Product, error) {
	var products []models.Product

	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.Price); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}

// Sales returns every recorded sale in insertion order. A store whose sales
// table was never created yields storage.ErrSalesUnavailable.
func (s *Storage) Sales(ctx context.Context) ([]models.Sale, error) {
	const op = "storage.sqlite.Sales"

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, product_id, quantity, sale_date, total_price FROM sales ORDER BY id")
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrSalesUnavailable)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		var sale models.Sale
		if err := rows.Scan(&sale.ID, &sale.ProductID, &sale.Quantity, &sale.SaleDate, &sale.TotalPrice); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sales, nil
}
