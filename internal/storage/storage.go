// Package storage defines the error taxonomy shared by store implementations
// and their callers.
package storage

import "errors"

var (
	// ErrUserExists is returned when registration hits the unique username
	// constraint.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound is returned when no user matches the given username.
	ErrUserNotFound = errors.New("user not found")

	// ErrProductNotFound is returned by edit and delete when no row matches
	// the given product id.
	ErrProductNotFound = errors.New("product not found")

	// ErrSalesUnavailable is returned when the sales table does not exist in
	// the store.
	ErrSalesUnavailable = errors.New("sales table does not exist")
)
