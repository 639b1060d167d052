// Package auth implements the credential service: password hashing, user
// registration and login verification.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dkravets812/invtrack/internal/domain/models"
	"github.com/dkravets812/invtrack/internal/storage"
)

// UserStore is the slice of the store the credential service needs.
type UserStore interface {
	SaveUser(ctx context.Context, username, passwordHash string) error
	UserByUsername(ctx context.Context, username string) (*models.User, error)
}

type Service struct {
	users  UserStore
	logger *slog.Logger
}

func New(users UserStore, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		logger: logger,
	}
}

// HashPassword returns the hex-encoded SHA-256 digest of password. The digest
// is deterministic: stored credentials are compared by hashing the login
// attempt with this same function, never by comparing plaintext.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register stores a new user under the hash of password. A taken username
// surfaces as storage.ErrUserExists; the caller can branch on it with
// errors.Is to show a targeted message.
func (s *Service) Register(ctx context.Context, username, password string) error {
	const op = "auth.Register"

	if err := s.users.SaveUser(ctx, username, HashPassword(password)); err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			s.logger.Warn("username already taken", slog.String("username", username))
		} else {
			s.logger.Error("failed to save user", "error", err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Info("registered new user", slog.String("username", username))

	return nil
}

// Authenticate reports whether a stored user matches username and password.
// An unknown username is not an error, just a false result.
func (s *Service) Authenticate(ctx context.Context, username, password string) (bool, error) {
	const op = "auth.Authenticate"

	user, err := s.users.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return user.PasswordHash == HashPassword(password), nil
}
