package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/dkravets812/invtrack/internal/domain/models"
	"github.com/dkravets812/invtrack/internal/storage"
)

// FakeUserStore implements the minimal storage methods needed for auth.
type FakeUserStore struct {
	users  map[string]*models.User
	nextID int
	failed bool
}

func NewFakeUserStore() *FakeUserStore {
	return &FakeUserStore{
		users:  make(map[string]*models.User),
		nextID: 1,
	}
}

func (fs *FakeUserStore) SaveUser(ctx context.Context, username, passwordHash string) error {
	if fs.failed {
		return fmt.Errorf("disk unavailable")
	}
	if _, ok := fs.users[username]; ok {
		return storage.ErrUserExists
	}
	fs.users[username] = &models.User{
		ID:           fs.nextID,
		Username:     username,
		PasswordHash: passwordHash,
	}
	fs.nextID++
	return nil
}

func (fs *FakeUserStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	if fs.failed {
		return nil, fmt.Errorf("disk unavailable")
	}
	if user, ok := fs.users[username]; ok {
		return user, nil
	}
	return nil, storage.ErrUserNotFound
}

func newTestService(store *FakeUserStore) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, logger)
}

func TestHashPasswordDeterministic(t *testing.T) {
	if HashPassword("pw") != HashPassword("pw") {
		t.Error("expected identical hashes for identical passwords")
	}
	if HashPassword("pw1") == HashPassword("pw2") {
		t.Error("expected different hashes for different passwords")
	}
	if HashPassword("pw") == "pw" {
		t.Error("hash must not equal the plaintext")
	}
}

func TestHashPasswordFormat(t *testing.T) {
	// Hex SHA-256, compatible with databases written by the legacy tool.
	got := HashPassword("admin")
	want := "8c6976e5b5410415bde908bd4dee15dfb167a9c873fc4bb8a81f6f2ab448a918"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	store := NewFakeUserStore()
	service := newTestService(store)
	ctx := context.Background()

	if err := service.Register(ctx, "alice", "pw"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	ok, err := service.Authenticate(ctx, "alice", "pw")
	if err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}
	if !ok {
		t.Error("expected authentication to succeed with correct password")
	}

	ok, err = service.Authenticate(ctx, "alice", "wrong")
	if err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}
	if ok {
		t.Error("expected authentication to fail with wrong password")
	}
}

func TestAuthenticateUnknownUser(t *testing.T) {
	service := newTestService(NewFakeUserStore())

	ok, err := service.Authenticate(context.Background(), "nobody", "pw")
	if err != nil {
		t.Fatalf("unknown user must not be an error, got %v", err)
	}
	if ok {
		t.Error("expected authentication to fail for unknown user")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	store := NewFakeUserStore()
	service := newTestService(store)
	ctx := context.Background()

	if err := service.Register(ctx, "alice", "pw"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	firstHash := store.users["alice"].PasswordHash

	err := service.Register(ctx, "alice", "other")
	if !errors.Is(err, storage.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if store.users["alice"].PasswordHash != firstHash {
		t.Error("first user's stored hash must be unchanged after a duplicate registration")
	}
}

func TestAuthenticateStorageFailure(t *testing.T) {
	store := NewFakeUserStore()
	store.failed = true
	service := newTestService(store)

	if _, err := service.Authenticate(context.Background(), "alice", "pw"); err == nil {
		t.Error("expected storage failure to propagate")
	}
}
