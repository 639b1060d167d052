package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dkravets812/invtrack/cmd/invtrack/output"
	"github.com/dkravets812/invtrack/internal/config"
	"github.com/dkravets812/invtrack/internal/lib/session"
	"github.com/dkravets812/invtrack/internal/storage/sqlite"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

var (
	configPath string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "invtrack",
	Short: "invtrack - single-user inventory tracker",
	Long: `invtrack keeps product records (name, quantity, price) in a local
SQLite database, flags products running low on stock, and exports recorded
sales to CSV. Inventory commands require a prior login.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.MustLoad(configPath)
		logger = setupLogger(cfg.Env)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
	return log
}

// withStorage opens the store, ensures the schema exists and releases the
// handle when fn returns, on every exit path.
func withStorage(fn func(ctx context.Context, store *sqlite.Storage) error) error {
	ctx := context.Background()

	store, err := sqlite.New(cfg.Storage.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := store.Stop(); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()

	if err := store.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	return fn(ctx, store)
}

// requireSession verifies the saved login token and returns the username it
// belongs to.
func requireSession() (string, error) {
	raw, err := os.ReadFile(cfg.Session.File)
	if err != nil {
		return "", fmt.Errorf("not logged in, run 'invtrack login' first")
	}

	username, err := session.Verify(string(raw), cfg.Session.Secret)
	if err != nil {
		return "", fmt.Errorf("session expired or invalid, run 'invtrack login' again")
	}

	return username, nil
}
