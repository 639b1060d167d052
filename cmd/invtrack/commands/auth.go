package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dkravets812/invtrack/cmd/invtrack/output"
	"github.com/dkravets812/invtrack/internal/auth"
	"github.com/dkravets812/invtrack/internal/lib/session"
	"github.com/dkravets812/invtrack/internal/storage"
	"github.com/dkravets812/invtrack/internal/storage/sqlite"
)

var password string

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create a new user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		pass, err := readPassword()
		if err != nil {
			return err
		}

		return withStorage(func(ctx context.Context, store *sqlite.Storage) error {
			service := auth.New(store, logger)

			if err := service.Register(ctx, username, pass); err != nil {
				if errors.Is(err, storage.ErrUserExists) {
					return fmt.Errorf("username %q already exists", username)
				}
				return err
			}

			output.Success("registered user %q", username)
			return nil
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and start a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		pass, err := readPassword()
		if err != nil {
			return err
		}

		return withStorage(func(ctx context.Context, store *sqlite.Storage) error {
			service := auth.New(store, logger)

			ok, err := service.Authenticate(ctx, username, pass)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("invalid username or password")
			}

			token, err := session.NewToken(username, cfg.Session.Secret, cfg.Session.TTL)
			if err != nil {
				return fmt.Errorf("failed to create session: %w", err)
			}
			if err := os.WriteFile(cfg.Session.File, []byte(token), 0o600); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			output.Success("welcome, %s", username)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.Remove(cfg.Session.File); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove session: %w", err)
		}
		output.Muted("logged out")
		return nil
	},
}

// readPassword takes the --password flag when given, otherwise prompts on
// stdin.
func readPassword() (string, error) {
	if password != "" {
		return password, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	for _, cmd := range []*cobra.Command{registerCmd, loginCmd} {
		cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	}
	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd)
}
