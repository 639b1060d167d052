package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/dkravets812/invtrack/cmd/invtrack/output"
	"github.com/dkravets812/invtrack/internal/report"
	"github.com/dkravets812/invtrack/internal/storage/sqlite"
)

var exportPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded sales to a CSV file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireSession(); err != nil {
			return err
		}

		return withStorage(func(ctx context.Context, store *sqlite.Storage) error {
			exporter := report.New(store, logger)

			dest := exportPath
			if dest == "" {
				dest = cfg.Report.Path
			}

			rows, err := exporter.Export(ctx, dest)
			if err != nil {
				if errors.Is(err, report.ErrNoSales) {
					output.Warning("no sales recorded yet, nothing exported")
					return nil
				}
				return err
			}

			output.Success("exported %d sale(s) to %s", rows, dest)
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportPath, "out", "o", "", "destination file (default from config)")
	rootCmd.AddCommand(exportCmd)
}
