package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/brunchsplit/internal/config"
	"github.com/mmynk/brunchsplit/internal/models"
	"github.com/mmynk/brunchsplit/internal/receipt"
	"github.com/mmynk/brunchsplit/internal/storage/sqlite"
	"github.com/mmynk/brunchsplit/pkg/logging"
)

var (
	cfg         config.Config
	dbPath      string
	receiptFile string
	receiptID   string
	logLevel    string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "brunchsplit",
		Short:         "Split a restaurant bill by who ordered what",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.Load()
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))
			if receiptFile != "" && receiptID != "" {
				return fmt.Errorf("--receipt-file and --receipt-id are mutually exclusive")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, "")
		},
	}

	root.PersistentFlags().StringVar(&dbPath, "db", "", "receipt library path (default ~/.brunchsplit/receipts.db)")
	root.PersistentFlags().StringVar(&receiptFile, "receipt-file", "", "load the receipt from a JSON file")
	root.PersistentFlags().StringVar(&receiptID, "receipt-id", "", "load a stored receipt by ID")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (default from LOG_LEVEL)")

	root.AddCommand(tuiCmd(), calcCmd(), serveCmd(), receiptsCmd(), tokenCmd())
	return root
}

// loadReceipt picks the receipt for this run: a stored one, a file, or the
// built-in brunch.
func loadReceipt(ctx context.Context) (*models.Receipt, error) {
	switch {
	case receiptID != "":
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.GetReceipt(ctx, receiptID)
	case receiptFile != "":
		return receipt.LoadFile(receiptFile)
	default:
		return receipt.Brunch(), nil
	}
}
