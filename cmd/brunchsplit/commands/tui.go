package commands

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mmynk/brunchsplit/internal/session"
	"github.com/mmynk/brunchsplit/internal/tui"
	"github.com/mmynk/brunchsplit/pkg/logging"
)

func tuiCmd() *cobra.Command {
	var logFile string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Assign items interactively and calculate shares",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, logFile)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs here while the UI owns the terminal")
	return cmd
}

func runTUI(cmd *cobra.Command, logFile string) error {
	// the alt screen owns stderr; logs go to a file or nowhere
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logging.SetupWriter(f, logging.ParseLevel(cfg.LogLevel), false)
	} else {
		logging.Discard()
	}

	r, err := loadReceipt(cmd.Context())
	if err != nil {
		return err
	}
	sess, err := session.New(r)
	if err != nil {
		return err
	}
	slog.Info("Session started", "receipt", r.Title, "guests", len(r.Guests), "items", len(r.Items))

	p := tea.NewProgram(tui.NewModel(sess), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
