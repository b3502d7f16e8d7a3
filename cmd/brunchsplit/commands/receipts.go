package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/brunchsplit/internal/present"
	"github.com/mmynk/brunchsplit/internal/receipt"
	"github.com/mmynk/brunchsplit/internal/storage/sqlite"
)

func receiptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receipts",
		Short: "Manage the receipt library",
	}
	cmd.AddCommand(receiptsImportCmd(), receiptsListCmd(), receiptsShowCmd(), receiptsDeleteCmd())
	return cmd
}

func receiptsImportCmd() *cobra.Command {
	var builtin bool
	cmd := &cobra.Command{
		Use:   "import [FILE]",
		Short: "Store a JSON receipt (or the built-in brunch with --builtin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := receipt.Brunch()
			switch {
			case len(args) == 1:
				var err error
				if r, err = receipt.LoadFile(args[0]); err != nil {
					return err
				}
			case !builtin:
				return fmt.Errorf("give a receipt file or --builtin")
			}

			store, err := sqlite.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.CreateReceipt(cmd.Context(), r); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.ID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&builtin, "builtin", false, "import the built-in brunch receipt")
	return cmd
}

func receiptsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored receipts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sqlite.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			receipts, err := store.ListReceipts(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSUBTOTAL\tCREATED")
			for _, r := range receipts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					r.ID, r.Title, present.Money(r.Totals.Subtotal),
					time.Unix(r.CreatedAt, 0).Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func receiptsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print a stored receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sqlite.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			r, err := store.GetReceipt(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", r.Title)
			for i, g := range r.Guests {
				marker := ""
				if i == r.EditableGuest {
					marker = " (editable)"
				}
				fmt.Fprintf(out, "  guest %d: %s%s\n", i, g.DisplayName(), marker)
			}
			fmt.Fprintln(out)
			for i, item := range r.Items {
				fmt.Fprintf(out, "  %3d  %-20s %8s\n", i, item.Name, present.Amount(item.Price))
			}
			fmt.Fprintf(out, "\n  subtotal %s  tax %s  tip %s\n",
				present.Money(r.Totals.Subtotal), present.Money(r.Totals.Tax), present.Money(r.Totals.Tip))
			return nil
		},
	}
}

func receiptsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a stored receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sqlite.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()
			return store.DeleteReceipt(cmd.Context(), args[0])
		},
	}
}
