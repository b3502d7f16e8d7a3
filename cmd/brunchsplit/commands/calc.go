package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/brunchsplit/internal/calculator"
	"github.com/mmynk/brunchsplit/internal/present"
	"github.com/mmynk/brunchsplit/internal/session"
)

// assignFlag is one parsed --assign flag: an item and its guests. A nil
// guest list means every guest.
type assignFlag struct {
	item   int
	guests []int
}

// parseAssign parses "ITEM=G1,G2" or "ITEM=all". Indices are zero-based.
func parseAssign(s string) (assignFlag, error) {
	itemPart, guestPart, ok := strings.Cut(s, "=")
	if !ok {
		return assignFlag{}, fmt.Errorf("invalid --assign %q: want ITEM=GUEST[,GUEST...]", s)
	}
	item, err := strconv.Atoi(strings.TrimSpace(itemPart))
	if err != nil {
		return assignFlag{}, fmt.Errorf("invalid item in --assign %q: %w", s, err)
	}
	if strings.TrimSpace(guestPart) == "all" {
		return assignFlag{item: item}, nil
	}

	af := assignFlag{item: item, guests: []int{}}
	for _, g := range strings.Split(guestPart, ",") {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		idx, err := strconv.Atoi(g)
		if err != nil {
			return assignFlag{}, fmt.Errorf("invalid guest in --assign %q: %w", s, err)
		}
		af.guests = append(af.guests, idx)
	}
	return af, nil
}

func calcCmd() *cobra.Command {
	var (
		assigns []string
		name    string
		asJSON  bool
		listAll bool
	)
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate shares from --assign flags",
		Example: `  brunchsplit calc --assign 0=0 --assign 1=all --assign 2=3,5 ...
  brunchsplit calc --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadReceipt(cmd.Context())
			if err != nil {
				return err
			}
			sess, err := session.New(r)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if listAll {
				for i, item := range r.Items {
					fmt.Fprintf(out, "%3d  %-20s %8s\n", i, item.Name, present.Amount(item.Price))
				}
				fmt.Fprintln(out)
				for i, g := range r.Guests {
					fmt.Fprintf(out, "%3d  %s\n", i, g.DisplayName())
				}
				return nil
			}

			if cmd.Flags().Changed("name") {
				if err := sess.SetEditableName(name); err != nil {
					return err
				}
			}

			for _, a := range assigns {
				af, err := parseAssign(a)
				if err != nil {
					return err
				}
				guests := af.guests
				if guests == nil {
					guests = make([]int, len(r.Guests))
					for g := range guests {
						guests[g] = g
					}
				}
				for _, g := range guests {
					if err := sess.SetAssigned(af.item, g, true); err != nil {
						return fmt.Errorf("--assign %q: %w", a, err)
					}
				}
			}

			results, err := sess.Calculate()
			if err != nil {
				var incomplete *calculator.IncompleteAssignmentError
				if errors.As(err, &incomplete) {
					return errors.New(present.IncompleteMessage)
				}
				return err
			}

			if asJSON {
				figures := make([]present.Figures, len(results))
				for i, res := range results {
					figures[i] = present.Format(res)
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(figures)
			}
			fmt.Fprint(out, present.Cards(results, r.Totals))
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&assigns, "assign", "a", nil, "ITEM=GUEST[,GUEST...] or ITEM=all (zero-based, repeatable)")
	cmd.Flags().StringVar(&name, "name", "", "last name for the editable guest")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	cmd.Flags().BoolVar(&listAll, "list", false, "list item and guest indices and exit")
	return cmd
}
