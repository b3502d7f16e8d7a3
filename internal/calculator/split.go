// Package calculator implements the bill allocation engine.
//
// The engine is a pure function of its inputs: it holds no state and never
// reads from a UI. Each item's price is split evenly among its guests, and
// tax and tip are allocated in proportion to each guest's pre-tax share of
// the receipt subtotal.
package calculator

import (
	"fmt"

	"github.com/mmynk/brunchsplit/internal/models"
)

// Validate checks that every item has at least one guest assigned.
// It checks all items so the caller can report every omission at once.
func Validate(itemCount int, assignment models.Assignment) error {
	var unassigned []int
	for i := 0; i < itemCount; i++ {
		if len(assignment.Guests(i)) == 0 {
			unassigned = append(unassigned, i)
		}
	}
	if len(unassigned) > 0 {
		return &IncompleteAssignmentError{Items: unassigned}
	}
	return nil
}

// Allocate computes how much each guest owes including proportional tax and tip.
//
//	ratio     = guest_pretax / subtotal
//	tax_share = ratio × tax
//	tip_share = ratio × tip
//	total     = guest_pretax + tax_share + tip_share
//
// The ratio is taken against totals.Subtotal as given, not against the sum of
// assigned item prices. If the two differ, the allocated tax and tip will not
// add up to the receipt's tax and tip.
//
// Results are returned in guest order, one per guest, unrounded.
func Allocate(items []models.Item, guests []models.Guest, assignment models.Assignment, totals models.ReceiptTotals) ([]models.GuestResult, error) {
	if err := Validate(len(items), assignment); err != nil {
		return nil, err
	}
	if totals.Subtotal == 0 {
		return nil, ErrZeroSubtotal
	}

	preTax := make([]float64, len(guests))
	for i, item := range items {
		assigned := assignment.Guests(i).Sorted()
		perGuest := ItemShare(item.Price, len(assigned))
		for _, g := range assigned {
			if g < 0 || g >= len(guests) {
				return nil, fmt.Errorf("item %d: guest %d: %w", i, g, ErrGuestOutOfRange)
			}
			preTax[g] += perGuest
		}
	}

	results := make([]models.GuestResult, len(guests))
	for g, guest := range guests {
		ratio := preTax[g] / totals.Subtotal
		// Conversions stop the compiler fusing into FMA, so Total is
		// exactly the sum of the stored fields.
		taxShare := float64(ratio * totals.Tax)
		tipShare := float64(ratio * totals.Tip)
		results[g] = models.GuestResult{
			Guest:    g,
			Name:     guest.DisplayName(),
			PreTax:   preTax[g],
			TaxShare: taxShare,
			TipShare: tipShare,
			Total:    preTax[g] + taxShare + tipShare,
		}
	}
	return results, nil
}

// ItemShare returns what each of count guests pays for an item.
func ItemShare(price float64, count int) float64 {
	return price / float64(count)
}
