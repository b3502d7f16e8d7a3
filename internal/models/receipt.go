package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoGuests        = errors.New("receipt must have at least one guest")
	ErrNoItems         = errors.New("receipt must have at least one item")
	ErrNegativePrice   = errors.New("item price cannot be negative")
	ErrInvalidSubtotal = errors.New("subtotal must be greater than zero")
	ErrNegativeExtras  = errors.New("tax and tip cannot be negative")
	ErrEditableGuest   = errors.New("editable guest out of range")
)

// Guest represents one participant in the bill split.
type Guest struct {
	// First is the guest's first name.
	First string `json:"first"`

	// Last is an optional last name. For the editable guest this is the
	// field the user changes.
	Last string `json:"last,omitempty"`
}

// DisplayName returns "First Last", or just First when Last is empty.
func (g Guest) DisplayName() string {
	if g.Last == "" {
		return g.First
	}
	return g.First + " " + g.Last
}

// Item represents a single unit line on the receipt.
// Multi-quantity lines are decomposed into one Item per unit.
type Item struct {
	// Name is the item description (e.g., "Espresso"). Not unique.
	Name string `json:"name"`

	// Price is the pre-tax, pre-tip price of one unit.
	Price float64 `json:"price"`
}

// ReceiptTotals holds the receipt-level amounts copied from the paper receipt.
type ReceiptTotals struct {
	// Subtotal is the pre-tax total printed on the receipt. It is expected
	// to equal the sum of item prices but is never recomputed from them.
	Subtotal float64 `json:"subtotal"`

	// Tax is the total tax charged.
	Tax float64 `json:"tax"`

	// Tip is the total tip paid.
	Tip float64 `json:"tip"`
}

// Receipt is the full static input to one splitting session.
type Receipt struct {
	// ID is the storage identifier (UUID format). Empty for receipts that
	// were never stored.
	ID string `json:"id,omitempty"`

	// Title is a human-readable name, e.g. "Sunday Brunch".
	Title string `json:"title"`

	// Guests are the participants, in display order.
	Guests []Guest `json:"guests"`

	// Items are the unit items, in receipt order.
	Items []Item `json:"items"`

	// Totals are the subtotal, tax and tip from the receipt.
	Totals ReceiptTotals `json:"totals"`

	// EditableGuest is the index of the guest whose last name can be
	// edited during a session, or -1 for none.
	EditableGuest int `json:"editable_guest"`

	// CreatedAt is the Unix timestamp when the receipt was stored.
	CreatedAt int64 `json:"created_at,omitempty"`
}

// ItemsTotal sums the item prices. Useful for spotting a stale Subtotal.
func (r *Receipt) ItemsTotal() float64 {
	var sum float64
	for _, item := range r.Items {
		sum += item.Price
	}
	return sum
}

// Validate checks that the receipt can be used for a session.
func (r *Receipt) Validate() error {
	if len(r.Guests) == 0 {
		return ErrNoGuests
	}
	if len(r.Items) == 0 {
		return ErrNoItems
	}
	for i, item := range r.Items {
		if item.Price < 0 {
			return fmt.Errorf("item %d (%s): %w", i, item.Name, ErrNegativePrice)
		}
	}
	if r.Totals.Subtotal <= 0 {
		return ErrInvalidSubtotal
	}
	if r.Totals.Tax < 0 || r.Totals.Tip < 0 {
		return ErrNegativeExtras
	}
	if r.EditableGuest < -1 || r.EditableGuest >= len(r.Guests) {
		return fmt.Errorf("%w: %d with %d guests", ErrEditableGuest, r.EditableGuest, len(r.Guests))
	}
	for i, g := range r.Guests {
		if strings.TrimSpace(g.First) == "" {
			return fmt.Errorf("guest %d has no first name", i)
		}
	}
	return nil
}
