package models

// GuestResult represents one guest's calculated share of the bill.
// Amounts are unrounded; rounding happens only at display time.
type GuestResult struct {
	// Guest is the index of the guest in the receipt.
	Guest int

	// Name is the guest's display name at calculation time.
	Name string

	// PreTax is the sum of the guest's shares of assigned items.
	PreTax float64

	// TaxShare is PreTax / subtotal × tax.
	TaxShare float64

	// TipShare is PreTax / subtotal × tip.
	TipShare float64

	// Total is PreTax + TaxShare + TipShare.
	Total float64
}
