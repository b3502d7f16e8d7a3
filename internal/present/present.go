// Package present formats calculation results for display. Amounts are
// rounded to cents here and nowhere else.
package present

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/brunchsplit/internal/models"
)

// IncompleteMessage is shown when Calculate is triggered with an item that
// nobody has checked.
const IncompleteMessage = "Please assign every item to at least one guest by checking the appropriate boxes."

// Cents rounds v half away from zero to two decimal places. The rounding
// applies to the shortest decimal form of v, so Cents(1.005) is 1.01 even
// though the nearest float64 is slightly below 1.005. JavaScript's toFixed
// rounds the binary value and would print 1.00.
func Cents(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// Amount formats v with exactly two decimals and no currency symbol, rounded
// as in Cents: Amount(2.675) is "2.68".
func Amount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Money formats v as a dollar amount, e.g. "$64.44".
func Money(v float64) string {
	return "$" + Amount(v)
}

// Figures is a result with every amount formatted for display.
type Figures struct {
	Name     string `json:"name"`
	PreTax   string `json:"pre_tax"`
	TaxShare string `json:"tax_share"`
	TipShare string `json:"tip_share"`
	Total    string `json:"total"`
}

// Format converts a result into display strings.
func Format(r models.GuestResult) Figures {
	return Figures{
		Name:     r.Name,
		PreTax:   Money(r.PreTax),
		TaxShare: Money(r.TaxShare),
		TipShare: Money(r.TipShare),
		Total:    Money(r.Total),
	}
}

// Lines returns the four labelled lines of a result card.
func (f Figures) Lines() []string {
	return []string{
		"Pre-tax: " + f.PreTax,
		"Tax: " + f.TaxShare,
		"Tip: " + f.TipShare,
		"Total: " + f.Total,
	}
}

// Card renders a plain-text result card.
func Card(r models.GuestResult) string {
	f := Format(r)
	var b strings.Builder
	b.WriteString(f.Name + "\n")
	for _, line := range f.Lines() {
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

// Cards renders every result card followed by a receipt-level summary line.
func Cards(results []models.GuestResult, totals models.ReceiptTotals) string {
	var b strings.Builder
	var sum decimal.Decimal
	for _, r := range results {
		b.WriteString(Card(r))
		b.WriteString("\n")
		sum = sum.Add(Cents(r.Total))
	}
	fmt.Fprintf(&b, "Receipt: subtotal %s, tax %s, tip %s; cards add up to %s\n",
		Money(totals.Subtotal), Money(totals.Tax), Money(totals.Tip), "$"+sum.StringFixed(2))
	return b.String()
}
