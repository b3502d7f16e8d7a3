// Package models defines the core domain models for brunchsplit.
//
// # Models
//
//   - Receipt: the guests, unit items and receipt-level totals of one bill
//   - Guest: a participant; one guest per receipt may have an editable last name
//   - Item: a single unit line from the receipt, priced pre-tax
//   - Assignment: which guests share each item, keyed by item index
//   - GuestResult: one guest's calculated share of the bill
//
// Guests and items are identified by their index in the receipt. Names are
// for display only and need not be unique.
//
// # Design Principles
//
// 1. **Plain values**: models carry no behavior beyond validation and naming
// 2. **Indices over names**: assignments reference guests by position, so two
// guests may share a first name (the brunch receipt has two Carloses)
// 3. **Unrounded money**: amounts are float64 and only rounded for display
package models
