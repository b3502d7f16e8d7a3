// Package receipt provides the built-in brunch receipt and loads receipts
// from JSON files.
package receipt

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mmynk/brunchsplit/internal/models"
)

// ErrNegativeQuantity is returned for a receipt line with quantity below zero.
// An omitted quantity means one unit.
var ErrNegativeQuantity = errors.New("item quantity cannot be negative")

// Brunch returns the built-in Sunday brunch receipt. Multi-quantity lines
// are already broken down into unit items. The last guest is Carlos's
// partner, whose last name can be edited.
func Brunch() *models.Receipt {
	return &models.Receipt{
		Title: "Sunday Brunch",
		Guests: []models.Guest{
			{First: "Vincent"},
			{First: "Giorgio"},
			{First: "Dennis"},
			{First: "Lisa"},
			{First: "Jana"},
			{First: "Carlos"},
			{First: "Kara"},
			{First: "Carlos", Last: "BF"},
		},
		Items: []models.Item{
			{Name: "Coke", Price: 6.00},
			{Name: "Pitcher Aperol", Price: 95.00},
			{Name: "Steak Tartare", Price: 30.00},
			{Name: "Steak Tartare", Price: 30.00},
			{Name: "Salmon Benedict", Price: 28.00},
			{Name: "Entrecote", Price: 56.00},
			{Name: "Entrecote", Price: 56.00},
			{Name: "Steak Frites", Price: 34.00},
			{Name: "Roasted Salmon", Price: 34.00},
			{Name: "Ice Coffee", Price: 6.00},
			{Name: "Diet Coke", Price: 6.00},
			{Name: "Creme Brulee", Price: 14.00},
			{Name: "Chocolate Mousse", Price: 14.00},
			{Name: "Espresso", Price: 5.50},
			{Name: "Espresso", Price: 5.50},
			{Name: "Macchiato", Price: 5.50},
			{Name: "Macchiato", Price: 5.50},
			{Name: "Decaf Espresso", Price: 6.00},
			{Name: "Decaf Espresso", Price: 6.00},
			{Name: "Modelo Especial", Price: 7.00},
			{Name: "Modelo Especial", Price: 7.00},
		},
		Totals: models.ReceiptTotals{
			Subtotal: 457.00,
			Tax:      40.54,
			Tip:      91.40,
		},
		EditableGuest: 7,
	}
}

// fileLine is one receipt line in a JSON file. Quantity defaults to 1.
type fileLine struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity,omitempty"`
}

type fileReceipt struct {
	Title         string               `json:"title"`
	Guests        []models.Guest       `json:"guests"`
	Items         []fileLine           `json:"items"`
	Totals        models.ReceiptTotals `json:"totals"`
	EditableGuest *int                 `json:"editable_guest,omitempty"`
}

// Parse decodes a JSON receipt. Lines with a quantity above one are expanded
// into that many unit items. When editable_guest is omitted the last guest
// is editable.
func Parse(data []byte) (*models.Receipt, error) {
	var f fileReceipt
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode receipt: %w", err)
	}

	r := &models.Receipt{
		Title:         f.Title,
		Guests:        f.Guests,
		Totals:        f.Totals,
		EditableGuest: len(f.Guests) - 1,
	}
	if f.EditableGuest != nil {
		r.EditableGuest = *f.EditableGuest
	}
	for i, line := range f.Items {
		qty := line.Quantity
		if qty < 0 {
			return nil, fmt.Errorf("item %d (%s): %w", i, line.Name, ErrNegativeQuantity)
		}
		if qty == 0 {
			qty = 1 // omitted
		}
		for i := 0; i < qty; i++ {
			r.Items = append(r.Items, models.Item{Name: line.Name, Price: line.Price})
		}
	}

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid receipt: %w", err)
	}
	return r, nil
}

// LoadFile reads and parses a JSON receipt file.
func LoadFile(path string) (*models.Receipt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read receipt file: %w", err)
	}
	return Parse(data)
}
