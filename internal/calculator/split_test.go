package calculator

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/mmynk/brunchsplit/internal/models"
)

func guests(names ...string) []models.Guest {
	out := make([]models.Guest, len(names))
	for i, n := range names {
		out[i] = models.Guest{First: n}
	}
	return out
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name         string
		items        []models.Item
		guests       []models.Guest
		assignment   models.Assignment
		totals       models.ReceiptTotals
		wantErr      error
		validateFunc func(t *testing.T, results []models.GuestResult)
	}{
		{
			name: "shared item splits evenly",
			items: []models.Item{
				{Name: "Steak Tartare", Price: 30.0},
			},
			guests: guests("Alice", "Bob"),
			assignment: models.Assignment{
				0: models.NewGuestSet(0, 1),
			},
			totals: models.ReceiptTotals{Subtotal: 30.0, Tax: 3.0, Tip: 6.0},
			validateFunc: func(t *testing.T, results []models.GuestResult) {
				for _, r := range results {
					if r.PreTax != 15.0 {
						t.Errorf("%s pre-tax = %v, want 15.0", r.Name, r.PreTax)
					}
					if math.Abs(r.TaxShare-1.5) > 1e-9 {
						t.Errorf("%s tax = %v, want 1.5", r.Name, r.TaxShare)
					}
					if math.Abs(r.TipShare-3.0) > 1e-9 {
						t.Errorf("%s tip = %v, want 3.0", r.Name, r.TipShare)
					}
				}
			},
		},
		{
			name: "single guest gets full price",
			items: []models.Item{
				{Name: "Coke", Price: 6.0},
				{Name: "Entrecote", Price: 56.0},
			},
			guests: guests("Alice", "Bob"),
			assignment: models.Assignment{
				0: models.NewGuestSet(0),
				1: models.NewGuestSet(1),
			},
			totals: models.ReceiptTotals{Subtotal: 62.0, Tax: 6.2, Tip: 12.4},
			validateFunc: func(t *testing.T, results []models.GuestResult) {
				if results[0].PreTax != 6.0 {
					t.Errorf("Alice pre-tax = %v, want 6.0", results[0].PreTax)
				}
				if results[1].PreTax != 56.0 {
					t.Errorf("Bob pre-tax = %v, want 56.0", results[1].PreTax)
				}
			},
		},
		{
			name: "receipt example ratio",
			items: []models.Item{
				{Name: "Entrecote", Price: 50.0},
				{Name: "Everything else", Price: 407.0},
			},
			guests: guests("Alice", "Bob"),
			assignment: models.Assignment{
				0: models.NewGuestSet(0),
				1: models.NewGuestSet(1),
			},
			totals: models.ReceiptTotals{Subtotal: 457.00, Tax: 40.54, Tip: 91.40},
			validateFunc: func(t *testing.T, results []models.GuestResult) {
				// ratio = 50/457 ≈ 0.10941
				alice := results[0]
				if math.Abs(alice.TaxShare-4.435) > 0.001 {
					t.Errorf("Alice tax = %v, want ~4.435", alice.TaxShare)
				}
				if math.Abs(alice.TipShare-10.0) > 0.002 {
					t.Errorf("Alice tip = %v, want ~10.001", alice.TipShare)
				}
				if math.Abs(alice.Total-64.44) > 0.005 {
					t.Errorf("Alice total = %v, want ~64.44", alice.Total)
				}
			},
		},
		{
			name: "guest with no items owes nothing",
			items: []models.Item{
				{Name: "Espresso", Price: 5.5},
			},
			guests:     guests("Alice", "Bob"),
			assignment: models.Assignment{0: models.NewGuestSet(0)},
			totals:     models.ReceiptTotals{Subtotal: 5.5, Tax: 0.5, Tip: 1.0},
			validateFunc: func(t *testing.T, results []models.GuestResult) {
				bob := results[1]
				if bob.PreTax != 0 || bob.TaxShare != 0 || bob.TipShare != 0 || bob.Total != 0 {
					t.Errorf("Bob = %+v, want all zero", bob)
				}
			},
		},
		{
			name: "stale subtotal is not corrected",
			items: []models.Item{
				{Name: "Coke", Price: 10.0},
			},
			guests:     guests("Alice"),
			assignment: models.Assignment{0: models.NewGuestSet(0)},
			totals:     models.ReceiptTotals{Subtotal: 20.0, Tax: 2.0, Tip: 4.0},
			validateFunc: func(t *testing.T, results []models.GuestResult) {
				// Only half the stated extras get allocated.
				if math.Abs(results[0].TaxShare-1.0) > 1e-9 {
					t.Errorf("tax = %v, want 1.0", results[0].TaxShare)
				}
				if math.Abs(results[0].TipShare-2.0) > 1e-9 {
					t.Errorf("tip = %v, want 2.0", results[0].TipShare)
				}
			},
		},
		{
			name:       "unassigned item",
			items:      []models.Item{{Name: "Coke", Price: 6.0}, {Name: "Espresso", Price: 5.5}},
			guests:     guests("Alice"),
			assignment: models.Assignment{0: models.NewGuestSet(0)},
			totals:     models.ReceiptTotals{Subtotal: 11.5},
			wantErr:    ErrIncompleteAssignment,
		},
		{
			name:       "empty set counts as unassigned",
			items:      []models.Item{{Name: "Coke", Price: 6.0}},
			guests:     guests("Alice"),
			assignment: models.Assignment{0: models.NewGuestSet()},
			totals:     models.ReceiptTotals{Subtotal: 6.0},
			wantErr:    ErrIncompleteAssignment,
		},
		{
			name:       "zero subtotal",
			items:      []models.Item{{Name: "Coke", Price: 6.0}},
			guests:     guests("Alice"),
			assignment: models.Assignment{0: models.NewGuestSet(0)},
			totals:     models.ReceiptTotals{},
			wantErr:    ErrZeroSubtotal,
		},
		{
			name:       "guest out of range",
			items:      []models.Item{{Name: "Coke", Price: 6.0}},
			guests:     guests("Alice"),
			assignment: models.Assignment{0: models.NewGuestSet(3)},
			totals:     models.ReceiptTotals{Subtotal: 6.0},
			wantErr:    ErrGuestOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := Allocate(tt.items, tt.guests, tt.assignment, tt.totals)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Allocate() error = %v, want %v", err, tt.wantErr)
				}
				if results != nil {
					t.Errorf("Allocate() returned results alongside error: %v", results)
				}
				return
			}
			if err != nil {
				t.Fatalf("Allocate() unexpected error: %v", err)
			}
			if len(results) != len(tt.guests) {
				t.Fatalf("got %d results, want %d", len(results), len(tt.guests))
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, results)
			}
		})
	}
}

func TestValidate_ReportsEveryUnassignedItem(t *testing.T) {
	assignment := models.Assignment{
		1: models.NewGuestSet(0),
		3: models.NewGuestSet(),
	}
	err := Validate(5, assignment)

	var incomplete *IncompleteAssignmentError
	if !errors.As(err, &incomplete) {
		t.Fatalf("Validate() error = %v, want *IncompleteAssignmentError", err)
	}
	want := []int{0, 2, 3, 4}
	if !reflect.DeepEqual(incomplete.Items, want) {
		t.Errorf("unassigned items = %v, want %v", incomplete.Items, want)
	}
}

func TestValidate_Complete(t *testing.T) {
	assignment := models.Assignment{
		0: models.NewGuestSet(0),
		1: models.NewGuestSet(0, 1),
	}
	if err := Validate(2, assignment); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

// sharedReceipt builds items assigned round-robin to overlapping guest groups.
func sharedReceipt() ([]models.Item, []models.Guest, models.Assignment, models.ReceiptTotals) {
	items := []models.Item{
		{Name: "Pitcher Aperol", Price: 95.0},
		{Name: "Steak Frites", Price: 34.0},
		{Name: "Espresso", Price: 5.5},
		{Name: "Creme Brulee", Price: 14.0},
		{Name: "Modelo Especial", Price: 7.0},
	}
	g := guests("Vincent", "Giorgio", "Dennis")
	assignment := models.Assignment{
		0: models.NewGuestSet(0, 1, 2),
		1: models.NewGuestSet(1),
		2: models.NewGuestSet(0, 2),
		3: models.NewGuestSet(0, 1),
		4: models.NewGuestSet(2),
	}
	return items, g, assignment, models.ReceiptTotals{Subtotal: 155.5, Tax: 13.8, Tip: 31.1}
}

func TestAllocate_SplitFidelity(t *testing.T) {
	items, g, assignment, totals := sharedReceipt()
	results, err := Allocate(items, g, assignment, totals)
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}

	var preTax, itemSum float64
	for _, r := range results {
		preTax += r.PreTax
	}
	for _, item := range items {
		itemSum += item.Price
	}
	if math.Abs(preTax-itemSum) > 1e-9 {
		t.Errorf("sum of pre-tax = %v, want %v", preTax, itemSum)
	}
}

func TestAllocate_TotalIsSumOfParts(t *testing.T) {
	items, g, assignment, totals := sharedReceipt()
	results, err := Allocate(items, g, assignment, totals)
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}
	for _, r := range results {
		if r.Total != r.PreTax+r.TaxShare+r.TipShare {
			t.Errorf("%s total = %v, want exactly %v", r.Name, r.Total, r.PreTax+r.TaxShare+r.TipShare)
		}
	}
}

func TestAllocate_Idempotent(t *testing.T) {
	items, g, assignment, totals := sharedReceipt()
	first, err := Allocate(items, g, assignment, totals)
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}
	second, err := Allocate(items, g, assignment, totals)
	if err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ between runs:\n%v\n%v", first, second)
	}
}

func TestItemShare(t *testing.T) {
	tests := []struct {
		price float64
		count int
		want  float64
	}{
		{30.0, 2, 15.0},
		{30.0, 1, 30.0},
		{95.0, 3, 95.0 / 3},
	}
	for _, tt := range tests {
		if got := ItemShare(tt.price, tt.count); got != tt.want {
			t.Errorf("ItemShare(%v, %d) = %v, want %v", tt.price, tt.count, got, tt.want)
		}
	}
}
