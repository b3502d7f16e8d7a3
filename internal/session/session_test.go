package session

import (
	"errors"
	"math"
	"testing"

	"github.com/mmynk/brunchsplit/internal/calculator"
	"github.com/mmynk/brunchsplit/internal/models"
	"github.com/mmynk/brunchsplit/internal/receipt"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(&models.Receipt{
		Title:         "Test Dinner",
		Guests:        []models.Guest{{First: "Alice"}, {First: "Bob"}, {First: "Carlos", Last: "BF"}},
		Items:         []models.Item{{Name: "Steak", Price: 30}, {Name: "Salad", Price: 20}},
		Totals:        models.ReceiptTotals{Subtotal: 50, Tax: 5, Tip: 10},
		EditableGuest: 2,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func TestSession(t *testing.T) {
	t.Run("starts with every box unchecked", func(t *testing.T) {
		s := newTestSession(t)
		for item, set := range s.Assignment() {
			if len(set) != 0 {
				t.Errorf("item %d has guests %v", item, set.Sorted())
			}
		}
	})

	t.Run("calculate blocks on unassigned items and keeps selections", func(t *testing.T) {
		s := newTestSession(t)
		if err := s.SetAssigned(0, 0, true); err != nil {
			t.Fatalf("SetAssigned() error: %v", err)
		}

		results, err := s.Calculate()
		if !errors.Is(err, calculator.ErrIncompleteAssignment) {
			t.Fatalf("Calculate() error = %v, want ErrIncompleteAssignment", err)
		}
		if results != nil {
			t.Errorf("Calculate() returned partial results: %v", results)
		}
		if !s.Snapshot().Checked[0][0] {
			t.Error("selection lost after failed calculation")
		}
		if s.Snapshot().Results != nil {
			t.Error("failed calculation produced stored results")
		}
	})

	t.Run("calculate splits shared items", func(t *testing.T) {
		s := newTestSession(t)
		mustSet(t, s, 0, 0)
		mustSet(t, s, 0, 1)
		mustSet(t, s, 1, 2)

		results, err := s.Calculate()
		if err != nil {
			t.Fatalf("Calculate() error: %v", err)
		}
		if results[0].PreTax != 15 || results[1].PreTax != 15 || results[2].PreTax != 20 {
			t.Errorf("pre-tax = %v %v %v, want 15 15 20", results[0].PreTax, results[1].PreTax, results[2].PreTax)
		}
		// 20/50 of 5 tax and 10 tip
		if math.Abs(results[2].Total-26) > 1e-9 {
			t.Errorf("Carlos BF total = %v, want 26", results[2].Total)
		}
		if results[2].Name != "Carlos BF" {
			t.Errorf("name = %q, want %q", results[2].Name, "Carlos BF")
		}
	})

	t.Run("toggle flips state", func(t *testing.T) {
		s := newTestSession(t)
		on, err := s.Toggle(1, 1)
		if err != nil || !on {
			t.Fatalf("Toggle() = %v, %v; want true, nil", on, err)
		}
		on, err = s.Toggle(1, 1)
		if err != nil || on {
			t.Fatalf("Toggle() = %v, %v; want false, nil", on, err)
		}
	})

	t.Run("out of range indices rejected", func(t *testing.T) {
		s := newTestSession(t)
		if err := s.SetAssigned(5, 0, true); !errors.Is(err, ErrItemOutOfRange) {
			t.Errorf("SetAssigned(item 5) error = %v, want ErrItemOutOfRange", err)
		}
		if _, err := s.Toggle(0, -1); !errors.Is(err, ErrGuestOutOfRange) {
			t.Errorf("Toggle(guest -1) error = %v, want ErrGuestOutOfRange", err)
		}
	})

	t.Run("rename trims and refreshes results", func(t *testing.T) {
		s := newTestSession(t)
		mustSet(t, s, 0, 2)
		mustSet(t, s, 1, 2)
		if _, err := s.Calculate(); err != nil {
			t.Fatalf("Calculate() error: %v", err)
		}

		if err := s.SetEditableName("  Smith "); err != nil {
			t.Fatalf("SetEditableName() error: %v", err)
		}
		if got := s.EditableName(); got != "Smith" {
			t.Errorf("EditableName() = %q, want %q", got, "Smith")
		}
		st := s.Snapshot()
		if got := st.Results[2].Name; got != "Carlos Smith" {
			t.Errorf("result name = %q, want %q", got, "Carlos Smith")
		}

		if err := s.SetEditableName(""); err != nil {
			t.Fatalf("SetEditableName() error: %v", err)
		}
		if got := s.Snapshot().Guests[2].DisplayName(); got != "Carlos" {
			t.Errorf("display name = %q, want %q", got, "Carlos")
		}
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		s := newTestSession(t)
		st := s.Snapshot()
		st.Checked[0][0] = true
		st.Guests[0].First = "Mallory"
		if s.Snapshot().Checked[0][0] || s.Snapshot().Guests[0].First != "Alice" {
			t.Error("mutating a snapshot changed the session")
		}
	})
}

func TestSession_NoEditableGuest(t *testing.T) {
	r := receipt.Brunch()
	r.EditableGuest = -1
	s, err := New(r)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := s.SetEditableName("x"); !errors.Is(err, ErrNoEditableGuest) {
		t.Errorf("SetEditableName() error = %v, want ErrNoEditableGuest", err)
	}
}

func TestSession_BrunchEverythingShared(t *testing.T) {
	s, err := New(receipt.Brunch())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	st := s.Snapshot()
	for i := range st.Items {
		for g := range st.Guests {
			mustSet(t, s, i, g)
		}
	}

	results, err := s.Calculate()
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	// Subtotal equals the item sum, so the shares cover the receipt exactly.
	var total float64
	for _, r := range results {
		total += r.Total
	}
	want := 457.00 + 40.54 + 91.40
	if math.Abs(total-want) > 1e-6 {
		t.Errorf("sum of totals = %v, want %v", total, want)
	}
}

func mustSet(t *testing.T, s *Session, item, guest int) {
	t.Helper()
	if err := s.SetAssigned(item, guest, true); err != nil {
		t.Fatalf("SetAssigned(%d, %d) error: %v", item, guest, err)
	}
}
