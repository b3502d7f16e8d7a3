// Package session holds the mutable state of one bill-splitting session:
// the assignment table and the editable guest name. Adapters (the terminal
// UI and the RPC service) drive a Session; the allocation engine only ever
// sees the plain values it produces.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmynk/brunchsplit/internal/calculator"
	"github.com/mmynk/brunchsplit/internal/models"
)

var (
	ErrItemOutOfRange  = errors.New("item index out of range")
	ErrGuestOutOfRange = errors.New("guest index out of range")
	ErrNoEditableGuest = errors.New("receipt has no editable guest")
)

// Session is one interactive splitting session over a fixed receipt.
// It is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	receipt models.Receipt
	checked [][]bool // checked[item][guest]
	results []models.GuestResult
}

// New creates a session with every box unchecked. The receipt is copied so
// later edits to the caller's value do not leak in.
func New(r *models.Receipt) (*Session, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid receipt: %w", err)
	}

	cp := *r
	cp.Guests = append([]models.Guest(nil), r.Guests...)
	cp.Items = append([]models.Item(nil), r.Items...)

	checked := make([][]bool, len(cp.Items))
	for i := range checked {
		checked[i] = make([]bool, len(cp.Guests))
	}
	return &Session{receipt: cp, checked: checked}, nil
}

// EditableName returns the current last name of the editable guest.
func (s *Session) EditableName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.receipt.EditableGuest < 0 {
		return ""
	}
	return s.receipt.Guests[s.receipt.EditableGuest].Last
}

// SetEditableName updates the editable guest's last name. Names on the most
// recent results are refreshed too, so a visible result card follows the edit.
func (s *Session) SetEditableName(last string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.receipt.EditableGuest
	if idx < 0 {
		return ErrNoEditableGuest
	}
	s.receipt.Guests[idx].Last = strings.TrimSpace(last)
	for i := range s.results {
		s.results[i].Name = s.receipt.Guests[s.results[i].Guest].DisplayName()
	}
	return nil
}

func (s *Session) checkRange(item, guest int) error {
	if item < 0 || item >= len(s.receipt.Items) {
		return fmt.Errorf("%w: %d", ErrItemOutOfRange, item)
	}
	if guest < 0 || guest >= len(s.receipt.Guests) {
		return fmt.Errorf("%w: %d", ErrGuestOutOfRange, guest)
	}
	return nil
}

// SetAssigned checks or unchecks guest for item.
func (s *Session) SetAssigned(item, guest int, assigned bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkRange(item, guest); err != nil {
		return err
	}
	s.checked[item][guest] = assigned
	return nil
}

// Toggle flips guest's inclusion in item's split and returns the new state.
func (s *Session) Toggle(item, guest int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkRange(item, guest); err != nil {
		return false, err
	}
	s.checked[item][guest] = !s.checked[item][guest]
	return s.checked[item][guest], nil
}

// Assignment returns the current table as an Assignment value. Every item
// has an entry, empty when no box is checked.
func (s *Session) Assignment() models.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assignment()
}

func (s *Session) assignment() models.Assignment {
	a := make(models.Assignment, len(s.checked))
	for i, row := range s.checked {
		set := make(models.GuestSet)
		for g, on := range row {
			if on {
				set[g] = struct{}{}
			}
		}
		a[i] = set
	}
	return a
}

// Calculate runs the allocation engine over the current table. On failure
// nothing is changed: selections and any earlier results stay as they were.
func (s *Session) Calculate() ([]models.GuestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results, err := calculator.Allocate(s.receipt.Items, s.receipt.Guests, s.assignment(), s.receipt.Totals)
	if err != nil {
		var incomplete *calculator.IncompleteAssignmentError
		if errors.As(err, &incomplete) {
			slog.Debug("Calculation blocked", "unassigned_items", incomplete.Items)
		}
		return nil, err
	}

	s.results = results
	slog.Debug("Calculation complete", "guests", len(results))
	return append([]models.GuestResult(nil), results...), nil
}

// State is a read-only copy of a session for rendering.
type State struct {
	Title         string
	Guests        []models.Guest
	Items         []models.Item
	Totals        models.ReceiptTotals
	EditableGuest int
	Checked       [][]bool
	Results       []models.GuestResult // nil until a calculation succeeds
}

// Snapshot returns a deep copy of the session state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	checked := make([][]bool, len(s.checked))
	for i, row := range s.checked {
		checked[i] = append([]bool(nil), row...)
	}
	var results []models.GuestResult
	if s.results != nil {
		results = append([]models.GuestResult(nil), s.results...)
	}
	return State{
		Title:         s.receipt.Title,
		Guests:        append([]models.Guest(nil), s.receipt.Guests...),
		Items:         append([]models.Item(nil), s.receipt.Items...),
		Totals:        s.receipt.Totals,
		EditableGuest: s.receipt.EditableGuest,
		Checked:       checked,
		Results:       results,
	}
}

// AssignedCount returns how many guests share item in the state.
func (st State) AssignedCount(item int) int {
	n := 0
	for _, on := range st.Checked[item] {
		if on {
			n++
		}
	}
	return n
}
