package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompleteAssignment is matched by every *IncompleteAssignmentError.
	ErrIncompleteAssignment = errors.New("every item must be assigned to at least one guest")
	ErrZeroSubtotal         = errors.New("subtotal cannot be zero")
	ErrGuestOutOfRange      = errors.New("assigned guest out of range")
)

// IncompleteAssignmentError reports the items that have no guest assigned.
// Items lists every unassigned item index, in ascending order.
type IncompleteAssignmentError struct {
	Items []int
}

func (e *IncompleteAssignmentError) Error() string {
	return fmt.Sprintf("%v: %d unassigned item(s) %v", ErrIncompleteAssignment, len(e.Items), e.Items)
}

// Is makes errors.Is(err, ErrIncompleteAssignment) match.
func (e *IncompleteAssignmentError) Is(target error) bool {
	return target == ErrIncompleteAssignment
}
