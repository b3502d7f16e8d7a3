package models

import "sort"

// GuestSet is a set of guest indices.
type GuestSet map[int]struct{}

// NewGuestSet builds a set from the given guest indices.
func NewGuestSet(guests ...int) GuestSet {
	s := make(GuestSet, len(guests))
	for _, g := range guests {
		s[g] = struct{}{}
	}
	return s
}

// Has reports whether guest is in the set.
func (s GuestSet) Has(guest int) bool {
	_, ok := s[guest]
	return ok
}

// Sorted returns the guest indices in ascending order.
func (s GuestSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for g := range s {
		out = append(out, g)
	}
	sort.Ints(out)
	return out
}

// Assignment maps an item index to the set of guests sharing that item.
// An item that is missing from the map has no guests assigned.
type Assignment map[int]GuestSet

// Assign adds guest to the set for item.
func (a Assignment) Assign(item, guest int) {
	set, ok := a[item]
	if !ok {
		set = make(GuestSet)
		a[item] = set
	}
	set[guest] = struct{}{}
}

// Guests returns the set for item, or nil when none are assigned.
func (a Assignment) Guests(item int) GuestSet {
	return a[item]
}
