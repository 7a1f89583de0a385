package utils

import (
	"slices"
)

// Set is a membership-only collection of IDs.
type Set map[int64]struct{}

// NewSet builds a set from ids, dropping duplicates.
func NewSet(ids ...int64) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Add(id int64) {
	s[id] = struct{}{}
}

func (s Set) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Intersect returns the members present in both sets.
func (s Set) Intersect(other Set) Set {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(Set, len(small))
	for id := range small {
		if large.Has(id) {
			out.Add(id)
		}
	}
	return out
}

// Minus returns the members of s absent from other.
func (s Set) Minus(other Set) Set {
	out := make(Set, len(s))
	for id := range s {
		if !other.Has(id) {
			out.Add(id)
		}
	}
	return out
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
