package domain

import "sort"

// IDSet is an unordered set of asset identifiers.
// The zero value (nil) behaves as the empty set for all read operations.
type IDSet map[string]struct{}

// NewIDSet builds a set from the given identifiers.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts an identifier into the set.
func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

// Has reports whether the identifier is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of identifiers in the set.
func (s IDSet) Len() int {
	return len(s)
}

// Union returns a new set containing every identifier in either set.
func (s IDSet) Union(other IDSet) IDSet {
	result := make(IDSet, len(s)+len(other))
	for id := range s {
		result[id] = struct{}{}
	}
	for id := range other {
		result[id] = struct{}{}
	}
	return result
}

// Intersect returns a new set containing identifiers present in both sets.
func (s IDSet) Intersect(other IDSet) IDSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	result := make(IDSet)
	for id := range small {
		if _, ok := large[id]; ok {
			result[id] = struct{}{}
		}
	}
	return result
}

// Minus returns a new set containing identifiers in s but not in other.
func (s IDSet) Minus(other IDSet) IDSet {
	result := make(IDSet)
	for id := range s {
		if _, ok := other[id]; !ok {
			result[id] = struct{}{}
		}
	}
	return result
}

// Values returns the identifiers in sorted order for deterministic output.
func (s IDSet) Values() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// UnionOf folds any number of sets into their union.
// The union of zero sets is the empty set.
func UnionOf(sets ...IDSet) IDSet {
	result := make(IDSet)
	for _, s := range sets {
		for id := range s {
			result[id] = struct{}{}
		}
	}
	return result
}

// IntersectionOf folds any number of sets into their intersection.
// The intersection of zero sets is the empty set, not "universal":
// callers that mean "no constraint" must supply an explicit all-assets set.
func IntersectionOf(sets ...IDSet) IDSet {
	if len(sets) == 0 {
		return make(IDSet)
	}
	result := sets[0]
	for _, s := range sets[1:] {
		result = result.Intersect(s)
	}
	// Copy so the first operand is never aliased by the result.
	if len(sets) == 1 {
		return result.Union(nil)
	}
	return result
}
