// Package assoc holds the selection state a form keeps for many-to-many
// relationships: plain ID sets for checkbox-style pickers and junction-backed
// sets for links that carry per-link attributes.
package assoc

// Set is a duplicate-free collection of foreign-entity IDs. Insertion order
// is preserved so selections render stably.
type Set struct {
	ids []int64
}

// NewSet seeds a set, dropping zero values and duplicates.
func NewSet(ids ...int64) *Set {
	s := &Set{}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add appends the ID unless it is zero or already present. It reports whether
// the set changed.
func (s *Set) Add(id int64) bool {
	if id == 0 || s.Has(id) {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// Remove drops the ID regardless of prior multiplicity.
func (s *Set) Remove(id int64) {
	filtered := s.ids[:0]
	for _, existing := range s.ids {
		if existing != id {
			filtered = append(filtered, existing)
		}
	}
	s.ids = filtered
}

// Toggle removes a present ID and adds an absent one.
func (s *Set) Toggle(id int64) {
	if id == 0 {
		return
	}
	if s.Has(id) {
		s.Remove(id)
		return
	}
	s.Add(id)
}

// Reconcile replaces the membership wholesale with the server's view. No
// pre-reconcile IDs survive.
func (s *Set) Reconcile(ids []int64) {
	s.ids = s.ids[:0]
	for _, id := range ids {
		s.Add(id)
	}
}

// Has reports membership.
func (s *Set) Has(id int64) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// IDs returns a copy of the membership in insertion order.
func (s *Set) IDs() []int64 {
	out := make([]int64, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the membership size.
func (s *Set) Len() int {
	return len(s.ids)
}
