package assoc

// JunctionSet manages junction-backed associations: records carrying a
// foreign ID plus per-link attributes. The key function is the single place
// foreign-ID resolution lives, so records with inconsistent field spellings
// reconcile uniformly.
type JunctionSet[T any] struct {
	key     func(T) int64
	records []T
}

// NewJunctionSet builds a junction set keyed by the given extractor.
func NewJunctionSet[T any](key func(T) int64) *JunctionSet[T] {
	return &JunctionSet[T]{key: key}
}

// Add appends the record unless its key is zero or already present. It
// reports whether the set changed.
func (j *JunctionSet[T]) Add(record T) bool {
	id := j.key(record)
	if id == 0 || j.Has(id) {
		return false
	}
	j.records = append(j.records, record)
	return true
}

// Remove drops every record keyed by the ID.
func (j *JunctionSet[T]) Remove(id int64) {
	filtered := j.records[:0]
	for _, record := range j.records {
		if j.key(record) != id {
			filtered = append(filtered, record)
		}
	}
	j.records = filtered
}

// Reconcile replaces the membership wholesale with the server's junction
// rows, dropping rows whose key resolves to zero.
func (j *JunctionSet[T]) Reconcile(records []T) {
	j.records = j.records[:0]
	for _, record := range records {
		j.Add(record)
	}
}

// Has reports whether a record with the given key is present.
func (j *JunctionSet[T]) Has(id int64) bool {
	for _, record := range j.records {
		if j.key(record) == id {
			return true
		}
	}
	return false
}

// IDs returns the resolved foreign IDs in insertion order.
func (j *JunctionSet[T]) IDs() []int64 {
	out := make([]int64, 0, len(j.records))
	for _, record := range j.records {
		out = append(out, j.key(record))
	}
	return out
}

// Records returns a copy of the junction rows.
func (j *JunctionSet[T]) Records() []T {
	out := make([]T, len(j.records))
	copy(out, j.records)
	return out
}

// Len returns the membership size.
func (j *JunctionSet[T]) Len() int {
	return len(j.records)
}
