package domain

// SeenSet is the collection of unique ids already surfaced by previous
// runs. The zero value is not usable; call NewSeenSet.
type SeenSet struct {
	ids map[string]struct{}
}

// NewSeenSet builds a set from the given ids.
func NewSeenSet(ids ...string) *SeenSet {
	s := &SeenSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Has reports whether id was already surfaced.
func (s *SeenSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Add records id as surfaced. Adding an existing id is a no-op.
func (s *SeenSet) Add(id string) {
	s.ids[id] = struct{}{}
}

// Len returns the number of ids in the set.
func (s *SeenSet) Len() int { return len(s.ids) }

// IDs returns a copy of the membership. Order is unspecified.
func (s *SeenSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}

// Clone returns an independent copy; mutations on the clone never reach s.
func (s *SeenSet) Clone() *SeenSet {
	c := &SeenSet{ids: make(map[string]struct{}, len(s.ids))}
	for id := range s.ids {
		c.ids[id] = struct{}{}
	}
	return c
}
