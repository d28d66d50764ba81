package common

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// OrderedSet is a set of strings that remembers first-insertion order.
// The zero value is ready to use.
type OrderedSet struct {
	items []string
	seen  map[string]struct{}
}

// NewOrderedSet returns a set seeded with items, in order.
func NewOrderedSet(items ...string) *OrderedSet {
	s := &OrderedSet{}
	s.Add(items...)

	return s
}

// Add appends every item not yet present. Empty strings are ignored.
func (s *OrderedSet) Add(items ...string) {
	for _, it := range items {
		if it == "" {
			continue
		}

		if s.seen == nil {
			s.seen = make(map[string]struct{})
		}

		if _, ok := s.seen[it]; ok {
			continue
		}

		s.seen[it] = struct{}{}
		s.items = append(s.items, it)
	}
}

// Contains reports whether item was added.
func (s *OrderedSet) Contains(item string) bool {
	_, ok := s.seen[item]
	return ok
}

// Len returns the number of distinct items.
func (s *OrderedSet) Len() int {
	return len(s.items)
}

// Items returns a copy of the items in insertion order.
func (s *OrderedSet) Items() []string {
	if len(s.items) == 0 {
		return nil
	}

	out := make([]string, len(s.items))
	copy(out, s.items)

	return out
}
