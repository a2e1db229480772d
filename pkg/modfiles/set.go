package modfiles

// Set is an insertion-ordered set of mod-relative paths.
type Set struct {
	index map[string]struct{}
	paths []string
}

// NewSet returns a set seeded with paths.
func NewSet(paths ...string) *Set {
	s := &Set{index: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add records path and reports whether it was new.
func (s *Set) Add(path string) bool {
	if _, ok := s.index[path]; ok {
		return false
	}
	s.index[path] = struct{}{}
	s.paths = append(s.paths, path)
	return true
}

// Has reports whether path is present.
func (s *Set) Has(path string) bool {
	_, ok := s.index[path]
	return ok
}

// Paths returns a snapshot of the set in insertion order. Callers may
// iterate it while adding to the set.
func (s *Set) Paths() []string {
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}

// Len returns the number of paths.
func (s *Set) Len() int {
	return len(s.paths)
}
