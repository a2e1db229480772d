package overlay

// ListMap is an insertion-ordered map from a key to a deduplicated list of
// values.
type ListMap struct {
	keys   []string
	values map[string][]string
	seen   map[string]map[string]struct{}
}

// NewListMap returns an empty map.
func NewListMap() *ListMap {
	return &ListMap{
		values: make(map[string][]string),
		seen:   make(map[string]map[string]struct{}),
	}
}

// Ensure creates key with an empty list if it is missing.
func (m *ListMap) Ensure(key string) {
	if _, ok := m.values[key]; ok {
		return
	}
	m.keys = append(m.keys, key)
	m.values[key] = []string{}
	m.seen[key] = make(map[string]struct{})
}

// Append adds value to key's list unless already present. It reports
// whether the value was added.
func (m *ListMap) Append(key, value string) bool {
	m.Ensure(key)
	if _, ok := m.seen[key][value]; ok {
		return false
	}
	m.seen[key][value] = struct{}{}
	m.values[key] = append(m.values[key], value)
	return true
}

// Contains reports whether value is listed under key.
func (m *ListMap) Contains(key, value string) bool {
	_, ok := m.seen[key][value]
	return ok
}

// Get returns key's list.
func (m *ListMap) Get(key string) []string {
	return m.values[key]
}

// Has reports whether key is present.
func (m *ListMap) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (m *ListMap) Keys() []string {
	return append([]string{}, m.keys...)
}

// Len returns the number of keys.
func (m *ListMap) Len() int {
	return len(m.keys)
}

// StringMap is an insertion-ordered map from a key to a single value.
// Setting an existing key keeps its position and replaces its value.
type StringMap struct {
	keys   []string
	values map[string]string
}

// NewStringMap returns an empty map.
func NewStringMap() *StringMap {
	return &StringMap{values: make(map[string]string)}
}

// Set stores value under key.
func (m *StringMap) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key.
func (m *StringMap) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *StringMap) Keys() []string {
	return append([]string{}, m.keys...)
}

// Len returns the number of keys.
func (m *StringMap) Len() int {
	return len(m.keys)
}
