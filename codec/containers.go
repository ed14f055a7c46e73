package codec

// List is the decode target for list-shaped descriptors: an adapter
// for collections that are not native Go slices.
type List struct {
	items []any
}

// NewList returns a List holding items.
func NewList(items ...any) *List {
	return &List{items: items}
}

func (l *List) Len() int {
	return len(l.items)
}

func (l *List) At(i int) any {
	return l.items[i]
}

func (l *List) Append(v any) {
	l.items = append(l.items, v)
}

// Items returns the backing slice. The caller must not modify it
// while the List is shared.
func (l *List) Items() []any {
	return l.items
}

// Entry is one key-value pair of an OrderedMap.
type Entry struct {
	Key   any
	Value any
}

// OrderedMap is the decode target for ordered-map-shaped descriptors:
// a map-like collection that preserves entry order.
type OrderedMap struct {
	entries []Entry
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{}
}

func (m *OrderedMap) Len() int {
	return len(m.entries)
}

// Set appends or replaces the entry for key.
func (m *OrderedMap) Set(key, value any) {
	for i := range m.entries {
		if m.entries[i].Key == key {
			m.entries[i].Value = value
			return
		}
	}
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// Get returns the value for key and whether it was present.
func (m *OrderedMap) Get(key any) (any, bool) {
	for i := range m.entries {
		if m.entries[i].Key == key {
			return m.entries[i].Value, true
		}
	}
	return nil, false
}

// Entries returns the entries in insertion order. The caller must not
// modify the returned slice.
func (m *OrderedMap) Entries() []Entry {
	return m.entries
}
