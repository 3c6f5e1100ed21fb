package pattern

// Entry binds a value to a pattern.
type Entry[V any] struct {
	Pattern Pattern
	Value   V
}

// Table is an ordered list of entries. Order is significant and duplicate
// patterns are allowed: the first matching entry wins.
type Table[V any] []Entry[V]

// Len returns the number of entries.
func (t Table[V]) Len() int {
	return len(t)
}

// First returns the first entry whose pattern matches s.
func (t Table[V]) First(s string) (Entry[V], bool) {
	for _, e := range t {
		if e.Pattern.Match(s) {
			return e, true
		}
	}
	return Entry[V]{}, false
}

// Lookup returns the value of the first entry matching s.
func (t Table[V]) Lookup(s string) (V, bool) {
	e, ok := t.First(s)
	return e.Value, ok
}
