package semantic

// orderedMap is a case-insensitive, insertion-order-preserving map from
// name to V. Lookup keys are canonicalized via normalizeFoldKey (spec §3.3);
// the original-case key used at Set time is retained alongside the value for
// iteration and error messages.
//
// This is the data structure behind every one of the Index's primary
// multimaps (types, pous, globals, members), chosen over a bare Go map so
// that diagnostics and synthesized-type names stay deterministic across
// runs (spec §5 "Ordering guarantees").
type orderedMap[V any] struct {
	index map[string]int
	keys  []string
	vals  []V
}

func newOrderedMap[V any]() *orderedMap[V] {
	return &orderedMap[V]{index: make(map[string]int)}
}

func foldKey(name string) string { return normalizeFoldKey(name) }

// Set inserts or overwrites the entry for name, preserving the original
// insertion position on overwrite.
func (m *orderedMap[V]) Set(name string, v V) {
	k := foldKey(name)
	if i, ok := m.index[k]; ok {
		m.vals[i] = v
		return
	}
	m.index[k] = len(m.keys)
	m.keys = append(m.keys, name)
	m.vals = append(m.vals, v)
}

// Get looks up name case-insensitively.
func (m *orderedMap[V]) Get(name string) (V, bool) {
	var zero V
	i, ok := m.index[foldKey(name)]
	if !ok {
		return zero, false
	}
	return m.vals[i], true
}

// Has reports whether name is present.
func (m *orderedMap[V]) Has(name string) bool {
	_, ok := m.index[foldKey(name)]
	return ok
}

// Keys returns the original-case keys in insertion order.
func (m *orderedMap[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in insertion order.
func (m *orderedMap[V]) Values() []V {
	out := make([]V, len(m.vals))
	copy(out, m.vals)
	return out
}

// Len returns the number of entries.
func (m *orderedMap[V]) Len() int { return len(m.keys) }
