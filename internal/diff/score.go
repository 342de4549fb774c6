// Package diff compares loaded documents: a recursive leaf-mismatch count, the
// per-section heatmap built from it, and the delegated structural diff text.
package diff

import "github.com/oakwood-commons/confviz/internal/document"

// Score counts the leaf positions where a and b disagree. A nil value stands for an
// absent member and behaves like null.
//
// Objects sum over the union of keys and arrays over the longer length; any other pair
// scores 0 when equal and 1 otherwise, including a container against a scalar or absence.
func Score(a, b *document.Value) int {
	ka, kb := a.Kind(), b.Kind()
	switch {
	case ka == document.NullKind && kb == document.NullKind:
		return 0
	case ka == document.ObjectKind && kb == document.ObjectKind:
		total := 0
		for _, k := range unionKeys(a, b) {
			x, _ := a.Get(k)
			y, _ := b.Get(k)
			total += Score(x, y)
		}
		return total
	case ka == document.ArrayKind && kb == document.ArrayKind:
		n := max(a.Len(), b.Len())
		total := 0
		for i := 0; i < n; i++ {
			total += Score(a.Index(i), b.Index(i))
		}
		return total
	}
	if a.Equal(b) {
		return 0
	}
	return 1
}

// unionKeys lists a's keys in order followed by keys only b has.
func unionKeys(a, b *document.Value) []string {
	keys := append([]string(nil), a.Keys()...)
	for _, k := range b.Keys() {
		if _, ok := a.Get(k); !ok {
			keys = append(keys, k)
		}
	}
	return keys
}
