// Package testeq provides test helpers comparing container contents
// to expected Go maps.
package testeq

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Writer is implemented by *testing.T and *testing.B.
type Writer interface {
	Helper()
	Errorf(format string, v ...any)
}

// Visitor calls fn for every key-value pair of a container
// until fn returns false.
type Visitor[K, V any] func(fn func(key K, value *V) bool)

// Contents reports every key that is missing, unexpected,
// visited more than once or associated with a mismatching value.
// Reports are written in key order.
func Contents[K constraints.Ordered, V any](
	w Writer,
	title string,
	expected map[K]V,
	visit Visitor[K, V],
	equal func(expected, actual V) bool,
) (ok bool) {
	w.Helper()
	ok = true

	actual := make(map[K]V, len(expected))
	visit(func(k K, v *V) bool {
		if _, dup := actual[k]; dup {
			w.Errorf("duplicate %s %v", title, k)
			ok = false
		}
		actual[k] = *v
		return true
	})

	keys := maps.Keys(expected)
	slices.Sort(keys)
	for _, k := range keys {
		e := expected[k]
		a, found := actual[k]
		switch {
		case !found:
			w.Errorf("missing %s %v (%v)", title, k, e)
			ok = false
		case !equal(e, a):
			w.Errorf("mismatching %s %v: expected %v, got %v", title, k, e, a)
			ok = false
		}
	}

	unexpected := make([]K, 0)
	for k := range actual {
		if _, found := expected[k]; !found {
			unexpected = append(unexpected, k)
		}
	}
	slices.Sort(unexpected)
	for _, k := range unexpected {
		w.Errorf("unexpected %s %v (%v)", title, k, actual[k])
		ok = false
	}

	return ok
}

// Equal is a comparison function for comparable values.
func Equal[V comparable](expected, actual V) bool { return expected == actual }
