// Package ops defines capability sets, the bundle of copy, compare
// and destroy operations that make the containers generic over
// the stored element type.
package ops

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// Set is a capability set for values of type T.
type Set[T any] struct {
	// Copy returns a fully independent duplicate of v
	// or an error if it can't be duplicated.
	Copy func(v T) (T, error)

	// Equal reports whether a and b are equal.
	Equal func(a, b T) bool

	// Destroy releases v and resets it to the zero value.
	// Destroy must be safe to call on a zero value.
	Destroy func(v *T)
}

// Valid returns true if all capabilities are present.
func (s Set[T]) Valid() bool {
	return s.Copy != nil && s.Equal != nil && s.Destroy != nil
}

// Comparable returns the capability set for plain values
// that are copied by assignment and compared with ==.
func Comparable[T comparable]() Set[T] {
	return Set[T]{
		Copy:    func(v T) (T, error) { return v, nil },
		Equal:   func(a, b T) bool { return a == b },
		Destroy: Zero[T],
	}
}

// Deep returns a capability set for values compared by deep equality.
// Values are copied by assignment, which is only safe for types
// not sharing mutable memory.
func Deep[T any]() Set[T] {
	return Set[T]{
		Copy:    func(v T) (T, error) { return v, nil },
		Equal:   func(a, b T) bool { return cmp.Equal(a, b) },
		Destroy: Zero[T],
	}
}

// Bytes returns the capability set for byte slices.
// Copies never alias the original.
func Bytes() Set[[]byte] {
	return Set[[]byte]{
		Copy: func(v []byte) ([]byte, error) {
			if v == nil {
				return nil, nil
			}
			c := make([]byte, len(v))
			copy(c, v)
			return c, nil
		},
		Equal:   func(a, b []byte) bool { return string(a) == string(b) },
		Destroy: Zero[[]byte],
	}
}

// Zero resets *v to the zero value of T. Noop for nil pointers.
func Zero[T any](v *T) {
	if v == nil {
		return
	}
	var z T
	*v = z
}

// IsNil returns true if v is nil or holds a nil
// pointer, map, slice, function, channel or interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	switch r := reflect.ValueOf(v); r.Kind() {
	case reflect.Pointer,
		reflect.Map,
		reflect.Slice,
		reflect.Func,
		reflect.Chan,
		reflect.Interface,
		reflect.UnsafePointer:
		return r.IsNil()
	}
	return false
}
