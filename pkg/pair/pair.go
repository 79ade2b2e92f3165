// Package pair provides an owning key-value entry that carries
// the capability sets of its key and value types.
package pair

import (
	"errors"
	"fmt"

	"github.com/graph-guard/chainmap/pkg/alloc"
	"github.com/graph-guard/chainmap/pkg/ops"
)

var ErrInvalidArgument = errors.New("invalid argument")

// Pair is a key-value pair owning copies of its key and value.
type Pair[K, V any] struct {
	key      K
	value    V
	keyOps   ops.Set[K]
	valueOps ops.Set[V]
	alloc    alloc.Allocator
	freed    bool
}

// New creates a new pair holding copies of key and value.
// Every pair reserves one slot from a, which may be nil
// in which case alloc.Heap is used.
// If the value can't be copied the key copy is destroyed.
func New[K, V any](
	a alloc.Allocator,
	key K,
	value V,
	keyOps ops.Set[K],
	valueOps ops.Set[V],
) (*Pair[K, V], error) {
	if !keyOps.Valid() || !valueOps.Valid() {
		return nil, fmt.Errorf("%w: missing capability", ErrInvalidArgument)
	}
	if ops.IsNil(key) {
		return nil, fmt.Errorf("%w: nil key", ErrInvalidArgument)
	}
	if ops.IsNil(value) {
		return nil, fmt.Errorf("%w: nil value", ErrInvalidArgument)
	}

	a = alloc.Or(a)
	if err := a.Alloc(1); err != nil {
		return nil, err
	}
	k, err := keyOps.Copy(key)
	if err != nil {
		a.Free(1)
		return nil, fmt.Errorf("copying key: %w", err)
	}
	v, err := valueOps.Copy(value)
	if err != nil {
		keyOps.Destroy(&k)
		a.Free(1)
		return nil, fmt.Errorf("copying value: %w", err)
	}
	return &Pair[K, V]{
		key:      k,
		value:    v,
		keyOps:   keyOps,
		valueOps: valueOps,
		alloc:    a,
	}, nil
}

// Key returns the stored key.
func (p *Pair[K, V]) Key() K { return p.key }

// Value returns a pointer to the stored value, not a copy of it.
func (p *Pair[K, V]) Value() *V { return &p.value }

// KeyEqual compares k to the stored key using the key capability set.
func (p *Pair[K, V]) KeyEqual(k K) bool {
	return p.keyOps.Equal(p.key, k)
}

// Equal returns true if both key and value of p and o are equal.
func (p *Pair[K, V]) Equal(o *Pair[K, V]) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.keyOps.Equal(p.key, o.key) &&
		p.valueOps.Equal(p.value, o.value)
}

// Clone returns a deep copy of p.
func (p *Pair[K, V]) Clone() (*Pair[K, V], error) {
	if p == nil {
		return nil, ErrInvalidArgument
	}
	return New(p.alloc, p.key, p.value, p.keyOps, p.valueOps)
}

// Valid returns false if either key or value is nil,
// which is the case after the pair was destroyed.
func (p *Pair[K, V]) Valid() bool {
	return p != nil && !p.freed && !ops.IsNil(p.key) && !ops.IsNil(p.value)
}

// Destroy destroys the key, then the value
// and releases the slot reserved by the pair.
// Noop for nil and already destroyed pairs.
func (p *Pair[K, V]) Destroy() {
	if p == nil || p.freed {
		return
	}
	p.keyOps.Destroy(&p.key)
	p.valueOps.Destroy(&p.value)
	p.alloc.Free(1)
	p.freed = true
}

// Ops returns the capability set for storing pairs in containers.
// Copies reserve their slot from a, which may be nil
// in which case alloc.Heap is used. Destroying a pair destroys
// the entry and resets the handle to nil.
func Ops[K, V any](a alloc.Allocator) ops.Set[*Pair[K, V]] {
	return ops.Set[*Pair[K, V]]{
		Copy: func(p *Pair[K, V]) (*Pair[K, V], error) {
			if p == nil {
				return nil, ErrInvalidArgument
			}
			return New(a, p.key, p.value, p.keyOps, p.valueOps)
		},
		Equal: func(a, b *Pair[K, V]) bool {
			return a.Equal(b)
		},
		Destroy: func(p **Pair[K, V]) {
			if p == nil {
				return
			}
			(*p).Destroy()
			*p = nil
		},
	}
}
