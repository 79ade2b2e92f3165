// Package vector provides a growable array of owned elements.
//
// The vector stores its own copies of the elements it receives,
// duplicating and destroying them through a capability set.
// The capacity grows and shrinks geometrically
// when the load factor crosses the configured thresholds.
// Every operation either succeeds or leaves the vector unchanged.
package vector

import (
	"errors"
	"fmt"

	"github.com/graph-guard/chainmap/pkg/alloc"
	"github.com/graph-guard/chainmap/pkg/ops"
)

// MinCapacity is the smallest capacity a vector ever shrinks to.
const MinCapacity = 1

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Config defines the capacity management policy.
type Config struct {
	InitialCapacity int
	GrowthFactor    int
	MaxLoadFactor   float64
	MinLoadFactor   float64
}

// DefaultConfig returns the default capacity management policy.
func DefaultConfig() Config {
	return Config{
		InitialCapacity: 16,
		GrowthFactor:    2,
		MaxLoadFactor:   0.75,
		MinLoadFactor:   0.25,
	}
}

// Validate returns an error if c can't guarantee amortized growth.
func (c Config) Validate() error {
	switch {
	case c.InitialCapacity < MinCapacity:
		return fmt.Errorf("initial capacity (%d) must be at least %d",
			c.InitialCapacity, MinCapacity)
	case c.GrowthFactor < 2:
		return fmt.Errorf("growth factor (%d) must be at least 2",
			c.GrowthFactor)
	case c.MaxLoadFactor <= 0 || c.MaxLoadFactor >= 1:
		return fmt.Errorf("max load factor (%g) must be in (0, 1)",
			c.MaxLoadFactor)
	case c.MinLoadFactor < 0:
		return fmt.Errorf("min load factor (%g) must not be negative",
			c.MinLoadFactor)
	case c.MinLoadFactor*float64(c.GrowthFactor) >= c.MaxLoadFactor:
		return fmt.Errorf(
			"min load factor (%g) times growth factor (%d) "+
				"must be less than max load factor (%g)",
			c.MinLoadFactor, c.GrowthFactor, c.MaxLoadFactor,
		)
	}
	return nil
}

// Vector is a growable array of owned elements.
// Vector is not goroutine-safe.
type Vector[T any] struct {
	size  int
	d     []T // len(d) is the capacity
	ops   ops.Set[T]
	conf  Config
	alloc alloc.Allocator
}

// New creates a new empty vector.
// a may be nil in which case alloc.Heap is used.
func New[T any](
	a alloc.Allocator,
	set ops.Set[T],
	conf Config,
) (*Vector[T], error) {
	if !set.Valid() {
		return nil, fmt.Errorf("%w: missing capability", ErrInvalidArgument)
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, err)
	}
	v := &Vector[T]{
		ops:   set,
		conf:  conf,
		alloc: alloc.Or(a),
	}
	d, err := v.allocate(conf.InitialCapacity)
	if err != nil {
		return nil, err
	}
	v.d = d
	return v, nil
}

// Len returns the number of stored elements.
func (v *Vector[T]) Len() int {
	if v == nil {
		return 0
	}
	return v.size
}

// Cap returns the number of allocated slots.
func (v *Vector[T]) Cap() int {
	if v == nil {
		return 0
	}
	return len(v.d)
}

// At returns the element at index i, not a copy of it.
// Returns (zeroValue, false) if i is out of range.
func (v *Vector[T]) At(i int) (e T, ok bool) {
	if v == nil || i < 0 || i >= v.size {
		return e, false
	}
	return v.d[i], true
}

// Find returns the index of the first element equal to value,
// otherwise returns -1.
func (v *Vector[T]) Find(value T) int {
	if v == nil {
		return -1
	}
	for i := 0; i < v.size; i++ {
		if v.ops.Equal(v.d[i], value) {
			return i
		}
	}
	return -1
}

// LoadFactor returns size/capacity, or -1 for a nil or freed vector.
func (v *Vector[T]) LoadFactor() float64 {
	if !v.usable() {
		return -1
	}
	return float64(v.size) / float64(len(v.d))
}

// PushBack appends a copy of value.
// If the buffer can't be grown the copy is destroyed
// and the vector remains unchanged.
func (v *Vector[T]) PushBack(value T) error {
	if !v.usable() {
		return ErrInvalidArgument
	}
	c, err := v.ops.Copy(value)
	if err != nil {
		return fmt.Errorf("copying element: %w", err)
	}
	v.d[v.size] = c
	v.size++

	if v.LoadFactor() > v.conf.MaxLoadFactor {
		newCap := len(v.d) * v.conf.GrowthFactor
		if err := v.resize(newCap); err != nil {
			v.size--
			v.ops.Destroy(&v.d[v.size])
			return fmt.Errorf("growing to %d: %w", newCap, err)
		}
	}
	return nil
}

// Erase destroys the element at index i and shifts
// all subsequent elements to the left.
// If the buffer needs to shrink but can't be reallocated
// the element isn't erased and the vector remains unchanged.
func (v *Vector[T]) Erase(i int) error {
	if !v.usable() {
		return ErrInvalidArgument
	}
	if i < 0 || i >= v.size {
		return ErrIndexOutOfRange
	}

	d := v.d
	if newCap, ok := v.shrinkTo(v.size - 1); ok {
		nd, err := v.allocate(newCap)
		if err != nil {
			return fmt.Errorf("shrinking to %d: %w", newCap, err)
		}
		d = nd
		copy(d, v.d[:i])
	}

	v.ops.Destroy(&v.d[i])
	copy(d[i:], v.d[i+1:v.size])
	v.size--
	if len(d) != len(v.d) {
		v.release(v.d)
		v.d = d
		return nil
	}
	var zero T
	v.d[v.size] = zero
	return nil
}

// Clear destroys all elements from the last to the first.
// Shrinking is performed on a best effort basis:
// if the buffer can't be shrunk the element is destroyed in place.
func (v *Vector[T]) Clear() {
	if v == nil {
		return
	}
	for v.size > 0 {
		if v.Erase(v.size-1) == nil {
			continue
		}
		v.size--
		v.ops.Destroy(&v.d[v.size])
	}
}

// Free destroys all elements and releases the buffer.
// Noop for nil vectors and vectors that were already freed.
// A freed vector can't be pushed to or erased from.
func (v *Vector[T]) Free() {
	if v == nil || v.d == nil {
		return
	}
	v.Clear()
	v.release(v.d)
	v.d = nil
}

// Visit calls fn for every element in index order.
// Returns immediately if fn returns false.
func (v *Vector[T]) Visit(fn func(i int, e T) bool) {
	if v == nil {
		return
	}
	for i := 0; i < v.size; i++ {
		if !fn(i, v.d[i]) {
			return
		}
	}
}

func (v *Vector[T]) usable() bool { return v != nil && v.d != nil }

// shrinkTo returns the capacity a vector holding size elements
// must shrink to and true, or false if no shrinking is required.
func (v *Vector[T]) shrinkTo(size int) (newCap int, ok bool) {
	newCap = len(v.d) / v.conf.GrowthFactor
	if newCap < MinCapacity {
		return 0, false
	}
	if float64(size)/float64(len(v.d)) >= v.conf.MinLoadFactor {
		return 0, false
	}
	return newCap, true
}

// resize moves all elements into a newly allocated buffer of newCap slots.
func (v *Vector[T]) resize(newCap int) error {
	d, err := v.allocate(newCap)
	if err != nil {
		return err
	}
	copy(d, v.d[:v.size])
	v.release(v.d)
	v.d = d
	return nil
}

func (v *Vector[T]) allocate(n int) ([]T, error) {
	if err := v.alloc.Alloc(n); err != nil {
		return nil, err
	}
	return make([]T, n), nil
}

func (v *Vector[T]) release(d []T) {
	v.alloc.Free(len(d))
}
