// Package hashmap provides a separate-chaining hashmap.
//
// Buckets are vectors of pairs, each pair owns copies of its
// key and value and carries their capability sets,
// which allows the map to remain agnostic of the stored types.
// The number of buckets is always a power of two and a key is always
// stored in bucket hash(key) & (capacity - 1).
//
// Every insert and erase may trigger a full rehash into a newly
// allocated bucket array. Should any allocation fail along the way
// the map is rolled back to exactly the state it had before the call.
package hashmap

import (
	"errors"
	"fmt"

	"github.com/graph-guard/chainmap/pkg/alloc"
	"github.com/graph-guard/chainmap/pkg/hasher"
	"github.com/graph-guard/chainmap/pkg/ops"
	"github.com/graph-guard/chainmap/pkg/pair"
	"github.com/graph-guard/chainmap/pkg/statistics"
	"github.com/graph-guard/chainmap/pkg/vector"
	plog "github.com/phuslu/log"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrKeyNotFound     = errors.New("key not found")
)

type bucket[K, V any] struct {
	*vector.Vector[*pair.Pair[K, V]]
}

// Map is a separate-chaining hashmap.
// Map is not goroutine-safe.
type Map[K, V any] struct {
	size     int
	capacity int
	buckets  []bucket[K, V] // nil vector means absent bucket
	hasher   hasher.Hasher[K]
	conf     Config
	alloc    alloc.Allocator
	log      *plog.Logger
	stats    *statistics.MapSync
}

// state is the minimal mutable state restored by a rollback.
type state[K, V any] struct {
	size     int
	capacity int
	buckets  []bucket[K, V]
}

// New creates a new empty map using h as its hash policy.
func New[K, V any](h hasher.Hasher[K], opts ...Option) (*Map[K, V], error) {
	if h == nil || ops.IsNil(h) {
		return nil, fmt.Errorf("%w: missing hasher", ErrInvalidArgument)
	}
	o := options{conf: DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.conf.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, err)
	}
	m := &Map[K, V]{
		capacity: o.conf.InitialCapacity,
		hasher:   h,
		conf:     o.conf,
		alloc:    alloc.Or(o.alloc),
		log:      o.log,
		stats:    o.stats,
	}
	b, err := m.allocateBuckets(m.capacity)
	if err != nil {
		return nil, err
	}
	m.buckets = b
	return m, nil
}

// Len returns the number of stored pairs.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return m.size
}

// Cap returns the number of buckets.
func (m *Map[K, V]) Cap() int {
	if m == nil {
		return 0
	}
	return m.capacity
}

// LoadFactor returns size/capacity, or -1 for a nil or freed map.
func (m *Map[K, V]) LoadFactor() float64 {
	if !m.usable() {
		return -1
	}
	return float64(m.size) / float64(m.capacity)
}

// Insert inserts a copy of p.
// Returns ErrDuplicateKey if the key already exists,
// existing associations are never overwritten.
func (m *Map[K, V]) Insert(p *pair.Pair[K, V]) (err error) {
	if !m.usable() || !p.Valid() {
		return ErrInvalidArgument
	}
	defer func() { m.stats.Insert(err == nil, m.size) }()

	if m.At(p.Key()) != nil {
		return ErrDuplicateKey
	}

	s := m.snapshot()
	m.size++

	buckets, resized := m.buckets, false
	if m.LoadFactor() > m.conf.MaxLoadFactor {
		m.capacity *= m.conf.GrowthFactor
		if buckets, err = m.rehash(s.buckets, m.capacity); err != nil {
			m.rollback(s, nil, err)
			return fmt.Errorf("growing to %d buckets: %w", s.capacity*m.conf.GrowthFactor, err)
		}
		resized = true
	}

	i, created := m.index(p.Key(), m.capacity), false
	if buckets[i].Vector == nil {
		if buckets[i], err = m.newBucket(); err != nil {
			m.rollback(s, discard(buckets, resized), err)
			return fmt.Errorf("allocating bucket: %w", err)
		}
		created = true
	}

	if err = buckets[i].PushBack(p); err != nil {
		if created {
			buckets[i].Free()
			buckets[i].Vector = nil
		}
		m.rollback(s, discard(buckets, resized), err)
		return fmt.Errorf("inserting pair: %w", err)
	}

	if resized {
		m.commit(s, buckets, statistics.Grow)
	}
	return nil
}

// Erase removes and destroys the pair associated with key.
// Returns ErrKeyNotFound if the key doesn't exist.
func (m *Map[K, V]) Erase(key K) (err error) {
	if !m.usable() || ops.IsNil(key) {
		return ErrInvalidArgument
	}
	defer func() { m.stats.Erase(err == nil) }()

	if m.size < 1 {
		return ErrKeyNotFound
	}

	s := m.snapshot()
	m.size--

	buckets, resized := m.buckets, false
	if m.LoadFactor() < m.conf.MinLoadFactor &&
		m.capacity/m.conf.GrowthFactor >= MinCapacity {
		m.capacity /= m.conf.GrowthFactor
		if buckets, err = m.rehash(s.buckets, m.capacity); err != nil {
			m.rollback(s, nil, err)
			return fmt.Errorf("shrinking to %d buckets: %w", s.capacity/m.conf.GrowthFactor, err)
		}
		resized = true
	}

	i := m.index(key, m.capacity)
	loc := locate(buckets[i], key)
	if loc < 0 {
		if resized {
			m.rollback(s, buckets, ErrKeyNotFound)
		} else {
			m.restore(s)
		}
		return ErrKeyNotFound
	}

	if buckets[i].Len() == 1 {
		// Last pair in the bucket, release the bucket instead of shrinking it.
		buckets[i].Free()
		buckets[i].Vector = nil
	} else if err = buckets[i].Erase(loc); err != nil {
		m.rollback(s, discard(buckets, resized), err)
		return fmt.Errorf("erasing pair: %w", err)
	}

	if resized {
		m.commit(s, buckets, statistics.Shrink)
	}
	return nil
}

// At returns a pointer to the value associated with key,
// not a copy of it, or nil if the key doesn't exist.
// The value may be modified through the pointer.
func (m *Map[K, V]) At(key K) *V {
	if !m.usable() || ops.IsNil(key) {
		return nil
	}
	b := m.buckets[m.index(key, m.capacity)]
	if l := locate(b, key); l >= 0 {
		p, _ := b.At(l)
		return p.Value()
	}
	return nil
}

// Get returns a copy of the value associated with key and true,
// otherwise returns (zeroValue, false).
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	if v := m.At(key); v != nil {
		return *v, true
	}
	return value, false
}

// Contains returns true if key exists.
func (m *Map[K, V]) Contains(key K) bool {
	return m.At(key) != nil
}

// ApplyIf calls fn on every value associated with
// a key satisfying pred and returns the number of calls.
// Returns -1 for nil or freed maps and nil callbacks.
func (m *Map[K, V]) ApplyIf(pred func(K) bool, fn func(*V)) int {
	if !m.usable() || pred == nil || fn == nil {
		return -1
	}
	count := 0
	m.Visit(func(k K, v *V) bool {
		if pred(k) {
			fn(v)
			count++
		}
		return true
	})
	return count
}

// Visit calls fn for every stored pair in bucket and slot order.
// Returns immediately if fn returns false.
func (m *Map[K, V]) Visit(fn func(key K, value *V) bool) {
	if !m.usable() {
		return
	}
	for _, b := range m.buckets {
		stop := false
		b.Visit(func(_ int, p *pair.Pair[K, V]) bool {
			stop = !fn(p.Key(), p.Value())
			return !stop
		})
		if stop {
			return
		}
	}
}

// Free destroys all pairs and releases all buckets.
// The map can't be used after it was freed.
func (m *Map[K, V]) Free() {
	if !m.usable() {
		return
	}
	m.freeBuckets(m.buckets)
	m.buckets, m.size = nil, 0
}

func (m *Map[K, V]) usable() bool { return m != nil && m.buckets != nil }

func (m *Map[K, V]) index(key K, capacity int) int {
	return int(m.hasher.Hash(key) & uint64(capacity-1))
}

// rehash creates a new bucket array of the given capacity holding
// copies of all pairs in old. old is never modified.
func (m *Map[K, V]) rehash(old []bucket[K, V], capacity int) ([]bucket[K, V], error) {
	nb, err := m.allocateBuckets(capacity)
	if err != nil {
		return nil, err
	}
	for _, b := range old {
		b.Visit(func(_ int, p *pair.Pair[K, V]) bool {
			i := m.index(p.Key(), capacity)
			if nb[i].Vector == nil {
				if nb[i], err = m.newBucket(); err != nil {
					return false
				}
			}
			err = nb[i].PushBack(p)
			return err == nil
		})
		if err != nil {
			m.freeBuckets(nb)
			return nil, err
		}
	}
	return nb, nil
}

func (m *Map[K, V]) snapshot() state[K, V] {
	return state[K, V]{
		size:     m.size,
		capacity: m.capacity,
		buckets:  m.buckets,
	}
}

func (m *Map[K, V]) restore(s state[K, V]) {
	m.size, m.capacity, m.buckets = s.size, s.capacity, s.buckets
}

// rollback releases the discarded bucket array if any
// and restores the state s.
func (m *Map[K, V]) rollback(s state[K, V], discarded []bucket[K, V], reason error) {
	if discarded != nil {
		m.freeBuckets(discarded)
	}
	m.restore(s)
	m.stats.Rollback()
	if m.log != nil {
		m.log.Warn().
			Err(reason).
			Int("size", m.size).
			Int("capacity", m.capacity).
			Msg("rollback")
	}
}

// commit adopts the new bucket array and releases the old one.
func (m *Map[K, V]) commit(s state[K, V], buckets []bucket[K, V], r statistics.Resize) {
	m.freeBuckets(s.buckets)
	m.buckets = buckets
	rehashed := s.size
	m.stats.Resize(r, rehashed)
	if m.log != nil {
		m.log.Debug().
			Int("from", s.capacity).
			Int("to", m.capacity).
			Int("pairs", rehashed).
			Msg("rehashed")
	}
}

func (m *Map[K, V]) newBucket() (bucket[K, V], error) {
	v, err := vector.New(m.alloc, pair.Ops[K, V](m.alloc), m.conf.Bucket)
	return bucket[K, V]{v}, err
}

func (m *Map[K, V]) allocateBuckets(capacity int) ([]bucket[K, V], error) {
	if err := m.alloc.Alloc(capacity); err != nil {
		return nil, err
	}
	return make([]bucket[K, V], capacity), nil
}

func (m *Map[K, V]) freeBuckets(b []bucket[K, V]) {
	for i := range b {
		b[i].Free()
		b[i].Vector = nil
	}
	m.alloc.Free(len(b))
}

// discard returns b if it was resized, otherwise returns nil.
func discard[K, V any](b []bucket[K, V], resized bool) []bucket[K, V] {
	if resized {
		return b
	}
	return nil
}

// locate returns the index of key in b or -1 if b doesn't contain key.
func locate[K, V any](b bucket[K, V], key K) int {
	for i := 0; i < b.Len(); i++ {
		if p, _ := b.At(i); p.KeyEqual(key) {
			return i
		}
	}
	return -1
}
