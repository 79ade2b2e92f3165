// Package statistics provides synchronized thread-safe statistics
// counters for maps.
package statistics

import (
	"sync/atomic"
)

// Kind of resize.
type Resize int8

const (
	_ Resize = iota
	Grow
	Shrink
)

// MapSync counts the activity of a single map.
// Counters may be read concurrently with updates.
type MapSync struct {
	inserts       int64
	erases        int64
	failedInserts int64
	failedErases  int64
	grows         int64
	shrinks       int64
	rollbacks     int64
	rehashedPairs int64
	highestSize   int64
}

func NewMapSync() *MapSync {
	return &MapSync{}
}

// Insert records an insertion attempt.
// size is the size of the map after the attempt.
func (s *MapSync) Insert(ok bool, size int) {
	if s == nil {
		return
	}
	if !ok {
		atomic.AddInt64(&s.failedInserts, 1)
		return
	}
	atomic.AddInt64(&s.inserts, 1)
	if int64(size) > atomic.LoadInt64(&s.highestSize) {
		atomic.StoreInt64(&s.highestSize, int64(size))
	}
}

// Erase records an erase attempt.
func (s *MapSync) Erase(ok bool) {
	if s == nil {
		return
	}
	if !ok {
		atomic.AddInt64(&s.failedErases, 1)
		return
	}
	atomic.AddInt64(&s.erases, 1)
}

// Resize records a committed resize that rehashed the given number of pairs.
func (s *MapSync) Resize(r Resize, rehashedPairs int) {
	if s == nil {
		return
	}
	switch r {
	case Grow:
		atomic.AddInt64(&s.grows, 1)
	case Shrink:
		atomic.AddInt64(&s.shrinks, 1)
	}
	atomic.AddInt64(&s.rehashedPairs, int64(rehashedPairs))
}

// Rollback records a reverted operation.
func (s *MapSync) Rollback() {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.rollbacks, 1)
}

func (s *MapSync) GetInserts() int64 {
	return atomic.LoadInt64(&s.inserts)
}

func (s *MapSync) GetErases() int64 {
	return atomic.LoadInt64(&s.erases)
}

func (s *MapSync) GetFailedInserts() int64 {
	return atomic.LoadInt64(&s.failedInserts)
}

func (s *MapSync) GetFailedErases() int64 {
	return atomic.LoadInt64(&s.failedErases)
}

func (s *MapSync) GetGrows() int64 {
	return atomic.LoadInt64(&s.grows)
}

func (s *MapSync) GetShrinks() int64 {
	return atomic.LoadInt64(&s.shrinks)
}

func (s *MapSync) GetRollbacks() int64 {
	return atomic.LoadInt64(&s.rollbacks)
}

func (s *MapSync) GetRehashedPairs() int64 {
	return atomic.LoadInt64(&s.rehashedPairs)
}

func (s *MapSync) GetHighestSize() int64 {
	return atomic.LoadInt64(&s.highestSize)
}
