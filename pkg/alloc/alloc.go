// Package alloc provides storage accounting for the containers.
//
// Containers never call make directly for their owned storage.
// Instead they reserve slots from an Allocator first, which allows
// memory limits to be enforced and allocation failures to be simulated.
// A failed reservation is always reported as ErrOutOfMemory
// and must leave the container unchanged.
package alloc

import (
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrOutOfMemory is returned when a reservation can't be satisfied.
var ErrOutOfMemory = errors.New("out of memory")

// Allocator reserves and releases storage slots.
// A slot is the storage required for one element handle.
type Allocator interface {
	// Alloc reserves n slots.
	Alloc(n int) error

	// Free releases n previously reserved slots.
	Free(n int)
}

// Heap is an unbounded allocator that never fails.
type Heap struct{}

func (Heap) Alloc(int) error { return nil }
func (Heap) Free(int)        {}

// Or returns a if it's not nil, otherwise returns Heap.
func Or(a Allocator) Allocator {
	if a == nil {
		return Heap{}
	}
	return a
}

// Limited is a goroutine-safe allocator enforcing a hard slot limit.
// Reservations are non-blocking, exceeding the limit fails immediately.
type Limited struct {
	limit int64
	sem   *semaphore.Weighted
	inUse int64
}

// NewLimited creates a new allocator with a budget of limit slots.
func NewLimited(limit int64) *Limited {
	return &Limited{
		limit: limit,
		sem:   semaphore.NewWeighted(limit),
	}
}

// Alloc reserves n slots or returns ErrOutOfMemory
// if the reservation would exceed the limit.
func (l *Limited) Alloc(n int) error {
	if n <= 0 {
		return nil
	}
	if !l.sem.TryAcquire(int64(n)) {
		return ErrOutOfMemory
	}
	atomic.AddInt64(&l.inUse, int64(n))
	return nil
}

// Free releases n slots.
func (l *Limited) Free(n int) {
	if n <= 0 {
		return
	}
	atomic.AddInt64(&l.inUse, -int64(n))
	l.sem.Release(int64(n))
}

// InUse returns the number of reserved slots.
func (l *Limited) InUse() int64 { return atomic.LoadInt64(&l.inUse) }

// Limit returns the slot budget.
func (l *Limited) Limit() int64 { return l.limit }
