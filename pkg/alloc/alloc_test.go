package alloc_test

import (
	"sync"
	"testing"

	"github.com/graph-guard/chainmap/pkg/alloc"
	"github.com/stretchr/testify/require"
)

func TestHeap(t *testing.T) {
	var a alloc.Allocator = alloc.Heap{}
	require.NoError(t, a.Alloc(1<<40))
	a.Free(1 << 40)
}

func TestOr(t *testing.T) {
	require.Equal(t, alloc.Heap{}, alloc.Or(nil))
	l := alloc.NewLimited(4)
	require.Same(t, l, alloc.Or(l))
}

func TestLimited(t *testing.T) {
	l := alloc.NewLimited(10)
	require.Equal(t, int64(10), l.Limit())

	require.NoError(t, l.Alloc(4))
	require.NoError(t, l.Alloc(6))
	require.Equal(t, int64(10), l.InUse())

	require.ErrorIs(t, l.Alloc(1), alloc.ErrOutOfMemory)
	require.Equal(t, int64(10), l.InUse())

	l.Free(6)
	require.Equal(t, int64(4), l.InUse())
	require.NoError(t, l.Alloc(5))
	require.ErrorIs(t, l.Alloc(2), alloc.ErrOutOfMemory)

	// Zero-sized reservations are always satisfied
	require.NoError(t, l.Alloc(0))
	l.Free(0)
	require.Equal(t, int64(9), l.InUse())
}

func TestLimitedConcurrent(t *testing.T) {
	l := alloc.NewLimited(1000)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if err := l.Alloc(1); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int64(1000), l.InUse())
	require.ErrorIs(t, l.Alloc(1), alloc.ErrOutOfMemory)
}

func TestFaulty(t *testing.T) {
	f := new(alloc.Faulty)
	require.False(t, f.Armed())
	require.NoError(t, f.Alloc(2))

	f.Arm(3)
	require.True(t, f.Armed())
	require.NoError(t, f.Alloc(1))
	require.NoError(t, f.Alloc(1))
	require.ErrorIs(t, f.Alloc(1), alloc.ErrOutOfMemory)
	require.False(t, f.Armed())
	require.NoError(t, f.Alloc(1))

	require.Equal(t, int64(5), f.InUse())
	require.Equal(t, 4, f.Allocs())
	require.Equal(t, 1, f.Failures())

	f.Free(5)
	require.Zero(t, f.InUse())

	f.Arm(1)
	f.Arm(0)
	require.NoError(t, f.Alloc(1))
}
