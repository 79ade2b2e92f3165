package alloc

// Faulty is an unbounded allocator that can be armed to fail
// exactly one future reservation. It keeps track of reserved slots
// which makes it suitable for leak detection.
//
// Faulty is not goroutine-safe.
type Faulty struct {
	countdown int
	inUse     int64
	allocs    int
	failures  int
}

// Arm makes the n-th subsequent reservation fail (n starts at 1).
// Arm(0) disarms the allocator.
func (f *Faulty) Arm(n int) { f.countdown = n }

// Armed returns true if a failure is still pending.
func (f *Faulty) Armed() bool { return f.countdown > 0 }

func (f *Faulty) Alloc(n int) error {
	if f.countdown > 0 {
		f.countdown--
		if f.countdown == 0 {
			f.failures++
			return ErrOutOfMemory
		}
	}
	f.allocs++
	f.inUse += int64(n)
	return nil
}

func (f *Faulty) Free(n int) { f.inUse -= int64(n) }

// InUse returns the number of reserved slots.
func (f *Faulty) InUse() int64 { return f.inUse }

// Allocs returns the number of successful reservations.
func (f *Faulty) Allocs() int { return f.allocs }

// Failures returns the number of injected failures.
func (f *Faulty) Failures() int { return f.failures }
