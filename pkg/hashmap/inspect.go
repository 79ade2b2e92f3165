package hashmap

import "github.com/yourbasic/bit"

// Report describes the bucket layout of a map.
type Report struct {
	Size            int
	Capacity        int
	LoadFactor      float64
	OccupiedBuckets int
	LongestChain    int

	// Occupied holds the indexes of all non-absent buckets.
	Occupied *bit.Set
}

// Inspect returns a report on the current bucket layout.
// Returns the zero report for nil and freed maps.
func (m *Map[K, V]) Inspect() (r Report) {
	r.Occupied = bit.New()
	if !m.usable() {
		return r
	}
	r.Size, r.Capacity, r.LoadFactor = m.size, m.capacity, m.LoadFactor()
	for i, b := range m.buckets {
		if b.Vector == nil {
			continue
		}
		r.Occupied.Add(i)
		if l := b.Len(); l > r.LongestChain {
			r.LongestChain = l
		}
	}
	r.OccupiedBuckets = r.Occupied.Size()
	return r
}
