package hashmap

// Layout returns the keys of every bucket in slot order.
// Absent buckets are represented by nil.
func Layout[K, V any](m *Map[K, V]) [][]K {
	if !m.usable() {
		return nil
	}
	l := make([][]K, len(m.buckets))
	for i, b := range m.buckets {
		if b.Vector == nil {
			continue
		}
		l[i] = make([]K, 0, b.Len())
		for j := 0; j < b.Len(); j++ {
			p, _ := b.At(j)
			l[i] = append(l[i], p.Key())
		}
	}
	return l
}

// BucketIndex returns the index of the bucket key belongs to.
func BucketIndex[K, V any](m *Map[K, V], key K) int {
	return m.index(key, m.capacity)
}
