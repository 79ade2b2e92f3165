// Package hasher provides hash policies for the hashmap.
// By default, string and byte slice keys are hashed with XXH3
// from github.com/zeebo/xxh3 using seed 0.
package hasher

import (
	"github.com/pierrec/xxHash/xxHash64"
	"github.com/zeebo/xxh3"
	"golang.org/x/exp/constraints"
)

// Hasher is a pure and deterministic hash policy.
// Results don't need to be bound to any range.
type Hasher[K any] interface{ Hash(K) uint64 }

// Func is an adapter allowing ordinary functions to be used as hashers.
type Func[K any] func(K) uint64

// Hash calls fn(k).
func (fn Func[K]) Hash(k K) uint64 { return fn(k) }

type KeyInterface interface{ string | []byte }

// XXH3 can be used to provide custom seeds during initialization.
type XXH3[K KeyInterface] struct {
	Seed uint64
}

// Hash hashes k to a 64-bit hash value.
func (h *XXH3[K]) Hash(k K) uint64 {
	if h.Seed == 0 {
		return xxh3.Hash([]byte(k))
	}
	return xxh3.HashSeed([]byte(k), h.Seed)
}

// XXH64 hashes keys with the 64-bit variant of xxHash.
type XXH64[K KeyInterface] struct {
	Seed uint64
}

// Hash hashes k to a 64-bit hash value.
func (h *XXH64[K]) Hash(k K) uint64 {
	return xxHash64.Checksum([]byte(k), h.Seed)
}

// Integer hashes integers to themselves.
// Negative numbers are sign-extended.
type Integer[K constraints.Integer] struct{}

func (Integer[K]) Hash(k K) uint64 { return uint64(k) }

var (
	defaultString = &XXH3[string]{}
	defaultBytes  = &XXH3[[]byte]{}
)

// Default returns the default hasher for K,
// or nil if there is no default hasher for K.
func Default[K any]() Hasher[K] {
	var zero K
	switch any(zero).(type) {
	case string:
		return any(defaultString).(Hasher[K])
	case []byte:
		return any(defaultBytes).(Hasher[K])
	case int:
		return any(Integer[int]{}).(Hasher[K])
	case int8:
		return any(Integer[int8]{}).(Hasher[K])
	case int16:
		return any(Integer[int16]{}).(Hasher[K])
	case int32:
		return any(Integer[int32]{}).(Hasher[K])
	case int64:
		return any(Integer[int64]{}).(Hasher[K])
	case uint:
		return any(Integer[uint]{}).(Hasher[K])
	case uint8:
		return any(Integer[uint8]{}).(Hasher[K])
	case uint16:
		return any(Integer[uint16]{}).(Hasher[K])
	case uint32:
		return any(Integer[uint32]{}).(Hasher[K])
	case uint64:
		return any(Integer[uint64]{}).(Hasher[K])
	}
	return nil
}
