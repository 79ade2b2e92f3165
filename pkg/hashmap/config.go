package hashmap

import (
	"fmt"

	"github.com/graph-guard/chainmap/pkg/alloc"
	"github.com/graph-guard/chainmap/pkg/math"
	"github.com/graph-guard/chainmap/pkg/statistics"
	"github.com/graph-guard/chainmap/pkg/vector"
	plog "github.com/phuslu/log"
)

// MinCapacity is the smallest number of buckets a map ever shrinks to.
const MinCapacity = 1

// Config defines the capacity management policy of a map
// and the policy of its bucket vectors.
type Config struct {
	InitialCapacity int
	GrowthFactor    int
	MaxLoadFactor   float64
	MinLoadFactor   float64
	Bucket          vector.Config
}

// DefaultConfig returns the default policy.
func DefaultConfig() Config {
	return Config{
		InitialCapacity: 16,
		GrowthFactor:    2,
		MaxLoadFactor:   0.75,
		MinLoadFactor:   0.25,
		Bucket:          vector.DefaultConfig(),
	}
}

// Validate returns an error if c doesn't keep the capacity
// a power of two or would make the map resize back and forth.
func (c Config) Validate() error {
	switch {
	case !math.IsPowerOfTwo(c.InitialCapacity):
		return fmt.Errorf("initial capacity (%d) must be a power of two",
			c.InitialCapacity)
	case c.GrowthFactor < 2 || !math.IsPowerOfTwo(c.GrowthFactor):
		return fmt.Errorf("growth factor (%d) must be a power of two "+
			"greater than 1", c.GrowthFactor)
	case c.MaxLoadFactor <= 0:
		return fmt.Errorf("max load factor (%g) must be positive",
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
	if err := c.Bucket.Validate(); err != nil {
		return fmt.Errorf("bucket: %w", err)
	}
	return nil
}

type options struct {
	conf  Config
	alloc alloc.Allocator
	log   *plog.Logger
	stats *statistics.MapSync
}

// Option configures a map during initialization.
type Option func(*options)

// WithConfig replaces DefaultConfig.
func WithConfig(c Config) Option {
	return func(o *options) { o.conf = c }
}

// WithAllocator makes the map reserve all of its storage from a.
func WithAllocator(a alloc.Allocator) Option {
	return func(o *options) { o.alloc = a }
}

// WithLogger enables logging of resizes and rollbacks.
func WithLogger(l *plog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithStatistics makes the map report its activity to s.
func WithStatistics(s *statistics.MapSync) Option {
	return func(o *options) { o.stats = s }
}
