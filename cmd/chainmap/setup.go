package main

import (
	"github.com/graph-guard/chainmap/pkg/alloc"
	"github.com/graph-guard/chainmap/pkg/config"
	"github.com/graph-guard/chainmap/pkg/hasher"
	"github.com/graph-guard/chainmap/pkg/hashmap"
	"github.com/graph-guard/chainmap/pkg/statistics"
	plog "github.com/phuslu/log"
)

// session holds a string-keyed map and everything it reports to.
type session[V any] struct {
	Map   *hashmap.Map[string, V]
	Stats *statistics.MapSync
	Alloc alloc.Allocator
	Log   plog.Logger
}

func newSession[V any](conf *config.Config, l plog.Logger) (*session[V], error) {
	s := &session[V]{
		Stats: statistics.NewMapSync(),
		Alloc: conf.Allocator(),
		Log:   l,
	}

	lMap := l
	lMap.Context = plog.NewContext(nil).Str("component", "hashmap").Value()

	m, err := hashmap.New[string, V](
		hasher.Default[string](),
		hashmap.WithConfig(conf.HashmapConfig()),
		hashmap.WithAllocator(s.Alloc),
		hashmap.WithLogger(&lMap),
		hashmap.WithStatistics(s.Stats),
	)
	if err != nil {
		return nil, err
	}
	s.Map = m
	return s, nil
}
