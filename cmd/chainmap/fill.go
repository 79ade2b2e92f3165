package main

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/graph-guard/chainmap/pkg/cli"
	"github.com/graph-guard/chainmap/pkg/config"
	"github.com/graph-guard/chainmap/pkg/math"
	"github.com/graph-guard/chainmap/pkg/ops"
	"github.com/graph-guard/chainmap/pkg/pair"
)

func fill(w io.Writer, c cli.CommandFill) (ok bool) {
	conf := ReadConfig(w, c.ConfigPath)
	if conf == nil {
		return false
	}
	return fillKeys(w, conf, c.Insert, c.Erase, uuid.NewString)
}

// fillKeys inserts n keys produced by newKey mapping each key
// to its insertion index, then erases the first erase keys.
func fillKeys(
	w io.Writer,
	conf *config.Config,
	n, erase int,
	newKey func() string,
) (ok bool) {
	s, err := newSession[int](conf, conf.Logger(w))
	if err != nil {
		fmt.Fprintf(w, "initializing map: %s\n", err)
		return false
	}
	defer s.Map.Free()

	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		k := newKey()
		p, err := pair.New(s.Alloc, k, i, ops.Comparable[string](), ops.Comparable[int]())
		if err != nil {
			s.Log.Error().Err(err).Int("index", i).Msg("creating pair")
			return false
		}
		err = s.Map.Insert(p)
		p.Destroy()
		if err != nil {
			s.Log.Error().Err(err).Str("key", k).Msg("inserting")
			writeReport(w, s.Map.Inspect(), s.Stats, s.Alloc)
			return false
		}
		keys = append(keys, k)
	}

	for _, k := range keys[:math.Max(0, math.Min(erase, len(keys)))] {
		if err := s.Map.Erase(k); err != nil {
			s.Log.Error().Err(err).Str("key", k).Msg("erasing")
			writeReport(w, s.Map.Inspect(), s.Stats, s.Alloc)
			return false
		}
	}

	writeReport(w, s.Map.Inspect(), s.Stats, s.Alloc)
	return true
}
