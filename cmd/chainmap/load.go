package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/graph-guard/chainmap/pkg/cli"
	"github.com/graph-guard/chainmap/pkg/config"
	"github.com/graph-guard/chainmap/pkg/hashmap"
	"github.com/graph-guard/chainmap/pkg/ops"
	"github.com/graph-guard/chainmap/pkg/pair"
	"github.com/tidwall/gjson"
)

func load(w io.Writer, c cli.CommandLoad) (ok bool) {
	conf := ReadConfig(w, c.ConfigPath)
	if conf == nil {
		return false
	}
	data, err := os.ReadFile(c.InputPath)
	if err != nil {
		fmt.Fprintf(w, "reading input: %s\n", err)
		return false
	}
	return loadJSON(w, conf, data)
}

// loadJSON inserts every top-level member of the JSON object in data
// mapping its name to its raw JSON value.
func loadJSON(w io.Writer, conf *config.Config, data []byte) (ok bool) {
	if !gjson.ValidBytes(data) {
		fmt.Fprintln(w, "invalid JSON input")
		return false
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		fmt.Fprintf(w, "expected JSON object, got %s\n", root.Type)
		return false
	}

	s, err := newSession[string](conf, conf.Logger(w))
	if err != nil {
		fmt.Fprintf(w, "initializing map: %s\n", err)
		return false
	}
	defer s.Map.Free()

	ok = true
	strOps := ops.Comparable[string]()
	root.ForEach(func(key, value gjson.Result) bool {
		p, err := pair.New(s.Alloc, key.String(), value.Raw, strOps, strOps)
		if err != nil {
			s.Log.Error().Err(err).Str("key", key.String()).Msg("creating pair")
			ok = false
			return false
		}
		err = s.Map.Insert(p)
		p.Destroy()

		switch {
		case errors.Is(err, hashmap.ErrDuplicateKey):
			s.Log.Warn().Str("key", key.String()).Msg("ignoring duplicate key")
		case err != nil:
			s.Log.Error().Err(err).Str("key", key.String()).Msg("inserting")
			ok = false
			return false
		}
		return true
	})

	writeReport(w, s.Map.Inspect(), s.Stats, s.Alloc)
	return ok
}
