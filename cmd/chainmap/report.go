package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/graph-guard/chainmap/pkg/alloc"
	"github.com/graph-guard/chainmap/pkg/hashmap"
	"github.com/graph-guard/chainmap/pkg/statistics"
)

// maxPrintedBuckets is the largest capacity for which
// the set of occupied buckets is printed.
const maxPrintedBuckets = 64

func writeReport(
	w io.Writer,
	r hashmap.Report,
	s *statistics.MapSync,
	a alloc.Allocator,
) {
	c := func(n int64) string { return humanize.Comma(n) }

	occupancy := 0.0
	if r.Capacity > 0 {
		occupancy = float64(r.OccupiedBuckets) / float64(r.Capacity) * 100
	}

	fmt.Fprintf(w, "size: %s\n", c(int64(r.Size)))
	fmt.Fprintf(w, "capacity: %s\n", c(int64(r.Capacity)))
	fmt.Fprintf(w, "load factor: %s\n", humanize.Ftoa(r.LoadFactor))
	fmt.Fprintf(w, "occupied buckets: %s (%s%%)\n",
		c(int64(r.OccupiedBuckets)), humanize.FormatFloat("#.##", occupancy))
	if r.Capacity <= maxPrintedBuckets {
		fmt.Fprintf(w, "occupied: %s\n", r.Occupied)
	}
	fmt.Fprintf(w, "longest chain: %s\n", c(int64(r.LongestChain)))

	fmt.Fprintf(w, "inserts: %s (failed: %s)\n",
		c(s.GetInserts()), c(s.GetFailedInserts()))
	fmt.Fprintf(w, "erases: %s (failed: %s)\n",
		c(s.GetErases()), c(s.GetFailedErases()))
	fmt.Fprintf(w, "grows: %s, shrinks: %s, rollbacks: %s\n",
		c(s.GetGrows()), c(s.GetShrinks()), c(s.GetRollbacks()))
	fmt.Fprintf(w, "rehashed pairs: %s\n", c(s.GetRehashedPairs()))
	fmt.Fprintf(w, "highest size: %s\n", c(s.GetHighestSize()))

	if l, ok := a.(*alloc.Limited); ok {
		fmt.Fprintf(w, "slots in use: %s of %s\n",
			c(l.InUse()), c(l.Limit()))
	}
}
