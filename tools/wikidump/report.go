package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/swlocal/go-wikidump"
)

func writeFilterSummary(w io.Writer, c wikidump.RunCounters, d time.Duration) {
	fmt.Fprintf(w, "Filter complete after %v: %s pages, %s kept, %s skipped\n",
		d.Round(time.Millisecond), humanize.Comma(c.Total),
		humanize.Comma(c.Kept), humanize.Comma(c.Skipped))

	models := make([]string, 0, len(c.SkippedByModel))
	for m := range c.SkippedByModel {
		models = append(models, m)
	}
	sort.Strings(models)
	for _, m := range models {
		fmt.Fprintf(w, "  skipped %s: %s\n", m, humanize.Comma(c.SkippedByModel[m]))
	}
}

func writeSplitSummary(w io.Writer, dir string, c wikidump.SplitCounters, d time.Duration) {
	fmt.Fprintf(w, "Split complete after %v: %s pages into %d parts\n",
		d.Round(time.Millisecond), humanize.Comma(c.Total), len(c.Parts))
	for i, n := range c.Parts {
		fmt.Fprintf(w, "  %s: %s pages\n", wikidump.PartPath(dir, i), humanize.Comma(n))
	}
}
