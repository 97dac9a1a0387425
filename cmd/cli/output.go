package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/himanishpuri/SongDash/internal/stats"
	"github.com/himanishpuri/SongDash/pkg/songdash"
)

const histogramWidth = 40

func printSelection(w io.Writer, sess *songdash.Session) {
	keys := "none"
	if len(sess.Selection.Keys) > 0 {
		keys = strings.Join(sess.Selection.Keys, ", ")
	}
	fmt.Fprintf(w, "🔎 Keys: %s | Tempo: %g-%g BPM | %s of %s songs\n\n",
		keys, sess.Selection.Tempo.Min, sess.Selection.Tempo.Max,
		humanize.Comma(int64(sess.Filtered.Len())), humanize.Comma(int64(sess.Data.Len())))
}

// printTable writes an aligned table. numbered prefixes each row with its
// 1-based position.
func printTable(w io.Writer, columns []string, rows [][]string, numbered bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if numbered {
		fmt.Fprint(tw, "#\t")
	}
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for i, row := range rows {
		if numbered {
			fmt.Fprintf(tw, "%d\t", i+1)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// printHistogram draws one bar of block characters per bin.
func printHistogram(w io.Writer, h stats.Histogram) {
	if h.Total() == 0 {
		fmt.Fprintln(w, "📭 No data")
		return
	}
	peak := h.MaxCount()
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for i, count := range h.Counts {
		bar := strings.Repeat("█", count*histogramWidth/peak)
		fmt.Fprintf(tw, "[%.4g, %.4g)\t%s %d\n", h.Edges[i], h.Edges[i+1], bar, count)
	}
	tw.Flush()
}
