// Package stats holds the small amount of numerics the dashboard needs:
// equal-width histograms with numpy-compatible binning and a Gaussian KDE.
package stats

import (
	"math"
	"sort"
)

// Histogram is a set of contiguous equal-width bins.
// len(Edges) == len(Counts)+1 unless the histogram is empty.
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// Bins returns the number of bins.
func (h Histogram) Bins() int { return len(h.Counts) }

// Total returns the number of values counted.
func (h Histogram) Total() int {
	n := 0
	for _, c := range h.Counts {
		n += c
	}
	return n
}

// BinWidth returns the width of one bin, or 0 for an empty histogram.
func (h Histogram) BinWidth() float64 {
	if len(h.Counts) == 0 {
		return 0
	}
	return (h.Edges[len(h.Edges)-1] - h.Edges[0]) / float64(len(h.Counts))
}

// MaxCount returns the tallest bin.
func (h Histogram) MaxCount() int {
	m := 0
	for _, c := range h.Counts {
		if c > m {
			m = c
		}
	}
	return m
}

// Finite drops NaN and infinite values, keeping order.
func Finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Bins builds an n-bin histogram over [min, max] of the finite values.
// A degenerate range is widened by 0.5 on each side.
func Bins(values []float64, n int) Histogram {
	xs := Finite(values)
	if len(xs) == 0 || n <= 0 {
		return Histogram{}
	}
	lo, hi := outerEdges(xs)
	edges := linspace(lo, hi, n+1)
	counts := make([]int, n)
	norm := float64(n) / (hi - lo)
	for _, x := range xs {
		idx := int((x - lo) * norm)
		if idx >= n {
			idx = n - 1
		}
		// float rounding can put x one bin off its edges
		if idx > 0 && x < edges[idx] {
			idx--
		} else if idx < n-1 && x >= edges[idx+1] {
			idx++
		}
		counts[idx]++
	}
	return Histogram{Edges: edges, Counts: counts}
}

// Auto builds a histogram using the numpy "auto" bin estimator.
func Auto(values []float64) Histogram {
	xs := Finite(values)
	return Bins(xs, AutoBinCount(xs))
}

// AutoBinCount picks the smaller of the Sturges and Freedman-Diaconis bin
// widths and returns the resulting number of bins over the data range.
func AutoBinCount(values []float64) int {
	xs := Finite(values)
	n := len(xs)
	if n == 0 {
		return 0
	}
	lo, hi := minMax(xs)
	ptp := hi - lo
	if ptp == 0 {
		return 1
	}

	width := ptp / (math.Log2(float64(n)) + 1.0)
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	iqr := Percentile(sorted, 75) - Percentile(sorted, 25)
	if fd := 2.0 * iqr * math.Pow(float64(n), -1.0/3.0); fd > 0 && fd < width {
		width = fd
	}
	return int(math.Ceil(ptp / width))
}

// Percentile returns the p-th percentile (0..100) of sorted values using
// linear interpolation between closest ranks.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	pos := p / 100 * float64(len(sorted)-1)
	i := int(math.Floor(pos))
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(i)
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}

func outerEdges(xs []float64) (float64, float64) {
	lo, hi := minMax(xs)
	if lo == hi {
		return lo - 0.5, hi + 0.5
	}
	return lo, hi
}

func minMax(xs []float64) (float64, float64) {
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
