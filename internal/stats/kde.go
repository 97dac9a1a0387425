package stats

import "math"

// GridSize is the number of points a density curve is evaluated on.
const GridSize = 200

// Curve is a sampled function, used for density overlays.
type Curve struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Empty reports whether the curve has no points.
func (c Curve) Empty() bool { return len(c.X) == 0 }

// ScottBandwidth returns the Gaussian kernel bandwidth from Scott's rule,
// std(ddof=1) * n^(-1/5). It returns 0 when fewer than two values are given
// or the values have no spread.
func ScottBandwidth(values []float64) float64 {
	xs := Finite(values)
	n := len(xs)
	if n < 2 {
		return 0
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(n)
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	sd := math.Sqrt(ss / float64(n-1))
	return sd * math.Pow(float64(n), -0.2)
}

// KDE evaluates a Gaussian kernel density estimate over the data range
// (no extension past min/max) and multiplies it by scale. Pass
// CountScale(hist) to overlay the curve on a count histogram.
func KDE(values []float64, scale float64) Curve {
	xs := Finite(values)
	bw := ScottBandwidth(xs)
	if bw == 0 {
		return Curve{}
	}
	lo, hi := minMax(xs)
	grid := linspace(lo, hi, GridSize)
	norm := scale / (float64(len(xs)) * bw * math.Sqrt(2*math.Pi))
	ys := make([]float64, len(grid))
	for i, g := range grid {
		var sum float64
		for _, x := range xs {
			z := (g - x) / bw
			sum += math.Exp(-0.5 * z * z)
		}
		ys[i] = sum * norm
	}
	return Curve{X: grid, Y: ys}
}

// CountScale is the factor that turns a unit-area density into the count
// scale of h: the total area of its bars.
func CountScale(h Histogram) float64 {
	return float64(h.Total()) * h.BinWidth()
}

// MaxY returns the largest Y value, 0 for an empty curve.
func (c Curve) MaxY() float64 {
	m := 0.0
	for _, y := range c.Y {
		if y > m {
			m = y
		}
	}
	return m
}
