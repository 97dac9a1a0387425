package chart

import (
	"fmt"
	"io"

	"github.com/himanishpuri/SongDash/pkg/songdash"
)

// Names of the charts a page can produce.
const (
	KeyDistribution     = "keys"
	TempoDistribution   = "tempo"
	FeatureDistribution = "feature"
)

// Keys draws the key distribution of an insights page.
func Keys(w io.Writer, f Format, page songdash.InsightsPage) error {
	labels := make([]string, len(page.KeyCounts))
	values := make([]float64, len(page.KeyCounts))
	for i, kc := range page.KeyCounts {
		labels[i] = kc.Key
		values[i] = float64(kc.Count)
	}
	opts := Options{Title: "Key Distribution", XLabel: "Key", YLabel: "Count"}
	return Bar(w, f, opts, labels, values)
}

// Tempo draws the tempo histogram of an insights page.
func Tempo(w io.Writer, f Format, page songdash.InsightsPage) error {
	opts := Options{Title: "Tempo Distribution", XLabel: "Tempo (BPM)", YLabel: "Count"}
	return Histogram(w, f, opts, page.Tempo, page.TempoDensity)
}

// Feature draws the histogram of an exploration page.
func Feature(w io.Writer, f Format, page songdash.ExplorationPage) error {
	opts := Options{Title: page.Title, XLabel: string(page.Feature), YLabel: "Count"}
	return Histogram(w, f, opts, page.Histogram, page.Density)
}

// ForPage draws the named chart of page. It fails when the page has no
// chart of that name.
func ForPage(w io.Writer, f Format, name string, page songdash.Page) error {
	switch p := page.(type) {
	case songdash.InsightsPage:
		switch name {
		case KeyDistribution:
			return Keys(w, f, p)
		case TempoDistribution:
			return Tempo(w, f, p)
		}
	case songdash.ExplorationPage:
		if name == FeatureDistribution {
			return Feature(w, f, p)
		}
	}
	return fmt.Errorf("no %q chart for this view", name)
}

// ViewFor returns the view that produces the named chart.
func ViewFor(name string) (songdash.View, bool) {
	switch name {
	case KeyDistribution, TempoDistribution:
		return songdash.ViewInsights, true
	case FeatureDistribution:
		return songdash.ViewExploration, true
	}
	return "", false
}
