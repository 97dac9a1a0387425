package songdash

import (
	"context"
	"fmt"

	"github.com/himanishpuri/SongDash/internal/stats"
	"github.com/himanishpuri/SongDash/pkg/models"
)

// ParseView resolves a menu label to a View.
func ParseView(name string) (View, bool) {
	for _, v := range Views {
		if string(v) == name {
			return v, true
		}
	}
	return "", false
}

// Route builds the page for the named view from the session's filtered
// table. An unrecognised name renders nothing: both return values are nil.
func Route(ctx context.Context, name string, sess *Session) (Page, error) {
	view, ok := ParseView(name)
	if !ok {
		return nil, nil
	}

	switch view {
	case ViewOverview:
		return BuildOverview(sess.Filtered), nil
	case ViewInsights:
		return BuildInsights(sess.Filtered), nil
	case ViewExploration:
		return BuildExploration(sess.Filtered, sess.Options.Feature), nil
	case ViewRanking:
		return buildRanking(ctx, sess)
	}
	return nil, nil
}

// BuildOverview copies every column and row of t.
func BuildOverview(t *models.Table) OverviewPage {
	rows := make([][]string, 0, t.Len())
	if t != nil {
		for _, s := range t.Songs {
			rows = append(rows, s.Fields)
		}
	}
	var columns []string
	if t != nil {
		columns = t.Columns
	}
	return OverviewPage{Columns: columns, Rows: rows, Count: len(rows)}
}

// KeyCounts counts rows per key name, largest first. Equal counts keep the
// order in which the keys first appear in t.
func KeyCounts(t *models.Table) []KeyCount {
	if t == nil {
		return []KeyCount{}
	}
	order := DistinctKeyNames(t)
	counts := make(map[string]int, len(order))
	for _, s := range t.Songs {
		if s.KeyName != "" {
			counts[s.KeyName]++
		}
	}

	out := make([]KeyCount, 0, len(order))
	for _, k := range order {
		out = append(out, KeyCount{Key: k, Count: counts[k]})
	}
	// insertion sort keeps ties stable and n <= 12
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Count > out[j-1].Count; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// BuildInsights computes the key distribution and a 20-bin tempo histogram
// with a density overlay.
func BuildInsights(t *models.Table) InsightsPage {
	tempos := stats.Finite(models.FeatureTempo.Values(t))
	hist := stats.Bins(tempos, TempoBins)
	return InsightsPage{
		KeyCounts:    KeyCounts(t),
		Tempo:        hist,
		TempoDensity: stats.KDE(tempos, stats.CountScale(hist)),
	}
}

// BuildExploration computes the auto-binned distribution of one feature.
func BuildExploration(t *models.Table, feature models.Feature) ExplorationPage {
	values := stats.Finite(feature.Values(t))
	hist := stats.Auto(values)
	return ExplorationPage{
		Feature:   feature,
		Title:     fmt.Sprintf("Distribution of %s", feature),
		Values:    values,
		Histogram: hist,
		Density:   stats.KDE(values, stats.CountScale(hist)),
	}
}

func buildRanking(ctx context.Context, sess *Session) (Page, error) {
	feature, n := sess.Options.RankFeature, sess.Options.N

	var ranked *models.Table
	if sess.source != nil {
		var err error
		ranked, err = sess.source.Top(ctx, sess.Selection, feature, n)
		if err != nil {
			return nil, fmt.Errorf("ranking by %s: %w", feature, err)
		}
	} else {
		ranked = Rank(sess.Filtered, feature, n)
	}

	page := BuildOverview(ranked)
	return RankingPage{
		Feature: feature,
		N:       n,
		Title:   fmt.Sprintf("Top %d Songs Ranked by %s", n, feature),
		Columns: page.Columns,
		Rows:    page.Rows,
	}, nil
}
