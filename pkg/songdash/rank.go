package songdash

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/himanishpuri/SongDash/pkg/models"
)

// Bounds of the ranking size control.
const (
	MinRankCount     = 5
	MaxRankCount     = 20
	DefaultRankCount = 10
)

// ErrUnknownFeature is returned for feature names outside a view's list.
var ErrUnknownFeature = errors.New("unknown feature")

// ExplorationFeatures are the columns offered by the Feature Exploration view.
var ExplorationFeatures = []models.Feature{
	models.FeatureEnergy,
	models.FeatureDanceability,
	models.FeatureValence,
	models.FeatureSpeechiness,
}

// RankingFeatures are the columns offered by the Dynamic Song Ranking view.
var RankingFeatures = []models.Feature{
	models.FeaturePopularity,
	models.FeatureDanceability,
	models.FeatureEnergy,
	models.FeatureValence,
	models.FeatureSpeechiness,
}

// ParseFeature checks name against allowed. An empty name selects the first
// allowed feature.
func ParseFeature(name string, allowed []models.Feature) (models.Feature, error) {
	if name == "" && len(allowed) > 0 {
		return allowed[0], nil
	}
	for _, f := range allowed {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFeature, name)
}

// ClampRankCount forces n into [MinRankCount, MaxRankCount].
func ClampRankCount(n int) int {
	return max(MinRankCount, min(MaxRankCount, n))
}

// Rank returns up to n rows of t with the largest values of feature, sorted
// descending. Rows with equal values keep their source order and rows
// without a value are never ranked. The result has three columns: track
// name, artist name and the feature.
func Rank(t *models.Table, feature models.Feature, n int) *models.Table {
	out := &models.Table{
		Columns: []string{models.ColTrackName, models.ColArtistName, string(feature)},
		Songs:   []models.Song{},
	}
	if t == nil || n <= 0 {
		return out
	}

	candidates := make([]models.Song, 0, len(t.Songs))
	for _, s := range t.Songs {
		if !math.IsNaN(feature.Value(s)) {
			candidates = append(candidates, s)
		}
	}
	slices.SortStableFunc(candidates, func(a, b models.Song) int {
		va, vb := feature.Value(a), feature.Value(b)
		switch {
		case va > vb:
			return -1
		case va < vb:
			return 1
		default:
			return 0
		}
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}

	return Project(out.Columns, feature, candidates)
}

// Project builds a table of songs restricted to track, artist and feature
// cells.
func Project(columns []string, feature models.Feature, songs []models.Song) *models.Table {
	projected := make([]models.Song, len(songs))
	for i, s := range songs {
		s.Fields = []string{s.TrackName, s.ArtistName, FormatValue(feature.Value(s))}
		projected[i] = s
	}
	return &models.Table{Columns: columns, Songs: projected}
}

// FormatValue renders a feature value the way it appears in the source CSV.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
