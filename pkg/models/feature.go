package models

import "math"

// Feature names a numeric song attribute that can be charted or ranked.
type Feature string

const (
	FeaturePopularity   Feature = "Popularity"
	FeatureDanceability Feature = "Danceability"
	FeatureEnergy       Feature = "Energy"
	FeatureValence      Feature = "Valence"
	FeatureSpeechiness  Feature = "Speechiness"
	FeatureTempo        Feature = "Tempo"
)

// Value returns the song's value for f, NaN for an unknown feature.
func (f Feature) Value(s Song) float64 {
	switch f {
	case FeaturePopularity:
		return s.Popularity
	case FeatureDanceability:
		return s.Danceability
	case FeatureEnergy:
		return s.Energy
	case FeatureValence:
		return s.Valence
	case FeatureSpeechiness:
		return s.Speechiness
	case FeatureTempo:
		return s.Tempo
	default:
		return math.NaN()
	}
}

// Values extracts the feature column from t in row order.
func (f Feature) Values(t *Table) []float64 {
	out := make([]float64, 0, t.Len())
	if t == nil {
		return out
	}
	for _, s := range t.Songs {
		out = append(out, f.Value(s))
	}
	return out
}
