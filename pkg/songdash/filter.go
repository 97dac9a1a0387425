package songdash

import (
	"math"

	"github.com/himanishpuri/SongDash/pkg/models"
)

// Default tempo window in BPM, clamped into the dataset's bounds.
const (
	DefaultTempoMin = 120
	DefaultTempoMax = 130
)

// Filter returns the rows whose key name is selected and whose tempo lies
// inside the selection's inclusive range, in source order. An empty key set
// selects nothing. Rows without a key label never match.
func Filter(t *models.Table, sel models.Selection) *models.Table {
	if t == nil {
		return &models.Table{}
	}
	keys := sel.KeySet()
	songs := make([]models.Song, 0, len(t.Songs))
	if len(keys) == 0 {
		return t.WithSongs(songs)
	}
	for _, s := range t.Songs {
		if s.KeyName == "" {
			continue
		}
		if _, ok := keys[s.KeyName]; !ok {
			continue
		}
		if !sel.Tempo.Contains(s.Tempo) {
			continue
		}
		songs = append(songs, s)
	}
	return t.WithSongs(songs)
}

// DistinctKeyNames lists the key names present in t in order of first
// appearance. Rows without a label are skipped.
func DistinctKeyNames(t *models.Table) []string {
	seen := make(map[string]struct{})
	var out []string
	if t == nil {
		return out
	}
	for _, s := range t.Songs {
		if s.KeyName == "" {
			continue
		}
		if _, ok := seen[s.KeyName]; ok {
			continue
		}
		seen[s.KeyName] = struct{}{}
		out = append(out, s.KeyName)
	}
	return out
}

// TempoBounds returns the floor of the smallest and the ceiling of the
// largest tempo in t, the bounds of the tempo range control. ok is false
// when no row has a tempo.
func TempoBounds(t *models.Table) (lo, hi int, ok bool) {
	minT, maxT := math.Inf(1), math.Inf(-1)
	if t != nil {
		for _, s := range t.Songs {
			if math.IsNaN(s.Tempo) || math.IsInf(s.Tempo, 0) {
				continue
			}
			minT = math.Min(minT, s.Tempo)
			maxT = math.Max(maxT, s.Tempo)
		}
	}
	if math.IsInf(minT, 1) {
		return 0, 0, false
	}
	return int(math.Floor(minT)), int(math.Ceil(maxT)), true
}

// DefaultSelection selects every key present and the default tempo window
// clamped into the dataset's tempo bounds.
func DefaultSelection(t *models.Table) models.Selection {
	sel := models.Selection{Keys: DistinctKeyNames(t)}
	lo, hi, ok := TempoBounds(t)
	if !ok {
		sel.Tempo = models.TempoRange{Min: DefaultTempoMin, Max: DefaultTempoMax}
		return sel
	}
	sel.Tempo = ClampTempo(models.TempoRange{Min: DefaultTempoMin, Max: DefaultTempoMax}, lo, hi)
	return sel
}

// ClampTempo clamps both ends of r into [lo, hi] and swaps a reversed range.
func ClampTempo(r models.TempoRange, lo, hi int) models.TempoRange {
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	r.Min = clamp(r.Min, float64(lo), float64(hi))
	r.Max = clamp(r.Max, float64(lo), float64(hi))
	return r
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
