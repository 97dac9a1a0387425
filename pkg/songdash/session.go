package songdash

import (
	"fmt"

	"github.com/himanishpuri/SongDash/pkg/models"
)

// ViewOptions are the per-view controls: the explored feature, the ranking
// feature and the ranking size.
type ViewOptions struct {
	Feature     models.Feature `json:"feature"`
	RankFeature models.Feature `json:"rank_feature"`
	N           int            `json:"n"`
}

// DefaultViewOptions mirrors the initial state of the view controls.
func DefaultViewOptions() ViewOptions {
	return ViewOptions{
		Feature:     ExplorationFeatures[0],
		RankFeature: RankingFeatures[0],
		N:           DefaultRankCount,
	}
}

// Normalize fills empty fields with defaults, validates feature names and
// clamps N into the ranking bounds.
func (o ViewOptions) Normalize() (ViewOptions, error) {
	feature, err := ParseFeature(string(o.Feature), ExplorationFeatures)
	if err != nil {
		return o, fmt.Errorf("feature: %w", err)
	}
	rankFeature, err := ParseFeature(string(o.RankFeature), RankingFeatures)
	if err != nil {
		return o, fmt.Errorf("rank feature: %w", err)
	}
	n := o.N
	if n == 0 {
		n = DefaultRankCount
	}
	return ViewOptions{Feature: feature, RankFeature: rankFeature, N: ClampRankCount(n)}, nil
}

// Session is the state of one interaction: the loaded dataset, the current
// selection and the filtered view computed from it. It is built fresh for
// every render and discarded afterwards.
type Session struct {
	ID        string
	Data      *models.Table
	Selection models.Selection
	Filtered  *models.Table
	Options   ViewOptions

	source Source
}

// NewSession filters data with the in-memory engine. Services build
// sessions through Service.NewSession instead.
func NewSession(id string, data *models.Table, sel models.Selection, opts ViewOptions) (*Session, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        id,
		Data:      data,
		Selection: sel,
		Filtered:  Filter(data, sel),
		Options:   opts,
	}, nil
}
