package songdash

import (
	"github.com/himanishpuri/SongDash/internal/stats"
	"github.com/himanishpuri/SongDash/pkg/models"
)

// View is one of the four dashboard sections.
type View string

const (
	ViewOverview    View = "Dataset Overview"
	ViewInsights    View = "Key and Tempo Insights"
	ViewExploration View = "Feature Exploration"
	ViewRanking     View = "Dynamic Song Ranking"
)

// Views lists the sections in menu order.
var Views = []View{ViewOverview, ViewInsights, ViewExploration, ViewRanking}

// TempoBins is the fixed bin count of the tempo histogram.
const TempoBins = 20

// Page is the render-ready result of routing a view. The concrete types are
// OverviewPage, InsightsPage, ExplorationPage and RankingPage.
type Page interface {
	View() View
	isPage()
}

// OverviewPage is the filtered table verbatim.
type OverviewPage struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Count   int        `json:"count"`
}

// KeyCount is one bar of the key distribution.
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// InsightsPage holds the key distribution and the tempo histogram.
type InsightsPage struct {
	KeyCounts    []KeyCount      `json:"key_counts"`
	Tempo        stats.Histogram `json:"tempo"`
	TempoDensity stats.Curve     `json:"tempo_density"`
}

// ExplorationPage is the distribution of a single feature.
type ExplorationPage struct {
	Feature   models.Feature  `json:"feature"`
	Title     string          `json:"title"`
	Values    []float64       `json:"values"`
	Histogram stats.Histogram `json:"histogram"`
	Density   stats.Curve     `json:"density"`
}

// RankingPage is the top-N table for a feature.
type RankingPage struct {
	Feature models.Feature `json:"feature"`
	N       int            `json:"n"`
	Title   string         `json:"title"`
	Columns []string       `json:"columns"`
	Rows    [][]string     `json:"rows"`
}

func (OverviewPage) View() View    { return ViewOverview }
func (InsightsPage) View() View    { return ViewInsights }
func (ExplorationPage) View() View { return ViewExploration }
func (RankingPage) View() View     { return ViewRanking }

func (OverviewPage) isPage()    {}
func (InsightsPage) isPage()    {}
func (ExplorationPage) isPage() {}
func (RankingPage) isPage()     {}
