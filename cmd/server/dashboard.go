package main

import (
	"embed"
	"html/template"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/himanishpuri/SongDash/internal/chart"
	"github.com/himanishpuri/SongDash/pkg/models"
	"github.com/himanishpuri/SongDash/pkg/songdash"
)

const (
	dashboardTitle  = "🎶 Tech House Song Analysis Dashboard"
	dashboardFooter = "Explore more insights using the dropdown menu!"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

type option struct {
	Value    string
	Selected bool
}

// dashboardData feeds templates/dashboard.html. Exactly one page field is
// set, or none for an unrecognised view.
type dashboardData struct {
	Title  string
	Footer string
	Engine string

	Keys     []option
	TempoLo  int
	TempoHi  int
	TempoMin float64
	TempoMax float64

	Views        []option
	Features     []option
	RankFeatures []option
	N            int
	MinN, MaxN   int

	Matched string
	Total   string

	Overview    *songdash.OverviewPage
	Insights    *songdash.InsightsPage
	Exploration *songdash.ExplorationPage
	Ranking     *songdash.RankingPage

	KeysChart    template.URL
	TempoChart   template.URL
	FeatureChart template.URL
}

func (s *Server) dashboardData(req dashboardRequest, sess *songdash.Session, page songdash.Page) dashboardData {
	lo, hi := s.service.TempoBounds()
	data := dashboardData{
		Title:    dashboardTitle,
		Footer:   dashboardFooter,
		Engine:   s.service.Engine(),
		TempoLo:  lo,
		TempoHi:  hi,
		TempoMin: req.Selection.Tempo.Min,
		TempoMax: req.Selection.Tempo.Max,
		N:        req.Options.N,
		MinN:     songdash.MinRankCount,
		MaxN:     songdash.MaxRankCount,
		Matched:  humanize.Comma(int64(sess.Filtered.Len())),
		Total:    humanize.Comma(int64(sess.Data.Len())),
	}

	for _, k := range songdash.DistinctKeyNames(sess.Data) {
		data.Keys = append(data.Keys, option{Value: k, Selected: slices.Contains(req.Selection.Keys, k)})
	}
	for _, v := range songdash.Views {
		data.Views = append(data.Views, option{Value: string(v), Selected: string(v) == req.View})
	}
	data.Features = featureOptions(songdash.ExplorationFeatures, req.Options.Feature)
	data.RankFeatures = featureOptions(songdash.RankingFeatures, req.Options.RankFeature)

	switch p := page.(type) {
	case songdash.OverviewPage:
		data.Overview = &p
	case songdash.InsightsPage:
		data.Insights = &p
		data.KeysChart = chartURL(chart.KeyDistribution, req)
		data.TempoChart = chartURL(chart.TempoDistribution, req)
	case songdash.ExplorationPage:
		data.Exploration = &p
		data.FeatureChart = chartURL(chart.FeatureDistribution, req)
	case songdash.RankingPage:
		data.Ranking = &p
	}
	return data
}

func featureOptions(features []models.Feature, selected models.Feature) []option {
	out := make([]option, len(features))
	for i, f := range features {
		out[i] = option{Value: string(f), Selected: f == selected}
	}
	return out
}

func chartURL(name string, req dashboardRequest) template.URL {
	return template.URL("/charts/" + name + ".svg?" + req.query(req.View).Encode())
}
