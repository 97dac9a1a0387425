package main

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/himanishpuri/SongDash/pkg/models"
	"github.com/himanishpuri/SongDash/pkg/songdash"
)

// dashboardRequest is the interaction state decoded from a query string.
type dashboardRequest struct {
	Selection models.Selection
	View      string
	Options   songdash.ViewOptions
}

// parseRequest decodes the shared query parameters. Missing parameters fall
// back to the dashboard's initial state. Any key parameter, or keys_set,
// makes the key list explicit, so keys_set alone selects no keys. Blank key
// values are ignored.
func (s *Server) parseRequest(r *http.Request) (dashboardRequest, error) {
	q := r.URL.Query()
	req := dashboardRequest{
		Selection: s.service.DefaultSelection(),
		View:      string(songdash.ViewOverview),
	}

	if values, ok := q["key"]; ok || q.Get("keys_set") != "" {
		keys := []string{}
		seen := make(map[string]bool)
		for _, v := range values {
			if strings.TrimSpace(v) == "" {
				continue
			}
			name, ok := songdash.ParseKeyName(v)
			if !ok {
				return req, fmt.Errorf("unknown key %q", v)
			}
			if !seen[name] {
				seen[name] = true
				keys = append(keys, name)
			}
		}
		req.Selection.Keys = keys
	}

	var err error
	if req.Selection.Tempo.Min, err = parseTempo(q, "tempo_min", req.Selection.Tempo.Min); err != nil {
		return req, err
	}
	if req.Selection.Tempo.Max, err = parseTempo(q, "tempo_max", req.Selection.Tempo.Max); err != nil {
		return req, err
	}

	if q.Has("view") {
		req.View = q.Get("view")
	}

	opts := songdash.ViewOptions{
		Feature:     models.Feature(q.Get("feature")),
		RankFeature: models.Feature(q.Get("rank_feature")),
	}
	if raw := q.Get("n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return req, fmt.Errorf("invalid n %q: must be an integer", raw)
		}
		opts.N = n
	}
	if req.Options, err = opts.Normalize(); err != nil {
		return req, err
	}
	return req, nil
}

func parseTempo(q url.Values, name string, fallback float64) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("invalid %s %q: must be a number", name, raw)
	}
	return v, nil
}

// query encodes the request so links and chart URLs reproduce it.
func (req dashboardRequest) query(view string) url.Values {
	q := url.Values{}
	q.Set("keys_set", "1")
	for _, k := range req.Selection.Keys {
		q.Add("key", k)
	}
	q.Set("tempo_min", strconv.FormatFloat(req.Selection.Tempo.Min, 'f', -1, 64))
	q.Set("tempo_max", strconv.FormatFloat(req.Selection.Tempo.Max, 'f', -1, 64))
	q.Set("view", view)
	q.Set("feature", string(req.Options.Feature))
	q.Set("rank_feature", string(req.Options.RankFeature))
	q.Set("n", strconv.Itoa(req.Options.N))
	return q
}
