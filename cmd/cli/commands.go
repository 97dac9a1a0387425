package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
	"github.com/himanishpuri/SongDash/internal/chart"
	"github.com/himanishpuri/SongDash/pkg/models"
	"github.com/himanishpuri/SongDash/pkg/songdash"
	"github.com/himanishpuri/SongDash/pkg/utils"
	"golang.org/x/sync/errgroup"
)

var errUnknownCommand = errors.New("unknown command")

// exportWorkers bounds concurrent chart rendering in export.
const exportWorkers = 4

type cli struct {
	svc songdash.Service
	out io.Writer
	in  io.Reader
}

// run dispatches one command line, args[0] being the command name.
func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUnknownCommand
	}
	name, rest := args[0], args[1:]
	switch name {
	case "overview":
		return c.overview(ctx, rest)
	case "insights":
		return c.insights(ctx, rest)
	case "explore":
		return c.explore(ctx, rest)
	case "rank":
		return c.rank(ctx, rest)
	case "keys":
		return c.keys()
	case "export":
		return c.export(ctx, rest)
	case "shell":
		return c.shell(ctx)
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, name)
	}
}

// filterFlags registers the selection flags shared by every view command.
type filterFlags struct {
	keys     string
	tempoMin float64
	tempoMax float64
}

func (c *cli) newFlagSet(name string) (*flag.FlagSet, *filterFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.out)
	ff := &filterFlags{}
	fs.StringVar(&ff.keys, "keys", "", "Comma-separated key names (default: all keys)")
	fs.Float64Var(&ff.tempoMin, "tempo-min", math.NaN(), "Lower tempo bound in BPM")
	fs.Float64Var(&ff.tempoMax, "tempo-max", math.NaN(), "Upper tempo bound in BPM")
	return fs, ff
}

// selection applies the flags that were set to the default selection.
func (c *cli) selection(fs *flag.FlagSet, ff *filterFlags) (models.Selection, error) {
	sel := c.svc.DefaultSelection()
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["keys"] {
		keys, err := parseKeys(ff.keys)
		if err != nil {
			return sel, err
		}
		sel.Keys = keys
	}
	if set["tempo-min"] && !math.IsNaN(ff.tempoMin) {
		sel.Tempo.Min = ff.tempoMin
	}
	if set["tempo-max"] && !math.IsNaN(ff.tempoMax) {
		sel.Tempo.Max = ff.tempoMax
	}
	return sel, nil
}

// parseKeys splits a comma-separated key list. Each entry may be a
// canonical label or an alias such as "F#" or "Gb".
func parseKeys(raw string) ([]string, error) {
	keys := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, ok := songdash.ParseKeyName(part)
		if !ok {
			return nil, fmt.Errorf("unknown key %q", part)
		}
		keys = append(keys, name)
	}
	return keys, nil
}

func (c *cli) render(ctx context.Context, view songdash.View, sel models.Selection, opts songdash.ViewOptions) (*songdash.Session, songdash.Page, error) {
	sess, err := c.svc.NewSession(ctx, "", sel, opts)
	if err != nil {
		return nil, nil, err
	}
	page, err := c.svc.Render(ctx, string(view), sess)
	if err != nil {
		return nil, nil, err
	}
	return sess, page, nil
}

func (c *cli) overview(ctx context.Context, args []string) error {
	fs, ff := c.newFlagSet("overview")
	if err := fs.Parse(args); err != nil {
		return err
	}
	sel, err := c.selection(fs, ff)
	if err != nil {
		return err
	}
	sess, page, err := c.render(ctx, songdash.ViewOverview, sel, songdash.ViewOptions{})
	if err != nil {
		return err
	}
	p := page.(songdash.OverviewPage)
	printSelection(c.out, sess)
	printTable(c.out, p.Columns, p.Rows, false)
	return nil
}

func (c *cli) insights(ctx context.Context, args []string) error {
	fs, ff := c.newFlagSet("insights")
	keysChart := fs.String("chart", "", "Write the key distribution chart to this .svg or .png file")
	tempoChart := fs.String("tempo-chart", "", "Write the tempo distribution chart to this .svg or .png file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	sel, err := c.selection(fs, ff)
	if err != nil {
		return err
	}
	sess, page, err := c.render(ctx, songdash.ViewInsights, sel, songdash.ViewOptions{})
	if err != nil {
		return err
	}
	p := page.(songdash.InsightsPage)

	printSelection(c.out, sess)
	fmt.Fprintln(c.out, "🎹 Key Distribution")
	rows := make([][]string, len(p.KeyCounts))
	for i, kc := range p.KeyCounts {
		rows[i] = []string{kc.Key, fmt.Sprint(kc.Count)}
	}
	printTable(c.out, []string{"Key", "Count"}, rows, false)
	fmt.Fprintln(c.out, "\n🥁 Tempo Distribution")
	printHistogram(c.out, p.Tempo)

	if err := c.writeChart(*keysChart, chart.KeyDistribution, page); err != nil {
		return err
	}
	return c.writeChart(*tempoChart, chart.TempoDistribution, page)
}

func (c *cli) explore(ctx context.Context, args []string) error {
	fs, ff := c.newFlagSet("explore")
	feature := fs.String("feature", string(songdash.ExplorationFeatures[0]), "Feature to explore: Energy, Danceability, Valence or Speechiness")
	out := fs.String("chart", "", "Write the distribution chart to this .svg or .png file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	sel, err := c.selection(fs, ff)
	if err != nil {
		return err
	}
	sess, page, err := c.render(ctx, songdash.ViewExploration, sel, songdash.ViewOptions{Feature: models.Feature(*feature)})
	if err != nil {
		return err
	}
	p := page.(songdash.ExplorationPage)

	printSelection(c.out, sess)
	fmt.Fprintf(c.out, "📊 %s (%d values)\n", p.Title, len(p.Values))
	printHistogram(c.out, p.Histogram)
	return c.writeChart(*out, chart.FeatureDistribution, page)
}

func (c *cli) rank(ctx context.Context, args []string) error {
	fs, ff := c.newFlagSet("rank")
	feature := fs.String("feature", string(songdash.RankingFeatures[0]), "Rank by: Popularity, Danceability, Energy, Valence or Speechiness")
	n := fs.Int("n", songdash.DefaultRankCount, fmt.Sprintf("Number of songs, %d-%d", songdash.MinRankCount, songdash.MaxRankCount))
	if err := fs.Parse(args); err != nil {
		return err
	}
	sel, err := c.selection(fs, ff)
	if err != nil {
		return err
	}
	opts := songdash.ViewOptions{RankFeature: models.Feature(*feature), N: *n}
	sess, page, err := c.render(ctx, songdash.ViewRanking, sel, opts)
	if err != nil {
		return err
	}
	p := page.(songdash.RankingPage)

	printSelection(c.out, sess)
	fmt.Fprintf(c.out, "🏆 %s\n", p.Title)
	if len(p.Rows) == 0 {
		fmt.Fprintln(c.out, "📭 No songs match the current filters")
		return nil
	}
	printTable(c.out, p.Columns, p.Rows, true)
	return nil
}

func (c *cli) keys() error {
	present := make(map[string]bool)
	for _, k := range songdash.DistinctKeyNames(c.svc.Dataset()) {
		present[k] = true
	}
	rows := make([][]string, 0, 12)
	for code, name := range songdash.KeyNames() {
		mark := ""
		if present[name] {
			mark = "✔"
		}
		rows = append(rows, []string{fmt.Sprint(code), name, mark})
	}
	printTable(c.out, []string{"Code", "Key", "In dataset"}, rows, false)
	return nil
}

// export writes every chart of the current selection into a directory.
func (c *cli) export(ctx context.Context, args []string) error {
	fs, ff := c.newFlagSet("export")
	dir := fs.String("dir", "charts", "Output directory")
	formatName := fs.String("format", string(chart.FormatSVG), "Image format: svg or png")
	if err := fs.Parse(args); err != nil {
		return err
	}
	format, err := chart.ParseFormat(*formatName)
	if err != nil {
		return err
	}
	sel, err := c.selection(fs, ff)
	if err != nil {
		return err
	}
	sess, insights, err := c.render(ctx, songdash.ViewInsights, sel, songdash.ViewOptions{})
	if err != nil {
		return err
	}

	type job struct {
		file string
		name string
		page songdash.Page
	}
	jobs := []job{
		{file: "keys", name: chart.KeyDistribution, page: insights},
		{file: "tempo", name: chart.TempoDistribution, page: insights},
	}
	for _, f := range songdash.ExplorationFeatures {
		jobs = append(jobs, job{
			file: "feature_" + strings.ToLower(string(f)),
			name: chart.FeatureDistribution,
			page: songdash.BuildExploration(sess.Filtered, f),
		})
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(exportWorkers)
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(*dir, j.file+"."+string(format))
			var buf bytes.Buffer
			if err := chart.ForPage(&buf, format, j.name, j.page); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return utils.WriteFile(path, buf.Bytes())
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printSelection(c.out, sess)
	fmt.Fprintf(c.out, "✅ Wrote %d charts to %s\n", len(jobs), *dir)
	return nil
}

// shell reads commands from c.in until EOF or "exit", reusing the loaded
// dataset. Lines are split with shell quoting rules.
func (c *cli) shell(ctx context.Context) error {
	scanner := bufio.NewScanner(c.in)
	fmt.Fprint(c.out, "songdash> ")
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		args, err := shlex.Split(scanner.Text())
		switch {
		case err != nil:
			fmt.Fprintf(c.out, "❌ %v\n", err)
		case len(args) == 0:
		case args[0] == "exit" || args[0] == "quit":
			return nil
		case args[0] == "shell":
			fmt.Fprintln(c.out, "❌ already in the shell")
		default:
			if err := c.run(ctx, args); err != nil && !errors.Is(err, flag.ErrHelp) {
				fmt.Fprintf(c.out, "❌ %v\n", err)
			}
		}
		fmt.Fprint(c.out, "songdash> ")
	}
	return scanner.Err()
}

func (c *cli) writeChart(path, name string, page songdash.Page) error {
	if path == "" {
		return nil
	}
	format, err := chart.ParseFormat(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := chart.ForPage(&buf, format, name, page); err != nil {
		return err
	}
	if err := utils.WriteFile(path, buf.Bytes()); err != nil {
		return err
	}
	_, size, _ := utils.FileSize(path)
	fmt.Fprintf(c.out, "💾 Saved %s (%s)\n", path, size)
	return nil
}
