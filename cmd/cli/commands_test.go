package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/himanishpuri/SongDash/pkg/logger"
	"github.com/himanishpuri/SongDash/pkg/songdash"
)

const testCSV = `Track Name,Artist Name,Key,Tempo,Popularity,Danceability,Energy,Valence,Speechiness
Alpha,A1,0,125,80,0.8,0.9,0.5,0.05
Bravo,B1,2,140,60,0.7,0.6,0.4,0.06
Charlie,C1,0,122.5,80,0.9,0.7,0.3,0.07
Delta,D1,7,128,90,0.6,0.8,0.2,0.04
Echo,E1,1,118.2,55,0.5,0.5,0.6,0.1
`

// Helper function to create a CLI over testCSV writing into a buffer
func setupCLI(t *testing.T, input string) (*cli, *bytes.Buffer) {
	t.Helper()

	table, err := songdash.Parse(strings.NewReader(testCSV))
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}
	quiet := logger.New(logger.Config{Level: logger.WARN, Output: &bytes.Buffer{}})
	svc, err := songdash.NewService(songdash.WithTable(table), songdash.WithLogger(quiet))
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	t.Cleanup(func() { svc.Close() })

	var out bytes.Buffer
	return &cli{svc: svc, out: &out, in: strings.NewReader(input)}, &out
}

func TestRunOverview(t *testing.T) {
	c, out := setupCLI(t, "")
	if err := c.run(context.Background(), []string{"overview"}); err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	got := out.String()
	for _, s := range []string{"Key_Name", "Alpha", "Charlie", "Delta", "3 of 5 songs"} {
		if !strings.Contains(got, s) {
			t.Errorf("Output missing %q:\n%s", s, got)
		}
	}
	if strings.Contains(got, "Bravo") {
		t.Errorf("Bravo is outside the default tempo window:\n%s", got)
	}
}

func TestRunOverviewFilters(t *testing.T) {
	c, out := setupCLI(t, "")
	err := c.run(context.Background(), []string{"overview", "-keys", "D,C#", "-tempo-min", "100", "-tempo-max", "200"})
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Bravo") || !strings.Contains(got, "Echo") || strings.Contains(got, "Alpha") {
		t.Errorf("Unexpected rows:\n%s", got)
	}
	if !strings.Contains(got, "Keys: D, C♯ / D♭") {
		t.Errorf("Selection line missing:\n%s", got)
	}
}

func TestRunRank(t *testing.T) {
	c, out := setupCLI(t, "")
	if err := c.run(context.Background(), []string{"rank", "-feature", "Danceability", "-n", "99"}); err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Top 20 Songs Ranked by Danceability") {
		t.Errorf("Missing heading:\n%s", got)
	}
	charlie, alpha := strings.Index(got, "Charlie"), strings.Index(got, "Alpha")
	if charlie < 0 || alpha < 0 || charlie > alpha {
		t.Errorf("Expected Charlie before Alpha:\n%s", got)
	}
}

func TestRunRankNoMatches(t *testing.T) {
	c, out := setupCLI(t, "")
	if err := c.run(context.Background(), []string{"rank", "-keys", ""}); err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	if !strings.Contains(out.String(), "No songs match") {
		t.Errorf("Expected empty notice:\n%s", out.String())
	}
}

func TestRunInsightsAndExploreCharts(t *testing.T) {
	c, out := setupCLI(t, "")
	dir := t.TempDir()
	keys := filepath.Join(dir, "keys.svg")
	tempo := filepath.Join(dir, "tempo.png")
	energy := filepath.Join(dir, "nested", "energy.svg")

	if err := c.run(context.Background(), []string{"insights", "-chart", keys, "-tempo-chart", tempo}); err != nil {
		t.Fatalf("insights failed: %v", err)
	}
	if err := c.run(context.Background(), []string{"explore", "-feature", "Valence", "-chart", energy}); err != nil {
		t.Fatalf("explore failed: %v", err)
	}
	for _, p := range []string{keys, tempo, energy} {
		if info, err := os.Stat(p); err != nil || info.Size() == 0 {
			t.Errorf("Expected chart at %s: %v", p, err)
		}
	}
	got := out.String()
	for _, s := range []string{"Key Distribution", "Tempo Distribution", "Distribution of Valence (3 values)", "Saved"} {
		if !strings.Contains(got, s) {
			t.Errorf("Output missing %q", s)
		}
	}
}

func TestRunExport(t *testing.T) {
	c, out := setupCLI(t, "")
	dir := filepath.Join(t.TempDir(), "charts")
	if err := c.run(context.Background(), []string{"export", "-dir", dir, "-format", "svg"}); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	want := []string{"feature_danceability.svg", "feature_energy.svg", "feature_speechiness.svg",
		"feature_valence.svg", "keys.svg", "tempo.svg"}
	if !slices.Equal(names, want) {
		t.Errorf("Exported %v, want %v", names, want)
	}
	if !strings.Contains(out.String(), "Wrote 6 charts") {
		t.Errorf("Unexpected output:\n%s", out.String())
	}
}

func TestRunKeys(t *testing.T) {
	c, out := setupCLI(t, "")
	if err := c.run(context.Background(), []string{"keys"}); err != nil {
		t.Fatalf("keys failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 13 {
		t.Fatalf("Expected header and 12 keys, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "C") || !strings.Contains(lines[1], "✔") {
		t.Errorf("Expected C to be marked present: %q", lines[1])
	}
	if strings.Contains(lines[12], "✔") {
		t.Errorf("Expected B to be absent: %q", lines[12])
	}
}

func TestRunErrors(t *testing.T) {
	c, _ := setupCLI(t, "")
	ctx := context.Background()

	if err := c.run(ctx, []string{"dance"}); !errors.Is(err, errUnknownCommand) {
		t.Errorf("Expected errUnknownCommand, got %v", err)
	}
	if err := c.run(ctx, nil); !errors.Is(err, errUnknownCommand) {
		t.Errorf("Expected errUnknownCommand, got %v", err)
	}
	if err := c.run(ctx, []string{"overview", "-keys", "H"}); err == nil {
		t.Error("Expected error for unknown key")
	}
	if err := c.run(ctx, []string{"explore", "-feature", "Popularity"}); !errors.Is(err, songdash.ErrUnknownFeature) {
		t.Errorf("Expected ErrUnknownFeature, got %v", err)
	}
	if err := c.run(ctx, []string{"insights", "-chart", "keys.gif"}); err == nil {
		t.Error("Expected error for unknown chart format")
	}
}

// TestShell tests quoted arguments and that errors do not end the session
func TestShell(t *testing.T) {
	input := strings.Join([]string{
		`rank -keys "C♯ / D♭,G" -tempo-min 100 -tempo-max 200 -n 5`,
		`bogus`,
		``,
		`overview -keys 'C'`,
		`exit`,
		`keys`,
	}, "\n")
	c, out := setupCLI(t, input)
	if err := c.run(context.Background(), []string{"shell"}); err != nil {
		t.Fatalf("shell failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Keys: C♯ / D♭, G") || !strings.Contains(got, "Delta") {
		t.Errorf("Quoted keys not applied:\n%s", got)
	}
	if !strings.Contains(got, "unknown command: bogus") {
		t.Errorf("Expected error line for bogus:\n%s", got)
	}
	if strings.Contains(got, "In dataset") {
		t.Errorf("Commands after exit were run:\n%s", got)
	}
	if strings.Count(got, "songdash> ") != 5 {
		t.Errorf("Expected 5 prompts, got %d", strings.Count(got, "songdash> "))
	}
}

func TestParseKeys(t *testing.T) {
	got, err := parseKeys(" C , F#,Gb,, B♭ ")
	if err != nil {
		t.Fatalf("parseKeys failed: %v", err)
	}
	want := []string{"C", "F♯ / G♭", "F♯ / G♭", "A♯ / B♭"}
	if !slices.Equal(got, want) {
		t.Errorf("parseKeys = %v, want %v", got, want)
	}
	if got, err := parseKeys(""); err != nil || len(got) != 0 {
		t.Errorf("parseKeys(\"\") = %v, %v", got, err)
	}
}
