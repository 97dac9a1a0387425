package songdash

import (
	"errors"
	"io/fs"
	"math"
	"strings"
	"testing"

	"github.com/himanishpuri/SongDash/pkg/models"
)

// TestParse tests header handling and typed columns
func TestParse(t *testing.T) {
	table := loadSample(t)

	if table.Len() != 8 {
		t.Fatalf("Expected 8 rows, got %d", table.Len())
	}
	wantCols := []string{"Track Name", "Artist Name", "Playlist", "Key", "Tempo", "Popularity",
		"Danceability", "Energy", "Valence", "Speechiness", "Key_Name"}
	if strings.Join(table.Columns, "|") != strings.Join(wantCols, "|") {
		t.Errorf("Columns = %v, want %v", table.Columns, wantCols)
	}

	first := table.Songs[0]
	if first.TrackName != "Alpha" || first.ArtistName != "A1" {
		t.Errorf("Unexpected first row names: %q by %q", first.TrackName, first.ArtistName)
	}
	if first.Key != 0 || first.KeyName != "C" || first.Tempo != 125 || first.Energy != 0.9 {
		t.Errorf("Unexpected first row values: %+v", first)
	}
	for i, s := range table.Songs {
		if s.Row != i {
			t.Errorf("Song %d has Row %d", i, s.Row)
		}
		if len(s.Fields) != len(table.Columns) {
			t.Errorf("Song %d has %d fields for %d columns", i, len(s.Fields), len(table.Columns))
		}
		if s.Fields[len(s.Fields)-1] != s.KeyName {
			t.Errorf("Song %d Key_Name cell %q != %q", i, s.Fields[len(s.Fields)-1], s.KeyName)
		}
	}

	if got := table.Songs[7].TrackName; got != "Hotel, Jr." {
		t.Errorf("Quoted field parsed as %q", got)
	}
	if idx := table.ColumnIndex(models.ColKeyName); idx != len(table.Columns)-1 {
		t.Errorf("ColumnIndex(Key_Name) = %d", idx)
	}
}

// TestParseCoercesInvalidCells tests that bad numbers become missing values
func TestParseCoercesInvalidCells(t *testing.T) {
	table := loadSample(t)

	echo := table.Songs[4]
	if !math.IsNaN(echo.Popularity) {
		t.Errorf("Expected NaN popularity for n/a, got %v", echo.Popularity)
	}
	if echo.KeyName != "C♯ / D♭" {
		t.Errorf("Expected C♯ / D♭, got %q", echo.KeyName)
	}

	foxtrot := table.Songs[5]
	if foxtrot.Key != 12 || foxtrot.KeyName != "" {
		t.Errorf("Expected key 12 without a label, got %d %q", foxtrot.Key, foxtrot.KeyName)
	}
}

func TestParseKeyCode(t *testing.T) {
	tests := []struct {
		cell string
		want int
	}{
		{"5", 5},
		{" 7 ", 7},
		{"5.0", 5},
		{"5.5", -1},
		{"x", -1},
		{"", -1},
		{"NaN", -1},
		{"Inf", -1},
		{"1e20", -1},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			if got := parseKeyCode(tt.cell); got != tt.want {
				t.Errorf("parseKeyCode(%q) = %d, want %d", tt.cell, got, tt.want)
			}
		})
	}
}

func TestParseStripsBOM(t *testing.T) {
	table, err := Parse(strings.NewReader("\ufeff" + sampleCSV))
	if err != nil {
		t.Fatalf("Parse with BOM failed: %v", err)
	}
	if table.Columns[0] != "Track Name" {
		t.Errorf("First column = %q", table.Columns[0])
	}
}

// TestParseMissingColumn tests that every required column is enforced
func TestParseMissingColumn(t *testing.T) {
	for _, col := range models.RequiredColumns {
		t.Run(col, func(t *testing.T) {
			lines := strings.SplitN(sampleCSV, "\n", 2)
			header := strings.Replace(lines[0], col, "Renamed", 1)
			_, err := Parse(strings.NewReader(header + "\n" + lines[1]))
			if !errors.Is(err, ErrMissingColumn) {
				t.Fatalf("Expected ErrMissingColumn, got %v", err)
			}
			if !strings.Contains(err.Error(), col) {
				t.Errorf("Error %q does not name %q", err, col)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := map[string]string{
		"empty":  "",
		"ragged": "Track Name,Artist Name,Key,Tempo,Popularity,Danceability,Energy,Valence,Speechiness\na,b,1\n",
		"quote":  "Track Name,Artist Name,Key,Tempo,Popularity,Danceability,Energy,Valence,Speechiness\n\"a,b,1,2,3,4,5,6,7\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(data)); err == nil {
				t.Fatal("Expected an error")
			}
		})
	}
}

func TestParseHeaderOnly(t *testing.T) {
	header := strings.SplitN(sampleCSV, "\n", 2)[0] + "\n"
	table, err := Parse(strings.NewReader(header))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("Expected no rows, got %d", table.Len())
	}
}

// TestLoad tests reading from disk
func TestLoad(t *testing.T) {
	table, err := Load(writeCSV(t, sampleCSV))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table.Len() != 8 {
		t.Errorf("Expected 8 rows, got %d", table.Len())
	}

	if _, err := Load(t.TempDir() + "/missing.csv"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}
