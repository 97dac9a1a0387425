package songdash

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/himanishpuri/SongDash/pkg/logger"
	"github.com/himanishpuri/SongDash/pkg/models"
)

// sampleCSV has one row per interesting case: a popularity tie (rows 0 and
// 2), a tempo outside the default window (rows 1, 4, 6), an unparsable
// popularity (row 4), an out-of-range key (row 5) and a quoted comma (row 7).
const sampleCSV = `Track Name,Artist Name,Playlist,Key,Tempo,Popularity,Danceability,Energy,Valence,Speechiness
Alpha,A1,p,0,125,80,0.8,0.9,0.5,0.05
Bravo,B1,p,2,140,60,0.7,0.6,0.4,0.06
Charlie,C1,p,0,122.5,80,0.9,0.7,0.3,0.07
Delta,D1,p,7,128,90,0.6,0.8,0.2,0.04
Echo,E1,p,1,118.2,n/a,0.5,0.5,0.6,0.1
Foxtrot,F1,p,12,130,70,0.4,0.95,0.7,0.03
Golf,G1,p,7,131.6,85,0.85,0.4,0.8,0.08
"Hotel, Jr.",H1,p,2,126,75,0.75,0.65,0.55,0.02
`

// Helper function to parse the sample dataset
func loadSample(t *testing.T) *models.Table {
	t.Helper()
	table, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Failed to parse sample CSV: %v", err)
	}
	return table
}

// Helper function to write a CSV file into a temp directory
func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "songs.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}
	return path
}

// Helper function to build a song with a key code and tempo
func song(row, key int, tempo float64) models.Song {
	name, _ := KeyName(key)
	return models.Song{Row: row, TrackName: "t" + string(rune('a'+row)), Key: key, KeyName: name, Tempo: tempo}
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.WARN, Output: &bytes.Buffer{}})
}

func rows(t *models.Table) []int {
	out := make([]int, 0, t.Len())
	for _, s := range t.Songs {
		out = append(out, s.Row)
	}
	return out
}
