package models

// Source column names required in the input CSV.
const (
	ColTrackName    = "Track Name"
	ColArtistName   = "Artist Name"
	ColKey          = "Key"
	ColTempo        = "Tempo"
	ColPopularity   = "Popularity"
	ColDanceability = "Danceability"
	ColEnergy       = "Energy"
	ColValence      = "Valence"
	ColSpeechiness  = "Speechiness"

	// ColKeyName is derived at load time from ColKey.
	ColKeyName = "Key_Name"
)

// RequiredColumns lists every column the loader reads by name.
var RequiredColumns = []string{
	ColKey, ColTempo, ColPopularity, ColDanceability, ColEnergy,
	ColValence, ColSpeechiness, ColTrackName, ColArtistName,
}

// Song is one row of the dataset.
type Song struct {
	Row          int     // 0-based position in the source file
	TrackName    string  // Track title
	ArtistName   string  // Artist(s) as written in the CSV
	Key          int     // Pitch class 0-11, -1 when the cell was not an integer
	KeyName      string  // Derived label, empty when Key is out of range
	Tempo        float64 // Beats per minute, NaN when unparsable
	Popularity   float64
	Danceability float64
	Energy       float64
	Valence      float64
	Speechiness  float64

	// Fields holds the raw cells aligned with Table.Columns, derived column included.
	Fields []string
}

// Table is an immutable, ordered collection of songs.
type Table struct {
	Columns []string
	Songs   []Song
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Songs)
}

// WithSongs returns a table sharing t's columns with the given rows.
func (t *Table) WithSongs(songs []Song) *Table {
	return &Table{Columns: t.Columns, Songs: songs}
}

// ColumnIndex returns the position of a column or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
