package songdash

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/himanishpuri/SongDash/pkg/models"
)

// DefaultDataFile is the dataset path used when none is configured.
const DefaultDataFile = "Top_Tech_House_Songs_From_Playlists.csv"

var (
	// ErrMissingColumn is returned when the CSV header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrEmptyDataset is returned when a dataset has no usable rows.
	ErrEmptyDataset = errors.New("dataset has no rows with a tempo")
)

// Load reads the CSV file at path into a table.
func Load(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	table, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return table, nil
}

// Parse reads CSV data with a header row. Numeric cells that do not parse
// become NaN; a Key_Name column is appended from the Key column.
func Parse(r io.Reader) (*models.Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	for _, col := range models.RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	columns := append(append([]string(nil), header...), models.ColKeyName)
	table := &models.Table{Columns: columns}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}

		song := models.Song{
			Row:          len(table.Songs),
			TrackName:    record[idx[models.ColTrackName]],
			ArtistName:   record[idx[models.ColArtistName]],
			Key:          parseKeyCode(record[idx[models.ColKey]]),
			Tempo:        parseNumber(record[idx[models.ColTempo]]),
			Popularity:   parseNumber(record[idx[models.ColPopularity]]),
			Danceability: parseNumber(record[idx[models.ColDanceability]]),
			Energy:       parseNumber(record[idx[models.ColEnergy]]),
			Valence:      parseNumber(record[idx[models.ColValence]]),
			Speechiness:  parseNumber(record[idx[models.ColSpeechiness]]),
		}
		song.KeyName, _ = KeyName(song.Key)
		song.Fields = append(record, song.KeyName)

		table.Songs = append(table.Songs, song)
	}

	return table, nil
}

func parseNumber(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseKeyCode accepts integral values written as ints or floats ("5", "5.0").
func parseKeyCode(cell string) int {
	v := parseNumber(cell)
	if math.IsNaN(v) || math.Abs(v) > math.MaxInt32 || v != math.Trunc(v) {
		return -1
	}
	return int(v)
}
