package songdash

import (
	"context"
	"fmt"

	"github.com/himanishpuri/SongDash/pkg/models"
	"github.com/himanishpuri/SongDash/pkg/songdash/storage"
)

// sqliteSource answers queries from an in-memory SQLite catalogue and maps
// the returned source rows back onto the loaded table.
type sqliteSource struct {
	db    *storage.DBClient
	table *models.Table
	byRow map[int]int
}

// NewSQLiteSource loads t into a fresh in-memory catalogue.
func NewSQLiteSource(ctx context.Context, t *models.Table) (Source, error) {
	db, err := storage.NewDBClient()
	if err != nil {
		return nil, err
	}
	if err := db.StoreSongs(ctx, t); err != nil {
		db.Close()
		return nil, fmt.Errorf("loading catalogue: %w", err)
	}

	byRow := make(map[int]int, t.Len())
	for i, s := range t.Songs {
		byRow[s.Row] = i
	}
	return &sqliteSource{db: db, table: t, byRow: byRow}, nil
}

func (s *sqliteSource) Filter(ctx context.Context, sel models.Selection) (*models.Table, error) {
	rows, err := s.db.FilterRows(ctx, sel)
	if err != nil {
		return nil, err
	}
	return s.table.WithSongs(s.songs(rows)), nil
}

func (s *sqliteSource) Top(ctx context.Context, sel models.Selection, feature models.Feature, n int) (*models.Table, error) {
	rows, err := s.db.TopRows(ctx, sel, feature, n)
	if err != nil {
		return nil, err
	}
	columns := []string{models.ColTrackName, models.ColArtistName, string(feature)}
	return Project(columns, feature, s.songs(rows)), nil
}

func (s *sqliteSource) songs(rows []int) []models.Song {
	out := make([]models.Song, 0, len(rows))
	for _, r := range rows {
		if i, ok := s.byRow[r]; ok {
			out = append(out, s.table.Songs[i])
		}
	}
	return out
}

func (s *sqliteSource) Close() error {
	return s.db.Close()
}
