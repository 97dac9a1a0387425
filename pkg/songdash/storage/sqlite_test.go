package storage

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/himanishpuri/SongDash/pkg/models"
)

// Helper function to create an in-memory catalogue holding songs
func setupTestDB(t *testing.T, songs ...models.Song) *DBClient {
	t.Helper()

	client, err := NewDBClient()
	if err != nil {
		t.Fatalf("Failed to create test DB client: %v", err)
	}
	t.Cleanup(func() {
		client.Close()
	})

	if err := client.StoreSongs(context.Background(), &models.Table{Songs: songs}); err != nil {
		t.Fatalf("Failed to store songs: %v", err)
	}
	return client
}

func testSong(row int, key string, tempo, energy float64) models.Song {
	return models.Song{
		Row:        row,
		TrackName:  "track",
		ArtistName: "artist",
		KeyName:    key,
		Tempo:      tempo,
		Energy:     energy,
		Popularity: math.NaN(),
	}
}

func allKeys(min, max float64, keys ...string) models.Selection {
	return models.Selection{Keys: keys, Tempo: models.TempoRange{Min: min, Max: max}}
}

// TestNewDBClient tests database initialization
func TestNewDBClient(t *testing.T) {
	client := setupTestDB(t)

	if client.DB == nil {
		t.Fatal("Expected non-nil GORM DB handle")
	}
	if client.db == nil {
		t.Fatal("Expected non-nil sql.DB handle")
	}
	if n, err := client.Count(context.Background()); err != nil || n != 0 {
		t.Errorf("Expected empty catalogue, got %d, %v", n, err)
	}
}

func TestStoreSongs(t *testing.T) {
	client := setupTestDB(t,
		testSong(0, "C", 125, 0.5),
		testSong(1, "D", math.NaN(), 0.7),
	)

	if n, err := client.Count(context.Background()); err != nil || n != 2 {
		t.Fatalf("Expected 2 rows, got %d, %v", n, err)
	}

	var stored Song
	if err := client.DB.Where("source_row = ?", 1).First(&stored).Error; err != nil {
		t.Fatalf("Failed to read row: %v", err)
	}
	if stored.Tempo != nil {
		t.Errorf("Expected NULL tempo, got %v", *stored.Tempo)
	}
	if stored.Popularity != nil {
		t.Errorf("Expected NULL popularity, got %v", *stored.Popularity)
	}
	if stored.Energy == nil || *stored.Energy != 0.7 {
		t.Errorf("Unexpected energy %v", stored.Energy)
	}
}

// TestFilterRows tests key membership, inclusive tempo bounds and source order
func TestFilterRows(t *testing.T) {
	client := setupTestDB(t,
		testSong(0, "C", 125, 0.5),
		testSong(1, "D", 140, 0.6),
		testSong(2, "C", 120, 0.7),
		testSong(3, "G", 130, 0.8),
		testSong(4, "C", math.NaN(), 0.9),
		testSong(5, "", 125, 0.1),
	)
	ctx := context.Background()

	tests := []struct {
		name string
		sel  models.Selection
		want []int
	}{
		{"scenario", allKeys(120, 130, "C"), []int{0, 2}},
		{"two keys", allKeys(120, 130, "C", "G"), []int{0, 2, 3}},
		{"every key", allKeys(0, 200, "C", "D", "G"), []int{0, 1, 2, 3}},
		{"narrow", allKeys(125, 125, "C"), []int{0}},
		{"no keys", allKeys(0, 200), []int{}},
		{"unknown key", allKeys(0, 200, "B"), []int{}},
		{"unlabelled", allKeys(0, 200, ""), []int{}},
		{"unlabelled and C", allKeys(0, 200, "", "C"), []int{0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.FilterRows(ctx, tt.sel)
			if err != nil {
				t.Fatalf("FilterRows failed: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("FilterRows = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestTopRows tests descending order with ties broken by source row
func TestTopRows(t *testing.T) {
	client := setupTestDB(t,
		testSong(0, "C", 125, 0.5),
		testSong(1, "C", 125, 0.9),
		testSong(2, "C", 125, 0.5),
		testSong(3, "C", 125, math.NaN()),
		testSong(4, "C", 125, 0.7),
		testSong(5, "D", 125, 1.0),
	)
	ctx := context.Background()
	sel := allKeys(120, 130, "C")

	got, err := client.TopRows(ctx, sel, models.FeatureEnergy, 10)
	if err != nil {
		t.Fatalf("TopRows failed: %v", err)
	}
	if !slices.Equal(got, []int{1, 4, 0, 2}) {
		t.Errorf("TopRows = %v, want [1 4 0 2]", got)
	}

	got, err = client.TopRows(ctx, sel, models.FeatureEnergy, 3)
	if err != nil {
		t.Fatalf("TopRows failed: %v", err)
	}
	if !slices.Equal(got, []int{1, 4, 0}) {
		t.Errorf("TopRows n=3 = %v, want [1 4 0]", got)
	}

	got, err = client.TopRows(ctx, sel, models.FeaturePopularity, 10)
	if err != nil || len(got) != 0 {
		t.Errorf("Expected no rows for an all-NULL column, got %v, %v", got, err)
	}
}

func TestTopRowsUnknownFeature(t *testing.T) {
	client := setupTestDB(t, testSong(0, "C", 125, 0.5))
	_, err := client.TopRows(context.Background(), allKeys(0, 200, "C"), models.Feature("Loudness; DROP TABLE songs"), 5)
	if !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("Expected ErrUnknownColumn, got %v", err)
	}
}

func TestNilClient(t *testing.T) {
	var c *DBClient
	if err := c.Close(); err != nil {
		t.Errorf("Close on nil client: %v", err)
	}
	if _, err := c.FilterRows(context.Background(), allKeys(0, 1, "C")); err == nil {
		t.Error("Expected error from nil client")
	}
	if _, err := c.TopRows(context.Background(), allKeys(0, 1, "C"), models.FeatureEnergy, 1); err == nil {
		t.Error("Expected error from nil client")
	}
}
