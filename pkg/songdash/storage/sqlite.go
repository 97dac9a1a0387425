package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/glebarez/sqlite"
	"github.com/himanishpuri/SongDash/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryDSN keeps the catalogue in process memory.
const MemoryDSN = ":memory:"

const errDBClientNil = "db client is nil"

// ErrUnknownColumn is returned for a ranking column with no SQL mapping.
var ErrUnknownColumn = errors.New("unknown ranking column")

type DBClient struct {
	DB *gorm.DB
	db *sql.DB
}

// Song is one catalogue row. Numeric columns are nullable: a NULL stands
// for a cell that did not parse.
type Song struct {
	ID           uint     `gorm:"primaryKey;autoIncrement"`
	SourceRow    int      `gorm:"uniqueIndex:idx_source_row" json:"source_row"`
	TrackName    string   `json:"track_name"`
	ArtistName   string   `json:"artist_name"`
	KeyName      string   `gorm:"index:idx_key_tempo,priority:1" json:"key_name"`
	Tempo        *float64 `gorm:"index:idx_key_tempo,priority:2" json:"tempo"`
	Popularity   *float64 `json:"popularity"`
	Danceability *float64 `json:"danceability"`
	Energy       *float64 `json:"energy"`
	Valence      *float64 `json:"valence"`
	Speechiness  *float64 `json:"speechiness"`
}

var featureColumns = map[models.Feature]string{
	models.FeaturePopularity:   "popularity",
	models.FeatureDanceability: "danceability",
	models.FeatureEnergy:       "energy",
	models.FeatureValence:      "valence",
	models.FeatureSpeechiness:  "speechiness",
	models.FeatureTempo:        "tempo",
}

// NewDBClient opens an in-memory catalogue.
func NewDBClient() (*DBClient, error) {
	return NewDBClientWithDSN(MemoryDSN)
}

func NewDBClientWithDSN(dsn string) (*DBClient, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&Song{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &DBClient{DB: db, db: sqlDB}, nil
}

func (c *DBClient) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// StoreSongs inserts the rows of t in one transaction.
func (c *DBClient) StoreSongs(ctx context.Context, t *models.Table) error {
	if c == nil || c.DB == nil {
		return errors.New(errDBClientNil)
	}
	if t.Len() == 0 {
		return nil
	}

	entries := make([]Song, 0, t.Len())
	for _, s := range t.Songs {
		entries = append(entries, Song{
			SourceRow:    s.Row,
			TrackName:    s.TrackName,
			ArtistName:   s.ArtistName,
			KeyName:      s.KeyName,
			Tempo:        nullable(s.Tempo),
			Popularity:   nullable(s.Popularity),
			Danceability: nullable(s.Danceability),
			Energy:       nullable(s.Energy),
			Valence:      nullable(s.Valence),
			Speechiness:  nullable(s.Speechiness),
		})
	}

	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(entries, 500).Error; err != nil {
			return fmt.Errorf("batch insert songs: %w", err)
		}
		return nil
	})
}

// Count returns the number of stored rows.
func (c *DBClient) Count(ctx context.Context) (int64, error) {
	if c == nil || c.DB == nil {
		return 0, errors.New(errDBClientNil)
	}
	var n int64
	if err := c.DB.WithContext(ctx).Model(&Song{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting songs: %w", err)
	}
	return n, nil
}

// FilterRows returns the source rows matching sel in source order.
func (c *DBClient) FilterRows(ctx context.Context, sel models.Selection) ([]int, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	rows := []int{}
	if len(sel.Keys) == 0 {
		return rows, nil
	}
	err := c.selectionQuery(ctx, sel).
		Order("source_row").
		Pluck("source_row", &rows).Error
	if err != nil {
		return nil, fmt.Errorf("filtering songs: %w", err)
	}
	return rows, nil
}

// TopRows returns up to n source rows matching sel with the largest values
// of feature. Equal values are ordered by source row; NULLs are skipped.
func (c *DBClient) TopRows(ctx context.Context, sel models.Selection, feature models.Feature, n int) ([]int, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	col, ok := featureColumns[feature]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, feature)
	}
	rows := []int{}
	if len(sel.Keys) == 0 || n <= 0 {
		return rows, nil
	}
	err := c.selectionQuery(ctx, sel).
		Where(col + " IS NOT NULL").
		Order(col + " DESC").
		Order("source_row").
		Limit(n).
		Pluck("source_row", &rows).Error
	if err != nil {
		return nil, fmt.Errorf("ranking songs by %s: %w", col, err)
	}
	return rows, nil
}

func (c *DBClient) selectionQuery(ctx context.Context, sel models.Selection) *gorm.DB {
	return c.DB.WithContext(ctx).
		Model(&Song{}).
		Where("key_name IN ? AND key_name <> ''", sel.Keys).
		Where("tempo >= ? AND tempo <= ?", sel.Tempo.Min, sel.Tempo.Max)
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
