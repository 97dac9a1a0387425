package songdash

import (
	"context"

	"github.com/himanishpuri/SongDash/pkg/models"
)

// Query engines a Service can filter and rank with.
const (
	EngineMemory = "memory"
	EngineSQLite = "sqlite"
)

type Service interface {
	// Dataset returns the full table loaded at startup.
	Dataset() *models.Table
	// TempoBounds returns the bounds of the tempo range control.
	TempoBounds() (lo, hi int)
	DefaultSelection() models.Selection
	NewSession(ctx context.Context, id string, sel models.Selection, opts ViewOptions) (*Session, error)
	Render(ctx context.Context, view string, sess *Session) (Page, error)
	Engine() string
	DataPath() string
	Close() error
}

// Source answers filter and top-N queries over the loaded dataset.
type Source interface {
	Filter(ctx context.Context, sel models.Selection) (*models.Table, error)
	Top(ctx context.Context, sel models.Selection, feature models.Feature, n int) (*models.Table, error)
	Close() error
}

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
