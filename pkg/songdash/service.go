package songdash

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/himanishpuri/SongDash/pkg/logger"
	"github.com/himanishpuri/SongDash/pkg/models"
	"github.com/himanishpuri/SongDash/pkg/utils"
)

// ErrUnknownEngine is returned by NewService for an engine name it cannot build.
var ErrUnknownEngine = errors.New("unknown query engine")

// dashboardService is the default implementation of the Service interface.
type dashboardService struct {
	table  *models.Table
	source Source
	log    Logger
	config *Config
	lo, hi int
}

func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}

	table := cfg.Table
	if table == nil {
		var err error
		table, err = Load(cfg.DataPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load dataset: %w", err)
		}
	}

	lo, hi, ok := TempoBounds(table)
	if !ok {
		return nil, fmt.Errorf("%s: %w", cfg.DataPath, ErrEmptyDataset)
	}

	source := cfg.Source
	if source == nil {
		var err error
		switch cfg.Engine {
		case EngineMemory, "":
			source = NewMemorySource(table)
		case EngineSQLite:
			source, err = NewSQLiteSource(context.Background(), table)
			if err != nil {
				return nil, fmt.Errorf("failed to create sqlite engine: %w", err)
			}
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, cfg.Engine)
		}
	}

	cfg.Logger.Infof("Loaded %s songs (%d columns) from %s using the %s engine",
		humanize.Comma(int64(table.Len())), len(table.Columns), cfg.DataPath, cfg.Engine)
	cfg.Logger.Debugf("Tempo bounds: %d-%d BPM, %d keys present", lo, hi, len(DistinctKeyNames(table)))

	return &dashboardService{
		table:  table,
		source: source,
		log:    cfg.Logger,
		config: cfg,
		lo:     lo,
		hi:     hi,
	}, nil
}

func (s *dashboardService) Dataset() *models.Table {
	return s.table
}

func (s *dashboardService) TempoBounds() (lo, hi int) {
	return s.lo, s.hi
}

func (s *dashboardService) DefaultSelection() models.Selection {
	return DefaultSelection(s.table)
}

// NewSession clamps the selection's tempo range into the dataset bounds and
// filters through the configured engine.
func (s *dashboardService) NewSession(ctx context.Context, id string, sel models.Selection, opts ViewOptions) (*Session, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	if id == "" {
		id = utils.NewRequestID()
	}
	sel.Tempo = ClampTempo(sel.Tempo, s.lo, s.hi)

	filtered, err := s.source.Filter(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("filtering dataset: %w", err)
	}
	s.log.Debugf("[%s] %d keys, %.0f-%.0f BPM: %d of %d rows",
		id, len(sel.Keys), sel.Tempo.Min, sel.Tempo.Max, filtered.Len(), s.table.Len())

	return &Session{
		ID:        id,
		Data:      s.table,
		Selection: sel,
		Filtered:  filtered,
		Options:   opts,
		source:    s.source,
	}, nil
}

func (s *dashboardService) Render(ctx context.Context, view string, sess *Session) (Page, error) {
	page, err := Route(ctx, view, sess)
	if err != nil {
		s.log.Errorf("[%s] rendering %q: %v", sess.ID, view, err)
		return nil, err
	}
	if page == nil {
		s.log.Debugf("[%s] no view named %q", sess.ID, view)
	}
	return page, nil
}

func (s *dashboardService) Engine() string {
	if s.config.Source != nil {
		return "custom"
	}
	if s.config.Engine == "" {
		return EngineMemory
	}
	return s.config.Engine
}

func (s *dashboardService) DataPath() string {
	return s.config.DataPath
}

// Close releases the query engine.
func (s *dashboardService) Close() error {
	return s.source.Close()
}
