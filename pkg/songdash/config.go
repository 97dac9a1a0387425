package songdash

import "github.com/himanishpuri/SongDash/pkg/models"

type Config struct {
	DataPath string
	Engine   string
	Logger   Logger
	Source   Source
	Table    *models.Table
}

type Option func(*Config)

func WithDataPath(path string) Option {
	return func(c *Config) {
		c.DataPath = path
	}
}

// WithEngine selects the query engine, EngineMemory or EngineSQLite.
func WithEngine(engine string) Option {
	return func(c *Config) {
		c.Engine = engine
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

// WithSource overrides the engine with a ready-made Source.
func WithSource(source Source) Option {
	return func(c *Config) {
		c.Source = source
	}
}

// WithTable skips loading from DataPath and serves t instead.
func WithTable(t *models.Table) Option {
	return func(c *Config) {
		c.Table = t
	}
}

func defaultConfig() *Config {
	return &Config{
		DataPath: DefaultDataFile,
		Engine:   EngineMemory,
		Logger:   nil,
	}
}
