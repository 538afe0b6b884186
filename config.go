package bioinfodb

import (
	"log/slog"
	"strings"
	"time"

	"github.com/bioinfo-lab/bioinfodb/domain/model"
)

// Processing constants
const (
	// DefaultChunkSize is the number of rows inserted between context checks
	DefaultChunkSize = 1000
	// DefaultBusyTimeout is how long SQLite waits on a locked database file
	DefaultBusyTimeout = 5 * time.Second
	// DefaultJournalMode is the journal mode applied to file databases
	DefaultJournalMode = "WAL"
	// MemoryPath opens a private in-memory database instead of a file
	MemoryPath = ":memory:"
)

// Config holds connection and loading settings. The zero value is usable;
// unset fields take the defaults described on each field.
type Config struct {
	// Path of the database file. Default: DatabaseName in the working directory.
	Path string

	// Logger for operational logging. Default: slog.Default().
	Logger *slog.Logger

	// BusyTimeout bounds waits on a locked database. Default: DefaultBusyTimeout.
	BusyTimeout time.Duration

	// JournalMode is the SQLite journal mode for file databases. Default: DefaultJournalMode.
	JournalMode string

	// ChunkSize is the number of rows inserted between context checks. Default: DefaultChunkSize.
	ChunkSize int

	// NullValues are the field values stored as NULL. Default: model.DefaultNullValues.
	NullValues model.NullValues
}

// Option configures a Config.
type Option func(*Config)

// WithPath sets the database file path.
func WithPath(path string) Option {
	return func(c *Config) {
		c.Path = path
	}
}

// WithLogger sets the logger used for errors and load reports.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithBusyTimeout sets how long SQLite waits for a lock.
func WithBusyTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.BusyTimeout = d
	}
}

// WithJournalMode sets the journal mode, e.g. "WAL", "DELETE" or "TRUNCATE".
func WithJournalMode(mode string) Option {
	return func(c *Config) {
		c.JournalMode = mode
	}
}

// WithChunkSize sets the number of rows inserted between context checks.
func WithChunkSize(rows int) Option {
	return func(c *Config) {
		c.ChunkSize = rows
	}
}

// WithNullValues replaces the set of field values stored as NULL.
// The empty string is always treated as NULL.
func WithNullValues(markers ...string) Option {
	return func(c *Config) {
		c.NullValues = model.NewNullValues(markers...)
	}
}

// newConfig applies opts over the defaults.
func newConfig(opts ...Option) Config {
	cfg := Config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg.defaults()
}

// defaults returns a copy of cfg with default values applied.
func (cfg Config) defaults() Config {
	if cfg.Path == "" {
		cfg.Path = DatabaseName
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = DefaultBusyTimeout
	}
	if cfg.JournalMode == "" {
		cfg.JournalMode = DefaultJournalMode
	}
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.NullValues == nil {
		cfg.NullValues = model.DefaultNullValues
	}
	return cfg
}

// isMemory reports whether Path names an in-memory database.
func (cfg Config) isMemory() bool {
	return cfg.Path == MemoryPath
}

// pragma represents a SQLite pragma setting.
type pragma struct {
	name  string
	value string
}

// pragmas returns the per-connection settings for cfg.
func (cfg Config) pragmas() []pragma {
	journal := cfg.JournalMode
	if cfg.isMemory() {
		journal = "MEMORY"
	}
	return []pragma{
		{name: "busy_timeout", value: formatMillis(cfg.BusyTimeout)},
		{name: "journal_mode", value: journal},
		{name: "foreign_keys", value: "ON"},
	}
}

// dsnPathEscaper percent-encodes the characters SQLite's URI parser gives a
// meaning to, so a path like "run#1.sqlite" names exactly that file.
var dsnPathEscaper = strings.NewReplacer("%", "%25", "?", "%3F", "#", "%23")

// buildDSN returns the "file:" URI for path carrying one query parameter per
// pragma, in the syntax of the compiled-in driver.
func buildDSN(path string, pragmas []pragma) string {
	dsn := "file:" + dsnPathEscaper.Replace(path)
	if len(pragmas) == 0 {
		return dsn
	}
	params := make([]string, len(pragmas))
	for i, p := range pragmas {
		params[i] = pragmaParam(p)
	}
	return dsn + "?" + strings.Join(params, "&")
}
