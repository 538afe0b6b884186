package bioinfodb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bioinfo-lab/bioinfodb/domain/model"
)

// DatabaseName is the file name of the store opened when no path is configured.
const DatabaseName = "bioinfo_db.sqlite"

// Supported file types and compression, re-exported from the model package.
type (
	// FileType is the base format of an input file.
	FileType = model.FileType
	// CompressionType is the compression applied to an input or output file.
	CompressionType = model.CompressionType
	// OutputFormat is the format written by DumpTable and DumpDatabase.
	OutputFormat = model.OutputFormat
	// DumpOptions configure DumpTable and DumpDatabase.
	DumpOptions = model.DumpOptions
	// ColumnInfo is a column name with its SQL type.
	ColumnInfo = model.ColumnInfo
	// ColumnType is the SQL type of a column.
	ColumnType = model.ColumnType
)

// Re-exported file types, compression kinds and output formats.
const (
	FileTypeCSV     = model.FileTypeCSV
	FileTypeTSV     = model.FileTypeTSV
	FileTypeLTSV    = model.FileTypeLTSV
	FileTypeXLSX    = model.FileTypeXLSX
	FileTypeParquet = model.FileTypeParquet

	CompressionNone = model.CompressionNone
	CompressionGZ   = model.CompressionGZ
	CompressionBZ2  = model.CompressionBZ2
	CompressionXZ   = model.CompressionXZ
	CompressionZSTD = model.CompressionZSTD

	OutputFormatCSV     = model.OutputFormatCSV
	OutputFormatTSV     = model.OutputFormatTSV
	OutputFormatLTSV    = model.OutputFormatLTSV
	OutputFormatXLSX    = model.OutputFormatXLSX
	OutputFormatParquet = model.OutputFormatParquet

	ColumnTypeText    = model.ColumnTypeText
	ColumnTypeInteger = model.ColumnTypeInteger
	ColumnTypeReal    = model.ColumnTypeReal
)

// NewDumpOptions returns options that write uncompressed CSV.
func NewDumpOptions() DumpOptions {
	return model.NewDumpOptions()
}

// ParseOutputFormat maps a name such as "csv" or "xlsx" to an OutputFormat.
func ParseOutputFormat(name string) (OutputFormat, error) {
	return model.ParseOutputFormat(name)
}

// ParseCompressionType maps a name such as "gz", "zstd" or "none" to a CompressionType.
func ParseCompressionType(name string) (CompressionType, error) {
	return model.ParseCompressionType(name)
}

// TableNameFromPath derives a table name from a file path, e.g. "genes.csv.gz" gives "genes".
func TableNameFromPath(path string) string {
	return model.TableNameFromPath(path)
}

// CreateConnection opens the database file, creating it if needed.
// On failure the error is logged and nil is returned.
func CreateConnection(ctx context.Context, opts ...Option) *sql.DB {
	cfg := newConfig(opts...)
	db, err := open(ctx, cfg)
	if err != nil {
		cfg.Logger.Error("error connecting to database", "path", cfg.Path, "error", err)
		return nil
	}
	return db
}

// Connect opens the database file, creating it if needed, and verifies that it
// can be written. The caller must Close the returned handle.
func Connect(ctx context.Context, opts ...Option) (*sql.DB, error) {
	return open(ctx, newConfig(opts...))
}

func open(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open(driverName, buildDSN(cfg.Path, cfg.pragmas()))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Path, err)
	}

	// A single connection keeps an in-memory database alive and serialises writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Path, err)
	}

	if err := checkWritable(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("write %s: %w", cfg.Path, err)
	}

	return db, nil
}

// checkWritable rewrites the user_version header field with its current value,
// forcing SQLite to create and lock the file for writing.
func checkWritable(ctx context.Context, db *sql.DB) error {
	var version int64
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, "PRAGMA user_version = "+strconv.FormatInt(version, 10))
	return err
}

// CreateTable executes stmt, typically a CREATE TABLE statement.
// A failing statement is logged and its error returned; the database is left
// as it was before the call. Only WithLogger affects CreateTable.
func CreateTable(ctx context.Context, db *sql.DB, stmt string, opts ...Option) error {
	return createTable(ctx, db, stmt, newConfig(opts...).Logger)
}

func createTable(ctx context.Context, db *sql.DB, stmt string, logger *slog.Logger) error {
	var err error
	switch {
	case db == nil:
		err = ErrNilDB
	case strings.TrimSpace(stmt) == "":
		err = ErrEmptyStatement
	default:
		if _, execErr := db.ExecContext(ctx, stmt); execErr != nil {
			err = fmt.Errorf("bioinfodb: execute statement: %w", execErr)
		}
	}
	if err != nil {
		logger.Error("error creating table", "statement", stmt, "error", err)
	}
	return err
}

// formatMillis renders d as whole milliseconds for SQLite pragmas.
func formatMillis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}
