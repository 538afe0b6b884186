package bioinfodb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bioinfo-lab/bioinfodb/domain/model"
)

// LoadDataIntoTable reads the CSV file at csvPath and replaces tableName with its
// contents. Column names come from the header row and column types are inferred
// from the values. A ".gz", ".bz2", ".xz" or ".zst" suffix is decompressed.
//
// The replacement runs in one transaction, so on error the previous table,
// if any, is left untouched.
func LoadDataIntoTable(ctx context.Context, db *sql.DB, tableName, csvPath string, opts ...Option) error {
	return loadFile(ctx, db, tableName, csvPath, model.FileTypeCSV, opts...)
}

// LoadFileIntoTable is LoadDataIntoTable for any supported format.
// The format and compression are detected from the file extension.
func LoadFileIntoTable(ctx context.Context, db *sql.DB, tableName, path string, opts ...Option) error {
	return loadFile(ctx, db, tableName, path, model.DetectFileType(path), opts...)
}

// LoadReaderIntoTable replaces tableName with the contents of reader, which holds
// data of the given format and compression.
func LoadReaderIntoTable(ctx context.Context, db *sql.DB, tableName string, reader io.Reader,
	fileType FileType, compression CompressionType, opts ...Option) error {
	cfg := newConfig(opts...)
	ec := NewErrorContext("load", "").WithTable(tableName)

	if err := validateLoad(db, tableName); err != nil {
		return ec.Error(err)
	}
	if reader == nil {
		return ec.Error(errors.New("reader is nil"))
	}

	table, err := model.NewParser(fileType, compression, cfg.NullValues).Parse(reader, tableName)
	if err != nil {
		return ec.WithDetails(fileType.String()).Error(err)
	}
	if err := replaceTable(ctx, db, table, cfg); err != nil {
		return ec.Error(err)
	}
	cfg.Logger.Info("loaded table", "table", tableName, "format", fileType.String(),
		"rows", len(table.Records()), "columns", len(table.Header()))
	return nil
}

func loadFile(ctx context.Context, db *sql.DB, tableName, path string, fileType FileType, opts ...Option) error {
	cfg := newConfig(opts...)
	ec := NewErrorContext("load", path).WithTable(tableName)

	if err := validateLoad(db, tableName); err != nil {
		return ec.Error(err)
	}
	if fileType == model.FileTypeUnsupported {
		return ec.Error(ErrUnsupportedFormat)
	}

	table, err := model.NewFileAs(path, fileType).ToTable(tableName, cfg.NullValues)
	if err != nil {
		return ec.Error(err)
	}
	if err := replaceTable(ctx, db, table, cfg); err != nil {
		return ec.Error(err)
	}

	cfg.Logger.Info("loaded table", "table", tableName, "path", path,
		"rows", len(table.Records()), "columns", len(table.Header()))
	return nil
}

func validateLoad(db *sql.DB, tableName string) error {
	if db == nil {
		return ErrNilDB
	}
	if strings.TrimSpace(tableName) == "" {
		return ErrEmptyTableName
	}
	return nil
}

// replaceTable drops any existing table with the same name, recreates it from the
// inferred columns and inserts every record, all in one transaction.
func replaceTable(ctx context.Context, db *sql.DB, table *model.Table, cfg Config) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	name := model.QuoteIdentifier(table.Name())
	if _, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}

	ddl := createTableStatement(table)
	cfg.Logger.Debug("creating table", "table", table.Name(), "statement", ddl)
	if _, err = tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	if err = insertRecords(ctx, tx, table, cfg.ChunkSize); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// createTableStatement builds the CREATE TABLE statement for the table's inferred columns.
func createTableStatement(table *model.Table) string {
	columnInfo := table.ColumnInfo()
	columns := make([]string, 0, len(columnInfo))
	for _, col := range columnInfo {
		columns = append(columns, model.QuoteIdentifier(col.Name)+" "+col.Type.String())
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)",
		model.QuoteIdentifier(table.Name()), strings.Join(columns, ", "))
}

// insertStatement builds a positional INSERT for every column of the table.
func insertStatement(table *model.Table) string {
	header := table.Header()
	columns := make([]string, len(header))
	placeholders := make([]string, len(header))
	for i, col := range header {
		columns[i] = model.QuoteIdentifier(col)
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		model.QuoteIdentifier(table.Name()),
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "))
}

// insertRecords inserts all records through one prepared statement,
// checking for cancellation every chunkSize rows.
func insertRecords(ctx context.Context, tx *sql.Tx, table *model.Table, chunkSize int) (err error) {
	records := table.Records()
	if len(records) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, insertStatement(table))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	values := make([]any, len(table.Header()))
	for n, record := range records {
		if n%chunkSize == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for i := range values {
			values[i] = table.Value(record, i)
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return fmt.Errorf("insert record %d: %w", n+1, err)
		}
	}
	return nil
}
