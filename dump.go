package bioinfodb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bioinfo-lab/bioinfodb/domain/model"
)

// DumpDatabase exports every table to outputDir, one file per table named
// "<table><format extension><compression extension>". The directory is created
// if needed and existing files are overwritten.
//
// Examples:
//
//	// Export as CSV files
//	err := DumpDatabase(ctx, db, "./output", NewDumpOptions())
//
//	// Export as TSV files with gzip compression
//	options := NewDumpOptions().
//		WithFormat(OutputFormatTSV).
//		WithCompression(CompressionGZ)
//	err := DumpDatabase(ctx, db, "./output", options)
func DumpDatabase(ctx context.Context, db *sql.DB, outputDir string, options DumpOptions) error {
	if db == nil {
		return ErrNilDB
	}
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return fmt.Errorf("bioinfodb: create output directory: %w", err)
	}

	tables, err := ListTables(ctx, db)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		return ErrNoTables
	}

	for _, table := range tables {
		path := filepath.Join(outputDir, DumpFileName(table, options))
		if err := DumpTable(ctx, db, table, path, options); err != nil {
			return err
		}
	}
	return nil
}

// DumpTable exports one table to path in the format and compression given by options.
// NULL values are written as empty fields.
func DumpTable(ctx context.Context, db *sql.DB, table, path string, options DumpOptions) (err error) {
	ec := NewErrorContext("dump", path).WithTable(table)
	if db == nil {
		return ec.Error(ErrNilDB)
	}

	if options.Compression == model.CompressionBZ2 {
		return ec.Error(model.ErrBZ2WriteUnsupported)
	}

	columns, err := TableColumns(ctx, db, table)
	if err != nil {
		return ec.Error(err)
	}
	if options.Format == model.OutputFormatParquet {
		if columns, err = storedColumnTypes(ctx, db, table, columns); err != nil {
			return ec.Error(err)
		}
	}

	file, err := os.Create(path) //nolint:gosec // output path is chosen by the caller
	if err != nil {
		return ec.Error(err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			err = errors.Join(err, ec.Error(closeErr))
		}
	}()

	compressed, closeCompressor, err := options.Compression.NewWriter(file)
	if err != nil {
		return ec.Error(err)
	}
	writer, err := model.NewRowWriter(compressed, options.Format, columns)
	if err != nil {
		_ = closeCompressor()
		return ec.Error(err)
	}

	writeErr := writeRows(ctx, db, table, len(columns), writer)
	if closeErr := writer.Close(); closeErr != nil {
		writeErr = errors.Join(writeErr, closeErr)
	}
	if closeErr := closeCompressor(); closeErr != nil {
		writeErr = errors.Join(writeErr, closeErr)
	}
	if writeErr != nil {
		return ec.Error(writeErr)
	}
	return nil
}

func writeRows(ctx context.Context, db *sql.DB, table string, columnCount int, writer model.RowWriter) error {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+model.QuoteIdentifier(table))
	if err != nil {
		return err
	}
	defer rows.Close()

	values := make([]any, columnCount)
	ptrs := make([]any, columnCount)
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		if err := writer.Write(values); err != nil {
			return err
		}
	}
	return rows.Err()
}

// storedColumnTypes widens each declared column type to fit the values the
// table actually holds. SQLite keeps a value's own storage class when it does
// not convert to the declared type, so an INTEGER column can hold 1.5 or "n/a".
func storedColumnTypes(ctx context.Context, db *sql.DB, table string, columns []ColumnInfo) ([]ColumnInfo, error) {
	widened := make([]ColumnInfo, len(columns))
	copy(widened, columns)

	for i, col := range widened {
		if col.Type == model.ColumnTypeText {
			continue
		}
		classes, err := storageClasses(ctx, db, table, col.Name)
		if err != nil {
			return nil, err
		}
		switch {
		case classes["text"] || classes["blob"]:
			widened[i].Type = model.ColumnTypeText
		case classes["real"] && col.Type == model.ColumnTypeInteger:
			widened[i].Type = model.ColumnTypeReal
		}
	}
	return widened, nil
}

// storageClasses returns the set of typeof() results found in one column.
func storageClasses(ctx context.Context, db *sql.DB, table, column string) (map[string]bool, error) {
	query := fmt.Sprintf("SELECT DISTINCT typeof(%s) FROM %s",
		model.QuoteIdentifier(column), model.QuoteIdentifier(table))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := make(map[string]bool)
	for rows.Next() {
		var class string
		if err := rows.Scan(&class); err != nil {
			return nil, err
		}
		classes[class] = true
	}
	return classes, rows.Err()
}

// DumpFileName returns the file name DumpDatabase writes table to.
// Characters that cannot appear in a file name are replaced by "_".
func DumpFileName(table string, options DumpOptions) string {
	return sanitizeFileName(table) + options.FileExtension()
}

// sanitizeFileName replaces characters that cannot appear in a file name.
func sanitizeFileName(name string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			return '_'
		default:
			return r
		}
	}, name)
	if sanitized == "" || sanitized == "." || sanitized == ".." {
		return "table"
	}
	return sanitized
}
