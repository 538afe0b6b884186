package bioinfodb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bioinfo-lab/bioinfodb/domain/model"
)

// ListTables returns the names of all user tables, sorted by name.
func ListTables(ctx context.Context, db *sql.DB) ([]string, error) {
	if db == nil {
		return nil, ErrNilDB
	}

	rows, err := db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("bioinfodb: list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("bioinfodb: list tables: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bioinfodb: list tables: %w", err)
	}
	return names, nil
}

// TableExists reports whether a user table with the given name exists.
func TableExists(ctx context.Context, db *sql.DB, table string) (bool, error) {
	if db == nil {
		return false, ErrNilDB
	}
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("bioinfodb: lookup table %s: %w", table, err)
	}
	return count > 0, nil
}

// TableColumns returns the columns of table in declaration order with the
// type mapped from their declared SQL type.
func TableColumns(ctx context.Context, db *sql.DB, table string) ([]ColumnInfo, error) {
	if db == nil {
		return nil, ErrNilDB
	}

	// PRAGMA table_info returns: cid, name, type, notnull, dflt_value, pk
	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+model.QuoteIdentifier(table)+")")
	if err != nil {
		return nil, fmt.Errorf("bioinfodb: columns of %s: %w", table, err)
	}
	defer rows.Close()

	var columns []ColumnInfo
	for rows.Next() {
		var (
			cid      int
			name     string
			declared sql.NullString
			notNull  int
			dflt     sql.NullString
			pk       int
		)
		if err := rows.Scan(&cid, &name, &declared, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("bioinfodb: columns of %s: %w", table, err)
		}
		columns = append(columns, ColumnInfo{Name: name, Type: model.ParseColumnType(declared.String)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bioinfodb: columns of %s: %w", table, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	return columns, nil
}

// CountRows returns the number of rows in table.
func CountRows(ctx context.Context, db *sql.DB, table string) (int64, error) {
	if db == nil {
		return 0, ErrNilDB
	}
	var n int64
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+model.QuoteIdentifier(table)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("bioinfodb: count rows of %s: %w", table, err)
	}
	return n, nil
}
