package model

import (
	"path/filepath"
	"strings"
)

// Table represents file contents as database table structure.
type Table struct {
	// name is the target table name.
	name string
	// header is table header.
	header Header
	// records is table records, each padded to the header width.
	records []Record
	// columnInfo contains inferred type information for each column
	columnInfo []ColumnInfo
	// nulls is the set of values stored as NULL
	nulls NullValues
}

// NewTable creates a Table and infers its column types.
// A nil nulls set falls back to DefaultNullValues.
func NewTable(name string, header Header, records []Record, nulls NullValues) *Table {
	if nulls == nil {
		nulls = DefaultNullValues
	}
	return &Table{
		name:       name,
		header:     header,
		records:    records,
		columnInfo: InferColumnsInfo(header, records, nulls),
		nulls:      nulls,
	}
}

// Name return table name.
func (t *Table) Name() string {
	return t.name
}

// Header return table header.
func (t *Table) Header() Header {
	return t.header
}

// Records return table records.
func (t *Table) Records() []Record {
	return t.records
}

// ColumnInfo returns column information with inferred types
func (t *Table) ColumnInfo() []ColumnInfo {
	return t.columnInfo
}

// NullValues returns the markers this table treats as missing.
func (t *Table) NullValues() NullValues {
	return t.nulls
}

// Rename returns a copy of the table under another name.
func (t *Table) Rename(name string) *Table {
	c := *t
	c.name = name
	return &c
}

// Equal compare Table.
func (t *Table) Equal(t2 *Table) bool {
	if t.Name() != t2.Name() {
		return false
	}
	if !t.header.Equal(t2.header) {
		return false
	}
	if len(t.Records()) != len(t2.Records()) {
		return false
	}
	for i, record := range t.Records() {
		if !record.Equal(t2.Records()[i]) {
			return false
		}
	}
	return true
}

// Value converts field i of record to the Go value bound for its column:
// nil for missing values, int64 for INTEGER, float64 for REAL and string otherwise.
func (t *Table) Value(record Record, i int) any {
	if i >= len(record) || t.nulls.IsNull(record[i]) {
		return nil
	}
	raw := record[i]
	switch t.columnInfo[i].Type {
	case ColumnTypeInteger:
		if v, ok := ParseInteger(raw); ok {
			return v
		}
		if v, ok := ParseBoolean(raw); ok {
			return v
		}
	case ColumnTypeReal:
		if v, ok := ParseReal(raw); ok {
			return v
		}
	case ColumnTypeText, ColumnTypeDatetime:
	}
	return raw
}

// TableNameFromPath derives a table name from a file path:
// the base name without its compression and format extensions.
func TableNameFromPath(filePath string) string {
	fileName := filepath.Base(filePath)
	for _, ext := range compressionExtensions {
		if strings.HasSuffix(strings.ToLower(fileName), ext) {
			fileName = fileName[:len(fileName)-len(ext)]
			break
		}
	}
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

// QuoteIdentifier quotes a table or column name for SQLite.
// Embedded double quotes are doubled so any text is a valid identifier.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
