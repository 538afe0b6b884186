package model

import (
	"fmt"
	"strings"
)

// Header is the list of column names taken from the first row of a file.
type Header []string

// NewHeader create new Header.
func NewHeader(h []string) Header {
	return Header(h)
}

// Equal compare Header.
func (h Header) Equal(h2 Header) bool {
	if len(h) != len(h2) {
		return false
	}
	for i, v := range h {
		if v != h2[i] {
			return false
		}
	}
	return true
}

// Validate rejects headers that repeat a column name. Names are compared
// case-insensitively, the way SQLite compares column names.
func (h Header) Validate() error {
	seen := make(map[string]struct{}, len(h))
	for _, col := range h {
		key := columnKey(col)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateColumnName, col)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// NameUnnamed returns a copy of the header where blank names are replaced by
// "Unnamed: <index>", so every column can be addressed in SQL.
func (h Header) NameUnnamed() Header {
	named := make(Header, len(h))
	for i, col := range h {
		if strings.TrimSpace(col) == "" {
			col = fmt.Sprintf("Unnamed: %d", i)
		}
		named[i] = col
	}
	return named
}

// Deduplicate returns a copy of the header where a repeated name gets a ".N"
// suffix: "a", "a", "a" becomes "a", "a.1", "a.2". A suffixed name that is
// already taken is suffixed again, so the result always passes Validate.
func (h Header) Deduplicate() Header {
	unique := make(Header, len(h))
	counts := make(map[string]int, len(h))
	for i, col := range h {
		n := counts[columnKey(col)]
		for n > 0 {
			counts[columnKey(col)] = n + 1
			col = fmt.Sprintf("%s.%d", col, n)
			n = counts[columnKey(col)]
		}
		unique[i] = col
		counts[columnKey(col)] = n + 1
	}
	return unique
}

// columnKey folds ASCII letters only; SQLite treats other letters as distinct.
func columnKey(name string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, name)
}

// Record is one data row.
type Record []string

// NewRecord create new Record.
func NewRecord(r []string) Record {
	return Record(r)
}

// Equal compare Record.
func (r Record) Equal(r2 Record) bool {
	if len(r) != len(r2) {
		return false
	}
	for i, v := range r {
		if v != r2[i] {
			return false
		}
	}
	return true
}

// ColumnType represents the SQL column type
type ColumnType int

const (
	// ColumnTypeText represents TEXT column type
	ColumnTypeText ColumnType = iota
	// ColumnTypeInteger represents INTEGER column type
	ColumnTypeInteger
	// ColumnTypeReal represents REAL column type
	ColumnTypeReal
	// ColumnTypeDatetime represents date/time values stored as TEXT
	ColumnTypeDatetime
)

const (
	sqlTypeText    = "TEXT"
	sqlTypeInteger = "INTEGER"
	sqlTypeReal    = "REAL"
)

// String returns the SQL column type string
func (ct ColumnType) String() string {
	switch ct {
	case ColumnTypeInteger:
		return sqlTypeInteger
	case ColumnTypeReal:
		return sqlTypeReal
	case ColumnTypeText, ColumnTypeDatetime:
		return sqlTypeText
	default:
		return sqlTypeText
	}
}

// ParseColumnType maps a declared SQLite column type back to a ColumnType.
// SQLite type affinity rules are followed loosely: anything containing INT is
// INTEGER, REAL/FLOA/DOUB/NUMERIC are REAL, everything else is TEXT.
func ParseColumnType(declared string) ColumnType {
	d := strings.ToUpper(declared)
	switch {
	case strings.Contains(d, "INT"):
		return ColumnTypeInteger
	case strings.Contains(d, "REAL"), strings.Contains(d, "FLOA"),
		strings.Contains(d, "DOUB"), strings.Contains(d, "NUMERIC"):
		return ColumnTypeReal
	default:
		return ColumnTypeText
	}
}

// ColumnInfo represents column information with name and inferred type
type ColumnInfo struct {
	Name string
	Type ColumnType
}

// NullValues is the set of field values treated as missing.
type NullValues map[string]struct{}

// DefaultNullValues are the markers read as NULL when no other set is configured.
// The list follows the usual conventions of data-frame CSV readers, so files
// exported by R or pandas round-trip their missing values.
var DefaultNullValues = NewNullValues(
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
)

// NewNullValues builds a NullValues set from the given markers.
func NewNullValues(markers ...string) NullValues {
	nv := make(NullValues, len(markers))
	for _, m := range markers {
		nv[m] = struct{}{}
	}
	return nv
}

// IsNull reports whether value is a missing-value marker.
// Surrounding whitespace is ignored; a nil set treats only "" as missing.
func (nv NullValues) IsNull(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return true
	}
	_, ok := nv[value]
	return ok
}
