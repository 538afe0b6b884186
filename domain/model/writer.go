package model

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// RowWriter writes table rows in one output format.
type RowWriter interface {
	// Write writes one row; nil values are NULL.
	Write(values []any) error
	// Close flushes buffered output. It does not close the underlying io.Writer.
	Close() error
}

// NewRowWriter returns a RowWriter for format that writes a header built from columns first.
func NewRowWriter(out io.Writer, format OutputFormat, columns []ColumnInfo) (RowWriter, error) {
	switch format {
	case OutputFormatCSV:
		return newDelimitedWriter(out, csvDelimiter, columns)
	case OutputFormatTSV:
		return newDelimitedWriter(out, tsvDelimiter, columns)
	case OutputFormatLTSV:
		return &ltsvWriter{out: out, columns: columns}, nil
	case OutputFormatXLSX:
		return newXLSXWriter(out, columns)
	case OutputFormatParquet:
		return newParquetWriter(out, columns)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
}

// FormatValue renders a database value as text. NULL is the empty string.
func FormatValue(v any) string {
	switch tv := v.(type) {
	case nil:
		return ""
	case string:
		return tv
	case []byte:
		return string(tv)
	case int64:
		return strconv.FormatInt(tv, 10)
	case float64:
		return FormatReal(tv)
	case bool:
		if tv {
			return "1"
		}
		return "0"
	case time.Time:
		return tv.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(tv)
	}
}

// FormatReal renders a float so that it reads back as REAL:
// whole numbers keep a trailing ".0".
func FormatReal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

type delimitedWriter struct {
	w *csv.Writer
}

func newDelimitedWriter(out io.Writer, delimiter rune, columns []ColumnInfo) (*delimitedWriter, error) {
	w := csv.NewWriter(out)
	w.Comma = delimiter

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Name
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	return &delimitedWriter{w: w}, nil
}

func (d *delimitedWriter) Write(values []any) error {
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = FormatValue(v)
	}
	return d.w.Write(row)
}

func (d *delimitedWriter) Close() error {
	d.w.Flush()
	return d.w.Error()
}

type ltsvWriter struct {
	out     io.Writer
	columns []ColumnInfo
}

// ltsvEscaper keeps values on one line and free of field separators.
var ltsvEscaper = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

func (l *ltsvWriter) Write(values []any) error {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte('\t')
		}
		sb.WriteString(l.columns[i].Name)
		sb.WriteByte(':')
		sb.WriteString(ltsvEscaper.Replace(FormatValue(v)))
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(l.out, sb.String())
	return err
}

func (l *ltsvWriter) Close() error {
	return nil
}
