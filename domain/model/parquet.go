package model

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
)

// parquetBatchRows is the number of rows per record batch on read and write.
const parquetBatchRows = 1024

// parseParquet reads a whole Parquet file. Parquet needs random access, so
// the input is buffered in memory first.
func parseParquet(reader io.Reader) (Header, []Record, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("%w: empty parquet file", ErrEmptyData)
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{BatchSize: parquetBatchRows}, memory.DefaultAllocator)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read table: %w", err)
	}
	defer table.Release()

	schema := table.Schema()
	header := make(Header, schema.NumFields())
	for i, field := range schema.Fields() {
		header[i] = field.Name
	}

	tableReader := array.NewTableReader(table, parquetBatchRows)
	defer tableReader.Release()

	records := make([]Record, 0, table.NumRows())
	for tableReader.Next() {
		batch := tableReader.Record()
		for i := range int(batch.NumRows()) {
			row := make(Record, batch.NumCols())
			for j, col := range batch.Columns() {
				row[j] = arrowValueString(col, i)
			}
			records = append(records, row)
		}
	}
	if err := tableReader.Err(); err != nil {
		return nil, nil, fmt.Errorf("error reading table records: %w", err)
	}
	return header, records, nil
}

// arrowValueString renders one cell as text. NULL becomes the empty string.
func arrowValueString(col arrow.Array, i int) string {
	if col.IsNull(i) {
		return ""
	}
	switch a := col.(type) {
	case *array.Boolean:
		if a.Value(i) {
			return "1"
		}
		return "0"
	case *array.Int8:
		return strconv.FormatInt(int64(a.Value(i)), 10)
	case *array.Int16:
		return strconv.FormatInt(int64(a.Value(i)), 10)
	case *array.Int32:
		return strconv.FormatInt(int64(a.Value(i)), 10)
	case *array.Int64:
		return strconv.FormatInt(a.Value(i), 10)
	case *array.Uint8:
		return strconv.FormatUint(uint64(a.Value(i)), 10)
	case *array.Uint16:
		return strconv.FormatUint(uint64(a.Value(i)), 10)
	case *array.Uint32:
		return strconv.FormatUint(uint64(a.Value(i)), 10)
	case *array.Uint64:
		return strconv.FormatUint(a.Value(i), 10)
	case *array.Float32:
		return FormatReal(float64(a.Value(i)))
	case *array.Float64:
		return FormatReal(a.Value(i))
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	case *array.Binary:
		return string(a.Value(i))
	default:
		return col.ValueStr(i)
	}
}

// parquetWriter writes rows as a Parquet file with one Arrow column per SQL column.
type parquetWriter struct {
	schema  *arrow.Schema
	columns []ColumnInfo
	builder *array.RecordBuilder
	writer  *pqarrow.FileWriter
	pending int
}

func newParquetWriter(out io.Writer, columns []ColumnInfo) (*parquetWriter, error) {
	fields := make([]arrow.Field, len(columns))
	for i, c := range columns {
		var dt arrow.DataType
		switch c.Type {
		case ColumnTypeInteger:
			dt = arrow.PrimitiveTypes.Int64
		case ColumnTypeReal:
			dt = arrow.PrimitiveTypes.Float64
		case ColumnTypeText, ColumnTypeDatetime:
			dt = arrow.BinaryTypes.String
		default:
			dt = arrow.BinaryTypes.String
		}
		fields[i] = arrow.Field{Name: c.Name, Type: dt, Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	// The arrow writer closes its sink; hide Close so the caller keeps ownership.
	sink := struct{ io.Writer }{out}
	fw, err := pqarrow.NewFileWriter(schema, sink, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet writer: %w", err)
	}

	return &parquetWriter{
		schema:  schema,
		columns: columns,
		builder: array.NewRecordBuilder(memory.DefaultAllocator, schema),
		writer:  fw,
	}, nil
}

// Write appends one row. Values that do not fit the column type are rejected.
func (w *parquetWriter) Write(values []any) error {
	for i, v := range values {
		if err := w.appendValue(i, v); err != nil {
			return fmt.Errorf("column %s: %w", w.columns[i].Name, err)
		}
	}
	w.pending++
	if w.pending >= parquetBatchRows {
		return w.flush()
	}
	return nil
}

func (w *parquetWriter) appendValue(i int, v any) error {
	field := w.builder.Field(i)
	if v == nil {
		field.AppendNull()
		return nil
	}
	switch b := field.(type) {
	case *array.Int64Builder:
		n, ok := ParseInteger(FormatValue(v))
		if !ok {
			return fmt.Errorf("%w: %v is not an integer", ErrInvalidData, v)
		}
		b.Append(n)
	case *array.Float64Builder:
		f, ok := ParseReal(FormatValue(v))
		if !ok {
			return fmt.Errorf("%w: %v is not a number", ErrInvalidData, v)
		}
		b.Append(f)
	case *array.StringBuilder:
		b.Append(FormatValue(v))
	default:
		return errors.New("unexpected arrow builder")
	}
	return nil
}

func (w *parquetWriter) flush() error {
	if w.pending == 0 {
		return nil
	}
	rec := w.builder.NewRecord()
	defer rec.Release()
	w.pending = 0
	if err := w.writer.Write(rec); err != nil {
		return fmt.Errorf("failed to write parquet batch: %w", err)
	}
	return nil
}

// Close writes any buffered rows and the Parquet footer.
func (w *parquetWriter) Close() error {
	defer w.builder.Release()
	if err := w.flush(); err != nil {
		_ = w.writer.Close()
		return err
	}
	if err := w.writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
