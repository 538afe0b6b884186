package model

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// parseXLSX reads the first sheet of a workbook. Leading empty rows are
// skipped, the first non-empty row is the header, and cells beyond the
// header width are ignored.
func parseXLSX(reader io.Reader) (Header, []Record, error) {
	xlsxFile, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer func() {
		_ = xlsxFile.Close() // only removes temp files
	}()

	sheetNames := xlsxFile.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, nil, fmt.Errorf("%w: no sheets found in XLSX file", ErrEmptyData)
	}

	sheetName := sheetNames[0]
	rows, err := xlsxFile.Rows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open rows iterator for sheet %s: %w", sheetName, err)
	}
	defer rows.Close()

	var (
		header  Header
		records []Record
	)
	for rows.Next() {
		row, err := rows.Columns()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read row in sheet %s: %w", sheetName, err)
		}
		if header == nil {
			if len(row) == 0 {
				continue
			}
			header = NewHeader(row)
			continue
		}
		record := make(Record, len(header))
		copy(record, row)
		records = append(records, record)
	}
	if err := rows.Error(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate sheet %s: %w", sheetName, err)
	}

	if header == nil {
		return nil, nil, fmt.Errorf("%w: sheet %s is empty", ErrEmptyData, sheetName)
	}
	return header, records, nil
}

// xlsxWriter writes rows into a single-sheet workbook through excelize's stream writer.
type xlsxWriter struct {
	out    io.Writer
	file   *excelize.File
	stream *excelize.StreamWriter
	row    int
}

const xlsxSheetName = "Sheet1"

func newXLSXWriter(out io.Writer, columns []ColumnInfo) (*xlsxWriter, error) {
	file := excelize.NewFile()
	stream, err := file.NewStreamWriter(xlsxSheetName)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to create XLSX stream writer: %w", err)
	}

	w := &xlsxWriter{out: out, file: file, stream: stream}
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c.Name
	}
	if err := w.setRow(header); err != nil {
		_ = file.Close()
		return nil, err
	}
	return w, nil
}

func (w *xlsxWriter) setRow(values []any) error {
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	return w.stream.SetRow(cell, values)
}

// Write appends one row. NULL values become empty cells.
func (w *xlsxWriter) Write(values []any) error {
	row := make([]any, len(values))
	for i, v := range values {
		switch tv := v.(type) {
		case nil:
			row[i] = nil
		case []byte:
			row[i] = string(tv)
		default:
			row[i] = tv
		}
	}
	return w.setRow(row)
}

// Close flushes the sheet and writes the workbook to the output.
func (w *xlsxWriter) Close() error {
	defer func() {
		_ = w.file.Close()
	}()
	if err := w.stream.Flush(); err != nil {
		return fmt.Errorf("failed to flush XLSX rows: %w", err)
	}
	if err := w.file.Write(w.out); err != nil {
		return fmt.Errorf("failed to write XLSX workbook: %w", err)
	}
	return nil
}
