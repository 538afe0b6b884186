package model

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// File format delimiters
const (
	csvDelimiter = ','
	tsvDelimiter = '\t'
)

const utf8BOM = "\ufeff"

// Parser reads one file format, optionally compressed, into a Table.
type Parser struct {
	fileType    FileType
	compression CompressionType
	nulls       NullValues
}

// NewParser creates a parser for the given format and compression.
// A nil nulls set falls back to DefaultNullValues.
func NewParser(fileType FileType, compression CompressionType, nulls NullValues) *Parser {
	if nulls == nil {
		nulls = DefaultNullValues
	}
	return &Parser{
		fileType:    fileType,
		compression: compression,
		nulls:       nulls,
	}
}

// Parse decompresses reader as needed and parses it into a Table named tableName.
func (p *Parser) Parse(reader io.Reader, tableName string) (*Table, error) {
	decompressed, cleanup, err := p.compression.NewReader(reader)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cleanup() // decompressor close errors carry no data
	}()

	var (
		header  Header
		records []Record
	)
	switch p.fileType {
	case FileTypeCSV:
		header, records, err = parseDelimited(decompressed, csvDelimiter)
	case FileTypeTSV:
		header, records, err = parseDelimited(decompressed, tsvDelimiter)
	case FileTypeLTSV:
		header, records, err = parseLTSV(decompressed)
	case FileTypeXLSX:
		header, records, err = parseXLSX(decompressed)
	case FileTypeParquet:
		header, records, err = parseParquet(decompressed)
	case FileTypeUnsupported:
		return nil, ErrUnsupportedFormat
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	if len(header) == 0 {
		return nil, ErrEmptyData
	}
	header = header.NameUnnamed().Deduplicate()
	if err := header.Validate(); err != nil {
		return nil, err
	}
	return NewTable(tableName, header, records, p.nulls), nil
}

// parseDelimited parses CSV or TSV content. The first row is the header.
// Short rows are padded with empty fields; long rows are rejected.
func parseDelimited(reader io.Reader, delimiter rune) (Header, []Record, error) {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.FieldsPerRecord = -1

	first, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrEmptyData
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	first[0] = strings.TrimPrefix(first[0], utf8BOM)
	header := NewHeader(first)

	var records []Record
	for {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
		}
		record, err := fitRecord(header, row)
		if err != nil {
			line, _ := csvReader.FieldPos(0)
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, record)
	}
	return header, records, nil
}

// fitRecord pads row to the header width, or rejects it when it is wider.
func fitRecord(header Header, row []string) (Record, error) {
	switch {
	case len(row) == len(header):
		return NewRecord(row), nil
	case len(row) < len(header):
		padded := make(Record, len(header))
		copy(padded, row)
		return padded, nil
	default:
		return nil, fmt.Errorf("%w: expected %d fields, saw %d", ErrInvalidData, len(header), len(row))
	}
}

// parseLTSV parses labeled tab-separated values.
// Columns appear in the order their labels are first seen.
func parseLTSV(reader io.Reader) (Header, []Record, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		header  Header
		index   = make(map[string]int)
		rowMaps []map[string]string
	)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		row := make(map[string]string)
		for _, pair := range strings.Split(line, "\t") {
			label, value, ok := strings.Cut(pair, ":")
			if !ok {
				continue
			}
			label = strings.TrimSpace(label)
			if _, seen := index[label]; !seen {
				index[label] = len(header)
				header = append(header, label)
			}
			row[label] = value
		}
		if len(row) > 0 {
			rowMaps = append(rowMaps, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	if len(header) == 0 {
		return nil, nil, ErrEmptyData
	}

	records := make([]Record, 0, len(rowMaps))
	for _, row := range rowMaps {
		record := make(Record, len(header))
		for label, value := range row {
			record[index[label]] = value
		}
		records = append(records, record)
	}
	return header, records, nil
}
