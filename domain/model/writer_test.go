package model

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

var writerColumns = []ColumnInfo{
	{Name: "gene", Type: ColumnTypeText},
	{Name: "length", Type: ColumnTypeInteger},
	{Name: "gc", Type: ColumnTypeReal},
}

func writeAll(t *testing.T, format OutputFormat, rows [][]any) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := NewRowWriter(&buf, format, writerColumns)
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestNewRowWriter_Delimited(t *testing.T) {
	t.Parallel()

	rows := [][]any{
		{"TP53", int64(25759), 0.48},
		{"has,comma", nil, float64(1)},
	}

	csvOut := string(writeAll(t, OutputFormatCSV, rows))
	wantCSV := "gene,length,gc\nTP53,25759,0.48\n\"has,comma\",,1.0\n"
	if csvOut != wantCSV {
		t.Errorf("csv output = %q, want %q", csvOut, wantCSV)
	}

	tsvOut := string(writeAll(t, OutputFormatTSV, rows))
	wantTSV := "gene\tlength\tgc\nTP53\t25759\t0.48\nhas,comma\t\t1.0\n"
	if tsvOut != wantTSV {
		t.Errorf("tsv output = %q, want %q", tsvOut, wantTSV)
	}
}

func TestNewRowWriter_LTSV(t *testing.T) {
	t.Parallel()

	out := string(writeAll(t, OutputFormatLTSV, [][]any{
		{"multi\nline\tvalue", int64(1), nil},
	}))
	want := "gene:multi line value\tlength:1\tgc:\n"
	if out != want {
		t.Errorf("ltsv output = %q, want %q", out, want)
	}
}

func TestNewRowWriter_XLSX(t *testing.T) {
	t.Parallel()

	data := writeAll(t, OutputFormatXLSX, [][]any{
		{"TP53", int64(25759), 0.48},
		{[]byte("EGFR"), nil, nil},
	})

	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer book.Close()

	rows, err := book.GetRows(book.GetSheetList()[0])
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[1][1] != "25759" || rows[2][0] != "EGFR" {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestNewRowWriter_ParquetRejectsMismatchedValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w, err := NewRowWriter(&buf, OutputFormatParquet, writerColumns)
	if err != nil {
		t.Fatal(err)
	}
	err = w.Write([]any{"TP53", "not a number", nil})
	if !errors.Is(err, ErrInvalidData) {
		t.Errorf("expected ErrInvalidData, got %v", err)
	}
	_ = w.Close()
}

func TestNewRowWriter_Unsupported(t *testing.T) {
	t.Parallel()

	if _, err := NewRowWriter(&bytes.Buffer{}, OutputFormat(42), writerColumns); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{[]byte("bytes"), "bytes"},
		{int64(-7), "-7"},
		{2.5, "2.5"},
		{float64(3), "3.0"},
		{1e21, "1000000000000000000000.0"},
		{math.Inf(1), "+Inf"},
		{true, "1"},
		{false, "0"},
		{ts, "2024-01-15T10:30:00Z"},
		{42, "42"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
