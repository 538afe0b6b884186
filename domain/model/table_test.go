package model

import (
	"testing"
)

func TestNewTable(t *testing.T) {
	t.Parallel()

	header := NewHeader([]string{"sample", "reads"})
	records := []Record{
		NewRecord([]string{"S1", "1000"}),
		NewRecord([]string{"S2", "NA"}),
	}

	table := NewTable("runs", header, records, nil)

	if table.Name() != "runs" {
		t.Errorf("expected name 'runs', got %s", table.Name())
	}
	if !table.Header().Equal(header) {
		t.Errorf("expected header %v, got %v", header, table.Header())
	}
	if len(table.Records()) != 2 {
		t.Errorf("expected 2 records, got %d", len(table.Records()))
	}
	if got := table.ColumnInfo()[1].Type; got != ColumnTypeInteger {
		t.Errorf("expected reads to be INTEGER, got %v", got)
	}
	if !table.NullValues().IsNull("NA") {
		t.Error("expected default null values when nil is passed")
	}
}

func TestTable_Equal(t *testing.T) {
	t.Parallel()

	header := NewHeader([]string{"col1", "col2"})
	records := []Record{
		NewRecord([]string{"val1", "val2"}),
		NewRecord([]string{"val3", "val4"}),
	}

	table1 := NewTable("test", header, records, nil)
	table2 := NewTable("test", header, records, nil)

	if !table1.Equal(table2) {
		t.Error("expected tables to be equal")
	}
	if table1.Equal(table1.Rename("different")) {
		t.Error("expected tables with different names to be not equal")
	}
	if table1.Equal(NewTable("test", NewHeader([]string{"col1", "col3"}), records, nil)) {
		t.Error("expected tables with different headers to be not equal")
	}
	if table1.Equal(NewTable("test", header, records[:1], nil)) {
		t.Error("expected tables with different record count to be not equal")
	}

	differentValueRecords := []Record{
		NewRecord([]string{"val1", "val2"}),
		NewRecord([]string{"val3", "different"}),
	}
	if table1.Equal(NewTable("test", header, differentValueRecords, nil)) {
		t.Error("expected tables with different record values to be not equal")
	}
}

func TestTable_Rename(t *testing.T) {
	t.Parallel()

	table := NewTable("old", NewHeader([]string{"a"}), nil, nil)
	renamed := table.Rename("new")

	if renamed.Name() != "new" {
		t.Errorf("expected renamed table to be 'new', got %s", renamed.Name())
	}
	if table.Name() != "old" {
		t.Errorf("expected original table to keep its name, got %s", table.Name())
	}
}

func TestTable_Value(t *testing.T) {
	t.Parallel()

	header := NewHeader([]string{"gene", "length", "gc", "date"})
	records := []Record{
		NewRecord([]string{"TP53", "25759", "0.48", "2024-01-15"}),
		NewRecord([]string{"NA", "", "nan", ""}),
	}
	table := NewTable("genes", header, records, nil)

	tests := []struct {
		name   string
		record int
		column int
		want   any
	}{
		{name: "text", record: 0, column: 0, want: "TP53"},
		{name: "integer", record: 0, column: 1, want: int64(25759)},
		{name: "real", record: 0, column: 2, want: 0.48},
		{name: "datetime stays text", record: 0, column: 3, want: "2024-01-15"},
		{name: "NA marker", record: 1, column: 0, want: nil},
		{name: "empty integer", record: 1, column: 1, want: nil},
		{name: "nan marker", record: 1, column: 2, want: nil},
		{name: "out of range column", record: 0, column: 9, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := table.Value(table.Records()[tt.record], tt.column)
			if got != tt.want {
				t.Errorf("Value() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTableNameFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"genes.csv", "genes"},
		{"/data/run1/counts.tsv", "counts"},
		{"variants.ltsv.xz", "variants"},
		{"samples.CSV.GZ", "samples"},
		{"matrix.parquet.zst", "matrix"},
		{"archive.tar.bz2", "archive"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := TableNameFromPath(tt.path); got != tt.want {
				t.Errorf("TableNameFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestQuoteIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"genes", `"genes"`},
		{"first name", `"first name"`},
		{`say "hi"`, `"say ""hi"""`},
		{"", `""`},
	}
	for _, tt := range tests {
		if got := QuoteIdentifier(tt.in); got != tt.want {
			t.Errorf("QuoteIdentifier(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
