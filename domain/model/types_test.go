package model

import (
	"errors"
	"testing"
)

func TestHeader_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  Header
		wantErr bool
	}{
		{name: "unique", header: NewHeader([]string{"id", "name", "label"}), wantErr: false},
		{name: "duplicate", header: NewHeader([]string{"id", "name", "id"}), wantErr: true},
		{name: "duplicate ignoring case", header: NewHeader([]string{"Gene", "gene"}), wantErr: true},
		{name: "surrounding spaces make a different name", header: NewHeader([]string{"id", " id "}), wantErr: false},
		{name: "empty", header: NewHeader(nil), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.header.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrDuplicateColumnName) {
				t.Errorf("expected ErrDuplicateColumnName, got %v", err)
			}
		})
	}
}

func TestHeader_NameUnnamed(t *testing.T) {
	t.Parallel()

	header := NewHeader([]string{"", "gene", "  "})
	got := header.NameUnnamed()
	want := NewHeader([]string{"Unnamed: 0", "gene", "Unnamed: 2"})
	if !got.Equal(want) {
		t.Errorf("NameUnnamed() = %v, want %v", got, want)
	}
	if header[0] != "" {
		t.Error("NameUnnamed modified the receiver")
	}
}

func TestHeader_Deduplicate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header Header
		want   Header
	}{
		{name: "unique", header: Header{"a", "b"}, want: Header{"a", "b"}},
		{name: "repeated", header: Header{"a", "a", "a"}, want: Header{"a", "a.1", "a.2"}},
		{name: "case-insensitive", header: Header{"Gene", "gene"}, want: Header{"Gene", "gene.1"}},
		{name: "suffix already taken", header: Header{"a", "a", "a.1"}, want: Header{"a", "a.1", "a.1.1"}},
		{name: "generated unnamed column", header: NewHeader([]string{"", "Unnamed: 0"}).NameUnnamed(), want: Header{"Unnamed: 0", "Unnamed: 0.1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.header.Deduplicate()
			if !got.Equal(tt.want) {
				t.Errorf("Deduplicate() = %v, want %v", got, tt.want)
			}
			if err := got.Validate(); err != nil {
				t.Errorf("Validate() after Deduplicate: %v", err)
			}
		})
	}
}

func TestParseBoolean(t *testing.T) {
	t.Parallel()

	for value, want := range map[string]int64{"true": 1, "True": 1, "TRUE": 1, " false ": 0, "False": 0, "FALSE": 0} {
		got, ok := ParseBoolean(value)
		if !ok || got != want {
			t.Errorf("ParseBoolean(%q) = %d, %v; want %d", value, got, ok, want)
		}
	}
	for _, value := range []string{"yes", "1", "tRuE", ""} {
		if _, ok := ParseBoolean(value); ok {
			t.Errorf("ParseBoolean(%q) should fail", value)
		}
	}
}

func TestColumnType_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ct   ColumnType
		want string
	}{
		{ColumnTypeText, "TEXT"},
		{ColumnTypeInteger, "INTEGER"},
		{ColumnTypeReal, "REAL"},
		{ColumnTypeDatetime, "TEXT"},
		{ColumnType(99), "TEXT"},
	}
	for _, tt := range tests {
		if got := tt.ct.String(); got != tt.want {
			t.Errorf("ColumnType(%d).String() = %s, want %s", tt.ct, got, tt.want)
		}
	}
}

func TestParseColumnType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		declared string
		want     ColumnType
	}{
		{"INTEGER", ColumnTypeInteger},
		{"bigint", ColumnTypeInteger},
		{"REAL", ColumnTypeReal},
		{"double precision", ColumnTypeReal},
		{"FLOAT", ColumnTypeReal},
		{"NUMERIC(10,2)", ColumnTypeReal},
		{"TEXT", ColumnTypeText},
		{"VARCHAR(20)", ColumnTypeText},
		{"", ColumnTypeText},
	}
	for _, tt := range tests {
		if got := ParseColumnType(tt.declared); got != tt.want {
			t.Errorf("ParseColumnType(%q) = %v, want %v", tt.declared, got, tt.want)
		}
	}
}

func TestNullValues_IsNull(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"NA", true},
		{" NaN ", true},
		{"NULL", true},
		{"n/a", true},
		{"#N/A", true},
		{"0", false},
		{"na ", false},
		{"None of the above", false},
	}
	for _, tt := range tests {
		if got := DefaultNullValues.IsNull(tt.value); got != tt.want {
			t.Errorf("IsNull(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}

	var empty NullValues
	if !empty.IsNull("") || empty.IsNull("NA") {
		t.Error("nil NullValues should only treat the empty string as missing")
	}
}

func TestRecord_Equal(t *testing.T) {
	t.Parallel()

	r := NewRecord([]string{"a", "b"})
	if !r.Equal(NewRecord([]string{"a", "b"})) {
		t.Error("expected equal records")
	}
	if r.Equal(NewRecord([]string{"a"})) {
		t.Error("expected records of different length to differ")
	}
	if r.Equal(NewRecord([]string{"a", "c"})) {
		t.Error("expected records with different values to differ")
	}
}
