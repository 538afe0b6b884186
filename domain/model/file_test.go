package model

import (
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		path        string
		expected    FileType
		compression CompressionType
	}{
		{name: "CSV file", path: "test.csv", expected: FileTypeCSV, compression: CompressionNone},
		{name: "TSV file", path: "test.tsv", expected: FileTypeTSV, compression: CompressionNone},
		{name: "LTSV file", path: "test.ltsv", expected: FileTypeLTSV, compression: CompressionNone},
		{name: "XLSX file", path: "plate.xlsx", expected: FileTypeXLSX, compression: CompressionNone},
		{name: "Parquet file", path: "reads.parquet", expected: FileTypeParquet, compression: CompressionNone},
		{name: "Compressed CSV file", path: "test.csv.gz", expected: FileTypeCSV, compression: CompressionGZ},
		{name: "Compressed TSV file", path: "test.tsv.bz2", expected: FileTypeTSV, compression: CompressionBZ2},
		{name: "Compressed LTSV file", path: "test.ltsv.xz", expected: FileTypeLTSV, compression: CompressionXZ},
		{name: "Zstd compressed CSV file", path: "test.csv.zst", expected: FileTypeCSV, compression: CompressionZSTD},
		{name: "Upper case extension", path: "TEST.CSV", expected: FileTypeCSV, compression: CompressionNone},
		{name: "Unsupported file", path: "test.txt", expected: FileTypeUnsupported, compression: CompressionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file := NewFile(tt.path)
			if file.Type() != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, file.Type())
			}
			if file.Compression() != tt.compression {
				t.Errorf("expected compression %v, got %v", tt.compression, file.Compression())
			}
			if file.IsCompressed() != (tt.compression != CompressionNone) {
				t.Errorf("IsCompressed() = %v", file.IsCompressed())
			}
			if file.Path() != tt.path {
				t.Errorf("expected %s, got %s", tt.path, file.Path())
			}
		})
	}
}

func TestNewFileAs(t *testing.T) {
	t.Parallel()

	file := NewFileAs("export.txt.gz", FileTypeCSV)
	if file.Type() != FileTypeCSV {
		t.Errorf("expected CSV, got %v", file.Type())
	}
	if file.Compression() != CompressionGZ {
		t.Errorf("expected gzip, got %v", file.Compression())
	}
}

func TestIsSupportedFile(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"a.csv", "a.tsv.gz", "a.ltsv", "a.xlsx", "a.parquet.zst"} {
		if !IsSupportedFile(name) {
			t.Errorf("expected %s to be supported", name)
		}
	}
	for _, name := range []string{"a.txt", "a.gz", "a.json", "csv"} {
		if IsSupportedFile(name) {
			t.Errorf("expected %s to be unsupported", name)
		}
	}
}

func TestFile_ToTable_CSV(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	csvFile := filepath.Join(tmpDir, "samples.csv")

	csvContent := `sample,tissue,reads
S1,liver,1000
S2,lung,2500
S3,brain,`

	if err := os.WriteFile(csvFile, []byte(csvContent), 0o600); err != nil {
		t.Fatal(err)
	}

	table, err := NewFile(csvFile).ToTable("samples", nil)
	if err != nil {
		t.Fatal(err)
	}

	expectedHeader := Header{"sample", "tissue", "reads"}
	if !table.Header().Equal(expectedHeader) {
		t.Errorf("expected header %v, got %v", expectedHeader, table.Header())
	}
	if len(table.Records()) != 3 {
		t.Errorf("expected 3 records, got %d", len(table.Records()))
	}
	expectedFirstRecord := Record{"S1", "liver", "1000"}
	if !table.Records()[0].Equal(expectedFirstRecord) {
		t.Errorf("expected first record %v, got %v", expectedFirstRecord, table.Records()[0])
	}
	if table.ColumnInfo()[2].Type != ColumnTypeInteger {
		t.Errorf("expected reads to be INTEGER, got %v", table.ColumnInfo()[2].Type)
	}
}

func TestFile_ToTable_CompressedCSV(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	csvFile := filepath.Join(tmpDir, "samples.csv.gz")

	f, err := os.Create(csvFile)
	if err != nil {
		t.Fatal(err)
	}
	gw := gzip.NewWriter(f)
	if _, err := gw.Write([]byte("sample,tissue\nS1,liver\nS2,lung\n")); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	table, err := NewFile(csvFile).ToTable("samples", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Records()) != 2 {
		t.Errorf("expected 2 records, got %d", len(table.Records()))
	}
}

func TestFile_ToTable_Errors(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	txtFile := filepath.Join(tmpDir, "test.txt")
	if err := os.WriteFile(txtFile, []byte("some content"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFile(txtFile).ToTable("test", nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}

	emptyFile := filepath.Join(tmpDir, "empty.csv")
	if err := os.WriteFile(emptyFile, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFile(emptyFile).ToTable("empty", nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}

	if _, err := NewFile(filepath.Join(tmpDir, "absent.csv")).ToTable("absent", nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}
