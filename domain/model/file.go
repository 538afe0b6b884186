package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileType represents the base format of a file, independent of compression.
type FileType int

const (
	// FileTypeCSV represents CSV file type
	FileTypeCSV FileType = iota
	// FileTypeTSV represents TSV file type
	FileTypeTSV
	// FileTypeLTSV represents LTSV file type
	FileTypeLTSV
	// FileTypeXLSX represents Excel XLSX file type
	FileTypeXLSX
	// FileTypeParquet represents Parquet file type
	FileTypeParquet
	// FileTypeUnsupported represents unsupported file type
	FileTypeUnsupported
)

// File extensions
const (
	// ExtCSV is the CSV file extension
	ExtCSV = ".csv"
	// ExtTSV is the TSV file extension
	ExtTSV = ".tsv"
	// ExtLTSV is the LTSV file extension
	ExtLTSV = ".ltsv"
	// ExtXLSX is the Excel XLSX file extension
	ExtXLSX = ".xlsx"
	// ExtParquet is the Parquet file extension
	ExtParquet = ".parquet"
)

// String returns the format name
func (ft FileType) String() string {
	switch ft {
	case FileTypeCSV:
		return "CSV"
	case FileTypeTSV:
		return "TSV"
	case FileTypeLTSV:
		return "LTSV"
	case FileTypeXLSX:
		return "XLSX"
	case FileTypeParquet:
		return "Parquet"
	case FileTypeUnsupported:
		return "unsupported"
	default:
		return "unsupported"
	}
}

// Extension returns the file extension for the FileType
func (ft FileType) Extension() string {
	switch ft {
	case FileTypeCSV:
		return ExtCSV
	case FileTypeTSV:
		return ExtTSV
	case FileTypeLTSV:
		return ExtLTSV
	case FileTypeXLSX:
		return ExtXLSX
	case FileTypeParquet:
		return ExtParquet
	case FileTypeUnsupported:
		return ""
	default:
		return ""
	}
}

// File represents a file that can be converted to Table
type File struct {
	path        string
	fileType    FileType
	compression CompressionType
}

// NewFile creates a new File, detecting format and compression from the extension.
func NewFile(path string) *File {
	return &File{
		path:        path,
		fileType:    DetectFileType(path),
		compression: DetectCompressionType(path),
	}
}

// NewFileAs creates a File read as fileType whatever its extension says.
// Compression is still detected from the extension.
func NewFileAs(path string, fileType FileType) *File {
	return &File{
		path:        path,
		fileType:    fileType,
		compression: DetectCompressionType(path),
	}
}

// Path returns file path
func (f *File) Path() string {
	return f.path
}

// Type returns the base file type
func (f *File) Type() FileType {
	return f.fileType
}

// Compression returns the compression applied to the file
func (f *File) Compression() CompressionType {
	return f.compression
}

// IsCompressed returns true if file is compressed
func (f *File) IsCompressed() bool {
	return f.compression != CompressionNone
}

// IsSupportedFile checks if the file has a supported extension
func IsSupportedFile(fileName string) bool {
	return DetectFileType(fileName) != FileTypeUnsupported
}

// DetectFileType detects the base file type from the extension, ignoring compression.
func DetectFileType(path string) FileType {
	basePath := strings.ToLower(path)
	for _, ext := range compressionExtensions {
		if strings.HasSuffix(basePath, ext) {
			basePath = strings.TrimSuffix(basePath, ext)
			break
		}
	}

	switch filepath.Ext(basePath) {
	case ExtCSV:
		return FileTypeCSV
	case ExtTSV:
		return FileTypeTSV
	case ExtLTSV:
		return FileTypeLTSV
	case ExtXLSX:
		return FileTypeXLSX
	case ExtParquet:
		return FileTypeParquet
	default:
		return FileTypeUnsupported
	}
}

// ToTable reads the whole file and returns it as a Table named tableName.
func (f *File) ToTable(tableName string, nulls NullValues) (*Table, error) {
	if f.fileType == FileTypeUnsupported {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f.path)
	}

	file, err := os.Open(f.path) //nolint:gosec // loading a caller-chosen path is the point
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return NewParser(f.fileType, f.compression, nulls).Parse(file, tableName)
}
