package bioinfodb

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bioinfo-lab/bioinfodb/domain/model"
)

var (
	// ErrNilDB is returned when an operation receives a nil *sql.DB
	ErrNilDB = errors.New("bioinfodb: database handle is nil")

	// ErrEmptyTableName is returned when a load targets an empty table name
	ErrEmptyTableName = errors.New("bioinfodb: table name is empty")

	// ErrEmptyStatement is returned when CreateTable receives blank SQL
	ErrEmptyStatement = errors.New("bioinfodb: SQL statement is empty")

	// ErrNoTables indicates no tables found in database
	ErrNoTables = errors.New("bioinfodb: no tables found in database")

	// ErrDuplicateTableName indicates that two input files would load into the same table
	ErrDuplicateTableName = errors.New("bioinfodb: duplicate table name")

	// ErrTableNotFound indicates the named table does not exist
	ErrTableNotFound = errors.New("bioinfodb: table not found")
)

// Errors produced while reading input files. They are shared with the model
// package so errors.Is works whichever layer reports them.
var (
	// ErrDuplicateColumnName is returned when a file contains duplicate column names
	ErrDuplicateColumnName = model.ErrDuplicateColumnName
	// ErrEmptyData indicates that the data source contains no header row
	ErrEmptyData = model.ErrEmptyData
	// ErrUnsupportedFormat indicates an unsupported file format
	ErrUnsupportedFormat = model.ErrUnsupportedFormat
	// ErrInvalidData indicates malformed or invalid data
	ErrInvalidData = model.ErrInvalidData
)

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	FilePath  string
	TableName string
	Details   string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation, filePath string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		FilePath:  filePath,
	}
}

// WithTable adds table context to the error
func (ec *ErrorContext) WithTable(tableName string) *ErrorContext {
	ec.TableName = tableName
	return ec
}

// WithDetails adds details to the error context
func (ec *ErrorContext) WithDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Error creates a formatted error with context
func (ec *ErrorContext) Error(baseErr error) error {
	parts := []string{fmt.Sprintf("bioinfodb: %s failed", ec.Operation)}

	if ec.FilePath != "" {
		parts = append(parts, "file: "+ec.FilePath)
	}
	if ec.TableName != "" {
		parts = append(parts, "table: "+ec.TableName)
	}
	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}

	msg := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%s: %w", msg, baseErr)
	}
	return errors.New(msg)
}
