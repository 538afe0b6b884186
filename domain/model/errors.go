// Package model provides the domain model for bioinfodb: tabular data read from
// files, column type inference, and the file formats the loader understands.
package model

import "errors"

var (
	// ErrDuplicateColumnName is returned when a file contains duplicate column names
	ErrDuplicateColumnName = errors.New("duplicate column name")

	// ErrEmptyData is returned when a source has no header row
	ErrEmptyData = errors.New("empty data source")

	// ErrUnsupportedFormat is returned for file types the parser cannot read
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrInvalidData is returned for rows that cannot be mapped onto the header
	ErrInvalidData = errors.New("invalid data format")
)
