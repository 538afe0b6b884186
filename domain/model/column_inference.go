package model

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Common datetime patterns to detect
var datetimePatterns = []struct {
	pattern *regexp.Regexp
	formats []string // Multiple formats for the same pattern
}{
	// ISO8601 formats with timezone
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`),
		[]string{time.RFC3339, time.RFC3339Nano},
	},
	// ISO8601 formats without timezone
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"2006-01-02T15:04:05", "2006-01-02T15:04:05.999999999"},
	},
	// ISO8601 date and time with space
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"2006-01-02 15:04:05", "2006-01-02 15:04:05.999999999"},
	},
	// ISO8601 date only
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		[]string{"2006-01-02"},
	},
	// US formats
	{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4} \d{1,2}:\d{2}:\d{2}( (AM|PM))?$`),
		[]string{"1/2/2006 15:04:05", "1/2/2006 3:04:05 PM", "01/02/2006 15:04:05"},
	},
	{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),
		[]string{"1/2/2006", "01/02/2006"},
	},
	// European formats
	{
		regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4} \d{1,2}:\d{2}:\d{2}$`),
		[]string{"2.1.2006 15:04:05", "02.01.2006 15:04:05"},
	},
	{
		regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`),
		[]string{"2.1.2006", "02.01.2006"},
	},
	// Time only
	{
		regexp.MustCompile(`^\d{1,2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"15:04:05", "15:04:05.999999999", "3:04:05"},
	},
	{
		regexp.MustCompile(`^\d{1,2}:\d{2}$`),
		[]string{"15:04", "3:04"},
	},
}

// isDatetime checks if a string value represents a datetime
func isDatetime(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}

	for _, dp := range datetimePatterns {
		if dp.pattern.MatchString(value) {
			for _, format := range dp.formats {
				if _, err := time.Parse(format, value); err == nil {
					return true
				}
			}
		}
	}

	return false
}

// ParseInteger parses a decimal integer field.
func ParseInteger(value string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	return v, err == nil
}

// ParseReal parses a decimal floating point field.
// Hexadecimal floats and digit separators are rejected; "inf" and "nan"
// spellings are accepted the way strconv reads them.
func ParseReal(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if strings.ContainsAny(value, "xX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(value, 64)
	return v, err == nil
}

// ParseBoolean parses the spellings "true", "True", "TRUE" and their false
// counterparts as 1 and 0.
func ParseBoolean(value string) (int64, bool) {
	switch strings.TrimSpace(value) {
	case "true", "True", "TRUE":
		return 1, true
	case "false", "False", "FALSE":
		return 0, true
	default:
		return 0, false
	}
}

// InferColumnType infers the SQL column type from a slice of string values.
// Values matching nulls are skipped; a column without any remaining value is TEXT.
// A column holding only booleans is INTEGER.
func InferColumnType(values []string, nulls NullValues) ColumnType {
	hasDatetime := false
	hasReal := false
	hasInteger := false
	hasBoolean := false

	for _, value := range values {
		if nulls.IsNull(value) {
			continue
		}
		value = strings.TrimSpace(value)

		// Dates like 2023-01-02 must not be read as arithmetic.
		if isDatetime(value) {
			hasDatetime = true
			continue
		}
		if _, ok := ParseInteger(value); ok {
			hasInteger = true
			continue
		}
		if _, ok := ParseReal(value); ok {
			hasReal = true
			continue
		}
		if _, ok := ParseBoolean(value); ok {
			hasBoolean = true
			continue
		}
		// any text value makes the whole column text
		return ColumnTypeText
	}

	switch {
	case hasBoolean && (hasDatetime || hasReal || hasInteger):
		return ColumnTypeText
	case hasBoolean:
		return ColumnTypeInteger
	case hasDatetime && (hasReal || hasInteger):
		return ColumnTypeText
	case hasDatetime:
		return ColumnTypeDatetime
	case hasReal:
		return ColumnTypeReal
	case hasInteger:
		return ColumnTypeInteger
	default:
		return ColumnTypeText
	}
}

// InferColumnsInfo infers column information from header and data records
func InferColumnsInfo(header Header, records []Record, nulls NullValues) []ColumnInfo {
	columnCount := len(header)
	if columnCount == 0 {
		return nil
	}

	columns := make([]ColumnInfo, columnCount)
	for i, name := range header {
		columns[i] = ColumnInfo{Name: name, Type: ColumnTypeText}
	}
	if len(records) == 0 {
		return columns
	}

	values := make([]string, 0, len(records))
	for i := range columnCount {
		values = values[:0]
		for _, record := range records {
			if i < len(record) {
				values = append(values, record[i])
			}
		}
		columns[i].Type = InferColumnType(values, nulls)
	}

	return columns
}
