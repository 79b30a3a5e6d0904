// Package parsererror defines the typed errors of the file-level failure
// taxonomy. Row-level and group-level problems never surface as errors;
// they are counted in the parse stats instead.
package parsererror

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyFile is returned when the input contains no rows at all.
var ErrEmptyFile = errors.New("file is empty or contains no data rows")

// InvalidFormatError means the header set matched no known broker format
// and the generic fallback could not be applied either.
type InvalidFormatError struct {
	Headers []string
	Msg     string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("unrecognized CSV format: %s. Headers found: [%s]",
		e.Msg, strings.Join(e.Headers, ", "))
}

// MissingColumnError means a required semantic column could not be
// resolved against the header row. This aborts the whole parse.
type MissingColumnError struct {
	Field   string
	Headers []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found. Headers found: [%s]",
		e.Field, strings.Join(e.Headers, ", "))
}

// NoTradesError means parsing finished without producing a single trade.
// It embeds up to the sample cap of row-skip reasons so the user can fix
// the source file.
type NoTradesError struct {
	Reasons []string
}

func (e *NoTradesError) Error() string {
	if len(e.Reasons) == 0 {
		return "no valid trades found in file"
	}
	return fmt.Sprintf("no valid trades found in file. Sample problems: %s",
		strings.Join(e.Reasons, "; "))
}

// DataExtractionError means a specific field could not be extracted from
// an otherwise well-formed file.
type DataExtractionError struct {
	Field string
	Raw   string
	Err   error
}

func (e *DataExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s from %q: %v", e.Field, e.Raw, e.Err)
}

func (e *DataExtractionError) Unwrap() error {
	return e.Err
}
