// Package tokenizer turns raw CSV text into a header row plus data rows.
// It is deliberately forgiving: malformed quoting never produces an error,
// parsing just degrades (an unterminated quote consumes to end of input).
package tokenizer

import "strings"

// RawTable is the output of tokenizing one CSV document.
// Headers is the first surviving row; Rows holds the rest.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Tokenize parses RFC4180-style CSV text. Quoted fields may contain
// commas, escaped quotes ("" -> ") and embedded newlines. An unquoted
// newline terminates a row, carriage returns are ignored, and rows whose
// every field is empty are dropped.
func Tokenize(text string) RawTable {
	var rows [][]string
	var row []string
	var field strings.Builder
	inQuotes := false

	flushField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	flushRow := func() {
		flushField()
		if rowHasContent(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		if inQuotes {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					field.WriteByte('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			field.WriteByte(c)
			continue
		}
		switch c {
		case '"':
			inQuotes = true
		case ',':
			flushField()
		case '\n':
			flushRow()
		case '\r':
			// no-op
		default:
			field.WriteByte(c)
		}
	}
	if field.Len() > 0 || len(row) > 0 {
		flushRow()
	}

	if len(rows) == 0 {
		return RawTable{}
	}
	return RawTable{Headers: rows[0], Rows: rows[1:]}
}

// rowHasContent reports whether at least one field is non-empty.
func rowHasContent(row []string) bool {
	for _, f := range row {
		if f != "" {
			return true
		}
	}
	return false
}
