// Package dateutils provides date parsing for broker export files.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutUS       = "1/2/2006" // MM/DD/YYYY, single digits accepted
	DateLayoutDayFirst = "2/1/2006" // DD/MM/YYYY, single digits accepted
)

// fallbackFormats is tried after the slash convention and ISO layouts.
// These cover the free-form dates that show up in broker exports.
var fallbackFormats = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	"2-Jan-2006",
	"02 Jan 2006",
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// ParseDate parses a date string, trying the slash-date layout for the
// caller-supplied convention first, then ISO, then free-form fallbacks.
//
// Slash dates like "03/04/2026" are inherently ambiguous; dayFirst makes
// the convention an explicit caller decision instead of a silent guess.
// US brokers export month-first, so callers dealing with them pass false.
func ParseDate(dateStr string, dayFirst bool) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	slashLayout := DateLayoutUS
	if dayFirst {
		slashLayout = DateLayoutDayFirst
	}

	formats := append([]string{slashLayout, DateLayoutISO}, fallbackFormats...)
	for _, format := range formats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutISO)
}

// CleanDateString trims and collapses whitespace in a date string.
func CleanDateString(dateStr string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}
