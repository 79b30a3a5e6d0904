package models

import "fmt"

// MaxSkipReasons caps how many human-readable row-skip samples a parse
// keeps. Skips beyond the cap still increment SkippedCount.
const MaxSkipReasons = 5

// ParseStats is the diagnostic summary attached to every parse result.
// It is built up while parsing and never mutated afterwards.
type ParseStats struct {
	Format         string
	TotalRows      int
	ParsedCount    int
	SkippedCount   int
	SkippedReasons []string
}

// RecordSkip counts one skipped row and keeps the reason if the sample
// cap has not been reached. rowNum is 1-based over data rows.
func (s *ParseStats) RecordSkip(rowNum int, reason string) {
	s.SkippedCount++
	if len(s.SkippedReasons) < MaxSkipReasons {
		s.SkippedReasons = append(s.SkippedReasons, fmt.Sprintf("Row %d: %s", rowNum, reason))
	}
}

// ParseResult is the complete, immutable outcome of one parse pass.
type ParseResult struct {
	Trades []MatchedTrade
	Stats  ParseStats
}
