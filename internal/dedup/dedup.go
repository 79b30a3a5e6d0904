// Package dedup flags parsed trades that already exist in the journal,
// so a re-uploaded export cannot double-count P&L.
package dedup

import (
	"strings"

	"github.com/shopspring/decimal"

	"tradevault/trade-import/internal/models"
)

// pnlTolerance absorbs cent-level rounding differences between the
// journal and a freshly parsed file.
var pnlTolerance = decimal.RequireFromString("0.01")

// MarkDuplicates flags every trade that matches an existing journal
// entry on date, symbol (case-insensitive) and P&L within a cent.
// Duplicates are deselected and stay deselected; they can only be
// removed from the preview, never re-imported. Returns the flag count.
func MarkDuplicates(trades []models.MatchedTrade, existing []models.TradeRecord) int {
	count := 0
	for i := range trades {
		if IsDuplicate(&trades[i], existing) {
			trades[i].IsDuplicate = true
			trades[i].Selected = false
			count++
		}
	}
	return count
}

// IsDuplicate reports whether a candidate trade matches any existing
// journal entry.
func IsDuplicate(candidate *models.MatchedTrade, existing []models.TradeRecord) bool {
	for _, entry := range existing {
		if entry.TradeDate != candidate.Date {
			continue
		}
		if !strings.EqualFold(entry.Symbol, candidate.Symbol) {
			continue
		}
		if entry.PnL.Sub(candidate.PnL).Abs().LessThan(pnlTolerance) {
			return true
		}
	}
	return false
}
