package robinhoodparser

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tradevault/trade-import/internal/dateutils"
	"tradevault/trade-import/internal/models"
)

// optionDescRe extracts ticker, expiry, call/put and strike from a
// Robinhood option description like "AAPL 1/17/2026 Call $150.00".
var optionDescRe = regexp.MustCompile(`(?i)^([A-Z][A-Z.]*)\s+\d{1,2}/\d{1,2}/\d{2,4}\s+(call|put)\s+\$?([0-9]+(?:\.[0-9]+)?)`)

// optionContractMultiplier converts option dollar amounts to per-share
// prices: one contract covers 100 shares.
var optionContractMultiplier = decimal.NewFromInt(100)

// legGroup collects the legs of one position. Stock legs are keyed by
// instrument, option legs by normalized description.
type legGroup struct {
	display     string // representative description (options) or instrument
	instrument  string
	isOption    bool
	buys        []models.BrokerTransaction
	sells       []models.BrokerTransaction
	expirations []models.BrokerTransaction
}

// buildGroups partitions legs into positions. Iteration order over the
// result is made deterministic by matchGroups.
func buildGroups(legs []models.BrokerTransaction) map[string]*legGroup {
	groups := make(map[string]*legGroup)
	for _, leg := range legs {
		var key string
		if leg.IsOption() {
			key = NormalizeDescription(leg.Description)
		} else {
			key = strings.ToLower(leg.Instrument)
		}
		if key == "" {
			continue
		}

		group, ok := groups[key]
		if !ok {
			group = &legGroup{
				display:    strings.TrimPrefix(leg.Description, expirationPrefix),
				instrument: leg.Instrument,
				isOption:   leg.IsOption(),
			}
			groups[key] = group
		}

		switch leg.Code {
		case models.CodeBTO, models.CodeBuy:
			group.buys = append(group.buys, leg)
		case models.CodeSTC, models.CodeSell:
			group.sells = append(group.sells, leg)
		case models.CodeOEXP:
			group.expirations = append(group.expirations, leg)
		}
	}
	return groups
}

// matchGroups runs cost allocation over every group. Groups without an
// opening leg, or without any close or expiration, are silently omitted:
// they represent still-open or unmatchable positions, not errors.
func matchGroups(groups map[string]*legGroup) []models.MatchedTrade {
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var trades []models.MatchedTrade
	for _, key := range keys {
		trades = append(trades, matchGroup(groups[key])...)
	}
	return trades
}

// matchGroup allocates the group's cost basis across its closes and
// expirations. A single group may yield up to two trades: a (partial)
// close and a (partial) expiration.
//
// Allocation is a simple pro-rata ratio over all buy legs regardless of
// fill order or price. This is intentionally not FIFO/LIFO lot
// accounting; it matches how the journal reports partial fills.
func matchGroup(g *legGroup) []models.MatchedTrade {
	if len(g.buys) == 0 {
		return nil
	}
	if len(g.sells) == 0 && len(g.expirations) == 0 {
		return nil
	}

	totalBuyCost := decimal.Zero
	totalBuyQty := 0
	for _, buy := range g.buys {
		totalBuyCost = totalBuyCost.Add(buy.Amount.Abs())
		totalBuyQty += buy.Quantity
	}
	if totalBuyQty == 0 {
		return nil
	}
	buyQtyDec := decimal.NewFromInt(int64(totalBuyQty))

	totalSellProceeds := decimal.Zero
	totalSellQty := 0
	for _, sell := range g.sells {
		totalSellProceeds = totalSellProceeds.Add(sell.Amount)
		totalSellQty += sell.Quantity
	}

	totalExpiredQty := 0
	for _, exp := range g.expirations {
		totalExpiredQty += exp.Quantity
	}

	symbol, assetType := g.renderSymbol()
	openDate := dateutils.ToISODate(earliestDate(g.buys))

	var trades []models.MatchedTrade

	if totalSellQty > 0 {
		soldRatio := clampRatio(decimal.NewFromInt(int64(totalSellQty)).Div(buyQtyDec))
		costForSold := totalBuyCost.Mul(soldRatio)
		pnl := totalSellProceeds.Sub(costForSold).Round(2)

		closeDate := dateutils.ToISODate(latestDate(append(append([]models.BrokerTransaction{}, g.sells...), g.expirations...)))
		avgBuy := g.perUnitPrice(totalBuyCost, totalBuyQty)
		avgSell := g.perUnitPrice(totalSellProceeds, totalSellQty)

		trades = append(trades, models.MatchedTrade{
			Date:      closeDate,
			Symbol:    symbol,
			Side:      "sell",
			Quantity:  totalSellQty,
			Price:     avgSell,
			AssetType: assetType,
			PnL:       pnl,
			OpenDate:  openDate,
			CloseDate: closeDate,
			Notes: fmt.Sprintf("Bought %d @ $%s avg, sold %d @ $%s avg",
				totalBuyQty, avgBuy.StringFixed(2), totalSellQty, avgSell.StringFixed(2)),
			Selected: true,
		})
	}

	if totalExpiredQty > 0 {
		expiredRatio := clampRatio(decimal.NewFromInt(int64(totalExpiredQty)).Div(buyQtyDec))
		// Expiration is a total loss of the allocated premium.
		pnl := totalBuyCost.Mul(expiredRatio).Neg().Round(2)

		expDate := dateutils.ToISODate(latestDate(g.expirations))
		trades = append(trades, models.MatchedTrade{
			Date:      expDate,
			Symbol:    symbol,
			Side:      "sell",
			Quantity:  totalExpiredQty,
			Price:     decimal.Zero,
			AssetType: assetType,
			PnL:       pnl,
			OpenDate:  openDate,
			CloseDate: expDate,
			Notes: fmt.Sprintf("EXPIRED worthless: %d of %d, premium $%s lost",
				totalExpiredQty, totalBuyQty, pnl.Abs().StringFixed(2)),
			Selected: true,
		})
	}

	return trades
}

// perUnitPrice turns a total dollar amount into a per-unit price,
// dividing option amounts by 100 per contract to get per-share prices.
func (g *legGroup) perUnitPrice(total decimal.Decimal, quantity int) decimal.Decimal {
	if quantity == 0 {
		return decimal.Zero
	}
	perUnit := total.Abs().Div(decimal.NewFromInt(int64(quantity)))
	if g.isOption {
		perUnit = perUnit.Div(optionContractMultiplier)
	}
	return perUnit.Round(2)
}

// renderSymbol produces the display symbol and asset type for a group.
// Option descriptions render as "{TICKER} ${STRIKE} {CALL|PUT}"; a
// description that does not match the pattern falls back to the raw text.
func (g *legGroup) renderSymbol() (string, models.AssetType) {
	if !g.isOption {
		return strings.ToUpper(g.instrument), models.AssetStock
	}

	assetType := models.AssetCall
	if strings.Contains(strings.ToLower(g.display), "put") {
		assetType = models.AssetPut
	}

	m := optionDescRe.FindStringSubmatch(g.display)
	if m == nil {
		return g.display, assetType
	}

	ticker := strings.ToUpper(m[1])
	kind := strings.ToUpper(m[2])
	if kind == "CALL" {
		assetType = models.AssetCall
	} else {
		assetType = models.AssetPut
	}
	// Decimal round-trip drops trailing zeros: "150.00" renders as "150".
	strike := decimal.RequireFromString(m[3]).String()

	return fmt.Sprintf("%s $%s %s", ticker, strike, kind), assetType
}

// clampRatio keeps allocation ratios inside [0, 1] even when closes
// exceed recorded opens (e.g. a position partially opened elsewhere).
func clampRatio(ratio decimal.Decimal) decimal.Decimal {
	if ratio.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	if ratio.IsNegative() {
		return decimal.Zero
	}
	return ratio
}

func earliestDate(legs []models.BrokerTransaction) time.Time {
	var earliest time.Time
	for _, leg := range legs {
		if earliest.IsZero() || leg.Date.Before(earliest) {
			earliest = leg.Date
		}
	}
	return earliest
}

func latestDate(legs []models.BrokerTransaction) time.Time {
	var latest time.Time
	for _, leg := range legs {
		if leg.Date.After(latest) {
			latest = leg.Date
		}
	}
	return latest
}
