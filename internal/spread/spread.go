// Package spread holds the pure comparison math of a scan: directional
// spread evaluation and the final filter/rank step. Nothing here performs
// I/O, so identical inputs always produce identical output.
package spread

import "github.com/you/spread-scanner/internal/types"

// Evaluate computes both directional spreads for a listing against one
// venue quote and keeps the better one.
//
//	DEX->CEX: (bid - dexPrice) / dexPrice * 100  (buy on DEX, sell the bid)
//	CEX->DEX: (dexPrice - ask) / ask * 100       (buy the ask, sell on DEX)
//
// On exact equality the DEX->CEX leg wins. The candidate is rejected when
// the DEX price is non-positive or the winning spread falls outside the
// open interval (minPct, maxPct); the cap weeds out stale or de-listed
// quotes showing implausible spreads.
func Evaluate(l types.TokenListing, q types.CexQuote, minPct, maxPct float64) (types.SpreadCandidate, bool) {
	if l.PriceUSD <= 0 {
		return types.SpreadCandidate{}, false
	}

	dexToCex := (q.Bid - l.PriceUSD) / l.PriceUSD * 100
	cexToDex := (l.PriceUSD - q.Ask) / q.Ask * 100

	best := dexToCex
	dir := types.BuyDexSellCex
	if cexToDex > dexToCex {
		best = cexToDex
		dir = types.BuyCexSellDex
	}

	if best <= minPct || best >= maxPct {
		return types.SpreadCandidate{}, false
	}

	return types.SpreadCandidate{
		Symbol:       l.Symbol,
		Chain:        l.Chain,
		ContractAddr: l.ContractAddr,
		DexPriceUSD:  l.PriceUSD,
		DexLiquidity: l.LiquidityUSD,
		DexVenueID:   l.DexVenueID,
		CexVenue:     q.Venue,
		CexBid:       q.Bid,
		CexAsk:       q.Ask,
		SpreadPct:    best,
		Direction:    dir,
	}, true
}
