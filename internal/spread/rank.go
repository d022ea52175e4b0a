package spread

import (
	"fmt"
	"sort"

	"github.com/you/spread-scanner/internal/types"
)

// Rank turns candidates and their index-aligned risk assessments into the
// final ordered opportunity list. Honeypots are excluded outright; every
// other status (including PROVIDER_ERROR and SKIPPED) is surfaced so the
// operator sees unverifiable opportunities rather than losing them.
// Sorting is stable: equal spreads keep coordinator arrival order.
func Rank(candidates []types.SpreadCandidate, assessments []types.RiskAssessment) []types.Opportunity {
	out := make([]types.Opportunity, 0, len(candidates))
	for i, c := range candidates {
		risk := types.RiskAssessment{Status: types.RiskUnknown}
		if i < len(assessments) {
			risk = assessments[i]
		}
		if risk.Status == types.RiskHoneypot {
			continue
		}

		buy, sell := c.DexVenueID, string(c.CexVenue)
		if c.Direction == types.BuyCexSellDex {
			buy, sell = string(c.CexVenue), c.DexVenueID
		}
		out = append(out, types.Opportunity{
			Symbol:       c.Symbol,
			Chain:        c.Chain,
			SpreadPct:    c.SpreadPct,
			Direction:    c.Direction,
			BuyVenue:     buy,
			SellVenue:    sell,
			DexPriceUSD:  c.DexPriceUSD,
			CexPriceUSD:  c.CexPrice(),
			ContractAddr: c.ContractAddr,
			ChartURL:     chartURL(c.Chain, c.ContractAddr),
			Risk:         risk,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].SpreadPct > out[j].SpreadPct })
	return out
}

func chartURL(chain types.Chain, addr string) string {
	return fmt.Sprintf("https://dexscreener.com/%s/%s", chain, addr)
}
