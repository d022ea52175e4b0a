package spread

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/spread-scanner/internal/types"
)

func candidate(sym string, venue types.CexVenue, pct float64) types.SpreadCandidate {
	return types.SpreadCandidate{
		Symbol:       sym,
		Chain:        types.ChainEthereum,
		ContractAddr: "0x" + sym,
		DexPriceUSD:  1.0,
		DexVenueID:   "uniswap",
		CexVenue:     venue,
		CexBid:       1.0 + pct/100,
		CexAsk:       1.0 + pct/100 + 0.01,
		SpreadPct:    pct,
		Direction:    types.BuyDexSellCex,
	}
}

func safe() types.RiskAssessment     { return types.RiskAssessment{Status: types.RiskSafe} }
func honeypot() types.RiskAssessment { return types.RiskAssessment{Status: types.RiskHoneypot} }

func TestRank_DescendingBySpread(t *testing.T) {
	cands := []types.SpreadCandidate{
		candidate("AAA", types.VenueBybit, 5.0),
		candidate("BBB", types.VenueMEXC, 10.0),
		candidate("CCC", types.VenueLBank, 2.0),
	}
	risks := []types.RiskAssessment{safe(), safe(), safe()}

	got := Rank(cands, risks)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].SpreadPct, got[i].SpreadPct)
	}
	assert.Equal(t, "BBB", got[0].Symbol)
	assert.Equal(t, "CCC", got[2].Symbol)
}

func TestRank_HoneypotExcluded(t *testing.T) {
	cands := []types.SpreadCandidate{
		candidate("AAA", types.VenueBybit, 5.0),
		candidate("EVIL", types.VenueMEXC, 30.0),
	}
	risks := []types.RiskAssessment{safe(), honeypot()}

	got := Rank(cands, risks)
	require.Len(t, got, 1)
	assert.Equal(t, "AAA", got[0].Symbol)
	for _, o := range got {
		assert.NotEqual(t, types.RiskHoneypot, o.Risk.Status)
	}
}

func TestRank_NonFatalStatusesSurfaced(t *testing.T) {
	cands := []types.SpreadCandidate{
		candidate("AAA", types.VenueBybit, 5.0),
		candidate("BBB", types.VenueBybit, 4.0),
		candidate("CCC", types.VenueBybit, 3.0),
		candidate("DDD", types.VenueBybit, 2.0),
	}
	risks := []types.RiskAssessment{
		{Status: types.RiskUnknown},
		{Status: types.RiskManualRequired},
		{Status: types.RiskProviderError},
		{Status: types.RiskSkipped},
	}

	got := Rank(cands, risks)
	require.Len(t, got, 4)
	assert.Equal(t, types.RiskUnknown, got[0].Risk.Status)
	assert.Equal(t, types.RiskSkipped, got[3].Risk.Status)
}

func TestRank_StableOnEqualSpreads(t *testing.T) {
	cands := []types.SpreadCandidate{
		candidate("AAA", types.VenueBybit, 5.0),
		candidate("AAA", types.VenueMEXC, 5.0),
		candidate("AAA", types.VenueLBank, 5.0),
	}
	risks := []types.RiskAssessment{safe(), safe(), safe()}

	got := Rank(cands, risks)
	require.Len(t, got, 3)
	assert.Equal(t, "bybit", got[0].SellVenue)
	assert.Equal(t, "mexc", got[1].SellVenue)
	assert.Equal(t, "lbank", got[2].SellVenue)
}

func TestRank_VenueLegsAndChartURL(t *testing.T) {
	dexLeg := candidate("AAA", types.VenueBybit, 5.0)
	cexLeg := candidate("BBB", types.VenueMEXC, 6.0)
	cexLeg.Direction = types.BuyCexSellDex

	got := Rank([]types.SpreadCandidate{dexLeg, cexLeg}, []types.RiskAssessment{safe(), safe()})
	require.Len(t, got, 2)

	assert.Equal(t, "mexc", got[0].BuyVenue)
	assert.Equal(t, "uniswap", got[0].SellVenue)
	assert.Equal(t, "uniswap", got[1].BuyVenue)
	assert.Equal(t, "bybit", got[1].SellVenue)
	assert.Equal(t, "https://dexscreener.com/ethereum/0xAAA", got[1].ChartURL)
}

func TestRank_MissingAssessmentDefaultsToUnknown(t *testing.T) {
	got := Rank([]types.SpreadCandidate{candidate("AAA", types.VenueBybit, 5.0)}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, types.RiskUnknown, got[0].Risk.Status)
}

func TestRank_Deterministic(t *testing.T) {
	cands := []types.SpreadCandidate{
		candidate("AAA", types.VenueBybit, 5.0),
		candidate("BBB", types.VenueMEXC, 5.0),
		candidate("CCC", types.VenueLBank, 9.0),
	}
	risks := []types.RiskAssessment{safe(), safe(), safe()}

	first := Rank(cands, risks)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Rank(cands, risks))
	}
}
