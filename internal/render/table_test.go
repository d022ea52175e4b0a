package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/you/spread-scanner/internal/scanner"
	"github.com/you/spread-scanner/internal/types"
)

func TestPrintResult_Table(t *testing.T) {
	var buf bytes.Buffer
	res := &scanner.Result{
		Opportunities: []types.Opportunity{
			{
				Symbol:      "FOO",
				Chain:       types.ChainEthereum,
				SpreadPct:   5.0,
				Direction:   types.BuyDexSellCex,
				BuyVenue:    "uniswap",
				SellVenue:   "bybit",
				DexPriceUSD: 1.0,
				CexPriceUSD: 1.05,
				ChartURL:    "https://dexscreener.com/ethereum/0xf00",
				Risk:        types.RiskAssessment{Status: types.RiskSafe, BuyTaxPct: 1, SellTaxPct: 2},
			},
		},
		Warnings: []scanner.Warning{{Source: "lbank", Err: errors.New("timeout")}},
	}

	PrintResult(&buf, res)
	out := buf.String()

	assert.Contains(t, out, "1 opportunities, 1 warnings")
	assert.Contains(t, out, "WARN lbank: timeout")
	assert.Contains(t, out, "FOO")
	assert.Contains(t, out, "5.00%")
	assert.Contains(t, out, "OK B:1% S:2%")
}

func TestPrintResult_Empty(t *testing.T) {
	var buf bytes.Buffer
	PrintResult(&buf, &scanner.Result{})
	assert.Contains(t, buf.String(), "no matches")
}
