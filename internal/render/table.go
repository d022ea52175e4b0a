// Package render prints scan results for a human operator.
package render

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/you/spread-scanner/internal/scanner"
	"github.com/you/spread-scanner/internal/types"
)

// PrintResult writes the ranked opportunity table plus any degradation
// warnings to out.
func PrintResult(out io.Writer, res *scanner.Result) {
	now := time.Now().Format("15:04:05")
	fmt.Fprintf(out, "\n[%s] %d opportunities, %d warnings\n", now, len(res.Opportunities), len(res.Warnings))

	for _, w := range res.Warnings {
		fmt.Fprintf(out, "  WARN %s\n", w)
	}
	if len(res.Opportunities) == 0 {
		fmt.Fprintln(out, "  no matches — try a deeper search or another chain")
		return
	}

	table := tablewriter.NewWriter(out)
	table.Header("#", "Token", "Spread", "Buy", "Sell", "DEX Px", "CEX Px", "Safety", "Chart")

	for i, o := range res.Opportunities {
		table.Append(
			fmt.Sprintf("%d", i+1),
			o.Symbol,
			fmt.Sprintf("%.2f%%", o.SpreadPct),
			o.BuyVenue,
			o.SellVenue,
			fmt.Sprintf("%.6f", o.DexPriceUSD),
			fmt.Sprintf("%.6f", o.CexPriceUSD),
			safetyLabel(o.Risk),
			o.ChartURL,
		)
	}
	table.Render()
}

func safetyLabel(r types.RiskAssessment) string {
	switch r.Status {
	case types.RiskSafe:
		return fmt.Sprintf("OK B:%.0f%% S:%.0f%%", r.BuyTaxPct, r.SellTaxPct)
	case types.RiskHoneypot:
		return "SCAM"
	case types.RiskManualRequired:
		return "manual"
	case types.RiskSkipped:
		return "skipped"
	case types.RiskProviderError:
		return "n/a"
	default:
		return "unknown"
	}
}
