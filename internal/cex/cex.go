// Package cex provides bulk best-bid/ask clients for the supported
// centralized exchanges behind one capability interface.
package cex

import (
	"context"
	"fmt"
	"strings"

	"github.com/you/spread-scanner/internal/config"
	"github.com/you/spread-scanner/internal/types"
	"go.uber.org/zap"
)

// stableQuote is the quote asset all venue books are matched against.
// It must stay aligned with the DEX-side stable filter.
const stableQuote = "USDT"

// Client fetches current quotes for one venue. FetchQuotes returns only
// the requested symbols that trade against the stable quote with both a
// positive bid and ask.
type Client interface {
	Venue() types.CexVenue
	FetchQuotes(ctx context.Context, symbols map[string]struct{}) (map[string]types.CexQuote, error)
}

type factory func(cfg *config.Config, log *zap.Logger) Client

var registry = map[types.CexVenue]factory{
	types.VenueBybit: newBybit,
	types.VenueMEXC:  newMEXC,
	types.VenueLBank: newLBank,
}

// Build resolves the configured venue identifiers into clients. Unknown
// identifiers are a config error, not a runtime degradation.
func Build(cfg *config.Config, log *zap.Logger) ([]Client, error) {
	out := make([]Client, 0, len(cfg.Venues))
	for _, id := range cfg.Venues {
		f, ok := registry[id]
		if !ok {
			return nil, fmt.Errorf("no client registered for venue %q", id)
		}
		out = append(out, f(cfg, log))
	}
	return out, nil
}

// baseOfPair extracts the base symbol from a venue pair name quoted in the
// stable asset, e.g. "GMXUSDT" -> "GMX" or "gmx_usdt" -> "GMX".
func baseOfPair(pair, sep string) (string, bool) {
	p := strings.ToUpper(strings.TrimSpace(pair))
	suffix := strings.ToUpper(sep) + stableQuote
	if !strings.HasSuffix(p, suffix) {
		return "", false
	}
	base := strings.TrimSuffix(p, suffix)
	if base == "" {
		return "", false
	}
	return base, true
}
