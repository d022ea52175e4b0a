// Package dexsource fetches DEX-side token listings from the DexScreener
// aggregator and normalizes them into the scan model.
package dexsource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/you/spread-scanner/internal/types"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.dexscreener.com"

// stableQuotes are the USD-pegged quote assets a pair must be priced
// against to be comparable with CEX /USDT books.
var stableQuotes = map[string]struct{}{
	"USDT": {}, "USDC": {}, "DAI": {}, "FDUSD": {}, "BUSD": {},
}

// VenueError marks a DEX source failure. The whole scan depends on this
// feed, so callers treat it as scan-fatal.
type VenueError struct {
	Venue string
	Err   error
}

func (e *VenueError) Error() string { return fmt.Sprintf("venue %s: %v", e.Venue, e.Err) }
func (e *VenueError) Unwrap() error { return e.Err }

type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		// DexScreener allows 300 req/min on the search endpoint.
		limiter: rate.NewLimiter(rate.Limit(5), 5),
		log:     log,
	}
}

type searchResp struct {
	Pairs []pairData `json:"pairs"`
}

type pairData struct {
	ChainID   string `json:"chainId"`
	DexID     string `json:"dexId"`
	BaseToken struct {
		Address string `json:"address"`
		Symbol  string `json:"symbol"`
	} `json:"baseToken"`
	QuoteToken struct {
		Symbol string `json:"symbol"`
	} `json:"quoteToken"`
	PriceUsd  string `json:"priceUsd"`
	Liquidity *struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`
}

// FetchListings queries the aggregator for the chain and returns the
// stable-quoted listings found there. An empty slice is a valid result.
func (c *Client) FetchListings(ctx context.Context, chain types.Chain) ([]types.TokenListing, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &VenueError{Venue: "dexscreener", Err: err}
	}

	u := c.baseURL + "/latest/dex/search?q=" + url.QueryEscape(string(chain))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &VenueError{Venue: "dexscreener", Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &VenueError{Venue: "dexscreener", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &VenueError{Venue: "dexscreener", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var sr searchResp
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, &VenueError{Venue: "dexscreener", Err: err}
	}

	out := make([]types.TokenListing, 0, len(sr.Pairs))
	skipped := 0
	for _, p := range sr.Pairs {
		if p.ChainID != string(chain) {
			continue
		}
		if _, ok := stableQuotes[strings.ToUpper(p.QuoteToken.Symbol)]; !ok {
			continue
		}
		price, err := strconv.ParseFloat(p.PriceUsd, 64)
		if err != nil || price <= 0 {
			// expected data noise: pairs without a usable USD price
			skipped++
			continue
		}
		var liq float64
		if p.Liquidity != nil {
			liq = p.Liquidity.USD
		}
		out = append(out, types.TokenListing{
			Symbol:       strings.ToUpper(strings.TrimSpace(p.BaseToken.Symbol)),
			ContractAddr: p.BaseToken.Address,
			Chain:        chain,
			PriceUSD:     price,
			LiquidityUSD: liq,
			DexVenueID:   p.DexID,
		})
	}
	c.log.Debug("dex listings fetched",
		zap.String("chain", string(chain)),
		zap.Int("listings", len(out)),
		zap.Int("skipped_bad_price", skipped),
	)
	return out, nil
}
