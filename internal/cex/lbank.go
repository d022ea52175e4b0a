package cex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/you/spread-scanner/internal/config"
	"github.com/you/spread-scanner/internal/types"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultLBankRestURL = "https://api.lbkex.com"

type lbankClient struct {
	restURL string
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

func newLBank(cfg *config.Config, log *zap.Logger) Client {
	restURL := cfg.CEX.LBank.RestURL
	if restURL == "" {
		restURL = defaultLBankRestURL
	}
	return &lbankClient{
		restURL: restURL,
		http:    &http.Client{Timeout: cfg.HTTPTimeout()},
		limiter: rate.NewLimiter(rate.Limit(5), 5),
		log:     log,
	}
}

func (c *lbankClient) Venue() types.CexVenue { return types.VenueLBank }

// LBank serializes prices as JSON numbers, unlike the string prices on
// bybit/mexc.
type lbankBookTicker struct {
	Symbol   string  `json:"symbol"` // lowercase with underscore, e.g. "gmx_usdt"
	BidPrice float64 `json:"bidPrice"`
	AskPrice float64 `json:"askPrice"`
}

type lbankResp struct {
	Result string            `json:"result"` // "true"/"false" as a string
	Data   []lbankBookTicker `json:"data"`
	ErrMsg string            `json:"msg"`
}

func (c *lbankClient) FetchQuotes(ctx context.Context, symbols map[string]struct{}) (map[string]types.CexQuote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := c.restURL + "/v2/supplement/ticker/bookTicker.do?symbol=all"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bookTicker %d: %s", resp.StatusCode, string(b))
	}

	var lr lbankResp
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}
	if lr.Result != "true" {
		return nil, fmt.Errorf("bookTicker result=%s: %s", lr.Result, lr.ErrMsg)
	}

	out := make(map[string]types.CexQuote, len(symbols))
	for _, r := range lr.Data {
		base, ok := baseOfPair(r.Symbol, "_")
		if !ok {
			continue
		}
		if _, want := symbols[base]; !want {
			continue
		}
		if r.BidPrice <= 0 || r.AskPrice <= 0 {
			continue
		}
		out[base] = types.CexQuote{Symbol: base, Venue: types.VenueLBank, Bid: r.BidPrice, Ask: r.AskPrice}
	}
	c.log.Debug("lbank quotes fetched", zap.Int("matched", len(out)), zap.Int("requested", len(symbols)))
	return out, nil
}
