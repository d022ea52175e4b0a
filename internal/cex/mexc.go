package cex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/you/spread-scanner/internal/config"
	"github.com/you/spread-scanner/internal/types"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultMEXCRestURL = "https://api.mexc.com"

type mexcClient struct {
	restURL string
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

func newMEXC(cfg *config.Config, log *zap.Logger) Client {
	restURL := cfg.CEX.MEXC.RestURL
	if restURL == "" {
		restURL = defaultMEXCRestURL
	}
	return &mexcClient{
		restURL: restURL,
		http:    &http.Client{Timeout: cfg.HTTPTimeout()},
		limiter: rate.NewLimiter(rate.Limit(10), 5),
		log:     log,
	}
}

func (c *mexcClient) Venue() types.CexVenue { return types.VenueMEXC }

type mexcBookTicker struct {
	Symbol   string `json:"symbol"`
	BidPrice string `json:"bidPrice"`
	AskPrice string `json:"askPrice"`
}

// FetchQuotes pulls the whole bookTicker snapshot in one request and keeps
// the requested USDT-quoted symbols with a two-sided book.
func (c *mexcClient) FetchQuotes(ctx context.Context, symbols map[string]struct{}) (map[string]types.CexQuote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := c.restURL + "/api/v3/ticker/bookTicker"
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

	var rows []mexcBookTicker
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, err
	}

	out := make(map[string]types.CexQuote, len(symbols))
	for _, r := range rows {
		base, ok := baseOfPair(r.Symbol, "")
		if !ok {
			continue
		}
		if _, want := symbols[base]; !want {
			continue
		}
		bid, _ := strconv.ParseFloat(r.BidPrice, 64)
		ask, _ := strconv.ParseFloat(r.AskPrice, 64)
		if bid <= 0 || ask <= 0 {
			continue
		}
		out[base] = types.CexQuote{Symbol: base, Venue: types.VenueMEXC, Bid: bid, Ask: ask}
	}
	c.log.Debug("mexc quotes fetched", zap.Int("matched", len(out)), zap.Int("requested", len(symbols)))
	return out, nil
}
