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

const defaultBybitRestURL = "https://api.bybit.com"

type bybitClient struct {
	restURL string
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

func newBybit(cfg *config.Config, log *zap.Logger) Client {
	restURL := cfg.CEX.Bybit.RestURL
	if restURL == "" {
		restURL = defaultBybitRestURL
	}
	return &bybitClient{
		restURL: restURL,
		http:    &http.Client{Timeout: cfg.HTTPTimeout()},
		limiter: rate.NewLimiter(rate.Limit(10), 5),
		log:     log,
	}
}

func (c *bybitClient) Venue() types.CexVenue { return types.VenueBybit }

type bybitTickersResp struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		List []struct {
			Symbol    string `json:"symbol"`
			Bid1Price string `json:"bid1Price"`
			Ask1Price string `json:"ask1Price"`
		} `json:"list"`
	} `json:"result"`
}

func (c *bybitClient) FetchQuotes(ctx context.Context, symbols map[string]struct{}) (map[string]types.CexQuote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := c.restURL + "/v5/market/tickers?category=spot"
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
		return nil, fmt.Errorf("tickers %d: %s", resp.StatusCode, string(b))
	}

	var tr bybitTickersResp
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, err
	}
	if tr.RetCode != 0 {
		return nil, fmt.Errorf("tickers retCode %d: %s", tr.RetCode, tr.RetMsg)
	}

	out := make(map[string]types.CexQuote, len(symbols))
	for _, r := range tr.Result.List {
		base, ok := baseOfPair(r.Symbol, "")
		if !ok {
			continue
		}
		if _, want := symbols[base]; !want {
			continue
		}
		bid, _ := strconv.ParseFloat(r.Bid1Price, 64)
		ask, _ := strconv.ParseFloat(r.Ask1Price, 64)
		if bid <= 0 || ask <= 0 {
			continue
		}
		out[base] = types.CexQuote{Symbol: base, Venue: types.VenueBybit, Bid: bid, Ask: ask}
	}
	c.log.Debug("bybit quotes fetched", zap.Int("matched", len(out)), zap.Int("requested", len(symbols)))
	return out, nil
}
