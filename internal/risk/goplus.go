// Package risk classifies token contracts via the GoPlus security API.
// Assess never fails at the interface level: every failure mode maps to a
// RiskStatus so a slow or broken provider cannot sink a scan.
package risk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/you/spread-scanner/internal/config"
	"github.com/you/spread-scanner/internal/types"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.gopluslabs.io"

type Annotator struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	timeout time.Duration
	skip    bool
	log     *zap.Logger
}

func NewAnnotator(cfg *config.Config, log *zap.Logger) *Annotator {
	baseURL := cfg.Risk.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Annotator{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: cfg.RiskTimeout()},
		// GoPlus free tier: ~30 calls/min
		limiter: rate.NewLimiter(rate.Limit(0.5), 2),
		timeout: cfg.RiskTimeout(),
		skip:    cfg.Risk.SkipCheck,
		log:     log,
	}
}

type tokenSecurity struct {
	IsHoneypot string `json:"is_honeypot"`
	BuyTax     string `json:"buy_tax"`
	SellTax    string `json:"sell_tax"`
}

type securityResp struct {
	Code   int                      `json:"code"`
	Result map[string]tokenSecurity `json:"result"`
}

// Assess classifies one (chain, contract) pair. One provider call per
// candidate, bounded by the configured per-call timeout.
func (a *Annotator) Assess(ctx context.Context, chain types.Chain, contractAddr string) types.RiskAssessment {
	if a.skip {
		return types.RiskAssessment{Status: types.RiskSkipped}
	}
	if !chain.IsEVM() {
		return types.RiskAssessment{Status: types.RiskManualRequired}
	}

	addr, err := NormalizeAddr(contractAddr)
	if err != nil {
		a.log.Debug("unusable contract address", zap.String("addr", contractAddr), zap.Error(err))
		return types.RiskAssessment{Status: types.RiskUnknown}
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	if err := a.limiter.Wait(ctx); err != nil {
		return types.RiskAssessment{Status: types.RiskProviderError}
	}

	endpoint := fmt.Sprintf("%s/api/v1/token_security/%s?contract_addresses=%s",
		a.baseURL, url.PathEscape(chain.RiskID()), url.QueryEscape(addr))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return types.RiskAssessment{Status: types.RiskProviderError}
	}
	resp, err := a.http.Do(req)
	if err != nil {
		a.log.Warn("risk provider unreachable", zap.String("addr", addr), zap.Error(err))
		return types.RiskAssessment{Status: types.RiskProviderError}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		a.log.Warn("risk provider error", zap.String("addr", addr), zap.Int("status", resp.StatusCode))
		return types.RiskAssessment{Status: types.RiskProviderError}
	}

	var sr securityResp
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return types.RiskAssessment{Status: types.RiskProviderError}
	}

	data, ok := sr.Result[addr]
	if !ok {
		return types.RiskAssessment{Status: types.RiskUnknown}
	}
	if data.IsHoneypot == "1" {
		return types.RiskAssessment{Status: types.RiskHoneypot}
	}

	// provider reports taxes as fractions of 1
	buyTax, _ := strconv.ParseFloat(data.BuyTax, 64)
	sellTax, _ := strconv.ParseFloat(data.SellTax, 64)
	return types.RiskAssessment{
		Status:     types.RiskSafe,
		BuyTaxPct:  buyTax * 100,
		SellTaxPct: sellTax * 100,
	}
}
