package risk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/spread-scanner/internal/config"
	"github.com/you/spread-scanner/internal/types"
	"go.uber.org/zap"
)

const (
	checksummed = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	lowercased  = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
)

func TestNormalizeAddr(t *testing.T) {
	got, err := NormalizeAddr(checksummed)
	require.NoError(t, err)
	assert.Equal(t, lowercased, got)

	got, err = NormalizeAddr(lowercased)
	require.NoError(t, err)
	assert.Equal(t, lowercased, got)

	// corrupted checksum
	bad := strings.Replace(checksummed, "aA", "Aa", 1)
	_, err = NormalizeAddr(bad)
	assert.Error(t, err)

	_, err = NormalizeAddr("0x1234")
	assert.Error(t, err)

	_, err = NormalizeAddr("0xzz5aeb6053f3e94c9b9a09f33669435e7ef1beae")
	assert.Error(t, err)
}

func newAnnotator(t *testing.T, baseURL string, skip bool) *Annotator {
	t.Helper()
	cfg := &config.Config{}
	cfg.Risk.BaseURL = baseURL
	cfg.Risk.TimeoutSec = 2
	cfg.Risk.SkipCheck = skip
	a := NewAnnotator(cfg, zap.NewNop())
	// tests hammer the annotator; do not let the provider limiter stall them
	a.limiter.SetLimit(1000)
	return a
}

func securityServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/v1/token_security/") {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestAssess_Safe(t *testing.T) {
	srv := securityServer(t, `{"code":1,"result":{"`+lowercased+`":{"is_honeypot":"0","buy_tax":"0.05","sell_tax":"0.1"}}}`, 200)
	defer srv.Close()

	a := newAnnotator(t, srv.URL, false)
	got := a.Assess(context.Background(), types.ChainEthereum, checksummed)

	assert.Equal(t, types.RiskSafe, got.Status)
	assert.InDelta(t, 5.0, got.BuyTaxPct, 1e-9)
	assert.InDelta(t, 10.0, got.SellTaxPct, 1e-9)
}

func TestAssess_Honeypot(t *testing.T) {
	srv := securityServer(t, `{"code":1,"result":{"`+lowercased+`":{"is_honeypot":"1"}}}`, 200)
	defer srv.Close()

	a := newAnnotator(t, srv.URL, false)
	got := a.Assess(context.Background(), types.ChainBSC, lowercased)
	assert.Equal(t, types.RiskHoneypot, got.Status)
}

func TestAssess_AddressAbsentFromResult(t *testing.T) {
	srv := securityServer(t, `{"code":1,"result":{}}`, 200)
	defer srv.Close()

	a := newAnnotator(t, srv.URL, false)
	got := a.Assess(context.Background(), types.ChainEthereum, lowercased)
	assert.Equal(t, types.RiskUnknown, got.Status)
}

func TestAssess_ProviderError(t *testing.T) {
	srv := securityServer(t, `boom`, 500)
	defer srv.Close()

	a := newAnnotator(t, srv.URL, false)
	got := a.Assess(context.Background(), types.ChainEthereum, lowercased)
	assert.Equal(t, types.RiskProviderError, got.Status)
}

func TestAssess_NonEVMNeedsNoCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	a := newAnnotator(t, srv.URL, false)
	got := a.Assess(context.Background(), types.ChainSolana, "So11111111111111111111111111111111111111112")

	assert.Equal(t, types.RiskManualRequired, got.Status)
	assert.False(t, called)
}

func TestAssess_SkipMode(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	a := newAnnotator(t, srv.URL, true)
	got := a.Assess(context.Background(), types.ChainEthereum, lowercased)

	assert.Equal(t, types.RiskSkipped, got.Status)
	assert.False(t, called)
}

func TestAssess_MalformedAddress(t *testing.T) {
	a := newAnnotator(t, "http://127.0.0.1:0", false)
	got := a.Assess(context.Background(), types.ChainEthereum, "not-an-address")
	assert.Equal(t, types.RiskUnknown, got.Status)
}
