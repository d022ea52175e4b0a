package feed

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/spread-scanner/internal/config"
	"github.com/you/spread-scanner/internal/types"
)

func TestPublishScan(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := &config.Config{}
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.Stream = "scan:opps"
	cfg.Redis.ActiveKey = "scan:active"

	p := NewPublisher(cfg)
	defer p.Close()

	opps := []types.Opportunity{
		{
			Symbol:      "FOO",
			Chain:       types.ChainEthereum,
			SpreadPct:   5.0,
			Direction:   types.BuyDexSellCex,
			BuyVenue:    "uniswap",
			SellVenue:   "bybit",
			DexPriceUSD: 1.0,
			CexPriceUSD: 1.05,
			Risk:        types.RiskAssessment{Status: types.RiskSafe},
		},
		{
			Symbol:    "BAR",
			Chain:     types.ChainEthereum,
			SpreadPct: 2.0,
			Direction: types.BuyCexSellDex,
			Risk:      types.RiskAssessment{Status: types.RiskUnknown},
		},
	}
	require.NoError(t, p.PublishScan(context.Background(), opps))

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	msgs, err := rdb.XRange(context.Background(), "scan:opps", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "FOO", msgs[0].Values["symbol"])
	assert.Equal(t, "BUY_DEX_SELL_CEX", msgs[0].Values["direction"])
	assert.Equal(t, "5", msgs[0].Values["spread_pct"])
	assert.Equal(t, "UNKNOWN", msgs[1].Values["risk"])

	active, err := rdb.ZRange(context.Background(), "scan:active", 0, -1).Result()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"FOO", "BAR"}, active)
}

func TestPublishScan_EmptyIsNoop(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := &config.Config{}
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.Stream = "scan:opps"
	cfg.Redis.ActiveKey = "scan:active"

	p := NewPublisher(cfg)
	defer p.Close()

	require.NoError(t, p.PublishScan(context.Background(), nil))
	assert.False(t, mr.Exists("scan:opps"))
}
