package config

import (
	"fmt"
	"os"
	"time"

	"github.com/you/spread-scanner/internal/types"
	"gopkg.in/yaml.v3"
)

type ScanCfg struct {
	MinSpreadPct    float64 `yaml:"min_spread_pct"`
	MaxSpreadPct    float64 `yaml:"max_spread_pct"`
	MinLiquidityUSD float64 `yaml:"min_liquidity_usd"`
	MaxPairs        int     `yaml:"max_pairs"`
	IntervalSec     int     `yaml:"interval_sec"` // 0 = single scan
}

type RiskCfg struct {
	// SkipCheck disables provider lookups entirely; candidates are
	// annotated with the SKIPPED sentinel.
	SkipCheck  bool   `yaml:"skip_check"`
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

type DexScreenerCfg struct {
	BaseURL string `yaml:"base_url"`
}

type CexEndpoint struct {
	RestURL string `yaml:"rest_url"`
}

type CexCfg struct {
	Bybit CexEndpoint `yaml:"bybit"`
	MEXC  CexEndpoint `yaml:"mexc"`
	LBank CexEndpoint `yaml:"lbank"`
}

type RedisCfg struct {
	Addr      string `yaml:"addr"` // empty = feed disabled
	DB        int    `yaml:"db"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Stream    string `yaml:"stream"`
	ActiveKey string `yaml:"active_key"`
}

type MetricsCfg struct {
	ListenAddr string `yaml:"listen_addr"` // empty = metrics disabled
}

type Config struct {
	Chain  string           `yaml:"chain"`
	Venues []types.CexVenue `yaml:"venues"`

	Scan        ScanCfg        `yaml:"scan"`
	Risk        RiskCfg        `yaml:"risk"`
	DexScreener DexScreenerCfg `yaml:"dexscreener"`
	CEX         CexCfg         `yaml:"cex"`
	Redis       RedisCfg       `yaml:"redis"`
	Metrics     MetricsCfg     `yaml:"metrics"`

	HTTPTimeoutSec int `yaml:"http_timeout_sec"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Chain == "" {
		c.Chain = string(types.ChainEthereum)
	}
	if len(c.Venues) == 0 {
		c.Venues = []types.CexVenue{types.VenueBybit, types.VenueMEXC, types.VenueLBank}
	}
	if c.Scan.MinSpreadPct == 0 {
		c.Scan.MinSpreadPct = 1.0
	}
	if c.Scan.MaxSpreadPct == 0 {
		c.Scan.MaxSpreadPct = 50.0
	}
	if c.Scan.MinLiquidityUSD == 0 {
		c.Scan.MinLiquidityUSD = 5000
	}
	if c.Scan.MaxPairs == 0 {
		c.Scan.MaxPairs = 200
	}
	if c.HTTPTimeoutSec == 0 {
		c.HTTPTimeoutSec = 10
	}
	if c.Risk.TimeoutSec == 0 {
		c.Risk.TimeoutSec = 5
	}
	if c.Redis.Stream == "" {
		c.Redis.Stream = "scan:opps"
	}
	if c.Redis.ActiveKey == "" {
		c.Redis.ActiveKey = "scan:active"
	}
}

func (c *Config) Validate() error {
	if _, err := types.ParseChain(c.Chain); err != nil {
		return err
	}
	for _, v := range c.Venues {
		switch v {
		case types.VenueBybit, types.VenueMEXC, types.VenueLBank:
		default:
			return fmt.Errorf("unknown cex venue %q", v)
		}
	}
	if c.Scan.MaxSpreadPct <= c.Scan.MinSpreadPct {
		return fmt.Errorf("max_spread_pct (%v) must exceed min_spread_pct (%v)",
			c.Scan.MaxSpreadPct, c.Scan.MinSpreadPct)
	}
	return nil
}

// ChainID returns the validated chain. Call after Load.
func (c *Config) ChainID() types.Chain {
	ch, _ := types.ParseChain(c.Chain)
	return ch
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSec) * time.Second
}

func (c *Config) RiskTimeout() time.Duration {
	return time.Duration(c.Risk.TimeoutSec) * time.Second
}

func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Scan.IntervalSec) * time.Second
}
