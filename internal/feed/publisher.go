// Package feed publishes scan results to Redis for downstream consumers
// (alerting, dashboards). Entirely optional: the scanner works without it.
package feed

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/you/spread-scanner/internal/config"
	"github.com/you/spread-scanner/internal/types"
)

type Publisher struct {
	rdb    *redis.Client
	stream string
	active string
}

func NewPublisher(cfg *config.Config) *Publisher {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
	})
	return &Publisher{
		rdb:    rdb,
		stream: cfg.Redis.Stream,
		active: cfg.Redis.ActiveKey,
	}
}

// PublishScan appends every opportunity to the stream and refreshes the
// active-symbol ZSET, scored by scan time so consumers can expire stale
// entries with ZRANGEBYSCORE.
func (p *Publisher) PublishScan(ctx context.Context, opps []types.Opportunity) error {
	nowMs := time.Now().UnixMilli()
	for _, o := range opps {
		if err := p.rdb.XAdd(ctx, &redis.XAddArgs{
			Stream: p.stream,
			Values: map[string]interface{}{
				"symbol":     o.Symbol,
				"chain":      string(o.Chain),
				"spread_pct": strconv.FormatFloat(o.SpreadPct, 'f', -1, 64),
				"direction":  string(o.Direction),
				"buy_venue":  o.BuyVenue,
				"sell_venue": o.SellVenue,
				"dex_px":     strconv.FormatFloat(o.DexPriceUSD, 'f', -1, 64),
				"cex_px":     strconv.FormatFloat(o.CexPriceUSD, 'f', -1, 64),
				"addr":       o.ContractAddr,
				"risk":       string(o.Risk.Status),
				"ts_ms":      nowMs,
			},
		}).Err(); err != nil {
			return err
		}
		if err := p.rdb.ZAdd(ctx, p.active, redis.Z{
			Score: float64(nowMs), Member: o.Symbol,
		}).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) Close() error { return p.rdb.Close() }
