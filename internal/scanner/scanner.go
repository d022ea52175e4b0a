// Package scanner coordinates one full scan: DEX discovery, concurrent
// CEX venue fetches, spread evaluation, risk annotation and ranking.
// A Scanner holds no state between runs; every Run is independent.
package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/you/spread-scanner/internal/cex"
	"github.com/you/spread-scanner/internal/config"
	"github.com/you/spread-scanner/internal/metrics"
	"github.com/you/spread-scanner/internal/spread"
	"github.com/you/spread-scanner/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DexSource is the DEX-side listing feed. Its failure is scan-fatal:
// without DEX prices there is nothing to compare against.
type DexSource interface {
	FetchListings(ctx context.Context, chain types.Chain) ([]types.TokenListing, error)
}

// RiskAnnotator classifies one candidate's contract. Implementations never
// fail; failure modes map to RiskStatus values.
type RiskAnnotator interface {
	Assess(ctx context.Context, chain types.Chain, contractAddr string) types.RiskAssessment
}

// ScanFatalError wraps the DEX source error that aborted a scan.
type ScanFatalError struct {
	Err error
}

func (e *ScanFatalError) Error() string { return fmt.Sprintf("scan fatal: %v", e.Err) }
func (e *ScanFatalError) Unwrap() error { return e.Err }

// Warning records one non-fatal degradation: a venue or the risk provider
// contributed nothing (or less than everything) this scan.
type Warning struct {
	Source string
	Err    error
}

func (w Warning) String() string { return fmt.Sprintf("%s: %v", w.Source, w.Err) }

// Result is the outcome of one scan: the ranked opportunity list plus any
// degradation warnings. Opportunities may be empty on a fully healthy scan.
type Result struct {
	Opportunities []types.Opportunity
	Warnings      []Warning
}

type Scanner struct {
	cfg    *config.Config
	dex    DexSource
	venues []cex.Client
	risk   RiskAnnotator
	log    *zap.Logger
}

func New(cfg *config.Config, dex DexSource, venues []cex.Client, risk RiskAnnotator, log *zap.Logger) *Scanner {
	return &Scanner{cfg: cfg, dex: dex, venues: venues, risk: risk, log: log}
}

// Run executes one scan. The only error it returns is *ScanFatalError for
// an unreachable DEX source; every other failure degrades into Warnings.
func (s *Scanner) Run(ctx context.Context) (*Result, error) {
	started := time.Now()
	defer func() { metrics.ScanDuration.Observe(time.Since(started).Seconds()) }()

	chain := s.cfg.ChainID()
	res := &Result{}

	// 1) DEX listings, liquidity floor, depth cap.
	listings, err := s.dex.FetchListings(ctx, chain)
	if err != nil {
		return nil, &ScanFatalError{Err: err}
	}
	kept := listings[:0]
	for _, l := range listings {
		if l.LiquidityUSD >= s.cfg.Scan.MinLiquidityUSD {
			kept = append(kept, l)
		}
	}
	if len(kept) > s.cfg.Scan.MaxPairs {
		kept = kept[:s.cfg.Scan.MaxPairs]
	}
	metrics.DexListings.Set(float64(len(kept)))
	s.log.Info("dex listings ready",
		zap.String("chain", string(chain)),
		zap.Int("fetched", len(listings)),
		zap.Int("after_filter", len(kept)),
	)

	// 2) Distinct symbol set. Nothing to compare is a valid empty scan.
	symbols := make(map[string]struct{}, len(kept))
	for _, l := range kept {
		symbols[l.Symbol] = struct{}{}
	}
	if len(symbols) == 0 {
		s.log.Info("no candidates after dex filter")
		return res, nil
	}

	// 3) Fan out to every configured venue and wait for the full set;
	// each venue's quotes are independently useful, so no early exit.
	quotes := s.fetchVenues(ctx, symbols, res)

	// 4) Evaluate listings against every venue quote in configured venue
	// order, so equal spreads rank deterministically later.
	var candidates []types.SpreadCandidate
	for _, l := range kept {
		for i := range s.venues {
			q, ok := quotes[i][l.Symbol]
			if !ok {
				continue
			}
			c, ok := spread.Evaluate(l, q, s.cfg.Scan.MinSpreadPct, s.cfg.Scan.MaxSpreadPct)
			if !ok {
				continue
			}
			candidates = append(candidates, c)
		}
	}
	s.log.Info("spread candidates", zap.Int("count", len(candidates)))

	// 5) Risk annotation, one provider call per surviving candidate.
	assessments := make([]types.RiskAssessment, len(candidates))
	riskErrs := 0
	for i, c := range candidates {
		assessments[i] = s.risk.Assess(ctx, c.Chain, c.ContractAddr)
		if assessments[i].Status == types.RiskProviderError {
			riskErrs++
			metrics.RiskProviderErrors.Inc()
		}
	}
	if riskErrs > 0 {
		res.Warnings = append(res.Warnings, Warning{
			Source: "risk",
			Err:    fmt.Errorf("%d of %d lookups failed", riskErrs, len(candidates)),
		})
	}

	// 6) Filter and rank.
	res.Opportunities = spread.Rank(candidates, assessments)
	metrics.Opportunities.Set(float64(len(res.Opportunities)))
	s.log.Info("scan finished",
		zap.Int("opportunities", len(res.Opportunities)),
		zap.Int("warnings", len(res.Warnings)),
		zap.Duration("took", time.Since(started)),
	)
	return res, nil
}

// fetchVenues queries all venues concurrently and joins at the barrier.
// Each worker writes only its own slot, so the merge needs no locking.
// A failed venue degrades to a nil map and a Warning.
func (s *Scanner) fetchVenues(ctx context.Context, symbols map[string]struct{}, res *Result) []map[string]types.CexQuote {
	quotes := make([]map[string]types.CexQuote, len(s.venues))
	errs := make([]error, len(s.venues))
	if len(s.venues) == 0 {
		return quotes
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(s.venues))
	for i, v := range s.venues {
		i, v := i, v // per-iteration copies; module builds with a pre-1.22 go directive
		g.Go(func() error {
			q, err := v.FetchQuotes(gctx, symbols)
			if err != nil {
				errs[i] = err
				return nil // degrade, never abort the group
			}
			quotes[i] = q
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range errs {
		if err == nil {
			continue
		}
		venue := string(s.venues[i].Venue())
		metrics.VenueFailures.WithLabelValues(venue).Inc()
		s.log.Warn("venue degraded", zap.String("venue", venue), zap.Error(err))
		res.Warnings = append(res.Warnings, Warning{Source: venue, Err: err})
	}
	return quotes
}
