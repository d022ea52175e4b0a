package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ScanDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scanner_scan_duration_seconds",
		Help:    "Wall time of one full scan",
		Buckets: prometheus.DefBuckets,
	})

	DexListings = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scanner_dex_listings",
		Help: "DEX listings surviving the liquidity filter in the last scan",
	})

	VenueFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scanner_venue_failures_total",
		Help: "CEX venue fetches that degraded to an empty quote set",
	}, []string{"venue"})

	Opportunities = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scanner_opportunities",
		Help: "Opportunities produced by the last scan",
	})

	RiskProviderErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scanner_risk_provider_errors_total",
		Help: "Risk provider lookups that failed",
	})
)

func init() {
	prometheus.MustRegister(
		ScanDuration,
		DexListings,
		VenueFailures,
		Opportunities,
		RiskProviderErrors,
	)
}
