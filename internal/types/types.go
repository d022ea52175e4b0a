package types

// Direction is the profitable leg ordering for a cross-venue spread.
type Direction string

const (
	BuyDexSellCex Direction = "BUY_DEX_SELL_CEX"
	BuyCexSellDex Direction = "BUY_CEX_SELL_DEX"
)

// CexVenue identifies one configured centralized exchange.
type CexVenue string

const (
	VenueBybit CexVenue = "bybit"
	VenueMEXC  CexVenue = "mexc"
	VenueLBank CexVenue = "lbank"
)

// TokenListing is one DEX-quoted token for the current scan.
// Built once per scan from the aggregator response, never mutated after.
type TokenListing struct {
	Symbol       string // uppercase ticker, e.g. "GMX"
	ContractAddr string // chain-specific; opaque for non-EVM chains
	Chain        Chain
	PriceUSD     float64
	LiquidityUSD float64
	DexVenueID   string // pool/router that quoted it, e.g. "uniswap"
}

// CexQuote is the current best bid/ask for one symbol on one venue.
type CexQuote struct {
	Symbol string
	Venue  CexVenue
	Bid    float64
	Ask    float64
}

// SpreadCandidate is a (listing, venue quote) pair that passed spread
// evaluation. Transient: lives only inside one scan pass.
type SpreadCandidate struct {
	Symbol       string
	Chain        Chain
	ContractAddr string
	DexPriceUSD  float64
	DexLiquidity float64
	DexVenueID   string
	CexVenue     CexVenue
	CexBid       float64
	CexAsk       float64
	SpreadPct    float64 // signed
	Direction    Direction
}

// CexPrice returns the CEX-side price of the leg the candidate trades
// against: the bid when selling on the CEX, the ask when buying there.
func (c SpreadCandidate) CexPrice() float64 {
	if c.Direction == BuyDexSellCex {
		return c.CexBid
	}
	return c.CexAsk
}

type RiskStatus string

const (
	RiskSafe           RiskStatus = "SAFE"
	RiskHoneypot       RiskStatus = "HONEYPOT"
	RiskUnknown        RiskStatus = "UNKNOWN"
	RiskManualRequired RiskStatus = "MANUAL_REQUIRED"
	RiskProviderError  RiskStatus = "PROVIDER_ERROR"
	RiskSkipped        RiskStatus = "SKIPPED"
)

// RiskAssessment is the safety classification for one candidate.
// Tax percentages are meaningful only when Status is RiskSafe.
type RiskAssessment struct {
	Status     RiskStatus
	BuyTaxPct  float64
	SellTaxPct float64
}

// Opportunity is one row of the final ranked result set.
type Opportunity struct {
	Symbol       string
	Chain        Chain
	SpreadPct    float64
	Direction    Direction
	BuyVenue     string
	SellVenue    string
	DexPriceUSD  float64
	CexPriceUSD  float64
	ContractAddr string
	ChartURL     string
	Risk         RiskAssessment
}
