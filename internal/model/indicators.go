package model

// Indicator values are *float64 throughout: nil means the upstream source had
// no data, which is an expected state, never an error. Zero is a real reading.

// RecessionIndicators holds the leading-indicator inputs for recession risk.
type RecessionIndicators struct {
	ClaimsVelocityYoY *float64 // unemployment claims 4-week avg, YoY % change
	PMI               *float64 // ISM manufacturing PMI
	PMIPrev           *float64 // previous-period PMI, for regime-cross detection
	YieldCurve10Y2Y   *float64 // 10Y-2Y Treasury spread, percentage points
	YieldCurve10Y3M   *float64 // 10Y-3M Treasury spread, percentage points
	ConsumerSentiment *float64 // University of Michigan sentiment index
}

// CreditIndicators holds credit stress inputs. All spread levels are in
// basis points; velocities in bps per day.
type CreditIndicators struct {
	HYSpread            *float64 // high-yield OAS level, bps
	HYSpreadVelocity20D *float64 // 20-day HY widening rate, bps/day
	IGSpreadBBB         *float64 // BBB corporate spread, bps
	TEDSpread           *float64 // TED spread, percentage points
	LendingStandards    *float64 // net % of banks tightening (SLOOS)
}

// ValuationIndicators holds valuation inputs plus the housing and earnings
// series consumed by the composite warning rules.
type ValuationIndicators struct {
	ShillerCAPE     *float64 // cyclically adjusted P/E
	BuffettRatio    *float64 // market cap / GDP, percent
	ForwardPE       *float64 // S&P 500 forward P/E
	ShillerEarnings *float64 // trailing 12-month real earnings
	NewHomeSales    *float64 // new single-family home sales, thousands SAAR
	MortgageRate30Y *float64 // 30-year fixed mortgage rate, percent
}

// LiquidityIndicators holds monetary and volatility inputs.
type LiquidityIndicators struct {
	FedFundsRate       *float64 // effective fed funds rate, percent
	FedFundsVelocity6M *float64 // 6-month change in fed funds, percentage points
	CPIInflationYoY    *float64 // CPI inflation, YoY percent
	M2GrowthYoY        *float64 // M2 money supply growth, YoY percent
	VIX                *float64 // CBOE volatility index
}

// PositioningIndicators holds speculation and complacency inputs.
type PositioningIndicators struct {
	VIXProxy               *float64 // VIX as complacency proxy
	SP500NetSpeculative    *float64 // CFTC S&P net speculative positioning
	TreasuryNetSpeculative *float64 // CFTC Treasury net speculative positioning
}

// IndicatorSet is the full input to one risk assessment.
type IndicatorSet struct {
	Recession   RecessionIndicators
	Credit      CreditIndicators
	Valuation   ValuationIndicators
	Liquidity   LiquidityIndicators
	Positioning PositioningIndicators
}

// Dimension names used as map keys in results, weights and persistence.
const (
	DimRecession   = "recession"
	DimCredit      = "credit"
	DimValuation   = "valuation"
	DimLiquidity   = "liquidity"
	DimPositioning = "positioning"
)

// Dimensions returns the five dimension names in canonical order.
func Dimensions() []string {
	return []string{DimRecession, DimCredit, DimValuation, DimLiquidity, DimPositioning}
}

// Float returns a pointer to v. Indicator struct literals use it everywhere.
func Float(v float64) *float64 { return &v }
