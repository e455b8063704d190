package collector

import (
	"github.com/rs/zerolog"

	"aegis/internal/calculator"
	"aegis/internal/model"
)

// FRED series IDs for every indicator with a free upstream.
const (
	seriesClaims       = "ICSA"             // initial jobless claims, weekly
	seriesPMI          = "NAPM"             // ISM manufacturing PMI, monthly
	seriesCurve10Y2Y   = "T10Y2Y"           // 10Y minus 2Y Treasury spread, daily
	seriesCurve10Y3M   = "T10Y3M"           // 10Y minus 3M Treasury spread, daily
	seriesSentiment    = "UMCSENT"          // U. Michigan consumer sentiment, monthly
	seriesHYSpread     = "BAMLH0A0HYM2"     // HY OAS, percent, daily
	seriesIGSpread     = "BAMLC0A4CBBB"     // BBB OAS, percent, daily
	seriesTEDSpread    = "TEDRATE"          // TED spread, percent, daily
	seriesLending      = "DRTSCILM"         // net pct of banks tightening C&I standards
	seriesFedFunds     = "FEDFUNDS"         // effective fed funds rate, monthly
	seriesCPI          = "CPIAUCSL"         // CPI level, monthly
	seriesM2           = "M2SL"             // M2 level, monthly
	seriesVIX          = "VIXCLS"           // VIX close, daily
	seriesNewHomeSales = "HSN1F"            // new single-family home sales, monthly
	seriesMortgage30Y  = "MORTGAGE30US"     // 30-year fixed mortgage rate, weekly
	seriesBuffett      = "DDDM01USA156NWDB" // stock market cap to GDP, percent, annual
)

// Collector assembles a full indicator set from a series fetcher and an
// optional local Shiller CSV. Collection is total: any series that fails
// leaves its indicators nil and the engine excludes or degrades downstream.
type Collector struct {
	fetcher     Fetcher
	shillerPath string // empty skips CAPE and earnings
	log         zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, shillerPath string, log zerolog.Logger) *Collector {
	return &Collector{
		fetcher:     fetcher,
		shillerPath: shillerPath,
		log:         log.With().Str("component", "collector").Logger(),
	}
}

// Collect fetches every series and computes the derived velocities.
func (c *Collector) Collect() model.IndicatorSet {
	set := model.IndicatorSet{}
	c.collectRecession(&set.Recession)
	c.collectCredit(&set.Credit)
	c.collectValuation(&set.Valuation)
	c.collectLiquidity(&set.Liquidity)

	// Positioning rides on the same VIX reading until a CFTC feed exists.
	set.Positioning.VIXProxy = set.Liquidity.VIX
	return set
}

func (c *Collector) collectRecession(r *model.RecessionIndicators) {
	// Claims velocity: 4-week average now vs the 4-week average a year ago.
	if obs := c.series(seriesClaims, 60); len(obs) >= 56 {
		cur, errCur := calculator.MovingAverage(obs, 4)
		base, errBase := calculator.MovingAverage(obs[:len(obs)-52], 4)
		if errCur == nil && errBase == nil && base != 0 {
			r.ClaimsVelocityYoY = model.Float((cur - base) / base * 100.0)
		}
	}

	if obs := c.series(seriesPMI, 3); len(obs) >= 1 {
		r.PMI = model.Float(obs[len(obs)-1].Value)
		if len(obs) >= 2 {
			r.PMIPrev = model.Float(obs[len(obs)-2].Value)
		}
	}

	r.YieldCurve10Y2Y = c.latest(seriesCurve10Y2Y, 5)
	r.YieldCurve10Y3M = c.latest(seriesCurve10Y3M, 5)
	r.ConsumerSentiment = c.latest(seriesSentiment, 3)
}

func (c *Collector) collectCredit(cr *model.CreditIndicators) {
	// FRED publishes OAS in percent; the ladders work in basis points.
	if obs := c.series(seriesHYSpread, 30); len(obs) > 0 {
		cr.HYSpread = model.Float(obs[len(obs)-1].Value * 100.0)
		if slope, err := calculator.SlopePerDay(obs, 20); err == nil {
			cr.HYSpreadVelocity20D = model.Float(slope * 100.0)
		}
	}
	if v := c.latest(seriesIGSpread, 5); v != nil {
		cr.IGSpreadBBB = model.Float(*v * 100.0)
	}
	cr.TEDSpread = c.latest(seriesTEDSpread, 5)
	cr.LendingStandards = c.latest(seriesLending, 2)
}

func (c *Collector) collectValuation(v *model.ValuationIndicators) {
	if c.shillerPath != "" {
		if data, err := LoadShiller(c.shillerPath); err != nil {
			c.log.Warn().Err(err).Str("path", c.shillerPath).Msg("shiller dataset unavailable")
		} else {
			v.ShillerCAPE = data.CAPE
			v.ShillerEarnings = data.Earnings
		}
	}

	v.BuffettRatio = c.latest(seriesBuffett, 2)
	// Forward P/E has no free upstream; stays nil unless supplied manually.
	v.NewHomeSales = c.latest(seriesNewHomeSales, 2)
	v.MortgageRate30Y = c.latest(seriesMortgage30Y, 3)
}

func (c *Collector) collectLiquidity(l *model.LiquidityIndicators) {
	if obs := c.series(seriesFedFunds, 9); len(obs) > 0 {
		l.FedFundsRate = model.Float(obs[len(obs)-1].Value)
		if diff, err := calculator.RateChange(obs, 6); err == nil {
			l.FedFundsVelocity6M = model.Float(diff)
		}
	}
	if obs := c.series(seriesCPI, 14); len(obs) > 0 {
		if pct, err := calculator.PercentChange(obs, 12); err == nil {
			l.CPIInflationYoY = model.Float(pct)
		}
	}
	if obs := c.series(seriesM2, 14); len(obs) > 0 {
		if pct, err := calculator.PercentChange(obs, 12); err == nil {
			l.M2GrowthYoY = model.Float(pct)
		}
	}
	l.VIX = c.latest(seriesVIX, 5)
}

// series fetches a series and logs the failure instead of propagating it.
func (c *Collector) series(id string, limit int) []model.Observation {
	obs, err := c.fetcher.FetchSeries(id, limit)
	if err != nil {
		c.log.Warn().Err(err).Str("series", id).Str("source", c.fetcher.Name()).
			Msg("series unavailable, indicator will be null")
		return nil
	}
	return obs
}

func (c *Collector) latest(id string, limit int) *float64 {
	obs := c.series(id, limit)
	if len(obs) == 0 {
		return nil
	}
	return model.Float(obs[len(obs)-1].Value)
}
