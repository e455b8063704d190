package risk

import (
	"fmt"

	"aegis/internal/model"
)

// Composite warning rules read raw indicators directly, bypassing the
// dimension scores: each detects a specific cross-indicator crisis pattern,
// not additive risk. Every rule is total - any missing input or short
// history window degrades to an inactive warning, never an error.
const (
	capeExtremeCutoff      = 30.0  // CAPE, with Buffett, preceded 2000/2021 tops
	buffettExtremeCutoff   = 120.0 // market cap / GDP percent
	doubleInversionSpread  = 600.0 // HY spread stress level, bps
	realRateCutoff         = 2.0   // fed funds minus inflation, pp
	realRateRiseCutoff     = 1.0   // 6-period fed funds rise, pp
	earningsDeclineCutoff  = -10.0 // 12-period trailing earnings change, %
	earningsLookback       = 12    // periods back; needs a 13-snapshot window
	housingDeclineCutoff   = -20.0 // 6-period new home sales change, %
	housingLookback        = 6     // periods back; needs a 7-snapshot window
	housingMortgageCutoff  = 6.0   // 30-year mortgage rate, %
)

// lookbackSnapshot returns the snapshot `periods` before the end of the
// window (ordered oldest to newest, ending at the current period), or nil
// when the window is absent or too short.
func lookbackSnapshot(window []model.IndicatorSet, periods int) *model.IndicatorSet {
	idx := len(window) - 1 - periods
	if idx < 0 {
		return nil
	}
	return &window[idx]
}

// checkValuationExtreme fires when CAPE and the Buffett indicator exceed
// their calibrated cutoffs simultaneously. Either alone is a stretched
// market; both together marked the 2000 and 2021 peaks.
func checkValuationExtreme(v model.ValuationIndicators) model.Warning {
	if v.ShillerCAPE == nil || v.BuffettRatio == nil {
		return model.Warning{}
	}
	cape, buffett := *v.ShillerCAPE, *v.BuffettRatio
	if cape <= capeExtremeCutoff || buffett <= buffettExtremeCutoff {
		return model.Warning{}
	}
	return model.Warning{
		Active: true,
		Level:  "EXTREME",
		Message: fmt.Sprintf(
			"EXTREME: Valuations at historic extremes - CAPE %.1f (cutoff %.0f) with Market Cap/GDP %.0f%% (cutoff %.0f%%). Both exceeded together ahead of the 2000 dot-com top and the 2021 peak.",
			cape, capeExtremeCutoff, buffett, buffettExtremeCutoff),
		Values: map[string]float64{"cape": cape, "buffett_ratio": buffett},
	}
}

// checkDoubleInversion fires when the 10Y-2Y curve is inverted while HY
// spreads sit above stress levels: recession signal plus credit stress.
func checkDoubleInversion(r model.RecessionIndicators, c model.CreditIndicators) model.Warning {
	if r.YieldCurve10Y2Y == nil || c.HYSpread == nil {
		return model.Warning{}
	}
	curve, hy := *r.YieldCurve10Y2Y, *c.HYSpread
	if curve >= 0 || hy <= doubleInversionSpread {
		return model.Warning{}
	}
	return model.Warning{
		Active: true,
		Level:  "SEVERE",
		Message: fmt.Sprintf(
			"SEVERE: Yield curve inverted (%.2f%%) with HY spreads at stress levels (%.0f bps). This combination appeared ahead of the 2000 and 2007 market peaks.",
			curve, hy),
		Values: map[string]float64{"yield_curve_10y2y": curve, "hy_spread": hy},
	}
}

// checkRealRate fires when the real policy rate is restrictive and got
// there fast: a high fed funds rate relative to inflation after a rapid
// 6-period climb.
func checkRealRate(l model.LiquidityIndicators) model.Warning {
	if l.FedFundsRate == nil || l.CPIInflationYoY == nil || l.FedFundsVelocity6M == nil {
		return model.Warning{}
	}
	fed, inflation, rise := *l.FedFundsRate, *l.CPIInflationYoY, *l.FedFundsVelocity6M
	real := fed - inflation
	if real <= realRateCutoff || rise <= realRateRiseCutoff {
		return model.Warning{}
	}
	return model.Warning{
		Active: true,
		Level:  "HIGH",
		Message: fmt.Sprintf(
			"HIGH: Real rates restrictive - fed funds %.2f%% minus inflation %.1f%% leaves a %.1fpp real rate after a %+.1fpp rise in 6 months. Similar tightening preceded the 1994, 2018 Q4 and 2022 selloffs.",
			fed, inflation, real, rise),
		Values: map[string]float64{
			"real_rate":   real,
			"fed_funds":   fed,
			"inflation":   inflation,
			"velocity_6m": rise,
		},
	}
}

// checkEarningsRecession fires when trailing 12-month earnings have fallen
// more than 10% from 12 periods ago. Detects profit recessions during the
// decline; requires a 13-snapshot window and degrades to inactive without it.
func checkEarningsRecession(v model.ValuationIndicators, window []model.IndicatorSet) model.Warning {
	if v.ShillerEarnings == nil {
		return model.Warning{}
	}
	base := lookbackSnapshot(window, earningsLookback)
	if base == nil || base.Valuation.ShillerEarnings == nil {
		return model.Warning{}
	}
	cur, then := *v.ShillerEarnings, *base.Valuation.ShillerEarnings
	if then <= 0 {
		return model.Warning{}
	}
	decline := (cur - then) / then * 100
	if decline >= earningsDeclineCutoff {
		return model.Warning{}
	}
	return model.Warning{
		Active: true,
		Level:  "HIGH",
		Message: fmt.Sprintf(
			"HIGH: Earnings recession - trailing 12-month earnings down %.1f%% over 12 periods (%.1f from %.1f). Declines of this size marked 2001, 2008 and the 2015-16 profit recession.",
			decline, cur, then),
		Values: map[string]float64{
			"earnings_decline_pct": round2(decline),
			"earnings_current":     cur,
			"earnings_12p_ago":     then,
		},
	}
}

// checkHousingBubble fires when new home sales have collapsed over 6
// periods while mortgage rates sit above the affordability cutoff. Requires
// a 7-snapshot window.
func checkHousingBubble(v model.ValuationIndicators, window []model.IndicatorSet) model.Warning {
	if v.NewHomeSales == nil || v.MortgageRate30Y == nil {
		return model.Warning{}
	}
	base := lookbackSnapshot(window, housingLookback)
	if base == nil || base.Valuation.NewHomeSales == nil {
		return model.Warning{}
	}
	cur, then, mortgage := *v.NewHomeSales, *base.Valuation.NewHomeSales, *v.MortgageRate30Y
	if then <= 0 {
		return model.Warning{}
	}
	decline := (cur - then) / then * 100
	if decline >= housingDeclineCutoff || mortgage <= housingMortgageCutoff {
		return model.Warning{}
	}
	return model.Warning{
		Active: true,
		Level:  "HIGH",
		Message: fmt.Sprintf(
			"HIGH: Housing stress - new home sales down %.1f%% in 6 periods (%.0fk from %.0fk) with the 30-year mortgage at %.2f%%. The same mix appeared in 2007-08 and the 2022-23 freeze.",
			decline, cur, then, mortgage),
		Values: map[string]float64{
			"sales_decline_pct": round2(decline),
			"new_home_sales":    cur,
			"sales_6p_ago":      then,
			"mortgage_rate":     mortgage,
		},
	}
}
