package recorder

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"aegis/internal/model"
)

// SQLiteRecorder persists history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read while
	// the daemon writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{
		db:  db,
		log: log.With().Str("component", "recorder").Logger(),
	}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS assessments (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp         INTEGER NOT NULL,
			overall_score     REAL NOT NULL,
			tier              TEXT NOT NULL,
			confidence_score  REAL,
			confidence_level  TEXT,
			recession_score   REAL,
			credit_score      REAL,
			valuation_score   REAL,
			liquidity_score   REAL,
			positioning_score REAL,
			excluded          TEXT,
			active_warnings   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assessments_ts ON assessments(timestamp)`,

		`CREATE TABLE IF NOT EXISTS raw_indicators (
			id                     INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp              INTEGER NOT NULL,
			claims_velocity_yoy    REAL,
			pmi                    REAL,
			pmi_prev               REAL,
			yield_curve_10y2y      REAL,
			yield_curve_10y3m      REAL,
			consumer_sentiment     REAL,
			hy_spread              REAL,
			hy_spread_velocity_20d REAL,
			ig_spread_bbb          REAL,
			ted_spread             REAL,
			lending_standards      REAL,
			shiller_cape           REAL,
			buffett_ratio          REAL,
			forward_pe             REAL,
			shiller_earnings       REAL,
			new_home_sales         REAL,
			mortgage_rate_30y      REAL,
			fed_funds_rate         REAL,
			fed_funds_velocity_6m  REAL,
			cpi_inflation_yoy      REAL,
			m2_growth_yoy          REAL,
			vix                    REAL,
			vix_proxy              REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_raw_ts ON raw_indicators(timestamp)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			tier      TEXT,
			reason    TEXT,
			message   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_ts ON alerts(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAssessment(a *model.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO assessments
		(timestamp, overall_score, tier, confidence_score, confidence_level,
		 recession_score, credit_score, valuation_score, liquidity_score,
		 positioning_score, excluded, active_warnings)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		a.GeneratedAt.Unix(), a.OverallScore, string(a.Tier),
		a.Confidence.Score, string(a.Confidence.Level),
		dimScore(a, model.DimRecession), dimScore(a, model.DimCredit),
		dimScore(a, model.DimValuation), dimScore(a, model.DimLiquidity),
		dimScore(a, model.DimPositioning),
		strings.Join(a.ExcludedDimensions, ","), len(a.ActiveWarnings()),
	)
	return err
}

func (r *SQLiteRecorder) RecordIndicators(set model.IndicatorSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO raw_indicators
		(timestamp, claims_velocity_yoy, pmi, pmi_prev, yield_curve_10y2y,
		 yield_curve_10y3m, consumer_sentiment, hy_spread,
		 hy_spread_velocity_20d, ig_spread_bbb, ted_spread, lending_standards,
		 shiller_cape, buffett_ratio, forward_pe, shiller_earnings,
		 new_home_sales, mortgage_rate_30y, fed_funds_rate,
		 fed_funds_velocity_6m, cpi_inflation_yoy, m2_growth_yoy, vix,
		 vix_proxy)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(),
		nullf(set.Recession.ClaimsVelocityYoY), nullf(set.Recession.PMI),
		nullf(set.Recession.PMIPrev), nullf(set.Recession.YieldCurve10Y2Y),
		nullf(set.Recession.YieldCurve10Y3M), nullf(set.Recession.ConsumerSentiment),
		nullf(set.Credit.HYSpread), nullf(set.Credit.HYSpreadVelocity20D),
		nullf(set.Credit.IGSpreadBBB), nullf(set.Credit.TEDSpread),
		nullf(set.Credit.LendingStandards),
		nullf(set.Valuation.ShillerCAPE), nullf(set.Valuation.BuffettRatio),
		nullf(set.Valuation.ForwardPE), nullf(set.Valuation.ShillerEarnings),
		nullf(set.Valuation.NewHomeSales), nullf(set.Valuation.MortgageRate30Y),
		nullf(set.Liquidity.FedFundsRate), nullf(set.Liquidity.FedFundsVelocity6M),
		nullf(set.Liquidity.CPIInflationYoY), nullf(set.Liquidity.M2GrowthYoY),
		nullf(set.Liquidity.VIX),
		nullf(set.Positioning.VIXProxy),
	)
	return err
}

func (r *SQLiteRecorder) RecordAlert(evt *AlertEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := evt.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO alerts (timestamp, tier, reason, message)
		VALUES (?,?,?,?)`,
		ts.Unix(), string(evt.Tier), evt.Reason, evt.Message,
	)
	return err
}

// RecentScores returns the newest n assessments ordered oldest to newest.
func (r *SQLiteRecorder) RecentScores(n int) ([]ScoreRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT timestamp, overall_score, tier,
		recession_score, credit_score, valuation_score, liquidity_score,
		positioning_score
		FROM assessments ORDER BY timestamp DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query recent scores: %w", err)
	}
	defer rows.Close()

	var records []ScoreRecord
	for rows.Next() {
		var ts int64
		var tier string
		var rec ScoreRecord
		var dims [5]sql.NullFloat64
		if err := rows.Scan(&ts, &rec.Overall, &tier,
			&dims[0], &dims[1], &dims[2], &dims[3], &dims[4]); err != nil {
			return nil, fmt.Errorf("scan score record: %w", err)
		}
		rec.Timestamp = time.Unix(ts, 0)
		rec.Tier = model.Tier(tier)
		rec.Dimension = make(map[string]float64)
		for i, dim := range model.Dimensions() {
			if dims[i].Valid {
				rec.Dimension[dim] = dims[i].Float64
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	reverse(records)
	return records, nil
}

// RecentIndicators returns the newest n raw snapshots ordered oldest to
// newest, ready to serve as the warning-rule history window.
func (r *SQLiteRecorder) RecentIndicators(n int) ([]model.IndicatorSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT claims_velocity_yoy, pmi, pmi_prev,
		yield_curve_10y2y, yield_curve_10y3m, consumer_sentiment, hy_spread,
		hy_spread_velocity_20d, ig_spread_bbb, ted_spread, lending_standards,
		shiller_cape, buffett_ratio, forward_pe, shiller_earnings,
		new_home_sales, mortgage_rate_30y, fed_funds_rate,
		fed_funds_velocity_6m, cpi_inflation_yoy, m2_growth_yoy, vix, vix_proxy
		FROM raw_indicators ORDER BY timestamp DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query recent indicators: %w", err)
	}
	defer rows.Close()

	var sets []model.IndicatorSet
	for rows.Next() {
		var v [23]sql.NullFloat64
		dest := make([]interface{}, len(v))
		for i := range v {
			dest[i] = &v[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan indicator snapshot: %w", err)
		}
		sets = append(sets, model.IndicatorSet{
			Recession: model.RecessionIndicators{
				ClaimsVelocityYoY: fptr(v[0]),
				PMI:               fptr(v[1]),
				PMIPrev:           fptr(v[2]),
				YieldCurve10Y2Y:   fptr(v[3]),
				YieldCurve10Y3M:   fptr(v[4]),
				ConsumerSentiment: fptr(v[5]),
			},
			Credit: model.CreditIndicators{
				HYSpread:            fptr(v[6]),
				HYSpreadVelocity20D: fptr(v[7]),
				IGSpreadBBB:         fptr(v[8]),
				TEDSpread:           fptr(v[9]),
				LendingStandards:    fptr(v[10]),
			},
			Valuation: model.ValuationIndicators{
				ShillerCAPE:     fptr(v[11]),
				BuffettRatio:    fptr(v[12]),
				ForwardPE:       fptr(v[13]),
				ShillerEarnings: fptr(v[14]),
				NewHomeSales:    fptr(v[15]),
				MortgageRate30Y: fptr(v[16]),
			},
			Liquidity: model.LiquidityIndicators{
				FedFundsRate:       fptr(v[17]),
				FedFundsVelocity6M: fptr(v[18]),
				CPIInflationYoY:    fptr(v[19]),
				M2GrowthYoY:        fptr(v[20]),
				VIX:                fptr(v[21]),
			},
			Positioning: model.PositioningIndicators{
				VIXProxy: fptr(v[22]),
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	reverse(sets)
	return sets, nil
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}

// dimScore returns the dimension's score or NULL when it was excluded.
func dimScore(a *model.Assessment, dim string) sql.NullFloat64 {
	s, ok := a.DimensionScores[dim]
	return sql.NullFloat64{Float64: s, Valid: ok}
}

func nullf(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
