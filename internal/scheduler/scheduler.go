package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"aegis/internal/alert"
	"aegis/internal/collector"
	"aegis/internal/model"
	"aegis/internal/notifier"
	"aegis/internal/recorder"
	"aegis/internal/risk"
)

// How many prior snapshots to load for the warning-rule window. The
// earnings-recession rule looks back 12 periods, so with the current
// snapshot appended the window holds 13.
const windowSnapshots = 12

// Scheduler manages the cron tasks and the assessment pipeline.
type Scheduler struct {
	Cron       *cron.Cron
	Collector  *collector.Collector
	Aggregator *risk.Aggregator
	Alerts     *alert.Logic
	Notifier   *notifier.TelegramNotifier
	Recorder   recorder.Recorder
	Ctx        context.Context
	log        zerolog.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, agg *risk.Aggregator,
	al *alert.Logic, tn *notifier.TelegramNotifier, rec recorder.Recorder, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Collector:  col,
		Aggregator: agg,
		Alerts:     al,
		Notifier:   tn,
		Recorder:   rec,
		Ctx:        ctx,
		log:        log.With().Str("component", "scheduler").Logger(),
	}
}

// RegisterAll registers the daily update and the weekly report.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

// RunUpdateNow executes the daily pipeline immediately (manual trigger).
func (s *Scheduler) RunUpdateNow() {
	s.dailyTask()
}

// dailyTask runs the full pipeline: collect, assess against history, record,
// then alert only when the decision rules say so.
func (s *Scheduler) dailyTask() {
	s.log.Info().Msg("running daily update")

	a, _, history, err := s.assess(true)
	if err != nil {
		s.trySend(fmt.Sprintf("❌ Aegis update failed: %v", err))
		return
	}

	decision := s.Alerts.Evaluate(a, history)
	if !decision.ShouldAlert {
		return
	}
	s.trySend(notifier.FormatAlert(a, decision))
	if err := s.Recorder.RecordAlert(&recorder.AlertEvent{
		Tier:    decision.Tier,
		Reason:  decision.Reason,
		Message: strings.Join(decision.Triggers, "; "),
	}); err != nil {
		s.log.Error().Err(err).Msg("record alert")
	}
}

// weeklyTask sends the full report regardless of alert state.
func (s *Scheduler) weeklyTask() {
	s.log.Info().Msg("running weekly report")

	a, trends, _, err := s.assess(false)
	if err != nil {
		s.trySend(fmt.Sprintf("❌ Aegis weekly report failed: %v", err))
		return
	}
	s.trySend(notifier.FormatAssessment(a, trends))
}

// assess collects a fresh indicator set, builds the history window and runs
// the engine. With record set, the snapshot and assessment are persisted.
// The returned history holds only runs prior to this one.
func (s *Scheduler) assess(record bool) (*model.Assessment, alert.Trends, []recorder.ScoreRecord, error) {
	set := s.Collector.Collect()

	window, err := s.Recorder.RecentIndicators(windowSnapshots)
	if err != nil {
		s.log.Error().Err(err).Msg("load indicator window")
		window = nil
	}
	window = append(window, set)

	a, err := s.Aggregator.Assess(set, window)
	if err != nil {
		return nil, alert.Trends{}, nil, fmt.Errorf("assess: %w", err)
	}

	history, err := s.Recorder.RecentScores(90)
	if err != nil {
		s.log.Error().Err(err).Msg("load score history")
	}
	trends := alert.ComputeTrends(a, history)

	if record {
		if err := s.Recorder.RecordIndicators(set); err != nil {
			s.log.Error().Err(err).Msg("record indicators")
		}
		if err := s.Recorder.RecordAssessment(a); err != nil {
			s.log.Error().Err(err).Msg("record assessment")
		}
	}
	return a, trends, history, nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/risk", "/update":
		a, trends, _, err := s.assess(false)
		if err != nil {
			return fmt.Sprintf("assessment failed: %v", err)
		}
		return notifier.FormatAssessment(a, trends)
	case "/status":
		records, err := s.Recorder.RecentScores(1)
		if err != nil || len(records) == 0 {
			return "no recorded assessments yet, try /risk"
		}
		r := records[len(records)-1]
		return fmt.Sprintf("Latest assessment: %.2f / 10 (%s) at %s",
			r.Overall, r.Tier, r.Timestamp.Format("2006-01-02 15:04"))
	default:
		return "Commands:\n• /risk - run an assessment now\n• /status - latest recorded score\n• /update - alias for /risk"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.log.Error().Err(err).Msg("send notification")
	}
}
