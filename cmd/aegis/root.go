package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"aegis/internal/alert"
	"aegis/internal/collector"
	"aegis/internal/config"
	"aegis/internal/notifier"
	"aegis/internal/recorder"
	"aegis/internal/risk"
	"aegis/internal/scheduler"
)

func Execute(ctx context.Context) error {
	var cfgPath string

	root := &cobra.Command{
		Use:   "aegis",
		Short: "Aegis market risk monitor",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "path to config.yaml")

	root.AddCommand(serveCmd(ctx, &cfgPath))
	root.AddCommand(updateCmd(ctx, &cfgPath))
	root.AddCommand(statusCmd(&cfgPath))

	return root.ExecuteContext(ctx)
}

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

// app bundles the wired components shared by all commands.
type app struct {
	cfg   *config.Config
	sched *scheduler.Scheduler
	rec   recorder.Recorder
}

func buildApp(ctx context.Context, cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	logger := log.Logger

	fetcher := collector.NewFREDFetcher(cfg.FRED.APIKey, cfg.Proxy, cfg.FRED.CacheDir,
		time.Duration(cfg.FRED.CacheTTLHours)*time.Hour)
	col := collector.NewCollector(fetcher, cfg.Shiller.CSVPath, logger)

	agg, err := risk.NewAggregator(risk.Config{
		Weights:         cfg.Scoring.Weights,
		YellowThreshold: cfg.Scoring.YellowThreshold,
		RedThreshold:    cfg.Scoring.RedThreshold,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("init aggregator: %w", err)
	}

	al := alert.NewLogic(alert.Config{
		RedScore:        cfg.Alerts.RedScore,
		YellowScore:     cfg.Alerts.YellowScore,
		RapidRise:       cfg.Alerts.RapidRise,
		ExtremeDimScore: cfg.Alerts.ExtremeDimScore,
		ExtremeDimCount: cfg.Alerts.ExtremeDimCount,
	}, logger)

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger)

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("sqlite recorder unavailable, history disabled")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	return &app{
		cfg:   cfg,
		sched: scheduler.NewScheduler(ctx, col, agg, al, tn, rec, logger),
		rec:   rec,
	}, nil
}

func serveCmd(ctx context.Context, cfgPath *string) *cobra.Command {
	var runOnStart bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the monitoring daemon with scheduled updates",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer a.rec.Close()

			if err := a.sched.RegisterAll(a.cfg.Schedule.DailyCron, a.cfg.Schedule.WeeklyCron); err != nil {
				return fmt.Errorf("register cron tasks: %w", err)
			}
			a.sched.Start()
			defer a.sched.Stop()

			if a.cfg.Telegram.BotToken != "" {
				go a.sched.Notifier.StartPolling(ctx, a.sched.HandleCommand)
			}

			if runOnStart || os.Getenv("RUN_ON_START") == "true" {
				go a.sched.RunUpdateNow()
			}

			log.Info().Str("daily", a.cfg.Schedule.DailyCron).
				Str("weekly", a.cfg.Schedule.WeeklyCron).Msg("aegis running")
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "run one update immediately")
	return cmd
}

func updateCmd(ctx context.Context, cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Collect, assess and record one snapshot now",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer a.rec.Close()

			a.sched.RunUpdateNow()
			fmt.Println(a.sched.HandleCommand("/status"))
			return nil
		},
	}
}

func statusCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the latest recorded assessment",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context(), *cfgPath)
			if err != nil {
				return err
			}
			defer a.rec.Close()

			records, err := a.rec.RecentScores(1)
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
			if len(records) == 0 {
				fmt.Println("no recorded assessments yet, run `aegis update` first")
				return nil
			}
			r := records[0]
			fmt.Printf("%s  overall %.2f / 10  tier %s\n",
				r.Timestamp.Format("2006-01-02 15:04"), r.Overall, r.Tier)
			for dim, score := range r.Dimension {
				fmt.Printf("  %-12s %.2f\n", dim, score)
			}
			return nil
		},
	}
}
