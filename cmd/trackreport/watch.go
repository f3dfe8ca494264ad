package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/track-report/internal/health"
	"github.com/yourusername/track-report/internal/metrics"
	"github.com/yourusername/track-report/internal/scheduler"
)

const defaultRefreshSchedule = "0 6 * * *"

var (
	watchSchedule   string
	watchJobTimeout time.Duration
)

func init() {
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "", "Cron expression for refreshes (defaults to schedule.refresh)")
	watchCmd.Flags().DurationVar(&watchJobTimeout, "job-timeout", 10*time.Minute, "Maximum duration of one refresh")
}

var watchCmd = &cobra.Command{
	Use:   "watch [athlete name]",
	Short: "Refresh documents and reports on a schedule",
	Long: `Refreshes cached documents on a cron schedule and regenerates reports.
With an athlete name only that athlete is refreshed, otherwise the whole roster.
Serves /health, /live, /ready and metrics while running.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if source.Offline() {
			return fmt.Errorf("watch needs network access; drop --offline")
		}

		spec := watchSchedule
		if spec == "" {
			spec = cfg.Schedule.Refresh
		}
		if spec == "" {
			spec = defaultRefreshSchedule
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		hs := health.NewServer(health.Config{
			ServiceName:    cfg.App.Name,
			Version:        Version,
			Port:           cfg.Schedule.HealthPort,
			MetricsPath:    metricsPath(),
			MetricsHandler: metrics.Handler(),
			Checks: []health.Check{
				{Name: "athletic_net", Fn: source.CheckUpstream},
				{Name: "cache_dir", Fn: source.CheckDisk},
			},
			Logger: log,
		})
		if err := hs.Start(ctx); err != nil {
			return fmt.Errorf("failed to start health server: %w", err)
		}

		job := refreshJob(args)
		sched := scheduler.NewScheduler(watchJobTimeout, log)

		if err := sched.Run("refresh", job); err != nil {
			log.WithError(err).Warn("Initial refresh failed; readiness waits for the next run")
		} else {
			hs.SetReady(true)
		}

		if err := sched.ScheduleRefresh(spec, "refresh", func(ctx context.Context) error {
			err := job(ctx)
			if err == nil {
				hs.SetReady(true)
			}
			return err
		}); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		log.WithField("next_run", sched.NextRun().Format(time.RFC3339)).Info("Watching for updates")

		<-ctx.Done()
		log.Info("Shutting down")
		return sched.Stop()
	},
}

// refreshJob refreshes one athlete, or the roster when no name is given, and rewrites reports
func refreshJob(args []string) scheduler.Job {
	name := athleteName(args)
	return func(ctx context.Context) error {
		events, err := selectedEvents(nil)
		if err != nil {
			return err
		}

		names := []string{name}
		if name == "" {
			stats, err := svc.RefreshAll(ctx, uuid.NewString())
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"run_id":    stats.RunID,
				"refreshed": stats.Refreshed,
				"failed":    stats.Failures(),
			}).Info(stats.String())
			names = names[:0]
			for _, a := range svc.Roster().Athletes() {
				if _, failed := stats.Failed[a.Name]; !failed {
					names = append(names, a.Name)
				}
			}
			if len(names) == 0 {
				return fmt.Errorf("no athletes refreshed")
			}
		} else if _, err := svc.Refresh(ctx, name); err != nil {
			return err
		}

		for _, n := range names {
			if _, err := svc.Generate(ctx, n, cfg.Report.Season, events, true); err != nil {
				return err
			}
		}
		return nil
	}
}

func metricsPath() string {
	if !cfg.Metrics.Enabled {
		return ""
	}
	if cfg.Metrics.Path == "" {
		return "/metrics"
	}
	return cfg.Metrics.Path
}
