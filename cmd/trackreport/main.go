// Package main provides the trackreport command line tool.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/track-report/internal/chart"
	"github.com/yourusername/track-report/internal/config"
	"github.com/yourusername/track-report/internal/datasource"
	"github.com/yourusername/track-report/internal/logger"
	"github.com/yourusername/track-report/internal/metrics"
	"github.com/yourusername/track-report/internal/models"
	"github.com/yourusername/track-report/internal/report"
	"github.com/yourusername/track-report/internal/roster"
	"github.com/yourusername/track-report/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	offline    bool
	log        *logrus.Logger
	cfg        *config.Config
	source     *datasource.CachedSource
	svc        *service.ReportService
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultConfigPath, "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "Serve cached documents only")

	rootCmd.AddCommand(reportCmd, fastestCmd, fetchCmd, rosterCmd, browseCmd, interactiveCmd, watchCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:           "trackreport",
	Short:         "Season reports for track athletes",
	Long:          `Downloads athletic.net results for a roster of athletes and builds fastest-time summaries, progression charts and HTML season reports.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil || !cfg.Metrics.Enabled || cfg.Metrics.TextfilePath == "" {
			return nil
		}
		if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
			return fmt.Errorf("failed to write metrics textfile: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "trackreport %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if log != nil {
			log.WithError(err).Error("Command failed")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func loadConfig(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(ctx, cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	return config.Validate(cfg)
}

func setupDependencies() error {
	log = logger.NewLoggerWithOutput(cfg.App.LogLevel, cfg.App.Environment, os.Stderr)
	metrics.InitRegistry()

	team, err := roster.New(cfg.RosterAthletes())
	if err != nil {
		return fmt.Errorf("invalid roster: %w", err)
	}

	sourceType := datasource.AthleticNetSourceType
	if offline {
		sourceType = datasource.OfflineSourceType
	}
	source, err = datasource.NewFactory(cfg, log).Create(sourceType)
	if err != nil {
		return err
	}

	writer, err := report.NewWriter(cfg.Report.OutputDir)
	if err != nil {
		return err
	}

	svc = service.NewReportService(team, source, chart.NewPNGRenderer(), writer, service.Options{
		ImageDir:   cfg.Report.ImageDir,
		School:     cfg.Report.School,
		Sport:      cfg.Report.Sport,
		Title:      cfg.Report.Title,
		Logo:       cfg.Report.Logo,
		Stylesheet: cfg.Report.Stylesheet,
	}, log)

	logger.Component(log, "cli").WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"athletes":    team.Len(),
		"source":      sourceType,
	}).Debug("Dependencies ready")
	return nil
}

// athleteName joins positional args so unquoted names with spaces work
func athleteName(args []string) string {
	return strings.Join(args, " ")
}

// selectedEvents resolves --events, falling back to the configured list
func selectedEvents(flagEvents []string) ([]models.EventCategory, error) {
	if len(flagEvents) > 0 {
		return models.ParseEvents(flagEvents)
	}
	return models.ParseEvents(cfg.Report.Events)
}

// seasonOrDefault returns the --season flag or the configured season
func seasonOrDefault(season string) string {
	if season != "" {
		return season
	}
	return cfg.Report.Season
}
