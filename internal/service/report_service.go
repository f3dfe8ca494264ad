// Package service wires the results pipeline to its sources and sinks.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/track-report/internal/chart"
	"github.com/yourusername/track-report/internal/datasource"
	"github.com/yourusername/track-report/internal/logger"
	"github.com/yourusername/track-report/internal/metrics"
	"github.com/yourusername/track-report/internal/models"
	"github.com/yourusername/track-report/internal/report"
	"github.com/yourusername/track-report/internal/results"
	"github.com/yourusername/track-report/internal/roster"
)

// DocumentSource serves raw athlete documents
type DocumentSource interface {
	Fetch(ctx context.Context, athlete roster.Athlete) ([]byte, datasource.Layer, error)
	Refresh(ctx context.Context, athlete roster.Athlete) ([]byte, error)
}

// ReportSink persists rendered reports
type ReportSink interface {
	Write(compactName string, r report.Report, overwrite bool) (string, error)
	RelativeImage(image string) string
}

// Options carries report presentation settings
type Options struct {
	ImageDir   string
	School     string
	Sport      string
	Title      string
	Logo       string
	Stylesheet string
}

// GenerateResult describes one generated report
type GenerateResult struct {
	RunID     string
	Athlete   roster.Athlete
	Path      string
	Summaries []EventSummary
}

// ReportService loads athlete documents, analyzes events and writes reports
type ReportService struct {
	roster   *roster.Roster
	source   DocumentSource
	charts   chart.Sink
	reports  ReportSink
	opts     Options
	logger   *logrus.Entry
	pipeline *logger.PipelineLogger
	audit    *logger.AuditLogger
	now      func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	r *roster.Roster,
	source DocumentSource,
	charts chart.Sink,
	reports ReportSink,
	opts Options,
	log *logrus.Logger,
) *ReportService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ReportService{
		roster:   r,
		source:   source,
		charts:   charts,
		reports:  reports,
		opts:     opts,
		logger:   log.WithField("component", "report_service"),
		pipeline: logger.NewPipelineLogger(log),
		audit:    logger.NewAuditLogger(log),
		now:      time.Now,
	}
}

// Roster returns the athletes the service knows about
func (s *ReportService) Roster() *roster.Roster {
	return s.roster
}

// Load resolves an athlete and decodes their document
func (s *ReportService) Load(ctx context.Context, name string) (roster.Athlete, *models.Document, error) {
	athlete, err := s.roster.Lookup(name)
	if err != nil {
		return roster.Athlete{}, nil, err
	}

	data, layer, err := s.source.Fetch(ctx, athlete)
	if err != nil {
		return athlete, nil, fmt.Errorf("failed to fetch document for %s: %w", athlete.Name, err)
	}

	doc, err := models.DecodeDocument(data)
	if err != nil {
		return athlete, nil, fmt.Errorf("document for %s: %w", athlete.Name, err)
	}

	s.logger.WithFields(logrus.Fields{
		"athlete": athlete.Name,
		"layer":   layer,
		"meets":   len(doc.Meets),
		"results": len(doc.Results),
	}).Debug("Loaded athlete document")

	return athlete, doc, nil
}

// Analyze runs the results pipeline for each event in order
func (s *ReportService) Analyze(doc *models.Document, season string, events []models.EventCategory) []EventSummary {
	named := results.MeetsForYear(doc, season, results.ByName)
	dated := results.MeetsForYear(doc, season, results.ByDate)

	var all []models.RaceResult
	if doc != nil {
		all = doc.Results
	}

	summaries := make([]EventSummary, 0, len(events))
	for _, ev := range events {
		filtered := results.ByEvent(all, ev.ID)
		sum := EventSummary{
			Event:     ev,
			Named:     results.Associate(filtered, named),
			Dated:     results.Associate(filtered, dated),
			Unmatched: results.Unmatched(filtered, named),
		}
		sum.Undated = results.Unmatched(filtered, dated) - sum.Unmatched

		best := results.Summarize(sum.Named)
		sum.Fastest, sum.Found = best.Fastest, best.Found
		sum.AboveFloor = best.AboveFloor
		sum.NonFinish, sum.Malformed = best.NonFinish, best.Malformed
		sum.Improvement, sum.HasImprovement = results.Improvement(sum.Dated)

		metrics.RecordEventAnalyzed(ev.Short, sum.Found)
		metrics.RecordResultsSkipped("non_finish", best.NonFinish)
		metrics.RecordResultsSkipped("malformed", best.Malformed)
		metrics.RecordResultsSkipped("other", best.Other)
		metrics.RecordResultsSkipped("unknown_meet", sum.Unmatched)
		metrics.RecordResultsSkipped("undated_meet", sum.Undated)

		summaries = append(summaries, sum)
	}
	return summaries
}

// Summaries loads an athlete and analyzes the given events
func (s *ReportService) Summaries(ctx context.Context, name, season string, events []models.EventCategory) (roster.Athlete, []EventSummary, error) {
	athlete, doc, err := s.Load(ctx, name)
	if err != nil {
		return athlete, nil, err
	}
	summaries := s.Analyze(doc, season, events)
	for _, sum := range summaries {
		s.pipeline.LogFastest(athlete.Name, sum.Event.Label, sum.Fastest.Key, sum.Fastest.Result, sum.Found)
	}
	return athlete, summaries, nil
}

// Generate analyzes an athlete's season, renders charts and writes the HTML report
func (s *ReportService) Generate(ctx context.Context, name, season string, events []models.EventCategory, overwrite bool) (*GenerateResult, error) {
	runID := uuid.NewString()
	log := s.logger.WithField("run_id", runID)

	athlete, summaries, err := s.Summaries(ctx, name, season, events)
	if err != nil {
		return nil, err
	}
	log = log.WithField("athlete", athlete.Name)

	page := report.Report{
		RunID:      runID,
		Athlete:    athlete.Name,
		Season:     season,
		School:     s.opts.School,
		Sport:      s.opts.Sport,
		Title:      s.opts.Title,
		Logo:       s.opts.Logo,
		Stylesheet: s.opts.Stylesheet,
		Generated:  s.now(),
		Events:     make([]report.Event, 0, len(summaries)),
	}

	for _, sum := range summaries {
		section := report.Event{
			Title:       sum.Event.Label,
			Results:     sum.Named,
			Improvement: sum.ImprovementText(),
		}
		if sum.Found {
			section.Fastest = sum.Fastest.String()
		}
		if image := s.renderChart(athlete, sum); image != "" {
			section.Image = s.reports.RelativeImage(image)
		}
		page.Events = append(page.Events, section)
	}

	path, err := s.reports.Write(athlete.CompactName(), page, overwrite)
	if err != nil {
		return nil, err
	}

	metrics.RecordReportGenerated()
	s.audit.LogReportWritten(runID, athlete.Name, path, overwrite, page.Generated)
	log.WithField("path", path).Info("Report generated")

	return &GenerateResult{
		RunID:     runID,
		Athlete:   athlete,
		Path:      path,
		Summaries: summaries,
	}, nil
}

// Chart draws one event's progression and returns the image path.
// chart.ErrNotEnoughPoints is returned when fewer than two usable results exist.
func (s *ReportService) Chart(athlete roster.Athlete, sum EventSummary) (string, error) {
	points := chart.PointsFrom(sum.Dated)
	path := chart.ImagePath(s.opts.ImageDir, athlete.CompactName(), sum.Event)

	if err := s.charts.Render(sum.Event.Label, points, path); err != nil {
		if errors.Is(err, chart.ErrNotEnoughPoints) {
			metrics.RecordChart("skipped")
			s.pipeline.LogChartSkipped(sum.Event.Label, len(points))
		} else {
			metrics.RecordChart("failed")
		}
		return "", err
	}

	metrics.RecordChart("rendered")
	s.pipeline.LogChartRendered(sum.Event.Label, path, len(points))
	return path, nil
}

// renderChart is Chart for report generation: failures only omit the image
func (s *ReportService) renderChart(athlete roster.Athlete, sum EventSummary) string {
	path, err := s.Chart(athlete, sum)
	if err != nil && !errors.Is(err, chart.ErrNotEnoughPoints) {
		s.logger.WithError(err).WithField("event", sum.Event.Label).Warn("Chart rendering failed")
	}
	return path
}

// Refresh re-downloads an athlete's document, bypassing the caches
func (s *ReportService) Refresh(ctx context.Context, name string) (roster.Athlete, error) {
	athlete, err := s.roster.Lookup(name)
	if err != nil {
		return roster.Athlete{}, err
	}
	data, err := s.source.Refresh(ctx, athlete)
	if err != nil {
		return athlete, fmt.Errorf("failed to refresh %s: %w", athlete.Name, err)
	}
	if _, err := models.DecodeDocument(data); err != nil {
		return athlete, fmt.Errorf("refreshed document for %s: %w", athlete.Name, err)
	}
	return athlete, nil
}
