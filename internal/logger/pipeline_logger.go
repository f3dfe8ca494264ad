// Package logger provides pipeline-specific logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// PipelineLogger provides dedicated logging for the results pipeline.
type PipelineLogger struct {
	*logrus.Entry
}

// NewPipelineLogger creates a new pipeline logger.
func NewPipelineLogger(baseLogger *logrus.Logger) *PipelineLogger {
	return &PipelineLogger{
		Entry: baseLogger.WithField("component", "pipeline"),
	}
}

// LogDocumentFetched logs a retrieved athlete document.
func (pl *PipelineLogger) LogDocumentFetched(athleteID, source string, size int, duration time.Duration) {
	pl.WithFields(logrus.Fields{
		"athlete_id":  athleteID,
		"source":      source,
		"bytes":       size,
		"duration_ms": duration.Milliseconds(),
	}).Info("Athlete document fetched")
}

// LogResultSkipped logs a result excluded from the fastest-time scan.
func (pl *PipelineLogger) LogResultSkipped(athlete, event, result, reason string) {
	pl.WithFields(logrus.Fields{
		"athlete": athlete,
		"event":   event,
		"result":  result,
		"reason":  reason,
	}).Debug("Result skipped")
}

// LogFastest logs the outcome of a fastest-time scan.
func (pl *PipelineLogger) LogFastest(athlete, event, meet, result string, found bool) {
	entry := pl.WithFields(logrus.Fields{
		"athlete": athlete,
		"event":   event,
	})
	if !found {
		entry.Info("No usable result for event")
		return
	}
	entry.WithFields(logrus.Fields{
		"meet":   meet,
		"result": result,
	}).Info("Fastest result found")
}

// LogChartRendered logs a progression chart written to disk.
func (pl *PipelineLogger) LogChartRendered(title, path string, points int) {
	pl.WithFields(logrus.Fields{
		"title":  title,
		"path":   path,
		"points": points,
	}).Info("Chart rendered")
}

// LogChartSkipped logs an event with too few results to chart.
func (pl *PipelineLogger) LogChartSkipped(title string, points int) {
	pl.WithFields(logrus.Fields{
		"title":  title,
		"points": points,
	}).Warn("Not enough results to chart")
}
