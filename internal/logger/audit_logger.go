// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides an audit trail of files written by the tool.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogReportWritten logs a generated report.
func (al *AuditLogger) LogReportWritten(runID, athlete, path string, overwrote bool, timestamp time.Time) {
	al.WithFields(logrus.Fields{
		"run_id":    runID,
		"athlete":   athlete,
		"path":      path,
		"overwrote": overwrote,
		"timestamp": timestamp.Unix(),
	}).Info("Report written")
}

// LogCacheWrite logs an athlete document stored in the disk cache.
func (al *AuditLogger) LogCacheWrite(athleteID, path string, size int) {
	al.WithFields(logrus.Fields{
		"athlete_id": athleteID,
		"path":       path,
		"bytes":      size,
	}).Info("Cache file written")
}

// LogCacheRefresh logs a forced re-download that bypassed the caches.
func (al *AuditLogger) LogCacheRefresh(runID string, athletes int, failures int) {
	fields := logrus.Fields{
		"run_id":   runID,
		"athletes": athletes,
		"failures": failures,
	}
	if failures > 0 {
		al.WithFields(fields).Warn("Cache refresh completed with failures")
		return
	}
	al.WithFields(fields).Info("Cache refresh completed")
}
