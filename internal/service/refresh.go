package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RefreshStats tracks one pass over the roster
type RefreshStats struct {
	mu        sync.RWMutex
	RunID     string
	StartTime time.Time
	Duration  time.Duration
	Total     int
	Refreshed int
	Failed    map[string]error
}

func newRefreshStats(runID string, total int) *RefreshStats {
	return &RefreshStats{
		RunID:     runID,
		StartTime: time.Now(),
		Total:     total,
		Failed:    make(map[string]error),
	}
}

func (m *RefreshStats) recordSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Refreshed++
}

func (m *RefreshStats) recordFailure(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failed[name] = err
}

// Failures returns the number of athletes that could not be refreshed
func (m *RefreshStats) Failures() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Failed)
}

// String returns a formatted string representation of the stats
func (m *RefreshStats) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fmt.Sprintf("RefreshStats{Total=%d, Refreshed=%d, Failed=%d, Duration=%v}",
		m.Total, m.Refreshed, len(m.Failed), m.Duration)
}

// RefreshAll re-downloads every roster athlete in name order.
// Individual failures are collected; only context cancellation stops the pass.
func (s *ReportService) RefreshAll(ctx context.Context, runID string) (*RefreshStats, error) {
	athletes := s.roster.Athletes()
	stats := newRefreshStats(runID, len(athletes))

	for _, athlete := range athletes {
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(stats.StartTime)
			return stats, err
		}
		if _, err := s.Refresh(ctx, athlete.Name); err != nil {
			s.logger.WithError(err).WithField("athlete", athlete.Name).Warn("Refresh failed")
			stats.recordFailure(athlete.Name, err)
			continue
		}
		stats.recordSuccess()
	}

	stats.Duration = time.Since(stats.StartTime)
	s.audit.LogCacheRefresh(runID, stats.Total, stats.Failures())
	return stats, nil
}
