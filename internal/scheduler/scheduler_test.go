package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestScheduleRefreshInvalidExpression(t *testing.T) {
	s := NewScheduler(time.Second, quietLogger())
	err := s.ScheduleRefresh("not a cron", "refresh", func(ctx context.Context) error { return nil })
	assert.Error(t, err)
	assert.Empty(t, s.Entries())
}

func TestStartWithoutJobs(t *testing.T) {
	s := NewScheduler(time.Second, quietLogger())
	assert.Error(t, s.Start())
	assert.False(t, s.IsRunning())
}

func TestStartStopLifecycle(t *testing.T) {
	s := NewScheduler(time.Second, quietLogger())
	require.NoError(t, s.ScheduleRefresh("@daily", "refresh", func(ctx context.Context) error { return nil }))
	assert.Len(t, s.Entries(), 1)
	assert.True(t, s.NextRun().IsZero())

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.Error(t, s.Start())
	assert.False(t, s.NextRun().IsZero())

	err := s.ScheduleRefresh("@hourly", "late", func(ctx context.Context) error { return nil })
	assert.Error(t, err)

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	assert.NoError(t, s.Stop())
}

func TestRunAppliesTimeout(t *testing.T) {
	s := NewScheduler(20*time.Millisecond, quietLogger())

	err := s.Run("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunReportsJobResult(t *testing.T) {
	s := NewScheduler(time.Second, quietLogger())

	calls := 0
	assert.NoError(t, s.Run("ok", func(ctx context.Context) error {
		calls++
		return nil
	}))
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	assert.ErrorIs(t, s.Run("bad", func(ctx context.Context) error { return boom }), boom)
}

func TestScheduledJobFires(t *testing.T) {
	s := NewScheduler(time.Second, quietLogger())
	fired := make(chan struct{}, 1)

	require.NoError(t, s.ScheduleRefresh("@every 1s", "tick", func(ctx context.Context) error {
		select {
		case fired <- struct{}{}:
		default:
		}
		return nil
	}))
	require.NoError(t, s.Start())
	defer s.Stop()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduled job did not run")
	}
}
