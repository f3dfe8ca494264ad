package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/track-report/internal/config"
	"github.com/yourusername/track-report/internal/roster"
)

const sampleDocument = `{"meets":{"1":{"IDMeet":1,"MeetName":"Spring Invite","EndDate":"2022-04-01T00:00:00"}},"resultsTF":[]}`

var whitaker = roster.Athlete{Name: "David Whitaker", ID: "15714155"}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func testHTTPConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:           2 * time.Second,
		MaxRetries:        0,
		RetryWaitMin:      time.Millisecond,
		RetryWaitMax:      5 * time.Millisecond,
		RateLimit:         1000,
		CircuitBreakerMax: 5,
	}
}

func newTestClient(baseURL string, cfg HTTPClientConfig) *AthleticNetClient {
	return NewAthleticNetClient(NewRateLimitedHTTPClient(cfg, quietLogger()), AthleticNetConfig{
		BaseURL: baseURL,
		Sport:   "tf",
		Level:   4,
		Token:   "secret",
	}, quietLogger())
}

func TestAthleticNetClientFetchAthlete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/AthleteBio/GetAthleteBioData", r.URL.Path)
		assert.Equal(t, "15714155", r.URL.Query().Get("athleteId"))
		assert.Equal(t, "tf", r.URL.Query().Get("sport"))
		assert.Equal(t, "4", r.URL.Query().Get("level"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleDocument))
	}))
	defer server.Close()

	client := newTestClient(server.URL+"/api/v1/AthleteBio/GetAthleteBioData", testHTTPConfig())
	assert.Equal(t, "athletic.net", client.Name())

	data, err := client.FetchAthlete(context.Background(), "15714155")
	require.NoError(t, err)
	assert.JSONEq(t, sampleDocument, string(data))
}

func TestAthleticNetClientStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode string
		sentinel error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrCodeAuthenticationFailed, ErrAuthenticationFailed},
		{"not found", http.StatusNotFound, ErrCodeNotFound, ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, ErrCodeRateLimitExceeded, ErrRateLimitExceeded},
		{"server error", http.StatusInternalServerError, ErrCodeServerError, ErrServerError},
		{"teapot", http.StatusTeapot, ErrCodeServerError, ErrServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := newTestClient(server.URL, testHTTPConfig()).FetchAthlete(context.Background(), "1")
			require.Error(t, err)

			var dsErr DataSourceError
			require.True(t, errors.As(err, &dsErr))
			assert.Equal(t, tt.wantCode, dsErr.Code)
			assert.Equal(t, "athletic.net", dsErr.Source)
			assert.True(t, errors.Is(err, tt.sentinel))
			assert.Equal(t, tt.wantCode, ErrorCode(err))
		})
	}
}

func TestRateLimitedHTTPClientRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(sampleDocument))
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.MaxRetries = 2
	data, err := newTestClient(server.URL, cfg).FetchAthlete(context.Background(), "1")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRateLimitedHTTPClientCircuitBreaker(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.CircuitBreakerMax = 2
	httpClient := NewRateLimitedHTTPClient(cfg, quietLogger())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		resp, err := httpClient.Get(ctx, server.URL)
		require.NoError(t, err)
		resp.Body.Close()
	}
	assert.True(t, httpClient.IsOpen())

	_, err := httpClient.Get(ctx, server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	httpClient.Reset()
	assert.False(t, httpClient.IsOpen())
	assert.NoError(t, httpClient.Close())
}

func TestFileCache(t *testing.T) {
	dir := t.TempDir()
	fc := NewFileCache(dir)

	_, err := fc.Read("DavidWhitaker")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, fc.Write("DavidWhitaker", []byte(sampleDocument)))
	data, err := fc.Read("DavidWhitaker")
	require.NoError(t, err)
	assert.Equal(t, sampleDocument, string(data))

	require.NoError(t, fc.Write("DavidWhitaker", []byte(`{}`)))
	data, err = fc.Read("DavidWhitaker")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "DavidWhitaker.json", entries[0].Name())

	require.NoError(t, fc.Remove("DavidWhitaker"))
	require.NoError(t, fc.Remove("DavidWhitaker"))
	_, err = fc.Read("DavidWhitaker")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

type fakeSource struct {
	calls int
	data  []byte
	err   error
}

func (f *fakeSource) FetchAthlete(ctx context.Context, athleteID string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

func (f *fakeSource) Name() string { return "fake" }

func TestCachedSourceLayers(t *testing.T) {
	dir := t.TempDir()
	upstream := &fakeSource{data: []byte(sampleDocument)}
	ctx := context.Background()

	src := NewCachedSource(upstream, NewFileCache(dir), time.Minute, quietLogger())

	data, layer, err := src.Fetch(ctx, whitaker)
	require.NoError(t, err)
	assert.Equal(t, LayerNetwork, layer)
	assert.Equal(t, sampleDocument, string(data))

	_, layer, err = src.Fetch(ctx, whitaker)
	require.NoError(t, err)
	assert.Equal(t, LayerMemory, layer)

	fresh := NewCachedSource(upstream, NewFileCache(dir), time.Minute, quietLogger())
	_, layer, err = fresh.Fetch(ctx, whitaker)
	require.NoError(t, err)
	assert.Equal(t, LayerDisk, layer)

	assert.Equal(t, 1, upstream.calls)

	hits, misses, ratio := src.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.InDelta(t, 0.5, ratio, 0.0001)
}

func TestCachedSourceRefreshAndInvalidate(t *testing.T) {
	upstream := &fakeSource{data: []byte(sampleDocument)}
	src := NewCachedSource(upstream, NewFileCache(t.TempDir()), time.Minute, quietLogger())
	ctx := context.Background()

	_, _, err := src.Fetch(ctx, whitaker)
	require.NoError(t, err)

	upstream.data = []byte(`{"meets":{},"resultsTF":[]}`)
	data, err := src.Refresh(ctx, whitaker)
	require.NoError(t, err)
	assert.Equal(t, `{"meets":{},"resultsTF":[]}`, string(data))
	assert.Equal(t, 2, upstream.calls)

	require.NoError(t, src.Invalidate(whitaker))
	_, layer, err := src.Fetch(ctx, whitaker)
	require.NoError(t, err)
	assert.Equal(t, LayerNetwork, layer)
	assert.Equal(t, 3, upstream.calls)
}

func TestCachedSourceErrors(t *testing.T) {
	ctx := context.Background()

	offline := NewCachedSource(nil, NewFileCache(t.TempDir()), time.Minute, quietLogger())
	assert.True(t, offline.Offline())
	_, _, err := offline.Fetch(ctx, whitaker)
	assert.ErrorIs(t, err, ErrCacheMiss)

	garbage := NewCachedSource(&fakeSource{data: []byte("<html>")}, NewFileCache(t.TempDir()), time.Minute, quietLogger())
	_, _, err = garbage.Fetch(ctx, whitaker)
	assert.ErrorIs(t, err, ErrInvalidData)

	failing := NewCachedSource(&fakeSource{err: NewDataSourceError("fake", ErrCodeNotFound, "gone", nil)},
		NewFileCache(t.TempDir()), time.Minute, quietLogger())
	_, _, err = failing.Fetch(ctx, whitaker)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFactoryCreate(t *testing.T) {
	cfg := &config.Config{
		Athletic: config.AthleticConfig{
			BaseURL:        "https://www.athletic.net/api/v1/AthleteBio/GetAthleteBioData",
			Sport:          "tf",
			Level:          4,
			TimeoutSeconds: 5,
			RetryAttempts:  1,
			RateLimit:      1,
		},
		Cache: config.CacheConfig{Dir: t.TempDir(), MemoryTTLSeconds: 60},
	}
	factory := NewFactory(cfg, quietLogger())

	src, err := factory.Create(AthleticNetSourceType)
	require.NoError(t, err)
	assert.False(t, src.Offline())

	src, err = factory.Create(OfflineSourceType)
	require.NoError(t, err)
	assert.True(t, src.Offline())

	_, err = factory.Create("csv")
	assert.Error(t, err)
	assert.Len(t, factory.ListAvailableSources(), 2)
}

func TestDataSourceErrorFormatting(t *testing.T) {
	plain := NewDataSourceError("athletic.net", ErrCodeNotFound, "no athlete", nil)
	assert.Equal(t, "athletic.net: not_found: no athlete", plain.Error())

	wrapped := NewDataSourceError("athletic.net", ErrCodeNetworkError, "dial", context.DeadlineExceeded)
	assert.ErrorIs(t, wrapped, context.DeadlineExceeded)
	assert.ErrorIs(t, wrapped, ErrNetworkError)
	assert.Equal(t, ErrCodeUnknown, ErrorCode(errors.New("other")))
}

func TestCachedSourceHealthChecks(t *testing.T) {
	ctx := context.Background()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.CircuitBreakerMax = 1
	httpClient := NewRateLimitedHTTPClient(cfg, quietLogger())
	client := NewAthleticNetClient(httpClient, AthleticNetConfig{BaseURL: server.URL, Sport: "tf", Level: 4}, quietLogger())

	dir := t.TempDir() + "/cache"
	src := NewCachedSource(client, NewFileCache(dir), time.Minute, quietLogger())
	assert.NoError(t, src.CheckUpstream(ctx))
	require.NoError(t, src.CheckDisk(ctx))
	assert.DirExists(t, dir)

	_, _, err := src.Fetch(ctx, whitaker)
	require.Error(t, err)
	assert.ErrorIs(t, src.CheckUpstream(ctx), ErrCircuitOpen)

	offline := NewCachedSource(nil, NewFileCache(dir), time.Minute, quietLogger())
	assert.NoError(t, offline.CheckUpstream(ctx))

	blocker := t.TempDir() + "/file"
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	assert.Error(t, NewFileCache(blocker).Check())
}
