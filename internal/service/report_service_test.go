package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/track-report/internal/chart"
	"github.com/yourusername/track-report/internal/datasource"
	"github.com/yourusername/track-report/internal/models"
	"github.com/yourusername/track-report/internal/report"
	"github.com/yourusername/track-report/internal/roster"
)

const seasonDocument = `{
  "meets": {
    "100": {"IDMeet": 100, "MeetName": "Spring Invite", "EndDate": "2022-04-01T00:00:00"},
    "200": {"IDMeet": 200, "MeetName": "County Finals", "EndDate": "2022-05-01T00:00:00"},
    "300": {"IDMeet": 300, "MeetName": "Last Year Meet", "EndDate": "2021-05-01T00:00:00"}
  },
  "resultsTF": [
    {"EventID": 4, "MeetID": 100, "Result": "2:10.44"},
    {"EventID": 4, "MeetID": 200, "Result": "2:05.30"},
    {"EventID": 4, "MeetID": 300, "Result": "2:00.00"},
    {"EventID": 52, "MeetID": 100, "Result": "DNF"},
    {"EventID": 52, "MeetID": 200, "Result": "4:50.12"},
    {"EventID": 60, "MeetID": 100, "Result": "DNS"}
  ]
}`

// MockDocumentSource mocks the cached document source
type MockDocumentSource struct {
	mock.Mock
}

func (m *MockDocumentSource) Fetch(ctx context.Context, athlete roster.Athlete) ([]byte, datasource.Layer, error) {
	args := m.Called(ctx, athlete)
	data, _ := args.Get(0).([]byte)
	return data, args.Get(1).(datasource.Layer), args.Error(2)
}

func (m *MockDocumentSource) Refresh(ctx context.Context, athlete roster.Athlete) ([]byte, error) {
	args := m.Called(ctx, athlete)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

// MockChartSink mocks the chart renderer
type MockChartSink struct {
	mock.Mock
}

func (m *MockChartSink) Render(title string, points []chart.Point, path string) error {
	args := m.Called(title, points, path)
	return args.Error(0)
}

var (
	whitaker = roster.Athlete{Name: "David Whitaker", ID: "15714155"}
	jayee    = roster.Athlete{Name: "Sohil Jayee", ID: "15714147"}
)

type fixture struct {
	svc      *ReportService
	source   *MockDocumentSource
	charts   *MockChartSink
	root     string
	imageDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	r, err := roster.New([]roster.Athlete{whitaker, jayee})
	require.NoError(t, err)

	root := t.TempDir()
	writer, err := report.NewWriter(filepath.Join(root, "reports"))
	require.NoError(t, err)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	f := &fixture{
		source:   &MockDocumentSource{},
		charts:   &MockChartSink{},
		root:     root,
		imageDir: filepath.Join(root, "images"),
	}
	f.svc = NewReportService(r, f.source, f.charts, writer, Options{
		ImageDir: f.imageDir,
		School:   "Northville HS",
		Sport:    "Track & Field",
		Title:    "Track and Field",
		Logo:     "Mustangs.png",
	}, log)
	f.svc.now = func() time.Time { return time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func decodeSeason(t *testing.T) *models.Document {
	t.Helper()
	doc, err := models.DecodeDocument([]byte(seasonDocument))
	require.NoError(t, err)
	return doc
}

func TestAnalyze(t *testing.T) {
	f := newFixture(t)
	summaries := f.svc.Analyze(decodeSeason(t), "2022", models.Events())
	require.Len(t, summaries, 5)

	eight := summaries[0]
	assert.Equal(t, models.Event800, eight.Event)
	assert.Equal(t, []models.AssociatedResult{
		{Result: "2:10.44", Key: "Spring Invite"},
		{Result: "2:05.30", Key: "County Finals"},
	}, eight.Named)
	assert.Equal(t, []models.AssociatedResult{
		{Result: "2:10.44", Key: "2022-04-01"},
		{Result: "2:05.30", Key: "2022-05-01"},
	}, eight.Dated)
	assert.True(t, eight.Found)
	assert.Equal(t, "County Finals", eight.Fastest.Key)
	assert.Equal(t, "5.14", eight.ImprovementText())
	assert.Equal(t, 1, eight.Unmatched)

	mile := summaries[1]
	assert.True(t, mile.Found)
	assert.Equal(t, "4:50.12", mile.Fastest.Result)
	assert.Equal(t, 1, mile.NonFinish)
	assert.False(t, mile.HasImprovement)
	assert.Equal(t, "", mile.ImprovementText())

	two := summaries[2]
	assert.False(t, two.Found)
	assert.Equal(t, 1, two.NonFinish)
	assert.Equal(t, "Fastest 3200m = none", two.FastestText())

	assert.Empty(t, summaries[3].Named)
	assert.NotNil(t, summaries[3].Named)
}

func TestAnalyzeOtherSeason(t *testing.T) {
	f := newFixture(t)
	summaries := f.svc.Analyze(decodeSeason(t), "2021", []models.EventCategory{models.Event800})
	require.Len(t, summaries, 1)
	assert.Equal(t, []models.AssociatedResult{{Result: "2:00.00", Key: "Last Year Meet"}}, summaries[0].Named)
	assert.Equal(t, 2, summaries[0].Unmatched)
}

func TestAnalyzeCountsUndatedAndSlowResults(t *testing.T) {
	doc, err := models.DecodeDocument([]byte(`{
  "meets": {
    "100": {"IDMeet": 100, "MeetName": "Spring Invite", "EndDate": "2022-04-01T00:00:00"},
    "400": {"IDMeet": 400, "MeetName": "Bad Date", "EndDate": "2022-13-45"}
  },
  "resultsTF": [
    {"EventID": 60, "MeetID": 100, "Result": "26:10.00"},
    {"EventID": 60, "MeetID": 400, "Result": "27:00.00"},
    {"EventID": 60, "MeetID": 999, "Result": "11:00.00"}
  ]
}`))
	require.NoError(t, err)

	f := newFixture(t)
	summaries := f.svc.Analyze(doc, "2022", []models.EventCategory{models.Event3200})
	require.Len(t, summaries, 1)

	sum := summaries[0]
	assert.Len(t, sum.Named, 2)
	assert.Len(t, sum.Dated, 1)
	assert.Equal(t, 1, sum.Unmatched)
	assert.Equal(t, 1, sum.Undated)
	assert.True(t, sum.Found)
	assert.Equal(t, "Spring Invite", sum.Fastest.Key)
	assert.Equal(t, 2, sum.AboveFloor)
}

func TestSummaryText(t *testing.T) {
	sum := EventSummary{
		Event:   models.Event800,
		Named:   []models.AssociatedResult{{Result: "2:05.30", Key: "County Finals"}},
		Dated:   []models.AssociatedResult{{Result: "2:05.30", Key: "2022-05-01"}},
		Fastest: models.AssociatedResult{Result: "2:05.30", Key: "County Finals"},
		Found:   true,
	}
	assert.Equal(t, "800m Results = [County Finals: 2:05.30]", sum.ResultsText())
	assert.Equal(t, "800m Results with Dates = [2022-05-01: 2:05.30]", sum.DatedText())
	assert.Equal(t, "Fastest 800m = County Finals: 2:05.30", sum.FastestText())
}

func TestLoad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.source.On("Fetch", ctx, whitaker).Return([]byte(seasonDocument), datasource.LayerDisk, nil)

	athlete, doc, err := f.svc.Load(ctx, "  david WHITAKER ")
	require.NoError(t, err)
	assert.Equal(t, whitaker, athlete)
	assert.Len(t, doc.Meets, 3)
	f.source.AssertExpectations(t)
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown athlete", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.svc.Load(ctx, "Nobody")
		assert.ErrorIs(t, err, roster.ErrUnknownAthlete)
		f.source.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	})

	t.Run("fetch failure", func(t *testing.T) {
		f := newFixture(t)
		fetchErr := datasource.NewDataSourceError("athletic.net", datasource.ErrCodeNotFound, "gone", nil)
		f.source.On("Fetch", ctx, whitaker).Return(nil, datasource.Layer(""), fetchErr)

		_, _, err := f.svc.Load(ctx, "David Whitaker")
		assert.ErrorIs(t, err, datasource.ErrNotFound)
	})

	t.Run("missing data", func(t *testing.T) {
		f := newFixture(t)
		f.source.On("Fetch", ctx, whitaker).Return([]byte(`{"meets":{}}`), datasource.LayerNetwork, nil)

		_, _, err := f.svc.Load(ctx, "David Whitaker")
		var missing *models.MissingDataError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "resultsTF", missing.Field)
	})
}

func TestGenerate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.source.On("Fetch", ctx, whitaker).Return([]byte(seasonDocument), datasource.LayerMemory, nil)
	f.charts.On("Render", "800m", mock.Anything, filepath.Join(f.imageDir, "DavidWhitaker800.png")).Return(nil)
	f.charts.On("Render", mock.Anything, mock.Anything, mock.Anything).Return(fmt.Errorf("chart: %w", chart.ErrNotEnoughPoints))

	events := []models.EventCategory{models.Event800, models.Event1600}
	res, err := f.svc.Generate(ctx, "David Whitaker", "2022", events, false)
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, whitaker, res.Athlete)
	assert.Equal(t, filepath.Join(f.root, "reports", "DavidWhitaker.html"), res.Path)
	require.Len(t, res.Summaries, 2)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "DAVID WHITAKER")
	assert.Contains(t, html, "Fastest: County Finals: 2:05.30")
	assert.Contains(t, html, `src="../images/DavidWhitaker800.png"`)
	assert.Contains(t, html, "No graph available for 1600m")
	assert.Contains(t, html, res.RunID)

	f.charts.AssertNumberOfCalls(t, "Render", 2)
	points := f.charts.Calls[0].Arguments.Get(1).([]chart.Point)
	assert.Len(t, points, 2)

	_, err = f.svc.Generate(ctx, "David Whitaker", "2022", events, false)
	assert.ErrorIs(t, err, report.ErrReportExists)

	_, err = f.svc.Generate(ctx, "David Whitaker", "2022", events, true)
	assert.NoError(t, err)
}

func TestGenerateChartFailureStillWritesReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.source.On("Fetch", ctx, whitaker).Return([]byte(seasonDocument), datasource.LayerDisk, nil)
	f.charts.On("Render", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	res, err := f.svc.Generate(ctx, "David Whitaker", "2022", []models.EventCategory{models.Event800}, false)
	require.NoError(t, err)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `class="graph"`)
}

func TestRefresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.source.On("Refresh", ctx, whitaker).Return([]byte(seasonDocument), nil)
	f.source.On("Refresh", ctx, jayee).Return([]byte(`not json`), nil)

	athlete, err := f.svc.Refresh(ctx, "David Whitaker")
	require.NoError(t, err)
	assert.Equal(t, whitaker, athlete)

	_, err = f.svc.Refresh(ctx, "Sohil Jayee")
	assert.Error(t, err)

	_, err = f.svc.Refresh(ctx, "Nobody")
	assert.ErrorIs(t, err, roster.ErrUnknownAthlete)
}

func TestRefreshAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.source.On("Refresh", ctx, whitaker).Return([]byte(seasonDocument), nil)
	f.source.On("Refresh", ctx, jayee).Return(nil, datasource.NewDataSourceError("athletic.net", datasource.ErrCodeServerError, "boom", nil))

	stats, err := f.svc.RefreshAll(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Refreshed)
	assert.Equal(t, 1, stats.Failures())
	assert.Contains(t, stats.Failed, "Sohil Jayee")
	assert.Contains(t, stats.String(), "Refreshed=1")
}

func TestRefreshAllCancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := f.svc.RefreshAll(ctx, "run-2")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, stats.Refreshed)
	f.source.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
}

func TestChart(t *testing.T) {
	f := newFixture(t)
	summaries := f.svc.Analyze(decodeSeason(t), "2022", []models.EventCategory{models.Event800, models.Event3200})
	f.charts.On("Render", "800m", mock.Anything, mock.Anything).Return(nil)
	f.charts.On("Render", "3200m", mock.Anything, mock.Anything).Return(chart.ErrNotEnoughPoints)

	path, err := f.svc.Chart(whitaker, summaries[0])
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.imageDir, "DavidWhitaker800.png"), path)

	path, err = f.svc.Chart(whitaker, summaries[1])
	assert.ErrorIs(t, err, chart.ErrNotEnoughPoints)
	assert.Empty(t, path)

	points := f.charts.Calls[1].Arguments.Get(1).([]chart.Point)
	assert.Empty(t, points)
}
