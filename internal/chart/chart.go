// Package chart turns dated race results into progression charts.
package chart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/yourusername/track-report/internal/models"
	"github.com/yourusername/track-report/internal/racetime"
)

const (
	dateLayout = "2006-01-02"
	minPoints  = 2
)

// ErrNotEnoughPoints is returned when fewer than two usable results remain
var ErrNotEnoughPoints = errors.New("not enough results to chart")

// Point is one race on a progression chart
type Point struct {
	Date    time.Time
	Seconds float64
}

// Sink renders a titled series to path
type Sink interface {
	Render(title string, points []Point, path string) error
}

// PointsFrom converts date-keyed results into chart points sorted by date.
// Non-finishes, malformed times and undated keys are dropped.
func PointsFrom(dated []models.AssociatedResult) []Point {
	points := make([]Point, 0, len(dated))
	for _, entry := range dated {
		date, err := time.Parse(dateLayout, entry.Key)
		if err != nil {
			continue
		}
		secs, err := racetime.ToSeconds(entry.Result)
		if err != nil {
			continue
		}
		points = append(points, Point{Date: date, Seconds: secs})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

// ImagePath is where an athlete's chart for one event is written
func ImagePath(dir, compactName string, event models.EventCategory) string {
	return filepath.Join(dir, compactName+event.Short+".png")
}

// PNGRenderer draws line charts with gonum/plot
type PNGRenderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewPNGRenderer returns a renderer with the default image size
func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{Width: 8 * vg.Inch, Height: 4 * vg.Inch}
}

// Render writes a PNG line chart of points to path
func (r *PNGRenderer) Render(title string, points []Point, path string) error {
	if len(points) < minPoints {
		return fmt.Errorf("%s: %w", title, ErrNotEnoughPoints)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date of the Race"
	p.Y.Label.Text = "Time in Seconds"
	p.X.Tick.Marker = plot.TimeTicks{Format: dateLayout}
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.Date.Unix())
		xys[i].Y = pt.Seconds
	}

	line, scatter, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("failed to build series: %w", err)
	}
	p.Add(line, scatter)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create image dir: %w", err)
	}
	if err := p.Save(r.Width, r.Height, path); err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}
	return nil
}
