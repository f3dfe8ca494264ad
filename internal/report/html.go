// Package report writes per-athlete HTML season reports.
package report

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yourusername/track-report/internal/models"
)

//go:embed templates/report.gohtml templates/styles.css
var templateFS embed.FS

const defaultStylesheet = "styles.css"

// ErrReportExists is returned when the report file exists and overwrite is off
var ErrReportExists = errors.New("report already exists")

// Event is one event section of a report
type Event struct {
	Title       string
	Results     []models.AssociatedResult
	Fastest     string
	Improvement string
	Image       string
}

// Report is the data rendered into one HTML page
type Report struct {
	RunID      string
	Athlete    string
	Season     string
	School     string
	Sport      string
	Title      string
	Logo       string
	Stylesheet string
	Generated  time.Time
	Events     []Event
}

// Writer renders reports into a directory
type Writer struct {
	dir  string
	tmpl *template.Template
}

// NewWriter parses the embedded template
func NewWriter(dir string) (*Writer, error) {
	tmpl, err := template.New("report.gohtml").
		Funcs(template.FuncMap{"upper": strings.ToUpper}).
		ParseFS(templateFS, "templates/report.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return &Writer{dir: dir, tmpl: tmpl}, nil
}

// Dir returns the output directory
func (w *Writer) Dir() string {
	return w.dir
}

// Path returns the report file for a compacted athlete name
func (w *Writer) Path(compactName string) string {
	return filepath.Join(w.dir, compactName+".html")
}

// Exists reports whether a report for compactName is already on disk
func (w *Writer) Exists(compactName string) bool {
	_, err := os.Stat(w.Path(compactName))
	return err == nil
}

// Write renders r to {dir}/{compactName}.html and returns the path.
// An existing report is only replaced when overwrite is set.
// The bundled stylesheet is copied alongside when the report uses it.
func (w *Writer) Write(compactName string, r Report, overwrite bool) (string, error) {
	path := w.Path(compactName)
	if !overwrite && w.Exists(compactName) {
		return path, fmt.Errorf("%s: %w", path, ErrReportExists)
	}

	if r.Stylesheet == "" {
		r.Stylesheet = defaultStylesheet
	}

	var buf bytes.Buffer
	if err := w.tmpl.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if r.Stylesheet == defaultStylesheet {
		if err := w.ensureStylesheet(); err != nil {
			return "", err
		}
	}
	return path, nil
}

func (w *Writer) ensureStylesheet() error {
	target := filepath.Join(w.dir, defaultStylesheet)
	if _, err := os.Stat(target); err == nil {
		return nil
	}
	css, err := templateFS.ReadFile("templates/styles.css")
	if err != nil {
		return fmt.Errorf("failed to read bundled stylesheet: %w", err)
	}
	if err := os.WriteFile(target, css, 0o644); err != nil {
		return fmt.Errorf("failed to write stylesheet: %w", err)
	}
	return nil
}

// RelativeImage returns image as a slash path relative to the report directory
func (w *Writer) RelativeImage(image string) string {
	if image == "" {
		return ""
	}
	rel, err := filepath.Rel(w.dir, image)
	if err != nil {
		return filepath.ToSlash(image)
	}
	return filepath.ToSlash(rel)
}
