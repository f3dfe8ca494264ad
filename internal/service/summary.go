package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yourusername/track-report/internal/models"
)

// EventSummary is the analyzed season for one event
type EventSummary struct {
	Event          models.EventCategory
	Named          []models.AssociatedResult
	Dated          []models.AssociatedResult
	Fastest        models.AssociatedResult
	Found          bool
	AboveFloor     int
	Improvement    decimal.Decimal
	HasImprovement bool
	NonFinish      int
	Malformed      int
	Unmatched      int
	// Undated counts results left out of Dated because their meet's EndDate did not parse
	Undated        int
}

// ResultsText lists the named results the way the terminal views show them
func (s EventSummary) ResultsText() string {
	return fmt.Sprintf("%s Results = [%s]", s.Event.Label, joinResults(s.Named))
}

// DatedText lists the dated results
func (s EventSummary) DatedText() string {
	return fmt.Sprintf("%s Results with Dates = [%s]", s.Event.Label, joinResults(s.Dated))
}

// FastestText describes the fastest result, or that there was none
func (s EventSummary) FastestText() string {
	if !s.Found {
		return fmt.Sprintf("Fastest %s = none", s.Event.Label)
	}
	return fmt.Sprintf("Fastest %s = %s", s.Event.Label, s.Fastest)
}

// ImprovementText is the seconds dropped since the opener, or empty
func (s EventSummary) ImprovementText() string {
	if !s.HasImprovement {
		return ""
	}
	return s.Improvement.StringFixed(2)
}

func joinResults(entries []models.AssociatedResult) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}
