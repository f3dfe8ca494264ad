// Package results turns an athlete document into per-event season views:
// filtering by event, joining results to meets, and picking the fastest mark.
package results

import "github.com/yourusername/track-report/internal/models"

// ByEvent returns the results recorded for eventID in input order.
// The returned slice is never nil.
func ByEvent(results []models.RaceResult, eventID int) []models.RaceResult {
	out := make([]models.RaceResult, 0)
	for _, r := range results {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out
}
