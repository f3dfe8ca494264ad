package results

import (
	"errors"

	"github.com/yourusername/track-report/internal/models"
	"github.com/yourusername/track-report/internal/racetime"
)

// slowestTracked is the comparison floor. Valid marks slower than it still
// count as a best; Summary.AboveFloor reports how many there were.
var slowestTracked = racetime.MustParse("25:25.25")

// Summary is the outcome of reducing one event's associated results
type Summary struct {
	Fastest    models.AssociatedResult
	Found      bool
	Valid      int
	// AboveFloor counts valid marks slower than the comparison floor
	AboveFloor int
	NonFinish  int
	Malformed  int
	Other      int
}

// Summarize scans associated results for the fastest mark.
// DNS/DNF/scratch and malformed marks are skipped and counted.
func Summarize(associated []models.AssociatedResult) Summary {
	var (
		s    Summary
		best racetime.Time
	)

	for _, entry := range associated {
		t, err := racetime.Parse(entry.Result)
		if err != nil {
			var (
				nonFinish *racetime.NonFinishError
				malformed *racetime.MalformedTimeError
			)
			switch {
			case errors.As(err, &nonFinish):
				s.NonFinish++
			case errors.As(err, &malformed):
				s.Malformed++
			default:
				s.Other++
			}
			continue
		}

		s.Valid++
		if racetime.Compare(t, slowestTracked) > 0 {
			s.AboveFloor++
		}
		if !s.Found || racetime.Compare(t, best) < 0 {
			best = t
			s.Fastest = entry
			s.Found = true
		}
	}
	return s
}

// Fastest returns the fastest associated result.
// The second value is false only when no entry carries a usable time.
func Fastest(associated []models.AssociatedResult) (models.AssociatedResult, bool) {
	s := Summarize(associated)
	return s.Fastest, s.Found
}
