package results

import (
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/track-report/internal/models"
)

// KeyKind selects which meet attribute becomes the display key
type KeyKind int

const (
	// ByName keys meets by MeetName
	ByName KeyKind = iota
	// ByDate keys meets by EndDate formatted as YYYY-MM-DD
	ByDate
)

func (k KeyKind) String() string {
	switch k {
	case ByName:
		return "name"
	case ByDate:
		return "date"
	default:
		return fmt.Sprintf("KeyKind(%d)", int(k))
	}
}

const dateKeyLayout = "2006-01-02"

var endDateLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	dateKeyLayout,
}

// MeetIndex maps a meet id to its display key for one season
type MeetIndex map[int]string

// UnknownMeetError is returned for results whose meet is not in the index,
// either because it does not exist or because it falls in another season.
type UnknownMeetError struct {
	MeetID int
}

func (e *UnknownMeetError) Error() string {
	return fmt.Sprintf("meet %d is not in the season index", e.MeetID)
}

// Lookup returns the display key for meetID
func (ix MeetIndex) Lookup(meetID int) (string, error) {
	key, ok := ix[meetID]
	if !ok {
		return "", &UnknownMeetError{MeetID: meetID}
	}
	return key, nil
}

// MeetsForYear indexes the meets whose EndDate falls in year.
// A meet qualifies when the text before the first '-' of EndDate equals year.
// For ByDate, meets whose EndDate is not an ISO date are left out.
func MeetsForYear(doc *models.Document, year string, kind KeyKind) MeetIndex {
	ix := make(MeetIndex)
	if doc == nil {
		return ix
	}

	for _, meet := range doc.Meets {
		if seasonOf(meet.EndDate) != year {
			continue
		}

		switch kind {
		case ByDate:
			key, ok := dateKey(meet.EndDate)
			if !ok {
				continue
			}
			ix[meet.ID] = key
		default:
			ix[meet.ID] = meet.Name
		}
	}
	return ix
}

// Associate pairs each result with its meet display key, in result order.
// Results whose meet is not in the index are dropped.
func Associate(results []models.RaceResult, meets MeetIndex) []models.AssociatedResult {
	out := make([]models.AssociatedResult, 0, len(results))
	for _, r := range results {
		key, err := meets.Lookup(r.MeetID)
		if err != nil {
			continue
		}
		out = append(out, models.AssociatedResult{Result: r.Result, Key: key})
	}
	return out
}

// Unmatched counts the results Associate would drop
func Unmatched(results []models.RaceResult, meets MeetIndex) int {
	n := 0
	for _, r := range results {
		if _, err := meets.Lookup(r.MeetID); err != nil {
			n++
		}
	}
	return n
}

func seasonOf(endDate string) string {
	return strings.Split(endDate, "-")[0]
}

func dateKey(endDate string) (string, bool) {
	for _, layout := range endDateLayouts {
		if t, err := time.Parse(layout, endDate); err == nil {
			return t.Format(dateKeyLayout), true
		}
	}
	return "", false
}
