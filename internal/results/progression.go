package results

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/yourusername/track-report/internal/models"
	"github.com/yourusername/track-report/internal/racetime"
)

// Improvement returns how many seconds the fastest race beat the season opener by.
// dated must be keyed by YYYY-MM-DD (see ByDate). The second value is false
// when fewer than two races have usable times.
func Improvement(dated []models.AssociatedResult) (decimal.Decimal, bool) {
	type mark struct {
		date string
		time racetime.Time
	}

	marks := make([]mark, 0, len(dated))
	for _, entry := range dated {
		t, err := racetime.Parse(entry.Result)
		if err != nil {
			continue
		}
		marks = append(marks, mark{date: entry.Key, time: t})
	}
	if len(marks) < 2 {
		return decimal.Zero, false
	}

	sort.SliceStable(marks, func(i, j int) bool { return marks[i].date < marks[j].date })

	best := marks[0].time
	for _, m := range marks[1:] {
		if racetime.Compare(m.time, best) < 0 {
			best = m.time
		}
	}

	opener := decimal.New(int64(marks[0].time), -2)
	return opener.Sub(decimal.New(int64(best), -2)), true
}
