package models

import (
	"fmt"
	"strings"
)

// EventCategory maps a race label to the athletic.net event code
type EventCategory struct {
	Label string
	ID    int
	Short string
}

// Tracked events. The set is closed; supporting a new event means adding an entry here.
var (
	Event800   = EventCategory{Label: "800m", ID: 4, Short: "800"}
	Event1600  = EventCategory{Label: "1600m", ID: 52, Short: "1600"}
	Event3200  = EventCategory{Label: "3200m", ID: 60, Short: "3200"}
	Event4x800 = EventCategory{Label: "4x800m Relay", ID: 39, Short: "4x800"}
	Event4x400 = EventCategory{Label: "4x400m Relay", ID: 8, Short: "4x400"}
)

var eventCategories = []EventCategory{Event800, Event1600, Event3200, Event4x800, Event4x400}

// Events returns the tracked events in menu order
func Events() []EventCategory {
	out := make([]EventCategory, len(eventCategories))
	copy(out, eventCategories)
	return out
}

// EventByName resolves a label ("4x800m Relay"), short name ("4x800") or
// short name with unit ("4x800m"), ignoring case
func EventByName(name string) (EventCategory, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, ev := range eventCategories {
		short := strings.ToLower(ev.Short)
		if needle == strings.ToLower(ev.Label) || needle == short || needle == short+"m" {
			return ev, nil
		}
	}
	return EventCategory{}, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}

// EventByID resolves an athletic.net event code
func EventByID(id int) (EventCategory, bool) {
	for _, ev := range eventCategories {
		if ev.ID == id {
			return ev, true
		}
	}
	return EventCategory{}, false
}

// ParseEvents resolves a list of names, keeping order and dropping duplicates.
// An empty list selects every tracked event.
func ParseEvents(names []string) ([]EventCategory, error) {
	if len(names) == 0 {
		return Events(), nil
	}

	seen := make(map[int]bool, len(names))
	out := make([]EventCategory, 0, len(names))
	for _, name := range names {
		ev, err := EventByName(name)
		if err != nil {
			return nil, err
		}
		if seen[ev.ID] {
			continue
		}
		seen[ev.ID] = true
		out = append(out, ev)
	}
	return out, nil
}
