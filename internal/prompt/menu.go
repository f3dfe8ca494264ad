package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yourusername/track-report/internal/models"
)

const noResultsMessage = "We do not have results for your request"

// Menu asks for an event by number; 0 finishes
type Menu struct {
	console *Console
	events  []models.EventCategory
}

// NewMenu creates a menu over events in display order
func NewMenu(console *Console, events []models.EventCategory) *Menu {
	return &Menu{console: console, events: events}
}

// Question is the menu prompt text
func (m *Menu) Question() string {
	choices := make([]string, 0, len(m.events))
	for i, e := range m.events {
		choices = append(choices, fmt.Sprintf("Enter %d for the %s", i+1, e.Label))
	}
	return "What distance do you want to see results for?\n " + strings.Join(choices, ", ") +
		"\n If you are done, please enter 0"
}

// Select returns the chosen event. The bool is false when the user entered 0.
// Out of range numbers and non-numeric input are re-prompted.
func (m *Menu) Select() (models.EventCategory, bool, error) {
	for {
		answer, err := m.console.Ask(m.Question())
		if err != nil {
			return models.EventCategory{}, false, err
		}

		choice, err := strconv.Atoi(answer)
		switch {
		case err != nil:
			m.console.Println("Please enter a number.")
		case choice == 0:
			return models.EventCategory{}, false, nil
		case choice < 0 || choice > len(m.events):
			m.console.Println(noResultsMessage)
		default:
			return m.events[choice-1], true, nil
		}
	}
}
