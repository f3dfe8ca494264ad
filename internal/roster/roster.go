// Package roster resolves athlete names to athletic.net athlete ids.
package roster

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownAthlete is returned when a name is not on the roster
var ErrUnknownAthlete = errors.New("athlete not on roster")

// Athlete is a roster entry
type Athlete struct {
	Name string
	ID   string
}

// CompactName is the name without spaces; it names cache, image and report files
func (a Athlete) CompactName() string {
	return strings.ReplaceAll(a.Name, " ", "")
}

// Roster is an immutable name lookup built from configuration
type Roster struct {
	byKey map[string]Athlete
}

// New builds a roster. Names are matched case-insensitively and shown title-cased.
func New(entries []Athlete) (*Roster, error) {
	r := &Roster{byKey: make(map[string]Athlete, len(entries))}
	for _, e := range entries {
		key := foldKey(e.Name)
		if key == "" {
			return nil, fmt.Errorf("roster entry with empty name (id %q)", e.ID)
		}
		if e.ID == "" {
			return nil, fmt.Errorf("roster entry %q has no athlete id", e.Name)
		}
		if existing, ok := r.byKey[key]; ok {
			return nil, fmt.Errorf("roster entries %q and %q collide", existing.Name, e.Name)
		}
		r.byKey[key] = Athlete{Name: displayName(e.Name), ID: e.ID}
	}
	return r, nil
}

// Lookup finds an athlete by name
func (r *Roster) Lookup(name string) (Athlete, error) {
	a, ok := r.byKey[foldKey(name)]
	if !ok {
		return Athlete{}, fmt.Errorf("%w: %q", ErrUnknownAthlete, strings.TrimSpace(name))
	}
	return a, nil
}

// Athletes lists the roster sorted by name
func (r *Roster) Athletes() []Athlete {
	out := make([]Athlete, 0, len(r.byKey))
	for _, a := range r.byKey {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of athletes
func (r *Roster) Len() int {
	return len(r.byKey)
}

func foldKey(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}

func displayName(name string) string {
	return cases.Title(language.English).String(strings.Join(strings.Fields(name), " "))
}
