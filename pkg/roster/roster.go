// Package roster holds the fixture domain model: venues, courts, matches,
// rounds and the weekly roster, plus the grouped view that reconciliation
// walks and a YAML snapshot codec.
package roster

import (
	"fmt"
	"sort"
	"time"

	"github.com/agentstation/feet/pkg/errors"
)

// Round is the set of matches of one grade, scraped from one page.
type Round struct {
	Grade   string
	Date    time.Time
	Matches []Match
}

// Roster is a week of fixtures across every grade.
type Roster struct {
	Date   time.Time
	Rounds []Round
}

// Grouping maps venue to court to matches in ascending time order.
type Grouping map[Venue]map[Court][]Match

// New returns a roster for date.
func New(date time.Time, rounds ...Round) *Roster {
	return &Roster{Date: date, Rounds: rounds}
}

// Matches flattens every round in arrival order.
func (r *Roster) Matches() []Match {
	var matches []Match
	for _, round := range r.Rounds {
		matches = append(matches, round.Matches...)
	}
	return matches
}

// Grades returns the grade of each round in arrival order.
func (r *Roster) Grades() []string {
	grades := make([]string, 0, len(r.Rounds))
	for _, round := range r.Rounds {
		grades = append(grades, round.Grade)
	}
	return grades
}

// Grouped builds the venue, court, time view of the roster. Every venue and
// court key is present. Matches sharing a time keep their arrival order.
func (r *Roster) Grouped() Grouping {
	g := make(Grouping, len(Venues()))
	for _, v := range Venues() {
		g[v] = make(map[Court][]Match, MaxCourt)
		for _, c := range Courts() {
			g[v][c] = []Match{}
		}
	}

	for _, m := range r.Matches() {
		courts, ok := g[m.Venue]
		if !ok {
			continue
		}
		if _, ok := courts[m.Court]; !ok {
			continue
		}
		courts[m.Court] = append(courts[m.Court], m)
	}

	for _, courts := range g {
		for c, matches := range courts {
			sort.SliceStable(matches, func(i, j int) bool {
				return matches[i].Time < matches[j].Time
			})
			courts[c] = matches
		}
	}
	return g
}

// For returns the ordered matches at a venue and court.
func (g Grouping) For(v Venue, c Court) []Match {
	return g[v][c]
}

// Count returns the number of matches at a venue.
func (g Grouping) Count(v Venue) int {
	n := 0
	for _, matches := range g[v] {
		n += len(matches)
	}
	return n
}

// Validate checks required fields and the court range of every match.
func (r *Roster) Validate() error {
	if r == nil {
		return errors.NewValidationError("roster", nil, "roster is nil")
	}
	if r.Date.IsZero() {
		return errors.NewValidationError("date", r.Date, "roster has no date")
	}
	for i, round := range r.Rounds {
		if round.Grade == "" {
			return errors.NewValidationError(fmt.Sprintf("rounds[%d].grade", i), round.Grade, "cannot be empty")
		}
		for j, m := range round.Matches {
			if err := m.Validate(); err != nil {
				return fmt.Errorf("round %s match %d: %w", round.Grade, j, err)
			}
		}
	}
	return nil
}

// Validate checks the match has a grade, two teams and a defined slot.
func (m Match) Validate() error {
	switch {
	case m.Grade == "":
		return errors.NewValidationError("grade", m.Grade, "cannot be empty")
	case m.Team1 == "":
		return errors.NewValidationError("team1", m.Team1, "cannot be empty")
	case m.Team2 == "":
		return errors.NewValidationError("team2", m.Team2, "cannot be empty")
	case !m.Venue.Valid():
		return errors.NewValidationError("venue", int(m.Venue), "unknown venue")
	case !m.Court.Valid():
		return errors.NewCourtError(m.Venue.String(), int(m.Court))
	case !m.Time.Valid():
		return errors.NewValidationError("time", int(m.Time), "outside one day")
	}
	return nil
}
