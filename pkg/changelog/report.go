package changelog

import (
	"fmt"
	"strings"

	"github.com/agentstation/feet/pkg/roster"
)

// NoChanges is the text of a report without moves, additions or removals.
const NoChanges = "No Changes"

// Move is a team, or a pair of opposing teams, whose fixture changed slot.
type Move struct {
	Teams []string
	From  roster.Match
	To    roster.Match
}

// Entry is a team, or a pair of opposing teams, added or removed in place.
type Entry struct {
	Teams []string
	Match roster.Match
}

// Report is a rendered change log.
type Report struct {
	Moved   []Move
	Added   []Entry
	Removed []Entry
	Notes   []string
}

// Summary provides counts for a report.
type Summary struct {
	Moved   int
	Added   int
	Removed int
	Notes   int
	Total   int
}

// classify extracts moves first, then pairs the remaining entries by opponent.
func classify(added, removed *registry, notes []string) *Report {
	r := &Report{Notes: append([]string(nil), notes...)}

	removed.each(func(team string, from roster.Match) {
		to, ok := added.get(team)
		if !ok {
			return
		}
		removed.pop(team)
		added.pop(team)

		mv := Move{Teams: []string{team}, From: from, To: to}
		if opp := from.Team2; opp != "" {
			oppFrom, inRemoved := removed.get(opp)
			oppTo, inAdded := added.get(opp)
			if inRemoved && inAdded && oppFrom.Team2 == team && oppTo.Team2 == team {
				removed.pop(opp)
				added.pop(opp)
				mv.Teams = append(mv.Teams, opp)
			}
		}

		// Same slot means the team only changed side.
		if from.Slot() == to.Slot() {
			return
		}
		r.Moved = append(r.Moved, mv)
	})

	r.Added = pairUp(added)
	r.Removed = pairUp(removed)
	return r
}

// pairUp drains reg, reporting a match once when both of its teams are present.
func pairUp(reg *registry) []Entry {
	var entries []Entry
	reg.each(func(team string, m roster.Match) {
		reg.pop(team)
		e := Entry{Teams: []string{team}, Match: m}
		if other, ok := reg.get(m.Team2); ok && other.Team2 == team && other.Slot() == m.Slot() {
			reg.pop(m.Team2)
			e.Teams = append(e.Teams, m.Team2)
		}
		entries = append(entries, e)
	})
	return entries
}

// Paired reports whether the move covers both teams of the fixture.
func (m Move) Paired() bool { return len(m.Teams) == 2 }

// Paired reports whether the entry covers both teams of the fixture.
func (e Entry) Paired() bool { return len(e.Teams) == 2 }

// HasChanges reports whether the report has moves, additions or removals.
func (r *Report) HasChanges() bool {
	return len(r.Moved)+len(r.Added)+len(r.Removed) > 0
}

// Summary returns counts for the report.
func (r *Report) Summary() Summary {
	return Summary{
		Moved:   len(r.Moved),
		Added:   len(r.Added),
		Removed: len(r.Removed),
		Notes:   len(r.Notes),
		Total:   len(r.Moved) + len(r.Added) + len(r.Removed),
	}
}

// String returns a one line summary.
func (s Summary) String() string {
	if s.Total == 0 {
		return NoChanges
	}
	return fmt.Sprintf("%d moved, %d added, %d removed", s.Moved, s.Added, s.Removed)
}

// String renders the report in sections: Moved, Added, Removed and Notes.
func (r *Report) String() string {
	var sections []string

	if !r.HasChanges() {
		sections = append(sections, NoChanges)
	}
	if len(r.Moved) > 0 {
		lines := []string{"Moved:"}
		for _, mv := range r.Moved {
			lines = append(lines, "  "+mv.line())
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	for _, s := range []struct {
		title   string
		entries []Entry
	}{
		{"Added:", r.Added},
		{"Removed:", r.Removed},
	} {
		if len(s.entries) == 0 {
			continue
		}
		lines := []string{s.title}
		for _, e := range s.entries {
			lines = append(lines, "  "+e.line())
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	if len(r.Notes) > 0 {
		lines := []string{"Notes:"}
		for _, grade := range r.Notes {
			lines = append(lines, fmt.Sprintf("  %s fixtures are for a different date and were not checked", grade))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	return strings.Join(sections, "\n\n") + "\n"
}

func (e Entry) line() string {
	label := e.Teams[0]
	if e.Paired() {
		label += " vs " + e.Teams[1]
	} else if e.Match.Team2 != "" {
		label += fmt.Sprintf(" (against %s)", e.Match.Team2)
	}
	return fmt.Sprintf("%s %s: %s %s", e.Match.Grade, label, e.Match.Time, e.Match.Location())
}

func (m Move) line() string {
	label := m.Teams[0]
	if m.Paired() {
		label += " vs " + m.Teams[1]
	}
	from, to := m.From, m.To

	sameTime := from.Time == to.Time
	samePlace := from.Venue == to.Venue && from.Court == to.Court

	var change string
	switch {
	case samePlace:
		change = fmt.Sprintf("%s -> %s (%s)", from.Time, to.Time, to.Location())
	case sameTime:
		change = fmt.Sprintf("%s -> %s (%s)", from.Location(), to.Location(), to.Time)
	default:
		change = fmt.Sprintf("%s %s -> %s %s", from.Time, from.Location(), to.Time, to.Location())
	}
	return fmt.Sprintf("%s %s: %s", to.Grade, label, change)
}
