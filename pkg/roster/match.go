package roster

import "fmt"

// Match is a fixture between two teams. Matches are values and are never
// mutated once built.
type Match struct {
	Grade string
	Team1 string
	Team2 string
	Time  Clock
	Venue Venue
	Court Court
}

// Slot identifies a scheduling position independent of the teams in it.
type Slot struct {
	Venue Venue
	Court Court
	Time  Clock
}

// Slot returns the fixture slot of the match.
func (m Match) Slot() Slot {
	return Slot{Venue: m.Venue, Court: m.Court, Time: m.Time}
}

// Location returns the venue and court, e.g. "Parkdale Court 2".
func (m Match) Location() string {
	return fmt.Sprintf("%s %s", m.Venue, m.Court)
}

// Opponent returns the team playing against team, or "" when team is not in the match.
func (m Match) Opponent(team string) string {
	switch team {
	case m.Team1:
		return m.Team2
	case m.Team2:
		return m.Team1
	}
	return ""
}

// Swapped returns the match with the two teams exchanged.
func (m Match) Swapped() Match {
	m.Team1, m.Team2 = m.Team2, m.Team1
	return m
}

// String implements fmt.Stringer.
func (m Match) String() string {
	return fmt.Sprintf("%s vs %s (%s) %s %s", m.Team1, m.Team2, m.Grade, m.Time, m.Location())
}

// String implements fmt.Stringer.
func (s Slot) String() string {
	return fmt.Sprintf("%s %s %s", s.Venue, s.Court, s.Time)
}
