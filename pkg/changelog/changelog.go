// Package changelog records the teams added to and removed from a document
// during one reconciliation pass and renders them as a report of moves,
// additions and removals.
//
// Entries are keyed by team name. A whole match registers both of its teams;
// a half registration registers one. Each stored match is normalised so its
// Team1 is the key and its Team2 the opponent.
package changelog

import (
	"maps"
	"slices"

	"github.com/agentstation/feet/pkg/errors"
	"github.com/agentstation/feet/pkg/roster"
)

// ErrSealed is returned when a log is changed after it has been rendered.
var ErrSealed = errors.New("change log already rendered")

// Log accumulates added and removed matches keyed by team.
//
// A team is assumed to play at most one fixture per roster. A second record
// for the same team name replaces the first, so teams that share a name across
// grades, or play twice in one week, are reported once.
type Log struct {
	added   *registry
	removed *registry
	notes   []string

	report *Report
}

// New returns an empty log.
func New() *Log {
	return &Log{added: newRegistry(), removed: newRegistry()}
}

// Add registers a whole match as added.
func (l *Log) Add(m roster.Match) error {
	if l.report != nil {
		return ErrSealed
	}
	l.added.put(m)
	l.added.put(m.Swapped())
	return nil
}

// Remove registers a whole match as removed.
func (l *Log) Remove(m roster.Match) error {
	if l.report != nil {
		return ErrSealed
	}
	l.removed.put(m)
	l.removed.put(m.Swapped())
	return nil
}

// AddHalf registers one team of m as added: Team1, or Team2 when flip is set.
func (l *Log) AddHalf(m roster.Match, flip bool) error {
	if l.report != nil {
		return ErrSealed
	}
	if flip {
		m = m.Swapped()
	}
	l.added.put(m)
	return nil
}

// RemoveHalf registers one team of m as removed: Team1, or Team2 when flip is set.
func (l *Log) RemoveHalf(m roster.Match, flip bool) error {
	if l.report != nil {
		return ErrSealed
	}
	if flip {
		m = m.Swapped()
	}
	l.removed.put(m)
	return nil
}

// Notes records grades that were skipped because their fixtures could not
// be attributed to the document date.
func (l *Log) Notes(grades ...string) error {
	if l.report != nil {
		return ErrSealed
	}
	for _, g := range grades {
		if g != "" && !slices.Contains(l.notes, g) {
			l.notes = append(l.notes, g)
		}
	}
	return nil
}

// Added returns the match registered as added for team.
func (l *Log) Added(team string) (roster.Match, bool) {
	return l.added.get(team)
}

// Removed returns the match registered as removed for team.
func (l *Log) Removed(team string) (roster.Match, bool) {
	return l.removed.get(team)
}

// Render classifies the log into a report. The first call seals the log and
// later calls return the same report.
func (l *Log) Render() *Report {
	if l.report == nil {
		l.report = classify(l.added.clone(), l.removed.clone(), l.notes)
	}
	return l.report
}

// String renders the report as text.
func (l *Log) String() string {
	return l.Render().String()
}

// Summary returns counts of the rendered report.
func (l *Log) Summary() Summary {
	return l.Render().Summary()
}

// HasChanges reports whether the rendered report has moves, additions or removals.
func (l *Log) HasChanges() bool {
	return l.Render().HasChanges()
}

// registry is an insertion ordered map of team to match.
type registry struct {
	keys    []string
	matches map[string]roster.Match
}

func newRegistry() *registry {
	return &registry{matches: make(map[string]roster.Match)}
}

func (r *registry) put(m roster.Match) {
	if m.Team1 == "" {
		return
	}
	if _, ok := r.matches[m.Team1]; !ok {
		r.keys = append(r.keys, m.Team1)
	}
	r.matches[m.Team1] = m
}

func (r *registry) get(team string) (roster.Match, bool) {
	m, ok := r.matches[team]
	return m, ok
}

func (r *registry) pop(team string) (roster.Match, bool) {
	m, ok := r.matches[team]
	if ok {
		delete(r.matches, team)
	}
	return m, ok
}

func (r *registry) clone() *registry {
	return &registry{keys: slices.Clone(r.keys), matches: maps.Clone(r.matches)}
}

// each visits live entries in insertion order.
func (r *registry) each(fn func(team string, m roster.Match)) {
	for _, k := range r.keys {
		if m, ok := r.matches[k]; ok {
			fn(k, m)
		}
	}
}
