package output

import (
	"strconv"

	"github.com/agentstation/feet/pkg/reconciler"
	"github.com/agentstation/feet/pkg/roster"
)

// MatchRow is the flat form of a match used for JSON output.
type MatchRow struct {
	Grade string `json:"grade" yaml:"grade"`
	Time  string `json:"time" yaml:"time"`
	Venue string `json:"venue" yaml:"venue"`
	Court string `json:"court" yaml:"court"`
	Team1 string `json:"team1" yaml:"team1"`
	Team2 string `json:"team2" yaml:"team2"`
}

// MatchRows flattens the roster in venue, court and time order.
func MatchRows(r *roster.Roster) []MatchRow {
	grouped := r.Grouped()
	var rows []MatchRow
	for _, v := range roster.Venues() {
		for _, c := range roster.Courts() {
			for _, m := range grouped.For(v, c) {
				rows = append(rows, MatchRow{
					Grade: m.Grade,
					Time:  m.Time.String(),
					Venue: m.Venue.String(),
					Court: m.Court.String(),
					Team1: m.Team1,
					Team2: m.Team2,
				})
			}
		}
	}
	return rows
}

// RosterTable converts a roster to table data.
func RosterTable(r *roster.Roster) Data {
	data := Data{
		Headers:         []string{"Venue", "Court", "Time", "Grade", "Team 1", "Team 2"},
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignCenter, AlignLeft, AlignLeft},
	}
	for _, m := range MatchRows(r) {
		data.Rows = append(data.Rows, []string{m.Venue, m.Court, m.Time, m.Grade, m.Team1, m.Team2})
	}
	return data
}

// StatsTable converts per venue reconciliation statistics to table data.
func StatsTable(stats []reconciler.VenueStats) Data {
	data := Data{
		Headers: []string{"Venue", "Compared", "Inserted", "Courts", "Retired", "Blanked", "Skipped", "Halves", "Grades"},
		ColumnAlignment: []Align{
			AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight,
			AlignRight, AlignRight, AlignRight, AlignRight,
		},
	}
	for _, s := range stats {
		data.Rows = append(data.Rows, []string{
			s.Venue.String(),
			strconv.Itoa(s.RowsCompared),
			strconv.Itoa(s.RowsInserted),
			strconv.Itoa(s.CourtsInserted),
			strconv.Itoa(s.RowsRetired),
			strconv.Itoa(s.RowsBlanked),
			strconv.Itoa(s.RowsSkipped),
			strconv.Itoa(s.HalvesUpdated),
			strconv.Itoa(s.GradesUpdated),
		})
	}
	return data
}
