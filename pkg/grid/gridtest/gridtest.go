// Package gridtest builds fixture documents in memory and checks the
// ordering contract of existing ones. It is meant for tests only.
package gridtest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/feet/pkg/grid"
	"github.com/agentstation/feet/pkg/roster"
)

// Row describes one table row of a worksheet.
type Row struct {
	Header bool
	Court  roster.Court
	Time   roster.Clock
	Team1  string
	Team2  string
	Grade  string

	// Serial stores the time as a spreadsheet serial number instead of text.
	Serial bool
}

// Header returns a court-header row.
func Header(c roster.Court) Row {
	return Row{Header: true, Court: c}
}

// Match returns a match row at clock, e.g. "9:00 AM" or "13:20".
func Match(clock string, team1, team2, grade string) Row {
	c, err := roster.ParseClock(clock)
	if err != nil {
		panic(err)
	}
	return Row{Time: c, Team1: team1, Team2: team2, Grade: grade}
}

// Layout maps venues to their table rows. Venues left out get an empty table.
type Layout map[roster.Venue][]Row

// Build returns a workbook holding layout. The workbook is closed when the test ends.
func Build(t testing.TB, layout Layout) *grid.Workbook {
	t.Helper()

	wb, err := grid.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })

	for v, rows := range layout {
		sheet, err := wb.Sheet(v)
		require.NoError(t, err)
		Fill(t, sheet, rows)
	}
	return wb
}

// Fill writes rows into sheet starting at the first table row.
func Fill(t testing.TB, sheet *grid.Sheet, rows []Row) {
	t.Helper()

	court := roster.Court(0)
	for i, r := range rows {
		row := grid.FirstTableRow + i
		if r.Header {
			court = r.Court
			require.NoError(t, sheet.WriteCourtHeader(row, r.Court))
			continue
		}
		m := roster.Match{
			Grade: r.Grade, Team1: r.Team1, Team2: r.Team2,
			Time: r.Time, Venue: sheet.Venue(), Court: court,
		}
		require.NoError(t, sheet.WriteMatchRow(row, m))
		if r.Serial {
			f := sheet.Workbook().File()
			ref := fmt.Sprintf("%s%d", grid.TimeColumn, row)
			require.NoError(t, f.SetCellFloat(sheet.Name(), ref, float64(r.Time)/(24*60), -1, 64))
		}
	}
}

// Dump reads every table row of sheet until the first blank time cell.
func Dump(t testing.TB, sheet *grid.Sheet) []Row {
	t.Helper()

	rows, err := Read(sheet)
	require.NoError(t, err)
	return rows
}

// Read is Dump without the test helper.
func Read(sheet *grid.Sheet) ([]Row, error) {
	var rows []Row
	court := roster.Court(0)
	for row := grid.FirstTableRow; ; row++ {
		blank, err := sheet.IsBlank(row)
		if err != nil {
			return nil, err
		}
		if blank {
			return rows, nil
		}
		c, _, ok, err := sheet.ReadCourtHeader(row)
		if err != nil {
			return nil, err
		}
		if ok {
			court = c
			rows = append(rows, Header(c))
			continue
		}
		m, err := sheet.ReadMatchRow(row, court)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{Time: m.Time, Team1: m.Team1, Team2: m.Team2, Grade: m.Grade})
	}
}

// CheckOrdered verifies that court headers ascend down every venue worksheet
// and that match rows ascend in time within each court block.
func CheckOrdered(wb *grid.Workbook) error {
	for _, v := range roster.Venues() {
		sheet, err := wb.Sheet(v)
		if err != nil {
			return err
		}
		rows, err := Read(sheet)
		if err != nil {
			return err
		}
		if len(rows) > 0 && !rows[0].Header {
			return fmt.Errorf("%s: table does not start with a court header", v)
		}
		lastCourt := roster.Court(0)
		var lastTime roster.Clock = -1
		for i, r := range rows {
			row := grid.FirstTableRow + i
			if r.Header {
				if r.Court <= lastCourt {
					return fmt.Errorf("%s row %d: %s follows %s", v, row, r.Court.Label(), lastCourt.Label())
				}
				lastCourt, lastTime = r.Court, -1
				continue
			}
			if r.Time < lastTime {
				return fmt.Errorf("%s row %d: %s follows %s in %s", v, row, r.Time, lastTime, lastCourt)
			}
			lastTime = r.Time
		}
	}
	return nil
}

// AssertOrdered fails the test when CheckOrdered reports a violation.
func AssertOrdered(t testing.TB, wb *grid.Workbook) {
	t.Helper()
	require.NoError(t, CheckOrdered(wb), "document ordering")
}
