package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/feet/pkg/errors"
	"github.com/agentstation/feet/pkg/roster"
)

// Sheet is the worksheet of one venue.
type Sheet struct {
	wb    *Workbook
	name  string
	venue roster.Venue
}

// Name returns the worksheet name.
func (s *Sheet) Name() string { return s.name }

// Venue returns the venue the worksheet lists.
func (s *Sheet) Venue() roster.Venue { return s.venue }

func cell(col string, row int) string {
	return col + strconv.Itoa(row)
}

func (s *Sheet) value(col string, row int) (string, error) {
	v, err := s.wb.file.GetCellValue(s.name, cell(col, row))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(v), nil
}

func (s *Sheet) set(col string, row int, value string, style int) error {
	ref := cell(col, row)
	if err := s.wb.file.SetCellStr(s.name, ref, value); err != nil {
		return err
	}
	return s.wb.file.SetCellStyle(s.name, ref, ref, style)
}

// IsBlank reports whether the time column of row is empty.
func (s *Sheet) IsBlank(row int) (bool, error) {
	v, err := s.value(TimeColumn, row)
	if err != nil {
		return false, err
	}
	return v == "", nil
}

// ReadCourtHeader reports whether row is a court-header row and, when it is,
// returns its court and venue label.
func (s *Sheet) ReadCourtHeader(row int) (court roster.Court, label string, ok bool, err error) {
	v, err := s.value(CourtColumn, row)
	if err != nil {
		return 0, "", false, err
	}
	if v == "" || !strings.Contains(v, roster.CourtMarker) {
		return 0, "", false, nil
	}
	court, err = roster.ParseCourtLabel(v)
	if err != nil {
		var courtErr *errors.CourtError
		if errors.As(err, &courtErr) {
			return 0, "", false, errors.NewCourtError(s.name, courtErr.Court)
		}
		return 0, "", false, errors.NewSchemaError(s.name, cell(CourtColumn, row), "unparsable court header", err)
	}
	label, err = s.value(LocationColumn, row)
	if err != nil {
		return 0, "", false, err
	}
	return court, label, true, nil
}

// ReadTime parses the time cell of row. Both numeric (date/time typed) cells
// and formatted text such as "9:00 AM" are accepted.
func (s *Sheet) ReadTime(row int) (roster.Clock, error) {
	ref := cell(TimeColumn, row)
	raw, err := s.wb.file.GetCellValue(s.name, ref, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, errors.WrapSchema(s.name, ref, err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.NewSchemaError(s.name, ref, "time cell is empty", nil)
	}

	typ, err := s.wb.file.GetCellType(s.name, ref)
	if err != nil {
		return 0, errors.WrapSchema(s.name, ref, err)
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
	case excelize.CellTypeDate:
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "15:04:05"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return roster.ClockOf(t), nil
			}
		}
	default:
		if serial, err := strconv.ParseFloat(raw, 64); err == nil {
			return clockFromSerial(serial), nil
		}
	}

	clock, err := roster.ParseClock(raw)
	if err != nil {
		return 0, errors.NewSchemaError(s.name, ref, fmt.Sprintf("unparsable time %q", raw), err)
	}
	return clock, nil
}

// clockFromSerial converts the fractional day of a spreadsheet serial to a clock.
func clockFromSerial(serial float64) roster.Clock {
	_, frac := math.Modf(serial)
	minutes := int(math.Round(frac * 24 * 60))
	return roster.Clock(minutes % (24 * 60))
}

// ReadMatchRow converts a match row into a Match at the given court.
func (s *Sheet) ReadMatchRow(row int, court roster.Court) (roster.Match, error) {
	clock, err := s.ReadTime(row)
	if err != nil {
		return roster.Match{}, err
	}
	m := roster.Match{Time: clock, Venue: s.venue, Court: court}
	for _, f := range []struct {
		col string
		dst *string
	}{
		{Team1Column, &m.Team1},
		{Team2Column, &m.Team2},
		{GradeColumn, &m.Grade},
	} {
		if *f.dst, err = s.value(f.col, row); err != nil {
			return roster.Match{}, err
		}
	}
	return m, nil
}

// Teams returns the two team cells of row.
func (s *Sheet) Teams(row int) (team1, team2 string, err error) {
	if team1, err = s.value(Team1Column, row); err != nil {
		return "", "", err
	}
	team2, err = s.value(Team2Column, row)
	return team1, team2, err
}

// Grade returns the grade cell of row.
func (s *Sheet) Grade(row int) (string, error) {
	return s.value(GradeColumn, row)
}

// WriteMatchRow fills row with match and applies the match row styles.
func (s *Sheet) WriteMatchRow(row int, m roster.Match) error {
	st := s.wb.styles
	for _, c := range []struct {
		col   string
		value string
		style int
	}{
		{TimeColumn, m.Time.String(), st.time},
		{Team1Column, m.Team1, st.team},
		{Team2Column, m.Team2, st.team},
		{GradeColumn, m.Grade, st.grade},
	} {
		if err := s.set(c.col, row, c.value, c.style); err != nil {
			return fmt.Errorf("writing %s: %w", cell(c.col, row), err)
		}
	}
	if err := s.wb.file.SetCellStyle(s.name, cell(RefereeColumn1, row), cell(RefereeColumn2, row), st.referee); err != nil {
		return err
	}
	return s.wb.file.SetRowHeight(s.name, row, RowHeight)
}

// WriteCourtHeader fills row with the header of a court block.
func (s *Sheet) WriteCourtHeader(row int, court roster.Court) error {
	if err := s.set(CourtColumn, row, court.Label(), s.wb.styles.court); err != nil {
		return err
	}
	if err := s.set(LocationColumn, row, s.venue.String(), s.wb.styles.location); err != nil {
		return err
	}
	return s.wb.file.SetRowHeight(s.name, row, RowHeight)
}

// SetTeam1 overwrites the first team of row, keeping the cell style.
func (s *Sheet) SetTeam1(row int, team string) error {
	return s.wb.file.SetCellStr(s.name, cell(Team1Column, row), team)
}

// SetTeam2 overwrites the second team of row, keeping the cell style.
func (s *Sheet) SetTeam2(row int, team string) error {
	return s.wb.file.SetCellStr(s.name, cell(Team2Column, row), team)
}

// SetGrade overwrites the grade of row, keeping the cell style.
func (s *Sheet) SetGrade(row int, grade string) error {
	return s.wb.file.SetCellStr(s.name, cell(GradeColumn, row), grade)
}

// Blank clears the teams and grade of row. The time and referee cells stay.
func (s *Sheet) Blank(row int) error {
	for _, col := range []string{Team1Column, Team2Column, GradeColumn} {
		if err := s.wb.file.SetCellValue(s.name, cell(col, row), nil); err != nil {
			return err
		}
	}
	return nil
}

// InsertRow shifts row and every row below it down by one, leaving row empty.
func (s *Sheet) InsertRow(row int) error {
	return s.wb.file.InsertRows(s.name, row, 1)
}

// RowExtent returns the last table row with a value in the time column, or
// FirstTableRow-1 when the table is empty.
func (s *Sheet) RowExtent() (int, error) {
	row := FirstTableRow - 1
	for {
		blank, err := s.IsBlank(row + 1)
		if err != nil {
			return 0, err
		}
		if blank {
			return row, nil
		}
		row++
	}
}

// TrailingColumn returns the last column of row still inside the table
// border. The walk starts at the last referee column and moves right while
// the next cell has a right border.
func (s *Sheet) TrailingColumn(row int) (string, error) {
	col, err := excelize.ColumnNameToNumber(RefereeColumn2)
	if err != nil {
		return "", err
	}
	for col < maxTrailingColumn {
		ref, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return "", err
		}
		bordered, err := s.hasRightBorder(ref)
		if err != nil {
			return "", err
		}
		if !bordered {
			break
		}
		col++
	}
	return excelize.ColumnNumberToName(col)
}

func (s *Sheet) hasRightBorder(ref string) (bool, error) {
	id, err := s.wb.file.GetCellStyle(s.name, ref)
	if err != nil || id == 0 {
		return false, err
	}
	style, err := s.wb.file.GetStyle(id)
	if err != nil {
		return false, err
	}
	for _, b := range style.Border {
		if b.Type == "right" && b.Style > 0 {
			return true, nil
		}
	}
	return false, nil
}

// MarkForfeit replaces both teams with ForfeitLabel and highlights the row
// from the first team column to the trailing column.
func (s *Sheet) MarkForfeit(row int) error {
	if err := s.restyleRow(row, forfeitFill()); err != nil {
		return err
	}
	if err := s.SetTeam1(row, ForfeitLabel); err != nil {
		return err
	}
	return s.SetTeam2(row, ForfeitLabel)
}

// ClearForfeit removes the forfeit highlight. Team cells are left for the caller.
func (s *Sheet) ClearForfeit(row int) error {
	return s.restyleRow(row, excelize.Fill{})
}

// restyleRow swaps the fill of every table cell of row, keeping fonts and borders.
func (s *Sheet) restyleRow(row int, fill excelize.Fill) error {
	last, err := s.TrailingColumn(row)
	if err != nil {
		return err
	}
	first, err := excelize.ColumnNameToNumber(Team1Column)
	if err != nil {
		return err
	}
	end, err := excelize.ColumnNameToNumber(last)
	if err != nil {
		return err
	}
	for col := first; col <= end; col++ {
		ref, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		id, err := s.wb.file.GetCellStyle(s.name, ref)
		if err != nil {
			return err
		}
		style, err := s.wb.file.GetStyle(id)
		if err != nil {
			return err
		}
		style.Fill = fill
		newID, err := s.wb.file.NewStyle(style)
		if err != nil {
			return err
		}
		if err := s.wb.file.SetCellStyle(s.name, ref, ref, newID); err != nil {
			return err
		}
	}
	return nil
}

// IsForfeit reports whether row carries the forfeit label.
func (s *Sheet) IsForfeit(row int) (bool, error) {
	team1, team2, err := s.Teams(row)
	if err != nil {
		return false, err
	}
	return team1 == ForfeitLabel || team2 == ForfeitLabel, nil
}

// IsSkippable reports whether row has nothing left to retire: no teams, or a forfeit.
func (s *Sheet) IsSkippable(row int) (bool, error) {
	team1, team2, err := s.Teams(row)
	if err != nil {
		return false, err
	}
	if team1 == "" && team2 == "" {
		return true, nil
	}
	return team1 == ForfeitLabel || team2 == ForfeitLabel, nil
}

// IsHighlighted reports whether the first team cell of row carries the forfeit fill.
func (s *Sheet) IsHighlighted(row int) (bool, error) {
	id, err := s.wb.file.GetCellStyle(s.name, cell(Team1Column, row))
	if err != nil || id == 0 {
		return false, err
	}
	style, err := s.wb.file.GetStyle(id)
	if err != nil {
		return false, err
	}
	for _, c := range style.Fill.Color {
		if strings.HasSuffix(strings.ToUpper(c), yellow) {
			return true, nil
		}
	}
	return false, nil
}

// NormalizeHeights sets every table row down to the row extent to RowHeight.
func (s *Sheet) NormalizeHeights() error {
	last, err := s.RowExtent()
	if err != nil {
		return err
	}
	for row := FirstTableRow; row <= last; row++ {
		if err := s.wb.file.SetRowHeight(s.name, row, RowHeight); err != nil {
			return err
		}
	}
	return nil
}

// Workbook returns the workbook that owns the worksheet.
func (s *Sheet) Workbook() *Workbook { return s.wb }
