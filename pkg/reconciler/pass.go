package reconciler

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/feet/pkg/changelog"
	"github.com/agentstation/feet/pkg/errors"
	"github.com/agentstation/feet/pkg/grid"
	"github.com/agentstation/feet/pkg/roster"
)

// state names a step of the per venue scan.
type state int

const (
	// stateScanningCourtHeader inspects the current row for the end of a court block.
	stateScanningCourtHeader state = iota
	// stateComparingSlot compares a match row with the next roster match of the court.
	stateComparingSlot
	// stateFlushingCourtTail inserts roster matches left over at the end of a block.
	stateFlushingCourtTail
	// stateInsertingAheadCourt inserts whole courts the document has no block for.
	stateInsertingAheadCourt
	// stateDone ends the pass.
	stateDone
)

var stateNames = map[state]string{
	stateScanningCourtHeader: "ScanningCourtHeader",
	stateComparingSlot:       "ComparingSlot",
	stateFlushingCourtTail:   "FlushingCourtTail",
	stateInsertingAheadCourt: "InsertingAheadCourt",
	stateDone:                "Done",
}

// String implements fmt.Stringer.
func (s state) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// pass reconciles one venue worksheet. The grid cursor is row; the roster
// cursor is dataCourt and dataRow.
type pass struct {
	sheet   *grid.Sheet
	courts  map[roster.Court][]roster.Match
	skip    map[string]bool
	changes *changelog.Log
	logger  *zerolog.Logger
	stats   VenueStats

	state     state
	row       int
	gridCourt roster.Court
	dataCourt roster.Court
	dataRow   int
	eof       bool
	atHeader  bool
}

func newPass(sheet *grid.Sheet, courts map[roster.Court][]roster.Match, skip map[string]bool, changes *changelog.Log, logger *zerolog.Logger) *pass {
	return &pass{
		sheet:   sheet,
		courts:  courts,
		skip:    skip,
		changes: changes,
		logger:  logger,
		stats:   VenueStats{Venue: sheet.Venue()},
	}
}

// run drives the state machine from the first table row to Done.
func (p *pass) run() error {
	if err := p.start(); err != nil {
		return err
	}
	for p.state != stateDone {
		next, err := p.step()
		if err != nil {
			return err
		}
		p.state = next
	}
	return nil
}

// start positions both cursors at the top of the table. An empty table
// behaves as if the bottom had been reached, so every court is inserted.
func (p *pass) start() error {
	p.row = grid.FirstTableRow
	p.dataCourt = roster.MinCourt
	p.dataRow = 0
	p.state = stateInsertingAheadCourt

	court, ok, err := p.readHeader(p.row)
	if err != nil {
		return err
	}
	if ok {
		p.gridCourt = court
		p.atHeader = true
		return nil
	}

	blank, err := p.sheet.IsBlank(p.row)
	if err != nil {
		return err
	}
	if !blank {
		return errors.NewSchemaError(p.sheet.Name(), cellRef(p.row), "table does not start with a court header", nil)
	}
	p.eof = true
	p.gridCourt = roster.CourtOverflow
	return nil
}

// step runs the current state and returns the next one.
func (p *pass) step() (state, error) {
	switch p.state {
	case stateScanningCourtHeader:
		return p.scanCourtHeader()
	case stateComparingSlot:
		return p.compareSlot()
	case stateFlushingCourtTail:
		return p.flushCourtTail()
	case stateInsertingAheadCourt:
		return p.insertAheadCourts()
	case stateDone:
		return stateDone, nil
	}
	return stateDone, fmt.Errorf("unknown reconciler state %s", p.state)
}

// scanCourtHeader ends the current block on a blank row or the next header.
func (p *pass) scanCourtHeader() (state, error) {
	blank, err := p.sheet.IsBlank(p.row)
	if err != nil {
		return stateDone, err
	}
	if blank {
		return stateFlushingCourtTail, nil
	}
	_, ok, err := p.readHeader(p.row)
	if err != nil {
		return stateDone, err
	}
	if ok {
		return stateFlushingCourtTail, nil
	}
	return stateComparingSlot, nil
}

// flushCourtTail inserts the roster matches of the finished court that the
// document did not list, then reads the next court header.
func (p *pass) flushCourtTail() (state, error) {
	matches := p.courts[p.dataCourt]
	for ; p.dataRow < len(matches); p.dataRow++ {
		if err := p.insertMatch(matches[p.dataRow]); err != nil {
			return stateDone, err
		}
	}
	p.dataCourt++
	p.dataRow = 0

	court, ok, err := p.readHeader(p.row)
	if err != nil {
		return stateDone, err
	}
	if !ok {
		p.eof = true
		p.gridCourt = roster.CourtOverflow
		return stateInsertingAheadCourt, nil
	}
	if court <= p.gridCourt {
		return stateDone, errors.NewSchemaError(p.sheet.Name(), cellRef(p.row),
			fmt.Sprintf("%s follows %s; court headers must ascend", court.Label(), p.gridCourt.Label()), nil)
	}
	p.gridCourt = court
	p.atHeader = true
	return stateInsertingAheadCourt, nil
}

// insertAheadCourts inserts every non-empty roster court below the grid's
// current court, or every remaining court once the bottom is reached. The
// inserted blocks go above the current row.
func (p *pass) insertAheadCourts() (state, error) {
	for p.dataCourt < p.gridCourt && p.dataCourt <= roster.MaxCourt {
		matches := p.courts[p.dataCourt]
		if len(matches) > 0 {
			if err := p.insertCourt(p.dataCourt, matches); err != nil {
				return stateDone, err
			}
		}
		p.dataCourt++
	}

	if p.eof {
		return stateDone, nil
	}

	// Align the roster cursor with the grid block. A block for a court the
	// roster has no matches for retires all of its rows.
	p.dataCourt = p.gridCourt
	p.dataRow = 0
	if p.atHeader {
		p.row++
		p.atHeader = false
	}
	return stateScanningCourtHeader, nil
}

// compareSlot merges one grid match row with the roster matches of the court.
func (p *pass) compareSlot() (state, error) {
	p.stats.RowsCompared++
	matches := p.courts[p.dataCourt]

	if p.dataRow >= len(matches) {
		if err := p.retire(p.row); err != nil {
			return stateDone, err
		}
		p.row++
		return stateScanningCourtHeader, nil
	}

	gridTime, err := p.sheet.ReadTime(p.row)
	if err != nil {
		return stateDone, err
	}
	next := matches[p.dataRow]

	switch {
	case next.Time == gridTime:
		if err := p.updateSlot(next); err != nil {
			return stateDone, err
		}
		p.dataRow++
		p.row++
	case next.Time < gridTime || hasTime(matches[p.dataRow:], gridTime):
		// The roster has matches earlier than this row.
		for p.dataRow < len(matches) && matches[p.dataRow].Time < gridTime {
			if err := p.insertMatch(matches[p.dataRow]); err != nil {
				return stateDone, err
			}
			p.dataRow++
		}
	default:
		if err := p.retire(p.row); err != nil {
			return stateDone, err
		}
		p.row++
	}
	return stateScanningCourtHeader, nil
}

// updateSlot relabels a row whose time matches the roster match. Each team
// is its own half so a single substitution is reported as one team out and
// one team in.
func (p *pass) updateSlot(next roster.Match) error {
	old, err := p.sheet.ReadMatchRow(p.row, p.gridCourt)
	if err != nil {
		return err
	}

	cleared := false
	halves := []struct {
		flip bool
		was  string
		want string
		set  func(int, string) error
	}{
		{false, old.Team1, next.Team1, p.sheet.SetTeam1},
		{true, old.Team2, next.Team2, p.sheet.SetTeam2},
	}
	for _, h := range halves {
		if h.was == h.want {
			continue
		}
		switch h.was {
		case grid.ForfeitLabel:
			if !cleared {
				if err := p.sheet.ClearForfeit(p.row); err != nil {
					return err
				}
				cleared = true
			}
		case "":
		default:
			if err := p.changes.RemoveHalf(old, h.flip); err != nil {
				return err
			}
		}
		if err := p.changes.AddHalf(next, h.flip); err != nil {
			return err
		}
		if err := h.set(p.row, h.want); err != nil {
			return err
		}
		p.stats.HalvesUpdated++
		p.logger.Debug().Int("row", p.row).Str("was", h.was).Str("now", h.want).Msg("Relabelled team")
	}

	if old.Grade != next.Grade {
		if err := p.sheet.SetGrade(p.row, next.Grade); err != nil {
			return err
		}
		p.stats.GradesUpdated++
	}
	return nil
}

// retire handles a grid row the roster no longer has. Blank and forfeited
// rows are left alone, rows of a skipped grade are blanked, and anything
// else is recorded as removed and marked as a forfeit.
func (p *pass) retire(row int) error {
	skippable, err := p.sheet.IsSkippable(row)
	if err != nil {
		return err
	}
	if skippable {
		p.stats.RowsSkipped++
		return nil
	}

	m, err := p.sheet.ReadMatchRow(row, p.gridCourt)
	if err != nil {
		return err
	}

	if p.skip[m.Grade] {
		if err := p.sheet.Blank(row); err != nil {
			return err
		}
		p.stats.RowsBlanked++
		p.logger.Debug().Int("row", row).Str("grade", m.Grade).Msg("Blanked row of skipped grade")
		return nil
	}

	if err := p.changes.Remove(m); err != nil {
		return err
	}
	if err := p.sheet.MarkForfeit(row); err != nil {
		return err
	}
	p.stats.RowsRetired++
	p.logger.Debug().Int("row", row).Str("match", m.String()).Msg("Marked row as forfeit")
	return nil
}

// insertMatch inserts m above the current row and records it as added.
func (p *pass) insertMatch(m roster.Match) error {
	if err := p.sheet.InsertRow(p.row); err != nil {
		return err
	}
	if err := p.sheet.WriteMatchRow(p.row, m); err != nil {
		return err
	}
	if err := p.changes.Add(m); err != nil {
		return err
	}
	p.row++
	p.stats.RowsInserted++
	return nil
}

// insertCourt inserts a court header followed by every match of the court.
func (p *pass) insertCourt(court roster.Court, matches []roster.Match) error {
	if err := p.sheet.InsertRow(p.row); err != nil {
		return err
	}
	if err := p.sheet.WriteCourtHeader(p.row, court); err != nil {
		return err
	}
	p.row++
	p.stats.CourtsInserted++
	p.logger.Debug().Str("court", court.String()).Int("matches", len(matches)).Msg("Inserted court block")

	for _, m := range matches {
		if err := p.insertMatch(m); err != nil {
			return err
		}
	}
	return nil
}

func (p *pass) readHeader(row int) (roster.Court, bool, error) {
	court, _, ok, err := p.sheet.ReadCourtHeader(row)
	return court, ok, err
}

func hasTime(matches []roster.Match, t roster.Clock) bool {
	for _, m := range matches {
		if m.Time == t {
			return true
		}
	}
	return false
}

func cellRef(row int) string {
	return fmt.Sprintf("%s%d", grid.CourtColumn, row)
}
