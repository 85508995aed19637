// Package grid reads and mutates fixture documents. A document is an xlsx
// workbook with one worksheet per venue; each worksheet lists court blocks
// (a court-header row followed by match rows) starting at FirstTableRow.
//
// Court headers ascend down a worksheet and match rows ascend in time
// within a block. Nothing in this package enforces that ordering; callers
// rely on it and gridtest.AssertOrdered checks it in tests.
package grid

// Worksheet layout.
const (
	// DateCell holds the fixture date on every worksheet.
	DateCell = "C4"

	// FirstTableRow is the first row of the court table.
	FirstTableRow = 6

	// CourtColumn holds "Crt N" on header rows.
	CourtColumn = "B"

	// TimeColumn holds the match time on match rows.
	TimeColumn = "B"

	// LocationColumn holds the venue name on header rows.
	LocationColumn = "C"

	// Team1Column holds the first team on match rows.
	Team1Column = "C"

	// Team2Column holds the second team on match rows.
	Team2Column = "D"

	// GradeColumn holds the grade on match rows.
	GradeColumn = "E"

	// RefereeColumn1 is the first referee column.
	RefereeColumn1 = "F"

	// RefereeColumn2 is the last referee column and the narrowest table edge.
	RefereeColumn2 = "G"

	// RowHeight is the height of every table row in points.
	RowHeight = 17.0

	// ForfeitLabel replaces team names on a forfeited row.
	ForfeitLabel = "FORFEIT"

	// DateLayout formats the date cell, e.g. "1/07/2023".
	DateLayout = "2/01/2006"

	// maxTrailingColumn bounds the border walk in TrailingColumn (column Z).
	maxTrailingColumn = 26
)

var dateLayouts = []string{DateLayout, "2/1/2006", "02/01/2006", "2006-01-02"}
