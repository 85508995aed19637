package roster

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/feet/pkg/errors"
)

// Court is a numbered playing surface within a venue.
type Court int

const (
	// MinCourt is the lowest court number.
	MinCourt Court = 1

	// MaxCourt is the highest court number.
	MaxCourt Court = 4

	// CourtOverflow sits beyond the last defined court. It is the ceiling used
	// once the bottom of a worksheet has been reached.
	CourtOverflow Court = MaxCourt + 1
)

// CourtMarker identifies a court-header cell.
const CourtMarker = "Crt"

// Courts returns every court in ascending order.
func Courts() []Court {
	courts := make([]Court, 0, MaxCourt)
	for c := MinCourt; c <= MaxCourt; c++ {
		courts = append(courts, c)
	}
	return courts
}

// Valid reports whether c is a defined court.
func (c Court) Valid() bool {
	return c >= MinCourt && c <= MaxCourt
}

// Label returns the header text for the court, e.g. "Crt 2".
func (c Court) Label() string {
	return fmt.Sprintf("%s %d", CourtMarker, int(c))
}

// String implements fmt.Stringer.
func (c Court) String() string {
	return fmt.Sprintf("Court %d", int(c))
}

// NewCourt validates a court number.
func NewCourt(n int) (Court, error) {
	c := Court(n)
	if !c.Valid() {
		return 0, errors.NewCourtError("", n)
	}
	return c, nil
}

// ParseCourtLabel parses header text such as "Crt 3".
func ParseCourtLabel(s string) (Court, error) {
	s = strings.TrimSpace(s)
	idx := strings.Index(s, CourtMarker)
	if idx < 0 {
		return 0, errors.NewValidationError("court", s, "missing court marker")
	}
	n, err := strconv.Atoi(strings.TrimSpace(s[idx+len(CourtMarker):]))
	if err != nil {
		return 0, errors.NewValidationError("court", s, "court number is not an integer")
	}
	return NewCourt(n)
}
