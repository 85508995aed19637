package roster

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/feet/pkg/errors"
)

// Venue is one of the fixed locations that host matches.
// Declaration order is the order venues are reconciled and the order of
// worksheets in a document.
type Venue int

// Venues in declaration order.
const (
	KingClub Venue = iota
	Parkdale
	MentoneGrammar
	MentoneGirls
)

var venueIDs = [...]string{
	KingClub:       "KING_CLUB",
	Parkdale:       "PARKDALE",
	MentoneGrammar: "MENTONE_GRAMMAR",
	MentoneGirls:   "MENTONE_GIRLS",
}

// official names as published on the fixtures site.
var officialNames = map[string]Venue{
	"Sandringham Family Leisure Centre": KingClub,
	"Parkdale Secondary College":        Parkdale,
	"Mentone Grammar School":            MentoneGrammar,
	"Mentone Girls Secondary College":   MentoneGirls,
}

// Venues returns every venue in declaration order.
func Venues() []Venue {
	return []Venue{KingClub, Parkdale, MentoneGrammar, MentoneGirls}
}

// Valid reports whether v is a declared venue.
func (v Venue) Valid() bool {
	return v >= KingClub && v <= MentoneGirls
}

// ID returns the upper snake case identifier of the venue.
func (v Venue) ID() string {
	if !v.Valid() {
		return "UNKNOWN"
	}
	return venueIDs[v]
}

// String returns the display name, which is also the worksheet name.
func (v Venue) String() string {
	if !v.Valid() {
		return "Unknown"
	}
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(strings.ToLower(venueIDs[v]), "_", " "))
}

// OfficialName returns the venue's name on the fixtures site.
func (v Venue) OfficialName() string {
	for name, venue := range officialNames {
		if venue == v {
			return name
		}
	}
	return ""
}

// ParseVenue parses a display name or identifier, ignoring case.
func ParseVenue(s string) (Venue, error) {
	s = strings.TrimSpace(s)
	for _, v := range Venues() {
		if strings.EqualFold(s, v.String()) || strings.EqualFold(s, v.ID()) {
			return v, nil
		}
	}
	if v, ok := officialNames[s]; ok {
		return v, nil
	}
	return 0, errors.NewNotFoundError("venue", s)
}

// VenueFromOfficialName maps a fixtures site venue name to a Venue.
func VenueFromOfficialName(name string) (Venue, error) {
	v, ok := officialNames[strings.TrimSpace(name)]
	if !ok {
		return 0, errors.NewNotFoundError("venue", name)
	}
	return v, nil
}
