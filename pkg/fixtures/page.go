// Package fixtures reads fixture rosters from the grade pages of the
// fixtures site, either over HTTP or from pages saved on disk.
package fixtures

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/agentstation/feet/pkg/errors"
	"github.com/agentstation/feet/pkg/roster"
)

// Selectors of the grade page markup.
const (
	dateSelector     = "span.sc-kEqYlL.jndYxC"
	headingSelector  = "h2.sc-kEqYlL.sc-1hg285i-0.eoUoDK.hALyVo"
	matchesSelector  = "ul.sc-10c3c88-4.iEXxNO"
	teamSelector     = "a.sc-kEqYlL.sc-10c3c88-13.gYjcIn.johWCg"
	forfeitSelector  = "span.sc-kEqYlL.kTltqj"
	slotSelector     = "div.sc-10c3c88-15.ivbMVO"
	timeSelector     = "span.sc-kEqYlL.kjKiYr"
	locationSelector = "a.sc-kEqYlL.sc-10c3c88-20.bBbCEa.kreAQ"
)

// DateLayout is the layout of the round date on a grade page.
const DateLayout = "Monday, 2 January 2006"

// Page is one parsed grade page: a single grade's round on one date.
type Page struct {
	Source  string
	Date    time.Time
	Grade   string
	Matches []roster.Match
}

// Round converts the page into a roster round.
func (p *Page) Round() roster.Round {
	return roster.Round{Grade: p.Grade, Date: p.Date, Matches: p.Matches}
}

// ParseGradePage parses a grade page. source names the page in errors.
func ParseGradePage(r io.Reader, source string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.WrapParse("html", source, err)
	}

	page := &Page{Source: source}

	dateText := strings.TrimSpace(doc.Find(dateSelector).First().Text())
	if dateText == "" {
		return nil, errors.NewParseError("html", source, "round date not found", nil)
	}
	if page.Date, err = time.Parse(DateLayout, dateText); err != nil {
		return nil, errors.WrapParse("html", source, err)
	}

	heading := strings.TrimSpace(doc.Find(headingSelector).First().Text())
	if page.Grade, err = GradeAbbreviation(heading); err != nil {
		return nil, errors.WrapParse("html", source, err)
	}

	teams := doc.Find(matchesSelector).First().Find(teamSelector)
	slots := doc.Find(slotSelector)
	locations := doc.Find(locationSelector)

	pairs := teams.Length() / 2
	if slots.Length() < pairs || locations.Length() < pairs {
		return nil, errors.NewParseError("html", source,
			fmt.Sprintf("%d matches but %d times and %d locations", pairs, slots.Length(), locations.Length()), nil)
	}

	for i := range pairs {
		home, away := teams.Eq(i*2), teams.Eq(i*2+1)
		if forfeited(home) || forfeited(away) {
			continue
		}

		m := roster.Match{
			Grade: page.Grade,
			Team1: strings.TrimSpace(home.Text()),
			Team2: strings.TrimSpace(away.Text()),
		}
		if m.Time, err = roster.ParseClock(strings.TrimSpace(slots.Eq(i).Find(timeSelector).First().Text())); err != nil {
			return nil, errors.WrapParse("html", source, err)
		}
		if m.Venue, m.Court, err = ParseLocation(locations.Eq(i).Text()); err != nil {
			return nil, errors.WrapParse("html", source, err)
		}
		page.Matches = append(page.Matches, m)
	}

	return page, nil
}

func forfeited(team *goquery.Selection) bool {
	return team.NextAllFiltered(forfeitSelector).Length() > 0
}

// GradeAbbreviation shortens a grade heading to its second and fourth
// words, e.g. "Under 12 Boys A Saturday" becomes "12A".
func GradeAbbreviation(heading string) (string, error) {
	words := strings.Fields(heading)
	if len(words) < 4 {
		return "", errors.NewValidationError("grade", heading, "heading needs at least four words")
	}
	return words[1] + words[3], nil
}

// ParseLocation splits "Official Venue Name / Court N" into a venue and court.
func ParseLocation(s string) (roster.Venue, roster.Court, error) {
	name, court, ok := strings.Cut(s, "/")
	if !ok {
		return 0, 0, errors.NewValidationError("location", s, "expected \"venue / Court N\"")
	}

	v, err := roster.VenueFromOfficialName(strings.TrimSpace(name))
	if err != nil {
		return 0, 0, err
	}

	_, num, ok := strings.Cut(court, "Court")
	if !ok {
		return 0, 0, errors.NewValidationError("location", s, "court number not found")
	}
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return 0, 0, errors.NewValidationError("location", s, "court number is not a number")
	}
	c, err := roster.NewCourt(n)
	if err != nil {
		return 0, 0, errors.NewCourtError(v.String(), n)
	}
	return v, c, nil
}
