package fixtures

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/agentstation/feet/pkg/errors"
	"github.com/agentstation/feet/pkg/logging"
	"github.com/agentstation/feet/pkg/roster"
)

// PageExt is the extension of saved grade pages.
const PageExt = ".html"

// BuildRoster assembles a roster from parsed pages. The first page's date
// is the roster date; pages for any other date are left out and their
// grades returned as the skip-list.
func BuildRoster(pages []*Page) (*roster.Roster, []string, error) {
	if len(pages) == 0 {
		return nil, nil, errors.NewValidationError("pages", 0, "no grade pages")
	}

	date := pages[0].Date
	r := roster.New(date)
	var skip []string
	for _, p := range pages {
		if !p.Date.Equal(date) {
			logging.Warn().
				Str("grade", p.Grade).
				Str("date", p.Date.Format("2006-01-02")).
				Str("source", p.Source).
				Msg("Grade page is for a different date")
			if !slices.Contains(skip, p.Grade) {
				skip = append(skip, p.Grade)
			}
			continue
		}
		r.Rounds = append(r.Rounds, p.Round())
	}

	if err := r.Validate(); err != nil {
		return nil, nil, err
	}
	return r, skip, nil
}

// LoadPages parses every saved grade page in dir, in file name order.
func LoadPages(dir string) ([]*Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapIO("read", dir, err)
	}

	var pages []*Page
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), PageExt) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		page, err := loadPage(path)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	if len(pages) == 0 {
		return nil, errors.NewNotFoundError("grade pages", dir)
	}
	return pages, nil
}

func loadPage(path string) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()
	return ParseGradePage(f, path)
}

// LoadDir builds a roster and skip-list from the grade pages saved in dir.
func LoadDir(dir string) (*roster.Roster, []string, error) {
	pages, err := LoadPages(dir)
	if err != nil {
		return nil, nil, err
	}
	return BuildRoster(pages)
}
