package grid

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	black  = "000000"
	white  = "FFFFFF"
	yellow = "FFFF00"
)

// styles holds the style ids registered on one workbook.
type styles struct {
	date     int
	court    int
	location int
	time     int
	team     int
	grade    int
	referee  int
}

func tableBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: black, Style: 1},
		{Type: "top", Color: black, Style: 1},
		{Type: "right", Color: black, Style: 1},
		{Type: "bottom", Color: black, Style: 1},
	}
}

func forfeitFill() excelize.Fill {
	return excelize.Fill{Type: "pattern", Color: []string{yellow}, Pattern: 1}
}

// registerStyles adds the document styles to f.
func registerStyles(f *excelize.File) (*styles, error) {
	bold := &excelize.Font{Bold: true}
	center := &excelize.Alignment{Horizontal: "center"}

	s := &styles{}
	defs := []struct {
		name  string
		id    *int
		style *excelize.Style
	}{
		{"date", &s.date, &excelize.Style{Font: bold, Alignment: center}},
		{"court", &s.court, &excelize.Style{Font: bold, Alignment: center}},
		{"location", &s.location, &excelize.Style{Font: bold}},
		{"time", &s.time, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: white},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{black}, Pattern: 1},
			Alignment: center,
		}},
		{"team", &s.team, &excelize.Style{Font: bold, Border: tableBorder()}},
		{"grade", &s.grade, &excelize.Style{Font: bold, Border: tableBorder(), Alignment: center}},
		{"referee", &s.referee, &excelize.Style{Border: tableBorder()}},
	}

	for _, def := range defs {
		id, err := f.NewStyle(def.style)
		if err != nil {
			return nil, fmt.Errorf("registering %s style: %w", def.name, err)
		}
		*def.id = id
	}
	return s, nil
}
