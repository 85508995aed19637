// Package export writes fixture documents from scratch and stores the
// change logs produced when documents are synced.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agentstation/feet/pkg/constants"
	"github.com/agentstation/feet/pkg/errors"
	"github.com/agentstation/feet/pkg/grid"
	"github.com/agentstation/feet/pkg/roster"
)

var ordinalSuffixes = [...]string{"th", "st", "nd", "rd"}

// Ordinal returns the suffix for a day of the month: "st", "nd", "rd" or "th".
func Ordinal(day int) string {
	if r := day % 10; r >= 1 && r <= 3 && (day%100 < 11 || day%100 > 13) {
		return ordinalSuffixes[r]
	}
	return ordinalSuffixes[0]
}

// Filename returns the document name for a fixture date, e.g. "1st Jul 2023.xlsx".
func Filename(date time.Time) string {
	return fmt.Sprintf("%d%s %s%s", date.Day(), Ordinal(date.Day()), date.Format("Jan 2006"), constants.DocumentExt)
}

// Fill writes the roster into an empty document: the date cell of every
// worksheet, then a header and the match rows of each non-empty court.
func Fill(wb *grid.Workbook, r *roster.Roster) error {
	if err := wb.SetDate(r.Date); err != nil {
		return err
	}

	grouped := r.Grouped()
	for _, v := range roster.Venues() {
		sheet, err := wb.Sheet(v)
		if err != nil {
			return err
		}
		row := grid.FirstTableRow
		for _, c := range roster.Courts() {
			matches := grouped.For(v, c)
			if len(matches) == 0 {
				continue
			}
			if err := sheet.WriteCourtHeader(row, c); err != nil {
				return fmt.Errorf("%s %s header: %w", v, c, err)
			}
			row++
			for _, m := range matches {
				if err := sheet.WriteMatchRow(row, m); err != nil {
					return fmt.Errorf("%s %s row %d: %w", v, c, row, err)
				}
				row++
			}
		}
	}

	wb.SetActive(0)
	return nil
}

// Create builds a document for r from templatePath, or from a blank
// workbook when templatePath is empty, and saves it in outputDir under
// Filename. It returns the path written.
func Create(r *roster.Roster, templatePath, outputDir string) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	var (
		wb  *grid.Workbook
		err error
	)
	if templatePath == "" {
		wb, err = grid.New()
	} else {
		wb, err = grid.Open(templatePath)
	}
	if err != nil {
		return "", err
	}
	defer wb.Close()

	if err := Fill(wb, r); err != nil {
		return "", err
	}

	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", outputDir, err)
	}
	path := filepath.Join(outputDir, Filename(r.Date))
	if err := wb.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

// ChangeLogPath returns where the change log of a document is stored:
// changes/<document base name>.txt relative to the working directory.
func ChangeLogPath(document string) string {
	base := filepath.Base(document)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(constants.ChangesDir, base+constants.ChangeLogExt)
}

// WriteChangeLog stores text as the change log of document and returns its path.
func WriteChangeLog(document, text string) (string, error) {
	path := ChangeLogPath(document)
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(text), constants.FilePermissions); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	return path, nil
}
