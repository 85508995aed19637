package grid

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/feet/pkg/errors"
	"github.com/agentstation/feet/pkg/roster"
)

// Workbook is an open fixture document.
type Workbook struct {
	file   *excelize.File
	styles *styles
	path   string
}

// Open opens the document at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	return wrap(f, path)
}

// OpenReader opens a document from r.
func OpenReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX data: %w", err)
	}
	return wrap(f, "")
}

// New returns a blank document with one worksheet per venue.
func New() (*Workbook, error) {
	f := excelize.NewFile()
	venues := roster.Venues()
	if err := f.SetSheetName(f.GetSheetName(0), venues[0].String()); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("naming first worksheet: %w", err)
	}
	for _, v := range venues[1:] {
		if _, err := f.NewSheet(v.String()); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("adding worksheet %s: %w", v, err)
		}
	}
	return wrap(f, "")
}

func wrap(f *excelize.File, path string) (*Workbook, error) {
	s, err := registerStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Workbook{file: f, styles: s, path: path}, nil
}

// File exposes the underlying excelize file.
func (w *Workbook) File() *excelize.File {
	return w.file
}

// Path returns the path the workbook was opened from, if any.
func (w *Workbook) Path() string {
	return w.path
}

// Sheet returns the worksheet of a venue. A missing worksheet is a schema violation.
func (w *Workbook) Sheet(v roster.Venue) (*Sheet, error) {
	name := v.String()
	idx, err := w.file.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return nil, errors.NewSchemaError(name, "", "worksheet not found", errors.NewNotFoundError("worksheet", name))
	}
	return &Sheet{wb: w, name: name, venue: v}, nil
}

// SetActive makes the worksheet at index the one shown on open.
func (w *Workbook) SetActive(index int) {
	w.file.SetActiveSheet(index)
}

// ActiveSheet returns the index of the active worksheet.
func (w *Workbook) ActiveSheet() int {
	return w.file.GetActiveSheetIndex()
}

// Date reads the fixture date from the first worksheet.
func (w *Workbook) Date() (time.Time, error) {
	sheets := w.file.GetSheetList()
	if len(sheets) == 0 {
		return time.Time{}, errors.NewSchemaError("", DateCell, "workbook has no worksheets", nil)
	}
	raw, err := w.file.GetCellValue(sheets[0], DateCell, excelize.Options{RawCellValue: true})
	if err != nil {
		return time.Time{}, errors.WrapSchema(sheets[0], DateCell, err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.NewSchemaError(sheets[0], DateCell, "date cell is empty", nil)
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, errors.WrapSchema(sheets[0], DateCell, err)
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.NewSchemaError(sheets[0], DateCell, fmt.Sprintf("cannot parse %q as a date", raw), nil)
}

// SetDate writes the fixture date into the date cell of every venue worksheet.
func (w *Workbook) SetDate(date time.Time) error {
	for _, v := range roster.Venues() {
		s, err := w.Sheet(v)
		if err != nil {
			return err
		}
		if err := w.file.SetCellStr(s.name, DateCell, date.Format(DateLayout)); err != nil {
			return err
		}
		if err := w.file.SetCellStyle(s.name, DateCell, DateCell, w.styles.date); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeHeights resets every table row of every venue worksheet to RowHeight.
func (w *Workbook) NormalizeHeights() error {
	for _, v := range roster.Venues() {
		s, err := w.Sheet(v)
		if err != nil {
			return err
		}
		if err := s.NormalizeHeights(); err != nil {
			return err
		}
	}
	return nil
}

// SaveAs writes the workbook to path.
func (w *Workbook) SaveAs(path string) error {
	if err := w.file.SaveAs(path); err != nil {
		return errors.WrapIO("save", path, err)
	}
	w.path = path
	return nil
}

// Save writes the workbook back to the path it was opened from.
func (w *Workbook) Save() error {
	if w.path == "" {
		return errors.NewValidationError("path", "", "workbook has no path; use SaveAs")
	}
	return w.SaveAs(w.path)
}

// Write streams the workbook to out.
func (w *Workbook) Write(out io.Writer) error {
	return w.file.Write(out)
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}
