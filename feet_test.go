package feet_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/feet"
	"github.com/agentstation/feet/pkg/changelog"
	"github.com/agentstation/feet/pkg/errors"
	"github.com/agentstation/feet/pkg/export"
	"github.com/agentstation/feet/pkg/grid"
	"github.com/agentstation/feet/pkg/grid/gridtest"
	"github.com/agentstation/feet/pkg/logging"
	"github.com/agentstation/feet/pkg/roster"
	pkgsync "github.com/agentstation/feet/pkg/sync"
)

var july1 = time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC)

func match(t1, t2 string, hour, minute int, v roster.Venue, c roster.Court) roster.Match {
	return roster.Match{Grade: "12A", Team1: t1, Team2: t2, Time: roster.NewClock(hour, minute), Venue: v, Court: c}
}

func newRoster(matches ...roster.Match) *roster.Roster {
	return roster.New(july1, roster.Round{Grade: "12A", Date: july1, Matches: matches})
}

// writeDocument saves layout as a document dated date and returns its path.
func writeDocument(t *testing.T, date time.Time, layout gridtest.Layout) string {
	t.Helper()
	wb := gridtest.Build(t, layout)
	require.NoError(t, wb.SetDate(date))
	path := filepath.Join(t.TempDir(), export.Filename(date))
	require.NoError(t, wb.SaveAs(path))
	return path
}

func dumpDocument(t *testing.T, path string, v roster.Venue) []gridtest.Row {
	t.Helper()
	wb, err := grid.Open(path)
	require.NoError(t, err)
	defer wb.Close()
	sheet, err := wb.Sheet(v)
	require.NoError(t, err)
	return gridtest.Dump(t, sheet)
}

func newFeet(t *testing.T, opts ...feet.Option) feet.Feet {
	t.Helper()
	opts = append([]feet.Option{feet.WithLogger(logging.NewNopLogger())}, opts...)
	f, err := feet.New(opts...)
	require.NoError(t, err)
	return f
}

func TestNewOptions(t *testing.T) {
	_, err := feet.New(feet.WithOutputDir(""))
	assert.True(t, errors.IsValidationError(err))

	_, err = feet.New(feet.WithSkipGrades("12A", ""))
	assert.True(t, errors.IsValidationError(err))

	f, err := feet.New(feet.WithTemplate("template.xlsx"), feet.WithSkipGrades("14B"))
	require.NoError(t, err)
	assert.NotNil(t, f)
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	f := newFeet(t, feet.WithOutputDir(dir))

	var phases []feet.Phase
	f.OnPhase(func(p feet.Phase, _ string) { phases = append(phases, p) })

	path, err := f.Create(context.Background(), newRoster(
		match("A", "B", 9, 0, roster.MentoneGrammar, 2),
	))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "1st Jul 2023.xlsx"), path)
	assert.Equal(t, []feet.Phase{feet.PhaseCreating, feet.PhaseDone}, phases)

	assert.Equal(t, []gridtest.Row{
		gridtest.Header(2),
		gridtest.Match("9:00 AM", "A", "B", "12A"),
	}, dumpDocument(t, path, roster.MentoneGrammar))
}

func TestSync(t *testing.T) {
	t.Chdir(t.TempDir())
	doc := writeDocument(t, july1, gridtest.Layout{
		roster.Parkdale: {
			gridtest.Header(1),
			gridtest.Match("9:00 AM", "A", "B", "12A"),
		},
	})

	f := newFeet(t)
	var phases []feet.Phase
	f.OnPhase(func(p feet.Phase, _ string) { phases = append(phases, p) })

	result, err := f.Sync(context.Background(), doc, newRoster(match("A", "C", 9, 0, roster.Parkdale, 1)))
	require.NoError(t, err)

	assert.True(t, result.HasChanges())
	assert.True(t, result.Saved)
	assert.False(t, result.DryRun)
	assert.Equal(t, []feet.Phase{
		feet.PhaseOpening, feet.PhaseReconciling, feet.PhaseSaving, feet.PhaseChangeLog, feet.PhaseDone,
	}, phases)

	assert.Equal(t, []gridtest.Row{
		gridtest.Header(1),
		gridtest.Match("9:00 AM", "A", "C", "12A"),
	}, dumpDocument(t, doc, roster.Parkdale))

	assert.Equal(t, filepath.Join("changes", "1st Jul 2023.txt"), result.ChangeLogPath)
	data, err := os.ReadFile(result.ChangeLogPath)
	require.NoError(t, err)
	assert.Equal(t, result.ChangeLog, string(data))
	assert.Contains(t, string(data), "C (against A)")
	assert.Contains(t, result.Summary(), "1st Jul 2023.xlsx")
}

func TestSyncNoChanges(t *testing.T) {
	t.Chdir(t.TempDir())
	doc := writeDocument(t, july1, gridtest.Layout{
		roster.Parkdale: {
			gridtest.Header(1),
			gridtest.Match("9:00 AM", "A", "B", "12A"),
		},
	})

	result, err := newFeet(t).Sync(context.Background(), doc, newRoster(match("A", "B", 9, 0, roster.Parkdale, 1)))
	require.NoError(t, err)
	assert.False(t, result.HasChanges())
	assert.Equal(t, "No changes detected", result.Summary())
	assert.Contains(t, result.ChangeLog, changelog.NoChanges)
}

func TestSyncDryRun(t *testing.T) {
	t.Chdir(t.TempDir())
	doc := writeDocument(t, july1, gridtest.Layout{
		roster.Parkdale: {
			gridtest.Header(1),
			gridtest.Match("9:00 AM", "A", "B", "12A"),
		},
	})
	before, err := os.ReadFile(doc)
	require.NoError(t, err)

	result, err := newFeet(t).Sync(context.Background(), doc,
		newRoster(match("A", "C", 9, 0, roster.Parkdale, 1)),
		pkgsync.WithDryRun(true))
	require.NoError(t, err)

	assert.True(t, result.HasChanges())
	assert.False(t, result.Saved)
	assert.Empty(t, result.ChangeLogPath)
	assert.NotEmpty(t, result.ChangeLog)

	after, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.NoDirExists(t, "changes")
}

func TestSyncLeavesDocumentOnError(t *testing.T) {
	t.Chdir(t.TempDir())
	doc := writeDocument(t, july1, gridtest.Layout{
		roster.Parkdale: {
			gridtest.Match("9:00 AM", "A", "B", "12A"),
		},
	})
	before, err := os.ReadFile(doc)
	require.NoError(t, err)

	_, err = newFeet(t).Sync(context.Background(), doc, newRoster(match("A", "C", 9, 0, roster.Parkdale, 1)))
	assert.True(t, errors.IsSchemaError(err))

	after, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.NoDirExists(t, "changes")
}

func TestSyncDate(t *testing.T) {
	t.Chdir(t.TempDir())
	july8 := july1.AddDate(0, 0, 7)
	layout := gridtest.Layout{roster.Parkdale: {
		gridtest.Header(1),
		gridtest.Match("9:00 AM", "A", "B", "12A"),
	}}
	r := newRoster(match("A", "B", 9, 0, roster.Parkdale, 1))

	_, err := newFeet(t).Sync(context.Background(), writeDocument(t, july8, layout), r)
	assert.True(t, errors.IsValidationError(err))

	result, err := newFeet(t).Sync(context.Background(), writeDocument(t, july8, layout), r, pkgsync.WithIgnoreDate(true))
	require.NoError(t, err)
	assert.True(t, result.Saved)
}

func TestSyncSkipGrades(t *testing.T) {
	t.Chdir(t.TempDir())
	doc := writeDocument(t, july1, gridtest.Layout{
		roster.Parkdale: {
			gridtest.Header(1),
			gridtest.Match("9:00 AM", "A", "B", "12A"),
			gridtest.Match("9:40 AM", "E", "F", "14B"),
		},
	})

	f := newFeet(t, feet.WithSkipGrades("14B"))
	result, err := f.Sync(context.Background(), doc,
		newRoster(match("A", "B", 9, 0, roster.Parkdale, 1)),
		pkgsync.WithChangeLog(false))
	require.NoError(t, err)

	assert.Empty(t, result.ChangeLogPath)
	assert.False(t, result.HasChanges())
	assert.Contains(t, result.ChangeLog, "14B fixtures are for a different date and were not checked")
	assert.Equal(t, 1, result.Reconcile.Stats(roster.Parkdale).RowsBlanked)
}

func TestSyncInvalidInput(t *testing.T) {
	f := newFeet(t)
	ctx := context.Background()

	_, err := f.Sync(ctx, "missing.xlsx", newRoster(), pkgsync.WithTimeout(-time.Second))
	assert.True(t, errors.IsValidationError(err))

	_, err = f.Sync(ctx, "missing.xlsx", roster.New(time.Time{}))
	assert.True(t, errors.IsValidationError(err))

	_, err = f.Sync(ctx, filepath.Join(t.TempDir(), "missing.xlsx"), newRoster())
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	f := newFeet(t)
	want := newRoster(match("A", "B", 9, 0, roster.KingClub, 3))

	snapshot := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, roster.SaveFile(snapshot, want))
	got, skip, err := f.Load(ctx, snapshot)
	require.NoError(t, err)
	assert.Empty(t, skip)
	assert.Equal(t, want.Matches(), got.Matches())

	pages := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(pages, "12a.html"), []byte(gradePage("12")), 0o644))
	got, _, err = f.Load(ctx, pages)
	require.NoError(t, err)
	assert.Equal(t, []string{"12A"}, got.Grades())

	_, _, err = f.Load(ctx, filepath.Join(t.TempDir(), "nothing"))
	assert.Error(t, err)
}

func gradePage(age string) string {
	return fmt.Sprintf(`<html><body>
		<span class="sc-kEqYlL jndYxC">Saturday, 1 July 2023</span>
		<h2 class="sc-kEqYlL sc-1hg285i-0 eoUoDK hALyVo">Under %s Boys A Saturday</h2>
		<ul class="sc-10c3c88-4 iEXxNO"><li>
			<div><a class="sc-kEqYlL sc-10c3c88-13 gYjcIn johWCg">A</a></div>
			<div><a class="sc-kEqYlL sc-10c3c88-13 gYjcIn johWCg">B</a></div>
			<div class="sc-10c3c88-15 ivbMVO">
				<span class="sc-kEqYlL kjKiYr">09:00 AM</span>
				<a class="sc-kEqYlL sc-10c3c88-20 bBbCEa kreAQ">Parkdale Secondary College / Court 1</a>
			</div>
		</li></ul></body></html>`, age)
}

func TestScrape(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/comps", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<a href="/junior-domestic">Juniors</a>`)
	})
	mux.HandleFunc("/junior-domestic", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<ul class="sc-12ty7r5-0 hrILMC sc-1vy00ws-2 dBMkSW"><li><a href="/u12-saturday">U12</a></li></ul>`)
	})
	mux.HandleFunc("/u12-saturday", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, gradePage("12"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := newFeet(t, feet.WithCompetitionsURL(srv.URL+"/comps"), feet.WithHTTPClient(srv.Client()))
	var details []string
	f.OnPhase(func(_ feet.Phase, detail string) { details = append(details, detail) })

	r, skip, err := f.Scrape(context.Background())
	require.NoError(t, err)
	assert.Empty(t, skip)
	assert.Equal(t, july1, r.Date)
	assert.Equal(t, []string{"12A"}, r.Grades())
	assert.Equal(t, []string{srv.URL + "/comps"}, details)

	dir := filepath.Join(t.TempDir(), "pages")
	paths, err := f.Download(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "01-u12-saturday.html")}, paths)

	loaded, _, err := f.Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, r.Matches(), loaded.Matches())
}
