package changelog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/feet/pkg/changelog"
	"github.com/agentstation/feet/pkg/roster"
)

func fixture(t1, t2 string, hour, minute int, v roster.Venue, c roster.Court) roster.Match {
	return roster.Match{Grade: "12A", Team1: t1, Team2: t2, Time: roster.NewClock(hour, minute), Venue: v, Court: c}
}

func TestNoChanges(t *testing.T) {
	log := changelog.New()
	assert.False(t, log.HasChanges())
	assert.Equal(t, "No Changes\n", log.String())
	assert.Equal(t, "No Changes", log.Summary().String())
}

func TestNoChangesKeepsNotes(t *testing.T) {
	log := changelog.New()
	require.NoError(t, log.Notes("14B", "", "14B"))
	assert.Equal(t, "No Changes\n\nNotes:\n  14B fixtures are for a different date and were not checked\n", log.String())
	assert.Equal(t, 1, log.Summary().Notes)
}

func TestPairedMove(t *testing.T) {
	log := changelog.New()
	require.NoError(t, log.Remove(fixture("A", "B", 9, 0, roster.KingClub, 1)))
	require.NoError(t, log.Add(fixture("A", "B", 10, 0, roster.Parkdale, 2)))

	report := log.Render()
	require.Len(t, report.Moved, 1)
	assert.Empty(t, report.Added)
	assert.Empty(t, report.Removed)
	assert.True(t, report.Moved[0].Paired())
	assert.ElementsMatch(t, []string{"A", "B"}, report.Moved[0].Teams)

	assert.Equal(t,
		"Moved:\n  12A A vs B: 9:00 AM King Club Court 1 -> 10:00 AM Parkdale Court 2\n",
		log.String())
}

func TestMoveDescribesChangedDimension(t *testing.T) {
	tests := []struct {
		name string
		from roster.Match
		to   roster.Match
		want string
	}{
		{
			name: "time only",
			from: fixture("A", "B", 9, 0, roster.KingClub, 1),
			to:   fixture("A", "B", 9, 40, roster.KingClub, 1),
			want: "12A A vs B: 9:00 AM -> 9:40 AM (King Club Court 1)",
		},
		{
			name: "location only",
			from: fixture("A", "B", 9, 0, roster.KingClub, 1),
			to:   fixture("A", "B", 9, 0, roster.MentoneGirls, 3),
			want: "12A A vs B: King Club Court 1 -> Mentone Girls Court 3 (9:00 AM)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := changelog.New()
			require.NoError(t, log.Remove(tt.from))
			require.NoError(t, log.Add(tt.to))
			assert.Equal(t, "Moved:\n  "+tt.want+"\n", log.String())
		})
	}
}

func TestTeamSubstitution(t *testing.T) {
	old := fixture("Eagles", "Falcons", 9, 0, roster.Parkdale, 1)
	neu := fixture("Hawks", "Falcons", 9, 0, roster.Parkdale, 1)

	log := changelog.New()
	require.NoError(t, log.RemoveHalf(old, false))
	require.NoError(t, log.AddHalf(neu, false))

	report := log.Render()
	assert.Empty(t, report.Moved)
	require.Len(t, report.Added, 1)
	require.Len(t, report.Removed, 1)
	assert.Equal(t, []string{"Hawks"}, report.Added[0].Teams)
	assert.Equal(t, []string{"Eagles"}, report.Removed[0].Teams)

	_, ok := log.Removed("Falcons")
	assert.False(t, ok, "the unchanged side is never registered")

	assert.Equal(t,
		"Added:\n  12A Hawks (against Falcons): 9:00 AM Parkdale Court 1\n\n"+
			"Removed:\n  12A Eagles (against Falcons): 9:00 AM Parkdale Court 1\n",
		log.String())
}

func TestFlipKeysSecondTeam(t *testing.T) {
	m := fixture("Eagles", "Falcons", 9, 0, roster.Parkdale, 1)

	log := changelog.New()
	require.NoError(t, log.RemoveHalf(m, true))

	got, ok := log.Removed("Falcons")
	require.True(t, ok)
	assert.Equal(t, "Falcons", got.Team1)
	assert.Equal(t, "Eagles", got.Team2)
	_, ok = log.Removed("Eagles")
	assert.False(t, ok)
}

func TestSideSwapIsDropped(t *testing.T) {
	old := fixture("A", "B", 9, 0, roster.KingClub, 1)
	neu := old.Swapped()

	log := changelog.New()
	require.NoError(t, log.RemoveHalf(old, false))
	require.NoError(t, log.AddHalf(neu, false))
	require.NoError(t, log.RemoveHalf(old, true))
	require.NoError(t, log.AddHalf(neu, true))

	assert.False(t, log.HasChanges())
}

func TestSingleTeamMove(t *testing.T) {
	log := changelog.New()
	require.NoError(t, log.Remove(fixture("A", "B", 9, 0, roster.KingClub, 1)))
	require.NoError(t, log.Add(fixture("A", "C", 11, 0, roster.KingClub, 2)))

	report := log.Render()
	require.Len(t, report.Moved, 1)
	assert.Equal(t, []string{"A"}, report.Moved[0].Teams)
	require.Len(t, report.Added, 1)
	assert.Equal(t, []string{"C"}, report.Added[0].Teams)
	require.Len(t, report.Removed, 1)
	assert.Equal(t, []string{"B"}, report.Removed[0].Teams)

	assert.Equal(t, changelog.Summary{Moved: 1, Added: 1, Removed: 1, Total: 3}, log.Summary())
}

func TestWholeMatchesReportedOnce(t *testing.T) {
	log := changelog.New()
	require.NoError(t, log.Add(fixture("A", "B", 9, 0, roster.KingClub, 1)))
	require.NoError(t, log.Add(fixture("C", "D", 9, 40, roster.KingClub, 1)))
	require.NoError(t, log.Remove(fixture("E", "F", 10, 20, roster.Parkdale, 4)))

	report := log.Render()
	require.Len(t, report.Added, 2)
	require.Len(t, report.Removed, 1)
	assert.Equal(t, []string{"A", "B"}, report.Added[0].Teams)
	assert.Equal(t, []string{"C", "D"}, report.Added[1].Teams)
	assert.Equal(t, []string{"E", "F"}, report.Removed[0].Teams)

	assert.Equal(t,
		"Added:\n"+
			"  12A A vs B: 9:00 AM King Club Court 1\n"+
			"  12A C vs D: 9:40 AM King Club Court 1\n\n"+
			"Removed:\n"+
			"  12A E vs F: 10:20 AM Parkdale Court 4\n",
		log.String())
}

func TestTeamKeepsLatestFixture(t *testing.T) {
	log := changelog.New()
	require.NoError(t, log.Add(fixture("A", "B", 9, 0, roster.KingClub, 1)))
	require.NoError(t, log.Add(fixture("A", "C", 10, 0, roster.Parkdale, 2)))

	report := log.Render()
	require.Len(t, report.Added, 2)
	assert.Equal(t, []string{"A", "C"}, report.Added[0].Teams)
	assert.Equal(t, roster.Parkdale, report.Added[0].Match.Venue)
	assert.Equal(t, []string{"B"}, report.Added[1].Teams)
	assert.Equal(t, "A", report.Added[1].Match.Team2)
}

func TestRenderSealsLog(t *testing.T) {
	log := changelog.New()
	require.NoError(t, log.Add(fixture("A", "B", 9, 0, roster.KingClub, 1)))

	first := log.Render()
	assert.Same(t, first, log.Render())

	m := fixture("C", "D", 9, 0, roster.KingClub, 2)
	assert.ErrorIs(t, log.Add(m), changelog.ErrSealed)
	assert.ErrorIs(t, log.Remove(m), changelog.ErrSealed)
	assert.ErrorIs(t, log.AddHalf(m, false), changelog.ErrSealed)
	assert.ErrorIs(t, log.RemoveHalf(m, true), changelog.ErrSealed)
	assert.ErrorIs(t, log.Notes("12A"), changelog.ErrSealed)

	_, ok := log.Added("A")
	assert.True(t, ok, "rendering does not consume the log")
}
