package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/healthnav/internal/client/client"
	"github.com/dmitrijs2005/healthnav/internal/client/fixtures"
	"github.com/dmitrijs2005/healthnav/internal/client/models"
	"github.com/dmitrijs2005/healthnav/internal/client/persist"
	"github.com/dmitrijs2005/healthnav/internal/client/repositories/snapshots"
	"github.com/dmitrijs2005/healthnav/internal/client/state"
	"github.com/dmitrijs2005/healthnav/internal/logging"
)

// withPersistence backs ta with a SQLite database in dir.
func withPersistence(t *testing.T, ta *testApp, dir string) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(dir, "nav.db"))
	require.NoError(t, err)
	ta.db = db
	ta.persistor = persist.New(snapshots.NewSQLiteRepository(db), logging.Discard())
	t.Cleanup(func() { ta.Close(context.Background()) })
}

func TestGetStatus(t *testing.T) {
	ta := newTestApp(t, "", state.State{})
	assert.Equal(t, "", ta.getStatus())

	ta.setMode(ModeOffline)
	assert.Equal(t, "(offline) ", ta.getStatus())

	ta = newTestApp(t, "", loggedInState())
	ta.setMode(ModeOnline)
	assert.Equal(t, "(ann@example.com online) ", ta.getStatus())
}

func TestRestore_SeedsFixturesOnFirstRun(t *testing.T) {
	ta := newTestApp(t, "", state.State{Alerts: state.AlertsState{Warnings: []models.Card{}}})
	ta.config.SeedFixtures = true
	withPersistence(t, ta, t.TempDir())

	ta.restore(context.Background())

	assert.Equal(t, fixtures.Cards(), ta.store.Alerts().Warnings)
	assert.Equal(t, "Loading...\n", ta.out.String())
}

func TestRestore_NoSeedKeepsListEmpty(t *testing.T) {
	ta := newTestApp(t, "", state.State{Alerts: state.AlertsState{Warnings: []models.Card{}}})
	withPersistence(t, ta, t.TempDir())

	ta.restore(context.Background())
	assert.Empty(t, ta.store.Alerts().Warnings)
}

func TestRestore_SessionSurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	first := newTestApp(t, "", state.State{})
	withPersistence(t, first, dir)
	first.restore(context.Background())
	first.store.Update(func(s *state.State) { *s = loggedInState(models.Card{ID: "9", Title: "Kept"}) })
	first.Close(context.Background())

	second := newTestApp(t, "", state.State{})
	second.config.SeedFixtures = true
	withPersistence(t, second, dir)
	second.restore(context.Background())

	assert.True(t, second.isLoggedIn())
	assert.Equal(t, "Ann", second.store.Session().User.Name)
	cards := second.store.Alerts().Warnings
	require.Len(t, cards, 1, "restored alerts win over fixtures")
	assert.Equal(t, "Kept", cards[0].Title)
	assert.Contains(t, second.out.String(), "Welcome back, Ann")
}

func TestRoot_RunsREPLUntilExit(t *testing.T) {
	lines := capturePrintln(t)
	ta := newTestApp(t, "about\nexit\n", state.State{Alerts: state.AlertsState{Warnings: []models.Card{}}})
	withPersistence(t, ta, t.TempDir())

	ta.Root(context.Background())

	out := ta.out.String()
	assert.Contains(t, out, "Welcome to Space Health Navigator")
	assert.Contains(t, out, "Our Mission")
	assert.Contains(t, *lines, "Bye!")
}
