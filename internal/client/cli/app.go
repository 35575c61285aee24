package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/healthnav/internal/client/alerts"
	"github.com/dmitrijs2005/healthnav/internal/client/client"
	"github.com/dmitrijs2005/healthnav/internal/client/config"
	"github.com/dmitrijs2005/healthnav/internal/client/fixtures"
	"github.com/dmitrijs2005/healthnav/internal/client/geo"
	"github.com/dmitrijs2005/healthnav/internal/client/heatmap"
	"github.com/dmitrijs2005/healthnav/internal/client/models"
	"github.com/dmitrijs2005/healthnav/internal/client/persist"
	"github.com/dmitrijs2005/healthnav/internal/client/repositories/snapshots"
	"github.com/dmitrijs2005/healthnav/internal/client/services"
	"github.com/dmitrijs2005/healthnav/internal/client/state"
	"github.com/dmitrijs2005/healthnav/internal/client/vault"
	"github.com/dmitrijs2005/healthnav/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// canvas size of the terminal heatmap
const (
	mapWidth  = 60
	mapHeight = 18
)

// chatter is the part of services.ChatService the REPL drives.
type chatter interface {
	Start(ctx context.Context) (models.ChatMessage, error)
	Send(ctx context.Context, text string) (models.ChatMessage, error)
	Reset()
}

type App struct {
	config *config.Config
	log    logging.Logger

	db        *sql.DB
	store     *state.Store
	persistor *persist.Persistor
	detach    func()

	authService  services.AuthService
	alertService services.AlertService
	chat         chatter

	vault    *vault.Vault
	capturer vault.Capturer

	view   *heatmap.View
	canvas *heatmap.Canvas

	modeMu sync.Mutex
	Mode   Mode

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.API, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := state.NewStore(state.State{
		Session: state.SessionState{Status: state.StatusIdle},
		Alerts:  state.AlertsState{Status: state.StatusIdle, Warnings: []models.Card{}},
	})
	fx := fixtures.NewRandom()

	var locator geo.Locator = geo.Denied{}
	if c.Location != nil {
		locator = geo.StaticLocator{c.Location.Lng, c.Location.Lat}
	}

	a := &App{
		config:    c,
		log:       log,
		db:        db,
		store:     store,
		persistor: persist.New(snapshots.NewSQLiteRepository(db), log),
		authService: services.NewAuthService(apiClient, store, log,
			services.WithLocator(locator),
			services.WithFallbackLocation(fx.FallbackLocation),
		),
		alertService: services.NewAlertService(apiClient, store, alerts.NewNormalizer(fx), log),
		chat:         services.NewChatService(apiClient, store, log),
		vault:        vault.New(),
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}
	a.capturer = vault.WithFallback(vault.Camera{}, vault.NewFilePicker(a.askImagePath))
	a.view = heatmap.NewView(heatmap.NewCanvasFactory(mapWidth, mapHeight, func(cv *heatmap.Canvas) { a.canvas = cv }))
	return a, nil
}

func (a *App) askImagePath(ctx context.Context) (string, error) {
	return GetSimpleText(a.reader, "Enter the path of an image file (empty to cancel)", a.out)
}

func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)
	a.Root(ctx)
}

// Close stops persistence and releases the API client and database.
func (a *App) Close(ctx context.Context) {
	if a.detach != nil {
		a.detach()
	}
	if a.view != nil {
		a.view.Close()
	}
	if a.authService != nil {
		_ = a.authService.Close(ctx)
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.Session().Authenticated
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(context.Background(), fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) mode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.Mode
}

// restore rehydrates the persisted state behind a loading placeholder,
// seeds the fixture advisories when none were restored, and starts
// write-through persistence.
func (a *App) restore(ctx context.Context) {
	fmt.Fprintln(a.out, "Loading...")

	res, err := a.persistor.Rehydrate(ctx, a.store)
	if err != nil {
		a.log.Error(ctx, "restoring saved state failed", "error", err)
	}
	if a.config.SeedFixtures && !res.Alerts {
		a.store.UpdateAlerts(func(s *state.AlertsState) { s.Warnings = fixtures.Cards() })
	}
	a.detach = a.persistor.Attach(ctx, a.store)

	if res.Session && a.isLoggedIn() {
		fmt.Fprintf(a.out, "Welcome back, %s\n", displayName(a.store.Session().User))
	}
}

// StartTokenWatcher pings the server every interval to track the
// online/offline mode and, while logged in, refreshes the access token
// before it expires. It returns when ctx is done.
func (a *App) StartTokenWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkSession(ctx, interval)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkSession(ctx context.Context, interval time.Duration) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.authService.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)

	if !a.isLoggedIn() {
		return
	}
	refreshed, err := a.authService.EnsureFresh(ctx, 2*interval)
	if err != nil {
		a.log.Warn(ctx, "session expired, please log in again", "error", err)
		return
	}
	if refreshed {
		a.log.Debug(ctx, "access token refreshed by watcher")
	}
}
