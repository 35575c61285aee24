// Package persist saves a whitelisted projection of the client state to the
// local database and restores it at startup.
//
// Only durable fields are written: the session's user, tokens and
// authenticated flag, and the advisory list. Status, error and the
// detail-view selection never leave memory.
package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/healthnav/internal/client/models"
	"github.com/dmitrijs2005/healthnav/internal/client/repositories/snapshots"
	"github.com/dmitrijs2005/healthnav/internal/client/state"
	"github.com/dmitrijs2005/healthnav/internal/common"
	"github.com/dmitrijs2005/healthnav/internal/logging"
)

const (
	SessionKey     = "persist:userAuth"
	SessionVersion = 1

	AlertsKey     = "persist:cards"
	AlertsVersion = 1
)

type sessionBlob struct {
	User            models.User `json:"user"`
	AccessToken     string      `json:"access_token"`
	RefreshToken    string      `json:"refresh_token"`
	IsAuthenticated bool        `json:"isAuthenticated"`
}

type alertsBlob struct {
	Warnings []models.Card `json:"warnings"`
}

// marshal is an indirection used to facilitate testing.
var marshal = json.Marshal

func projectSession(s state.SessionState) ([]byte, error) {
	return marshal(sessionBlob{
		User:            s.User,
		AccessToken:     s.AccessToken,
		RefreshToken:    s.RefreshToken,
		IsAuthenticated: s.Authenticated,
	})
}

func projectAlerts(a state.AlertsState) ([]byte, error) {
	w := a.Warnings
	if w == nil {
		w = []models.Card{}
	}
	return marshal(alertsBlob{Warnings: w})
}

// Result reports which domains were restored by Rehydrate.
type Result struct {
	Session bool
	Alerts  bool
}

// Persistor connects a state.Store to a snapshot repository.
type Persistor struct {
	repo snapshots.Repository
	log  logging.Logger

	mu   sync.Mutex
	last map[string][]byte
}

func New(repo snapshots.Repository, log logging.Logger) *Persistor {
	return &Persistor{repo: repo, log: log, last: map[string][]byte{}}
}

func (p *Persistor) load(ctx context.Context, key string, version int, into any) (bool, error) {
	snap, err := p.repo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if snap == nil {
		return false, nil
	}
	if snap.Version != version {
		p.log.Warn(ctx, "skipping persisted state",
			"key", key, "error", fmt.Errorf("%w: have %d, want %d", common.ErrSnapshotVersion, snap.Version, version))
		return false, nil
	}
	if err := json.Unmarshal(snap.Value, into); err != nil {
		p.log.Warn(ctx, "skipping corrupt persisted state", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// Rehydrate restores the persisted projection into store. Missing, outdated
// or corrupt blobs are skipped; only repository failures are returned.
func (p *Persistor) Rehydrate(ctx context.Context, store *state.Store) (Result, error) {
	var res Result

	var sb sessionBlob
	ok, err := p.load(ctx, SessionKey, SessionVersion, &sb)
	if err != nil {
		return res, fmt.Errorf("rehydrate session: %w", err)
	}
	res.Session = ok

	var ab alertsBlob
	ok, err = p.load(ctx, AlertsKey, AlertsVersion, &ab)
	if err != nil {
		return res, fmt.Errorf("rehydrate alerts: %w", err)
	}
	res.Alerts = ok

	store.Update(func(st *state.State) {
		if res.Session {
			st.Session.User = sb.User
			st.Session.AccessToken = sb.AccessToken
			st.Session.RefreshToken = sb.RefreshToken
			st.Session.Authenticated = sb.IsAuthenticated
		}
		if res.Alerts {
			if ab.Warnings == nil {
				ab.Warnings = []models.Card{}
			}
			st.Alerts.Warnings = ab.Warnings
		}
	})

	// Whatever is in the store now is, by construction, what storage holds
	// (or what it will hold after the first save).
	snap := store.Snapshot()
	var sess, al []byte
	if res.Session {
		if sess, err = projectSession(snap.Session); err != nil {
			return res, fmt.Errorf("encode session: %w", err)
		}
	}
	if res.Alerts {
		if al, err = projectAlerts(snap.Alerts); err != nil {
			return res, fmt.Errorf("encode alerts: %w", err)
		}
	}
	p.mu.Lock()
	if sess != nil {
		p.last[SessionKey] = sess
	}
	if al != nil {
		p.last[AlertsKey] = al
	}
	p.mu.Unlock()

	p.log.Debug(ctx, "state rehydrated", "session", res.Session, "alerts", res.Alerts)
	return res, nil
}

// Save writes the projection of st, skipping domains whose projection did
// not change since the last successful save.
func (p *Persistor) Save(ctx context.Context, st state.State) error {
	sess, err := projectSession(st.Session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	al, err := projectAlerts(st.Alerts)
	if err != nil {
		return fmt.Errorf("encode alerts: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var changed []snapshots.Snapshot
	if !bytes.Equal(p.last[SessionKey], sess) {
		changed = append(changed, snapshots.Snapshot{Key: SessionKey, Version: SessionVersion, Value: sess})
	}
	if !bytes.Equal(p.last[AlertsKey], al) {
		changed = append(changed, snapshots.Snapshot{Key: AlertsKey, Version: AlertsVersion, Value: al})
	}
	if len(changed) == 0 {
		return nil
	}

	if err := p.repo.PutAll(ctx, changed...); err != nil {
		return err
	}
	for _, s := range changed {
		p.last[s.Key] = s.Value
	}
	return nil
}

// Attach saves the store after every mutation until the returned function
// is called. Saves outlive ctx cancellation so the final state of a
// shutting-down session is still written.
func (p *Persistor) Attach(ctx context.Context, store *state.Store) (detach func()) {
	saveCtx := context.WithoutCancel(ctx)
	return store.Subscribe(func(st state.State) {
		if err := p.Save(saveCtx, st); err != nil {
			p.log.Error(saveCtx, "persist state failed", "error", err)
		}
	})
}

// Purge removes every persisted blob.
func (p *Persistor) Purge(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.repo.Clear(ctx); err != nil {
		return err
	}
	p.last = map[string][]byte{}
	return nil
}
