package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/healthnav/internal/client/alerts"
	"github.com/dmitrijs2005/healthnav/internal/client/models"
	"github.com/dmitrijs2005/healthnav/internal/client/state"
	"github.com/dmitrijs2005/healthnav/internal/logging"
)

const validToken = "header.payload.signature"

// fakeClient implements client.Client for unit tests. Unset funcs return
// zero values.
type fakeClient struct {
	calls atomic.Int32

	mu   sync.Mutex
	last map[string][]any

	LoginFn         func(models.Credentials) (*models.AuthResponse, error)
	RegisterFn      func(models.RegisterData) (*models.AuthResponse, error)
	GetProfileFn    func(token string, id models.FlexID) (*models.UserPatch, error)
	UpdateProfileFn func(token string, id models.FlexID, p models.UserPatch) (*models.UserPatch, error)
	LogoutFn        func(token string) error
	RefreshFn       func(rt string) (*models.TokenPair, error)
	ListAlertsFn    func(token string) ([]alerts.RawAlert, error)
	GetAlertFn      func(token, id string) (alerts.RawAlert, error)
	CreateAlertFn   func(token string, in models.CardInput) (alerts.RawAlert, error)
	UpdateAlertFn   func(token, id string, in models.CardInput) (alerts.RawAlert, error)
	DeleteAlertFn   func(token, id string) error
	ChatFn          func(token, thread, msg string) (*models.ChatReply, error)
}

func (f *fakeClient) record(op string, args ...any) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.last == nil {
		f.last = map[string][]any{}
	}
	f.last[op] = args
}

func (f *fakeClient) args(op string) []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last[op]
}

func (f *fakeClient) Calls() int { return int(f.calls.Load()) }

func (f *fakeClient) Close() error { return nil }
func (f *fakeClient) Ping(ctx context.Context) error { return nil }

func (f *fakeClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	f.record("login", creds)
	if f.LoginFn == nil {
		return nil, nil
	}
	return f.LoginFn(creds)
}

func (f *fakeClient) Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error) {
	f.record("register", data)
	if f.RegisterFn == nil {
		return &models.AuthResponse{Message: "User registered"}, nil
	}
	return f.RegisterFn(data)
}

func (f *fakeClient) GetProfile(ctx context.Context, token string, id models.FlexID) (*models.UserPatch, error) {
	f.record("get_profile", token, id)
	if f.GetProfileFn == nil {
		return nil, nil
	}
	return f.GetProfileFn(token, id)
}

func (f *fakeClient) UpdateProfile(ctx context.Context, token string, id models.FlexID, p models.UserPatch) (*models.UserPatch, error) {
	f.record("update_profile", token, id, p)
	if f.UpdateProfileFn == nil {
		return nil, nil
	}
	return f.UpdateProfileFn(token, id, p)
}

func (f *fakeClient) Logout(ctx context.Context, token string) error {
	f.record("logout", token)
	if f.LogoutFn == nil {
		return nil
	}
	return f.LogoutFn(token)
}

func (f *fakeClient) Refresh(ctx context.Context, rt string) (*models.TokenPair, error) {
	f.record("refresh", rt)
	if f.RefreshFn == nil {
		return nil, nil
	}
	return f.RefreshFn(rt)
}

func (f *fakeClient) ListAlerts(ctx context.Context, token string) ([]alerts.RawAlert, error) {
	f.record("list_alerts", token)
	if f.ListAlertsFn == nil {
		return nil, nil
	}
	return f.ListAlertsFn(token)
}

func (f *fakeClient) GetAlert(ctx context.Context, token, id string) (alerts.RawAlert, error) {
	f.record("get_alert", token, id)
	if f.GetAlertFn == nil {
		return alerts.RawAlert{}, nil
	}
	return f.GetAlertFn(token, id)
}

func (f *fakeClient) CreateAlert(ctx context.Context, token string, in models.CardInput) (alerts.RawAlert, error) {
	f.record("create_alert", token, in)
	if f.CreateAlertFn == nil {
		return alerts.RawAlert{}, nil
	}
	return f.CreateAlertFn(token, in)
}

func (f *fakeClient) UpdateAlert(ctx context.Context, token, id string, in models.CardInput) (alerts.RawAlert, error) {
	f.record("update_alert", token, id, in)
	if f.UpdateAlertFn == nil {
		return alerts.RawAlert{}, nil
	}
	return f.UpdateAlertFn(token, id, in)
}

func (f *fakeClient) DeleteAlert(ctx context.Context, token, id string) error {
	f.record("delete_alert", token, id)
	if f.DeleteAlertFn == nil {
		return nil
	}
	return f.DeleteAlertFn(token, id)
}

func (f *fakeClient) SendChatMessage(ctx context.Context, token, thread, msg string) (*models.ChatReply, error) {
	f.record("chat", token, thread, msg)
	if f.ChatFn == nil {
		return nil, nil
	}
	return f.ChatFn(token, thread, msg)
}

func loggedIn() state.State {
	return state.State{Session: state.SessionState{
		User:          models.User{ID: "7", Email: "a@b.com", Name: "Ann", Height: models.Ptr(170.0)},
		AccessToken:   validToken,
		RefreshToken:  "refresh.token.value",
		Authenticated: true,
		Status:        state.StatusSucceeded,
	}}
}

func discard() logging.Logger { return logging.Discard() }
