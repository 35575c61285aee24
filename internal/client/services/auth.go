package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/healthnav/internal/client/client"
	"github.com/dmitrijs2005/healthnav/internal/client/geo"
	"github.com/dmitrijs2005/healthnav/internal/client/models"
	"github.com/dmitrijs2005/healthnav/internal/client/state"
	"github.com/dmitrijs2005/healthnav/internal/client/token"
	"github.com/dmitrijs2005/healthnav/internal/client/validation"
	"github.com/dmitrijs2005/healthnav/internal/common"
	"github.com/dmitrijs2005/healthnav/internal/logging"
)

// AuthService defines the session operations.
//
// Contract:
//   - Login: authenticate and store the user and both tokens.
//   - Register: create an account; coordinates come from the locator with a
//     fallback, and the session is populated only when the server returns
//     a user and both tokens.
//   - UpdateProfile / LoadProfile: write or read the profile and merge the
//     returned fields into the session user.
//   - Logout: notify the server if possible, then always clear the session.
//   - Refresh: exchange the refresh token; failure forces a logout.
//   - EnsureFresh: refresh when the access token is about to expire.
//
// Local form validation errors are returned as validation.FieldErrors and do
// not touch the store.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) error
	Register(ctx context.Context, data models.RegisterData) (RegisterResult, error)
	UpdateProfile(ctx context.Context, patch models.UserPatch) error
	LoadProfile(ctx context.Context) error
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
	EnsureFresh(ctx context.Context, window time.Duration) (bool, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// RegisterResult describes a completed registration.
type RegisterResult struct {
	Message  string
	LoggedIn bool
	Location orb.Point
	Source   geo.Source
}

// AuthOption configures an AuthService.
type AuthOption func(*authService)

// WithLocator sets the device location source used at registration.
func WithLocator(l geo.Locator) AuthOption {
	return func(a *authService) { a.locator = l }
}

// WithFallbackLocation sets the coordinate used when the locator fails.
func WithFallbackLocation(f func() orb.Point) AuthOption {
	return func(a *authService) { a.fallback = f }
}

// WithLocateTimeout bounds the single location query.
func WithLocateTimeout(d time.Duration) AuthOption {
	return func(a *authService) { a.locateTimeout = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) AuthOption {
	return func(a *authService) { a.now = now }
}

type authService struct {
	client   client.Client
	store    *state.Store
	log      logging.Logger
	validate *validation.Validator

	locator       geo.Locator
	fallback      func() orb.Point
	locateTimeout time.Duration
	now           func() time.Time

	refreshes singleflight.Group
}

// NewAuthService constructs an AuthService bound to the given API client and
// store. Without WithLocator, registration always uses the fallback.
func NewAuthService(c client.Client, store *state.Store, log logging.Logger, opts ...AuthOption) AuthService {
	a := &authService{
		client:        c,
		store:         store,
		log:           log.With("service", "auth"),
		validate:      validation.New(),
		fallback:      func() orb.Point { return orb.Point{} },
		locateTimeout: geo.DefaultTimeout,
		now:           time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *authService) fail(ctx context.Context, op string, err error) string {
	msg := ErrorMessage(err)
	a.log.Warn(ctx, op+" failed", "error", err)
	return msg
}

// Login authenticates against the server. On rejection the session keeps
// its tokens, is marked unauthenticated and carries the error message.
func (a *authService) Login(ctx context.Context, creds models.Credentials) error {
	creds.Email = strings.TrimSpace(creds.Email)
	if fe := a.validate.Login(creds); fe != nil {
		return fe
	}

	a.store.UpdateSession((*state.SessionState).Begin)

	resp, err := a.client.Login(ctx, creds)
	if err == nil && (resp == nil || resp.User == nil || !resp.TokenPair.Complete()) {
		err = ErrIncompleteAuth
	}
	if err != nil {
		msg := a.fail(ctx, "login", err)
		a.store.UpdateSession(func(s *state.SessionState) { s.Reject(msg) })
		return fmt.Errorf("login: %w", err)
	}

	a.store.UpdateSession(func(s *state.SessionState) { s.Authenticate(*resp.User, resp.TokenPair) })
	a.log.Info(ctx, "logged in", "user", resp.User.ID)
	return nil
}

// Register creates an account. Unless data.HasLocation is set, coordinates
// are resolved once through the locator, falling back on denial, error or
// timeout.
func (a *authService) Register(ctx context.Context, data models.RegisterData) (RegisterResult, error) {
	data.Name = strings.TrimSpace(data.Name)
	data.Email = strings.TrimSpace(data.Email)
	if fe := a.validate.Register(data); fe != nil {
		return RegisterResult{}, fe
	}

	res := RegisterResult{Location: orb.Point{data.LocationLng, data.LocationLat}, Source: geo.SourceDevice}
	if !data.HasLocation {
		p, src, err := geo.Resolve(ctx, a.locator, a.locateTimeout, a.fallback)
		if err != nil {
			a.log.Info(ctx, "device location unavailable, using fallback", "error", err)
		}
		data.LocationLat, data.LocationLng = p.Lat(), p.Lon()
		data.HasLocation = true
		res.Location, res.Source = p, src
	}

	a.store.UpdateSession((*state.SessionState).Begin)

	resp, err := a.client.Register(ctx, data)
	if err != nil {
		msg := a.fail(ctx, "register", err)
		a.store.UpdateSession(func(s *state.SessionState) { s.Fail(msg) })
		return res, fmt.Errorf("register: %w", err)
	}

	if resp != nil {
		res.Message = resp.Message
	}
	if resp != nil && resp.User != nil && resp.TokenPair.Complete() {
		res.LoggedIn = true
		lat, lng := data.LocationLat, data.LocationLng
		a.store.UpdateSession(func(s *state.SessionState) {
			s.Authenticate(*resp.User, resp.TokenPair)
			if s.User.LocationLat == nil || s.User.LocationLng == nil {
				s.SetLocation(lat, lng)
			}
		})
	} else {
		a.store.UpdateSession((*state.SessionState).Succeed)
	}
	a.log.Info(ctx, "registered", "email", data.Email, "logged_in", res.LoggedIn, "location", res.Source)
	return res, nil
}

func (a *authService) authorized() (state.SessionState, error) {
	s := a.store.Session()
	if err := token.Validate(s.AccessToken).Err(); err != nil {
		return s, err
	}
	if s.User.ID == "" {
		return s, common.ErrNoUserID
	}
	return s, nil
}

// UpdateProfile sends the known fields of patch and merges the server's
// answer into the session user. A failure leaves the user untouched.
func (a *authService) UpdateProfile(ctx context.Context, patch models.UserPatch) error {
	if fe := a.validate.Profile(patch); fe != nil {
		return fe
	}
	s, err := a.authorized()
	if err != nil {
		msg := a.fail(ctx, "update profile", err)
		a.store.UpdateSession(func(s *state.SessionState) { s.Fail(msg) })
		return err
	}
	if patch.IsEmpty() {
		return nil
	}

	a.store.UpdateSession((*state.SessionState).Begin)

	got, err := a.client.UpdateProfile(ctx, s.AccessToken, s.User.ID, patch)
	if err != nil {
		msg := a.fail(ctx, "update profile", err)
		a.store.UpdateSession(func(s *state.SessionState) { s.Fail(msg) })
		return fmt.Errorf("update profile: %w", err)
	}

	merged := patch
	if got != nil {
		merged = *got
	}
	a.store.UpdateSession(func(s *state.SessionState) {
		s.MergeUser(merged)
		s.Succeed()
	})
	return nil
}

// LoadProfile reads the user's profile from the server.
func (a *authService) LoadProfile(ctx context.Context) error {
	s, err := a.authorized()
	if err != nil {
		msg := a.fail(ctx, "load profile", err)
		a.store.UpdateSession(func(s *state.SessionState) { s.Fail(msg) })
		return err
	}

	a.store.UpdateSession((*state.SessionState).Begin)

	got, err := a.client.GetProfile(ctx, s.AccessToken, s.User.ID)
	if err != nil {
		msg := a.fail(ctx, "load profile", err)
		a.store.UpdateSession(func(s *state.SessionState) { s.Fail(msg) })
		return fmt.Errorf("load profile: %w", err)
	}

	a.store.UpdateSession(func(s *state.SessionState) {
		if got != nil {
			s.MergeUser(*got)
		}
		s.Succeed()
	})
	return nil
}

// Logout tells the server, then clears the session whatever the answer.
func (a *authService) Logout(ctx context.Context) error {
	if tok := a.store.Session().AccessToken; tok != "" {
		if err := a.client.Logout(ctx, tok); err != nil {
			a.log.Warn(ctx, "server logout failed, clearing local session anyway", "error", err)
		}
	}
	a.store.UpdateSession((*state.SessionState).Clear)
	a.log.Info(ctx, "logged out")
	return nil
}

// Refresh exchanges the refresh token for a new access token. Concurrent
// calls share one request. On failure the whole session is cleared, unless
// the caller cancelled the request.
func (a *authService) Refresh(ctx context.Context) error {
	_, err, _ := a.refreshes.Do("refresh", func() (any, error) {
		return nil, a.refresh(ctx)
	})
	return err
}

func (a *authService) refresh(ctx context.Context) error {
	rt := a.store.Session().RefreshToken
	if rt == "" {
		a.store.UpdateSession(func(s *state.SessionState) {
			s.Clear()
			s.Fail(common.ErrRefreshTokenMissing.Error())
		})
		return common.ErrRefreshTokenMissing
	}

	tp, err := a.client.Refresh(ctx, rt)
	if err == nil && (tp == nil || tp.AccessToken == "") {
		err = ErrIncompleteAuth
	}
	if err != nil {
		msg := a.fail(ctx, "refresh", err)
		// A refresh abandoned by the caller says nothing about the tokens.
		keep := ctx.Err() != nil || errors.Is(err, context.Canceled)
		a.store.UpdateSession(func(s *state.SessionState) {
			if !keep {
				s.Clear()
			}
			s.Fail(msg)
		})
		return fmt.Errorf("refresh: %w", err)
	}

	a.store.UpdateSession(func(s *state.SessionState) {
		s.SetTokens(*tp)
		s.Succeed()
	})
	a.log.Debug(ctx, "access token refreshed")
	return nil
}

// EnsureFresh refreshes the access token when it expires within window. It
// reports whether a refresh was attempted. Tokens without a readable expiry
// are left alone.
func (a *authService) EnsureFresh(ctx context.Context, window time.Duration) (bool, error) {
	s := a.store.Session()
	if !s.Authenticated || s.AccessToken == "" {
		return false, nil
	}
	claims, err := token.Inspect(s.AccessToken)
	if err != nil {
		a.log.Debug(ctx, "access token has no readable claims", "error", err)
		return false, nil
	}
	if !claims.HasExpiry() || !claims.ExpiresWithin(window, a.now()) {
		return false, nil
	}
	return true, a.Refresh(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
