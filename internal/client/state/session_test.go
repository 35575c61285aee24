package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/healthnav/internal/client/models"
)

func TestSessionState_AuthenticateAndReject(t *testing.T) {
	var s SessionState
	s.Begin()
	assert.Equal(t, StatusLoading, s.Status)

	u := models.User{ID: "1", Email: "a@b.com", Height: models.Ptr(180.0)}
	s.Authenticate(u, models.TokenPair{AccessToken: "a.b.c", RefreshToken: "r.r.r"})
	assert.True(t, s.Authenticated)
	assert.Equal(t, StatusSucceeded, s.Status)
	assert.Equal(t, "a.b.c", s.AccessToken)

	*u.Height = 1
	assert.Equal(t, 180.0, *s.User.Height, "user must be copied")

	s.Begin()
	s.Reject("bad credentials")
	assert.False(t, s.Authenticated)
	assert.Equal(t, StatusFailed, s.Status)
	assert.Equal(t, "bad credentials", s.Error)
	assert.Equal(t, "a.b.c", s.AccessToken, "tokens untouched on failure")
	assert.Equal(t, "r.r.r", s.RefreshToken)
}

func TestSessionState_SetTokensKeepsRefreshWhenEmpty(t *testing.T) {
	s := SessionState{AccessToken: "old", RefreshToken: "keep"}
	s.SetTokens(models.TokenPair{AccessToken: "new"})
	assert.Equal(t, "new", s.AccessToken)
	assert.Equal(t, "keep", s.RefreshToken)
	assert.True(t, s.Authenticated)

	s.SetTokens(models.TokenPair{AccessToken: "n2", RefreshToken: "r2"})
	assert.Equal(t, "r2", s.RefreshToken)
}

func TestSessionState_MergeUserAndLocation(t *testing.T) {
	s := SessionState{User: models.User{ID: "1", Name: "Ann", Illnesses: "none"}}
	s.MergeUser(models.UserPatch{Weight: models.Ptr(60.5), Illnesses: models.Ptr("asthma")})
	s.SetLocation(1.5, -2.5)

	assert.Equal(t, "Ann", s.User.Name)
	assert.Equal(t, "asthma", s.User.Illnesses)
	require.NotNil(t, s.User.Weight)
	assert.Equal(t, 60.5, *s.User.Weight)
	assert.Equal(t, 1.5, *s.User.LocationLat)
	assert.Equal(t, -2.5, *s.User.LocationLng)
}

func TestSessionState_ClearAndClearError(t *testing.T) {
	s := SessionState{
		User:          models.User{ID: "1"},
		AccessToken:   "a",
		RefreshToken:  "r",
		Authenticated: true,
		Status:        StatusFailed,
		Error:         "x",
	}
	s.ClearError()
	assert.Empty(t, s.Error)
	assert.Equal(t, StatusIdle, s.Status)
	assert.True(t, s.Authenticated)

	s.Clear()
	assert.Equal(t, SessionState{Status: StatusIdle}, s)
}
