package state

import (
	"github.com/dmitrijs2005/healthnav/internal/client/models"
)

// SessionState is the session domain.
type SessionState struct {
	User          models.User
	AccessToken   string
	RefreshToken  string
	Authenticated bool

	Status Status
	Error  string
}

// Clone returns a deep copy of s.
func (s SessionState) Clone() SessionState {
	c := s
	c.User = s.User.Clone()
	return c
}

// Begin marks an operation as in flight and clears the last error.
func (s *SessionState) Begin() {
	s.Status = StatusLoading
	s.Error = ""
}

// Authenticate stores the user and both tokens of a successful login.
func (s *SessionState) Authenticate(u models.User, tp models.TokenPair) {
	s.User = u.Clone()
	s.AccessToken = tp.AccessToken
	s.RefreshToken = tp.RefreshToken
	s.Authenticated = true
	s.Status = StatusSucceeded
	s.Error = ""
}

// Succeed marks the operation finished without touching the session data.
func (s *SessionState) Succeed() {
	s.Status = StatusSucceeded
	s.Error = ""
}

// Fail records msg as the last error. Tokens and user are left untouched.
func (s *SessionState) Fail(msg string) {
	s.Status = StatusFailed
	s.Error = msg
}

// Reject records a failed authentication attempt.
func (s *SessionState) Reject(msg string) {
	s.Fail(msg)
	s.Authenticated = false
}

// MergeUser applies the non-nil fields of p to the current user.
func (s *SessionState) MergeUser(p models.UserPatch) {
	s.User.Merge(p)
}

// SetTokens stores a refreshed token pair. An empty refresh token keeps the
// current one.
func (s *SessionState) SetTokens(tp models.TokenPair) {
	s.AccessToken = tp.AccessToken
	if tp.RefreshToken != "" {
		s.RefreshToken = tp.RefreshToken
	}
	s.Authenticated = true
}

// SetLocation updates the user's coordinates.
func (s *SessionState) SetLocation(lat, lng float64) {
	s.User.LocationLat = models.Ptr(lat)
	s.User.LocationLng = models.Ptr(lng)
}

// Clear drops user, tokens and the authenticated flag and resets status.
func (s *SessionState) Clear() {
	*s = SessionState{Status: StatusIdle}
}

// ClearError resets the error and status.
func (s *SessionState) ClearError() {
	s.Error = ""
	s.Status = StatusIdle
}
