package client

import (
	"context"

	"github.com/dmitrijs2005/healthnav/internal/client/alerts"
	"github.com/dmitrijs2005/healthnav/internal/client/models"
)

// Client is the backend API. Calls that need authorization take the bearer
// access token explicitly; the client keeps no session of its own.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error)
	GetProfile(ctx context.Context, token string, id models.FlexID) (*models.UserPatch, error)
	UpdateProfile(ctx context.Context, token string, id models.FlexID, patch models.UserPatch) (*models.UserPatch, error)
	Logout(ctx context.Context, token string) error
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)

	ListAlerts(ctx context.Context, token string) ([]alerts.RawAlert, error)
	GetAlert(ctx context.Context, token, id string) (alerts.RawAlert, error)
	CreateAlert(ctx context.Context, token string, in models.CardInput) (alerts.RawAlert, error)
	UpdateAlert(ctx context.Context, token, id string, in models.CardInput) (alerts.RawAlert, error)
	DeleteAlert(ctx context.Context, token, id string) error

	// SendChatMessage opens a new thread when threadID is empty and
	// otherwise posts message to the thread.
	SendChatMessage(ctx context.Context, token, threadID, message string) (*models.ChatReply, error)
}
