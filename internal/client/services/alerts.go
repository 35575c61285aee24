package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/healthnav/internal/client/alerts"
	"github.com/dmitrijs2005/healthnav/internal/client/client"
	"github.com/dmitrijs2005/healthnav/internal/client/models"
	"github.com/dmitrijs2005/healthnav/internal/client/state"
	"github.com/dmitrijs2005/healthnav/internal/client/token"
	"github.com/dmitrijs2005/healthnav/internal/logging"
)

// AlertService mediates the advisory list. Every remote operation checks
// the access token shape first and changes the list only after the server
// confirms.
type AlertService interface {
	FetchAll(ctx context.Context) error
	FetchByID(ctx context.Context, id string) (models.Card, error)
	Create(ctx context.Context, in models.CardInput) (models.Card, error)
	Update(ctx context.Context, id string, in models.CardInput) (models.Card, error)
	Delete(ctx context.Context, id string) error

	Select(id string) bool
	ClearSelection()
	Recolor(id string, color models.Color) bool
}

type alertService struct {
	client client.Client
	store  *state.Store
	norm   *alerts.Normalizer
	log    logging.Logger
}

// NewAlertService constructs an AlertService. norm converts server records
// into cards.
func NewAlertService(c client.Client, store *state.Store, norm *alerts.Normalizer, log logging.Logger) AlertService {
	return &alertService{client: c, store: store, norm: norm, log: log.With("service", "alerts")}
}

func (s *alertService) failed(ctx context.Context, op string, err error) {
	msg := ErrorMessage(err)
	s.log.Warn(ctx, op+" failed", "error", err)
	s.store.UpdateAlerts(func(a *state.AlertsState) { a.Fail(msg) })
}

// begin validates the token shape and marks the domain as loading. A bad
// token fails the operation without any network call.
func (s *alertService) begin(ctx context.Context, op string) (string, error) {
	tok := s.store.Session().AccessToken
	if err := token.Validate(tok).Err(); err != nil {
		s.failed(ctx, op, err)
		return "", err
	}
	s.store.UpdateAlerts((*state.AlertsState).Begin)
	return tok, nil
}

// FetchAll replaces the whole list with the server's.
func (s *alertService) FetchAll(ctx context.Context) error {
	tok, err := s.begin(ctx, "fetch alerts")
	if err != nil {
		return err
	}

	raws, err := s.client.ListAlerts(ctx, tok)
	if err != nil {
		s.failed(ctx, "fetch alerts", err)
		return fmt.Errorf("fetch alerts: %w", err)
	}

	cards := s.norm.ToCards(raws)
	s.store.UpdateAlerts(func(a *state.AlertsState) { a.ReplaceAll(cards) })
	s.log.Debug(ctx, "alerts fetched", "count", len(cards))
	return nil
}

// FetchByID loads one advisory, stores it and selects it.
func (s *alertService) FetchByID(ctx context.Context, id string) (models.Card, error) {
	tok, err := s.begin(ctx, "fetch alert")
	if err != nil {
		return models.Card{}, err
	}

	raw, err := s.client.GetAlert(ctx, tok, id)
	if err != nil {
		s.failed(ctx, "fetch alert", err)
		return models.Card{}, fmt.Errorf("fetch alert %s: %w", id, err)
	}

	card := s.norm.ToCard(raw)
	s.store.UpdateAlerts(func(a *state.AlertsState) { a.Upsert(card) })
	return card, nil
}

// Create posts a new advisory and appends the server's version.
func (s *alertService) Create(ctx context.Context, in models.CardInput) (models.Card, error) {
	tok, err := s.begin(ctx, "create alert")
	if err != nil {
		return models.Card{}, err
	}

	raw, err := s.client.CreateAlert(ctx, tok, in)
	if err != nil {
		s.failed(ctx, "create alert", err)
		return models.Card{}, fmt.Errorf("create alert: %w", err)
	}

	card := s.norm.ToCard(raw)
	s.store.UpdateAlerts(func(a *state.AlertsState) { a.Append(card) })
	s.log.Info(ctx, "alert created", "id", card.ID)
	return card, nil
}

// Update replaces the advisory with the server's representation. Fields of
// the previous local version are not merged back.
func (s *alertService) Update(ctx context.Context, id string, in models.CardInput) (models.Card, error) {
	tok, err := s.begin(ctx, "update alert")
	if err != nil {
		return models.Card{}, err
	}

	raw, err := s.client.UpdateAlert(ctx, tok, id, in)
	if err != nil {
		s.failed(ctx, "update alert", err)
		return models.Card{}, fmt.Errorf("update alert %s: %w", id, err)
	}

	card := s.norm.ToCard(raw)
	if card.ID == "" {
		card.ID = id
	}
	s.store.UpdateAlerts(func(a *state.AlertsState) {
		if !a.Replace(card) {
			a.Warnings = append(a.Warnings, card.Clone())
		}
	})
	return card, nil
}

// Delete removes the advisory on the server, then locally.
func (s *alertService) Delete(ctx context.Context, id string) error {
	tok, err := s.begin(ctx, "delete alert")
	if err != nil {
		return err
	}

	if err := s.client.DeleteAlert(ctx, tok, id); err != nil {
		s.failed(ctx, "delete alert", err)
		return fmt.Errorf("delete alert %s: %w", id, err)
	}

	s.store.UpdateAlerts(func(a *state.AlertsState) { a.Remove(id) })
	s.log.Info(ctx, "alert deleted", "id", id)
	return nil
}

// Select points the detail view at id.
func (s *alertService) Select(id string) bool {
	var ok bool
	s.store.UpdateAlerts(func(a *state.AlertsState) { ok = a.Select(id) })
	return ok
}

// ClearSelection closes the detail view.
func (s *alertService) ClearSelection() {
	s.store.UpdateAlerts((*state.AlertsState).ClearSelection)
}

// Recolor retags one advisory locally.
func (s *alertService) Recolor(id string, color models.Color) bool {
	var ok bool
	s.store.UpdateAlerts(func(a *state.AlertsState) { ok = a.Recolor(id, color) })
	return ok
}
