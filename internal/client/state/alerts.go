package state

import (
	"slices"

	"github.com/dmitrijs2005/healthnav/internal/client/models"
)

// AlertsState is the alerts domain. CurrentID is the detail-view selection;
// it is either empty or the id of an element of Warnings.
type AlertsState struct {
	Warnings  []models.Card
	CurrentID string

	Status Status
	Error  string
}

// Clone returns a deep copy of a.
func (a AlertsState) Clone() AlertsState {
	c := a
	c.Warnings = models.CloneCards(a.Warnings)
	return c
}

func (a *AlertsState) index(id string) int {
	return slices.IndexFunc(a.Warnings, func(c models.Card) bool { return c.ID == id })
}

// Find returns a copy of the card with id.
func (a AlertsState) Find(id string) (models.Card, bool) {
	i := a.index(id)
	if i < 0 {
		return models.Card{}, false
	}
	return a.Warnings[i].Clone(), true
}

// Current returns the selected card.
func (a AlertsState) Current() (models.Card, bool) {
	if a.CurrentID == "" {
		return models.Card{}, false
	}
	return a.Find(a.CurrentID)
}

// Begin marks an operation as in flight and clears the last error.
func (a *AlertsState) Begin() {
	a.Status = StatusLoading
	a.Error = ""
}

// Fail records msg as the last error. The list is left untouched.
func (a *AlertsState) Fail(msg string) {
	a.Status = StatusFailed
	a.Error = msg
}

// ClearError resets the error and status.
func (a *AlertsState) ClearError() {
	a.Error = ""
	a.Status = StatusIdle
}

// ReplaceAll swaps in a freshly fetched list. A selection that no longer
// exists is dropped.
func (a *AlertsState) ReplaceAll(cards []models.Card) {
	a.Warnings = models.CloneCards(cards)
	if a.Warnings == nil {
		a.Warnings = []models.Card{}
	}
	if a.CurrentID != "" && a.index(a.CurrentID) < 0 {
		a.CurrentID = ""
	}
	a.Status = StatusSucceeded
}

// Append adds a newly created card and selects it.
func (a *AlertsState) Append(c models.Card) {
	if i := a.index(c.ID); i >= 0 {
		a.Warnings[i] = c.Clone()
	} else {
		a.Warnings = append(a.Warnings, c.Clone())
	}
	a.CurrentID = c.ID
	a.Status = StatusSucceeded
}

// Replace swaps the card with the same id for c. It reports whether such a
// card existed. The selection follows automatically since it is by id.
func (a *AlertsState) Replace(c models.Card) bool {
	a.Status = StatusSucceeded
	i := a.index(c.ID)
	if i < 0 {
		return false
	}
	a.Warnings[i] = c.Clone()
	return true
}

// Upsert replaces the card with the same id or appends c, then selects it.
func (a *AlertsState) Upsert(c models.Card) {
	if !a.Replace(c) {
		a.Warnings = append(a.Warnings, c.Clone())
	}
	a.CurrentID = c.ID
}

// Remove deletes the card with id, clearing the selection if it pointed
// at it.
func (a *AlertsState) Remove(id string) bool {
	a.Status = StatusSucceeded
	n := len(a.Warnings)
	a.Warnings = slices.DeleteFunc(a.Warnings, func(c models.Card) bool { return c.ID == id })
	if a.CurrentID == id {
		a.CurrentID = ""
	}
	return len(a.Warnings) != n
}

// Select points the detail view at id. Unknown ids are rejected.
func (a *AlertsState) Select(id string) bool {
	if a.index(id) < 0 {
		return false
	}
	a.CurrentID = id
	return true
}

// ClearSelection closes the detail view.
func (a *AlertsState) ClearSelection() {
	a.CurrentID = ""
}

// Recolor changes the color of one card.
func (a *AlertsState) Recolor(id string, color models.Color) bool {
	i := a.index(id)
	if i < 0 {
		return false
	}
	a.Warnings[i].Color = color
	return true
}

// FilterByColor returns copies of the cards tagged with color. An empty
// color returns every card. The input is not modified.
func FilterByColor(cards []models.Card, color models.Color) []models.Card {
	out := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		if color == "" || c.Color == color {
			out = append(out, c.Clone())
		}
	}
	return out
}
