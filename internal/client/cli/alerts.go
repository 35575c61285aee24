package cli

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/dmitrijs2005/healthnav/internal/client/heatmap"
	"github.com/dmitrijs2005/healthnav/internal/client/models"
	"github.com/dmitrijs2005/healthnav/internal/client/state"
	"github.com/dmitrijs2005/healthnav/internal/filex"
)

// scatter around a single advisory on its detail map
const (
	detailScatterCount  = 40
	detailScatterSpread = 1.5
	detailZoom          = 7
)

// ListAlerts prints the advisories, optionally only those of one color.
func (a *App) ListAlerts(ctx context.Context, color string) error {
	cards := a.store.Alerts().Warnings
	if color != "" {
		c, ok := models.ParseColor(strings.ToLower(color))
		if !ok {
			fmt.Fprintf(a.out, "Unknown color %q. Known colors: %s\n", color, joinColors())
			return nil
		}
		cards = state.FilterByColor(cards, c)
	}

	if len(cards) == 0 {
		fmt.Fprintln(a.out, "No alerts.")
		return nil
	}
	for _, c := range cards {
		printCardLine(a.out, c)
	}
	return nil
}

func joinColors() string {
	names := make([]string, len(models.Colors))
	for i, c := range models.Colors {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// ShowAlert selects an advisory and prints its details. Advisories with a
// location also get a map of the surrounding area.
func (a *App) ShowAlert(ctx context.Context, id string) error {
	if !a.alertService.Select(id) {
		fmt.Fprintf(a.out, "No alert with id %s\n", id)
		return nil
	}
	card, _ := a.store.Alerts().Current()
	printCard(a.out, card)

	if card.Location == nil {
		a.view.Close()
		return nil
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(card.ID))
	center := orbPoint(*card.Location)

	_, err := a.view.Render(heatmap.Options{
		Points: []models.GeoPoint{*card.Location},
		Center: &center,
		Zoom:   detailZoom,
		Scatter: &heatmap.Scatter{
			Around: *card.Location,
			Count:  detailScatterCount,
			Spread: detailScatterSpread,
			Seed:   h.Sum64(),
		},
	})
	if err != nil {
		a.log.Error(ctx, "render alert map", "error", err)
		return err
	}
	a.printMap()
	return nil
}

// CloseAlert deselects the current advisory and discards its map.
func (a *App) CloseAlert(ctx context.Context) error {
	a.alertService.ClearSelection()
	a.view.Close()
	return nil
}

func (a *App) FetchAlerts(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	if err := a.alertService.FetchAll(ctx); err != nil {
		a.reportError("Could not load alerts", err)
		return err
	}
	fmt.Fprintf(a.out, "Loaded %d alerts.\n", len(a.store.Alerts().Warnings))
	return nil
}

// NewAlert prompts for an advisory and creates it on the server.
func (a *App) NewAlert(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	in, err := a.promptCard(models.Card{})
	if err != nil {
		a.reportError("Alert not created", err)
		return err
	}
	if in.Title == "" {
		fmt.Fprintln(a.out, "A title is required.")
		return nil
	}
	card, err := a.alertService.Create(ctx, in)
	if err != nil {
		a.reportError("Alert not created", err)
		return err
	}
	fmt.Fprintf(a.out, "Created alert %s.\n", card.ID)
	return nil
}

// EditAlert prompts for new values of an advisory. Blank answers keep the
// current value.
func (a *App) EditAlert(ctx context.Context, id string) error {
	if !a.requireLogin() {
		return nil
	}
	cur, ok := a.store.Alerts().Find(id)
	if !ok {
		fmt.Fprintf(a.out, "No alert with id %s\n", id)
		return nil
	}
	in, err := a.promptCard(cur)
	if err != nil {
		a.reportError("Alert not updated", err)
		return err
	}
	if _, err := a.alertService.Update(ctx, id, in); err != nil {
		a.reportError("Alert not updated", err)
		return err
	}
	fmt.Fprintf(a.out, "Updated alert %s.\n", id)
	return nil
}

func (a *App) DeleteAlert(ctx context.Context, id string) error {
	if !a.requireLogin() {
		return nil
	}
	if err := a.alertService.Delete(ctx, id); err != nil {
		a.reportError("Alert not deleted", err)
		return err
	}
	if a.store.Alerts().CurrentID == "" {
		a.view.Close()
	}
	fmt.Fprintf(a.out, "Deleted alert %s.\n", id)
	return nil
}

func (a *App) promptCard(cur models.Card) (models.CardInput, error) {
	var in models.CardInput
	text := func(label, current string) (string, error) {
		if current != "" {
			label = fmt.Sprintf("%s [%s]", label, current)
		}
		v, err := GetOptionalText(a.reader, label, a.out)
		if err != nil || v == nil {
			return "", err
		}
		return *v, nil
	}

	var err error
	if in.Title, err = text("Title", cur.Title); err != nil {
		return in, err
	}
	if in.Summary, err = text("Summary", cur.Summary); err != nil {
		return in, err
	}
	if in.Details, err = GetMultiline(a.reader, "Details", a.out); err != nil {
		return in, err
	}

	color, err := text("Color ("+joinColors()+")", string(cur.Color))
	if err != nil {
		return in, err
	}
	if color != "" {
		c, ok := models.ParseColor(strings.ToLower(color))
		if !ok {
			return in, fmt.Errorf("unknown color %q", color)
		}
		in.Color = c
	}
	if in.Icon, err = text("Icon", cur.Icon); err != nil {
		return in, err
	}

	recs, err := GetLines(a.reader, "Recommendations, one per line", a.out)
	if err != nil {
		return in, err
	}
	if len(recs) > 0 {
		in.Recommendations = recs
	}

	lat, err := GetOptionalFloat(a.reader, "Latitude", a.out)
	if err != nil {
		return in, err
	}
	lng, err := GetOptionalFloat(a.reader, "Longitude", a.out)
	if err != nil {
		return in, err
	}
	switch {
	case lat != nil && lng != nil:
		in.Location = &models.GeoPoint{Lat: *lat, Lng: *lng}
	case lat != nil || lng != nil:
		return in, errors.New("latitude and longitude must be given together")
	}
	return in, nil
}

// Heatmap shows every located advisory on a locked overview map. When file
// is set the layer is also exported as GeoJSON.
func (a *App) Heatmap(ctx context.Context, file string) error {
	var points []models.GeoPoint
	for _, c := range a.store.Alerts().Warnings {
		if c.Location != nil {
			points = append(points, *c.Location)
		}
	}
	if len(points) == 0 {
		a.view.Close()
		fmt.Fprintln(a.out, "No alerts with a location.")
		return nil
	}

	if _, err := a.view.Render(heatmap.Options{Points: points, Locked: true}); err != nil {
		a.log.Error(ctx, "render heatmap", "error", err)
		return err
	}
	a.printMap()

	if file == "" {
		return nil
	}
	data, err := a.view.Layer().GeoJSON()
	if err != nil {
		return err
	}
	path, err := filex.WriteInto(a.config.DownloadDir, file, data)
	if err != nil {
		fmt.Fprintf(a.out, "Export failed: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Heat layer saved to %s\n", path)
	return nil
}

func orbPoint(p models.GeoPoint) orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

func (a *App) printMap() {
	if a.canvas == nil {
		return
	}
	cfg := a.view.Config()
	fmt.Fprintf(a.out, "Map centered at %s, %s (zoom %d)\n",
		models.FormatFloat(cfg.Center.Lat()), models.FormatFloat(cfg.Center.Lon()), cfg.Zoom)
	fmt.Fprint(a.out, a.canvas.String())
}
