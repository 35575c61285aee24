package alerts

import (
	"cmp"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/paulmach/orb"

	"github.com/dmitrijs2005/healthnav/internal/client/models"
)

// PointSource supplies a stand-in location for alerts without one.
type PointSource interface {
	RandomPoint() orb.Point
}

// Normalizer converts RawAlert records into cards.
type Normalizer struct {
	points PointSource
}

// NewNormalizer returns a Normalizer. With a nil source, alerts without a
// location keep a nil Location.
func NewNormalizer(points PointSource) *Normalizer {
	return &Normalizer{points: points}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
}

func parseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func titleFor(ra RawAlert) string {
	if t := strings.TrimSpace(ra.Title); t != "" {
		return t
	}
	words := strings.FieldsFunc(ra.AlertType, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	if len(words) == 0 {
		return "Health Alert"
	}
	return strings.Join(words, " ") + " Alert"
}

func (n *Normalizer) location(ra RawAlert) *models.GeoPoint {
	switch {
	case ra.Location != nil:
		loc := *ra.Location
		if loc.Intensity == nil && ra.Intensity != nil {
			loc.Intensity = models.Ptr(*ra.Intensity)
		}
		return &loc
	case ra.Latitude != nil && ra.Longitude != nil:
		loc := models.GeoPoint{Lat: *ra.Latitude, Lng: *ra.Longitude}
		if ra.Intensity != nil {
			loc.Intensity = models.Ptr(*ra.Intensity)
		}
		return &loc
	case n.points != nil:
		p := n.points.RandomPoint()
		loc := models.GeoPoint{Lat: p.Lat(), Lng: p.Lon()}
		if ra.Intensity != nil {
			loc.Intensity = models.Ptr(*ra.Intensity)
		}
		return &loc
	default:
		return nil
	}
}

// ToCard maps one alert record onto a display card. Assistant payload
// fields win over card-shaped fields, and an alert level wins over an
// explicit color.
func (n *Normalizer) ToCard(ra RawAlert) models.Card {
	ai := DecodeAIResponse(ra.AIResponse)

	summary := cmp.Or(ai.Summary, ra.Summary)
	details := cmp.Or(ai.Details, ra.Details)
	recs := ai.Recommendations
	if len(recs) == 0 {
		recs = slices.Clone(ra.Recommendations)
	}
	if recs == nil {
		recs = []string{}
	}

	color := ColorForLevel(ra.AlertLevel)
	if strings.TrimSpace(ra.AlertLevel) == "" {
		if c, ok := models.ParseColor(ra.Color); ok {
			color = c
		}
	}

	icon := ra.Icon
	if icon == "" {
		icon = IconForType(ra.AlertType)
	}

	return models.Card{
		ID:              ra.ID.String(),
		Title:           titleFor(ra),
		Summary:         summary,
		Details:         details,
		Recommendations: recs,
		Color:           color,
		Icon:            icon,
		Location:        n.location(ra),
		Timestamp:       parseTime(cmp.Or(ra.CreatedAt, ra.Timestamp)),
	}
}

// ToCards maps a list of records, preserving order.
func (n *Normalizer) ToCards(raws []RawAlert) []models.Card {
	out := make([]models.Card, 0, len(raws))
	for _, ra := range raws {
		out = append(out, n.ToCard(ra))
	}
	return out
}
