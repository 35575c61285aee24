package models

import (
	"slices"
	"time"
)

// Color is the severity/category tag of an advisory.
type Color string

const (
	ColorYellow  Color = "yellow"
	ColorRed     Color = "red"
	ColorBlue    Color = "blue"
	ColorGreen   Color = "green"
	ColorPurple  Color = "purple"
	ColorDefault Color = "default"
)

// Colors lists every known color in display order.
var Colors = []Color{ColorRed, ColorYellow, ColorBlue, ColorGreen, ColorPurple, ColorDefault}

// ParseColor returns the Color named s, or false when s is unknown.
func ParseColor(s string) (Color, bool) {
	c := Color(s)
	if slices.Contains(Colors, c) {
		return c, true
	}
	return "", false
}

// GeoPoint is a location with an optional heat intensity.
type GeoPoint struct {
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	Intensity *float64 `json:"intensity,omitempty"`
}

// Weight is the intensity, defaulting to 1 when absent.
func (p GeoPoint) Weight() float64 {
	if p.Intensity == nil {
		return 1
	}
	return *p.Intensity
}

// Card is a single advisory as shown in the alerts list and detail view.
type Card struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Summary         string     `json:"summary"`
	Details         string     `json:"details"`
	Recommendations []string   `json:"recommendations"`
	Color           Color      `json:"color"`
	Icon            string     `json:"icon,omitempty"`
	Location        *GeoPoint  `json:"location,omitempty"`
	Timestamp       *time.Time `json:"timestamp,omitempty"`
}

// Clone returns a deep copy of c.
func (c Card) Clone() Card {
	out := c
	out.Recommendations = slices.Clone(c.Recommendations)
	if c.Location != nil {
		loc := *c.Location
		loc.Intensity = cloneFloat(c.Location.Intensity)
		out.Location = &loc
	}
	if c.Timestamp != nil {
		ts := *c.Timestamp
		out.Timestamp = &ts
	}
	return out
}

// CloneCards deep-copies a card slice. A nil slice stays nil.
func CloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}

// CardInput is the body of create and update calls. On update, zero fields
// are omitted so the server keeps its values.
type CardInput struct {
	Title           string    `json:"title,omitempty"`
	Summary         string    `json:"summary,omitempty"`
	Details         string    `json:"details,omitempty"`
	Recommendations []string  `json:"recommendations,omitempty"`
	Color           Color     `json:"color,omitempty"`
	Icon            string    `json:"icon,omitempty"`
	Location        *GeoPoint `json:"location,omitempty"`
}
