// Package alerts turns the backend's alert records into display cards.
//
// The backend is loosely typed: ids arrive as strings or numbers, the
// assistant payload is sometimes a JSON-encoded string and sometimes an
// object, and locations may be nested, flat or missing. Everything here
// tolerates those variants. A record that still cannot be decoded is
// dropped from a list instead of failing the whole list.
package alerts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/healthnav/internal/client/models"
)

// RawAlert is one alert record as sent by the backend.
type RawAlert struct {
	ID         models.FlexID    `json:"id"`
	Title      string           `json:"title"`
	AlertType  string           `json:"alert_type"`
	AlertLevel string           `json:"alert_level"`
	AIResponse json.RawMessage  `json:"ai_response"`
	Location   *models.GeoPoint `json:"location,omitempty"`
	Latitude   *float64         `json:"latitude,omitempty"`
	Longitude  *float64         `json:"longitude,omitempty"`
	Intensity  *float64         `json:"intensity,omitempty"`
	CreatedAt  string           `json:"created_at,omitempty"`

	// Card-shaped fields, sent by backends that echo the display form.
	Summary         string   `json:"summary,omitempty"`
	Details         string   `json:"details,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	Color           string   `json:"color,omitempty"`
	Icon            string   `json:"icon,omitempty"`
	Timestamp       string   `json:"timestamp,omitempty"`
}

// optFloat is a coordinate or weight sent as a JSON number or as a numeric
// string. Blank or unparseable strings leave it unset.
type optFloat struct {
	v *float64
}

func (f *optFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			f.v = &v
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f.v = &v
	return nil
}

func (ra *RawAlert) UnmarshalJSON(b []byte) error {
	type plain RawAlert
	aux := struct {
		*plain
		Latitude        optFloat   `json:"latitude"`
		Longitude       optFloat   `json:"longitude"`
		Intensity       optFloat   `json:"intensity"`
		Recommendations stringList `json:"recommendations"`
	}{plain: (*plain)(ra)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	ra.Latitude = aux.Latitude.v
	ra.Longitude = aux.Longitude.v
	ra.Intensity = aux.Intensity.v
	ra.Recommendations = []string(aux.Recommendations)
	return nil
}

// SkipFunc is told about every list element that could not be decoded.
type SkipFunc func(index int, err error)

// DecodeList decodes either a bare JSON array of alerts or an envelope of
// the form {"alerts": [...]}. Elements that fail to decode are reported to
// skip, which may be nil, and left out of the result.
func DecodeList(b []byte, skip SkipFunc) ([]RawAlert, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return []RawAlert{}, nil
	}

	var items []json.RawMessage
	if b[0] == '[' {
		if err := json.Unmarshal(b, &items); err != nil {
			return nil, fmt.Errorf("decode alerts: %w", err)
		}
	} else {
		var env struct {
			Alerts []json.RawMessage `json:"alerts"`
		}
		if err := json.Unmarshal(b, &env); err != nil {
			return nil, fmt.Errorf("decode alerts envelope: %w", err)
		}
		items = env.Alerts
	}

	out := make([]RawAlert, 0, len(items))
	for i, item := range items {
		var ra RawAlert
		if err := json.Unmarshal(item, &ra); err != nil {
			if skip != nil {
				skip(i, err)
			}
			continue
		}
		out = append(out, ra)
	}
	return out, nil
}

// DecodeOne decodes a single alert, bare or wrapped as {"alert": {...}}.
func DecodeOne(b []byte) (RawAlert, error) {
	var env struct {
		Alert *RawAlert `json:"alert"`
	}
	if err := json.Unmarshal(b, &env); err == nil && env.Alert != nil {
		return *env.Alert, nil
	}

	var ra RawAlert
	if err := json.Unmarshal(b, &ra); err != nil {
		return RawAlert{}, fmt.Errorf("decode alert: %w", err)
	}
	return ra, nil
}
