// Package heatmap builds the weighted heat layer of advisory locations and
// drives a map widget that displays it.
package heatmap

import (
	"math"
	"math/rand/v2"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/dmitrijs2005/healthnav/internal/client/models"
)

const (
	Radius     = 25
	Blur       = 20
	MaxZoom    = 9
	MinOpacity = 0.3

	// weightCeiling is the weight of the most intense point.
	weightCeiling = 0.8
)

// EuropeBounds is the region a locked map cannot leave.
var EuropeBounds = orb.Bound{Min: orb.Point{-25, 35}, Max: orb.Point{40, 71}}

// HeatPoint is a weighted location in the layer.
type HeatPoint struct {
	Point     orb.Point
	Intensity float64
	Weight    float64
	Synthetic bool
}

// Layer is the heat overlay.
type Layer struct {
	Points []HeatPoint
	Radius int
	Blur   int
}

// BuildLayer weights points by intensity relative to the strongest one.
// A missing intensity counts as 1, and the divisor is never below 1.
func BuildLayer(points []models.GeoPoint) Layer {
	maxIntensity := 1.0
	for _, p := range points {
		maxIntensity = math.Max(maxIntensity, p.Weight())
	}

	l := Layer{Points: make([]HeatPoint, 0, len(points)), Radius: Radius, Blur: Blur}
	for _, p := range points {
		l.Points = append(l.Points, HeatPoint{
			Point:     orb.Point{p.Lng, p.Lat},
			Intensity: p.Weight(),
			Weight:    p.Weight() / maxIntensity * weightCeiling,
		})
	}
	return l
}

// Bound is the bounding box of the layer's points.
func (l Layer) Bound() orb.Bound {
	mp := make(orb.MultiPoint, len(l.Points))
	for i, p := range l.Points {
		mp[i] = p.Point
	}
	return mp.Bound()
}

// GeoJSON renders the layer as a FeatureCollection of weighted points.
func (l Layer) GeoJSON() ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, p := range l.Points {
		f := geojson.NewFeature(p.Point)
		f.Properties["intensity"] = p.Intensity
		f.Properties["weight"] = p.Weight
		if p.Synthetic {
			f.Properties["synthetic"] = true
		}
		fc.Append(f)
	}
	return fc.MarshalJSON()
}

// Scatter asks for extra points around a focal location, for visual
// density when a single advisory is shown.
type Scatter struct {
	Around models.GeoPoint
	Count  int
	Spread float64 // degrees
	Seed   uint64
}

// Points generates the scatter. Equal seeds give equal points. Intensities
// fall off with distance from the focal point.
func (s Scatter) Points() []models.GeoPoint {
	if s.Count <= 0 {
		return nil
	}
	spread := s.Spread
	if spread <= 0 {
		spread = 1
	}
	rnd := rand.New(rand.NewPCG(s.Seed, s.Seed+1))
	base := s.Around.Weight()

	out := make([]models.GeoPoint, 0, s.Count)
	for range s.Count {
		dLat := (rnd.Float64()*2 - 1) * spread
		dLng := (rnd.Float64()*2 - 1) * spread
		dist := math.Hypot(dLat, dLng) / (spread * math.Sqrt2)
		intensity := base * (1 - dist) * (0.5 + rnd.Float64()/2)
		out = append(out, models.GeoPoint{
			Lat:       s.Around.Lat + dLat,
			Lng:       s.Around.Lng + dLng,
			Intensity: models.Ptr(math.Max(intensity, 0.05)),
		})
	}
	return out
}

// Clamp moves p inside b.
func Clamp(p orb.Point, b orb.Bound) orb.Point {
	return orb.Point{
		math.Min(math.Max(p[0], b.Min[0]), b.Max[0]),
		math.Min(math.Max(p[1], b.Min[1]), b.Max[1]),
	}
}
