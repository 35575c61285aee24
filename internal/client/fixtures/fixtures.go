// Package fixtures is the development scaffolding provider: reference
// advisories shown before the first fetch, reference city coordinates used
// when the backend omits a location, and the fallback device coordinate.
//
// Nothing here is used on a path that also talks to the live API unless the
// caller injects it explicitly.
package fixtures

import (
	"math/rand/v2"
	"sync"

	"github.com/paulmach/orb"

	"github.com/dmitrijs2005/healthnav/internal/client/models"
)

// ReferencePoint is the fixed point the fallback location jitters around.
var ReferencePoint = orb.Point{-122.4194, 37.7749}

// FallbackJitter is the full width of the fallback jitter window in degrees.
const FallbackJitter = 0.1

// City is a named reference coordinate.
type City struct {
	Name string
	Lat  float64
	Lng  float64
}

// Point returns c as an orb point (lng, lat).
func (c City) Point() orb.Point { return orb.Point{c.Lng, c.Lat} }

// Cities is the reference city list.
var Cities = []City{
	{Name: "Paris", Lat: 48.8566, Lng: 2.3522},
	{Name: "Rome", Lat: 41.9028, Lng: 12.4964},
	{Name: "Berlin", Lat: 52.5200, Lng: 13.4050},
	{Name: "Lisbon", Lat: 38.7223, Lng: -9.1393},
	{Name: "Prague", Lat: 50.0755, Lng: 14.4378},
	{Name: "Lyon", Lat: 45.7640, Lng: 4.8357},
	{Name: "Stockholm", Lat: 59.3293, Lng: 18.0686},
	{Name: "Madrid", Lat: 40.4168, Lng: -3.7038},
	{Name: "Vienna", Lat: 48.2082, Lng: 16.3738},
	{Name: "Amsterdam", Lat: 52.3676, Lng: 4.9041},
}

// Provider hands out fixture values from its own random source. It is safe
// for concurrent use.
type Provider struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Provider seeded with seed. Equal seeds yield equal sequences.
func New(seed uint64) *Provider {
	return &Provider{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandom returns a Provider with an unpredictable seed.
func NewRandom() *Provider {
	return New(rand.Uint64())
}

func (p *Provider) float() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rnd.Float64()
}

func (p *Provider) intn(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rnd.IntN(n)
}

// RandomCity picks one reference city.
func (p *Provider) RandomCity() City {
	return Cities[p.intn(len(Cities))]
}

// RandomPoint implements alerts.PointSource.
func (p *Provider) RandomPoint() orb.Point {
	return p.RandomCity().Point()
}

// FallbackLocation returns the reference point with each coordinate moved by
// up to half of FallbackJitter in either direction.
func (p *Provider) FallbackLocation() orb.Point {
	return orb.Point{
		ReferencePoint.Lon() + (p.float()-0.5)*FallbackJitter,
		ReferencePoint.Lat() + (p.float()-0.5)*FallbackJitter,
	}
}

// Cards returns a fresh copy of the reference advisories.
func Cards() []models.Card {
	return models.CloneCards(cards)
}

func loc(lat, lng, intensity float64) *models.GeoPoint {
	return &models.GeoPoint{Lat: lat, Lng: lng, Intensity: models.Ptr(intensity)}
}

var cards = []models.Card{
	{
		ID:      "1",
		Title:   "Severe Storm Warning",
		Summary: "Heavy thunderstorms expected across Western Europe",
		Details: "A severe thunderstorm system is moving across Western Europe, bringing heavy rain, strong winds up to 80 km/h, and possible hail. The worst affected areas will be northern France and Benelux countries.",
		Recommendations: []string{
			"Avoid unnecessary travel",
			"Secure outdoor objects",
			"Stay away from windows during storms",
			"Monitor local weather alerts",
		},
		Color:    models.ColorRed,
		Icon:     "⚠️",
		Location: loc(48.8566, 2.3522, 0.9),
	},
	{
		ID:      "2",
		Title:   "Heatwave Advisory",
		Summary: "Extreme temperatures in Southern Europe",
		Details: "A prolonged heatwave is affecting Southern Europe with temperatures expected to reach 40°C in some areas. The heatwave will particularly impact Spain, Italy, and Greece.",
		Recommendations: []string{
			"Stay hydrated",
			"Avoid outdoor activities during peak hours",
			"Check on vulnerable neighbors",
			"Use sun protection",
		},
		Color:    models.ColorYellow,
		Icon:     "🌡️",
		Location: loc(41.9028, 12.4964, 0.7),
	},
	{
		ID:      "3",
		Title:   "Flood Warning",
		Summary: "River flooding expected in Central Europe",
		Details: "Heavy rainfall has caused rivers to rise to dangerous levels in Germany, Austria, and Switzerland. Flooding is expected in low-lying areas along major river systems.",
		Recommendations: []string{
			"Avoid flood-prone areas",
			"Prepare sandbags if in risk zone",
			"Have emergency supplies ready",
			"Follow evacuation orders if issued",
		},
		Color:    models.ColorBlue,
		Icon:     "🌊",
		Location: loc(52.5200, 13.4050, 0.8),
	},
	{
		ID:      "4",
		Title:   "Forest Fire Alert",
		Summary: "High risk of wildfires in Mediterranean region",
		Details: "Dry conditions and high temperatures have created extreme fire risk in Portugal, Spain, and southern France. Several fires are already burning out of control.",
		Recommendations: []string{
			"Avoid outdoor burning",
			"Report any signs of fire immediately",
			"Prepare evacuation plans",
			"Follow local authority instructions",
		},
		Color:    models.ColorRed,
		Icon:     "🔥",
		Location: loc(38.7223, -9.1393, 0.95),
	},
	{
		ID:      "5",
		Title:   "Air Quality Warning",
		Summary: "Dangerous pollution levels in major cities",
		Details: "Industrial emissions and weather conditions have combined to create hazardous air quality in several European capitals. Sensitive groups should take precautions.",
		Recommendations: []string{
			"Limit outdoor activities",
			"Use air purifiers if available",
			"Wear masks when outside",
			"Keep windows closed",
		},
		Color:    models.ColorPurple,
		Icon:     "🏭",
		Location: loc(50.0755, 14.4378, 0.6),
	},
	{
		ID:      "6",
		Title:   "Transport Disruptions",
		Summary: "Major strikes affecting public transport",
		Details: "Nationwide transport strikes are causing severe disruptions to rail and air travel across France and neighboring countries. Expect cancellations and delays.",
		Recommendations: []string{
			"Check travel status before departing",
			"Allow extra time for journeys",
			"Consider alternative transport",
			"Monitor strike updates",
		},
		Color:    models.ColorYellow,
		Icon:     "🚆",
		Location: loc(45.7640, 4.8357, 0.5),
	},
	{
		ID:      "7",
		Title:   "Winter Storm Alert",
		Summary: "Heavy snowfall expected in Scandinavia",
		Details: "A major winter storm will bring heavy snow and strong winds to Norway, Sweden, and Finland. Travel will be extremely difficult in affected areas.",
		Recommendations: []string{
			"Stock up on supplies",
			"Avoid unnecessary travel",
			"Prepare for possible power outages",
			"Dress in warm layers",
		},
		Color:    models.ColorBlue,
		Icon:     "❄️",
		Location: loc(59.3293, 18.0686, 0.7),
	},
}
