package heatmap

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"sync"

	"github.com/paulmach/orb"

	"github.com/dmitrijs2005/healthnav/internal/client/models"
)

// ErrLocked is returned for pan and zoom gestures on a locked map.
var ErrLocked = errors.New("map is locked")

// DefaultCenter and DefaultZoom frame Europe.
var DefaultCenter = orb.Point{2.3522, 48.8566}

const DefaultZoom = 5

// Options is the input of a render.
type Options struct {
	Points  []models.GeoPoint
	Center  *orb.Point
	Zoom    int
	Locked  bool
	Scatter *Scatter
}

// MapConfig is what a widget is initialized with.
type MapConfig struct {
	Center    orb.Point
	Zoom      int
	MaxZoom   int
	Dragging  bool
	Zooming   bool
	MaxBounds *orb.Bound
}

// Widget is the map implementation being driven.
type Widget interface {
	SetView(center orb.Point, zoom int)
	SetLayer(l Layer)
	Remove()
}

// Factory creates a widget.
type Factory func(cfg MapConfig) (Widget, error)

// View owns at most one widget and recreates it when the render input
// changes. It is safe for concurrent use; concurrent renders of the same
// input initialize the widget once.
type View struct {
	factory Factory

	mu     sync.Mutex
	widget Widget
	cfg    MapConfig
	layer  Layer
	key    uint64
	inits  int
}

func NewView(f Factory) *View {
	return &View{factory: f}
}

func fingerprint(o Options, center orb.Point, zoom int) uint64 {
	h := fnv.New64a()
	f := func(x float64) { fmt.Fprintf(h, "%x;", math.Float64bits(x)) }
	for _, p := range o.Points {
		f(p.Lat)
		f(p.Lng)
		if p.Intensity != nil {
			f(*p.Intensity)
		} else {
			h.Write([]byte("-;"))
		}
	}
	fmt.Fprintf(h, "|%v|%v|%d|%t", center[0], center[1], zoom, o.Locked)
	if s := o.Scatter; s != nil {
		fmt.Fprintf(h, "|s%v,%v,%d,%v,%d", s.Around.Lat, s.Around.Lng, s.Count, s.Spread, s.Seed)
	}
	return h.Sum64()
}

func resolve(o Options) (orb.Point, int) {
	center := DefaultCenter
	if o.Center != nil {
		center = *o.Center
	}
	zoom := o.Zoom
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	return center, zoom
}

// Render shows opts. It reports whether the widget was (re)initialized.
// Identical input is a no-op; an empty point set tears the widget down.
func (v *View) Render(opts Options) (bool, error) {
	center, zoom := resolve(opts)
	key := fingerprint(opts, center, zoom)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.widget != nil && v.key == key {
		return false, nil
	}
	v.teardown()

	if len(opts.Points) == 0 {
		return false, nil
	}

	cfg := MapConfig{Center: center, Zoom: zoom, MaxZoom: MaxZoom, Dragging: !opts.Locked, Zooming: !opts.Locked}
	if opts.Locked {
		b := EuropeBounds
		cfg.MaxBounds = &b
		cfg.Center = Clamp(center, b)
	}

	w, err := v.factory(cfg)
	if err != nil {
		return false, fmt.Errorf("init map: %w", err)
	}

	points := opts.Points
	if opts.Scatter != nil {
		points = append(append([]models.GeoPoint{}, points...), opts.Scatter.Points()...)
	}
	layer := BuildLayer(points)
	if opts.Scatter != nil {
		for i := len(opts.Points); i < len(layer.Points); i++ {
			layer.Points[i].Synthetic = true
		}
	}

	w.SetView(cfg.Center, cfg.Zoom)
	w.SetLayer(layer)

	v.widget, v.cfg, v.layer, v.key = w, cfg, layer, key
	v.inits++
	return true, nil
}

func (v *View) teardown() {
	if v.widget != nil {
		v.widget.Remove()
		v.widget = nil
	}
	v.layer = Layer{}
	v.key = 0
}

// Close removes the widget.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.teardown()
}

// Pan moves the view by a drag gesture.
func (v *View) Pan(to orb.Point) (orb.Point, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.widget == nil {
		return orb.Point{}, errors.New("map is not initialized")
	}
	if !v.cfg.Dragging {
		return v.cfg.Center, ErrLocked
	}
	if v.cfg.MaxBounds != nil {
		to = Clamp(to, *v.cfg.MaxBounds)
	}
	v.cfg.Center = to
	v.widget.SetView(v.cfg.Center, v.cfg.Zoom)
	return to, nil
}

// ZoomTo changes the zoom level by a zoom gesture.
func (v *View) ZoomTo(level int) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.widget == nil {
		return 0, errors.New("map is not initialized")
	}
	if !v.cfg.Zooming {
		return v.cfg.Zoom, ErrLocked
	}
	level = max(1, min(level, MaxZoom))
	v.cfg.Zoom = level
	v.widget.SetView(v.cfg.Center, v.cfg.Zoom)
	return level, nil
}

// Layer returns the layer currently shown.
func (v *View) Layer() Layer {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := v.layer
	out.Points = append([]HeatPoint(nil), v.layer.Points...)
	return out
}

// Config returns the widget configuration currently in effect.
func (v *View) Config() MapConfig {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cfg
}

// Inits counts widget initializations, for diagnostics.
func (v *View) Inits() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.inits
}
