package heatmap

import (
	"math"
	"strings"
	"sync"

	"github.com/paulmach/orb"
)

var ramp = []rune(" .:-=+*#%@")

// Canvas is a character-cell widget for terminals. Each cell accumulates
// the weight of the points inside it.
type Canvas struct {
	Width, Height int

	mu      sync.Mutex
	center  orb.Point
	zoom    int
	layer   Layer
	removed bool
}

// NewCanvasFactory returns a Factory producing w×h canvases. The last
// created canvas is reported through created when it is non-nil.
func NewCanvasFactory(w, h int, created func(*Canvas)) Factory {
	return func(cfg MapConfig) (Widget, error) {
		c := &Canvas{Width: w, Height: h, center: cfg.Center, zoom: cfg.Zoom}
		if created != nil {
			created(c)
		}
		return c, nil
	}
}

func (c *Canvas) SetView(center orb.Point, zoom int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.center, c.zoom = center, zoom
}

func (c *Canvas) SetLayer(l Layer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layer = l
}

func (c *Canvas) Remove() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removed = true
	c.layer = Layer{}
}

// Removed reports whether the widget was torn down.
func (c *Canvas) Removed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removed
}

// Viewport is the geographic area the canvas shows at its zoom.
func (c *Canvas) Viewport() orb.Bound {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport()
}

func (c *Canvas) viewport() orb.Bound {
	spanLng := 360 / math.Pow(2, float64(c.zoom))
	spanLat := spanLng / 2
	return orb.Bound{
		Min: orb.Point{c.center[0] - spanLng/2, c.center[1] - spanLat/2},
		Max: orb.Point{c.center[0] + spanLng/2, c.center[1] + spanLat/2},
	}
}

// String draws the canvas, north up.
func (c *Canvas) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.removed || c.Width <= 0 || c.Height <= 0 {
		return ""
	}

	vp := c.viewport()
	cells := make([]float64, c.Width*c.Height)
	peak := 0.0
	for _, p := range c.layer.Points {
		if !vp.Contains(p.Point) {
			continue
		}
		x := int((p.Point[0] - vp.Min[0]) / (vp.Max[0] - vp.Min[0]) * float64(c.Width))
		y := int((vp.Max[1] - p.Point[1]) / (vp.Max[1] - vp.Min[1]) * float64(c.Height))
		x = min(max(x, 0), c.Width-1)
		y = min(max(y, 0), c.Height-1)
		i := y*c.Width + x
		cells[i] += p.Weight
		peak = math.Max(peak, cells[i])
	}

	var b strings.Builder
	for y := range c.Height {
		for x := range c.Width {
			v := cells[y*c.Width+x]
			idx := 0
			if peak > 0 && v > 0 {
				idx = 1 + int(v/peak*float64(len(ramp)-2))
			}
			b.WriteRune(ramp[idx])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
