package heatmap

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/healthnav/internal/client/models"
)

func pts() []models.GeoPoint {
	return []models.GeoPoint{
		{Lat: 48.8566, Lng: 2.3522, Intensity: models.Ptr(0.9)},
		{Lat: 41.9028, Lng: 12.4964, Intensity: models.Ptr(0.45)},
		{Lat: 52.52, Lng: 13.405},
	}
}

func TestBuildLayer_Weights(t *testing.T) {
	l := BuildLayer(pts())
	require.Len(t, l.Points, 3)
	assert.Equal(t, Radius, l.Radius)
	assert.Equal(t, Blur, l.Blur)

	// max intensity is the missing one (1), so weights are intensity*0.8
	assert.InDelta(t, 0.72, l.Points[0].Weight, 1e-9)
	assert.InDelta(t, 0.36, l.Points[1].Weight, 1e-9)
	assert.InDelta(t, 0.8, l.Points[2].Weight, 1e-9)
	assert.Equal(t, orb.Point{2.3522, 48.8566}, l.Points[0].Point)
}

func TestBuildLayer_IntensityAboveOne(t *testing.T) {
	l := BuildLayer([]models.GeoPoint{
		{Lat: 1, Lng: 1, Intensity: models.Ptr(4.0)},
		{Lat: 2, Lng: 2, Intensity: models.Ptr(2.0)},
	})
	assert.InDelta(t, 0.8, l.Points[0].Weight, 1e-9)
	assert.InDelta(t, 0.4, l.Points[1].Weight, 1e-9)
}

func TestLayer_GeoJSON(t *testing.T) {
	b, err := BuildLayer(pts()).GeoJSON()
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(b)
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)
	assert.Equal(t, orb.Point{2.3522, 48.8566}, fc.Features[0].Geometry)
	assert.InDelta(t, 0.72, fc.Features[0].Properties.MustFloat64("weight"), 1e-9)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "FeatureCollection", raw["type"])
}

func TestLayer_Bound(t *testing.T) {
	b := BuildLayer(pts()).Bound()
	assert.Equal(t, orb.Point{2.3522, 41.9028}, b.Min)
	assert.Equal(t, orb.Point{13.405, 52.52}, b.Max)
}

func TestScatter_DeterministicAndNearFocus(t *testing.T) {
	s := Scatter{Around: models.GeoPoint{Lat: 50, Lng: 10, Intensity: models.Ptr(0.8)}, Count: 20, Spread: 0.5, Seed: 3}
	a, b := s.Points(), s.Points()
	require.Len(t, a, 20)
	assert.Equal(t, a, b)
	for _, p := range a {
		assert.InDelta(t, 50, p.Lat, 0.5)
		assert.InDelta(t, 10, p.Lng, 0.5)
		require.NotNil(t, p.Intensity)
		assert.Greater(t, *p.Intensity, 0.0)
		assert.LessOrEqual(t, *p.Intensity, 0.8)
	}
	assert.Nil(t, Scatter{}.Points())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, orb.Point{-25, 35}, Clamp(orb.Point{-122.4, 10}, EuropeBounds))
	assert.Equal(t, orb.Point{10, 50}, Clamp(orb.Point{10, 50}, EuropeBounds))
	assert.Equal(t, orb.Point{40, 71}, Clamp(orb.Point{100, 80}, EuropeBounds))
}

type recorder struct {
	mu      sync.Mutex
	created []*Canvas
}

func (r *recorder) factory() Factory {
	return NewCanvasFactory(40, 10, func(c *Canvas) {
		r.mu.Lock()
		r.created = append(r.created, c)
		r.mu.Unlock()
	})
}

func TestView_IdenticalInputIsNoop(t *testing.T) {
	r := &recorder{}
	v := NewView(r.factory())

	changed, err := v.Render(Options{Points: pts(), Locked: true})
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = v.Render(Options{Points: pts(), Locked: true})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, v.Inits())
	assert.Len(t, r.created, 1)
}

func TestView_ChangedInputReinitializes(t *testing.T) {
	r := &recorder{}
	v := NewView(r.factory())

	_, err := v.Render(Options{Points: pts(), Locked: true})
	require.NoError(t, err)

	center := orb.Point{13.4, 52.5}
	for i, o := range []Options{
		{Points: pts(), Locked: true, Zoom: 6},
		{Points: pts(), Locked: true, Zoom: 6, Center: &center},
		{Points: pts(), Locked: false, Zoom: 6, Center: &center},
		{Points: pts()[:2], Locked: false, Zoom: 6, Center: &center},
	} {
		changed, err := v.Render(o)
		require.NoError(t, err)
		assert.True(t, changed, "render %d", i)
	}

	assert.Equal(t, 5, v.Inits())
	require.Len(t, r.created, 5)
	for _, c := range r.created[:4] {
		assert.True(t, c.Removed(), "previous widget must be torn down")
	}
	assert.False(t, r.created[4].Removed())
}

func TestView_EmptyPointsTearsDown(t *testing.T) {
	r := &recorder{}
	v := NewView(r.factory())
	_, err := v.Render(Options{Points: pts()})
	require.NoError(t, err)

	changed, err := v.Render(Options{})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, r.created[0].Removed())
	assert.Empty(t, v.Layer().Points)
}

func TestView_LockedClampsAndRejectsGestures(t *testing.T) {
	v := NewView(NewCanvasFactory(10, 5, nil))
	sf := orb.Point{-122.4194, 37.7749}
	_, err := v.Render(Options{Points: pts(), Center: &sf, Locked: true})
	require.NoError(t, err)

	cfg := v.Config()
	assert.True(t, EuropeBounds.Contains(cfg.Center))
	require.NotNil(t, cfg.MaxBounds)
	assert.False(t, cfg.Dragging)
	assert.False(t, cfg.Zooming)

	_, err = v.Pan(orb.Point{0, 0})
	assert.ErrorIs(t, err, ErrLocked)
	_, err = v.ZoomTo(8)
	assert.ErrorIs(t, err, ErrLocked)
	assert.Equal(t, DefaultZoom, v.Config().Zoom)
}

func TestView_UnlockedGestures(t *testing.T) {
	v := NewView(NewCanvasFactory(10, 5, nil))
	_, err := v.Render(Options{Points: pts(), Locked: false})
	require.NoError(t, err)

	got, err := v.Pan(orb.Point{-100, 10})
	require.NoError(t, err)
	assert.Equal(t, orb.Point{-100, 10}, got)

	z, err := v.ZoomTo(42)
	require.NoError(t, err)
	assert.Equal(t, MaxZoom, z)
}

func TestView_ConcurrentRenderInitializesOnce(t *testing.T) {
	r := &recorder{}
	v := NewView(r.factory())

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = v.Render(Options{Points: pts(), Locked: true})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, v.Inits())
}

func TestView_ScatterMarksSyntheticPoints(t *testing.T) {
	v := NewView(NewCanvasFactory(10, 5, nil))
	focus := pts()[0]
	_, err := v.Render(Options{Points: []models.GeoPoint{focus}, Scatter: &Scatter{Around: focus, Count: 5, Spread: 0.3, Seed: 1}})
	require.NoError(t, err)

	l := v.Layer()
	require.Len(t, l.Points, 6)
	assert.False(t, l.Points[0].Synthetic)
	for _, p := range l.Points[1:] {
		assert.True(t, p.Synthetic)
	}
}

func TestCanvas_DrawsHotCell(t *testing.T) {
	var c *Canvas
	v := NewView(NewCanvasFactory(20, 8, func(x *Canvas) { c = x }))
	_, err := v.Render(Options{Points: pts(), Locked: true})
	require.NoError(t, err)

	out := c.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 8)
	for _, l := range lines {
		assert.Len(t, []rune(l), 20)
	}
	assert.Contains(t, out, "@", "the strongest cell uses the last ramp glyph")

	v.Close()
	assert.Empty(t, c.String())
}
