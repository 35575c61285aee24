// Package geo abstracts the device position query used at registration.
package geo

import (
	"context"
	"errors"
	"time"

	"github.com/paulmach/orb"
)

// DefaultTimeout bounds a single position query.
const DefaultTimeout = 5 * time.Second

// ErrPermissionDenied is returned by a locator the user has not authorized.
var ErrPermissionDenied = errors.New("location permission denied")

// Locator answers the device's current position.
type Locator interface {
	Locate(ctx context.Context) (orb.Point, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (orb.Point, error)

func (f LocatorFunc) Locate(ctx context.Context) (orb.Point, error) { return f(ctx) }

// StaticLocator always reports the same position, e.g. from configuration.
type StaticLocator orb.Point

func (s StaticLocator) Locate(context.Context) (orb.Point, error) { return orb.Point(s), nil }

// Denied is a locator without permission.
type Denied struct{}

func (Denied) Locate(context.Context) (orb.Point, error) { return orb.Point{}, ErrPermissionDenied }

// Source tells where a resolved position came from.
type Source string

const (
	SourceDevice   Source = "device"
	SourceFallback Source = "fallback"
)

// Resolve queries loc once, bounded by timeout, and substitutes fallback()
// on any error, timeout or invalid coordinate. It never blocks longer than
// timeout and never retries. A nil locator goes straight to the fallback.
func Resolve(ctx context.Context, loc Locator, timeout time.Duration, fallback func() orb.Point) (orb.Point, Source, error) {
	if loc == nil {
		return fallback(), SourceFallback, ErrPermissionDenied
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		p   orb.Point
		err error
	}
	ch := make(chan result, 1)
	go func() {
		p, err := loc.Locate(ctx)
		ch <- result{p, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return fallback(), SourceFallback, r.err
		}
		if !Valid(r.p) {
			return fallback(), SourceFallback, errors.New("locator returned an invalid coordinate")
		}
		return r.p, SourceDevice, nil
	case <-ctx.Done():
		return fallback(), SourceFallback, ctx.Err()
	}
}

// Valid reports whether p is a real WGS84 coordinate.
func Valid(p orb.Point) bool {
	return p.Lat() >= -90 && p.Lat() <= 90 && p.Lon() >= -180 && p.Lon() <= 180
}
