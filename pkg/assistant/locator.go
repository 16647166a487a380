package assistant

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultLocationTimeout bounds how long a question waits for a position.
const DefaultLocationTimeout = 3 * time.Second

// ErrNoLocation is returned by locators that have no position to offer.
var ErrNoLocation = errors.New("assistant: location unavailable")

// Locator reports the operator's current position.
type Locator interface {
	Locate(ctx context.Context) (LatLng, error)
}

// StaticLocator always reports the same configured position.
type StaticLocator struct {
	Point LatLng
}

func (s StaticLocator) Locate(context.Context) (LatLng, error) {
	return s.Point, nil
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (LatLng, error)

func (f LocatorFunc) Locate(ctx context.Context) (LatLng, error) {
	return f(ctx)
}

// ParseLatLng parses "lat,lng" in decimal degrees.
func ParseLatLng(s string) (LatLng, error) {
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return LatLng{}, fmt.Errorf("location %q: expected lat,lng", s)
	}
	var (
		p   LatLng
		err error
	)
	if p.Lat, err = strconv.ParseFloat(strings.TrimSpace(lat), 64); err != nil {
		return LatLng{}, fmt.Errorf("location %q: latitude: %w", s, err)
	}
	if p.Lng, err = strconv.ParseFloat(strings.TrimSpace(lng), 64); err != nil {
		return LatLng{}, fmt.Errorf("location %q: longitude: %w", s, err)
	}
	if p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
		return LatLng{}, fmt.Errorf("location %q: out of range", s)
	}
	return p, nil
}

// locate asks l for a position within timeout. It returns nil when there is
// no locator, it fails, or it is too slow.
func (a *Assistant) locate(ctx context.Context) *LatLng {
	if a.Locator == nil {
		return nil
	}
	timeout := a.LocationTimeout
	if timeout <= 0 {
		timeout = DefaultLocationTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		p   LatLng
		err error
	}
	ch := make(chan result, 1)
	go func() {
		p, err := a.Locator.Locate(ctx)
		ch <- result{p, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			a.logger().Info("location unavailable, continuing without it", "err", r.err)
			return nil
		}
		return &r.p
	case <-ctx.Done():
		a.logger().Info("location timed out, continuing without it", "timeout", timeout)
		return nil
	}
}
