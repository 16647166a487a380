package app

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/riverline/pkg/model"
	"tableflip.dev/riverline/pkg/schematic"
	"tableflip.dev/riverline/pkg/state"
)

// New stops land in the middle of the schematic until someone places them.
const (
	newStopX = 50
	newStopY = 50
)

// Stops lists every stop.
func (s *Service) Stops(ctx context.Context) ([]model.Stop, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Stops, nil
}

// StopsForRoute is the stop picker for a route. An empty routeID lists every
// stop.
func (s *Service) StopsForRoute(ctx context.Context, routeID string) ([]model.Stop, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	if routeID == "" {
		return snap.Stops, nil
	}
	return schematic.StopsForRoute(routeID, snap.Stops), nil
}

// AddStop creates a stop on routeID at distance 0 in the middle of the map.
// An empty routeID uses the primary route.
func (s *Service) AddStop(ctx context.Context, name, routeID string) (model.Stop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Stop{}, fmt.Errorf("%w: stop name required", ErrInvalidInput)
	}
	if s.State == nil {
		return model.Stop{}, ErrNoState
	}
	if routeID == "" {
		routeID = s.State.Seeds().PrimaryRoute()
	}
	known := false
	for _, r := range s.State.Routes() {
		if r.ID == routeID {
			known = true
			break
		}
	}
	if !known {
		return model.Stop{}, fmt.Errorf("%w: unknown route %q", ErrInvalidInput, routeID)
	}

	stop := model.Stop{
		ID:       s.newID(),
		Name:     name,
		RouteIDs: []string{routeID},
		MapX:     newStopX,
		MapY:     newStopY,
	}
	err := s.mutate(ctx, "add_stop", func(tx *state.Tx) error {
		tx.Stops = append(tx.Stops, stop)
		return nil
	})
	if err != nil {
		return model.Stop{}, err
	}
	return stop, nil
}

// AddLogStop is the arrival logger's inline stop form: AddStop on the primary
// route.
func (s *Service) AddLogStop(ctx context.Context, name string) (model.Stop, error) {
	return s.AddStop(ctx, name, "")
}
