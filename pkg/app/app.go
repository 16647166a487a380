package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/riverline/pkg/metrics"
	"tableflip.dev/riverline/pkg/model"
	"tableflip.dev/riverline/pkg/state"
)

// Service provides the boat manager and arrival logger operations.
// It wraps the state store so the CLI, HTTP and MCP surfaces share logic.
type Service struct {
	State   *state.Store
	Confirm Confirmer
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	// CascadeLogs also removes a boat's arrival logs when the boat is deleted.
	CascadeLogs bool

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *Service) snapshot() (state.Snapshot, error) {
	if s.State == nil {
		return state.Snapshot{}, ErrNoState
	}
	return s.State.Snapshot(), nil
}

// mutate runs fn in one state update and records the outcome.
func (s *Service) mutate(ctx context.Context, op string, fn func(tx *state.Tx) error) error {
	if s.State == nil {
		return ErrNoState
	}
	_, err := s.State.Update(ctx, fn)
	result := metrics.ResultOK
	switch {
	case err == nil:
	case errors.Is(err, ErrDeclined):
		result = metrics.ResultDeclined
	case errors.Is(err, ErrInvalidInput):
		result = metrics.ResultInvalid
	default:
		result = metrics.ResultError
	}
	s.Metrics.Mutation(op, result)
	if err != nil {
		if result == metrics.ResultError {
			s.logger().Error("mutation failed", "op", op, "err", err)
		}
		return err
	}
	s.logger().Debug("mutation applied", "op", op)
	s.recordSizes()
	return nil
}

func (s *Service) recordSizes() {
	if s.Metrics == nil || s.State == nil {
		return
	}
	snap := s.State.Snapshot()
	s.Metrics.Entities(state.KeyBoats, len(snap.Boats))
	s.Metrics.Entities(state.KeySchedules, len(snap.Schedules))
	s.Metrics.Entities(state.KeyLogs, len(snap.Logs))
	s.Metrics.Entities(state.KeyStops, len(snap.Stops))
}

// Routes lists the static routes.
func (s *Service) Routes(ctx context.Context) ([]model.Route, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Routes, nil
}

// Snapshot returns a copy of every collection, for derived views such as the
// assistant context and the map.
func (s *Service) Snapshot(ctx context.Context) (state.Snapshot, error) {
	return s.snapshot()
}

// Reload re-reads the state from persistence.
func (s *Service) Reload(ctx context.Context) error {
	if s.State == nil {
		return ErrNoState
	}
	if err := s.State.Reload(ctx); err != nil {
		return err
	}
	s.recordSizes()
	return nil
}

func findBoat(boats []model.Boat, id string) int {
	for i, b := range boats {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func findStop(stops []model.Stop, id string) int {
	for i, st := range stops {
		if st.ID == id {
			return i
		}
	}
	return -1
}

func findSchedule(schedules []model.Schedule, id string) int {
	for i, sc := range schedules {
		if sc.ID == id {
			return i
		}
	}
	return -1
}
