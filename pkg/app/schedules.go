package app

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/riverline/pkg/model"
	"tableflip.dev/riverline/pkg/state"
	"tableflip.dev/riverline/pkg/timeutil"
)

// ScheduleInput is the itinerary form. Empty Direction, DayOfWeek and
// DeparturePort take their defaults on create and keep the stored value on
// edit.
type ScheduleInput struct {
	BoatID        string
	StopID        string
	Direction     string
	DayOfWeek     string
	ExpectedTime  string
	DeparturePort string
}

// UpsertSchedule creates a schedule, or merges the input into the schedule
// editingID when it is non-empty. Boat, stop and a valid HH:MM time are
// required and must reference existing entities.
func (s *Service) UpsertSchedule(ctx context.Context, in ScheduleInput, editingID string) (model.Schedule, error) {
	if s.State == nil {
		return model.Schedule{}, ErrNoState
	}
	in.BoatID = strings.TrimSpace(in.BoatID)
	in.StopID = strings.TrimSpace(in.StopID)
	if in.BoatID == "" || in.StopID == "" || strings.TrimSpace(in.ExpectedTime) == "" {
		return model.Schedule{}, fmt.Errorf("%w: boat, stop and time are required", ErrInvalidInput)
	}
	clock, err := timeutil.ParseClock(in.ExpectedTime)
	if err != nil {
		return model.Schedule{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var dir model.Direction
	if in.Direction != "" || editingID == "" {
		if dir, err = model.ParseDirection(in.Direction); err != nil {
			return model.Schedule{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	var day model.Weekday
	if in.DayOfWeek != "" || editingID == "" {
		if day, err = model.ParseWeekday(in.DayOfWeek); err != nil {
			return model.Schedule{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	port := strings.TrimSpace(in.DeparturePort)
	if port == "" && editingID == "" {
		port = s.State.Seeds().DefaultPort()
	}

	op := "create_schedule"
	if editingID != "" {
		op = "update_schedule"
	}
	var out model.Schedule
	err = s.mutate(ctx, op, func(tx *state.Tx) error {
		if findBoat(tx.Boats, in.BoatID) < 0 {
			return fmt.Errorf("%w: %s", ErrBoatNotFound, in.BoatID)
		}
		if findStop(tx.Stops, in.StopID) < 0 {
			return fmt.Errorf("%w: %s", ErrStopNotFound, in.StopID)
		}

		if editingID == "" {
			out = model.Schedule{
				ID:            s.newID(),
				BoatID:        in.BoatID,
				StopID:        in.StopID,
				Direction:     dir,
				DayOfWeek:     day,
				ExpectedTime:  clock,
				DeparturePort: port,
			}
			tx.Schedules = append(tx.Schedules, out)
			return nil
		}

		i := findSchedule(tx.Schedules, editingID)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrScheduleNotFound, editingID)
		}
		sc := &tx.Schedules[i]
		sc.BoatID = in.BoatID
		sc.StopID = in.StopID
		sc.ExpectedTime = clock
		if dir != "" {
			sc.Direction = dir
		}
		if day != "" {
			sc.DayOfWeek = day
		}
		if port != "" {
			sc.DeparturePort = port
		}
		out = *sc
		return nil
	})
	if err != nil {
		return model.Schedule{}, err
	}
	return out, nil
}

// DeleteSchedule asks for confirmation, then removes one schedule.
func (s *Service) DeleteSchedule(ctx context.Context, id string) error {
	snap, err := s.snapshot()
	if err != nil {
		return err
	}
	if findSchedule(snap.Schedules, id) < 0 {
		return fmt.Errorf("%w: %s", ErrScheduleNotFound, id)
	}
	if err := s.gate(ctx, "delete_schedule", PromptDeleteSchedule); err != nil {
		return err
	}
	return s.mutate(ctx, "delete_schedule", func(tx *state.Tx) error {
		i := findSchedule(tx.Schedules, id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrScheduleNotFound, id)
		}
		tx.Schedules = append(tx.Schedules[:i:i], tx.Schedules[i+1:]...)
		return nil
	})
}

// Schedules lists every schedule ordered by weekday then time.
func (s *Service) Schedules(ctx context.Context) ([]model.Schedule, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	model.SortSchedules(snap.Schedules)
	return snap.Schedules, nil
}

// BoatSchedules returns the boat's schedules ordered by weekday (Monday first)
// then expected time.
func (s *Service) BoatSchedules(ctx context.Context, boatID string) ([]model.Schedule, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	out := make([]model.Schedule, 0)
	for _, sc := range snap.Schedules {
		if sc.BoatID == boatID {
			out = append(out, sc)
		}
	}
	model.SortSchedules(out)
	return out, nil
}

// FilterSchedules narrows BoatSchedules to entries whose stop name, day or
// departure port contains query, ignoring case. An empty boatID searches every
// boat.
func (s *Service) FilterSchedules(ctx context.Context, boatID, query string) ([]model.Schedule, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Schedule, 0)
	for _, sc := range snap.Schedules {
		if boatID != "" && sc.BoatID != boatID {
			continue
		}
		if q != "" && !scheduleMatches(sc, snap.Stops, q) {
			continue
		}
		out = append(out, sc)
	}
	model.SortSchedules(out)
	return out, nil
}

func scheduleMatches(sc model.Schedule, stops []model.Stop, q string) bool {
	for _, field := range []string{
		model.StopName(stops, sc.StopID),
		string(sc.DayOfWeek),
		sc.DeparturePort,
	} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
