package app

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/riverline/pkg/metrics"
	"tableflip.dev/riverline/pkg/model"
	"tableflip.dev/riverline/pkg/state"
	"tableflip.dev/riverline/pkg/timeutil"
)

// MsgSelectBoatAndStop is the validation message of the arrival form.
const MsgSelectBoatAndStop = "Selecione uma lancha e uma localidade."

// LogInput is the arrival form. An empty ReportedTime means the current time.
type LogInput struct {
	BoatID       string
	StopID       string
	Direction    string
	ReportedTime string
	Notes        string
}

// LogArrival records an observed arrival, newest first. Timestamp is the
// creation instant; Notes holds "<reported time> - <notes>" and ReportedTime
// the typed HH:MM.
func (s *Service) LogArrival(ctx context.Context, in LogInput) (model.ArrivalLog, error) {
	if strings.TrimSpace(in.BoatID) == "" || strings.TrimSpace(in.StopID) == "" {
		field := "boatId"
		if strings.TrimSpace(in.BoatID) != "" {
			field = "stopId"
		}
		s.Metrics.Mutation("log_arrival", metrics.ResultInvalid)
		return model.ArrivalLog{}, &ValidationError{Field: field, Message: MsgSelectBoatAndStop}
	}
	dir, err := model.ParseDirection(in.Direction)
	if err != nil {
		return model.ArrivalLog{}, &ValidationError{Field: "direction", Message: err.Error()}
	}

	now := s.now()
	reported := timeutil.Clock(now)
	if strings.TrimSpace(in.ReportedTime) != "" {
		if reported, err = timeutil.ParseClock(in.ReportedTime); err != nil {
			return model.ArrivalLog{}, &ValidationError{Field: "time", Message: err.Error()}
		}
	}

	entry := model.ArrivalLog{
		ID:           s.newID(),
		BoatID:       in.BoatID,
		StopID:       in.StopID,
		Direction:    dir,
		Timestamp:    now.UnixMilli(),
		Notes:        reported + " - " + in.Notes,
		ReportedTime: reported,
	}
	err = s.mutate(ctx, "log_arrival", func(tx *state.Tx) error {
		if findBoat(tx.Boats, in.BoatID) < 0 {
			return fmt.Errorf("%w: %s", ErrBoatNotFound, in.BoatID)
		}
		if findStop(tx.Stops, in.StopID) < 0 {
			return fmt.Errorf("%w: %s", ErrStopNotFound, in.StopID)
		}
		tx.Logs = append([]model.ArrivalLog{entry}, tx.Logs...)
		return nil
	})
	if err != nil {
		return model.ArrivalLog{}, err
	}
	return entry, nil
}

// Logs returns every arrival log, most recent first.
func (s *Service) Logs(ctx context.Context) ([]model.ArrivalLog, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	model.SortLogsNewestFirst(snap.Logs)
	return snap.Logs, nil
}

// BoatLogs returns the boat's arrival logs, most recent first.
func (s *Service) BoatLogs(ctx context.Context, boatID string) ([]model.ArrivalLog, error) {
	all, err := s.Logs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.ArrivalLog, 0)
	for _, l := range all {
		if l.BoatID == boatID {
			out = append(out, l)
		}
	}
	return out, nil
}

// DeleteLog asks for confirmation, then removes one arrival log.
func (s *Service) DeleteLog(ctx context.Context, id string) error {
	snap, err := s.snapshot()
	if err != nil {
		return err
	}
	if findLog(snap.Logs, id) < 0 {
		return fmt.Errorf("%w: %s", ErrLogNotFound, id)
	}
	if err := s.gate(ctx, "delete_log", PromptDeleteLog); err != nil {
		return err
	}
	return s.mutate(ctx, "delete_log", func(tx *state.Tx) error {
		i := findLog(tx.Logs, id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrLogNotFound, id)
		}
		tx.Logs = append(tx.Logs[:i:i], tx.Logs[i+1:]...)
		return nil
	})
}

// ClearLogs asks for confirmation, then removes every arrival log. It returns
// how many were removed.
func (s *Service) ClearLogs(ctx context.Context) (int, error) {
	if err := s.gate(ctx, "clear_logs", PromptClearLogs); err != nil {
		return 0, err
	}
	n := 0
	err := s.mutate(ctx, "clear_logs", func(tx *state.Tx) error {
		n = len(tx.Logs)
		tx.Logs = nil
		return nil
	})
	return n, err
}

func findLog(logs []model.ArrivalLog, id string) int {
	for i, l := range logs {
		if l.ID == id {
			return i
		}
	}
	return -1
}
