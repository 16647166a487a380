package log

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/riverline/pkg/app"
	"tableflip.dev/riverline/pkg/seed"
	"tableflip.dev/riverline/pkg/state"
	"tableflip.dev/riverline/pkg/store"
)

func newService(t *testing.T) *app.Service {
	t.Helper()
	st, err := state.Load(context.Background(), store.NewMemory(), seed.Defaults(), nil)
	if err != nil {
		t.Fatalf("state.Load failed: %v", err)
	}
	return &app.Service{
		State: st,
		Now:   func() time.Time { return time.Date(2026, time.May, 4, 10, 20, 0, 0, time.UTC) },
	}
}

func TestLogWithFlags(t *testing.T) {
	l := Log{App: newService(t), BoatID: "b1", StopID: "2", Notes: "cheia"}
	got, err := l.Do(context.Background())
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if got.Notes != "10:20 - cheia" || got.StopID != "2" {
		t.Fatalf("unexpected log %+v", got)
	}
}

func TestLogPicksMissingSelections(t *testing.T) {
	var asked []string
	l := Log{
		App:      newService(t),
		PickBoat: func() (string, error) { asked = append(asked, "boat"); return "b2", nil },
		PickStop: func() (string, error) { asked = append(asked, "stop"); return "4", nil },
	}
	got, err := l.Do(context.Background())
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if got.BoatID != "b2" || got.StopID != "4" {
		t.Fatalf("unexpected log %+v", got)
	}
	if len(asked) != 2 {
		t.Fatalf("expected both pickers to run, got %v", asked)
	}
}

func TestLogNewStop(t *testing.T) {
	svc := newService(t)
	l := Log{
		App:      svc,
		BoatID:   "b1",
		NewStop:  "Vila Nova",
		PickStop: func() (string, error) { t.Fatal("stop picker should not run"); return "", nil },
	}
	got, err := l.Do(context.Background())
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	stops, err := svc.Stops(context.Background())
	if err != nil {
		t.Fatalf("Stops failed: %v", err)
	}
	last := stops[len(stops)-1]
	if last.Name != "Vila Nova" || got.StopID != last.ID {
		t.Fatalf("expected arrival at the new stop, got %+v and %+v", got, last)
	}
}

func TestLogPickerError(t *testing.T) {
	boom := errors.New("interrupted")
	l := Log{App: newService(t), PickBoat: func() (string, error) { return "", boom }}
	if _, err := l.Do(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected picker error, got %v", err)
	}
}

func TestLogValidation(t *testing.T) {
	l := Log{App: newService(t), BoatID: "b1"}
	_, err := l.Do(context.Background())
	var verr *app.ValidationError
	if !errors.As(err, &verr) || verr.Field != "stopId" {
		t.Fatalf("expected stopId validation error, got %v", err)
	}
}
