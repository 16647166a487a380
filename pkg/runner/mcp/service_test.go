package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tableflip.dev/riverline/pkg/app"
	"tableflip.dev/riverline/pkg/model"
	"tableflip.dev/riverline/pkg/seed"
	"tableflip.dev/riverline/pkg/state"
	"tableflip.dev/riverline/pkg/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := state.Load(context.Background(), store.NewMemory(), seed.Defaults(), nil)
	if err != nil {
		t.Fatalf("state.Load failed: %v", err)
	}
	n := 0
	return NewService(&app.Service{
		State:   st,
		Confirm: app.AlwaysConfirm,
		Now:     func() time.Time { return time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC) },
		NewID: func() string {
			n++
			return fmt.Sprintf("mcp-%d", n)
		},
	})
}

func TestServiceListSchedulesResolvesNames(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.UpsertSchedule(ctx, app.ScheduleInput{
		BoatID: "b2", StopID: "4", DayOfWeek: string(model.Friday), ExpectedTime: "06:30",
	}, ""); err != nil {
		t.Fatalf("UpsertSchedule failed: %v", err)
	}

	schedules, err := svc.ListSchedules(ctx, "b2", "")
	if err != nil {
		t.Fatalf("ListSchedules failed: %v", err)
	}
	if len(schedules) != 1 {
		t.Fatalf("expected 1 schedule, got %d", len(schedules))
	}
	if schedules[0].BoatName != "Expresso Cristalina" || schedules[0].StopName != "Tefé" {
		t.Fatalf("unexpected names %q / %q", schedules[0].BoatName, schedules[0].StopName)
	}

	none, err := svc.ListSchedules(ctx, "b2", "coari")
	if err != nil {
		t.Fatalf("ListSchedules failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no match for query, got %d", len(none))
	}
}

func TestServiceLogArrival(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	dto, err := svc.LogArrival(ctx, app.LogInput{BoatID: "b1", StopID: "3", ReportedTime: "07:15", Notes: "lotada"})
	if err != nil {
		t.Fatalf("LogArrival failed: %v", err)
	}
	if dto.ID != "mcp-1" {
		t.Fatalf("expected generated id, got %q", dto.ID)
	}
	if dto.StopName != "Coari" {
		t.Fatalf("expected Coari, got %q", dto.StopName)
	}
	if dto.Notes != "07:15 - lotada" {
		t.Fatalf("unexpected notes %q", dto.Notes)
	}
	if dto.RecordedAt != "2026-03-02T08:00:00Z" {
		t.Fatalf("unexpected recordedAt %q", dto.RecordedAt)
	}

	if _, err := svc.LogArrival(ctx, app.LogInput{BoatID: "b1"}); err == nil {
		t.Fatalf("expected validation error without a stop")
	}
}

func TestServiceListLogsLimit(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, stop := range []string{"1", "2", "3"} {
		if _, err := svc.LogArrival(ctx, app.LogInput{BoatID: "b1", StopID: stop}); err != nil {
			t.Fatalf("LogArrival failed: %v", err)
		}
	}
	logs, err := svc.ListLogs(ctx, "", 2)
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if logs[0].StopID != "3" {
		t.Fatalf("expected newest log first, got stop %s", logs[0].StopID)
	}

	other, err := svc.ListLogs(ctx, "b2", 0)
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no logs for b2, got %d", len(other))
	}
}

func TestServiceRoutePaths(t *testing.T) {
	svc := newTestService(t)

	paths, err := svc.RoutePaths(context.Background())
	if err != nil {
		t.Fatalf("RoutePaths failed: %v", err)
	}
	if len(paths) != len(seed.Defaults().Routes) {
		t.Fatalf("expected one path per route, got %d", len(paths))
	}
	for _, p := range paths {
		if len(p.Points) < 2 {
			t.Fatalf("route %s has %d points", p.Route.ID, len(p.Points))
		}
		if !strings.HasPrefix(p.Path, "M ") {
			t.Fatalf("route %s has path %q", p.Route.ID, p.Path)
		}
	}
}

func TestServiceContext(t *testing.T) {
	text, err := newTestService(t).Context(context.Background())
	if err != nil {
		t.Fatalf("Context failed: %v", err)
	}
	if !strings.Contains(text, "LANCHAS CADASTRADAS") {
		t.Fatalf("unexpected context:\n%s", text)
	}
}

func TestServiceWithoutApp(t *testing.T) {
	svc := NewService(nil)
	if _, err := svc.ListBoats(context.Background()); err != errNoApp {
		t.Fatalf("expected errNoApp, got %v", err)
	}
}

func TestServerListsTools(t *testing.T) {
	svc := newTestService(t)
	srv := NewServer(svc.App, "", "")

	resp := srv.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	for _, name := range []string{"list_boats", "create_boat", "list_schedules", "upsert_schedule", "log_arrival", "list_logs", "list_stops", "route_paths"} {
		if !strings.Contains(string(raw), `"`+name+`"`) {
			t.Fatalf("expected tool %s in %s", name, raw)
		}
	}
}

func TestServerCallsCreateBoat(t *testing.T) {
	svc := newTestService(t)
	srv := NewServer(svc.App, "", "")

	msg := `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"create_boat","arguments":{"name":"Nova Aliança"}}}`
	resp := srv.HandleMessage(context.Background(), json.RawMessage(msg))
	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	if !strings.Contains(string(raw), "Nova Aliança") {
		t.Fatalf("expected created boat in %s", raw)
	}

	boats, err := svc.ListBoats(context.Background())
	if err != nil {
		t.Fatalf("ListBoats failed: %v", err)
	}
	if boats[len(boats)-1].Name != "Nova Aliança" {
		t.Fatalf("expected boat to be persisted, got %+v", boats[len(boats)-1])
	}
}

func TestRunnerEndpoint(t *testing.T) {
	cases := map[string]string{"": DefaultPath, "rpc": "/rpc", " /x ": "/x"}
	for in, want := range cases {
		if got := (Runner{HTTPEndpointPath: in}).Endpoint(); got != want {
			t.Fatalf("Endpoint(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRunnerHandlerHealth(t *testing.T) {
	svc := newTestService(t)
	r := Runner{App: svc.App}
	h := r.Handler(NewServer(svc.App, "", ""))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "ok") {
		t.Fatalf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}
}

func TestRunnerRejectsUnknownTransport(t *testing.T) {
	svc := newTestService(t)
	err := Runner{App: svc.App, Transport: "carrier-pigeon"}.Do(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unsupported transport") {
		t.Fatalf("expected unsupported transport error, got %v", err)
	}
}
