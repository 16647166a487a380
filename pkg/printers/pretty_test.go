package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/riverline/pkg/app"
	"tableflip.dev/riverline/pkg/model"
	"tableflip.dev/riverline/pkg/seed"
)

func init() {
	color.NoColor = true
}

func TestBoats(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf, ShowID: true}
	pp.Boats(seed.Defaults().Boats[:2])

	out := buf.String()
	for _, want := range []string{"Lanchas - 2 cadastradas", "b1", "Lancha Glória de Deus", "9299999999", "80"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestEmptyListsSayNone(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Logs(nil, nil, nil)
	if !strings.Contains(buf.String(), "nenhum") {
		t.Fatalf("expected placeholder, got %q", buf.String())
	}
}

func TestSchedulesResolveNames(t *testing.T) {
	d := seed.Defaults()
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Schedules("Itinerário", []model.Schedule{
		{ID: "s1", BoatID: "b2", StopID: "4", DayOfWeek: model.Friday, ExpectedTime: "06:30", Direction: model.Downstream},
		{ID: "s2", BoatID: "gone", StopID: "4", DayOfWeek: model.Friday, ExpectedTime: "07:30", Direction: model.Upstream},
	}, d.Boats, d.Stops)

	out := buf.String()
	for _, want := range []string{"Expresso Cristalina", "Tefé", "↓ Descendo", model.UnknownBoat} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWeek(t *testing.T) {
	d := seed.Defaults()
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	schedules := []model.Schedule{
		{BoatID: "b1", StopID: "3", DayOfWeek: model.Monday, ExpectedTime: "06:00", Direction: model.Upstream},
		{BoatID: "b1", StopID: "4", DayOfWeek: model.Monday, ExpectedTime: "18:00", Direction: model.Upstream},
		{BoatID: "b1", StopID: "1", DayOfWeek: model.Saturday, ExpectedTime: "09:00", Direction: model.Downstream},
	}
	pp.Week(d.Boats[0], schedules, d.Stops, time.Wednesday)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// title + 7 days + one continuation line for Monday
	if len(lines) != 9 {
		t.Fatalf("expected 9 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "Segunda") || !strings.Contains(lines[1], "06:00 ↑ Coari") {
		t.Fatalf("unexpected monday line %q", lines[1])
	}
	if !strings.Contains(lines[2], "18:00 ↑ Tefé") {
		t.Fatalf("unexpected continuation line %q", lines[2])
	}
	if !strings.Contains(lines[7], "09:00 ↓ Manaus") {
		t.Fatalf("unexpected saturday line %q", lines[7])
	}
}

func TestWeekdayOf(t *testing.T) {
	cases := map[time.Weekday]model.Weekday{
		time.Monday:   model.Monday,
		time.Saturday: model.Saturday,
		time.Sunday:   model.Sunday,
	}
	for in, want := range cases {
		if got := WeekdayOf(in); got != want {
			t.Fatalf("WeekdayOf(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	now := time.Now()
	pp.Report(app.ReportResult{
		Since: now.Add(-time.Hour),
		Until: now,
		Total: 1,
		Sections: []app.ReportSection{{
			BoatID: "b1", BoatName: "Lancha Glória de Deus",
			Arrivals: []app.ReportItem{{Log: model.ArrivalLog{ID: "l1", Notes: "07:00 - ok", Direction: model.Upstream}, StopName: "Coari", At: now}},
		}},
	}, "1h")

	out := buf.String()
	for _, want := range []string{"últimos 1h", "Lancha Glória de Deus - 1 chegadas", "Coari", "07:00 - ok"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	pp.Report(app.ReportResult{Since: now, Until: now}, "1w")
	if !strings.Contains(buf.String(), "Nenhuma chegada") {
		t.Fatalf("expected empty report message, got %q", buf.String())
	}
}

func TestRoutesCountStops(t *testing.T) {
	d := seed.Defaults()
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Routes(d.Routes, d.Stops)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected title, header and 3 routes, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[2], "██") || !strings.Contains(lines[2], "Rio Solimões") || !strings.HasSuffix(strings.TrimSpace(lines[2]), "11") {
		t.Fatalf("unexpected solimoes line %q", lines[2])
	}
}
