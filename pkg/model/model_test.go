package model

import "testing"

func TestSortSchedulesByWeekdayThenTime(t *testing.T) {
	in := []Schedule{
		{ID: "a", DayOfWeek: Sunday, ExpectedTime: "06:00"},
		{ID: "b", DayOfWeek: Monday, ExpectedTime: "18:30"},
		{ID: "c", DayOfWeek: Wednesday, ExpectedTime: "07:15"},
		{ID: "d", DayOfWeek: Monday, ExpectedTime: "05:45"},
		{ID: "e", DayOfWeek: Saturday, ExpectedTime: "23:59"},
		{ID: "f", DayOfWeek: Wednesday, ExpectedTime: "07:05"},
	}
	SortSchedules(in)

	want := []string{"d", "b", "f", "c", "e", "a"}
	for i, id := range want {
		if in[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, in[i].ID)
		}
	}
}

func TestSortSchedulesUnknownDayLast(t *testing.T) {
	in := []Schedule{
		{ID: "x", DayOfWeek: "Feriado", ExpectedTime: "01:00"},
		{ID: "y", DayOfWeek: Sunday, ExpectedTime: "23:00"},
	}
	SortSchedules(in)
	if in[0].ID != "y" {
		t.Fatalf("expected known weekday first, got %s", in[0].ID)
	}
}

func TestSortLogsNewestFirst(t *testing.T) {
	logs := []ArrivalLog{{ID: "old", Timestamp: 1}, {ID: "new", Timestamp: 3}, {ID: "mid", Timestamp: 2}}
	SortLogsNewestFirst(logs)
	if logs[0].ID != "new" || logs[2].ID != "old" {
		t.Fatalf("unexpected order: %v", logs)
	}
}

func TestParseWeekday(t *testing.T) {
	cases := []struct {
		in   string
		want Weekday
	}{
		{"", Monday},
		{"terca", Tuesday},
		{"Terça-feira", Tuesday},
		{"sábado", Saturday},
		{"Sabado", Saturday},
		{"sunday", Sunday},
		{" Quinta ", Thursday},
	}
	for _, tc := range cases {
		got, err := ParseWeekday(tc.in)
		if err != nil {
			t.Fatalf("ParseWeekday(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseWeekday(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
	if _, err := ParseWeekday("someday"); err == nil {
		t.Fatalf("expected error for unknown day")
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("down"); err != nil || d != Downstream {
		t.Fatalf("expected downstream, got %v %v", d, err)
	}
	if d, err := ParseDirection(string(Upstream)); err != nil || d != Upstream {
		t.Fatalf("expected upstream label to parse, got %v %v", d, err)
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNameResolutionFallsBackToUnknown(t *testing.T) {
	boats := []Boat{{ID: "b1", Name: "Soberana"}}
	if got := BoatName(boats, "b1"); got != "Soberana" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := BoatName(boats, "gone"); got != UnknownBoat {
		t.Fatalf("expected unknown boat, got %q", got)
	}
	if got := StopName(nil, "gone"); got != UnknownStop {
		t.Fatalf("expected unknown stop, got %q", got)
	}
}

func TestCloneStopsDoesNotShareRoutes(t *testing.T) {
	in := []Stop{{ID: "1", RouteIDs: []string{"solimoes"}}}
	out := CloneStops(in)
	out[0].RouteIDs[0] = "jurua"
	if in[0].RouteIDs[0] != "solimoes" {
		t.Fatalf("clone shares route slice")
	}
}
