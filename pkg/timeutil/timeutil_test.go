package timeutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseWindow(t *testing.T) {
	cases := map[string]struct {
		input string
		want  time.Duration
		label string
	}{
		"default":   {input: "", want: 7 * 24 * time.Hour, label: "1w"},
		"days":      {input: "3d", want: 72 * time.Hour, label: "3d"},
		"combined":  {input: "1w2d6h", want: (9*24 + 6) * time.Hour, label: "1w2d6h"},
		"portugues": {input: "2 dias", want: 48 * time.Hour, label: "2d"},
		"normalize": {input: "48h", want: 48 * time.Hour, label: "2d"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, label, err := ParseWindow(tc.input)
			if err != nil {
				t.Fatalf("ParseWindow(%q) error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("ParseWindow(%q) = %v, want %v", tc.input, got, tc.want)
			}
			if label != tc.label {
				t.Fatalf("ParseWindow(%q) label = %q, want %q", tc.input, label, tc.label)
			}
		})
	}
}

func TestParseWindowErrors(t *testing.T) {
	for _, input := range []string{"abc", "1y", "0d", "5"} {
		if _, _, err := ParseWindow(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestParseWindowTooLarge(t *testing.T) {
	for _, input := range []string{"99999999999w", "15251w", "521w", "520w1m", "99999999999999999999d"} {
		_, _, err := ParseWindow(input)
		if !errors.Is(err, ErrWindowTooLarge) {
			t.Fatalf("ParseWindow(%q) error = %v, want ErrWindowTooLarge", input, err)
		}
	}
	got, label, err := ParseWindow("520w")
	if err != nil || got != MaxWindow || label != "520w" {
		t.Fatalf("ParseWindow(520w) = %v %q %v", got, label, err)
	}
}

func TestParseClock(t *testing.T) {
	cases := map[string]string{
		"07:30":  "07:30",
		"7:05":   "07:05",
		" 18:00": "18:00",
		"23:59":  "23:59",
	}
	for in, want := range cases {
		got, err := ParseClock(in)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseClock(%q) = %q, want %q", in, got, want)
		}
	}
	for _, bad := range []string{"", "24:00", "12:60", "noon", "12h30", "123:00"} {
		if _, err := ParseClock(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestClockRoundTrip(t *testing.T) {
	ts := time.Date(2024, 5, 10, 9, 4, 0, 0, time.Local)
	if got := Clock(FromMillis(ts.UnixMilli())); got != "09:04" {
		t.Fatalf("unexpected clock %q", got)
	}
}
