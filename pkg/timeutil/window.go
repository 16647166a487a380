// Package timeutil parses the time inputs the CLI accepts: report windows such
// as "1w2d" and HH:MM clock values.
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is the report window used when none is given.
const DefaultWindow = "1w"

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// MaxWindow bounds report windows to ten years.
const MaxWindow = 520 * week

// ErrWindowTooLarge is returned for windows longer than MaxWindow.
var ErrWindowTooLarge = errors.New("window too large")

var (
	windowSegment = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	windowUnits   = map[string]time.Duration{
		"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute, "minuto": time.Minute, "minutos": time.Minute,
		"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour, "hora": time.Hour, "horas": time.Hour,
		"d": day, "day": day, "days": day, "dia": day, "dias": day,
		"w": week, "wk": week, "week": week, "weeks": week, "sem": week, "semana": week, "semanas": week,
	}
)

// ParseWindow parses "1w", "3d" or "1w2d6h" into a duration and returns a
// canonical label. Empty input means one week.
func ParseWindow(input string) (time.Duration, string, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	if rest == "" {
		rest = DefaultWindow
	}

	var total time.Duration
	for rest != "" {
		n, unit, consumed, err := nextSegment(rest)
		if err != nil {
			return 0, "", err
		}
		// Compare counts rather than products so huge inputs cannot wrap.
		if n > int64((MaxWindow-total)/unit) {
			return 0, "", fmt.Errorf("%w: %q exceeds %s", ErrWindowTooLarge, strings.TrimSpace(input), FormatWindow(MaxWindow))
		}
		total += time.Duration(n) * unit
		rest = strings.TrimSpace(rest[consumed:])
	}

	if total <= 0 {
		return 0, "", errors.New("window must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

func nextSegment(s string) (int64, time.Duration, int, error) {
	m := windowSegment.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, fmt.Errorf("invalid window segment %q", s)
	}
	unit, ok := windowUnits[m[2]]
	if !ok {
		return 0, 0, 0, fmt.Errorf("unsupported window unit %q", m[2])
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		// Only overflow gets here; the pattern guarantees digits.
		return 0, 0, 0, fmt.Errorf("%w: %s%s", ErrWindowTooLarge, m[1], m[2])
	}
	return n, unit, len(m[0]), nil
}

// FormatWindow renders a duration with w/d/h/m tokens, largest first.
func FormatWindow(d time.Duration) string {
	if d < time.Minute {
		return "0m"
	}
	var b strings.Builder
	for _, u := range []struct {
		size  time.Duration
		label string
	}{{week, "w"}, {day, "d"}, {time.Hour, "h"}, {time.Minute, "m"}} {
		if n := d / u.size; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u.label)
			d -= n * u.size
		}
	}
	return b.String()
}
