package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const clockLayout = "15:04"

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseClock validates a 24h clock string and returns it zero padded, so
// "7:05" becomes "07:05". Schedules rely on the padding to sort as text.
func ParseClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty time")
	}
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if h > 23 || mm > 59 {
		return "", fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	return fmt.Sprintf("%02d:%02d", h, mm), nil
}

// Clock formats the wall-clock time of t as HH:MM.
func Clock(t time.Time) string {
	return t.Format(clockLayout)
}

// FromMillis converts an epoch-millisecond timestamp to local time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).Local()
}
