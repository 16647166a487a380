package model

import (
	"fmt"
	"strings"
)

// Weekday is one of the seven fixed day labels a schedule repeats on.
type Weekday string

const (
	Monday    Weekday = "Segunda"
	Tuesday   Weekday = "Terça"
	Wednesday Weekday = "Quarta"
	Thursday  Weekday = "Quinta"
	Friday    Weekday = "Sexta"
	Saturday  Weekday = "Sábado"
	Sunday    Weekday = "Domingo"
)

var weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Weekdays returns the labels Monday first.
func Weekdays() []Weekday {
	return append([]Weekday(nil), weekdays...)
}

// Ordinal is 1 for Monday through 7 for Sunday. Unrecognized labels sort last.
func (w Weekday) Ordinal() int {
	for i, d := range weekdays {
		if d == w {
			return i + 1
		}
	}
	return len(weekdays) + 1
}

func (w Weekday) String() string {
	return string(w)
}

var weekdayAliases = map[string]Weekday{
	"segunda": Monday, "seg": Monday, "monday": Monday, "mon": Monday,
	"terca": Tuesday, "terça": Tuesday, "ter": Tuesday, "tuesday": Tuesday, "tue": Tuesday,
	"quarta": Wednesday, "qua": Wednesday, "wednesday": Wednesday, "wed": Wednesday,
	"quinta": Thursday, "qui": Thursday, "thursday": Thursday, "thu": Thursday,
	"sexta": Friday, "sex": Friday, "friday": Friday, "fri": Friday,
	"sabado": Saturday, "sábado": Saturday, "sab": Saturday, "sáb": Saturday, "saturday": Saturday, "sat": Saturday,
	"domingo": Sunday, "dom": Sunday, "sunday": Sunday, "sun": Sunday,
}

// ParseWeekday accepts the stored label, an unaccented or abbreviated form, or
// the English day name. An empty string yields Monday, the form default.
func ParseWeekday(s string) (Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return Monday, nil
	}
	key = strings.TrimSuffix(key, "-feira")
	if d, ok := weekdayAliases[key]; ok {
		return d, nil
	}
	return "", fmt.Errorf("unknown day of week %q", s)
}
