package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/riverline/pkg/model"
)

const dayWidth = len("Sábado ") // the longest day label

// Week prints a boat's itinerary as one line per weekday, Monday first.
// Schedules must already be sorted. Today's line is bold and days without a
// departure are faint.
func (pp *PrettyPrint) Week(boat model.Boat, schedules []model.Schedule, stops []model.Stop, today time.Weekday) {
	pp.Title(boat.Name)

	byDay := make(map[model.Weekday][]model.Schedule, 7)
	for _, sc := range schedules {
		byDay[sc.DayOfWeek] = append(byDay[sc.DayOfWeek], sc)
	}

	faint := color.New(color.Faint, color.FgWhite)
	plain := color.New()
	bold := color.New(color.Bold, color.FgHiWhite)
	sub := color.New(color.FgGreen)
	desc := color.New(color.FgBlue)

	for _, day := range model.Weekdays() {
		label := string(day)
		pad := strings.Repeat(" ", dayWidth-len([]rune(label)))

		entries := byDay[day]
		printer := plain
		switch {
		case WeekdayOf(today) == day:
			printer = bold
		case len(entries) == 0:
			printer = faint
		}
		_, _ = printer.Fprint(pp.out(), label+pad)

		if len(entries) == 0 {
			_, _ = faint.Fprintln(pp.out(), "·")
			continue
		}
		for i, sc := range entries {
			if i > 0 {
				_, _ = plain.Fprint(pp.out(), strings.Repeat(" ", dayWidth))
			}
			dir := sub
			if sc.Direction == model.Downstream {
				dir = desc
			}
			_, _ = printer.Fprintf(pp.out(), "%s ", sc.ExpectedTime)
			_, _ = dir.Fprint(pp.out(), sc.Direction.Symbol())
			_, _ = plain.Fprintf(pp.out(), " %s\n", model.StopName(stops, sc.StopID))
		}
	}
	pp.NewLine()
}

// WeekdayOf maps a calendar weekday to its schedule label.
func WeekdayOf(d time.Weekday) model.Weekday {
	if d == time.Sunday {
		return model.Sunday
	}
	return model.Weekdays()[d-1]
}

// Summary prints one compact line per boat with its departure count per day.
func (pp *PrettyPrint) Summary(boats []model.Boat, schedules []model.Schedule) {
	pp.Title("Semana")
	counts := make(map[string][]int, len(boats))
	for _, sc := range schedules {
		c, ok := counts[sc.BoatID]
		if !ok {
			c = make([]int, 7)
			counts[sc.BoatID] = c
		}
		if o := sc.DayOfWeek.Ordinal(); o <= 7 {
			c[o-1]++
		}
	}

	head := color.New(color.FgWhite, color.Italic)
	_, _ = head.Fprint(pp.out(), strings.Repeat(" ", nameWidth(boats)+2))
	for _, day := range model.Weekdays() {
		_, _ = head.Fprintf(pp.out(), "%-4s", string([]rune(string(day))[:3]))
	}
	pp.NewLine()

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	for _, b := range boats {
		_, _ = fmt.Fprintf(pp.out(), "%-*s  ", nameWidth(boats), b.Name)
		c := counts[b.ID]
		for i := 0; i < 7; i++ {
			n := 0
			if c != nil {
				n = c[i]
			}
			if n == 0 {
				_, _ = l1.Fprintf(pp.out(), "%-4s", "·")
			} else {
				_, _ = l2.Fprintf(pp.out(), "%-4d", n)
			}
		}
		pp.NewLine()
	}
	pp.NewLine()
}

func nameWidth(boats []model.Boat) int {
	w := 0
	for _, b := range boats {
		if n := len([]rune(b.Name)); n > w {
			w = n
		}
	}
	return w
}
