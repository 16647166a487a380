package assistant

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/riverline/pkg/model"
	"tableflip.dev/riverline/pkg/state"
)

// recentLogs is how many arrival logs the context carries.
const recentLogs = 20

// logTimeLayout mirrors the pt-BR locale date format.
const logTimeLayout = "02/01/2006, 15:04:05"

// BuildContext renders the boats, schedules and most recent arrivals as the
// plain text block given to the model. Timestamps are shown in loc, or the
// local zone when loc is nil.
func BuildContext(snap state.Snapshot, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	boats := make([]string, 0, len(snap.Boats))
	for _, b := range snap.Boats {
		boats = append(boats, fmt.Sprintf("- %s (Capacidade: %d)", b.Name, b.Capacity))
	}

	schedules := make([]string, 0, len(snap.Schedules))
	for _, sc := range snap.Schedules {
		schedules = append(schedules, fmt.Sprintf("- %s: %s às %s (%s) - %s",
			model.BoatName(snap.Boats, sc.BoatID),
			model.StopName(snap.Stops, sc.StopID),
			sc.ExpectedTime,
			sc.DayOfWeek,
			sc.Direction.Heading(),
		))
	}

	logs := append([]model.ArrivalLog(nil), snap.Logs...)
	model.SortLogsNewestFirst(logs)
	if len(logs) > recentLogs {
		logs = logs[:recentLogs]
	}
	arrivals := make([]string, 0, len(logs))
	for _, l := range logs {
		notes := l.Notes
		if notes == "" {
			notes = "Nenhuma"
		}
		arrivals = append(arrivals, fmt.Sprintf("- [%s] %s chegou em %s (%s). Obs: %s",
			time.UnixMilli(l.Timestamp).In(loc).Format(logTimeLayout),
			model.BoatName(snap.Boats, l.BoatID),
			model.StopName(snap.Stops, l.StopID),
			l.Direction,
			notes,
		))
	}

	var b strings.Builder
	b.WriteString("\n=== DADOS DO APLICATIVO NAVEGAAMAZONAS ===\n")
	b.WriteString("LANCHAS CADASTRADAS:\n")
	b.WriteString(orPlaceholder(boats, "Nenhuma cadastrada"))
	b.WriteString("\n\nHORÁRIOS PREVISTOS (ITINERÁRIO):\n")
	b.WriteString(orPlaceholder(schedules, "Nenhum horário cadastrado"))
	b.WriteString("\n\nREGISTROS RECENTES DE CHEGADA (REAL):\n")
	b.WriteString(orPlaceholder(arrivals, "Nenhum registro recente"))
	b.WriteString("\n=========================================\n")
	return b.String()
}

func orPlaceholder(lines []string, placeholder string) string {
	if len(lines) == 0 {
		return placeholder
	}
	return strings.Join(lines, "\n")
}
