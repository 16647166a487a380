package printers

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/termenv"

	"tableflip.dev/riverline/pkg/app"
	"tableflip.dev/riverline/pkg/model"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

const timeLayout = "02/01/2006 15:04"

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s\n", count, noun)
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " nenhum\n\n")
}

func (pp *PrettyPrint) table(header ...interface{}) *uitable.Table {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	cells := make([]interface{}, 0, len(header)+1)
	if pp.ShowID {
		cells = append(cells, bold.Sprint("ID"))
	}
	for _, h := range header {
		cells = append(cells, bold.Sprint(h))
	}
	tbl.AddRow(cells...)
	return tbl
}

func (pp *PrettyPrint) row(tbl *uitable.Table, id string, cells ...interface{}) {
	if pp.ShowID {
		y := color.New(color.FgHiYellow, color.Italic, color.Faint)
		cells = append([]interface{}{y.Sprint(id)}, cells...)
	}
	tbl.AddRow(cells...)
}

func (pp *PrettyPrint) flush(tbl *uitable.Table) {
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Boats lists the fleet.
func (pp *PrettyPrint) Boats(boats []model.Boat) {
	pp.TitleWithCount("Lanchas", len(boats), "cadastradas")
	if len(boats) == 0 {
		pp.none()
		return
	}
	tbl := pp.table("Nome", "Capacidade", "Contato")
	for _, b := range boats {
		capacity := "-"
		if b.Capacity > 0 {
			capacity = strconv.Itoa(b.Capacity)
		}
		contact := b.Contact
		if contact == "" {
			contact = "-"
		}
		pp.row(tbl, b.ID, b.Name, capacity, contact)
	}
	tbl.RightAlign(len(tbl.Rows[0].Cells) - 2)
	pp.flush(tbl)
}

// Schedules lists schedules in the order given.
func (pp *PrettyPrint) Schedules(title string, schedules []model.Schedule, boats []model.Boat, stops []model.Stop) {
	pp.TitleWithCount(title, len(schedules), "horários")
	if len(schedules) == 0 {
		pp.none()
		return
	}
	tbl := pp.table("Dia", "Hora", "Lancha", "Localidade", "Sentido", "Saída")
	for _, sc := range schedules {
		pp.row(tbl, sc.ID,
			sc.DayOfWeek,
			sc.ExpectedTime,
			model.BoatName(boats, sc.BoatID),
			model.StopName(stops, sc.StopID),
			sc.Direction.Symbol()+" "+sc.Direction.Short(),
			sc.DeparturePort,
		)
	}
	pp.flush(tbl)
}

// Logs lists arrival logs in the order given.
func (pp *PrettyPrint) Logs(logs []model.ArrivalLog, boats []model.Boat, stops []model.Stop) {
	pp.TitleWithCount("Registros de chegada", len(logs), "registros")
	if len(logs) == 0 {
		pp.none()
		return
	}
	tbl := pp.table("Registrado", "Lancha", "Localidade", "Sentido", "Obs")
	for _, l := range logs {
		pp.row(tbl, l.ID,
			time.UnixMilli(l.Timestamp).Local().Format(timeLayout),
			model.BoatName(boats, l.BoatID),
			model.StopName(stops, l.StopID),
			l.Direction.Symbol()+" "+l.Direction.Short(),
			l.Notes,
		)
	}
	pp.flush(tbl)
}

// Stops lists stops with the routes they belong to.
func (pp *PrettyPrint) Stops(stops []model.Stop, routes []model.Route) {
	pp.TitleWithCount("Localidades", len(stops), "localidades")
	if len(stops) == 0 {
		pp.none()
		return
	}
	names := make(map[string]string, len(routes))
	for _, r := range routes {
		names[r.ID] = r.Name
	}
	tbl := pp.table("Nome", "Km", "Rotas")
	for _, s := range stops {
		rs := make([]string, 0, len(s.RouteIDs))
		for _, id := range s.RouteIDs {
			if n, ok := names[id]; ok {
				rs = append(rs, n)
			} else {
				rs = append(rs, id)
			}
		}
		pp.row(tbl, s.ID, s.Name, strconv.FormatFloat(s.DistanceKm, 'f', -1, 64), strings.Join(rs, ", "))
	}
	pp.flush(tbl)
}

// Routes lists the river corridors.
func (pp *PrettyPrint) Routes(routes []model.Route, stops []model.Stop) {
	pp.Title("Rotas")
	tbl := pp.table("", "Nome", "Localidades")
	for _, r := range routes {
		n := 0
		for _, s := range stops {
			if s.OnRoute(r.ID) {
				n++
			}
		}
		pp.row(tbl, r.ID, swatch(r.Color), r.Name, n)
	}
	pp.flush(tbl)
}

// Dashboard prints the landing summary.
func (pp *PrettyPrint) Dashboard(d app.Dashboard) {
	pp.Title("NavegaAmazonas")
	bold := color.New(color.Bold, color.FgHiCyan)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Lanchas", bold.Sprint(d.Boats))
	tbl.AddRow("Horários", bold.Sprint(d.Schedules))
	tbl.AddRow("Registros", bold.Sprint(d.Logs))
	tbl.RightAlign(0)
	pp.flush(tbl)

	pp.Title("Próximas saídas")
	if len(d.Departures) == 0 {
		pp.none()
		return
	}
	dt := pp.table("Dia", "Hora", "Lancha", "Localidade")
	for _, dep := range d.Departures {
		pp.row(dt, dep.Schedule.ID, dep.Schedule.DayOfWeek, dep.Schedule.ExpectedTime, dep.BoatName, dep.StopName)
	}
	pp.flush(dt)
}

// Report prints an arrivals report.
func (pp *PrettyPrint) Report(result app.ReportResult, label string) {
	since := result.Since.Local().Format(timeLayout)
	until := result.Until.Local().Format(timeLayout)
	_, _ = fmt.Fprintf(pp.out(), "Relatório · últimos %s (%s → %s)\n", label, since, until)

	if result.Total == 0 {
		_, _ = fmt.Fprintln(pp.out(), "  Nenhuma chegada registrada neste período.")
		pp.NewLine()
		return
	}

	for _, section := range result.Sections {
		pp.NewLine()
		pp.TitleWithCount(section.BoatName, len(section.Arrivals), "chegadas")
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, item := range section.Arrivals {
			pp.row(tbl, item.Log.ID,
				"  "+item.At.Local().Format(timeLayout),
				item.Log.Direction.Symbol(),
				item.StopName,
				item.Log.Notes,
			)
		}
		_, _ = fmt.Fprintln(pp.out(), tbl)
	}
	pp.NewLine()
}

// swatch renders a block in the route's hex color, degraded to the terminal's
// profile. It is a plain block when color is off.
func swatch(hex string) string {
	profile := termenv.ColorProfile()
	if color.NoColor {
		profile = termenv.Ascii
	}
	return termenv.String("██").Foreground(profile.Color(hex)).String()
}
