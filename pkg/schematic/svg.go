package schematic

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/riverline/pkg/model"
)

// Plane dimensions of the rendered map.
const (
	Width  = 100
	Height = 60
)

const (
	background  = "#f0f9ff"
	stopStroke  = "#0f766e"
	labelColor  = "#334155"
	legendX     = 62
	legendStepY = 3
)

// Render writes an SVG document with one path per route, a legend, and one
// marker and label per stop. Each stop is drawn once regardless of how many
// routes share it.
func Render(w io.Writer, routes []model.Route, stops []model.Stop) error {
	bw := bufio.NewWriter(w)
	p := func(format string, args ...any) {
		fmt.Fprintf(bw, format, args...)
	}

	p(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d">`+"\n", Width, Height)
	p(`  <rect width="%d" height="%d" fill="%s"/>`+"\n", Width, Height, background)

	for _, r := range routes {
		d := PathData(RoutePath(r.ID, stops))
		if d == "" {
			continue
		}
		p(`  <path id="route-%s" d="%s" fill="none" stroke="%s" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round" opacity="0.6"/>`+"\n",
			escape(r.ID), d, escape(r.Color))
	}

	for _, s := range stops {
		p(`  <g id="stop-%s">`+"\n", escape(s.ID))
		p(`    <circle cx="%s" cy="%s" r="1.2" fill="white" stroke="%s" stroke-width="0.5"/>`+"\n",
			num(s.MapX), num(s.MapY), stopStroke)
		p(`    <text x="%s" y="%s" text-anchor="middle" font-size="2" fill="%s">%s</text>`+"\n",
			num(s.MapX), num(s.MapY-2.5), labelColor, escape(s.Name))
		p("  </g>\n")
	}

	if len(routes) > 0 {
		top := Height - 2 - legendStepY*len(routes)
		p(`  <g id="legend" font-size="1.8" fill="%s">`+"\n", labelColor)
		for i, r := range routes {
			y := top + legendStepY*(i+1)
			p(`    <circle cx="%d" cy="%d" r="0.9" fill="%s"/>`+"\n", legendX, y, escape(r.Color))
			p(`    <text x="%d" y="%s">%s</text>`+"\n", legendX+2, num(float64(y)+0.6), escape(r.Name))
		}
		p("  </g>\n")
	}

	p("</svg>\n")
	return bw.Flush()
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
