// Package schematic derives route polylines from the stop topology and renders
// them as an SVG map in a normalized 0-100 plane.
package schematic

import (
	"sort"
	"strconv"
	"strings"

	"tableflip.dev/riverline/pkg/model"
)

// Point is a position on the schematic plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StopsForRoute returns the stops that belong to routeID, in input order.
func StopsForRoute(routeID string, stops []model.Stop) []model.Stop {
	out := make([]model.Stop, 0, len(stops))
	for _, s := range stops {
		if s.OnRoute(routeID) {
			out = append(out, s.Clone())
		}
	}
	return out
}

// RouteStops returns the stops of routeID ordered by distance from the origin.
// Stops at equal distance keep their input order.
func RouteStops(routeID string, stops []model.Stop) []model.Stop {
	out := StopsForRoute(routeID, stops)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}

// RoutePath is the polyline of routeID: its stops by ascending distance mapped
// to their map coordinates. A route with no stops has an empty path.
func RoutePath(routeID string, stops []model.Stop) []Point {
	ordered := RouteStops(routeID, stops)
	points := make([]Point, len(ordered))
	for i, s := range ordered {
		points[i] = Point{X: s.MapX, Y: s.MapY}
	}
	return points
}

// PathData renders points in SVG path syntax, "M x y L x y ...". No points
// yields "".
func PathData(points []Point) string {
	var b strings.Builder
	for i, p := range points {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString("L ")
		}
		b.WriteString(num(p.X))
		b.WriteByte(' ')
		b.WriteString(num(p.Y))
	}
	return b.String()
}

// RoutePaths computes every route's polyline keyed by route id.
func RoutePaths(routes []model.Route, stops []model.Stop) map[string][]Point {
	out := make(map[string][]Point, len(routes))
	for _, r := range routes {
		out[r.ID] = RoutePath(r.ID, stops)
	}
	return out
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
