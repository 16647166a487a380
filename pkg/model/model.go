// Package model holds the river network entities shared by every layer:
// routes, stops, boats, planned schedules and observed arrival logs.
package model

// Route is a named river corridor. Routes are reference data and never change
// after startup.
type Route struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// Stop is a named location along one or more routes. MapX and MapY live in a
// normalized 0-100 plane used only by the schematic map.
type Stop struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	DistanceKm float64  `json:"distanceFromManausKm" yaml:"distanceKm"`
	RouteIDs   []string `json:"routeIds" yaml:"routeIds"`
	MapX       float64  `json:"mapX" yaml:"mapX"`
	MapY       float64  `json:"mapY" yaml:"mapY"`
}

// OnRoute reports whether the stop belongs to the route.
func (s Stop) OnRoute(routeID string) bool {
	for _, id := range s.RouteIDs {
		if id == routeID {
			return true
		}
	}
	return false
}

// Boat is a passenger boat operating on the network.
type Boat struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Contact  string `json:"contact" yaml:"contact"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}

// Schedule is one planned weekly occurrence of a boat at a stop.
type Schedule struct {
	ID            string    `json:"id"`
	BoatID        string    `json:"boatId"`
	StopID        string    `json:"stopId"`
	Direction     Direction `json:"direction"`
	DayOfWeek     Weekday   `json:"dayOfWeek"`
	ExpectedTime  string    `json:"expectedTime"`
	DeparturePort string    `json:"departurePort,omitempty"`
}

// ArrivalLog is an observed arrival of a boat at a stop. Timestamp is the
// moment the record was created, in epoch milliseconds. ReportedTime is the
// HH:MM the operator typed, which older records only carry inside Notes.
type ArrivalLog struct {
	ID           string    `json:"id"`
	BoatID       string    `json:"boatId"`
	StopID       string    `json:"stopId"`
	Direction    Direction `json:"direction"`
	Timestamp    int64     `json:"timestamp"`
	Notes        string    `json:"notes"`
	ReportedTime string    `json:"reportedTime,omitempty"`
}

// Clone returns a copy of the stop that does not share RouteIDs.
func (s Stop) Clone() Stop {
	out := s
	if s.RouteIDs != nil {
		out.RouteIDs = make([]string, len(s.RouteIDs))
		copy(out.RouteIDs, s.RouteIDs)
	}
	return out
}

// CloneStops deep copies a stop list.
func CloneStops(in []Stop) []Stop {
	if in == nil {
		return nil
	}
	out := make([]Stop, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}

// Unknown display names used when a reference can no longer be resolved.
const (
	UnknownBoat = "Desconhecida"
	UnknownStop = "Desconhecido"
)

// BoatName resolves a boat id to its name, or UnknownBoat.
func BoatName(boats []Boat, id string) string {
	for _, b := range boats {
		if b.ID == id {
			return b.Name
		}
	}
	return UnknownBoat
}

// StopName resolves a stop id to its name, or UnknownStop.
func StopName(stops []Stop, id string) string {
	for _, s := range stops {
		if s.ID == id {
			return s.Name
		}
	}
	return UnknownStop
}
