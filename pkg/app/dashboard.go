package app

import (
	"context"

	"tableflip.dev/riverline/pkg/model"
)

// nextDepartures is how many schedules the dashboard previews.
const nextDepartures = 5

// Departure is a schedule with its boat and stop names resolved.
type Departure struct {
	Schedule model.Schedule `json:"schedule"`
	BoatName string         `json:"boatName"`
	StopName string         `json:"stopName"`
}

// Dashboard is the landing summary.
type Dashboard struct {
	Boats      int         `json:"boats"`
	Schedules  int         `json:"schedules"`
	Logs       int         `json:"logs"`
	Departures []Departure `json:"departures"`
}

// Dashboard counts the collections and previews the first schedules in stored
// order.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	snap, err := s.snapshot()
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		Boats:      len(snap.Boats),
		Schedules:  len(snap.Schedules),
		Logs:       len(snap.Logs),
		Departures: make([]Departure, 0, nextDepartures),
	}
	for i, sc := range snap.Schedules {
		if i == nextDepartures {
			break
		}
		d.Departures = append(d.Departures, Departure{
			Schedule: sc,
			BoatName: model.BoatName(snap.Boats, sc.BoatID),
			StopName: model.StopName(snap.Stops, sc.StopID),
		})
	}
	return d, nil
}
