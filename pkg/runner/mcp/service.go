// Package mcp provides the Model Context Protocol server integration for riverline.
package mcp

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/riverline/pkg/app"
	"tableflip.dev/riverline/pkg/assistant"
	"tableflip.dev/riverline/pkg/model"
	"tableflip.dev/riverline/pkg/schematic"
)

// Service adapts the application service to the shapes exposed over MCP.
type Service struct {
	App *app.Service
}

var errNoApp = errors.New("application service is not configured")

// ScheduleDTO is a schedule with its references resolved.
type ScheduleDTO struct {
	model.Schedule
	BoatName string `json:"boatName"`
	StopName string `json:"stopName"`
}

// LogDTO is an arrival log with its references resolved.
type LogDTO struct {
	model.ArrivalLog
	BoatName   string `json:"boatName"`
	StopName   string `json:"stopName"`
	RecordedAt string `json:"recordedAt"`
}

// RoutePathDTO is the schematic polyline of one route.
type RoutePathDTO struct {
	Route  model.Route       `json:"route"`
	Points []schematic.Point `json:"points"`
	Path   string            `json:"path"`
}

// NewService builds a service wrapper around the application service.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// ListBoats returns the fleet.
func (s *Service) ListBoats(ctx context.Context) ([]model.Boat, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	return s.App.Boats(ctx)
}

// CreateBoat registers a boat by name.
func (s *Service) CreateBoat(ctx context.Context, name string) (model.Boat, error) {
	if s.App == nil {
		return model.Boat{}, errNoApp
	}
	return s.App.CreateBoat(ctx, name)
}

// ListSchedules returns schedules in weekday order, optionally narrowed to a
// boat and a search query.
func (s *Service) ListSchedules(ctx context.Context, boatID, query string) ([]ScheduleDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	schedules, err := s.App.FilterSchedules(ctx, boatID, query)
	if err != nil {
		return nil, err
	}
	snap, err := s.App.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ScheduleDTO, 0, len(schedules))
	for _, sc := range schedules {
		out = append(out, ScheduleDTO{
			Schedule: sc,
			BoatName: model.BoatName(snap.Boats, sc.BoatID),
			StopName: model.StopName(snap.Stops, sc.StopID),
		})
	}
	return out, nil
}

// UpsertSchedule creates or edits a schedule.
func (s *Service) UpsertSchedule(ctx context.Context, in app.ScheduleInput, id string) (model.Schedule, error) {
	if s.App == nil {
		return model.Schedule{}, errNoApp
	}
	return s.App.UpsertSchedule(ctx, in, id)
}

// LogArrival records an observed arrival.
func (s *Service) LogArrival(ctx context.Context, in app.LogInput) (LogDTO, error) {
	if s.App == nil {
		return LogDTO{}, errNoApp
	}
	l, err := s.App.LogArrival(ctx, in)
	if err != nil {
		return LogDTO{}, err
	}
	snap, err := s.App.Snapshot(ctx)
	if err != nil {
		return LogDTO{}, err
	}
	return toLogDTO(l, snap.Boats, snap.Stops), nil
}

// ListLogs returns arrival logs newest first. A positive limit caps the result.
func (s *Service) ListLogs(ctx context.Context, boatID string, limit int) ([]LogDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	var (
		logs []model.ArrivalLog
		err  error
	)
	if boatID != "" {
		logs, err = s.App.BoatLogs(ctx, boatID)
	} else {
		logs, err = s.App.Logs(ctx)
	}
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	snap, err := s.App.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LogDTO, 0, len(logs))
	for _, l := range logs {
		out = append(out, toLogDTO(l, snap.Boats, snap.Stops))
	}
	return out, nil
}

// ListStops returns the stops of a route, or every stop.
func (s *Service) ListStops(ctx context.Context, routeID string) ([]model.Stop, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	return s.App.StopsForRoute(ctx, routeID)
}

// RoutePaths derives the schematic polyline of every route.
func (s *Service) RoutePaths(ctx context.Context) ([]RoutePathDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	snap, err := s.App.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RoutePathDTO, 0, len(snap.Routes))
	for _, r := range snap.Routes {
		points := schematic.RoutePath(r.ID, snap.Stops)
		out = append(out, RoutePathDTO{Route: r, Points: points, Path: schematic.PathData(points)})
	}
	return out, nil
}

// Context renders the same data block the assistant sends to the model.
func (s *Service) Context(ctx context.Context) (string, error) {
	if s.App == nil {
		return "", errNoApp
	}
	snap, err := s.App.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	return assistant.BuildContext(snap, nil), nil
}

func toLogDTO(l model.ArrivalLog, boats []model.Boat, stops []model.Stop) LogDTO {
	return LogDTO{
		ArrivalLog: l,
		BoatName:   model.BoatName(boats, l.BoatID),
		StopName:   model.StopName(stops, l.StopID),
		RecordedAt: time.UnixMilli(l.Timestamp).UTC().Format(time.RFC3339),
	}
}
