package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"tableflip.dev/riverline/pkg/app"
	"tableflip.dev/riverline/pkg/assistant"
	"tableflip.dev/riverline/pkg/model"
	"tableflip.dev/riverline/pkg/schematic"
	"tableflip.dev/riverline/pkg/timeutil"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if _, err := s.App.Boats(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":    "error",
			"store":     "unavailable",
			"timestamp": time.Now().UTC(),
			"error":     err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"store":     "ready",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.App.Dashboard(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Boats.

type boatRequest struct {
	Name     *string `json:"name"`
	Contact  *string `json:"contact"`
	Capacity *int    `json:"capacity"`
}

func (s *Server) listBoats(w http.ResponseWriter, r *http.Request) {
	boats, err := s.App.Boats(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"boats": boats, "count": len(boats)})
}

func (s *Server) createBoat(w http.ResponseWriter, r *http.Request) {
	var req boatRequest
	if err := decode(r, &req); err != nil || req.Name == nil {
		badRequest(w, "body must be {\"name\": \"...\"}")
		return
	}
	ctx := r.Context()
	boat, err := s.App.CreateBoat(ctx, *req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Contact != nil || req.Capacity != nil {
		boat, err = s.App.UpdateBoatDetails(ctx, boat.ID, app.BoatDetails{Contact: req.Contact, Capacity: req.Capacity})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, boat)
}

func (s *Server) updateBoat(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req boatRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid body: "+err.Error())
		return
	}
	ctx := r.Context()
	boat, err := s.App.Boat(ctx, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Name != nil {
		if boat, err = s.App.RenameBoat(ctx, id, *req.Name); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if req.Contact != nil || req.Capacity != nil {
		if boat, err = s.App.UpdateBoatDetails(ctx, id, app.BoatDetails{Contact: req.Contact, Capacity: req.Capacity}); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, boat)
}

func (s *Server) deleteBoat(w http.ResponseWriter, r *http.Request) {
	r = confirmed(r)
	res, err := s.App.DeleteBoat(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"boat":             res.Boat,
		"removedSchedules": res.Schedules,
		"removedLogs":      res.Logs,
	})
}

func (s *Server) duplicateBoat(w http.ResponseWriter, r *http.Request) {
	boat, schedules, err := s.App.DuplicateBoat(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"boat": boat, "schedules": schedules})
}

func (s *Server) boatSchedules(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := r.Context()
	if _, err := s.App.Boat(ctx, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	schedules, err := s.App.FilterSchedules(ctx, id, r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"schedules": schedules, "count": len(schedules)})
}

func (s *Server) restoreDefaults(w http.ResponseWriter, r *http.Request) {
	n, err := s.App.RestoreDefaults(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"restored": n})
}

// Stops and routes.

func (s *Server) listStops(w http.ResponseWriter, r *http.Request) {
	stops, err := s.App.StopsForRoute(r.Context(), r.URL.Query().Get("route"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stops": stops, "count": len(stops)})
}

func (s *Server) createStop(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		RouteID string `json:"routeId"`
	}
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid body: "+err.Error())
		return
	}
	stop, err := s.App.AddStop(r.Context(), req.Name, req.RouteID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, stop)
}

func (s *Server) listRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := s.App.Routes(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"routes": routes})
}

// Schedules.

type scheduleRequest struct {
	BoatID        string `json:"boatId"`
	StopID        string `json:"stopId"`
	Direction     string `json:"direction"`
	DayOfWeek     string `json:"dayOfWeek"`
	ExpectedTime  string `json:"expectedTime"`
	DeparturePort string `json:"departurePort"`
}

func (s *Server) listSchedules(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	schedules, err := s.App.FilterSchedules(r.Context(), q.Get("boat"), q.Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"schedules": schedules, "count": len(schedules)})
}

func (s *Server) upsertSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid body: "+err.Error())
		return
	}
	id := chi.URLParam(r, "id")
	sc, err := s.App.UpsertSchedule(r.Context(), app.ScheduleInput(req), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, sc)
}

func (s *Server) deleteSchedule(w http.ResponseWriter, r *http.Request) {
	r = confirmed(r)
	if err := s.App.DeleteSchedule(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Arrival logs.

type logRequest struct {
	BoatID       string `json:"boatId"`
	StopID       string `json:"stopId"`
	Direction    string `json:"direction"`
	ReportedTime string `json:"reportedTime"`
	Notes        string `json:"notes"`
}

func (s *Server) listLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		logs []model.ArrivalLog
		err  error
	)
	if boat := r.URL.Query().Get("boat"); boat != "" {
		logs, err = s.App.BoatLogs(ctx, boat)
	} else {
		logs, err = s.App.Logs(ctx)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, convErr := strconv.Atoi(raw)
		if convErr != nil || limit < 0 {
			badRequest(w, "limit must be a non-negative integer")
			return
		}
		if limit > 0 && len(logs) > limit {
			logs = logs[:limit]
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"logs": logs, "count": len(logs)})
}

func (s *Server) logArrival(w http.ResponseWriter, r *http.Request) {
	var req logRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid body: "+err.Error())
		return
	}
	l, err := s.App.LogArrival(r.Context(), app.LogInput(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) deleteLog(w http.ResponseWriter, r *http.Request) {
	r = confirmed(r)
	if err := s.App.DeleteLog(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) clearLogs(w http.ResponseWriter, r *http.Request) {
	r = confirmed(r)
	n, err := s.App.ClearLogs(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"removed": n})
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	window, label, err := timeutil.ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	until := time.Now()
	result, err := s.App.ArrivalReport(r.Context(), until.Add(-window), until)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"window": label, "report": result})
}

// Map.

type routePath struct {
	Route  model.Route       `json:"route"`
	Points []schematic.Point `json:"points"`
	Path   string            `json:"path"`
}

func (s *Server) mapSVG(w http.ResponseWriter, r *http.Request) {
	snap, err := s.App.Snapshot(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := schematic.Render(w, snap.Routes, snap.Stops); err != nil {
		s.logger().Error("render map", "err", err)
	}
}

func (s *Server) mapPaths(w http.ResponseWriter, r *http.Request) {
	snap, err := s.App.Snapshot(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	paths := schematic.RoutePaths(snap.Routes, snap.Stops)
	out := make([]routePath, 0, len(snap.Routes))
	for _, route := range snap.Routes {
		points := paths[route.ID]
		out = append(out, routePath{Route: route, Points: points, Path: schematic.PathData(points)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"routes": out})
}

// Assistant.

type askRequest struct {
	Mode     string `json:"mode"`
	Prompt   string `json:"prompt"`
	Image    []byte `json:"image,omitempty"`
	Audio    []byte `json:"audio,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
	Filename string `json:"filename,omitempty"`
}

func (req askRequest) mode() (assistant.Mode, error) {
	switch {
	case len(req.Image) > 0:
		return assistant.ImageAnalysis{Image: req.Image, MIMEType: req.MIMEType, Prompt: req.Prompt, Filename: req.Filename}, nil
	case len(req.Audio) > 0:
		return assistant.AudioTranscription{Audio: req.Audio, MIMEType: req.MIMEType}, nil
	default:
		return assistant.ParseMode(strings.TrimSpace(req.Mode))
	}
}

func (s *Server) ask(w http.ResponseWriter, r *http.Request) {
	if s.Assistant == nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "assistant is not configured", Code: "unavailable"})
		return
	}
	var req askRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid body: "+err.Error())
		return
	}
	mode, err := req.mode()
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	msg, err := s.Assistant.Send(r.Context(), mode, req.Prompt)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (s *Server) assistantHistory(w http.ResponseWriter, r *http.Request) {
	if s.Assistant == nil {
		writeJSON(w, http.StatusOK, map[string]any{"messages": []assistant.Message{}})
		return
	}
	msgs := s.Assistant.History()
	if q := r.URL.Query().Get("q"); q != "" {
		msgs = s.Assistant.Search(q)
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}
