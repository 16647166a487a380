// Package api serves the riverline HTTP surface.
package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"tableflip.dev/riverline/pkg/app"
	"tableflip.dev/riverline/pkg/assistant"
	"tableflip.dev/riverline/pkg/metrics"
)

// DefaultAddr is where Serve listens when Addr is empty.
const DefaultAddr = "127.0.0.1:8081"

// Server exposes the application service over JSON HTTP.
type Server struct {
	App       *app.Service
	Assistant *assistant.Assistant
	Metrics   *metrics.Metrics
	Logger    *slog.Logger

	Addr           string
	AllowedOrigins []string
	// OnListening is called with the bound address once the listener is up.
	OnListening func(net.Addr)
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	origins := s.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", s.health)
	r.Handle("/metrics", s.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", s.dashboard)

		r.Get("/boats", s.listBoats)
		r.Post("/boats", s.createBoat)
		r.Put("/boats/{id}", s.updateBoat)
		r.Delete("/boats/{id}", s.deleteBoat)
		r.Post("/boats/{id}/duplicate", s.duplicateBoat)
		r.Get("/boats/{id}/schedules", s.boatSchedules)
		r.Post("/boats/restore-defaults", s.restoreDefaults)

		r.Get("/stops", s.listStops)
		r.Post("/stops", s.createStop)
		r.Get("/routes", s.listRoutes)

		r.Get("/schedules", s.listSchedules)
		r.Post("/schedules", s.upsertSchedule)
		r.Put("/schedules/{id}", s.upsertSchedule)
		r.Delete("/schedules/{id}", s.deleteSchedule)

		r.Get("/logs", s.listLogs)
		r.Post("/logs", s.logArrival)
		r.Delete("/logs", s.clearLogs)
		r.Delete("/logs/{id}", s.deleteLog)

		r.Get("/report", s.report)

		r.Get("/map.svg", s.mapSVG)
		r.Get("/map/paths", s.mapPaths)

		r.Post("/assistant", s.ask)
		r.Get("/assistant/history", s.assistantHistory)
	})
	return r
}

// Serve listens on Addr until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	addr := s.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if s.OnListening != nil {
		s.OnListening(ln.Addr())
	}
	s.logger().Info("http server listening", "addr", ln.Addr().String())

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	err = httpSrv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
