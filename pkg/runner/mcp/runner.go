package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/riverline/pkg/app"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

// Defaults for the HTTP transport.
const (
	DefaultAddr = "127.0.0.1:8080"
	DefaultPath = "/mcp"
)

const instructions = "Read and update river boat schedules for the Amazon region: " +
	"boats, weekly itineraries per stop, observed arrivals and the route map."

// Runner coordinates MCP server startup.
type Runner struct {
	App     *app.Service
	Logger  *slog.Logger
	Name    string
	Version string

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	OnHTTPListening  func(net.Addr)
	HTTPServerCert   string
	HTTPServerKey    string
}

// NewServer builds the MCP server with every riverline tool and resource
// registered.
func NewServer(a *app.Service, name, version string) *server.MCPServer {
	if name == "" {
		name = "riverline"
	}
	if version == "" {
		version = "dev"
	}
	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions(instructions),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(a)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

// Endpoint is the normalized HTTP path the server answers on.
func (r Runner) Endpoint() string {
	path := strings.TrimSpace(r.HTTPEndpointPath)
	if path == "" {
		return DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// Do serves until ctx is cancelled or stdin closes.
func (r Runner) Do(ctx context.Context) error {
	if r.App == nil {
		return errNoApp
	}
	srv := NewServer(r.App, r.Name, r.Version)

	switch r.Transport {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		r.logger().Info("serving MCP over stdio")
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unsupported transport %q (expected http or stdio)", r.Transport)
	}
}

// Handler mounts the streamable HTTP transport on a chi router.
func (r Runner) Handler(srv *server.MCPServer) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	})
	router.Handle(r.Endpoint(), server.NewStreamableHTTPServer(srv))
	return router
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	if (r.HTTPServerCert == "") != (r.HTTPServerKey == "") {
		return errors.New("both tls cert and key must be provided")
	}

	listenAddr := r.HTTPListenAddr
	if listenAddr == "" {
		listenAddr = DefaultAddr
	}
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}
	r.logger().Info("serving MCP over http", "addr", ln.Addr().String(), "path", r.Endpoint())

	httpSrv := &http.Server{
		Handler:           r.Handler(srv),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if r.HTTPServerCert != "" {
		err = httpSrv.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (r Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
