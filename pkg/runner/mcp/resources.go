package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerBoatsResource(srv, svc)
	registerSchedulesResource(srv, svc)
	registerBoatSchedulesTemplate(srv, svc)
	registerLogsResource(srv, svc)
	registerContextResource(srv, svc)
}

func registerBoatsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"riverline://boats",
		"Boats",
		mcp.WithResourceDescription("Every registered boat."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		boats, err := svc.ListBoats(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"boats": boats,
			"count": len(boats),
		})
	})
}

func registerSchedulesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"riverline://schedules",
		"Schedules",
		mcp.WithResourceDescription("Every planned weekly schedule, ordered by day and time."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		schedules, err := svc.ListSchedules(ctx, "", "")
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"schedules": schedules,
			"count":     len(schedules),
		})
	})
}

func registerBoatSchedulesTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"riverline://boats/{id}/schedules",
		"Boat Itinerary",
		mcp.WithTemplateDescription("Weekly itinerary of a single boat."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request, "id")
		if id == "" {
			return nil, fmt.Errorf("boat id is required")
		}
		schedules, err := svc.ListSchedules(ctx, id, "")
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"boatId":    id,
			"schedules": schedules,
			"count":     len(schedules),
		})
	})
}

func registerLogsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"riverline://logs",
		"Arrival Logs",
		mcp.WithResourceDescription("Observed arrivals, most recent first."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		logs, err := svc.ListLogs(ctx, "", 0)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"logs":  logs,
			"count": len(logs),
		})
	})
}

func registerContextResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"riverline://context",
		"Assistant Context",
		mcp.WithResourceDescription("Plain text summary of boats, schedules and recent arrivals."),
		mcp.WithMIMEType("text/plain"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := svc.Context(ctx)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "text/plain",
				Text:     text,
			},
		}, nil
	})
}

// templateArg reads a URI template variable. Depending on the matcher the
// value arrives as a string or a single element slice.
func templateArg(request mcp.ReadResourceRequest, name string) string {
	switch v := request.Params.Arguments[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
