package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/riverline/pkg/app"
	"tableflip.dev/riverline/pkg/model"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListBoatsTool(srv, svc)
	registerCreateBoatTool(srv, svc)
	registerListSchedulesTool(srv, svc)
	registerUpsertScheduleTool(srv, svc)
	registerLogArrivalTool(srv, svc)
	registerListLogsTool(srv, svc)
	registerListStopsTool(srv, svc)
	registerRoutePathsTool(srv, svc)
}

func weekdayNames() []string {
	days := model.Weekdays()
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, string(d))
	}
	return out
}

func registerListBoatsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_boats",
		mcp.WithDescription("List every registered boat with capacity and contact."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		boats, err := svc.ListBoats(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"boats": boats, "count": len(boats)})
	})
}

func registerCreateBoatTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_boat",
		mcp.WithDescription("Register a new boat."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Boat name as painted on the hull."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		boat, err := svc.CreateBoat(ctx, name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(boat)
	})
}

func registerListSchedulesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_schedules",
		mcp.WithDescription("List planned weekly schedules ordered by day and time."),
		mcp.WithString("boatId",
			mcp.Description("Only schedules of this boat."),
		),
		mcp.WithString("query",
			mcp.Description("Case-insensitive match on stop name, day or departure port."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			BoatID string `json:"boatId"`
			Query  string `json:"query"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		schedules, err := svc.ListSchedules(ctx, args.BoatID, args.Query)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"schedules": schedules, "count": len(schedules)})
	})
}

func registerUpsertScheduleTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"upsert_schedule",
		mcp.WithDescription("Create a schedule, or edit the schedule with the given id."),
		mcp.WithString("id",
			mcp.Description("Schedule to edit. Omit to create a new one."),
		),
		mcp.WithString("boatId",
			mcp.Required(),
			mcp.Description("Boat identifier."),
		),
		mcp.WithString("stopId",
			mcp.Required(),
			mcp.Description("Stop identifier."),
		),
		mcp.WithString("expectedTime",
			mcp.Required(),
			mcp.Description("Expected time as HH:MM, 24h."),
		),
		mcp.WithString("dayOfWeek",
			mcp.Description("Day the schedule repeats on. Defaults to Segunda."),
			mcp.Enum(weekdayNames()...),
		),
		mcp.WithString("direction",
			mcp.Description("Direction of travel. Defaults to upstream."),
			mcp.Enum(string(model.Upstream), string(model.Downstream)),
		),
		mcp.WithString("departurePort",
			mcp.Description("Manaus departure port. Defaults to the main port."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID            string `json:"id"`
			BoatID        string `json:"boatId"`
			StopID        string `json:"stopId"`
			ExpectedTime  string `json:"expectedTime"`
			DayOfWeek     string `json:"dayOfWeek"`
			Direction     string `json:"direction"`
			DeparturePort string `json:"departurePort"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		sc, err := svc.UpsertSchedule(ctx, app.ScheduleInput{
			BoatID:        args.BoatID,
			StopID:        args.StopID,
			Direction:     args.Direction,
			DayOfWeek:     args.DayOfWeek,
			ExpectedTime:  args.ExpectedTime,
			DeparturePort: args.DeparturePort,
		}, args.ID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(sc)
	})
}

func registerLogArrivalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"log_arrival",
		mcp.WithDescription("Record that a boat was seen arriving at a stop."),
		mcp.WithString("boatId",
			mcp.Required(),
			mcp.Description("Boat identifier."),
		),
		mcp.WithString("stopId",
			mcp.Required(),
			mcp.Description("Stop identifier."),
		),
		mcp.WithString("direction",
			mcp.Description("Direction of travel. Defaults to upstream."),
			mcp.Enum(string(model.Upstream), string(model.Downstream)),
		),
		mcp.WithString("time",
			mcp.Description("Observed time as HH:MM. Defaults to now."),
		),
		mcp.WithString("notes",
			mcp.Description("Free text observations."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			BoatID    string `json:"boatId"`
			StopID    string `json:"stopId"`
			Direction string `json:"direction"`
			Time      string `json:"time"`
			Notes     string `json:"notes"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.LogArrival(ctx, app.LogInput{
			BoatID:       args.BoatID,
			StopID:       args.StopID,
			Direction:    args.Direction,
			ReportedTime: args.Time,
			Notes:        args.Notes,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListLogsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_logs",
		mcp.WithDescription("List arrival logs, most recent first."),
		mcp.WithString("boatId",
			mcp.Description("Only logs of this boat."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of logs to return (default 50)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			BoatID string `json:"boatId"`
			Limit  *int   `json:"limit"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		limit := 50
		if args.Limit != nil {
			limit = *args.Limit
		}
		logs, err := svc.ListLogs(ctx, args.BoatID, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"logs": logs, "count": len(logs)})
	})
}

func registerListStopsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_stops",
		mcp.WithDescription("List stops, optionally only those on one route."),
		mcp.WithString("routeId",
			mcp.Description("Route identifier such as solimoes, jurua or japura."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stops, err := svc.ListStops(ctx, request.GetString("routeId", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"stops": stops, "count": len(stops)})
	})
}

func registerRoutePathsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"route_paths",
		mcp.WithDescription("Schematic map polylines for every route, ordered by distance from Manaus."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		paths, err := svc.RoutePaths(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"routes": paths})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
