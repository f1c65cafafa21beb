package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/day"
	"tableflip.dev/routine/pkg/geo"
	"tableflip.dev/routine/pkg/tracker"
)

const defaultHistoryDays = 7

// handlers binds tool calls to one session.
type handlers struct {
	session *app.Session
}

func registerTools(srv *server.MCPServer, s *app.Session) {
	h := &handlers{session: s}

	srv.AddTool(mcp.NewTool(
		"get_dashboard",
		mcp.WithDescription("Today's checklist with completion state, progress, location, weather and quote."),
	), h.dashboard)

	srv.AddTool(mcp.NewTool(
		"toggle_task",
		mcp.WithDescription("Flip a task between done and not done for today."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier from the schedule."),
		),
	), h.toggle)

	srv.AddTool(mcp.NewTool(
		"reset_day",
		mcp.WithDescription("Clear every completion recorded for today."),
		mcp.WithString("confirm",
			mcp.Required(),
			mcp.Description("Must be \"yes\"; anything else leaves progress untouched."),
			mcp.Enum("yes", "no"),
		),
	), h.reset)

	srv.AddTool(mcp.NewTool(
		"set_location",
		mcp.WithDescription("Geocode a place name and use it for today's weather."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text place such as \"Paris\" or \"Portland, OR\"."),
		),
	), h.setLocation)

	srv.AddTool(mcp.NewTool(
		"get_weather",
		mcp.WithDescription("Current weather for today's location. Falls back to an estimate when the service is down."),
	), h.weather)

	srv.AddTool(mcp.NewTool(
		"get_quote",
		mcp.WithDescription("The quote of the day."),
	), h.quote)

	srv.AddTool(mcp.NewTool(
		"get_history",
		mcp.WithDescription("Per-day progress for recent days, oldest first, with the current streak."),
		mcp.WithNumber("days",
			mcp.Description(fmt.Sprintf("How many days to include, 1 to %d. Defaults to %d.", app.MaxReportDays, defaultHistoryDays)),
		),
	), h.history)
}

func (h *handlers) dashboard(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toJSONResult(h.session.Dashboard(ctx))
}

func (h *handlers) toggle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := h.session.Toggle(ctx, id)
	if err != nil {
		if errors.Is(err, tracker.ErrUnknownTask) {
			return mcp.NewToolResultError(fmt.Sprintf("unknown task %q", id)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(res)
}

func (h *handlers) reset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if request.GetString("confirm", "") != "yes" {
		return mcp.NewToolResultText("Reset cancelled."), nil
	}
	if err := h.session.Reset(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(h.session.Summary())
}

func (h *handlers) setLocation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	place, err := h.session.SetLocation(ctx, query)
	switch {
	case errors.Is(err, geo.ErrEmptyQuery):
		return mcp.NewToolResultError("query is empty"), nil
	case err != nil:
		return mcp.NewToolResultError(fmt.Sprintf("could not find %q: %v", query, err)), nil
	}
	return toJSONResult(place)
}

func (h *handlers) weather(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toJSONResult(h.session.Weather(ctx))
}

func (h *handlers) quote(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toJSONResult(h.session.Quote())
}

func (h *handlers) history(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n := request.GetInt("days", defaultHistoryDays)
	if n < 1 || n > app.MaxReportDays {
		return mcp.NewToolResultError(fmt.Sprintf("days must be between 1 and %d", app.MaxReportDays)), nil
	}
	until := h.session.Day()
	t, err := until.Time()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := h.session.Report(ctx, day.Of(t.AddDate(0, 0, 1-n)), until)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(res)
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
