package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/day"
)

func registerResources(srv *server.MCPServer, s *app.Session) {
	srv.AddResource(mcp.NewResource(
		"routine://dashboard",
		"Dashboard",
		mcp.WithResourceDescription("Today's checklist with progress, location, weather and quote."),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return encodeResourceJSON(request.Params.URI, s.Dashboard(ctx))
	})

	srv.AddResource(mcp.NewResource(
		"routine://schedule",
		"Schedule",
		mcp.WithResourceDescription("The fixed daily schedule grouped by section."),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		sections := s.Sections()
		total := 0
		for _, sec := range sections {
			total += len(sec.Tasks)
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"sections": sections,
			"total":    total,
		})
	})

	srv.AddResourceTemplate(mcp.NewResourceTemplate(
		"routine://days/{day}",
		"Day Progress",
		mcp.WithTemplateDescription("Completed tasks and progress for one day (YYYY-MM-DD)."),
		mcp.WithTemplateMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		raw, _ := request.Params.Arguments["day"].(string)
		d, err := day.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid day %q: %w", raw, err)
		}
		res, err := s.Report(ctx, d, d)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, res.Days[0])
	})
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
