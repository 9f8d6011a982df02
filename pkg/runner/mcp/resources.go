package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerDocumentResource(srv, svc)
	registerTasksResource(srv, svc)
	registerTaskTemplate(srv, svc)
	registerHistoryResource(srv, svc)
	registerRoutinesResource(srv, svc)
}

func registerDocumentResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"tick://document",
		"Active document",
		mcp.WithResourceDescription("The active markdown task document, verbatim."),
		mcp.WithMIMEType("text/markdown"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := svc.Document(ctx)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "text/markdown",
				Text:     text,
			},
		}, nil
	})
}

func registerTasksResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"tick://tasks",
		"Tasks",
		mcp.WithResourceDescription("Every task in the active document with its tags."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tasks, err := svc.ListTasks(ctx, "", "all")
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		})
	})
}

func registerTaskTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"tick://tasks/{id}",
		"Task Details",
		mcp.WithTemplateDescription("A single task and its subtasks."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments["id"])
		if id == "" {
			return nil, fmt.Errorf("task id is required")
		}
		block, err := svc.Block(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"task":     block[0],
			"subtasks": block[1:],
		})
	})
}

func registerHistoryResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"tick://history",
		"History",
		mcp.WithResourceDescription("Completed tasks grouped by text, most recent first."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		groups, err := svc.SearchHistory(ctx, "", 0)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"groups": groups,
			"count":  len(groups),
		})
	})
}

func registerRoutinesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"tick://routines",
		"Routines",
		mcp.WithResourceDescription("Recurring task templates and when they last ran."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		routines, err := svc.Session.Routines(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"routines": routines,
			"count":    len(routines),
		})
	})
}

// templateArg unwraps a URI template variable, which arrives as a string or a
// single-element list depending on the client.
func templateArg(v any) string {
	switch a := v.(type) {
	case string:
		return a
	case []string:
		if len(a) > 0 {
			return a[0]
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
