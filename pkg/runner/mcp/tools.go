package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListTasksTool(srv, svc)
	registerAddTaskTool(srv, svc)
	registerAddSubtaskTool(srv, svc)
	registerToggleTaskTool(srv, svc)
	registerSetDeadlineTool(srv, svc)
	registerCycleDifficultyTool(srv, svc)
	registerSetEstimateTool(srv, svc)
	registerEditTaskTool(srv, svc)
	registerDeleteTaskTool(srv, svc)
	registerMoveTaskTool(srv, svc)
	registerMoveToSectionTool(srv, svc)
	registerFinishDayTool(srv, svc)
	registerRolloverTool(srv, svc)
	registerSearchHistoryTool(srv, svc)
}

func idTool(name, description string, opts ...mcp.ToolOption) mcp.Tool {
	opts = append([]mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier from list_tasks."),
		),
	}, opts...)
	return mcp.NewTool(name, opts...)
}

func registerListTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List tasks in the active document, in document order."),
		mcp.WithString("section",
			mcp.Description("Optional section heading to filter by."),
		),
		mcp.WithString("status",
			mcp.Description("Which tasks to return."),
			mcp.Enum("all", "todo", "done"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		section := strings.TrimSpace(request.GetString("section", ""))
		status := request.GetString("status", "all")
		tasks, err := svc.ListTasks(ctx, section, status)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"section": section,
			"status":  status,
			"tasks":   tasks,
			"count":   len(tasks),
		})
	})
}

func registerAddTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Add a root-level task. Tags such as (1h), (@3/14) or (★3) may be part of the text."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Task text."),
		),
		mcp.WithString("section",
			mcp.Description("Optional section heading; created when missing."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Text    string `json:"text"`
			Section string `json:"section"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.AddTask(ctx, args.Text, args.Section)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddSubtaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_subtask",
		mcp.WithDescription("Insert a subtask directly below a parent task."),
		mcp.WithString("parent_id",
			mcp.Required(),
			mcp.Description("Identifier of the parent task."),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Subtask text."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		parent, err := request.RequireString("parent_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.AddSubtask(ctx, parent, text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleTaskTool(srv *server.MCPServer, svc *Service) {
	tool := idTool("toggle_task", "Toggle a task between todo and done. Subtasks follow the task.")

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.ToggleTask(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetDeadlineTool(srv *server.MCPServer, svc *Service) {
	tool := idTool("set_deadline", "Set or clear a task deadline.",
		mcp.WithString("deadline",
			mcp.Description("Deadline as M/D, for example 3/14. Empty clears it."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.SetDeadline(ctx, id, request.GetString("deadline", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCycleDifficultyTool(srv *server.MCPServer, svc *Service) {
	tool := idTool("cycle_difficulty", "Advance a task's difficulty 1 through 5, wrapping to 1.")

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.CycleDifficulty(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetEstimateTool(srv *server.MCPServer, svc *Service) {
	tool := idTool("set_estimate", "Set or clear a task's time estimate.",
		mcp.WithString("estimate",
			mcp.Description("Free text estimate such as 2h or 30m. Empty clears it."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.SetEstimate(ctx, id, request.GetString("estimate", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerEditTaskTool(srv *server.MCPServer, svc *Service) {
	tool := idTool("edit_task", "Replace a task's text, keeping its tags. The returned task has a new id.",
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("New task text."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.EditTask(ctx, id, text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteTaskTool(srv *server.MCPServer, svc *Service) {
	tool := idTool("delete_task", "Delete a task together with its subtasks.")

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		removed, err := svc.DeleteTask(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"removed": removed,
			"count":   len(removed),
		})
	})
}

func registerMoveTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_task",
		mcp.WithDescription("Move a task and its subtasks next to another task, taking on its depth."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task to move."),
		),
		mcp.WithString("target_id",
			mcp.Required(),
			mcp.Description("Task to drop next to."),
		),
		mcp.WithString("place",
			mcp.Description("Drop before the target line or after the target's subtasks."),
			mcp.Enum("before", "after"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID       string `json:"id"`
			TargetID string `json:"target_id"`
			Place    string `json:"place"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		place, err := ParsePlace(args.Place)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		moved, err := svc.MoveTask(ctx, args.ID, args.TargetID, place)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"moved": moved})
	})
}

func registerMoveToSectionTool(srv *server.MCPServer, svc *Service) {
	tool := idTool("move_to_section", "Move a task and its subtasks to the end of a section at top level.",
		mcp.WithString("section",
			mcp.Required(),
			mcp.Description("Section heading; created when missing."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		section, err := request.RequireString("section")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		moved, err := svc.MoveToSection(ctx, id, section)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"moved": moved, "section": section})
	})
}

func registerFinishDayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"finish_day",
		mcp.WithDescription("Archive completed tasks to history, snapshot the document and keep only open tasks."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := svc.FinishDay(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerRolloverTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"rollover",
		mcp.WithDescription("Add today's routine tasks. Runs at most once per day."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := svc.Rollover(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerSearchHistoryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_history",
		mcp.WithDescription("Fuzzy search completed tasks, grouped by text."),
		mcp.WithString("query",
			mcp.Description("Search text. Empty lists everything."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of groups to return (default 20)."),
			mcp.Min(1),
			mcp.Max(100),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := request.GetString("query", "")
		limit := request.GetInt("limit", 20)

		groups, err := svc.SearchHistory(ctx, query, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query":   query,
			"limit":   limit,
			"results": groups,
			"count":   len(groups),
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
