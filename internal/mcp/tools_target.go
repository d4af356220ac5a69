package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// AddListTargetsTool registers the list_targets tool.
func AddListTargetsTool(s *server.MCPServer, sess *Session) {
	tool := mcp.NewTool(
		"list_targets",
		mcp.WithDescription("List the names of all loaded debug targets. Each target is one "+
			"program image whose global variables can be fetched with get_global."),
	)
	s.AddTool(tool, createListTargetsHandler(sess))
}

func createListTargetsHandler(sess *Session) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		targets := sess.Debugger().Targets()
		response := &TargetListResponse{
			Targets: make([]TargetInfo, 0, len(targets)),
			Total:   len(targets),
		}
		for _, t := range targets {
			response.Targets = append(response.Targets, TargetInfo{Name: t.Name()})
		}
		return marshalToolResponse(response)
	}
}

// AddCreateTargetTool registers the create_target tool.
func AddCreateTargetTool(s *server.MCPServer, sess *Session, watcher *ImageWatcher) {
	tool := mcp.NewTool(
		"create_target",
		mcp.WithDescription("Load an executable file as a new named debug target. The target's "+
			"global variables become available to get_global."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Unique name for the new target")),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path to the executable image to load")),
	)
	s.AddTool(tool, createCreateTargetHandler(sess, watcher))
}

func createCreateTargetHandler(sess *Session, watcher *ImageWatcher) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		name, err := parseStringArg(argsMap, "name", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		file, err := parseStringArg(argsMap, "file", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		target, err := sess.Debugger().CreateTargetFromFile(name, file)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if watcher != nil {
			// Best effort: a target that cannot be watched still works, it
			// just won't pick up rebuilds.
			_ = watcher.Watch(target.Path(), target)
		}

		return marshalToolResponse(&TargetInfo{Name: target.Name()})
	}
}

// AddGetGlobalTool registers the get_global tool.
func AddGetGlobalTool(s *server.MCPServer, sess *Session) {
	tool := mcp.NewTool(
		"get_global",
		mcp.WithDescription("Fetch a global variable from a target as a symbol. The name must be a "+
			"plain identifier: for a compound expression like var.member[3], fetch \"var\" here and "+
			"then chain get_member and get_index calls."),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Name of the target to read from")),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the global variable, without '.' or '[]'")),
	)
	s.AddTool(tool, createGetGlobalHandler(sess))
}

func createGetGlobalHandler(sess *Session) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		targetName, err := parseStringArg(argsMap, "target", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		name, err := parseStringArg(argsMap, "name", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		// Compound paths never reach the backend.
		if strings.ContainsAny(name, ".[]") {
			return mcp.NewToolResultError((&InvalidIdentifierError{Name: name}).Error()), nil
		}

		target, err := sess.Debugger().Target(targetName)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sym, err := target.Global(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		info := sess.Handles().Add(sym)
		return marshalToolResponse(&info)
	}
}
