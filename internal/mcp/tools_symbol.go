package mcp

// Implementation Plan:
// 1. Six traversal tools, one registration function + handler factory each
// 2. Every handler resolves the (symbol_id, symbol_name) pair through the
//    session handle table, which enforces the required symbol category
// 3. Successful navigation registers the produced symbol under a fresh id
// 4. Failures come back as tool error results with corrective guidance;
//    nothing is retried and the handle table is left untouched

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peregrinstark/debugagent/internal/symbol"
)

// AddGetMemberTool registers the get_member tool.
func AddGetMemberTool(s *server.MCPServer, sess *Session) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Fetch one named member of a structure symbol. Only symbols of type " +
			"\"structure\" have members."),
	}, withSymbolArgs(
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the member to fetch")),
	)...)
	s.AddTool(mcp.NewTool("get_member", opts...), createGetMemberHandler(sess))
}

func createGetMemberHandler(sess *Session) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		id, symName, err := symbolArgs(argsMap)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		memberName, err := parseStringArg(argsMap, "name", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sym, err := sess.Handles().Resolve("get_member", id, symName, symbol.Struct)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		member, err := sym.Member(memberName)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		info := sess.Handles().Add(member)
		return marshalToolResponse(&info)
	}
}

// AddGetMembersTool registers the get_members tool.
func AddGetMembersTool(s *server.MCPServer, sess *Session) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Fetch all members of a structure symbol, in the program's declaration " +
			"order. Only symbols of type \"structure\" have members."),
	}, withSymbolArgs()...)
	s.AddTool(mcp.NewTool("get_members", opts...), createGetMembersHandler(sess))
}

func createGetMembersHandler(sess *Session) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		id, symName, err := symbolArgs(argsMap)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sym, err := sess.Handles().Resolve("get_members", id, symName, symbol.Struct)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		members, err := sym.Members()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		response := &MembersResponse{
			Members: make([]SymbolInfo, 0, len(members)),
			Total:   len(members),
		}
		for _, m := range members {
			response.Members = append(response.Members, sess.Handles().Add(m))
		}
		return marshalToolResponse(response)
	}
}

// AddGetIndexTool registers the get_index tool.
func AddGetIndexTool(s *server.MCPServer, sess *Session) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Fetch the element at an index of an array symbol. Valid indices run " +
			"from 0 to get_array_size minus one."),
	}, withSymbolArgs(
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Zero-based element index")),
	)...)
	s.AddTool(mcp.NewTool("get_index", opts...), createGetIndexHandler(sess))
}

func createGetIndexHandler(sess *Session) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		id, symName, err := symbolArgs(argsMap)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		index, err := parseRequiredIntArg(argsMap, "index")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sym, err := sess.Handles().Resolve("get_index", id, symName, symbol.Array)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		elem, err := sym.Index(index)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		info := sess.Handles().Add(elem)
		return marshalToolResponse(&info)
	}
}

// AddGetArraySizeTool registers the get_array_size tool.
func AddGetArraySizeTool(s *server.MCPServer, sess *Session) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Return the number of elements of an array symbol."),
	}, withSymbolArgs()...)
	s.AddTool(mcp.NewTool("get_array_size", opts...), createGetArraySizeHandler(sess))
}

func createGetArraySizeHandler(sess *Session) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		id, symName, err := symbolArgs(argsMap)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sym, err := sess.Handles().Resolve("get_array_size", id, symName, symbol.Array)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		size, err := sym.NumIndices()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return marshalToolResponse(&ArraySizeResponse{Size: size})
	}
}

// AddGetValueNumberTool registers the get_value_number tool.
func AddGetValueNumberTool(s *server.MCPServer, sess *Session) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Read the numeric value of a basic, pointer, or enum symbol. For " +
			"pointers the value is the held address; for enums it is the unsigned enumerator value."),
	}, withSymbolArgs()...)
	s.AddTool(mcp.NewTool("get_value_number", opts...), createGetValueNumberHandler(sess))
}

func createGetValueNumberHandler(sess *Session) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		id, symName, err := symbolArgs(argsMap)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sym, err := sess.Handles().Resolve("get_value_number", id, symName,
			symbol.Basic, symbol.Pointer, symbol.Enum)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		value, err := sym.Number()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return marshalToolResponse(&NumberResponse{Value: value})
	}
}

// AddGetValueStringTool registers the get_value_string tool.
func AddGetValueStringTool(s *server.MCPServer, sess *Session) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Read the string value of a string symbol, or the enumerator name of " +
			"an enum symbol."),
	}, withSymbolArgs()...)
	s.AddTool(mcp.NewTool("get_value_string", opts...), createGetValueStringHandler(sess))
}

func createGetValueStringHandler(sess *Session) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		id, symName, err := symbolArgs(argsMap)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sym, err := sess.Handles().Resolve("get_value_string", id, symName,
			symbol.String, symbol.Enum)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		value, err := sym.Text()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return marshalToolResponse(&StringResponse{Value: value, Empty: value == ""})
	}
}
