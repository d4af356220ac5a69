package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// marshalToolResponse marshals a response object to JSON and returns it as
// an MCP tool result. This helper eliminates the repeated pattern of
// json.Marshal + error handling + NewToolResultText.
func marshalToolResponse(response interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// symbolArgs extracts the symbol handle pair (id plus name snapshot) every
// symbol-consuming tool requires.
func symbolArgs(argsMap map[string]interface{}) (id, name string, err error) {
	id, err = parseStringArg(argsMap, "symbol_id", true)
	if err != nil {
		return "", "", err
	}
	name, err = parseStringArg(argsMap, "symbol_name", true)
	if err != nil {
		return "", "", err
	}
	return id, name, nil
}

// withSymbolArgs declares the shared symbol handle parameters on a tool.
func withSymbolArgs(opts ...mcp.ToolOption) []mcp.ToolOption {
	shared := []mcp.ToolOption{
		mcp.WithString("symbol_id",
			mcp.Required(),
			mcp.Description("Opaque id of a symbol previously returned by this session")),
		mcp.WithString("symbol_name",
			mcp.Required(),
			mcp.Description("Name of that symbol, exactly as it was returned")),
	}
	return append(shared, opts...)
}
