package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// parseToolArguments validates and extracts the arguments map from an MCP
// tool request. Returns the arguments map or an error result if validation
// fails.
func parseToolArguments(request mcp.CallToolRequest) (map[string]interface{}, *mcp.CallToolResult) {
	argsMap, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, mcp.NewToolResultError("invalid arguments format")
	}
	return argsMap, nil
}

// parseStringArg extracts a string argument from an MCP arguments map.
// Returns an error if the argument is required but missing or invalid.
func parseStringArg(argsMap map[string]interface{}, key string, required bool) (string, error) {
	val, ok := argsMap[key]
	if !ok {
		if required {
			return "", fmt.Errorf("%s parameter is required", key)
		}
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}

	if required && str == "" {
		return "", fmt.Errorf("%s cannot be empty", key)
	}

	return str, nil
}

// parseRequiredIntArg extracts a required integer argument. MCP sends
// numbers as float64, so this handles the conversion. Negative values pass
// through untouched; range checks belong to the operation, not the parser.
func parseRequiredIntArg(argsMap map[string]interface{}, key string) (int, error) {
	val, ok := argsMap[key]
	if !ok {
		return 0, fmt.Errorf("%s parameter is required", key)
	}

	f, ok := val.(float64)
	if !ok {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return int(f), nil
}
