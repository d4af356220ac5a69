package mcp

import "github.com/peregrinstark/debugagent/internal/symbol"

// SymbolInfo identifies a symbol produced during this session. The id is
// the opaque handle a caller passes back to traverse further; name and type
// are a snapshot used to validate that the caller is referring to the
// symbol it thinks it is.
type SymbolInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// TargetInfo identifies a target by its registry name.
type TargetInfo struct {
	Name string `json:"name"`
}

// TargetListResponse is the list_targets payload.
type TargetListResponse struct {
	Targets []TargetInfo `json:"targets"`
	Total   int          `json:"total"`
}

// MembersResponse is the get_members payload.
type MembersResponse struct {
	Members []SymbolInfo `json:"members"`
	Total   int          `json:"total"`
}

// ArraySizeResponse is the get_array_size payload.
type ArraySizeResponse struct {
	Size int `json:"size"`
}

// NumberResponse is the get_value_number payload. The value marshals as a
// bare JSON number, integer or float.
type NumberResponse struct {
	Value symbol.Number `json:"value"`
}

// StringResponse is the get_value_string payload. Empty distinguishes a
// string symbol whose decoded content has no characters from a missing
// value.
type StringResponse struct {
	Value string `json:"value"`
	Empty bool   `json:"empty,omitempty"`
}

// ServerConfig configures the MCP server.
type ServerConfig struct {
	// Name and Version identify the server to MCP clients.
	Name    string
	Version string

	// Targets are opened at startup.
	Targets []TargetSpec

	// WatchTargets reloads a target when its image changes on disk.
	WatchTargets bool
}

// TargetSpec names a program image to preload as a target.
type TargetSpec struct {
	Name string
	Path string
}

// DefaultServerConfig returns the default server identity with no preloaded
// targets.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Name:    "debugagent",
		Version: "1.0.0",
	}
}
