package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/peregrinstark/debugagent/internal/backend/dwarf"
	"github.com/peregrinstark/debugagent/internal/config"
	"github.com/peregrinstark/debugagent/internal/debugger"
	"github.com/peregrinstark/debugagent/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for symbol inspection",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered coding
assistants inspect global variables of compiled programs.

The MCP server:
- Loads the targets listed in .debugagent/config.yml
- Exposes traversal tools (get_global, get_member, get_index, ...)
- Communicates via stdio (standard MCP transport)

Example:
  debugagent mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration from .debugagent/config.yml in the working directory
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	cfg, err := config.NewLoader(workDir).Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Debugagent MCP Server\n")
	if len(cfg.Targets) > 0 {
		fmt.Fprintf(os.Stderr, "Preloading %d target(s)\n", len(cfg.Targets))
		if verbose {
			for _, t := range cfg.Targets {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", t.Name, t.Path)
			}
		}
	}
	fmt.Fprintf(os.Stderr, "\n")

	serverConfig := &mcp.ServerConfig{
		Name:         cfg.Server.Name,
		Version:      cfg.Server.Version,
		WatchTargets: cfg.Watcher.Enabled,
	}
	for _, t := range cfg.Targets {
		serverConfig.Targets = append(serverConfig.Targets, mcp.TargetSpec{Name: t.Name, Path: t.Path})
	}

	dbg := debugger.New(dwarf.New())

	server, err := mcp.NewServer(ctx, serverConfig, dbg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	// Serve (blocks until shutdown)
	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
