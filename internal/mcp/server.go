package mcp

// Implementation Plan:
// 1. Server struct owning the session, the target registry, and the watcher
// 2. NewServer - registers every traversal tool, preloads configured targets
// 3. Serve - starts MCP server on stdio with graceful shutdown
// 4. Graceful shutdown on SIGTERM/SIGINT
// 5. Clean error handling and logging

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peregrinstark/debugagent/internal/debugger"
)

// Server manages the MCP server lifecycle.
type Server struct {
	config  *ServerConfig
	session *Session
	watcher *ImageWatcher
	mcp     *server.MCPServer
}

// NewServer creates an MCP server over the given target registry, registers
// the traversal tools, and preloads the configured targets.
func NewServer(ctx context.Context, config *ServerConfig, dbg *debugger.Debugger) (*Server, error) {
	if config == nil {
		config = DefaultServerConfig()
	}
	if dbg == nil {
		return nil, fmt.Errorf("target registry is required")
	}

	session := NewSession(dbg)

	var watcher *ImageWatcher
	if config.WatchTargets {
		var err error
		watcher, err = NewImageWatcher()
		if err != nil {
			return nil, fmt.Errorf("failed to create image watcher: %w", err)
		}
	}

	mcpServer := server.NewMCPServer(
		config.Name,
		config.Version,
		server.WithToolCapabilities(true),
	)

	AddListTargetsTool(mcpServer, session)
	AddCreateTargetTool(mcpServer, session, watcher)
	AddGetGlobalTool(mcpServer, session)
	AddGetMemberTool(mcpServer, session)
	AddGetMembersTool(mcpServer, session)
	AddGetIndexTool(mcpServer, session)
	AddGetArraySizeTool(mcpServer, session)
	AddGetValueNumberTool(mcpServer, session)
	AddGetValueStringTool(mcpServer, session)

	s := &Server{
		config:  config,
		session: session,
		watcher: watcher,
		mcp:     mcpServer,
	}

	for _, spec := range config.Targets {
		target, err := dbg.CreateTargetFromFile(spec.Name, spec.Path)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to load target %q: %w", spec.Name, err)
		}
		if watcher != nil {
			if err := watcher.Watch(target.Path(), target); err != nil {
				log.Printf("cannot watch image of target %q: %v", spec.Name, err)
			}
		}
	}

	return s, nil
}

// Session exposes the server's traversal session, mainly for tests.
func (s *Server) Session() *Session { return s.session }

// Serve starts the MCP server and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Start(ctx)
		defer s.watcher.Stop()
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// Start MCP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases all resources, including every target image.
func (s *Server) Close() error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	return s.session.Debugger().Close()
}
