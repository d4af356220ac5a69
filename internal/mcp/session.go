package mcp

import (
	"github.com/peregrinstark/debugagent/internal/debugger"
)

// Session binds one target registry to one handle table. Tools operate on
// a session, so independent sessions never share traversal state.
type Session struct {
	debugger *debugger.Debugger
	handles  *HandleTable
}

// NewSession creates a session over an existing target registry.
func NewSession(d *debugger.Debugger) *Session {
	return &Session{debugger: d, handles: NewHandleTable()}
}

// Debugger returns the session's target registry.
func (s *Session) Debugger() *debugger.Debugger { return s.debugger }

// Handles returns the session's handle table.
func (s *Session) Handles() *HandleTable { return s.handles }
