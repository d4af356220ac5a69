package mcp

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/peregrinstark/debugagent/internal/symbol"
)

// UnknownHandleError reports a symbol id that was never issued by this
// session.
type UnknownHandleError struct {
	ID string
}

func (e *UnknownHandleError) Error() string {
	return fmt.Sprintf("unknown symbol id %q: it was not issued by this session; start from get_global", e.ID)
}

// HandleMismatchError reports a caller-supplied symbol name that does not
// match the symbol the id refers to.
type HandleMismatchError struct {
	ID   string
	Got  string
	Want string
}

func (e *HandleMismatchError) Error() string {
	return fmt.Sprintf("symbol id %s refers to %q, not %q: pass the id and name exactly as they were returned",
		e.ID, e.Want, e.Got)
}

// WrongSymbolTypeError reports an operation applied to a symbol of a type
// it does not work on. The message names the accessor that fits the
// symbol's actual type.
type WrongSymbolTypeError struct {
	Op     string
	Name   string
	Actual symbol.Type
}

func (e *WrongSymbolTypeError) Error() string {
	return fmt.Sprintf("%s does not work on %s: it is a %s symbol; %s",
		e.Op, e.Name, e.Actual, symbol.AccessorHint(e.Actual))
}

// InvalidIdentifierError reports a global name containing traversal
// syntax. Compound paths are decomposed by the caller, one step at a time,
// never parsed here.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("%q is not a plain identifier: fetch the base variable with get_global, "+
		"then traverse members with get_member and elements with get_index", e.Name)
}

type handleEntry struct {
	sym *symbol.Symbol

	// Denormalized snapshot, kept so validation never re-derives state
	// from the backend.
	name string
	typ  symbol.Type
}

// HandleTable assigns opaque stable identifiers to symbols produced during
// a traversal session, so a stateless caller can refer back to earlier
// nodes. Entries are append-only for the session's lifetime; a failed
// operation never mutates the table.
type HandleTable struct {
	mu   sync.RWMutex
	syms map[uuid.UUID]*handleEntry
}

// NewHandleTable creates an empty table.
func NewHandleTable() *HandleTable {
	return &HandleTable{syms: make(map[uuid.UUID]*handleEntry)}
}

// Add registers a symbol under a freshly minted id and returns the info
// the caller will use to refer back to it.
func (h *HandleTable) Add(sym *symbol.Symbol) SymbolInfo {
	id := uuid.New()

	h.mu.Lock()
	h.syms[id] = &handleEntry{sym: sym, name: sym.Name(), typ: sym.Type()}
	h.mu.Unlock()

	return SymbolInfo{ID: id.String(), Name: sym.Name(), Type: sym.Type().String()}
}

// Len reports the number of issued handles.
func (h *HandleTable) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.syms)
}

// Resolve looks up a handle and validates it for op: the id must have been
// issued here, the caller's name must match the live symbol, and when want
// is non-empty the symbol's type must be one of the wanted categories.
func (h *HandleTable) Resolve(op, id, name string, want ...symbol.Type) (*symbol.Symbol, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, &UnknownHandleError{ID: id}
	}

	h.mu.RLock()
	entry, ok := h.syms[parsed]
	h.mu.RUnlock()
	if !ok {
		return nil, &UnknownHandleError{ID: id}
	}

	if name != entry.sym.Name() {
		return nil, &HandleMismatchError{ID: id, Got: name, Want: entry.sym.Name()}
	}

	if len(want) > 0 {
		matched := false
		for _, w := range want {
			if entry.typ == w {
				matched = true
				break
			}
		}
		if !matched {
			return nil, &WrongSymbolTypeError{Op: op, Name: entry.name, Actual: entry.typ}
		}
	}
	return entry.sym, nil
}
