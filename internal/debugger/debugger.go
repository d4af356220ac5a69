// Package debugger owns the set of named targets a session can inspect.
// Each target wraps one opened program image supplied by a backend and
// exposes its global-variable namespace as symbol trees.
package debugger

import (
	"fmt"
	"sync"

	"github.com/peregrinstark/debugagent/internal/symbol"
)

// Image is one opened program image: the global-variable namespace a
// backend exposes as native values.
type Image interface {
	// Lookup resolves a global variable by exact name.
	Lookup(name string) (symbol.Native, error)
	// Globals enumerates every global variable in the image.
	Globals() ([]symbol.Native, error)
	Close() error
}

// Backend opens program images. Implementations adapt one native debugger
// representation; the registry and everything above it stay backend-agnostic.
type Backend interface {
	Open(path string) (Image, error)
}

// TargetNotFoundError reports a lookup of a target name that was never
// created in this registry.
type TargetNotFoundError struct {
	Name string
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("no target named %q; use list_targets to see available targets", e.Name)
}

// Debugger is the registry of named targets and the single entry point for
// creating and resolving them. It is an explicit owned container rather
// than process-wide state, so independent sessions do not share targets.
type Debugger struct {
	backend Backend

	mu      sync.RWMutex
	targets map[string]*Target
	order   []string
}

// New creates an empty registry that opens images through backend.
func New(backend Backend) *Debugger {
	return &Debugger{
		backend: backend,
		targets: make(map[string]*Target),
	}
}

// CreateTargetFromFile opens the program image at path and registers it
// under name. Target names are unique; creating a second target with the
// same name fails.
func (d *Debugger) CreateTargetFromFile(name, path string) (*Target, error) {
	if name == "" {
		return nil, fmt.Errorf("target name cannot be empty")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.targets[name]; exists {
		return nil, fmt.Errorf("target %q already exists", name)
	}

	img, err := d.backend.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image for target %q: %w", name, err)
	}

	t := &Target{name: name, path: path, backend: d.backend, img: img}
	d.targets[name] = t
	d.order = append(d.order, name)
	return t, nil
}

// Target resolves a target by name.
func (d *Debugger) Target(name string) (*Target, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.targets[name]
	if !ok {
		return nil, &TargetNotFoundError{Name: name}
	}
	return t, nil
}

// Targets returns all registered targets in creation order.
func (d *Debugger) Targets() []*Target {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*Target, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.targets[name])
	}
	return out
}

// Close closes every target image. The registry is unusable afterwards.
func (d *Debugger) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var firstErr error
	for _, name := range d.order {
		if err := d.targets[name].close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	d.targets = make(map[string]*Target)
	d.order = nil
	return firstErr
}
