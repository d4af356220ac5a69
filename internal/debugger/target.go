package debugger

import (
	"context"
	"sync"

	"github.com/peregrinstark/debugagent/internal/symbol"
)

// Target is one loaded program image plus its global-variable namespace.
// Traversal roots originate here: Global wraps a native value into a fresh
// symbol tree node on every call, never pre-expanding anything.
type Target struct {
	name    string
	path    string
	backend Backend

	mu  sync.RWMutex
	img Image
}

// Name returns the registry name of the target.
func (t *Target) Name() string { return t.name }

// Path returns the filesystem path of the target's program image.
func (t *Target) Path() string { return t.path }

// Global resolves a global variable by exact name and returns it as a root
// symbol. The name must be a plain identifier; compound expressions like
// "var.member[3]" are the caller's responsibility to decompose into
// individual navigation steps.
func (t *Target) Global(name string) (*symbol.Symbol, error) {
	t.mu.RLock()
	img := t.img
	t.mu.RUnlock()

	native, err := img.Lookup(name)
	if err != nil {
		return nil, err
	}
	return symbol.New(native), nil
}

// Globals returns every global variable in the target as root symbols.
func (t *Target) Globals() ([]*symbol.Symbol, error) {
	t.mu.RLock()
	img := t.img
	t.mu.RUnlock()

	natives, err := img.Globals()
	if err != nil {
		return nil, err
	}
	syms := make([]*symbol.Symbol, 0, len(natives))
	for _, n := range natives {
		syms = append(syms, symbol.New(n))
	}
	return syms, nil
}

// Reload reopens the target's image from disk, picking up a rebuilt
// executable. Symbols produced before the reload keep reading the image
// they were created from; the old image stays open for them and is released
// only when those symbols are dropped.
func (t *Target) Reload(ctx context.Context) error {
	img, err := t.backend.Open(t.path)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.img = img
	t.mu.Unlock()
	return nil
}

func (t *Target) close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.img.Close()
}
