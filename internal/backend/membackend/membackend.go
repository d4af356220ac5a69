// Package membackend is a declarative in-memory backend. Images are built
// from literal value trees instead of debug info, which makes it the
// backend of choice for tests and demos: every classification and accessor
// path of the symbol layer can be exercised without compiling a native
// binary.
package membackend

import (
	"fmt"

	"github.com/peregrinstark/debugagent/internal/debugger"
	"github.com/peregrinstark/debugagent/internal/symbol"
)

// Backend serves hand-declared images keyed by path.
type Backend struct {
	images map[string]*Image
}

// New creates an empty backend.
func New() *Backend {
	return &Backend{images: make(map[string]*Image)}
}

// AddImage registers an image under path so Open can find it.
func (b *Backend) AddImage(path string, img *Image) {
	b.images[path] = img
}

// Open returns the image registered under path.
func (b *Backend) Open(path string) (debugger.Image, error) {
	img, ok := b.images[path]
	if !ok {
		return nil, fmt.Errorf("no image registered at %q", path)
	}
	return img, nil
}

// Image is a set of global values.
type Image struct {
	vals   []*Val
	byName map[string]*Val
}

// NewImage builds an image from root values. Later duplicates of a name are
// ignored; the first declaration wins.
func NewImage(vals ...*Val) *Image {
	img := &Image{vals: vals, byName: make(map[string]*Val, len(vals))}
	for _, v := range vals {
		if _, ok := img.byName[v.ValName]; !ok {
			img.byName[v.ValName] = v
		}
	}
	return img
}

// Lookup resolves a global by exact name.
func (img *Image) Lookup(name string) (symbol.Native, error) {
	v, ok := img.byName[name]
	if !ok {
		return nil, &symbol.NotFoundError{Name: name}
	}
	return v, nil
}

// Globals enumerates the image's values in declaration order.
func (img *Image) Globals() ([]symbol.Native, error) {
	out := make([]symbol.Native, 0, len(img.vals))
	for _, v := range img.vals {
		out = append(out, v)
	}
	return out, nil
}

// Close is a no-op; in-memory images hold no resources.
func (img *Image) Close() error { return nil }
