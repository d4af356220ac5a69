// Package dwarf adapts ELF program images with DWARF debug info into the
// symbol layer's native-value interface. It reads global variables straight
// out of the image's loadable segments (initialized data from the file,
// zero-filled bss synthesized), so no process needs to run: a built
// executable is enough to traverse its globals.
package dwarf

import (
	"debug/dwarf"
	"debug/elf"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/maypok86/otter"

	"github.com/peregrinstark/debugagent/internal/debugger"
	"github.com/peregrinstark/debugagent/internal/symbol"
)

// DW_OP_addr: the only location opcode we accept for globals. Anything
// fancier (TLS, registers, composite locations) is not a plain static
// global and is skipped during indexing.
const opAddr = 0x03

// readCacheCapacity bounds the per-image memory-read cache. Every
// navigation step re-reads backing bytes, so traversals of the same globals
// hit the cache instead of the file.
const readCacheCapacity = 4096

// Backend opens ELF images as debugger targets.
type Backend struct{}

// New creates the backend.
func New() *Backend { return &Backend{} }

// Open parses the ELF file at path, builds the global-variable index from
// its DWARF info, and returns the image.
func (b *Backend) Open(path string) (debugger.Image, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ELF image: %w", err)
	}

	data, err := f.DWARF()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("loading DWARF info from %s: %w", path, err)
	}

	ptrSize := 4
	if f.Class == elf.ELFCLASS64 {
		ptrSize = 8
	}

	reads, err := otter.MustBuilder[readKey, []byte](readCacheCapacity).Build()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("building read cache: %w", err)
	}

	img := &Image{
		path:    path,
		file:    f,
		data:    data,
		order:   f.ByteOrder,
		ptrSize: ptrSize,
		globals: make(map[string]globalEntry),
		reads:   reads,
	}

	if err := img.indexGlobals(); err != nil {
		img.Close()
		return nil, fmt.Errorf("indexing globals of %s: %w", path, err)
	}
	return img, nil
}

type readKey struct {
	addr uint64
	size int64
}

type globalEntry struct {
	name string
	addr uint64
	typ  dwarf.Type
}

// Image is one opened ELF executable with its DWARF global index.
type Image struct {
	path    string
	file    *elf.File
	data    *dwarf.Data
	order   binary.ByteOrder
	ptrSize int

	globals map[string]globalEntry
	names   []string // indexing order

	reads otter.Cache[readKey, []byte]
}

// indexGlobals walks the compile units and records every top-level variable
// with a static address. Subprogram subtrees are skipped wholesale; locals
// have no place in a global namespace.
func (img *Image) indexGlobals() error {
	r := img.data.Reader()
	for {
		e, err := r.Next()
		if err != nil {
			return err
		}
		if e == nil {
			return nil
		}

		switch e.Tag {
		case dwarf.TagCompileUnit:
			// Descend into the unit's children.
		case dwarf.TagVariable:
			img.indexVariable(e)
		default:
			if e.Children {
				r.SkipChildren()
			}
		}
	}
}

func (img *Image) indexVariable(e *dwarf.Entry) {
	name, _ := e.Val(dwarf.AttrName).(string)
	if name == "" {
		return
	}
	if _, exists := img.globals[name]; exists {
		return
	}

	loc, _ := e.Val(dwarf.AttrLocation).([]byte)
	addr, ok := decodeAddr(loc, img.order)
	if !ok {
		return
	}

	off, ok := e.Val(dwarf.AttrType).(dwarf.Offset)
	if !ok {
		return
	}
	typ, err := img.data.Type(off)
	if err != nil {
		return
	}

	img.globals[name] = globalEntry{name: name, addr: addr, typ: typ}
	img.names = append(img.names, name)
}

// decodeAddr accepts exactly a DW_OP_addr expression and extracts the
// address operand.
func decodeAddr(loc []byte, order binary.ByteOrder) (uint64, bool) {
	if len(loc) == 0 || loc[0] != opAddr {
		return 0, false
	}
	switch len(loc) - 1 {
	case 4:
		return uint64(order.Uint32(loc[1:])), true
	case 8:
		return order.Uint64(loc[1:]), true
	default:
		return 0, false
	}
}

// Lookup resolves a global variable by exact name.
func (img *Image) Lookup(name string) (symbol.Native, error) {
	e, ok := img.globals[name]
	if !ok {
		return nil, &symbol.NotFoundError{Name: name}
	}
	return &value{img: img, name: e.name, typ: e.typ, addr: e.addr}, nil
}

// Globals enumerates every indexed global in indexing order.
func (img *Image) Globals() ([]symbol.Native, error) {
	out := make([]symbol.Native, 0, len(img.names))
	for _, name := range img.names {
		e := img.globals[name]
		out = append(out, &value{img: img, name: e.name, typ: e.typ, addr: e.addr})
	}
	return out, nil
}

// Close releases the underlying file and the read cache.
func (img *Image) Close() error {
	img.reads.Close()
	return img.file.Close()
}

// readMemory reads size bytes at the virtual address addr from the image's
// loadable segments. Bytes past a segment's file size but inside its memory
// size are bss and read as zero. Reads are memoized in a bounded cache.
func (img *Image) readMemory(addr uint64, size int64) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("read of %d bytes at %#x", size, addr)
	}

	key := readKey{addr: addr, size: size}
	if buf, ok := img.reads.Get(key); ok {
		return buf, nil
	}

	for _, p := range img.file.Progs {
		if p.Type != elf.PT_LOAD {
			continue
		}
		if addr < p.Vaddr || addr+uint64(size) > p.Vaddr+p.Memsz {
			continue
		}

		buf := make([]byte, size)
		off := int64(addr - p.Vaddr)
		if avail := int64(p.Filesz) - off; avail > 0 {
			n := size
			if n > avail {
				n = avail
			}
			if _, err := p.ReadAt(buf[:n], off); err != nil && err != io.EOF {
				return nil, fmt.Errorf("reading %d bytes at %#x: %w", size, addr, err)
			}
		}

		img.reads.Set(key, buf)
		return buf, nil
	}
	return nil, fmt.Errorf("address %#x is not mapped by any loadable segment", addr)
}
