package dwarf

import (
	"debug/dwarf"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/peregrinstark/debugagent/internal/symbol"
)

// value implements symbol.Native over one typed address range of an image.
type value struct {
	img  *Image
	name string
	typ  dwarf.Type // declared type, typedefs intact
	addr uint64
}

var _ symbol.Native = (*value)(nil)

// canonicalType strips typedef and qualifier layers.
func canonicalType(t dwarf.Type) dwarf.Type {
	for {
		switch c := t.(type) {
		case *dwarf.TypedefType:
			t = c.Type
		case *dwarf.QualType:
			t = c.Type
		default:
			return t
		}
	}
}

func (v *value) canonical() dwarf.Type { return canonicalType(v.typ) }

func (v *value) Name() string { return v.name }

func (v *value) IsPointer() bool {
	_, ok := v.canonical().(*dwarf.PtrType)
	return ok
}

func (v *value) IsArray() bool {
	_, ok := v.canonical().(*dwarf.ArrayType)
	return ok
}

// IsAggregate mirrors native debugger semantics: structs, unions, and
// arrays all count. The classification precedence separates arrays out
// before this predicate is consulted.
func (v *value) IsAggregate() bool {
	switch v.canonical().(type) {
	case *dwarf.StructType, *dwarf.ArrayType:
		return true
	}
	return false
}

func (v *value) IsEnum() bool {
	_, ok := v.canonical().(*dwarf.EnumType)
	return ok
}

func (v *value) BasicKind() symbol.BasicKind {
	switch t := v.canonical().(type) {
	case *dwarf.CharType:
		return symbol.KindChar
	case *dwarf.UcharType:
		return symbol.KindUnsignedChar
	case *dwarf.IntType:
		return intKind(t.Name, false)
	case *dwarf.UintType:
		return intKind(t.Name, true)
	case *dwarf.FloatType:
		if t.ByteSize == 4 {
			return symbol.KindFloat
		}
		return symbol.KindDouble
	default:
		return symbol.KindInvalid
	}
}

// intKind picks the integer category from a DWARF base type name such as
// "int", "short int", "long unsigned int", or "long long int".
func intKind(name string, unsigned bool) symbol.BasicKind {
	switch {
	case strings.Contains(name, "long long"):
		if unsigned {
			return symbol.KindUnsignedLongLong
		}
		return symbol.KindLongLong
	case strings.Contains(name, "short"):
		if unsigned {
			return symbol.KindUnsignedShort
		}
		return symbol.KindShort
	case strings.Contains(name, "long"):
		if unsigned {
			return symbol.KindUnsignedLong
		}
		return symbol.KindLong
	default:
		if unsigned {
			return symbol.KindUnsignedInt
		}
		return symbol.KindInt
	}
}

func (v *value) NumChildren() int {
	switch t := v.canonical().(type) {
	case *dwarf.StructType:
		return len(t.Field)
	case *dwarf.ArrayType:
		if t.Count < 0 {
			// Incomplete array (e.g. extern char x[]); no addressable elements.
			return 0
		}
		return int(t.Count)
	default:
		return 0
	}
}

func (v *value) ChildAt(i int) (symbol.Native, error) {
	switch t := v.canonical().(type) {
	case *dwarf.StructType:
		if i < 0 || i >= len(t.Field) {
			return nil, fmt.Errorf("member %d out of range for %s", i, v.name)
		}
		f := t.Field[i]
		return &value{img: v.img, name: f.Name, typ: f.Type, addr: v.addr + uint64(f.ByteOffset)}, nil
	case *dwarf.ArrayType:
		if i < 0 || int64(i) >= t.Count {
			return nil, fmt.Errorf("element %d out of range for %s", i, v.name)
		}
		elemSize := t.Type.Size()
		if elemSize <= 0 {
			return nil, fmt.Errorf("element type of %s has unknown size", v.name)
		}
		return &value{
			img:  v.img,
			name: fmt.Sprintf("[%d]", i),
			typ:  t.Type,
			addr: v.addr + uint64(int64(i)*elemSize),
		}, nil
	default:
		return nil, fmt.Errorf("%s has no children", v.name)
	}
}

func (v *value) ChildByName(name string) (symbol.Native, bool) {
	t, ok := v.canonical().(*dwarf.StructType)
	if !ok {
		return nil, false
	}
	for _, f := range t.Field {
		if f.Name == name {
			return &value{img: v.img, name: f.Name, typ: f.Type, addr: v.addr + uint64(f.ByteOffset)}, true
		}
	}
	return nil, false
}

// ElementTypeName reports the declared element type name of an array. A
// typedef'd element keeps its typedef name, which deliberately keeps the
// string heuristic narrow: only literal "char" arrays qualify.
func (v *value) ElementTypeName() string {
	t, ok := v.canonical().(*dwarf.ArrayType)
	if !ok {
		return ""
	}
	return typeName(t.Type)
}

func typeName(t dwarf.Type) string {
	if n := t.Common().Name; n != "" {
		return n
	}
	return t.String()
}

func (v *value) Bytes() ([]byte, error) {
	size := v.canonical().Size()
	if size <= 0 {
		return nil, fmt.Errorf("%s has unknown size", v.name)
	}
	return v.img.readMemory(v.addr, size)
}

func (v *value) readUint() (uint64, error) {
	size := v.canonical().Size()
	if size <= 0 {
		// Pointers occasionally omit a byte size; fall back to the image's.
		if v.IsPointer() {
			size = int64(v.img.ptrSize)
		} else {
			return 0, fmt.Errorf("%s has unknown size", v.name)
		}
	}

	raw, err := v.img.readMemory(v.addr, size)
	if err != nil {
		return 0, err
	}
	switch size {
	case 1:
		return uint64(raw[0]), nil
	case 2:
		return uint64(v.img.order.Uint16(raw)), nil
	case 4:
		return uint64(v.img.order.Uint32(raw)), nil
	case 8:
		return v.img.order.Uint64(raw), nil
	default:
		return 0, fmt.Errorf("%s has unsupported scalar size %d", v.name, size)
	}
}

func (v *value) SignedValue() (int64, error) {
	u, err := v.readUint()
	if err != nil {
		return 0, err
	}
	switch v.canonical().Size() {
	case 1:
		return int64(int8(u)), nil
	case 2:
		return int64(int16(u)), nil
	case 4:
		return int64(int32(u)), nil
	default:
		return int64(u), nil
	}
}

func (v *value) UnsignedValue() (uint64, error) {
	return v.readUint()
}

// ValueText renders a basic scalar the way the native debugger would print
// it. Integer kinds render in decimal; float kinds decode IEEE bits first.
func (v *value) ValueText() (string, error) {
	kind := v.BasicKind()
	switch kind {
	case symbol.KindChar, symbol.KindSignedChar, symbol.KindShort, symbol.KindInt,
		symbol.KindLong, symbol.KindLongLong:
		i, err := v.SignedValue()
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(i, 10), nil
	case symbol.KindUnsignedChar, symbol.KindUnsignedShort, symbol.KindUnsignedInt,
		symbol.KindUnsignedLong, symbol.KindUnsignedLongLong:
		u, err := v.UnsignedValue()
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(u, 10), nil
	case symbol.KindFloat:
		u, err := v.readUint()
		if err != nil {
			return "", err
		}
		f := math.Float32frombits(uint32(u))
		return strconv.FormatFloat(float64(f), 'g', -1, 32), nil
	case symbol.KindDouble:
		u, err := v.readUint()
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(math.Float64frombits(u), 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("%s has no textual value rendering", v.name)
	}
}

// EnumName resolves the current value of an enumeration to its enumerator
// name.
func (v *value) EnumName() (string, error) {
	t, ok := v.canonical().(*dwarf.EnumType)
	if !ok {
		return "", fmt.Errorf("%s is not an enumeration", v.name)
	}
	u, err := v.readUint()
	if err != nil {
		return "", err
	}
	for _, ev := range t.Val {
		if ev.Val == int64(u) {
			return ev.Name, nil
		}
	}
	return "", fmt.Errorf("%s holds %d, which matches no enumerator of %s", v.name, u, typeName(t))
}
