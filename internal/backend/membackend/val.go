package membackend

import (
	"fmt"
	"strconv"

	"github.com/peregrinstark/debugagent/internal/symbol"
)

// Val is a declarative native value. Exactly one shape should be populated:
// pointer, array, aggregate, enum, or basic. The zero Val is a basic value
// of invalid kind, which the symbol layer refuses to read.
type Val struct {
	ValName string

	// Pointer shape.
	Ptr  bool
	Addr uint64

	// Array shape. Elems carries the element values; Raw carries the
	// backing bytes for char arrays, and elements are synthesized from it
	// when Elems is empty.
	Arr      bool
	Elems    []*Val
	ElemType string
	Raw      []byte

	// Aggregate (struct/union) shape.
	Agg    bool
	Fields []*Val

	// Enum shape.
	IsEnumVal  bool
	Enumerator string

	// Basic/scalar payload.
	Kind     symbol.BasicKind
	Text     string
	Signed   int64
	Unsigned uint64
}

var _ symbol.Native = (*Val)(nil)

// Int declares a plain int with the given value.
func Int(name string, v int64) *Val {
	return &Val{ValName: name, Kind: symbol.KindInt, Text: strconv.FormatInt(v, 10), Signed: v, Unsigned: uint64(v)}
}

// Uint declares an unsigned int with the given value.
func Uint(name string, v uint64) *Val {
	return &Val{ValName: name, Kind: symbol.KindUnsignedInt, Text: strconv.FormatUint(v, 10), Unsigned: v}
}

// Double declares a double with the given value.
func Double(name string, v float64) *Val {
	return &Val{ValName: name, Kind: symbol.KindDouble, Text: strconv.FormatFloat(v, 'g', -1, 64), Signed: int64(v)}
}

// Char declares a plain char holding byte c.
func Char(name string, c byte) *Val {
	return &Val{ValName: name, Kind: symbol.KindChar, Signed: int64(int8(c)), Unsigned: uint64(c)}
}

// UChar declares an unsigned char holding byte c.
func UChar(name string, c byte) *Val {
	return &Val{ValName: name, Kind: symbol.KindUnsignedChar, Signed: int64(int8(c)), Unsigned: uint64(c)}
}

// Pointer declares a pointer holding addr.
func Pointer(name string, addr uint64) *Val {
	return &Val{ValName: name, Ptr: true, Addr: addr}
}

// CharArray declares a char array backed by raw bytes.
func CharArray(name string, raw []byte) *Val {
	return &Val{ValName: name, Arr: true, ElemType: "char", Raw: raw}
}

// ArrayOf declares an array with the given declared element type name.
func ArrayOf(name, elemType string, elems ...*Val) *Val {
	return &Val{ValName: name, Arr: true, ElemType: elemType, Elems: elems}
}

// StructOf declares a struct with the given members.
func StructOf(name string, fields ...*Val) *Val {
	return &Val{ValName: name, Agg: true, Fields: fields}
}

// EnumVal declares an enum value with its symbolic name and unsigned value.
func EnumVal(name, enumerator string, v uint64) *Val {
	return &Val{ValName: name, IsEnumVal: true, Enumerator: enumerator, Unsigned: v}
}

func (v *Val) Name() string { return v.ValName }

func (v *Val) IsPointer() bool { return v.Ptr }

func (v *Val) IsArray() bool { return v.Arr }

// IsAggregate mirrors native debugger semantics: arrays are aggregates too,
// and the classification precedence is what separates them.
func (v *Val) IsAggregate() bool { return v.Agg || v.Arr }

func (v *Val) IsEnum() bool { return v.IsEnumVal }

func (v *Val) BasicKind() symbol.BasicKind { return v.Kind }

func (v *Val) NumChildren() int {
	switch {
	case v.Agg:
		return len(v.Fields)
	case v.Arr && len(v.Elems) > 0:
		return len(v.Elems)
	case v.Arr:
		return len(v.Raw)
	default:
		return 0
	}
}

func (v *Val) ChildAt(i int) (symbol.Native, error) {
	if i < 0 || i >= v.NumChildren() {
		return nil, fmt.Errorf("child %d out of range for %s", i, v.ValName)
	}
	switch {
	case v.Agg:
		return v.Fields[i], nil
	case len(v.Elems) > 0:
		return v.Elems[i], nil
	default:
		// Char array backed by raw bytes: synthesize the element.
		c := v.Raw[i]
		elem := Char(fmt.Sprintf("[%d]", i), c)
		return elem, nil
	}
}

func (v *Val) ChildByName(name string) (symbol.Native, bool) {
	if !v.Agg {
		return nil, false
	}
	for _, f := range v.Fields {
		if f.ValName == name {
			return f, true
		}
	}
	return nil, false
}

func (v *Val) ElementTypeName() string {
	if v.Arr {
		return v.ElemType
	}
	return ""
}

func (v *Val) Bytes() ([]byte, error) {
	if v.Raw == nil {
		return nil, fmt.Errorf("%s has no raw backing bytes", v.ValName)
	}
	return v.Raw, nil
}

func (v *Val) ValueText() (string, error) {
	if v.Text == "" {
		return "", fmt.Errorf("%s has no textual rendering", v.ValName)
	}
	return v.Text, nil
}

func (v *Val) SignedValue() (int64, error) { return v.Signed, nil }

func (v *Val) UnsignedValue() (uint64, error) {
	if v.Ptr {
		return v.Addr, nil
	}
	return v.Unsigned, nil
}

func (v *Val) EnumName() (string, error) {
	if !v.IsEnumVal {
		return "", fmt.Errorf("%s is not an enum value", v.ValName)
	}
	return v.Enumerator, nil
}
