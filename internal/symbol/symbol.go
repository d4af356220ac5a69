package symbol

import (
	"fmt"
	"strconv"
	"strings"
)

// Symbol is one node in the variable tree of a target. Nodes are created
// lazily, one per navigation step, and never mutated afterwards: traversal
// produces new Symbols instead of editing existing ones.
type Symbol struct {
	native Native
	name   string
	typ    Type
	str    string // decoded content, String symbols only
}

// New classifies a native value and wraps it as a Symbol. Classification
// runs once, on the canonical type, with this precedence: pointer, array
// (narrowed to string when the content qualifies), aggregate, enumeration,
// basic. The precedence matters because char arrays holding printable
// NUL-terminated content change category, and with it the accessor contract.
func New(native Native) *Symbol {
	s := &Symbol{native: native, name: native.Name()}
	s.typ, s.str = classify(native)
	return s
}

func classify(v Native) (Type, string) {
	switch {
	case v.IsPointer():
		return Pointer, ""
	case v.IsArray():
		// Only arrays whose declared element type is literally "char" are
		// candidates. "unsigned char" and "signed char" arrays stay arrays.
		if v.ElementTypeName() == "char" {
			if str, ok := decodeCString(v); ok {
				return String, str
			}
		}
		return Array, ""
	case v.IsAggregate():
		return Struct, ""
	case v.IsEnum():
		return Enum, ""
	default:
		return Basic, ""
	}
}

// decodeCString applies the best-effort string heuristic to a char array:
// scan the raw backing bytes left to right; a NUL terminates successfully
// with the content built so far (possibly empty), printable ASCII (33-127)
// is accepted, and any other byte disqualifies the array. Arrays that
// exhaust their declared length without a NUL are not C strings. The rule
// tolerates trailing garbage past the NUL while rejecting binary blobs
// stored in char buffers.
func decodeCString(v Native) (string, bool) {
	raw, err := v.Bytes()
	if err != nil {
		return "", false
	}
	var b strings.Builder
	for _, c := range raw {
		switch {
		case c == 0:
			return b.String(), true
		case c >= 33 && c <= 127:
			b.WriteByte(c)
		default:
			return "", false
		}
	}
	return "", false
}

// Name returns the symbol's name: the global variable name for a root, the
// member name or index label for a child.
func (s *Symbol) Name() string { return s.name }

// Type returns the symbol's classification. It is stable across calls.
func (s *Symbol) Type() Type { return s.typ }

// HasMembers reports whether the symbol is a structure or union, i.e. an
// aggregate that is not an array.
func (s *Symbol) HasMembers() bool { return s.typ == Struct }

// Number returns the numeric value of a basic, pointer, or enum symbol.
// For pointers the value is the held address; for enums it is the unsigned
// enumerator value. Basic symbols dispatch on the resolved basic kind:
// plain and signed chars read through the backend's signed accessor,
// unsigned chars through the unsigned accessor, the remaining integer kinds
// parse the backend's textual rendering (base-prefix aware), and float
// kinds parse it as floating point.
func (s *Symbol) Number() (Number, error) {
	switch s.typ {
	case Pointer, Enum:
		u, err := s.native.UnsignedValue()
		if err != nil {
			return Number{}, fmt.Errorf("reading %s: %w", s.name, err)
		}
		return Unsigned(u), nil
	case Basic:
		return s.basicNumber()
	default:
		return Number{}, &NotSupportedError{Symbol: s.name, Type: s.typ, Op: "get_value_number"}
	}
}

func (s *Symbol) basicNumber() (Number, error) {
	kind := s.native.BasicKind()
	switch {
	case kind == KindChar || kind == KindSignedChar:
		v, err := s.native.SignedValue()
		if err != nil {
			return Number{}, fmt.Errorf("reading %s: %w", s.name, err)
		}
		return Signed(v), nil
	case kind == KindUnsignedChar:
		v, err := s.native.UnsignedValue()
		if err != nil {
			return Number{}, fmt.Errorf("reading %s: %w", s.name, err)
		}
		return Unsigned(v), nil
	case kind.isTextInteger():
		text, err := s.native.ValueText()
		if err != nil {
			return Number{}, fmt.Errorf("reading %s: %w", s.name, err)
		}
		return parseInteger(s.name, text)
	case kind.isFloat():
		text, err := s.native.ValueText()
		if err != nil {
			return Number{}, fmt.Errorf("reading %s: %w", s.name, err)
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Number{}, fmt.Errorf("parsing value of %s from %q: %w", s.name, text, err)
		}
		return Float(f), nil
	default:
		return Number{}, &UnsupportedTypeError{Symbol: s.name, Detail: "not a recognized basic type"}
	}
}

// parseInteger accepts the backend's textual integer rendering, including
// base-prefixed notation such as 0x1f. Values past the int64 range fall
// back to unsigned.
func parseInteger(name, text string) (Number, error) {
	if i, err := strconv.ParseInt(text, 0, 64); err == nil {
		return Signed(i), nil
	}
	u, err := strconv.ParseUint(text, 0, 64)
	if err != nil {
		return Number{}, fmt.Errorf("parsing value of %s from %q: %w", name, text, err)
	}
	return Unsigned(u), nil
}

// Text returns the decoded content of a string symbol (which may be empty)
// or the enumerator name of an enum symbol.
func (s *Symbol) Text() (string, error) {
	switch s.typ {
	case String:
		return s.str, nil
	case Enum:
		name, err := s.native.EnumName()
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", s.name, err)
		}
		return name, nil
	default:
		return "", &NotSupportedError{Symbol: s.name, Type: s.typ, Op: "get_value_string"}
	}
}

// Member looks up a structure member by exact name.
func (s *Symbol) Member(name string) (*Symbol, error) {
	if s.typ != Struct {
		return nil, &NotSupportedError{Symbol: s.name, Type: s.typ, Op: "get_member"}
	}
	child, ok := s.native.ChildByName(name)
	if !ok {
		return nil, &NoSuchMemberError{Symbol: s.name, Member: name}
	}
	return New(child), nil
}

// Members returns all members of a structure in the backend's native child
// ordering.
func (s *Symbol) Members() ([]*Symbol, error) {
	if s.typ != Struct {
		return nil, &NotSupportedError{Symbol: s.name, Type: s.typ, Op: "get_members"}
	}
	n := s.native.NumChildren()
	members := make([]*Symbol, 0, n)
	for i := 0; i < n; i++ {
		child, err := s.native.ChildAt(i)
		if err != nil {
			return nil, fmt.Errorf("enumerating members of %s: %w", s.name, err)
		}
		members = append(members, New(child))
	}
	return members, nil
}

// NumIndices returns the declared length of an array symbol.
func (s *Symbol) NumIndices() (int, error) {
	if s.typ != Array {
		return 0, &NotSupportedError{Symbol: s.name, Type: s.typ, Op: "get_array_size"}
	}
	return s.native.NumChildren(), nil
}

// Index returns the element of an array symbol at n, which must be in
// [0, NumIndices()).
func (s *Symbol) Index(n int) (*Symbol, error) {
	if s.typ != Array {
		return nil, &NotSupportedError{Symbol: s.name, Type: s.typ, Op: "get_index"}
	}
	length := s.native.NumChildren()
	if n < 0 || n >= length {
		return nil, &IndexOutOfRangeError{Symbol: s.name, Index: n, Length: length}
	}
	child, err := s.native.ChildAt(n)
	if err != nil {
		return nil, fmt.Errorf("indexing %s: %w", s.name, err)
	}
	return New(child), nil
}
