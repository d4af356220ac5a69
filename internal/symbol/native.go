package symbol

// Native is the capability surface a debugger backend exposes for one raw
// value. All type predicates answer for the canonical type, i.e. with
// typedef and qualifier layers stripped. The symbol layer classifies and
// reads values exclusively through this interface, so backends are
// swappable without touching the tree logic.
type Native interface {
	// Name is the variable, member, or element label of this value.
	Name() string

	// IsPointer reports whether the canonical type is a pointer type.
	IsPointer() bool
	// IsArray reports whether the canonical type is an array type.
	IsArray() bool
	// IsAggregate reports whether the canonical type has structural
	// children: a struct, union, or array.
	IsAggregate() bool
	// IsEnum reports whether the canonical type is an enumeration.
	IsEnum() bool
	// BasicKind resolves the basic-type category of the canonical type.
	// Backends return KindInvalid when they cannot identify the encoding.
	BasicKind() BasicKind

	// NumChildren is the member count of an aggregate or the declared
	// length of an array. Zero for everything else.
	NumChildren() int
	// ChildAt returns the i-th child in the backend's native ordering.
	ChildAt(i int) (Native, error)
	// ChildByName finds an aggregate member by exact name.
	ChildByName(name string) (Native, bool)

	// ElementTypeName is the declared (not canonicalized) element type name
	// of an array value, empty for non-arrays. String detection triggers
	// only when this is exactly "char".
	ElementTypeName() string
	// Bytes returns the raw backing bytes of the value.
	Bytes() ([]byte, error)

	// ValueText is the backend's textual rendering of a scalar value,
	// possibly base-prefixed (e.g. "0x1f").
	ValueText() (string, error)
	// SignedValue reads the value as a signed integer.
	SignedValue() (int64, error)
	// UnsignedValue reads the value as an unsigned integer. For pointers
	// this is the held address.
	UnsignedValue() (uint64, error)
	// EnumName returns the symbolic name of the enumerator matching the
	// current value of an enumeration.
	EnumName() (string, error)
}
