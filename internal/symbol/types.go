// Package symbol models variables of a debugged program as a typed tree.
//
// A Symbol is one node of that tree: a named global, a struct member, or an
// array element. Every Symbol is classified into exactly one Type and exposes
// only the accessors valid for that type. The backing data comes from a
// debugger backend through the Native capability interface, so the tree logic
// never touches backend-specific types.
package symbol

// Type identifies the classification of a Symbol. Every Symbol reports
// exactly one Type, fixed at construction.
type Type int

const (
	// Basic symbols hold a single numeric value (integer or float).
	Basic Type = iota
	// Struct symbols are aggregates with named members (struct or union).
	Struct
	// Array symbols are fixed-length sequences addressed by integer index.
	Array
	// Pointer symbols hold an address, readable as an unsigned number.
	Pointer
	// String symbols are char arrays whose content decoded as a C string.
	String
	// Enum symbols hold an enumerator: a symbolic name plus unsigned value.
	Enum
)

// String returns the wire name of the type as reported to tool callers.
func (t Type) String() string {
	switch t {
	case Basic:
		return "basic"
	case Struct:
		return "structure"
	case Array:
		return "array"
	case Pointer:
		return "pointer"
	case String:
		return "string"
	case Enum:
		return "enum"
	default:
		return "unknown"
	}
}

// AccessorHint names the tool accessors appropriate for a symbol of the
// given type. It is embedded in error messages so a caller that picked the
// wrong accessor learns which one to use instead.
func AccessorHint(t Type) string {
	switch t {
	case Basic:
		return "use get_value_number to read its value"
	case Struct:
		return "use get_member or get_members to traverse its members"
	case Array:
		return "use get_index and get_array_size to traverse its elements"
	case Pointer:
		return "use get_value_number to read the address it holds"
	case String:
		return "use get_value_string to read its content"
	case Enum:
		return "use get_value_string for the enumerator name or get_value_number for its value"
	default:
		return "no accessor applies"
	}
}

// BasicKind is the resolved category of a basic native type, produced by the
// backend from the canonical (typedef-stripped) type. It drives how the
// numeric value of a Basic symbol is extracted.
type BasicKind int

const (
	// KindInvalid marks a basic type the backend could not identify.
	// Reading such a value fails rather than guessing an encoding.
	KindInvalid BasicKind = iota
	KindChar
	KindSignedChar
	KindUnsignedChar
	KindShort
	KindUnsignedShort
	KindInt
	KindUnsignedInt
	KindLong
	KindUnsignedLong
	KindLongLong
	KindUnsignedLongLong
	KindFloat
	KindDouble
)

// isTextInteger reports whether values of this kind are parsed from the
// backend's textual rendering as integers. Char kinds are excluded: they go
// through the signed/unsigned raw accessors instead.
func (k BasicKind) isTextInteger() bool {
	switch k {
	case KindShort, KindUnsignedShort, KindInt, KindUnsignedInt,
		KindLong, KindUnsignedLong, KindLongLong, KindUnsignedLongLong:
		return true
	}
	return false
}

// isFloat reports whether values of this kind are parsed from the backend's
// textual rendering as floating point.
func (k BasicKind) isFloat() bool {
	return k == KindFloat || k == KindDouble
}
