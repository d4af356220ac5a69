package symbol

import "fmt"

// NotSupportedError reports an accessor called on a symbol whose type does
// not support it. The message names the accessor appropriate for the
// symbol's actual type so an unreliable caller can self-correct.
type NotSupportedError struct {
	Symbol string
	Type   Type
	Op     string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("%s does not support %s: it is a %s symbol; %s",
		e.Symbol, e.Op, e.Type, AccessorHint(e.Type))
}

// UnsupportedTypeError reports a value whose native type the backend could
// not resolve into a readable encoding.
type UnsupportedTypeError struct {
	Symbol string
	Detail string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s has an unsupported native type: %s", e.Symbol, e.Detail)
}

// NoSuchMemberError reports a member lookup on a structure that has no
// member with the requested name.
type NoSuchMemberError struct {
	Symbol string
	Member string
}

func (e *NoSuchMemberError) Error() string {
	return fmt.Sprintf("%s has no member named %q; use get_members to list its members", e.Symbol, e.Member)
}

// IndexOutOfRangeError reports an array index outside [0, length).
type IndexOutOfRangeError struct {
	Symbol string
	Index  int
	Length int
}

func (e *IndexOutOfRangeError) Error() string {
	if e.Length == 0 {
		return fmt.Sprintf("index %d is out of range for %s: the array is empty", e.Index, e.Symbol)
	}
	return fmt.Sprintf("index %d is out of range for %s: valid indices are 0 through %d",
		e.Index, e.Symbol, e.Length-1)
}

// NotFoundError reports a global variable lookup that matched nothing in the
// target's namespace.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no global variable named %q in this target", e.Name)
}
