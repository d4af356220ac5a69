package symbol

import (
	"math"
	"strconv"
)

type numberKind int

const (
	numberSigned numberKind = iota
	numberUnsigned
	numberFloat
)

// Number is the numeric value of a scalar symbol. Exactly one representation
// is active: a signed integer, an unsigned integer, or a floating point
// value. It marshals to a bare JSON number so tool responses carry the value
// without precision loss.
type Number struct {
	kind numberKind
	i    int64
	u    uint64
	f    float64
}

// Signed wraps a signed integer value.
func Signed(v int64) Number { return Number{kind: numberSigned, i: v} }

// Unsigned wraps an unsigned integer value.
func Unsigned(v uint64) Number { return Number{kind: numberUnsigned, u: v} }

// Float wraps a floating point value.
func Float(v float64) Number { return Number{kind: numberFloat, f: v} }

// IsFloat reports whether the value is floating point.
func (n Number) IsFloat() bool { return n.kind == numberFloat }

// Int64 returns the value as a signed integer, truncating floats.
func (n Number) Int64() int64 {
	switch n.kind {
	case numberUnsigned:
		return int64(n.u)
	case numberFloat:
		return int64(n.f)
	default:
		return n.i
	}
}

// Uint64 returns the value as an unsigned integer, truncating floats.
func (n Number) Uint64() uint64 {
	switch n.kind {
	case numberSigned:
		return uint64(n.i)
	case numberFloat:
		return uint64(n.f)
	default:
		return n.u
	}
}

// Float64 returns the value as a float.
func (n Number) Float64() float64 {
	switch n.kind {
	case numberSigned:
		return float64(n.i)
	case numberUnsigned:
		return float64(n.u)
	default:
		return n.f
	}
}

// String renders the value the way it marshals to JSON.
func (n Number) String() string {
	switch n.kind {
	case numberUnsigned:
		return strconv.FormatUint(n.u, 10)
	case numberFloat:
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	default:
		return strconv.FormatInt(n.i, 10)
	}
}

// MarshalJSON emits the value as a bare JSON number. Non-finite floats have
// no JSON number form and are emitted as quoted strings.
func (n Number) MarshalJSON() ([]byte, error) {
	if n.kind == numberFloat && (math.IsNaN(n.f) || math.IsInf(n.f, 0)) {
		return []byte(strconv.Quote(n.String())), nil
	}
	return []byte(n.String()), nil
}

// UnmarshalJSON accepts the forms MarshalJSON produces: a bare number, or a
// quoted non-finite float. Integers that fit int64 come back signed, larger
// ones unsigned, everything else floating point.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > 0 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		s = unquoted
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		*n = Signed(i)
		return nil
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		*n = Unsigned(u)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*n = Float(f)
	return nil
}
