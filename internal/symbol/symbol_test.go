package symbol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peregrinstark/debugagent/internal/backend/membackend"
	"github.com/peregrinstark/debugagent/internal/symbol"
)

// TestClassification verifies every native shape lands in exactly one
// symbol type, per the pointer → array → aggregate → enum → basic
// precedence.
func TestClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		val  *membackend.Val
		want symbol.Type
	}{
		{"int is basic", membackend.Int("count", 10), symbol.Basic},
		{"double is basic", membackend.Double("ratio", 0.5), symbol.Basic},
		{"struct is structure", membackend.StructOf("cfg", membackend.Int("count", 1)), symbol.Struct},
		{"int array is array", membackend.ArrayOf("items", "int", membackend.Int("[0]", 1)), symbol.Array},
		{"pointer is pointer", membackend.Pointer("head", 0xdeadbeef), symbol.Pointer},
		{"enum is enum", membackend.EnumVal("grade", "GRADE_B", 1), symbol.Enum},
		{"valid char array is string", membackend.CharArray("name", []byte("Bob\x00garbage")), symbol.String},
		{"binary char array stays array", membackend.CharArray("buf", []byte{1, 2, 3, 0}), symbol.Array},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sym := symbol.New(tt.val)
			assert.Equal(t, tt.want, sym.Type())
			// Classification is fixed at construction and stable.
			assert.Equal(t, tt.want, sym.Type())
		})
	}
}

// TestStringDetection exercises the C-string heuristic byte by byte.
func TestStringDetection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		val      *membackend.Val
		wantType symbol.Type
		wantText string
	}{
		{
			name:     "NUL terminated printable content",
			val:      membackend.CharArray("s", []byte("hi\x00\xc8\xc8")),
			wantType: symbol.String,
			wantText: "hi",
		},
		{
			name:     "disqualifying byte before NUL",
			val:      membackend.CharArray("s", []byte{200, 0}),
			wantType: symbol.Array,
		},
		{
			name:     "leading NUL is the empty string",
			val:      membackend.CharArray("s", []byte{0, 'x', 'y'}),
			wantType: symbol.String,
			wantText: "",
		},
		{
			name:     "control character disqualifies",
			val:      membackend.CharArray("s", []byte("a\tb\x00")),
			wantType: symbol.Array,
		},
		{
			name:     "space disqualifies",
			val:      membackend.CharArray("s", []byte("a b\x00")),
			wantType: symbol.Array,
		},
		{
			name:     "no NUL within declared length",
			val:      membackend.CharArray("s", []byte("abcd")),
			wantType: symbol.Array,
		},
		{
			name: "unsigned char element type is never sniffed",
			val: &membackend.Val{
				ValName: "s", Arr: true, ElemType: "unsigned char", Raw: []byte("hi\x00"),
			},
			wantType: symbol.Array,
		},
		{
			name: "typedef element name keeps the heuristic narrow",
			val: &membackend.Val{
				ValName: "s", Arr: true, ElemType: "ch_t", Raw: []byte("hi\x00"),
			},
			wantType: symbol.Array,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sym := symbol.New(tt.val)
			require.Equal(t, tt.wantType, sym.Type())
			if tt.wantType == symbol.String {
				text, err := sym.Text()
				require.NoError(t, err)
				assert.Equal(t, tt.wantText, text)
			}
		})
	}
}

// TestNumberDispatch verifies the basic-kind dispatch table for numeric
// value extraction.
func TestNumberDispatch(t *testing.T) {
	t.Parallel()

	t.Run("plain char reads signed", func(t *testing.T) {
		t.Parallel()
		sym := symbol.New(membackend.Char("c", 0xFF))
		n, err := sym.Number()
		require.NoError(t, err)
		assert.Equal(t, int64(-1), n.Int64())
	})

	t.Run("unsigned char reads unsigned", func(t *testing.T) {
		t.Parallel()
		sym := symbol.New(membackend.UChar("c", 0xFF))
		n, err := sym.Number()
		require.NoError(t, err)
		assert.Equal(t, uint64(255), n.Uint64())
	})

	t.Run("int parses base-prefixed text", func(t *testing.T) {
		t.Parallel()
		val := &membackend.Val{ValName: "flags", Kind: symbol.KindUnsignedInt, Text: "0x1f"}
		n, err := symbol.New(val).Number()
		require.NoError(t, err)
		assert.Equal(t, int64(31), n.Int64())
	})

	t.Run("int parses decimal text", func(t *testing.T) {
		t.Parallel()
		n, err := symbol.New(membackend.Int("count", 10)).Number()
		require.NoError(t, err)
		assert.Equal(t, int64(10), n.Int64())
		assert.False(t, n.IsFloat())
	})

	t.Run("huge unsigned falls back past int64", func(t *testing.T) {
		t.Parallel()
		val := &membackend.Val{ValName: "big", Kind: symbol.KindUnsignedLongLong, Text: "18446744073709551615"}
		n, err := symbol.New(val).Number()
		require.NoError(t, err)
		assert.Equal(t, uint64(18446744073709551615), n.Uint64())
	})

	t.Run("double parses as float", func(t *testing.T) {
		t.Parallel()
		n, err := symbol.New(membackend.Double("ratio", 0.25)).Number()
		require.NoError(t, err)
		require.True(t, n.IsFloat())
		assert.Equal(t, 0.25, n.Float64())
	})

	t.Run("pointer yields the held address", func(t *testing.T) {
		t.Parallel()
		n, err := symbol.New(membackend.Pointer("head", 0x1000)).Number()
		require.NoError(t, err)
		assert.Equal(t, uint64(0x1000), n.Uint64())
	})

	t.Run("enum yields the unsigned enumerator value", func(t *testing.T) {
		t.Parallel()
		n, err := symbol.New(membackend.EnumVal("grade", "GRADE_C", 2)).Number()
		require.NoError(t, err)
		assert.Equal(t, uint64(2), n.Uint64())
	})

	t.Run("unrecognized basic kind is unsupported", func(t *testing.T) {
		t.Parallel()
		val := &membackend.Val{ValName: "mystery", Kind: symbol.KindInvalid}
		_, err := symbol.New(val).Number()
		var unsupported *symbol.UnsupportedTypeError
		require.ErrorAs(t, err, &unsupported)
	})

	t.Run("structure has no numeric value", func(t *testing.T) {
		t.Parallel()
		sym := symbol.New(membackend.StructOf("cfg", membackend.Int("count", 1)))
		_, err := sym.Number()
		var notSupported *symbol.NotSupportedError
		require.ErrorAs(t, err, &notSupported)
		assert.Contains(t, err.Error(), "get_member")
	})
}

// TestText verifies the string accessor contract.
func TestText(t *testing.T) {
	t.Parallel()

	t.Run("enum yields the enumerator name", func(t *testing.T) {
		t.Parallel()
		sym := symbol.New(membackend.EnumVal("grade", "GRADE_A", 0))
		text, err := sym.Text()
		require.NoError(t, err)
		assert.Equal(t, "GRADE_A", text)

		// The same symbol also exposes the numeric value.
		n, err := sym.Number()
		require.NoError(t, err)
		assert.Equal(t, uint64(0), n.Uint64())
	})

	t.Run("basic has no string value", func(t *testing.T) {
		t.Parallel()
		_, err := symbol.New(membackend.Int("count", 1)).Text()
		var notSupported *symbol.NotSupportedError
		require.ErrorAs(t, err, &notSupported)
		assert.Contains(t, err.Error(), "get_value_number")
	})
}

// TestMembers verifies structure navigation.
func TestMembers(t *testing.T) {
	t.Parallel()

	cfg := membackend.StructOf("cfg",
		membackend.Int("count", 10),
		membackend.ArrayOf("items", "int",
			membackend.Int("[0]", 1), membackend.Int("[1]", 2), membackend.Int("[2]", 3)),
	)

	t.Run("member lookup by exact name", func(t *testing.T) {
		t.Parallel()
		sym := symbol.New(cfg)
		require.True(t, sym.HasMembers())

		count, err := sym.Member("count")
		require.NoError(t, err)
		assert.Equal(t, "count", count.Name())
		assert.Equal(t, symbol.Basic, count.Type())

		// Repeated lookups return structurally equivalent results.
		again, err := sym.Member("count")
		require.NoError(t, err)
		assert.Equal(t, count.Name(), again.Name())
		assert.Equal(t, count.Type(), again.Type())
	})

	t.Run("missing member", func(t *testing.T) {
		t.Parallel()
		_, err := symbol.New(cfg).Member("missing")
		var noSuch *symbol.NoSuchMemberError
		require.ErrorAs(t, err, &noSuch)
	})

	t.Run("members enumerate in declaration order", func(t *testing.T) {
		t.Parallel()
		members, err := symbol.New(cfg).Members()
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, "count", members[0].Name())
		assert.Equal(t, "items", members[1].Name())
	})

	t.Run("member on an array is not supported", func(t *testing.T) {
		t.Parallel()
		items, err := symbol.New(cfg).Member("items")
		require.NoError(t, err)
		_, err = items.Member("count")
		var notSupported *symbol.NotSupportedError
		require.ErrorAs(t, err, &notSupported)
		assert.Contains(t, err.Error(), "get_index")
	})
}

// TestIndex verifies array navigation and its bounds.
func TestIndex(t *testing.T) {
	t.Parallel()

	items := membackend.ArrayOf("items", "int",
		membackend.Int("[0]", 1), membackend.Int("[1]", 2), membackend.Int("[2]", 3))

	t.Run("every valid index is addressable", func(t *testing.T) {
		t.Parallel()
		sym := symbol.New(items)
		size, err := sym.NumIndices()
		require.NoError(t, err)
		require.Equal(t, 3, size)

		for i := 0; i < size; i++ {
			elem, err := sym.Index(i)
			require.NoError(t, err)
			n, err := elem.Number()
			require.NoError(t, err)
			assert.Equal(t, int64(i+1), n.Int64())
		}
	})

	t.Run("out of range", func(t *testing.T) {
		t.Parallel()
		sym := symbol.New(items)
		for _, i := range []int{-1, 3, 100} {
			_, err := sym.Index(i)
			var oor *symbol.IndexOutOfRangeError
			require.ErrorAs(t, err, &oor, "index %d", i)
		}
	})

	t.Run("index on a structure is not supported", func(t *testing.T) {
		t.Parallel()
		sym := symbol.New(membackend.StructOf("cfg", membackend.Int("count", 1)))
		_, err := sym.Index(0)
		var notSupported *symbol.NotSupportedError
		require.ErrorAs(t, err, &notSupported)

		_, err = sym.NumIndices()
		require.ErrorAs(t, err, &notSupported)
	})

	t.Run("char array that failed the string sniff still indexes", func(t *testing.T) {
		t.Parallel()
		sym := symbol.New(membackend.CharArray("buf", []byte{200, 65, 0}))
		require.Equal(t, symbol.Array, sym.Type())

		size, err := sym.NumIndices()
		require.NoError(t, err)
		assert.Equal(t, 3, size)

		elem, err := sym.Index(1)
		require.NoError(t, err)
		n, err := elem.Number()
		require.NoError(t, err)
		assert.Equal(t, int64(65), n.Int64())
	})
}
