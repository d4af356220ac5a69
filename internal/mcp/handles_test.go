package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peregrinstark/debugagent/internal/backend/membackend"
	"github.com/peregrinstark/debugagent/internal/symbol"
)

// TestHandleTableAdd verifies fresh ids and accurate snapshots.
func TestHandleTableAdd(t *testing.T) {
	t.Parallel()

	table := NewHandleTable()
	sym := symbol.New(membackend.Int("count", 10))

	info := table.Add(sym)
	assert.NotEmpty(t, info.ID)
	assert.Equal(t, "count", info.Name)
	assert.Equal(t, "basic", info.Type)
	assert.Equal(t, 1, table.Len())

	// A second registration of the same symbol mints a distinct id.
	again := table.Add(sym)
	assert.NotEqual(t, info.ID, again.ID)
	assert.Equal(t, 2, table.Len())
}

// TestHandleTableResolve verifies the three validation steps.
func TestHandleTableResolve(t *testing.T) {
	t.Parallel()

	table := NewHandleTable()
	info := table.Add(symbol.New(membackend.StructOf("cfg", membackend.Int("count", 10))))

	t.Run("valid handle resolves", func(t *testing.T) {
		t.Parallel()
		sym, err := table.Resolve("get_member", info.ID, info.Name, symbol.Struct)
		require.NoError(t, err)
		assert.Equal(t, "cfg", sym.Name())
	})

	t.Run("never-issued id", func(t *testing.T) {
		t.Parallel()
		_, err := table.Resolve("get_member", "019209aa-0000-7000-8000-000000000000", "cfg", symbol.Struct)
		var unknown *UnknownHandleError
		require.ErrorAs(t, err, &unknown)
	})

	t.Run("garbage id", func(t *testing.T) {
		t.Parallel()
		_, err := table.Resolve("get_member", "not-a-uuid", "cfg", symbol.Struct)
		var unknown *UnknownHandleError
		require.ErrorAs(t, err, &unknown)
	})

	t.Run("fabricated name", func(t *testing.T) {
		t.Parallel()
		_, err := table.Resolve("get_member", info.ID, "somethingelse", symbol.Struct)
		var mismatch *HandleMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "cfg", mismatch.Want)
	})

	t.Run("wrong category", func(t *testing.T) {
		t.Parallel()
		_, err := table.Resolve("get_value_number", info.ID, info.Name,
			symbol.Basic, symbol.Pointer, symbol.Enum)
		var wrong *WrongSymbolTypeError
		require.ErrorAs(t, err, &wrong)
		// The message steers the caller to the accessor that fits.
		assert.Contains(t, err.Error(), "get_member")
	})

	t.Run("no category restriction", func(t *testing.T) {
		t.Parallel()
		_, err := table.Resolve("inspect", info.ID, info.Name)
		require.NoError(t, err)
	})
}
