package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peregrinstark/debugagent/internal/backend/membackend"
	"github.com/peregrinstark/debugagent/internal/debugger"
)

func TestNewServerPreloadsTargets(t *testing.T) {
	t.Parallel()

	backend := membackend.New()
	backend.AddImage("/bin/a", membackend.NewImage(membackend.Int("x", 1)))
	backend.AddImage("/bin/b", membackend.NewImage(membackend.Int("y", 2)))

	config := &ServerConfig{
		Name:    "debugagent",
		Version: "1.0.0",
		Targets: []TargetSpec{
			{Name: "a", Path: "/bin/a"},
			{Name: "b", Path: "/bin/b"},
		},
	}

	s, err := NewServer(context.Background(), config, debugger.New(backend))
	require.NoError(t, err)
	defer s.Close()

	targets := s.Session().Debugger().Targets()
	require.Len(t, targets, 2)
	assert.Equal(t, "a", targets[0].Name())
	assert.Equal(t, "b", targets[1].Name())
}

func TestNewServerDefaults(t *testing.T) {
	t.Parallel()

	s, err := NewServer(context.Background(), nil, debugger.New(membackend.New()))
	require.NoError(t, err)
	defer s.Close()
	assert.NotNil(t, s.Session())
}

func TestNewServerRequiresDebugger(t *testing.T) {
	t.Parallel()

	_, err := NewServer(context.Background(), nil, nil)
	require.Error(t, err)
}

func TestNewServerFailsOnBadPreload(t *testing.T) {
	t.Parallel()

	config := &ServerConfig{
		Name:    "debugagent",
		Version: "1.0.0",
		Targets: []TargetSpec{{Name: "ghost", Path: "/bin/ghost"}},
	}

	_, err := NewServer(context.Background(), config, debugger.New(membackend.New()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}
