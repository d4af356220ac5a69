package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "debugagent", cfg.Server.Name)
	assert.Equal(t, "1.0.0", cfg.Server.Version)
	assert.True(t, cfg.Watcher.Enabled)
	assert.Empty(t, cfg.Targets)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults pass",
			mutate: func(c *Config) {},
		},
		{
			name: "empty server name",
			mutate: func(c *Config) {
				c.Server.Name = ""
			},
			wantErr: "server.name",
		},
		{
			name: "target without a name",
			mutate: func(c *Config) {
				c.Targets = []TargetConfig{{Path: "/bin/app"}}
			},
			wantErr: "name cannot be empty",
		},
		{
			name: "target without a path",
			mutate: func(c *Config) {
				c.Targets = []TargetConfig{{Name: "app"}}
			},
			wantErr: "path cannot be empty",
		},
		{
			name: "duplicate target names",
			mutate: func(c *Config) {
				c.Targets = []TargetConfig{
					{Name: "app", Path: "/bin/app"},
					{Name: "app", Path: "/bin/other"},
				}
			},
			wantErr: "duplicate target name",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoaderDefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)
	assert.Equal(t, "debugagent", cfg.Server.Name)
	assert.True(t, cfg.Watcher.Enabled)
	assert.Empty(t, cfg.Targets)
}

func TestLoaderReadsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configDir := filepath.Join(dir, ".debugagent")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	yaml := `server:
  name: lab-debugger
targets:
  - name: firmware
    path: /opt/images/firmware.elf
  - name: sim
    path: /opt/images/sim.elf
watcher:
  enabled: false
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(yaml), 0o644))

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, "lab-debugger", cfg.Server.Name)
	// Unset keys keep their defaults.
	assert.Equal(t, "1.0.0", cfg.Server.Version)
	assert.False(t, cfg.Watcher.Enabled)

	require.Len(t, cfg.Targets, 2)
	assert.Equal(t, "firmware", cfg.Targets[0].Name)
	assert.Equal(t, "/opt/images/firmware.elf", cfg.Targets[0].Path)
	assert.Equal(t, "sim", cfg.Targets[1].Name)
}

func TestLoaderEnvOverride(t *testing.T) {
	t.Setenv("DEBUGAGENT_SERVER_NAME", "env-debugger")

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)
	assert.Equal(t, "env-debugger", cfg.Server.Name)
}

func TestLoaderRejectsInvalidFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configDir := filepath.Join(dir, ".debugagent")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	yaml := `targets:
  - name: app
    path: /bin/app
  - name: app
    path: /bin/other
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(yaml), 0o644))

	_, err := NewLoader(dir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate target name")
}
