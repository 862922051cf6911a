package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cliplaunch/clipgen"
	"cliplaunch/config"
	"cliplaunch/debug"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRunReturnsConfigErrors(t *testing.T) {
	err := Run([]string{"-config", writeConfig(t, `{"input":`)})
	assert.ErrorContains(t, err, "parse config")

	err = Run([]string{"-no-such-flag"})
	assert.Error(t, err)
}

func TestRunClosesDebugLogOnError(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debug.log")
	cfgPath := writeConfig(t, `{
		"clock": {"enabled": true, "generator": "bogus"},
		"debug": {"enabled": true, "path": "`+filepath.ToSlash(logPath)+`"}
	}`)

	err := Run([]string{"-config", cfgPath})
	assert.ErrorContains(t, err, `unknown clip generator "bogus"`)
	assert.False(t, debug.Enabled(), "deferred Disable ran")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `unknown clip generator "bogus"`)
}

func TestLoadConfigFlags(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.json")

	cfg, err := loadConfig([]string{"-config", missing})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	cfg, err = loadConfig([]string{
		"-config", missing,
		"-in", "IAC Bus 1",
		"-clock", "IAC Bus 2",
		"-out", "IAC Bus 3",
		"-gen", "markov",
		"-headless", "-debug",
	})
	require.NoError(t, err)
	assert.Equal(t, "IAC Bus 1", cfg.Input.PortName)
	assert.Equal(t, "IAC Bus 2", cfg.Clock.PortName)
	assert.True(t, cfg.Clock.Enabled)
	assert.Equal(t, "IAC Bus 3", cfg.Output.PortName)
	assert.Equal(t, config.GeneratorMarkov, cfg.Clock.Generator)
	assert.True(t, cfg.UI.Headless)
	assert.True(t, cfg.Debug.Enabled)
}

func TestLoadConfigSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	_, err := loadConfig([]string{"-config", path, "-in", "Saved Port", "-save"})
	require.NoError(t, err)

	got, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Saved Port", got.Input.PortName)
}

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		name    string
		want    any
		wantErr bool
	}{
		{"", &clipgen.RandomGenerator{}, false},
		{config.GeneratorRandom, &clipgen.RandomGenerator{}, false},
		{config.GeneratorMarkov, &clipgen.MarkovGenerator{}, false},
		{"euclid", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := newGenerator(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, gen)
		})
	}
}
