package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, ControllerID, cfg.Controller.ID)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	cfg := DefaultConfig()
	cfg.Input.PortName = "IAC Driver Bus 1"
	cfg.Clock.Enabled = true
	cfg.Output.Channel = 10
	cfg.Controller.ID = uuid.New()
	cfg.Debug = DebugConfig{Enabled: true, Path: "/tmp/x.log"}
	require.NoError(t, cfg.SaveFile(path))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadFileKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"input":{"portName":"Launch In"}}`), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Launch In", cfg.Input.PortName)
	assert.Equal(t, "Dan W", cfg.Controller.Vendor)
	assert.Equal(t, 1, cfg.Output.Channel)
	assert.Equal(t, GeneratorRandom, cfg.Clock.Generator)
}

func TestLoadFileRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"input":`), 0644))

	_, err := LoadFile(path)
	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
	assert.ErrorContains(t, err, "parse config")
}

func TestLoadFailsWithoutHome(t *testing.T) {
	t.Setenv("HOME", "")

	cfg, err := Load()
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "config dir")
}

func TestLoadFileUnreadable(t *testing.T) {
	// a directory exists but cannot be read as a file
	_, err := LoadFile(t.TempDir())
	assert.ErrorContains(t, err, "read config")
}

func TestSaveFileWrapsErrors(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := DefaultConfig().SaveFile(filepath.Join(blocker, "config.json"))
	assert.ErrorContains(t, err, "create config dir")
}

func TestOutputChannel(t *testing.T) {
	cfg := DefaultConfig()
	for ch, want := range map[int]uint8{0: 0, 1: 0, 10: 9, 16: 15, 17: 0, -3: 0} {
		cfg.Output.Channel = ch
		assert.Equal(t, want, cfg.OutputChannel(), "channel %d", ch)
	}
}
