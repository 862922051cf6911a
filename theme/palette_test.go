package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gpl = `GIMP Palette
Name: two
Columns: 2
# comment
  0   0   0	black
200 100  50	rust
`

func TestLoadGPL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two.gpl")
	require.NoError(t, os.WriteFile(path, []byte(gpl), 0644))

	p, err := LoadGPL(path)
	require.NoError(t, err)
	assert.Equal(t, "two", p.Name)
	assert.Equal(t, []RGB{{0, 0, 0}, {200, 100, 50}}, p.Colors)

	assert.Equal(t, RGB{0, 0, 0}, p.Lookup(-1))
	assert.Equal(t, RGB{200, 100, 50}, p.Lookup(2))
	assert.Equal(t, RGB{100, 50, 25}, p.Lookup(0.5))
}

func TestLoadOrDefault(t *testing.T) {
	p, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "plasma", p.Name)

	p, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.gpl"))
	assert.Error(t, err)
	assert.Equal(t, "plasma", p.Name)

	empty := filepath.Join(t.TempDir(), "empty.gpl")
	require.NoError(t, os.WriteFile(empty, []byte("GIMP Palette\n"), 0644))
	_, err = LoadGPL(empty)
	assert.Error(t, err)
}

func TestParseGPLSkipsBadRows(t *testing.T) {
	p, err := ParseGPL(strings.NewReader("GIMP Palette\n300 0 0 too bright\n1 2\n4 5 6 ok\n"))
	require.NoError(t, err)
	assert.Equal(t, []RGB{{4, 5, 6}}, p.Colors)
	assert.Equal(t, "", p.Name)
}

func TestThemeColors(t *testing.T) {
	th := New(Plasma())
	assert.Equal(t, "#f0f921", string(th.Color(RolePlaying)))
	assert.Equal(t, Plasma().Colors[7], th.RGB(RolePlaying))
	assert.Equal(t, RGB{13, 8, 135}, th.Palette.Lookup(0))
	assert.Equal(t, '▶', th.Symbols.Playing)
}
