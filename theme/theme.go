package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Role is a position on the palette gradient, 0-1
type Role float64

const (
	RoleIdleSlot  Role = 0.2
	RoleHeader    Role = 0.5
	RoleRecording Role = 0.8
	RolePlaying   Role = 1.0
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	Pad     rune // empty or stopped slot
	Playing rune // the slot a track is playing
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{Pad: '■', Playing: '▶'},
	}
}

// RGB is the raw palette color for role, used for pads
func (t *Theme) RGB(r Role) RGB {
	return t.Palette.Lookup(float64(r))
}

func (t *Theme) Color(r Role) lipgloss.Color {
	c := t.RGB(r)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}

// Style is a foreground-only style in the role's color
func (t *Theme) Style(r Role) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Color(r))
}
