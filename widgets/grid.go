package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Pad is one cell of a clip grid
type Pad struct {
	Color  [3]uint8
	Symbol rune
}

// RenderPad renders a single colored pad
func RenderPad(p Pad) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(p.Color)))
	return style.Render(string(p.Symbol))
}

// RenderClipGrid renders grid[track][scene] with tracks as columns and
// scene 0 on the top row. header labels the columns.
func RenderClipGrid(grid [][]Pad, header []string) string {
	if len(grid) == 0 {
		return ""
	}
	scenes := len(grid[0])

	var lines []string
	var head strings.Builder
	head.WriteString("     ")
	for i := range grid {
		label := ""
		if i < len(header) {
			label = header[i]
		}
		head.WriteString(fmt.Sprintf("%-3.3s", label))
	}
	lines = append(lines, strings.TrimRight(head.String(), " "))

	for scene := 0; scene < scenes; scene++ {
		var line strings.Builder
		line.WriteString(fmt.Sprintf("S%-2d  ", scene))
		for track := range grid {
			if track > 0 {
				line.WriteString("  ")
			}
			line.WriteString(RenderPad(grid[track][scene]))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// RenderLegendItem renders a single legend item: "■ Name - description"
func RenderLegendItem(p Pad, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", RenderPad(p), name, desc)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}

func rgbToHex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
