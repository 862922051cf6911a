package theme

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

type RGB [3]uint8

// Palette is an ordered color gradient
type Palette struct {
	Name   string
	Colors []RGB
}

// Plasma is the built-in gradient, dark purple through magenta to yellow
func Plasma() *Palette {
	return &Palette{
		Name: "plasma",
		Colors: []RGB{
			{13, 8, 135}, {84, 2, 163}, {139, 10, 165}, {185, 50, 137},
			{219, 92, 104}, {244, 136, 73}, {254, 188, 43}, {240, 249, 33},
		},
	}
}

// LoadOrDefault loads a GIMP palette from path. It always returns a usable
// palette: Plasma when path is empty or fails to load.
func LoadOrDefault(path string) (*Palette, error) {
	if path == "" {
		return Plasma(), nil
	}
	p, err := LoadGPL(path)
	if err != nil {
		return Plasma(), err
	}
	return p, nil
}

func LoadGPL(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open palette: %w", err)
	}
	defer f.Close()

	p, err := ParseGPL(f)
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return p, nil
}

// ParseGPL reads the GIMP .gpl format: a header, an optional "Name:" line,
// then one "R G B [label]" row per color
func ParseGPL(r io.Reader) (*Palette, error) {
	p := &Palette{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if name, ok := strings.CutPrefix(line, "Name:"); ok {
			p.Name = strings.TrimSpace(name)
			continue
		}
		if line == "" || line[0] == '#' || strings.HasPrefix(line, "GIMP") || strings.HasPrefix(line, "Columns") {
			continue
		}
		if c, ok := parseRGB(strings.Fields(line)); ok {
			p.Colors = append(p.Colors, c)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(p.Colors) == 0 {
		return nil, fmt.Errorf("no colors")
	}
	return p, nil
}

func parseRGB(fields []string) (RGB, bool) {
	var c RGB
	if len(fields) < 3 {
		return c, false
	}
	for i := range c {
		v, err := strconv.ParseUint(fields[i], 10, 8)
		if err != nil {
			return c, false
		}
		c[i] = uint8(v)
	}
	return c, true
}

// Lookup interpolates the gradient at norm (clamped to 0-1)
func (p *Palette) Lookup(norm float64) RGB {
	last := len(p.Colors) - 1
	switch {
	case norm <= 0:
		return p.Colors[0]
	case norm >= 1:
		return p.Colors[last]
	}

	pos := norm * float64(last)
	i := int(pos)
	frac := pos - float64(i)
	lo, hi := p.Colors[i], p.Colors[i+1]

	var out RGB
	for k := range out {
		out[k] = uint8(float64(lo[k])*(1-frac) + float64(hi[k])*frac)
	}
	return out
}
