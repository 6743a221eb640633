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

// Palette is an ordered color ramp, darkest first
type Palette struct {
	Name   string
	Colors []RGB
}

// DefaultPalette is a blue-backlight character LCD, dark to bright
func DefaultPalette() *Palette {
	return &Palette{
		Name: "lcd-blue",
		Colors: []RGB{
			{0x10, 0x2a, 0x8c}, // backlight
			{0x3a, 0x5c, 0xc4},
			{0xe8, 0xf0, 0xff}, // ink
			{0x7f, 0xd4, 0xff},
			{0xff, 0x8c, 0x42}, // warning
		},
	}
}

// Load returns the GPL palette at path, or the default one when path is empty
func Load(path string) (*Palette, error) {
	if path == "" {
		return DefaultPalette(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := ParseGPL(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParseGPL reads a GIMP palette. Only the first three fields of a color
// line are used; the color name is ignored.
func ParseGPL(r io.Reader) (*Palette, error) {
	p := &Palette{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "", line[0] == '#', strings.HasPrefix(line, "GIMP"), strings.HasPrefix(line, "Columns"):
			continue
		case strings.HasPrefix(line, "Name:"):
			p.Name = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
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
		return nil, fmt.Errorf("no colors in palette %q", p.Name)
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

// Lookup returns the color at position norm (0-1) along the ramp,
// blending the two nearest entries
func (p *Palette) Lookup(norm float64) RGB {
	last := len(p.Colors) - 1
	if norm <= 0 || last == 0 {
		return p.Colors[0]
	}
	if norm >= 1 {
		return p.Colors[last]
	}

	pos := norm * float64(last)
	i := int(pos)
	t := pos - float64(i)

	var c RGB
	for ch := range c {
		a, b := float64(p.Colors[i][ch]), float64(p.Colors[i+1][ch])
		c[ch] = uint8(a + (b-a)*t)
	}
	return c
}
