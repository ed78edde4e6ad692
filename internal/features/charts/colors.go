package charts

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor parses "#RRGGBB" or "#RGB".
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// Palette is an ordered list of colors that repeats when exhausted.
type Palette []color.Color

// ParsePalette parses every entry with ParseHexColor.
func ParsePalette(hexes []string) (Palette, error) {
	p := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		c, err := ParseHexColor(h)
		if err != nil {
			return nil, err
		}
		p = append(p, c)
	}
	return p, nil
}

// At returns the i-th color, cycling. An empty palette yields black.
func (p Palette) At(i int) color.Color {
	if len(p) == 0 {
		return color.Black
	}
	return p[i%len(p)]
}
