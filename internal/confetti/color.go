package confetti

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor converts a particle color string to RGBA.
//
// Supported forms:
//   - hex: "#FFC700", "#fc0"
//   - CSS color names: "red", "RoyalBlue"
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
	}

	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}

// Palette caches parsed colors. Unknown colors fall back to Fallback.
type Palette struct {
	Fallback color.RGBA
	cache    map[string]paletteEntry
}

type paletteEntry struct {
	c  color.RGBA
	ok bool
}

// NewPalette creates a palette with a white fallback.
func NewPalette() *Palette {
	return &Palette{
		Fallback: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		cache:    make(map[string]paletteEntry),
	}
}

// Lookup returns the RGBA for s. The second result is false when s could
// not be parsed and the fallback was used.
func (p *Palette) Lookup(s string) (color.RGBA, bool) {
	if e, ok := p.cache[s]; ok {
		if !e.ok {
			return p.Fallback, false
		}
		return e.c, true
	}
	c, err := ParseColor(s)
	p.cache[s] = paletteEntry{c: c, ok: err == nil}
	if err != nil {
		return p.Fallback, false
	}
	return c, true
}
