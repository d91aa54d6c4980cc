// color.go — RGBA color values
//
// Colors keep their 8-bit channels plus alpha, and remember the exact
// spelling they were written with (a name like `red`, or `#abc`) so output
// preserves the author's text. Computed colors — from rgb()/hsl() or color
// math like lighten() — render as hex, or rgba(…) when translucent.
// Recognition of names and hex literals is delegated to csscolorparser;
// HSL math goes through go-colorful.

package grass

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// Color is an RGBA color plus the source spelling that produced it (empty
// for computed colors).
type Color struct {
	R, G, B uint8
	A       float64
	repr    string
}

// NewColor builds a computed color; the rendering is derived from the
// channels.
func NewColor(r, g, b uint8, a float64) *Color {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return &Color{R: r, G: g, B: b, A: a}
}

// colorFromName recognizes CSS color names and hex literals. The original
// spelling is preserved for output.
func colorFromName(s string) (*Color, bool) {
	// csscolorparser also accepts functional notations like "rgb(0,0,0)"
	// and hash-less hex ("beef"); only bare names reach us here, and a
	// hex spelling is an identifier unless written with a leading '#'.
	if strings.ContainsAny(s, "(,") || isHexRun(s) {
		return nil, false
	}
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return nil, false
	}
	col := NewColor(channel(c.R), channel(c.G), channel(c.B), c.A)
	col.repr = s
	return col, true
}

// isHexRun reports whether s consists solely of hex digits, like `abc` or
// `beef`. No color name is spelled that way.
func isHexRun(s string) bool {
	for _, r := range s {
		if !isHexDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

func channel(f float64) uint8 {
	v := int(f*255 + 0.5)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

func (c *Color) String() string {
	if c.repr != "" {
		return c.repr
	}
	if c.A < 1 {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, formatAlpha(c.A))
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func formatAlpha(a float64) string {
	s := fmt.Sprintf("%.5f", a)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return "0"
	}
	return s
}

// hsl returns the color's hue (degrees), saturation and lightness (0..1).
func (c *Color) hsl() (h, s, l float64) {
	return c.colorful().Hsl()
}

// withHsl rebuilds a computed color from HSL coordinates, keeping alpha.
func (c *Color) withHsl(h, s, l float64) *Color {
	s = clamp01(s)
	l = clamp01(l)
	out := colorful.Hsl(h, s, l).Clamped()
	return NewColor(channel(out.R), channel(out.G), channel(out.B), c.A)
}

func (c *Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
