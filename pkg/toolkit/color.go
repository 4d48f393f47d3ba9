package toolkit

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a packed 32-bit non-premultiplied RGBA color laid out as
// 0xRRGGBBAA. It implements image/color.Color.
type Color uint32

// ColorFromRGBA32 returns the color packed in u as 0xRRGGBBAA.
func ColorFromRGBA32(u uint32) Color { return Color(u) }

// RGBA8 returns a color from its four 8-bit channels.
func RGBA8(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// RGB8 returns an opaque color.
func RGB8(r, g, b uint8) Color { return RGBA8(r, g, b, 0xff) }

// AsRGBA32 returns the packed 0xRRGGBBAA value.
func (c Color) AsRGBA32() uint32 { return uint32(c) }

// Components returns the four 8-bit channels.
func (c Color) Components() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	return c&^0xff | Color(a)
}

// RGBA implements image/color.Color with premultiplied 16-bit channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8, a8 := c.Components()
	a = uint32(a8) * 0x101
	r = uint32(r8) * 0x101 * a / 0xffff
	g = uint32(g8) * 0x101 * a / 0xffff
	b = uint32(b8) * 0x101 * a / 0xffff
	return r, g, b, a
}

// String returns the color as #rrggbbaa.
func (c Color) String() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

// Common colors.
const (
	Black       Color = 0x000000ff
	White       Color = 0xffffffff
	Transparent Color = 0x00000000
)

// namedColors maps CSS color names to packed colors.
var namedColors = map[string]Color{
	"black":       Black,
	"white":       White,
	"red":         0xff0000ff,
	"green":       0x008000ff,
	"lime":        0x00ff00ff,
	"blue":        0x0000ffff,
	"yellow":      0xffff00ff,
	"cyan":        0x00ffffff,
	"magenta":     0xff00ffff,
	"gray":        0x808080ff,
	"grey":        0x808080ff,
	"lightgray":   0xd3d3d3ff,
	"lightgrey":   0xd3d3d3ff,
	"darkgray":    0xa9a9a9ff,
	"darkgrey":    0xa9a9a9ff,
	"orange":      0xffa500ff,
	"purple":      0x800080ff,
	"navy":        0x000080ff,
	"teal":        0x008080ff,
	"transparent": Transparent,
}

// ParseColor parses a color string.
// Supported formats:
//   - Named colors: "red", "navy", ...
//   - Hex: "#RGB", "#RGBA", "#RRGGBB", "#RRGGBBAA" (the # is optional)
//   - Functions: "rgb(255, 0, 0)", "rgba(255, 0, 0, 0.5)"
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty color string")
	}
	lower := strings.ToLower(s)
	if c, ok := namedColors[lower]; ok {
		return c, nil
	}
	switch {
	case strings.HasPrefix(lower, "rgba(") && strings.HasSuffix(lower, ")"):
		return parseColorFunc(s, lower[5:len(lower)-1], 4)
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")"):
		return parseColorFunc(s, lower[4:len(lower)-1], 3)
	}
	return parseHexColor(s)
}

// MustParseColor parses a color string and panics if parsing fails.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3, 4:
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	case 6, 8:
	default:
		return 0, fmt.Errorf("unrecognized color format: %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color(v), nil
}

func parseColorFunc(orig, inner string, n int) (Color, error) {
	parts := strings.Split(inner, ",")
	if len(parts) != n {
		return 0, fmt.Errorf("invalid color %q: expected %d components", orig, n)
	}
	var ch [4]uint8
	ch[3] = 0xff
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return 0, fmt.Errorf("invalid color %q: component %d out of range", orig, i)
		}
		ch[i] = uint8(v)
	}
	if n == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q: alpha: %w", orig, err)
		}
		switch {
		case a >= 0 && a <= 1:
			ch[3] = uint8(a*255 + 0.5)
		case a > 1 && a <= 255:
			ch[3] = uint8(a)
		default:
			return 0, fmt.Errorf("invalid color %q: alpha out of range", orig)
		}
	}
	return RGBA8(ch[0], ch[1], ch[2], ch[3]), nil
}
