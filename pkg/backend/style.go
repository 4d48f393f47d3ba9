package backend

import "fmt"

// Color is a charting color: 8-bit RGB channels plus an alpha multiplier.
// Alpha is meant to lie in [0, 1]; values outside that range are passed
// through unchanged and it is up to the backend to decide what they mean.
type Color struct {
	R, G, B uint8
	Alpha   float64
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Alpha: 1}
}

// RGBA returns a color with the given alpha multiplier.
func RGBA(r, g, b uint8, alpha float64) Color {
	return Color{R: r, G: g, B: b, Alpha: alpha}
}

// Mix returns c with its alpha multiplied by opacity.
func (c Color) Mix(opacity float64) Color {
	c.Alpha *= opacity
	return c
}

// String returns the color in rgba() notation.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.3g)", c.R, c.G, c.B, c.Alpha)
}

// Common colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
	Red         = RGB(255, 0, 0)
	Green       = RGB(0, 255, 0)
	Blue        = RGB(0, 0, 255)
	Transparent = RGBA(0, 0, 0, 0)
)

// Style describes how a shape is stroked or filled.
type Style interface {
	Color() Color
	StrokeWidth() uint32
}

// ShapeStyle is the stock Style implementation.
type ShapeStyle struct {
	Fill   Color
	Filled bool
	Width  uint32
}

// Color implements Style.
func (s ShapeStyle) Color() Color { return s.Fill }

// StrokeWidth implements Style.
func (s ShapeStyle) StrokeWidth() uint32 { return s.Width }

// Stroke returns a 1-unit-wide outline style of color c.
func Stroke(c Color) ShapeStyle {
	return ShapeStyle{Fill: c, Width: 1}
}

// Filled returns a fill style of color c.
func Filled(c Color) ShapeStyle {
	return ShapeStyle{Fill: c, Filled: true, Width: 0}
}

// WithWidth returns s with the given stroke width.
func (s ShapeStyle) WithWidth(w uint32) ShapeStyle {
	s.Width = w
	return s
}

// FontFamily names a font family. The generic families are always accepted
// by a backend, other names may be unknown to it.
type FontFamily string

// Generic font families.
const (
	Serif     FontFamily = "serif"
	SansSerif FontFamily = "sans-serif"
	Monospace FontFamily = "monospace"
)

// TextStyle describes how text is drawn.
type TextStyle interface {
	Family() FontFamily
	Size() float64
	Color() Color
}

// TextStyleSpec is the stock TextStyle implementation.
type TextStyleSpec struct {
	FontFamily FontFamily
	FontSize   float64
	FontColor  Color
}

// Font returns a black text style in the given family and size.
func Font(family FontFamily, size float64) TextStyleSpec {
	return TextStyleSpec{FontFamily: family, FontSize: size, FontColor: Black}
}

// Family implements TextStyle.
func (t TextStyleSpec) Family() FontFamily { return t.FontFamily }

// Size implements TextStyle.
func (t TextStyleSpec) Size() float64 { return t.FontSize }

// Color implements TextStyle.
func (t TextStyleSpec) Color() Color { return t.FontColor }

// WithColor returns t drawn in color c.
func (t TextStyleSpec) WithColor(c Color) TextStyleSpec {
	t.FontColor = c
	return t
}
