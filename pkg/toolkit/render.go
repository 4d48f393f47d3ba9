package toolkit

// Brush is what shapes are filled and stroked with.
type Brush interface {
	// SolidColor returns the color the brush paints with.
	SolidColor() Color
}

// SolidColor implements Brush so a plain Color can be used directly.
func (c Color) SolidColor() Color { return c }

// SolidBrush is a brush object created by a RenderContext.
type SolidBrush struct {
	color Color
}

// NewSolidBrush returns a brush painting with c.
func NewSolidBrush(c Color) *SolidBrush { return &SolidBrush{color: c} }

// SolidColor implements Brush.
func (b *SolidBrush) SolidColor() Color { return b.color }

// RenderContext is an immediate-mode paint surface. Coordinates are relative
// to the context's own origin.
type RenderContext interface {
	// Size returns the extent of the surface.
	Size() Size
	// Fill paints the interior of shape.
	Fill(shape Shape, brush Brush)
	// Stroke paints the outline of shape with the given line width.
	Stroke(shape Shape, brush Brush, width float64)
	// SolidBrush creates a brush painting with c.
	SolidBrush(c Color) Brush
	// Text returns the factory building text layouts for this surface.
	Text() TextFactory
	// DrawText draws a layout built by Text() with its top-left corner at pos.
	DrawText(layout TextLayout, pos Point)
	// Sub returns a context for the part of the surface inside r. Drawing
	// through it is relative to r.Min and clipped to r.
	Sub(r Rect) RenderContext
}

// FontFamily is a resolved font family handle.
type FontFamily struct {
	name string
}

// Name returns the canonical family name.
func (f FontFamily) Name() string { return f.name }

// Generic font families. A FontManager always resolves them.
var (
	SerifFamily     = FontFamily{name: "serif"}
	SansSerifFamily = FontFamily{name: "sans-serif"}
	MonospaceFamily = FontFamily{name: "monospace"}
)

// TextFactory builds text layouts.
type TextFactory interface {
	// FontFamily resolves a family name. The boolean is false when the
	// family is unknown.
	FontFamily(name string) (FontFamily, bool)
	// NewTextLayout starts building a layout for text.
	NewTextLayout(text string) TextLayoutBuilder
}

// TextLayoutBuilder configures a text layout before it is built.
type TextLayoutBuilder interface {
	Font(family FontFamily, size float64) TextLayoutBuilder
	TextColor(c Color) TextLayoutBuilder
	Build() (TextLayout, error)
}

// TextLayout is text shaped and measured, ready to draw.
type TextLayout interface {
	Text() string
	Size() Size
}

// FontDescriptor selects a family and size.
type FontDescriptor struct {
	Family FontFamily
	Size   float64
}

// NewFontDescriptor returns a descriptor for family at the default size.
func NewFontDescriptor(family FontFamily) FontDescriptor {
	return FontDescriptor{Family: family}
}

// WithSize returns fd with the given size.
func (fd FontDescriptor) WithSize(size float64) FontDescriptor {
	fd.Size = size
	return fd
}
