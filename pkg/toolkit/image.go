package toolkit

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// ImageContext is a RenderContext rasterizing into an *image.RGBA without a
// GPU. Fills use the x/image vector rasterizer; text uses opentype faces.
type ImageContext struct {
	dst    *image.RGBA
	origin Point
	clip   image.Rectangle
	size   Size
	text   *imageTextFactory
}

// NewImageContext returns a context covering all of dst.
func NewImageContext(dst *image.RGBA, fonts *FontManager) *ImageContext {
	b := dst.Bounds()
	return &ImageContext{
		dst:    dst,
		origin: Point{X: float64(b.Min.X), Y: float64(b.Min.Y)},
		clip:   b,
		size:   Size{Width: float64(b.Dx()), Height: float64(b.Dy())},
		text:   &imageTextFactory{fonts: fonts},
	}
}

// Image returns the destination image.
func (c *ImageContext) Image() *image.RGBA { return c.dst }

// Size implements RenderContext.
func (c *ImageContext) Size() Size { return c.size }

// SolidBrush implements RenderContext.
func (c *ImageContext) SolidBrush(col Color) Brush { return NewSolidBrush(col) }

// Text implements RenderContext.
func (c *ImageContext) Text() TextFactory { return c.text }

// Fill implements RenderContext.
func (c *ImageContext) Fill(shape Shape, brush Brush) {
	bez := shape.Path()
	if bez == nil || bez.IsEmpty() {
		return
	}
	c.rasterize(brush.SolidColor(), func(z *vector.Rasterizer) {
		for _, sp := range bez.subpaths() {
			if len(sp) < 3 {
				continue
			}
			z.MoveTo(c.local(sp[0]))
			for _, p := range sp[1:] {
				z.LineTo(c.local(p))
			}
			z.ClosePath()
		}
	})
}

// Stroke implements RenderContext. Each segment becomes a quad of the given
// width; wide polylines get square joins at interior points.
func (c *ImageContext) Stroke(shape Shape, brush Brush, width float64) {
	bez := shape.Path()
	if bez == nil || bez.IsEmpty() {
		return
	}
	if width <= 0 {
		width = 1
	}
	hw := width / 2
	c.rasterize(brush.SolidColor(), func(z *vector.Rasterizer) {
		for _, sp := range bez.subpaths() {
			for i := 1; i < len(sp); i++ {
				c.segmentQuad(z, sp[i-1], sp[i], hw)
				if width >= 2 && i < len(sp)-1 {
					c.joinSquare(z, sp[i], hw)
				}
			}
		}
	})
}

func (c *ImageContext) segmentQuad(z *vector.Rasterizer, p0, p1 Point, hw float64) {
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	n := Point{X: -dy / length * hw, Y: dx / length * hw}
	z.MoveTo(c.local(p0.Add(n)))
	z.LineTo(c.local(p1.Add(n)))
	z.LineTo(c.local(p1.Sub(n)))
	z.LineTo(c.local(p0.Sub(n)))
	z.ClosePath()
}

// joinSquare has the same winding as segmentQuad so overlaps do not cancel.
func (c *ImageContext) joinSquare(z *vector.Rasterizer, p Point, hw float64) {
	z.MoveTo(c.local(Point{X: p.X - hw, Y: p.Y - hw}))
	z.LineTo(c.local(Point{X: p.X - hw, Y: p.Y + hw}))
	z.LineTo(c.local(Point{X: p.X + hw, Y: p.Y + hw}))
	z.LineTo(c.local(Point{X: p.X + hw, Y: p.Y - hw}))
	z.ClosePath()
}

// local maps a context point to rasterizer coordinates, whose origin is the
// clip rectangle's corner.
func (c *ImageContext) local(p Point) (float32, float32) {
	return float32(c.origin.X + p.X - float64(c.clip.Min.X)),
		float32(c.origin.Y + p.Y - float64(c.clip.Min.Y))
}

func (c *ImageContext) rasterize(col Color, build func(z *vector.Rasterizer)) {
	if c.clip.Empty() {
		return
	}
	z := vector.NewRasterizer(c.clip.Dx(), c.clip.Dy())
	z.DrawOp = draw.Over
	build(z)
	z.Draw(c.dst, c.clip, image.NewUniform(col), image.Point{})
}

// DrawText implements RenderContext.
func (c *ImageContext) DrawText(layout TextLayout, pos Point) {
	l, ok := layout.(*textLayout)
	if !ok || c.clip.Empty() {
		return
	}
	face, err := c.text.face(l.family, l.fontSize)
	if err != nil {
		return
	}
	dst, _ := c.dst.SubImage(c.clip).(*image.RGBA)
	if dst == nil {
		return
	}
	ascent := face.Metrics().Ascent
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(l.color), Face: face}
	x := c.origin.X + pos.X
	y := c.origin.Y + pos.Y
	for i, line := range l.lines {
		top := y + float64(i)*l.lineHeight()
		d.Dot = fixed.Point26_6{X: toFixed(x), Y: toFixed(top) + ascent}
		d.DrawString(line)
	}
}

// Sub implements RenderContext.
func (c *ImageContext) Sub(r Rect) RenderContext {
	abs := image.Rect(
		int(math.Floor(c.origin.X+r.Min.X)), int(math.Floor(c.origin.Y+r.Min.Y)),
		int(math.Ceil(c.origin.X+r.Max.X)), int(math.Ceil(c.origin.Y+r.Max.Y)),
	)
	return &ImageContext{
		dst:    c.dst,
		origin: c.origin.Add(r.Min),
		clip:   abs.Intersect(c.clip),
		size:   r.Size(),
		text:   c.text,
	}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// imageTextFactory builds layouts measured with x/image opentype faces.
type imageTextFactory struct {
	fonts *FontManager
}

// FontFamily implements TextFactory.
func (f *imageTextFactory) FontFamily(name string) (FontFamily, bool) {
	return f.fonts.Lookup(name)
}

// NewTextLayout implements TextFactory.
func (f *imageTextFactory) NewTextLayout(text string) TextLayoutBuilder {
	return newLayoutBuilder(text, f.build)
}

func (f *imageTextFactory) build(b *layoutBuilder) (TextLayout, error) {
	l := newTextLayout(b)
	face, err := f.face(l.family, l.fontSize)
	if err != nil {
		return nil, err
	}
	width := 0.0
	for _, line := range l.lines {
		adv := font.MeasureString(face, line)
		width = math.Max(width, float64(adv)/64)
	}
	l.size = Size{Width: width, Height: float64(len(l.lines)) * l.lineHeight()}
	return l, nil
}

func (f *imageTextFactory) face(family FontFamily, size float64) (font.Face, error) {
	src, err := f.fonts.source(family)
	if err != nil {
		return nil, err
	}
	return src.openTypeFace(size)
}
