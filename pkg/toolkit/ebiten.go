package toolkit

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	etext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// whitePixel is the 1x1 source image for DrawTriangles.
var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return img
}()

// EbitenContext is a RenderContext drawing onto an ebiten image with vector
// paths and text/v2.
type EbitenContext struct {
	dst       *ebiten.Image
	origin    Point
	size      Size
	text      *ebitenTextFactory
	antiAlias bool
}

// NewEbitenContext returns a context covering all of dst.
func NewEbitenContext(dst *ebiten.Image, fonts *FontManager) *EbitenContext {
	b := dst.Bounds()
	return &EbitenContext{
		dst:       dst,
		origin:    Point{X: float64(b.Min.X), Y: float64(b.Min.Y)},
		size:      Size{Width: float64(b.Dx()), Height: float64(b.Dy())},
		text:      &ebitenTextFactory{fonts: fonts},
		antiAlias: true,
	}
}

// Size implements RenderContext.
func (c *EbitenContext) Size() Size { return c.size }

// SolidBrush implements RenderContext.
func (c *EbitenContext) SolidBrush(col Color) Brush { return NewSolidBrush(col) }

// Text implements RenderContext.
func (c *EbitenContext) Text() TextFactory { return c.text }

// Fill implements RenderContext.
func (c *EbitenContext) Fill(shape Shape, brush Brush) {
	path, ok := c.vectorPath(shape)
	if !ok {
		return
	}
	vertices, indices := path.AppendVerticesAndIndicesForFilling(nil, nil)
	c.draw(vertices, indices, brush.SolidColor(), ebiten.FillRuleNonZero)
}

// Stroke implements RenderContext.
func (c *EbitenContext) Stroke(shape Shape, brush Brush, width float64) {
	path, ok := c.vectorPath(shape)
	if !ok {
		return
	}
	if width <= 0 {
		width = 1
	}
	opts := &vector.StrokeOptions{
		Width:      float32(width),
		LineJoin:   vector.LineJoinMiter,
		MiterLimit: 4,
	}
	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, opts)
	c.draw(vertices, indices, brush.SolidColor(), ebiten.FillRuleFillAll)
}

// DrawText implements RenderContext.
func (c *EbitenContext) DrawText(layout TextLayout, pos Point) {
	l, ok := layout.(*textLayout)
	if !ok {
		return
	}
	face, err := c.text.face(l.family, l.fontSize)
	if err != nil {
		return
	}
	op := &etext.DrawOptions{}
	op.GeoM.Translate(c.origin.X+pos.X, c.origin.Y+pos.Y)
	op.ColorScale.ScaleWithColor(l.color)
	op.LineSpacing = l.lineHeight()
	etext.Draw(c.dst, l.text, face, op)
}

// Sub implements RenderContext.
func (c *EbitenContext) Sub(r Rect) RenderContext {
	abs := image.Rect(
		int(math.Floor(c.origin.X+r.Min.X)), int(math.Floor(c.origin.Y+r.Min.Y)),
		int(math.Ceil(c.origin.X+r.Max.X)), int(math.Ceil(c.origin.Y+r.Max.Y)),
	)
	abs = abs.Intersect(c.dst.Bounds())
	dst, _ := c.dst.SubImage(abs).(*ebiten.Image)
	if dst == nil {
		dst = c.dst
	}
	return &EbitenContext{
		dst:       dst,
		origin:    c.origin.Add(r.Min),
		size:      r.Size(),
		text:      c.text,
		antiAlias: c.antiAlias,
	}
}

// vectorPath converts shape into an ebiten path in destination
// coordinates. Sub-images keep the coordinates of their parent.
func (c *EbitenContext) vectorPath(shape Shape) (*vector.Path, bool) {
	var path vector.Path
	if circle, ok := shape.(Circle); ok {
		if circle.Radius <= 0 {
			return nil, false
		}
		path.Arc(float32(c.origin.X+circle.Center.X), float32(c.origin.Y+circle.Center.Y),
			float32(circle.Radius), 0, 2*math.Pi, vector.Clockwise)
		path.Close()
		return &path, true
	}
	bez := shape.Path()
	if bez == nil || bez.IsEmpty() {
		return nil, false
	}
	for _, el := range bez.Elements() {
		x := float32(c.origin.X + el.Point.X)
		y := float32(c.origin.Y + el.Point.Y)
		switch el.Op {
		case OpMoveTo:
			path.MoveTo(x, y)
		case OpLineTo:
			path.LineTo(x, y)
		case OpClosePath:
			path.Close()
		}
	}
	return &path, true
}

func (c *EbitenContext) draw(vertices []ebiten.Vertex, indices []uint16, col Color, rule ebiten.FillRule) {
	if len(indices) == 0 {
		return
	}
	r8, g8, b8, a8 := col.Components()
	r := float32(r8) / 255
	g := float32(g8) / 255
	b := float32(b8) / 255
	a := float32(a8) / 255
	for i := range vertices {
		vertices[i].ColorR = r
		vertices[i].ColorG = g
		vertices[i].ColorB = b
		vertices[i].ColorA = a
	}
	c.dst.DrawTriangles(vertices, indices, whitePixel, &ebiten.DrawTrianglesOptions{
		AntiAlias: c.antiAlias,
		FillRule:  rule,
	})
}

// ebitenTextFactory builds layouts measured with ebiten's text/v2 shaper.
type ebitenTextFactory struct {
	fonts *FontManager
}

// FontFamily implements TextFactory.
func (f *ebitenTextFactory) FontFamily(name string) (FontFamily, bool) {
	return f.fonts.Lookup(name)
}

// NewTextLayout implements TextFactory.
func (f *ebitenTextFactory) NewTextLayout(text string) TextLayoutBuilder {
	return newLayoutBuilder(text, f.build)
}

func (f *ebitenTextFactory) build(b *layoutBuilder) (TextLayout, error) {
	l := newTextLayout(b)
	face, err := f.face(l.family, l.fontSize)
	if err != nil {
		return nil, err
	}
	w, h := etext.Measure(l.text, face, l.lineHeight())
	l.size = Size{Width: w, Height: h}
	return l, nil
}

func (f *ebitenTextFactory) face(family FontFamily, size float64) (*etext.GoTextFace, error) {
	src, err := f.fonts.source(family)
	if err != nil {
		return nil, err
	}
	goText, err := src.goTextSource()
	if err != nil {
		return nil, err
	}
	return &etext.GoTextFace{Source: goText, Size: size}, nil
}
