package plotui

import (
	"math"

	"github.com/opd-ai/go-plotkit/pkg/backend"
	"github.com/opd-ai/go-plotkit/pkg/toolkit"
)

// paintScope is the paint surface borrowed for one Widget.Paint call.
type paintScope struct {
	ctx      *toolkit.PaintCtx
	env      *toolkit.Env
	released bool
}

// PlottingCtx is a backend.DrawingBackend drawing on the paint context of a
// single paint call. It is passed by value to Program.DrawPlot and must not
// be used after DrawPlot returns.
//
// Every method returns nil. Toolkit failures abort the paint instead.
type PlottingCtx struct {
	scope *paintScope
}

var (
	_ backend.DrawingBackend = PlottingCtx{}
	_ backend.PolygonFiller  = PlottingCtx{}
)

// borrow returns the paint surface, panicking with ErrContextReleased once
// the paint call is over.
func (p PlottingCtx) borrow() (*toolkit.PaintCtx, *toolkit.Env) {
	if p.scope == nil || p.scope.released {
		panic(ErrContextReleased)
	}
	return p.scope.ctx, p.scope.env
}

// Env returns the theme of the current paint call.
func (p PlottingCtx) Env() *toolkit.Env {
	_, env := p.borrow()
	return env
}

// Size returns the paint region in whole pixels.
func (p PlottingCtx) Size() (width, height uint32) {
	ctx, _ := p.borrow()
	s := ctx.Size()
	return uint32(s.Width), uint32(s.Height)
}

// EnsurePrepared is a no-op.
func (p PlottingCtx) EnsurePrepared() error { return nil }

// Present is a no-op.
func (p PlottingCtx) Present() error { return nil }

// DrawPixel fills the unit square at point.
func (p PlottingCtx) DrawPixel(point backend.Coord, color backend.Color) error {
	ctx, _ := p.borrow()
	x, y := float64(point.X), float64(point.Y)
	ctx.Fill(toolkit.NewRect(x, y, x+1, y+1), toColor(color))
	return nil
}

// DrawLine strokes the segment from..to.
func (p PlottingCtx) DrawLine(from, to backend.Coord, style backend.Style) error {
	ctx, _ := p.borrow()
	line := toolkit.Line{P0: toPoint(from), P1: toPoint(to)}
	ctx.Stroke(line, toColor(style.Color()), float64(style.StrokeWidth()))
	return nil
}

// DrawRect fills the rectangle, or strokes its outline with a solid brush.
func (p PlottingCtx) DrawRect(upperLeft, bottomRight backend.Coord, style backend.Style, fill bool) error {
	ctx, _ := p.borrow()
	rect := toolkit.NewRect(float64(upperLeft.X), float64(upperLeft.Y), float64(bottomRight.X), float64(bottomRight.Y))
	color := toColor(style.Color())
	if fill {
		ctx.Fill(rect, color)
		return nil
	}
	brush := ctx.SolidBrush(color)
	ctx.Stroke(rect, brush, float64(style.StrokeWidth()))
	return nil
}

// DrawPath strokes a polyline through path. The path starts at the first
// point and then has a segment to every point, the first included. An empty
// path is still stroked, as a path with no elements.
func (p PlottingCtx) DrawPath(path []backend.Coord, style backend.Style) error {
	ctx, _ := p.borrow()
	points := append([]backend.Coord(nil), path...)
	bez := &toolkit.BezPath{}
	if len(points) > 0 {
		bez.MoveTo(toPoint(points[0]))
		for _, pt := range points {
			bez.LineTo(toPoint(pt))
		}
	}
	ctx.Stroke(bez, toColor(style.Color()), float64(style.StrokeWidth()))
	return nil
}

// DrawCircle fills the circle, or strokes its outline with a solid brush.
func (p PlottingCtx) DrawCircle(center backend.Coord, radius uint32, style backend.Style, fill bool) error {
	ctx, _ := p.borrow()
	circle := toolkit.Circle{Center: toPoint(center), Radius: float64(radius)}
	color := toColor(style.Color())
	if fill {
		ctx.Fill(circle, color)
		return nil
	}
	ctx.Stroke(circle, ctx.SolidBrush(color), float64(style.StrokeWidth()))
	return nil
}

// FillPolygon fills the closed polygon through vertices.
func (p PlottingCtx) FillPolygon(vertices []backend.Coord, style backend.Style) error {
	ctx, _ := p.borrow()
	bez := &toolkit.BezPath{}
	for i, v := range vertices {
		if i == 0 {
			bez.MoveTo(toPoint(v))
			continue
		}
		bez.LineTo(toPoint(v))
	}
	if len(vertices) > 0 {
		bez.ClosePath()
	}
	ctx.Fill(bez, toColor(style.Color()))
	return nil
}

// DrawText draws text centered on pos.
func (p PlottingCtx) DrawText(text string, style backend.TextStyle, pos backend.Coord) error {
	ctx, env := p.borrow()
	factory := ctx.Text()
	layout, err := factory.NewTextLayout(text).
		Font(resolveFamily(factory, style.Family()), fontSize(style, env)).
		TextColor(toColor(style.Color())).
		Build()
	if err != nil {
		abortPaint("draw text", err)
	}
	// Center on the whole-pixel size EstimateTextSize reports.
	size := layout.Size()
	half := toolkit.Point{X: math.Trunc(size.Width) / 2, Y: math.Trunc(size.Height) / 2}
	origin := toPoint(pos).Sub(half)
	ctx.DrawText(layout, origin)
	return nil
}

// EstimateTextSize measures text the way DrawText lays it out.
func (p PlottingCtx) EstimateTextSize(text string, style backend.TextStyle) (width, height uint32, err error) {
	ctx, env := p.borrow()
	factory := ctx.Text()
	label := toolkit.NewLabel(text)
	label.SetFont(toolkit.NewFontDescriptor(resolveFamily(factory, style.Family())))
	label.SetTextSize(fontSize(style, env))
	if err := label.RebuildIfNeeded(factory, env); err != nil {
		abortPaint("estimate text size", err)
	}
	size := label.Size()
	return uint32(size.Width), uint32(size.Height), nil
}

// fontSize is the style's size, or the theme size when the style has none.
func fontSize(style backend.TextStyle, env *toolkit.Env) float64 {
	if size := style.Size(); size > 0 {
		return size
	}
	if env != nil && env.FontSize > 0 {
		return env.FontSize
	}
	return toolkit.DefaultFontSize
}

// resolveFamily maps a charting font family onto the toolkit, falling back
// to serif for families the toolkit does not know.
func resolveFamily(factory toolkit.TextFactory, family backend.FontFamily) toolkit.FontFamily {
	if f, ok := factory.FontFamily(string(family)); ok {
		return f
	}
	return toolkit.SerifFamily
}

// toColor packs a charting color as 0xRRGGBBAA. Alpha is clamped to [0, 1]
// and NaN counts as 0; the scaled alpha is rounded to the nearest byte.
func toColor(c backend.Color) toolkit.Color {
	alpha := c.Alpha
	switch {
	case math.IsNaN(alpha) || alpha < 0:
		alpha = 0
	case alpha > 1:
		alpha = 1
	}
	return toolkit.RGBA8(c.R, c.G, c.B, uint8(math.Round(255*alpha)))
}

func toPoint(c backend.Coord) toolkit.Point {
	return toolkit.Point{X: float64(c.X), Y: float64(c.Y)}
}
