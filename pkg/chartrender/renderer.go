// Package chartrender draws go-chart charts on a backend.DrawingBackend.
//
// go-chart renders through its chart.Renderer interface, normally onto a
// PNG or SVG writer. Renderer implements that interface on top of the
// drawing-backend contract, so a chart can be drawn inside a plotui widget:
//
//	func (p *myPlot) DrawPlot(ctx plotui.PlottingCtx, data []float64, env *toolkit.Env) {
//		w, h := ctx.Size()
//		c := chart.Chart{Width: int(w), Height: int(h), Series: ...}
//		_ = c.Render(chartrender.Provider(ctx), io.Discard)
//	}
package chartrender

import (
	"fmt"
	"io"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/opd-ai/go-plotkit/pkg/backend"
)

// Curves and arcs are flattened into segments no longer than this many
// radians of arc, and quadratic curves into a fixed number of steps.
const (
	arcStep   = math.Pi / 32
	quadSteps = 16
)

// subpath is one MoveTo-started run of points.
type subpath struct {
	points []backend.Coord
	closed bool
}

// circle is a Circle call waiting for Fill or Stroke.
type circle struct {
	center backend.Coord
	radius uint32
}

// Renderer implements chart.Renderer on a DrawingBackend. Drawing errors
// are kept and the first one is returned from Save.
type Renderer struct {
	b   backend.DrawingBackend
	err error

	dpi         float64
	className   string
	strokeColor drawing.Color
	fillColor   drawing.Color
	strokeWidth float64
	dashArray   []float64
	font        *truetype.Font
	fontColor   drawing.Color
	fontSize    float64
	rotation    *float64

	paths   []subpath
	circles []circle
}

var _ chart.Renderer = (*Renderer)(nil)

// New returns a renderer drawing on b.
func New(b backend.DrawingBackend) *Renderer {
	r := &Renderer{b: b, dpi: chart.DefaultDPI}
	r.ResetStyle()
	return r
}

// Provider returns a chart.RendererProvider drawing every chart on b. The
// chart's own width and height are not used; size the chart from b.Size.
func Provider(b backend.DrawingBackend) chart.RendererProvider {
	return func(width, height int) (chart.Renderer, error) {
		if err := b.EnsurePrepared(); err != nil {
			return nil, fmt.Errorf("failed to prepare backend: %w", err)
		}
		return New(b), nil
	}
}

// Err returns the first drawing error, if any.
func (r *Renderer) Err() error { return r.err }

func (r *Renderer) keep(err error) {
	if err != nil && r.err == nil {
		r.err = err
	}
}

// ResetStyle implements chart.Renderer.
func (r *Renderer) ResetStyle() {
	r.className = ""
	r.strokeColor = drawing.ColorTransparent
	r.fillColor = drawing.ColorTransparent
	r.strokeWidth = chart.DefaultStrokeWidth
	r.dashArray = nil
	r.fontColor = drawing.ColorTransparent
	r.fontSize = chart.DefaultFontSize
	r.rotation = nil
}

// GetDPI implements chart.Renderer.
func (r *Renderer) GetDPI() float64 { return r.dpi }

// SetDPI implements chart.Renderer.
func (r *Renderer) SetDPI(dpi float64) { r.dpi = dpi }

// SetClassName implements chart.Renderer. Class names only matter for SVG
// output and are ignored.
func (r *Renderer) SetClassName(name string) { r.className = name }

// SetStrokeColor implements chart.Renderer.
func (r *Renderer) SetStrokeColor(c drawing.Color) { r.strokeColor = c }

// SetFillColor implements chart.Renderer.
func (r *Renderer) SetFillColor(c drawing.Color) { r.fillColor = c }

// SetStrokeWidth implements chart.Renderer.
func (r *Renderer) SetStrokeWidth(width float64) { r.strokeWidth = width }

// SetStrokeDashArray implements chart.Renderer. Dashes are drawn solid.
func (r *Renderer) SetStrokeDashArray(dashArray []float64) { r.dashArray = dashArray }

// MoveTo implements chart.Renderer.
func (r *Renderer) MoveTo(x, y int) {
	r.paths = append(r.paths, subpath{points: []backend.Coord{{X: x, Y: y}}})
}

// LineTo implements chart.Renderer.
func (r *Renderer) LineTo(x, y int) {
	r.lineTo(backend.Coord{X: x, Y: y})
}

func (r *Renderer) lineTo(c backend.Coord) {
	if len(r.paths) == 0 || r.paths[len(r.paths)-1].closed {
		r.paths = append(r.paths, subpath{})
	}
	last := &r.paths[len(r.paths)-1]
	last.points = append(last.points, c)
}

func (r *Renderer) current() (backend.Coord, bool) {
	if len(r.paths) == 0 {
		return backend.Coord{}, false
	}
	pts := r.paths[len(r.paths)-1].points
	if len(pts) == 0 {
		return backend.Coord{}, false
	}
	return pts[len(pts)-1], true
}

// QuadCurveTo implements chart.Renderer with a flattened curve.
func (r *Renderer) QuadCurveTo(cx, cy, x, y int) {
	p0, ok := r.current()
	if !ok {
		r.MoveTo(x, y)
		return
	}
	for i := 1; i <= quadSteps; i++ {
		t := float64(i) / quadSteps
		u := 1 - t
		px := u*u*float64(p0.X) + 2*u*t*float64(cx) + t*t*float64(x)
		py := u*u*float64(p0.Y) + 2*u*t*float64(cy) + t*t*float64(y)
		r.lineTo(backend.Coord{X: int(math.Round(px)), Y: int(math.Round(py))})
	}
}

// ArcTo implements chart.Renderer with a flattened elliptical arc. A line
// joins the current point to the start of the arc.
func (r *Renderer) ArcTo(cx, cy int, rx, ry, startAngle, delta float64) {
	steps := int(math.Ceil(math.Abs(delta) / arcStep))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		a := startAngle + delta*float64(i)/float64(steps)
		pt := backend.Coord{
			X: int(math.Round(float64(cx) + rx*math.Cos(a))),
			Y: int(math.Round(float64(cy) + ry*math.Sin(a))),
		}
		if _, ok := r.current(); !ok && i == 0 {
			r.MoveTo(pt.X, pt.Y)
			continue
		}
		r.lineTo(pt)
	}
}

// Close implements chart.Renderer.
func (r *Renderer) Close() {
	if len(r.paths) == 0 {
		return
	}
	last := &r.paths[len(r.paths)-1]
	if len(last.points) > 0 && !last.closed {
		last.points = append(last.points, last.points[0])
		last.closed = true
	}
}

// Circle implements chart.Renderer. The circle is drawn by the next Fill,
// Stroke or FillStroke.
func (r *Renderer) Circle(radius float64, x, y int) {
	r.circles = append(r.circles, circle{
		center: backend.Coord{X: x, Y: y},
		radius: uint32(math.Max(0, math.Round(radius))),
	})
}

// Stroke implements chart.Renderer.
func (r *Renderer) Stroke() {
	r.stroke()
	r.clearPath()
}

// Fill implements chart.Renderer.
func (r *Renderer) Fill() {
	r.fill()
	r.clearPath()
}

// FillStroke implements chart.Renderer.
func (r *Renderer) FillStroke() {
	r.fill()
	r.stroke()
	r.clearPath()
}

func (r *Renderer) stroke() {
	if r.strokeWidth <= 0 || r.strokeColor.A == 0 {
		return
	}
	style := backend.Stroke(toColor(r.strokeColor)).WithWidth(strokeWidth(r.strokeWidth))
	for _, p := range r.paths {
		if len(p.points) > 1 {
			r.keep(r.b.DrawPath(p.points, style))
		}
	}
	for _, c := range r.circles {
		r.keep(r.b.DrawCircle(c.center, c.radius, style, false))
	}
}

func (r *Renderer) fill() {
	if r.fillColor.A == 0 {
		return
	}
	style := backend.Filled(toColor(r.fillColor))
	for _, p := range r.paths {
		if len(p.points) > 2 {
			r.keep(backend.FillPolygon(r.b, p.points, style))
		}
	}
	for _, c := range r.circles {
		r.keep(r.b.DrawCircle(c.center, c.radius, style, true))
	}
}

func (r *Renderer) clearPath() {
	r.paths = r.paths[:0]
	r.circles = r.circles[:0]
}

// SetFont implements chart.Renderer.
func (r *Renderer) SetFont(f *truetype.Font) { r.font = f }

// SetFontColor implements chart.Renderer.
func (r *Renderer) SetFontColor(c drawing.Color) { r.fontColor = c }

// SetFontSize implements chart.Renderer.
func (r *Renderer) SetFontSize(size float64) { r.fontSize = size }

// SetTextRotation implements chart.Renderer. Rotation is recorded but text
// is always drawn horizontally.
func (r *Renderer) SetTextRotation(radians float64) { r.rotation = &radians }

// ClearTextRotation implements chart.Renderer.
func (r *Renderer) ClearTextRotation() { r.rotation = nil }

// TextRotation returns the rotation set by SetTextRotation.
func (r *Renderer) TextRotation() (float64, bool) {
	if r.rotation == nil {
		return 0, false
	}
	return *r.rotation, true
}

// Text implements chart.Renderer. (x, y) is the left end of the baseline;
// the backend centers text on its anchor, so the anchor is moved to the
// middle of the measured box.
func (r *Renderer) Text(body string, x, y int) {
	style := r.textStyle()
	w, h, err := r.b.EstimateTextSize(body, style)
	if err != nil {
		r.keep(err)
		return
	}
	center := backend.Coord{X: x + int(w/2), Y: y - int(h/2)}
	r.keep(r.b.DrawText(body, style, center))
}

// MeasureText implements chart.Renderer.
func (r *Renderer) MeasureText(body string) chart.Box {
	w, h, err := r.b.EstimateTextSize(body, r.textStyle())
	if err != nil {
		r.keep(err)
		return chart.Box{}
	}
	return chart.Box{Right: int(w), Bottom: int(h)}
}

// textStyle converts the font state. go-chart sizes are points at the
// renderer DPI.
func (r *Renderer) textStyle() backend.TextStyleSpec {
	return backend.TextStyleSpec{
		FontFamily: fontFamily(r.font),
		FontSize:   r.fontSize * r.dpi / 72,
		FontColor:  toColor(r.fontColor),
	}
}

// Save implements chart.Renderer by presenting the backend. Nothing is
// written to w.
func (r *Renderer) Save(w io.Writer) error {
	r.keep(r.b.Present())
	if r.err != nil {
		return fmt.Errorf("failed to render chart: %w", r.err)
	}
	return nil
}

func fontFamily(f *truetype.Font) backend.FontFamily {
	if f == nil {
		return backend.SansSerif
	}
	if name := f.Name(truetype.NameIDFontFamily); name != "" {
		return backend.FontFamily(name)
	}
	return backend.SansSerif
}

func strokeWidth(w float64) uint32 {
	return uint32(math.Max(1, math.Round(w)))
}

func toColor(c drawing.Color) backend.Color {
	return backend.RGBA(c.R, c.G, c.B, float64(c.A)/255)
}
