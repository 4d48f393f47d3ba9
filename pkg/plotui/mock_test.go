package plotui

import (
	"fmt"

	"github.com/opd-ai/go-plotkit/pkg/toolkit"
)

// op is one call recorded by recordingContext.
type op struct {
	kind  string
	shape toolkit.Shape
	brush toolkit.Brush
	width float64
	text  string
	pos   toolkit.Point
}

// recordingContext is a toolkit.RenderContext that records every call.
type recordingContext struct {
	size    toolkit.Size
	ops     []op
	factory *mockFactory
}

func newRecordingContext(w, h float64) *recordingContext {
	return &recordingContext{size: toolkit.Size{Width: w, Height: h}, factory: &mockFactory{}}
}

func (r *recordingContext) Size() toolkit.Size { return r.size }

func (r *recordingContext) Fill(shape toolkit.Shape, brush toolkit.Brush) {
	r.ops = append(r.ops, op{kind: "fill", shape: shape, brush: brush})
}

func (r *recordingContext) Stroke(shape toolkit.Shape, brush toolkit.Brush, width float64) {
	r.ops = append(r.ops, op{kind: "stroke", shape: shape, brush: brush, width: width})
}

func (r *recordingContext) SolidBrush(c toolkit.Color) toolkit.Brush {
	r.ops = append(r.ops, op{kind: "brush", brush: c})
	return toolkit.NewSolidBrush(c)
}

func (r *recordingContext) Text() toolkit.TextFactory { return r.factory }

func (r *recordingContext) DrawText(layout toolkit.TextLayout, pos toolkit.Point) {
	r.ops = append(r.ops, op{kind: "text", text: layout.Text(), pos: pos})
}

func (r *recordingContext) Sub(rect toolkit.Rect) toolkit.RenderContext { return r }

func (r *recordingContext) paintCtx() *toolkit.PaintCtx { return toolkit.NewPaintCtx(r) }

// kinds returns the recorded op kinds in order.
func (r *recordingContext) kinds() []string {
	out := make([]string, len(r.ops))
	for i, o := range r.ops {
		out[i] = o.kind
	}
	return out
}

// mockFactory lays out text at 6x10 units per character and knows the
// families listed in known (all families when known is nil).
type mockFactory struct {
	known  map[string]bool
	fail   error
	builds []string
}

func (f *mockFactory) FontFamily(name string) (toolkit.FontFamily, bool) {
	if f.known != nil && !f.known[name] {
		return toolkit.FontFamily{}, false
	}
	switch name {
	case "serif":
		return toolkit.SerifFamily, true
	case "monospace":
		return toolkit.MonospaceFamily, true
	}
	return toolkit.SansSerifFamily, true
}

func (f *mockFactory) NewTextLayout(text string) toolkit.TextLayoutBuilder {
	return &mockBuilder{factory: f, text: text}
}

type mockBuilder struct {
	factory *mockFactory
	text    string
	family  toolkit.FontFamily
	size    float64
	color   toolkit.Color
}

func (b *mockBuilder) Font(family toolkit.FontFamily, size float64) toolkit.TextLayoutBuilder {
	b.family, b.size = family, size
	return b
}

func (b *mockBuilder) TextColor(c toolkit.Color) toolkit.TextLayoutBuilder {
	b.color = c
	return b
}

func (b *mockBuilder) Build() (toolkit.TextLayout, error) {
	b.factory.builds = append(b.factory.builds, fmt.Sprintf("%s/%s/%g/%v", b.text, b.family.Name(), b.size, b.color))
	if b.factory.fail != nil {
		return nil, b.factory.fail
	}
	return mockLayout{text: b.text, size: toolkit.Size{Width: float64(6 * len(b.text)), Height: 10}}, nil
}

type mockLayout struct {
	text string
	size toolkit.Size
}

func (l mockLayout) Text() string       { return l.text }
func (l mockLayout) Size() toolkit.Size { return l.size }

// recordingLogger implements toolkit.Logger and keeps warnings.
type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Debug(msg string, args ...any) {}
func (l *recordingLogger) Info(msg string, args ...any)  {}
func (l *recordingLogger) Warn(msg string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprint(append([]any{msg}, args...)...))
}
func (l *recordingLogger) Error(msg string, args ...any) {}

// drawFunc is a Program whose DrawPlot runs a closure.
type drawFunc[T any] struct {
	BaseProgram[T]
	draw func(ctx PlottingCtx, data T, env *toolkit.Env)
}

func (d drawFunc[T]) DrawPlot(ctx PlottingCtx, data T, env *toolkit.Env) {
	d.draw(ctx, data, env)
}

// withCtx runs fn with a PlottingCtx over rc, the way Widget.Paint does.
func withCtx(rc *recordingContext, fn func(PlottingCtx)) {
	paintWith(rc, toolkit.DefaultEnv(), fn)
}

// paintWith runs fn inside one widget paint on rc.
func paintWith(rc toolkit.RenderContext, env *toolkit.Env, fn func(PlottingCtx)) {
	w := New[int](drawFunc[int]{draw: func(ctx PlottingCtx, _ int, _ *toolkit.Env) { fn(ctx) }})
	w.Paint(toolkit.NewPaintCtx(rc), 0, env)
}

// textPosContext is a real render context that also records where text
// layouts are drawn.
type textPosContext struct {
	*toolkit.ImageContext
	positions []toolkit.Point
}

func (c *textPosContext) DrawText(layout toolkit.TextLayout, pos toolkit.Point) {
	c.positions = append(c.positions, pos)
	c.ImageContext.DrawText(layout, pos)
}
