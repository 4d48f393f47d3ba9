//go:build !noebiten

package toolkit

import (
	"errors"
	"fmt"
)

// mockFactory is a TextFactory measuring every glyph as 6x10.
type mockFactory struct {
	builds []string
	fail   error
}

func (f *mockFactory) FontFamily(name string) (FontFamily, bool) {
	if name == "missing" {
		return FontFamily{}, false
	}
	return FontFamily{name: name}, true
}

func (f *mockFactory) NewTextLayout(text string) TextLayoutBuilder {
	return newLayoutBuilder(text, func(b *layoutBuilder) (TextLayout, error) {
		f.builds = append(f.builds, fmt.Sprintf("%s/%s/%g/%v", b.text, b.family.Name(), b.size, b.color))
		if f.fail != nil {
			return nil, f.fail
		}
		l := newTextLayout(b)
		l.size = Size{Width: float64(6 * len(b.text)), Height: 10}
		return l, nil
	})
}

// recordingContext is a RenderContext that logs every call. Sub contexts
// share the log and prefix their entries with their origin.
type recordingContext struct {
	log    *[]string
	origin Point
	size   Size
	text   TextFactory
}

func newRecordingContext(size Size) *recordingContext {
	return &recordingContext{log: new([]string), size: size, text: &mockFactory{}}
}

func (r *recordingContext) record(format string, args ...any) {
	*r.log = append(*r.log, fmt.Sprintf("@%g,%g ", r.origin.X, r.origin.Y)+fmt.Sprintf(format, args...))
}

func (r *recordingContext) Size() Size { return r.size }

func (r *recordingContext) Fill(shape Shape, brush Brush) {
	r.record("fill %T %v", shape, brush.SolidColor())
}

func (r *recordingContext) Stroke(shape Shape, brush Brush, width float64) {
	r.record("stroke %T %v %g", shape, brush.SolidColor(), width)
}

func (r *recordingContext) SolidBrush(c Color) Brush { return NewSolidBrush(c) }

func (r *recordingContext) Text() TextFactory { return r.text }

func (r *recordingContext) DrawText(layout TextLayout, pos Point) {
	r.record("text %q %v", layout.Text(), pos)
}

func (r *recordingContext) Sub(rect Rect) RenderContext {
	return &recordingContext{log: r.log, origin: r.origin.Add(rect.Min), size: rect.Size(), text: r.text}
}

// recordWidget logs every Widget call and returns a fixed size from Layout.
type recordWidget struct {
	name   string
	size   Size
	calls  []string
	events []Event
	handle bool
	fill   Color
}

func (w *recordWidget) Event(ctx *EventCtx, ev Event, data *int, env *Env) {
	w.events = append(w.events, ev)
	w.calls = append(w.calls, fmt.Sprintf("event %T", ev))
	if w.handle {
		ctx.SetHandled()
	}
	if _, ok := ev.(KeyEvent); ok {
		*data++
		ctx.RequestLayout()
	}
}

func (w *recordWidget) Lifecycle(ctx *LifeCycleCtx, ev LifeCycle, data int, env *Env) {
	w.calls = append(w.calls, fmt.Sprintf("lifecycle %#v", ev))
}

func (w *recordWidget) Update(ctx *UpdateCtx, oldData, data int, env *Env) {
	w.calls = append(w.calls, fmt.Sprintf("update %d->%d", oldData, data))
}

func (w *recordWidget) Layout(ctx *LayoutCtx, bc BoxConstraints, data int, env *Env) Size {
	w.calls = append(w.calls, fmt.Sprintf("layout %v-%v", bc.Min, bc.Max))
	return w.size
}

func (w *recordWidget) Paint(ctx *PaintCtx, data int, env *Env) {
	w.calls = append(w.calls, fmt.Sprintf("paint %v", ctx.Size()))
	if w.fill != 0 {
		ctx.Fill(RectFromOriginSize(Point{}, ctx.Size()), w.fill)
	}
}

var errBuild = errors.New("build failed")
