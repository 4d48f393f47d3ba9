package plotui

import (
	"errors"
	"reflect"
	"testing"

	"github.com/opd-ai/go-plotkit/pkg/backend"
	"github.com/opd-ai/go-plotkit/pkg/toolkit"
)

// recordingProgram records every hook invocation with its arguments.
type recordingProgram struct {
	calls   []string
	event   toolkit.Event
	data    *int
	evCtx   *toolkit.EventCtx
	lc      toolkit.LifeCycle
	oldData int
	newData int
	bc      toolkit.BoxConstraints
	size    toolkit.Size
	kept    PlottingCtx
}

func (p *recordingProgram) HandleEvent(ctx *toolkit.EventCtx, ev toolkit.Event, data *int, env *toolkit.Env) {
	p.calls = append(p.calls, "event")
	p.evCtx, p.event, p.data = ctx, ev, data
}

func (p *recordingProgram) HandleLifecycle(ctx *toolkit.LifeCycleCtx, ev toolkit.LifeCycle, data int, env *toolkit.Env) {
	p.calls = append(p.calls, "lifecycle")
	p.lc = ev
}

func (p *recordingProgram) LayoutPlot(ctx *toolkit.LayoutCtx, bc toolkit.BoxConstraints, data int, env *toolkit.Env) toolkit.Size {
	p.calls = append(p.calls, "layout")
	p.bc = bc
	return p.size
}

func (p *recordingProgram) UpdateSelf(ctx *toolkit.UpdateCtx, oldData, data int, env *toolkit.Env) {
	p.calls = append(p.calls, "update")
	p.oldData, p.newData = oldData, data
}

func (p *recordingProgram) DrawPlot(ctx PlottingCtx, data int, env *toolkit.Env) {
	p.calls = append(p.calls, "draw")
	p.kept = ctx
	_ = ctx.DrawPixel(backend.Coord{X: data, Y: data}, backend.Black)
}

func TestWidgetForwardsHooks(t *testing.T) {
	prog := &recordingProgram{size: toolkit.Size{Width: 120, Height: 80}}
	w := New[int](prog)
	env := toolkit.DefaultEnv()

	data := 7
	evCtx := toolkit.NewEventCtx(toolkit.Size{})
	ev := toolkit.MouseEvent{Kind: toolkit.MouseDown, Pos: toolkit.Point{X: 1, Y: 2}}
	w.Event(evCtx, ev, &data, env)
	if prog.evCtx != evCtx || prog.event != ev || prog.data != &data {
		t.Error("Event should forward its arguments unchanged")
	}

	w.Lifecycle(toolkit.NewLifeCycleCtx(toolkit.Size{}), toolkit.WidgetAdded{}, data, env)
	if prog.lc != (toolkit.WidgetAdded{}) {
		t.Errorf("lifecycle = %#v", prog.lc)
	}

	w.Update(toolkit.NewUpdateCtx(toolkit.Size{}), 1, 2, env)
	if prog.oldData != 1 || prog.newData != 2 {
		t.Errorf("update = %d->%d, want 1->2", prog.oldData, prog.newData)
	}

	bc := toolkit.Loose(toolkit.Size{Width: 300, Height: 300})
	got := w.Layout(toolkit.NewLayoutCtx(nil), bc, data, env)
	if got != prog.size || prog.bc != bc {
		t.Errorf("Layout() = %v with %v, want %v with %v", got, prog.bc, prog.size, bc)
	}

	rc := newRecordingContext(10, 10)
	w.Paint(rc.paintCtx(), 3, env)

	want := []string{"event", "lifecycle", "update", "layout", "draw"}
	if !reflect.DeepEqual(prog.calls, want) {
		t.Errorf("calls = %v, want %v", prog.calls, want)
	}
	if w.Program() != Program[int](prog) {
		t.Error("Program() should return the wrapped program")
	}
}

func TestDefaultLayoutIs500Square(t *testing.T) {
	w := New[int](drawFunc[int]{draw: func(PlottingCtx, int, *toolkit.Env) {}})
	for _, bc := range []toolkit.BoxConstraints{
		toolkit.Loose(toolkit.Size{Width: 100, Height: 100}),
		toolkit.Tight(toolkit.Size{Width: 800, Height: 600}),
		toolkit.Unbounded(),
	} {
		if got := w.Layout(toolkit.NewLayoutCtx(nil), bc, 0, toolkit.DefaultEnv()); got != (toolkit.Size{Width: 500, Height: 500}) {
			t.Errorf("Layout(%v) = %v, want 500x500", bc, got)
		}
	}
}

func TestBaseProgramHooksAreNoOps(t *testing.T) {
	var p BaseProgram[int]
	data := 1
	ctx := toolkit.NewEventCtx(toolkit.Size{})
	p.HandleEvent(ctx, toolkit.KeyEvent{}, &data, nil)
	p.HandleLifecycle(toolkit.NewLifeCycleCtx(toolkit.Size{}), toolkit.WidgetAdded{}, data, nil)
	p.UpdateSelf(toolkit.NewUpdateCtx(toolkit.Size{}), 1, 2, nil)
	if data != 1 || ctx.IsHandled() || ctx.PaintRequested() {
		t.Error("default hooks should not touch data or context")
	}
}

func TestPaintCreatesFreshContextEachCall(t *testing.T) {
	prog := &recordingProgram{}
	w := New[int](prog)
	rc := newRecordingContext(10, 10)

	w.Paint(rc.paintCtx(), 1, toolkit.DefaultEnv())
	first := prog.kept
	w.Paint(rc.paintCtx(), 2, toolkit.DefaultEnv())

	if first.scope == prog.kept.scope {
		t.Error("each paint should get its own PlottingCtx")
	}
	if len(rc.ops) != 2 {
		t.Errorf("ops = %v, want one pixel per paint", rc.kinds())
	}
}

func TestContextUnusableAfterPaint(t *testing.T) {
	prog := &recordingProgram{}
	w := New[int](prog)
	w.Paint(newRecordingContext(10, 10).paintCtx(), 0, toolkit.DefaultEnv())

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrContextReleased) {
			t.Errorf("recover() = %v, want ErrContextReleased", r)
		}
	}()
	prog.kept.Size()
	t.Error("Size() on a released context should panic")
}

func TestZeroContextPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != ErrContextReleased {
			t.Errorf("recover() = %v, want ErrContextReleased", r)
		}
	}()
	_ = PlottingCtx{}.DrawPixel(backend.Coord{}, backend.Black)
}

func TestPaintPropagatesForeignPanics(t *testing.T) {
	w := New[int](drawFunc[int]{draw: func(PlottingCtx, int, *toolkit.Env) {
		panic("program bug")
	}})
	defer func() {
		if r := recover(); r != "program bug" {
			t.Errorf("recover() = %v, want the program's panic", r)
		}
	}()
	w.Paint(newRecordingContext(10, 10).paintCtx(), 0, toolkit.DefaultEnv())
}

func TestPlotInsideFlex(t *testing.T) {
	prog := &recordingProgram{size: toolkit.Size{Width: 40, Height: 30}}
	col := toolkit.NewColumn[int]().WithSpacer(5).WithChild(New[int](prog))

	img := toolkit.RenderToImage[int](col, 2, nil, toolkit.Size{Width: 60, Height: 60})

	if c := img.RGBAAt(2, 7); c.R != 0 || c.A < 250 {
		t.Errorf("pixel at plot (2,2) = %v, want black", c)
	}
	if c := img.RGBAAt(2, 2); c.R < 250 {
		t.Errorf("pixel in spacer = %v, want background", c)
	}
}
