//go:build !noebiten

package toolkit

import (
	"reflect"
	"testing"
)

func newTestColumn() (*Flex[int], *recordWidget, *recordWidget) {
	top := &recordWidget{name: "top", size: Size{100, 50}}
	bottom := &recordWidget{name: "bottom", size: Size{80, 30}}
	col := NewColumn[int]().WithChild(top).WithSpacer(10).WithChild(bottom)
	return col, top, bottom
}

func TestFlexColumnLayout(t *testing.T) {
	col, top, bottom := newTestColumn()
	got := col.Layout(NewLayoutCtx(&mockFactory{}), Loose(Size{200, 300}), 0, DefaultEnv())

	if got != (Size{100, 90}) {
		t.Errorf("Layout() = %v, want 100x90", got)
	}
	if top.calls[0] != "layout {0 0}-{200 300}" {
		t.Errorf("top constraints = %q", top.calls[0])
	}
	if bottom.calls[0] != "layout {0 0}-{200 240}" {
		t.Errorf("bottom constraints = %q", bottom.calls[0])
	}
	if col.Len() != 3 {
		t.Errorf("Len() = %d, want 3", col.Len())
	}
}

func TestFlexChildSharesRemainingSpace(t *testing.T) {
	fixed := &recordWidget{size: Size{50, 50}}
	a := &recordWidget{size: Size{500, 500}}
	b := &recordWidget{size: Size{500, 500}}
	row := NewRow[int]().WithChild(fixed).WithFlexChild(a, 1).WithFlexChild(b, 3)

	got := row.Layout(NewLayoutCtx(&mockFactory{}), Tight(Size{250, 100}), 0, DefaultEnv())
	if got != (Size{250, 100}) {
		t.Errorf("Layout() = %v", got)
	}

	rc := newRecordingContext(got)
	row.Paint(NewPaintCtx(rc), 0, DefaultEnv())
	if a.calls[1] != "paint {50 100}" || b.calls[1] != "paint {150 100}" {
		t.Errorf("flex paints = %q, %q", a.calls[1], b.calls[1])
	}
}

func TestFlexRoutesPositionalEvents(t *testing.T) {
	col, top, bottom := newTestColumn()
	col.Layout(NewLayoutCtx(&mockFactory{}), Loose(Size{200, 300}), 0, DefaultEnv())

	data := 0
	ctx := NewEventCtx(Size{200, 300})
	col.Event(ctx, MouseEvent{Kind: MouseDown, Pos: Point{10, 65}, Button: ButtonLeft}, &data, DefaultEnv())

	if len(top.events) != 0 {
		t.Errorf("top received %v, want nothing", top.events)
	}
	want := MouseEvent{Kind: MouseDown, Pos: Point{10, 5}, Button: ButtonLeft}
	if len(bottom.events) != 1 || !reflect.DeepEqual(bottom.events[0], want) {
		t.Errorf("bottom received %v, want %v", bottom.events, want)
	}
}

func TestFlexBroadcastsUntilHandled(t *testing.T) {
	col, top, bottom := newTestColumn()
	top.handle = true

	data := 0
	ctx := NewEventCtx(Size{})
	col.Event(ctx, KeyEvent{Down: true}, &data, DefaultEnv())

	if len(top.events) != 1 || len(bottom.events) != 0 {
		t.Errorf("events top=%d bottom=%d, want 1 and 0", len(top.events), len(bottom.events))
	}
	if !ctx.IsHandled() {
		t.Error("handled flag should propagate to the parent")
	}
	if data != 1 || !ctx.LayoutRequested() {
		t.Error("child mutation and layout request should reach the parent")
	}
}

func TestFlexHotTracking(t *testing.T) {
	col, top, bottom := newTestColumn()
	col.Layout(NewLayoutCtx(&mockFactory{}), Loose(Size{200, 300}), 0, DefaultEnv())
	data := 0

	col.Event(NewEventCtx(Size{}), MouseEvent{Kind: MouseMove, Pos: Point{5, 5}}, &data, DefaultEnv())
	col.Event(NewEventCtx(Size{}), MouseEvent{Kind: MouseMove, Pos: Point{5, 70}}, &data, DefaultEnv())

	wantTop := []string{
		"layout {0 0}-{200 300}",
		"lifecycle toolkit.HotChanged{Hot:true}",
		"event toolkit.MouseEvent",
		"lifecycle toolkit.HotChanged{Hot:false}",
	}
	if !reflect.DeepEqual(top.calls, wantTop) {
		t.Errorf("top calls = %q, want %q", top.calls, wantTop)
	}
	if bottom.calls[len(bottom.calls)-2] != "lifecycle toolkit.HotChanged{Hot:true}" {
		t.Errorf("bottom calls = %q", bottom.calls)
	}
}

func TestFlexPaintsChildrenAtTheirOrigins(t *testing.T) {
	col, _, _ := newTestColumn()
	col.Layout(NewLayoutCtx(&mockFactory{}), Loose(Size{200, 300}), 0, DefaultEnv())
	col.children[0].widget.(*recordWidget).fill = White
	col.children[2].widget.(*recordWidget).fill = Black

	rc := newRecordingContext(Size{200, 300})
	col.Paint(NewPaintCtx(rc), 0, DefaultEnv())

	want := []string{
		"@0,0 fill toolkit.Rect #ffffffff",
		"@0,60 fill toolkit.Rect #000000ff",
	}
	if !reflect.DeepEqual(*rc.log, want) {
		t.Errorf("paint log = %q, want %q", *rc.log, want)
	}
}

func TestFlexLifecycleRewritesSizeChanged(t *testing.T) {
	col, top, bottom := newTestColumn()
	col.Layout(NewLayoutCtx(&mockFactory{}), Loose(Size{200, 300}), 0, DefaultEnv())
	col.Lifecycle(NewLifeCycleCtx(Size{}), SizeChanged{Size: Size{100, 90}}, 0, DefaultEnv())

	if got := top.calls[1]; got != "lifecycle toolkit.SizeChanged{Size:toolkit.Size{Width:100, Height:50}}" {
		t.Errorf("top lifecycle = %q", got)
	}
	if got := bottom.calls[1]; got != "lifecycle toolkit.SizeChanged{Size:toolkit.Size{Width:80, Height:30}}" {
		t.Errorf("bottom lifecycle = %q", got)
	}
}
