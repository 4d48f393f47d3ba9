package toolkit

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Widget is a retained-mode UI element bound to application data of type T.
// The host calls the methods in toolkit order: Lifecycle(WidgetAdded) once,
// then Layout before the first Paint, and any mix of Event, Update, Layout
// and Paint afterwards.
type Widget[T any] interface {
	// Event handles an input event. It may mutate data.
	Event(ctx *EventCtx, ev Event, data *T, env *Env)
	// Lifecycle handles a notification about the widget itself.
	Lifecycle(ctx *LifeCycleCtx, ev LifeCycle, data T, env *Env)
	// Update is called when the application data changed.
	Update(ctx *UpdateCtx, oldData, data T, env *Env)
	// Layout returns the widget's size within bc.
	Layout(ctx *LayoutCtx, bc BoxConstraints, data T, env *Env) Size
	// Paint draws the widget.
	Paint(ctx *PaintCtx, data T, env *Env)
}

// requests collects repaint and relayout requests raised while handling a
// pass. Child contexts share their parent's requests.
type requests struct {
	paint  bool
	layout bool
}

// EventCtx is passed to Widget.Event.
type EventCtx struct {
	req     *requests
	size    Size
	hot     bool
	handled bool
}

// NewEventCtx returns a root event context for a widget of the given size.
func NewEventCtx(size Size) *EventCtx {
	return &EventCtx{req: &requests{}, size: size}
}

// RequestPaint asks the host to repaint.
func (c *EventCtx) RequestPaint() { c.req.paint = true }

// RequestLayout asks the host to run layout before the next paint.
func (c *EventCtx) RequestLayout() { c.req.layout = true; c.req.paint = true }

// SetHandled stops the event from propagating further.
func (c *EventCtx) SetHandled() { c.handled = true }

// IsHandled reports whether a widget handled the event.
func (c *EventCtx) IsHandled() bool { return c.handled }

// IsHot reports whether the pointer is over the widget.
func (c *EventCtx) IsHot() bool { return c.hot }

// Size returns the widget's size from the last layout.
func (c *EventCtx) Size() Size { return c.size }

// PaintRequested reports whether a repaint was requested.
func (c *EventCtx) PaintRequested() bool { return c.req.paint }

// LayoutRequested reports whether a relayout was requested.
func (c *EventCtx) LayoutRequested() bool { return c.req.layout }

func (c *EventCtx) child(size Size, hot bool) *EventCtx {
	return &EventCtx{req: c.req, size: size, hot: hot}
}

// LifeCycleCtx is passed to Widget.Lifecycle.
type LifeCycleCtx struct {
	req  *requests
	size Size
}

// NewLifeCycleCtx returns a root lifecycle context.
func NewLifeCycleCtx(size Size) *LifeCycleCtx {
	return &LifeCycleCtx{req: &requests{}, size: size}
}

// RequestPaint asks the host to repaint.
func (c *LifeCycleCtx) RequestPaint() { c.req.paint = true }

// RequestLayout asks the host to run layout before the next paint.
func (c *LifeCycleCtx) RequestLayout() { c.req.layout = true; c.req.paint = true }

// Size returns the widget's size from the last layout.
func (c *LifeCycleCtx) Size() Size { return c.size }

// PaintRequested reports whether a repaint was requested.
func (c *LifeCycleCtx) PaintRequested() bool { return c.req.paint }

// LayoutRequested reports whether a relayout was requested.
func (c *LifeCycleCtx) LayoutRequested() bool { return c.req.layout }

func (c *LifeCycleCtx) child(size Size) *LifeCycleCtx {
	return &LifeCycleCtx{req: c.req, size: size}
}

// UpdateCtx is passed to Widget.Update.
type UpdateCtx struct {
	req  *requests
	size Size
}

// NewUpdateCtx returns a root update context.
func NewUpdateCtx(size Size) *UpdateCtx {
	return &UpdateCtx{req: &requests{}, size: size}
}

// RequestPaint asks the host to repaint.
func (c *UpdateCtx) RequestPaint() { c.req.paint = true }

// RequestLayout asks the host to run layout before the next paint.
func (c *UpdateCtx) RequestLayout() { c.req.layout = true; c.req.paint = true }

// Size returns the widget's size from the last layout.
func (c *UpdateCtx) Size() Size { return c.size }

// PaintRequested reports whether a repaint was requested.
func (c *UpdateCtx) PaintRequested() bool { return c.req.paint }

// LayoutRequested reports whether a relayout was requested.
func (c *UpdateCtx) LayoutRequested() bool { return c.req.layout }

func (c *UpdateCtx) child(size Size) *UpdateCtx {
	return &UpdateCtx{req: c.req, size: size}
}

// LayoutCtx is passed to Widget.Layout.
type LayoutCtx struct {
	text TextFactory
}

// NewLayoutCtx returns a layout context measuring text with factory.
func NewLayoutCtx(factory TextFactory) *LayoutCtx {
	return &LayoutCtx{text: factory}
}

// Text returns the factory for measuring text during layout.
func (c *LayoutCtx) Text() TextFactory { return c.text }

// PaintCtx is passed to Widget.Paint. It forwards to a RenderContext whose
// origin is the widget's top-left corner.
type PaintCtx struct {
	rc RenderContext
}

// NewPaintCtx returns a paint context drawing on rc.
func NewPaintCtx(rc RenderContext) *PaintCtx {
	return &PaintCtx{rc: rc}
}

// RenderContext returns the underlying surface.
func (c *PaintCtx) RenderContext() RenderContext { return c.rc }

// Size returns the paint region's size.
func (c *PaintCtx) Size() Size { return c.rc.Size() }

// Fill paints the interior of shape.
func (c *PaintCtx) Fill(shape Shape, brush Brush) { c.rc.Fill(shape, brush) }

// Stroke paints the outline of shape.
func (c *PaintCtx) Stroke(shape Shape, brush Brush, width float64) { c.rc.Stroke(shape, brush, width) }

// SolidBrush creates a brush painting with color.
func (c *PaintCtx) SolidBrush(color Color) Brush { return c.rc.SolidBrush(color) }

// Text returns the text factory of the surface.
func (c *PaintCtx) Text() TextFactory { return c.rc.Text() }

// DrawText draws layout with its top-left corner at pos.
func (c *PaintCtx) DrawText(layout TextLayout, pos Point) { c.rc.DrawText(layout, pos) }

// Child returns a paint context for a child occupying r.
func (c *PaintCtx) Child(r Rect) *PaintCtx {
	return &PaintCtx{rc: c.rc.Sub(r)}
}

// Event is an input event delivered through Widget.Event.
type Event interface {
	isEvent()
}

// MouseKind distinguishes mouse events.
type MouseKind int

const (
	MouseMove MouseKind = iota
	MouseDown
	MouseUp
)

// MouseButton identifies a mouse button.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// MouseEvent is a pointer move or button change at Pos.
type MouseEvent struct {
	Kind   MouseKind
	Pos    Point
	Button MouseButton
}

// WheelEvent is a scroll at Pos.
type WheelEvent struct {
	Pos   Point
	Delta Point
}

// KeyEvent is a key press or release.
type KeyEvent struct {
	Key  ebiten.Key
	Down bool
}

// WindowSizeEvent reports the new window size.
type WindowSizeEvent struct {
	Size Size
}

func (MouseEvent) isEvent()      {}
func (WheelEvent) isEvent()      {}
func (KeyEvent) isEvent()        {}
func (WindowSizeEvent) isEvent() {}

// position returns the pointer position carried by ev, if any.
func position(ev Event) (Point, bool) {
	switch e := ev.(type) {
	case MouseEvent:
		return e.Pos, true
	case WheelEvent:
		return e.Pos, true
	}
	return Point{}, false
}

// translateEvent moves positional events into a child's coordinates.
func translateEvent(ev Event, origin Point) Event {
	switch e := ev.(type) {
	case MouseEvent:
		e.Pos = e.Pos.Sub(origin)
		return e
	case WheelEvent:
		e.Pos = e.Pos.Sub(origin)
		return e
	}
	return ev
}

// LifeCycle is a notification delivered through Widget.Lifecycle.
type LifeCycle interface {
	isLifeCycle()
}

// WidgetAdded is sent once before the first layout.
type WidgetAdded struct{}

// SizeChanged is sent after layout when the widget's size changed.
type SizeChanged struct {
	Size Size
}

// HotChanged is sent when the pointer enters or leaves the widget.
type HotChanged struct {
	Hot bool
}

func (WidgetAdded) isLifeCycle() {}
func (SizeChanged) isLifeCycle() {}
func (HotChanged) isLifeCycle()  {}

// BoxConstraints bounds the size a widget may choose in Layout.
type BoxConstraints struct {
	Min, Max Size
}

// Tight returns constraints allowing exactly size.
func Tight(size Size) BoxConstraints {
	return BoxConstraints{Min: size, Max: size}
}

// Loose returns constraints allowing anything from zero up to size.
func Loose(size Size) BoxConstraints {
	return BoxConstraints{Max: size}
}

// Unbounded returns constraints with no maximum.
func Unbounded() BoxConstraints {
	return BoxConstraints{Max: Size{Width: math.Inf(1), Height: math.Inf(1)}}
}

// Constrain clamps size into the constraints.
func (bc BoxConstraints) Constrain(size Size) Size {
	return Size{
		Width:  clamp(size.Width, bc.Min.Width, bc.Max.Width),
		Height: clamp(size.Height, bc.Min.Height, bc.Max.Height),
	}
}

// Loosen drops the minimum.
func (bc BoxConstraints) Loosen() BoxConstraints {
	return BoxConstraints{Max: bc.Max}
}

// IsTight reports whether only one size satisfies the constraints.
func (bc BoxConstraints) IsTight() bool {
	return bc.Min == bc.Max
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
