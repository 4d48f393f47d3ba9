package toolkit

import "math"

// Axis is the main axis of a Flex container.
type Axis int

const (
	// Vertical stacks children top to bottom.
	Vertical Axis = iota
	// Horizontal places children left to right.
	Horizontal
)

func (a Axis) major(s Size) float64 {
	if a == Vertical {
		return s.Height
	}
	return s.Width
}

func (a Axis) minor(s Size) float64 {
	if a == Vertical {
		return s.Width
	}
	return s.Height
}

func (a Axis) pack(major, minor float64) Size {
	if a == Vertical {
		return Size{Width: minor, Height: major}
	}
	return Size{Width: major, Height: minor}
}

type flexChild[T any] struct {
	widget Widget[T]
	flex   float64
	spacer float64
	origin Point
	size   Size
	hot    bool
}

// Flex lays out its children along one axis. Fixed children take their
// preferred size; flex children share the remaining space by weight.
type Flex[T any] struct {
	axis     Axis
	children []*flexChild[T]
}

// NewColumn returns a vertical Flex.
func NewColumn[T any]() *Flex[T] { return &Flex[T]{axis: Vertical} }

// NewRow returns a horizontal Flex.
func NewRow[T any]() *Flex[T] { return &Flex[T]{axis: Horizontal} }

// WithChild appends a child laid out at its preferred size.
func (f *Flex[T]) WithChild(w Widget[T]) *Flex[T] {
	f.children = append(f.children, &flexChild[T]{widget: w})
	return f
}

// WithFlexChild appends a child that receives a share of the leftover space
// proportional to weight.
func (f *Flex[T]) WithFlexChild(w Widget[T], weight float64) *Flex[T] {
	f.children = append(f.children, &flexChild[T]{widget: w, flex: weight})
	return f
}

// WithSpacer appends fixed empty space along the main axis.
func (f *Flex[T]) WithSpacer(length float64) *Flex[T] {
	f.children = append(f.children, &flexChild[T]{spacer: length})
	return f
}

// Len returns the number of children, spacers included.
func (f *Flex[T]) Len() int { return len(f.children) }

// Event implements Widget. Positional events go to the child under the
// pointer; other events go to every child until one handles them.
func (f *Flex[T]) Event(ctx *EventCtx, ev Event, data *T, env *Env) {
	pos, positional := position(ev)
	if m, ok := ev.(MouseEvent); ok && m.Kind == MouseMove {
		f.updateHot(ctx, pos, *data, env)
	}
	for _, ch := range f.children {
		if ch.widget == nil {
			continue
		}
		rect := RectFromOriginSize(ch.origin, ch.size)
		if positional && !rect.Contains(pos) {
			continue
		}
		child := ctx.child(ch.size, ch.hot)
		ch.widget.Event(child, translateEvent(ev, ch.origin), data, env)
		if child.handled {
			ctx.SetHandled()
			return
		}
	}
}

func (f *Flex[T]) updateHot(ctx *EventCtx, pos Point, data T, env *Env) {
	for _, ch := range f.children {
		if ch.widget == nil {
			continue
		}
		hot := RectFromOriginSize(ch.origin, ch.size).Contains(pos)
		if hot == ch.hot {
			continue
		}
		ch.hot = hot
		lc := &LifeCycleCtx{req: ctx.req, size: ch.size}
		ch.widget.Lifecycle(lc, HotChanged{Hot: hot}, data, env)
	}
}

// Lifecycle implements Widget. SizeChanged is rewritten to carry each child's
// own size.
func (f *Flex[T]) Lifecycle(ctx *LifeCycleCtx, ev LifeCycle, data T, env *Env) {
	for _, ch := range f.children {
		if ch.widget == nil {
			continue
		}
		childEv := ev
		if _, ok := ev.(SizeChanged); ok {
			childEv = SizeChanged{Size: ch.size}
		}
		ch.widget.Lifecycle(ctx.child(ch.size), childEv, data, env)
	}
}

// Update implements Widget.
func (f *Flex[T]) Update(ctx *UpdateCtx, oldData, data T, env *Env) {
	for _, ch := range f.children {
		if ch.widget != nil {
			ch.widget.Update(ctx.child(ch.size), oldData, data, env)
		}
	}
}

// Layout implements Widget.
func (f *Flex[T]) Layout(ctx *LayoutCtx, bc BoxConstraints, data T, env *Env) Size {
	maxMajor := f.axis.major(bc.Max)
	maxMinor := f.axis.minor(bc.Max)

	used := 0.0
	totalFlex := 0.0
	for _, ch := range f.children {
		switch {
		case ch.widget == nil:
			ch.size = f.axis.pack(ch.spacer, 0)
			used += ch.spacer
		case ch.flex > 0:
			totalFlex += ch.flex
		default:
			room := math.Max(0, maxMajor-used)
			childBC := BoxConstraints{Max: f.axis.pack(room, maxMinor)}
			ch.size = childBC.Constrain(ch.widget.Layout(ctx, childBC, data, env))
			used += f.axis.major(ch.size)
		}
	}

	if totalFlex > 0 {
		remaining := 0.0
		if !math.IsInf(maxMajor, 1) {
			remaining = math.Max(0, maxMajor-used)
		}
		for _, ch := range f.children {
			if ch.widget == nil || ch.flex <= 0 {
				continue
			}
			share := remaining * ch.flex / totalFlex
			childBC := BoxConstraints{
				Min: f.axis.pack(share, 0),
				Max: f.axis.pack(share, maxMinor),
			}
			ch.size = childBC.Constrain(ch.widget.Layout(ctx, childBC, data, env))
			used += f.axis.major(ch.size)
		}
	}

	offset := 0.0
	minor := 0.0
	for _, ch := range f.children {
		ch.origin = Point{}
		if f.axis == Vertical {
			ch.origin.Y = offset
		} else {
			ch.origin.X = offset
		}
		offset += f.axis.major(ch.size)
		minor = math.Max(minor, f.axis.minor(ch.size))
	}
	return bc.Constrain(f.axis.pack(used, minor))
}

// Paint implements Widget.
func (f *Flex[T]) Paint(ctx *PaintCtx, data T, env *Env) {
	for _, ch := range f.children {
		if ch.widget == nil {
			continue
		}
		ch.widget.Paint(ctx.Child(RectFromOriginSize(ch.origin, ch.size)), data, env)
	}
}
