package plotui

import "github.com/opd-ai/go-plotkit/pkg/toolkit"

// DefaultPlotSize is what BaseProgram.LayoutPlot asks for.
var DefaultPlotSize = toolkit.Size{Width: 500, Height: 500}

// Program is a plot that takes part in the widget lifecycle. Embed
// BaseProgram to get defaults for every hook but DrawPlot.
type Program[T any] interface {
	// HandleEvent receives every event delivered to the widget.
	HandleEvent(ctx *toolkit.EventCtx, ev toolkit.Event, data *T, env *toolkit.Env)
	// HandleLifecycle receives every lifecycle notification.
	HandleLifecycle(ctx *toolkit.LifeCycleCtx, ev toolkit.LifeCycle, data T, env *toolkit.Env)
	// LayoutPlot returns the size the plot wants.
	LayoutPlot(ctx *toolkit.LayoutCtx, bc toolkit.BoxConstraints, data T, env *toolkit.Env) toolkit.Size
	// UpdateSelf is called when the application data changed.
	UpdateSelf(ctx *toolkit.UpdateCtx, oldData, data T, env *toolkit.Env)
	// DrawPlot draws the plot. ctx is valid until DrawPlot returns.
	DrawPlot(ctx PlottingCtx, data T, env *toolkit.Env)
}

// BaseProgram provides no-op hooks and a DefaultPlotSize layout.
type BaseProgram[T any] struct{}

// HandleEvent does nothing.
func (BaseProgram[T]) HandleEvent(ctx *toolkit.EventCtx, ev toolkit.Event, data *T, env *toolkit.Env) {
}

// HandleLifecycle does nothing.
func (BaseProgram[T]) HandleLifecycle(ctx *toolkit.LifeCycleCtx, ev toolkit.LifeCycle, data T, env *toolkit.Env) {
}

// LayoutPlot returns DefaultPlotSize regardless of the constraints.
func (BaseProgram[T]) LayoutPlot(ctx *toolkit.LayoutCtx, bc toolkit.BoxConstraints, data T, env *toolkit.Env) toolkit.Size {
	return DefaultPlotSize
}

// UpdateSelf does nothing.
func (BaseProgram[T]) UpdateSelf(ctx *toolkit.UpdateCtx, oldData, data T, env *toolkit.Env) {}
