// Package plotui hosts charting-library plots inside toolkit widget trees.
//
// It has two halves. PlottingCtx implements backend.DrawingBackend on top of
// a toolkit.PaintCtx, so any charting code written against the backend
// contract can draw into a widget. Widget turns a Program, a plot with five
// lifecycle hooks, into a toolkit.Widget that can be placed in any layout.
//
// Basic usage:
//
//	type scatter struct {
//		plotui.BaseProgram[[]point]
//	}
//
//	func (scatter) DrawPlot(ctx plotui.PlottingCtx, data []point, env *toolkit.Env) {
//		for _, p := range data {
//			_ = ctx.DrawCircle(backend.Coord{X: p.x, Y: p.y}, 2, backend.Filled(backend.Blue), true)
//		}
//	}
//
//	col := toolkit.NewColumn[[]point]().WithChild(plotui.New[[]point](scatter{}))
//
// A PlottingCtx is only valid inside the DrawPlot call it was passed to.
// Drawing never reports errors through the backend contract; a toolkit
// failure aborts the current paint, which is logged and retried on the next
// frame.
package plotui
