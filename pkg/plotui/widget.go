package plotui

import "github.com/opd-ai/go-plotkit/pkg/toolkit"

// Option configures a Widget.
type Option func(*settings)

type settings struct {
	logger toolkit.Logger
}

// WithLogger sets the logger that reports aborted paints.
func WithLogger(l toolkit.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// Widget is a toolkit.Widget running a Program. It forwards every hook and
// hands the program a PlottingCtx during paint.
type Widget[T any] struct {
	program Program[T]
	logger  toolkit.Logger
}

var _ toolkit.Widget[int] = (*Widget[int])(nil)

// New wraps program in a widget.
func New[T any](program Program[T], opts ...Option) *Widget[T] {
	s := settings{logger: toolkit.NopLogger()}
	for _, opt := range opts {
		opt(&s)
	}
	return &Widget[T]{program: program, logger: s.logger}
}

// Program returns the wrapped program.
func (w *Widget[T]) Program() Program[T] { return w.program }

// Event implements toolkit.Widget.
func (w *Widget[T]) Event(ctx *toolkit.EventCtx, ev toolkit.Event, data *T, env *toolkit.Env) {
	w.program.HandleEvent(ctx, ev, data, env)
}

// Lifecycle implements toolkit.Widget.
func (w *Widget[T]) Lifecycle(ctx *toolkit.LifeCycleCtx, ev toolkit.LifeCycle, data T, env *toolkit.Env) {
	w.program.HandleLifecycle(ctx, ev, data, env)
}

// Update implements toolkit.Widget.
func (w *Widget[T]) Update(ctx *toolkit.UpdateCtx, oldData, data T, env *toolkit.Env) {
	w.program.UpdateSelf(ctx, oldData, data, env)
}

// Layout implements toolkit.Widget.
func (w *Widget[T]) Layout(ctx *toolkit.LayoutCtx, bc toolkit.BoxConstraints, data T, env *toolkit.Env) toolkit.Size {
	return w.program.LayoutPlot(ctx, bc, data, env)
}

// Paint implements toolkit.Widget. The PlottingCtx given to DrawPlot is
// released when Paint returns. A paint aborted by a toolkit failure is
// logged and dropped; the next frame paints again.
func (w *Widget[T]) Paint(ctx *toolkit.PaintCtx, data T, env *toolkit.Env) {
	scope := &paintScope{ctx: ctx, env: env}
	defer func() {
		scope.released = true
		if r := recover(); r != nil {
			abort, ok := r.(paintAbort)
			if !ok {
				panic(r)
			}
			w.logger.Warn("plot paint aborted", "error", abort)
		}
	}()
	w.program.DrawPlot(PlottingCtx{scope: scope}, data, env)
}
