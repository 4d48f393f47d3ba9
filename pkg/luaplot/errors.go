package luaplot

import "errors"

var (
	// ErrNotDrawing is raised in Lua when a plot_* function is called
	// outside draw_plot.
	ErrNotDrawing = errors.New("plot functions are only available inside draw_plot")

	// ErrDrawAborted is raised in Lua when the drawing surface failed. The
	// failure is re-raised in Go once the Lua call has unwound.
	ErrDrawAborted = errors.New("drawing aborted")

	// ErrOddPoints is returned when a point list has an odd number of
	// coordinates.
	ErrOddPoints = errors.New("point list must hold x, y pairs")
)
