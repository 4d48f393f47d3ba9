package luaplot

import (
	"fmt"
	"math"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-plotkit/pkg/backend"
	"github.com/opd-ai/go-plotkit/pkg/toolkit"
)

// drawFunc is the Go side of one plot_* binding. It returns the values
// pushed back to Lua.
type drawFunc func(b backend.DrawingBackend, args []rt.Value) ([]rt.Value, error)

// bindings lists every function exposed to scripts with its fixed
// argument count.
var bindings = []struct {
	name  string
	nArgs int
	fn    drawFunc
}{
	{"plot_size", 0, plotSize},
	{"plot_pixel", 3, plotPixel},
	{"plot_line", 5, plotLine},
	{"plot_rect", 5, plotRect},
	{"plot_circle", 4, plotCircle},
	{"plot_path", 2, plotPath},
	{"plot_polygon", 2, plotPolygon},
	{"plot_text", 3, plotText},
	{"plot_text_size", 1, plotTextSize},
}

// register installs the plot_* functions in r. They draw on p.target,
// which is only set while draw_plot runs.
func (p *Program[T]) register(r *Runtime) {
	for _, b := range bindings {
		r.SetGoFunction(b.name, p.wrap(b.name, b.fn), b.nArgs, true)
	}
}

func (p *Program[T]) wrap(name string, fn drawFunc) rt.GoFunctionFunc {
	return func(t *rt.Thread, c *rt.GoCont) (next rt.Cont, err error) {
		target := p.target
		if target == nil {
			return nil, fmt.Errorf("%s: %w", name, ErrNotDrawing)
		}
		defer func() {
			if r := recover(); r != nil {
				p.panicked = r
				next, err = nil, fmt.Errorf("%s: %w", name, ErrDrawAborted)
			}
		}()
		results, err := fn(target, getAllArgs(c))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if len(results) == 0 {
			return c.Next(), nil
		}
		return c.PushingNext(t.Runtime, results...), nil
	}
}

// plotSize handles plot_size() -> width, height
func plotSize(b backend.DrawingBackend, args []rt.Value) ([]rt.Value, error) {
	w, h := b.Size()
	return []rt.Value{rt.IntValue(int64(w)), rt.IntValue(int64(h))}, nil
}

// plotPixel handles plot_pixel(x, y, color)
func plotPixel(b backend.DrawingBackend, args []rt.Value) ([]rt.Value, error) {
	p, err := getCoordArgs(args, 0)
	if err != nil {
		return nil, err
	}
	c, err := getColorArg(args, 2)
	if err != nil {
		return nil, err
	}
	return nil, b.DrawPixel(p, c)
}

// plotLine handles plot_line(x0, y0, x1, y1, color [, width])
func plotLine(b backend.DrawingBackend, args []rt.Value) ([]rt.Value, error) {
	from, err := getCoordArgs(args, 0)
	if err != nil {
		return nil, err
	}
	to, err := getCoordArgs(args, 2)
	if err != nil {
		return nil, err
	}
	style, err := getStrokeArgs(args, 4)
	if err != nil {
		return nil, err
	}
	return nil, b.DrawLine(from, to, style)
}

// plotRect handles plot_rect(x0, y0, x1, y1, color [, filled [, width]])
func plotRect(b backend.DrawingBackend, args []rt.Value) ([]rt.Value, error) {
	ul, err := getCoordArgs(args, 0)
	if err != nil {
		return nil, err
	}
	br, err := getCoordArgs(args, 2)
	if err != nil {
		return nil, err
	}
	style, filled, err := getShapeArgs(args, 4)
	if err != nil {
		return nil, err
	}
	return nil, b.DrawRect(ul, br, style, filled)
}

// plotCircle handles plot_circle(x, y, radius, color [, filled [, width]])
func plotCircle(b backend.DrawingBackend, args []rt.Value) ([]rt.Value, error) {
	center, err := getCoordArgs(args, 0)
	if err != nil {
		return nil, err
	}
	radius, err := getFloatArg(args, 2)
	if err != nil {
		return nil, err
	}
	style, filled, err := getShapeArgs(args, 3)
	if err != nil {
		return nil, err
	}
	return nil, b.DrawCircle(center, uint32(math.Max(0, math.Round(radius))), style, filled)
}

// plotPath handles plot_path({x1, y1, x2, y2, ...}, color [, width])
func plotPath(b backend.DrawingBackend, args []rt.Value) ([]rt.Value, error) {
	points, err := getPointsArg(args, 0)
	if err != nil {
		return nil, err
	}
	style, err := getStrokeArgs(args, 1)
	if err != nil {
		return nil, err
	}
	return nil, b.DrawPath(points, style)
}

// plotPolygon handles plot_polygon({x1, y1, x2, y2, ...}, color)
func plotPolygon(b backend.DrawingBackend, args []rt.Value) ([]rt.Value, error) {
	points, err := getPointsArg(args, 0)
	if err != nil {
		return nil, err
	}
	c, err := getColorArg(args, 1)
	if err != nil {
		return nil, err
	}
	return nil, backend.FillPolygon(b, points, backend.Filled(c))
}

// plotText handles plot_text(text, x, y [, color [, size [, family]]]).
// The text is centered on (x, y).
func plotText(b backend.DrawingBackend, args []rt.Value) ([]rt.Value, error) {
	text, err := getStringArg(args, 0)
	if err != nil {
		return nil, err
	}
	pos, err := getCoordArgs(args, 1)
	if err != nil {
		return nil, err
	}
	style, err := getTextArgs(args, 3)
	if err != nil {
		return nil, err
	}
	return nil, b.DrawText(text, style, pos)
}

// plotTextSize handles plot_text_size(text [, size [, family]]) -> width, height
func plotTextSize(b backend.DrawingBackend, args []rt.Value) ([]rt.Value, error) {
	text, err := getStringArg(args, 0)
	if err != nil {
		return nil, err
	}
	style, err := getFontArgs(args, 1, backend.Font(backend.SansSerif, toolkit.DefaultFontSize))
	if err != nil {
		return nil, err
	}
	w, h, err := b.EstimateTextSize(text, style)
	if err != nil {
		return nil, err
	}
	return []rt.Value{rt.IntValue(int64(w)), rt.IntValue(int64(h))}, nil
}

// getAllArgs combines Args() and Etc() to get all arguments including varargs
func getAllArgs(c *rt.GoCont) []rt.Value {
	return append(c.Args(), c.Etc()...)
}

// optional reports whether args[idx] was passed and is not nil.
func optional(args []rt.Value, idx int) bool {
	return idx < len(args) && args[idx] != rt.NilValue
}

// getFloatArg gets a float argument from the combined args slice
func getFloatArg(args []rt.Value, idx int) (float64, error) {
	if idx >= len(args) {
		return 0, fmt.Errorf("argument %d out of range (have %d)", idx+1, len(args))
	}
	return toFloat(args[idx], idx)
}

func toFloat(v rt.Value, idx int) (float64, error) {
	if f, ok := v.TryFloat(); ok {
		return f, nil
	}
	if i, ok := v.TryInt(); ok {
		return float64(i), nil
	}
	return 0, fmt.Errorf("argument %d is not a number", idx+1)
}

// getStringArg gets a string argument from the combined args slice
func getStringArg(args []rt.Value, idx int) (string, error) {
	if idx >= len(args) {
		return "", fmt.Errorf("argument %d out of range (have %d)", idx+1, len(args))
	}
	if s, ok := args[idx].TryString(); ok {
		return s, nil
	}
	return "", fmt.Errorf("argument %d is not a string", idx+1)
}

// getCoordArgs reads an x, y pair starting at idx.
func getCoordArgs(args []rt.Value, idx int) (backend.Coord, error) {
	x, err := getFloatArg(args, idx)
	if err != nil {
		return backend.Coord{}, err
	}
	y, err := getFloatArg(args, idx+1)
	if err != nil {
		return backend.Coord{}, err
	}
	return backend.Coord{X: int(math.Round(x)), Y: int(math.Round(y))}, nil
}

// getColorArg parses a color string such as "red" or "#ff000080".
func getColorArg(args []rt.Value, idx int) (backend.Color, error) {
	s, err := getStringArg(args, idx)
	if err != nil {
		return backend.Color{}, err
	}
	c, err := toolkit.ParseColor(s)
	if err != nil {
		return backend.Color{}, fmt.Errorf("argument %d: %w", idx+1, err)
	}
	r, g, b, a := c.Components()
	return backend.RGBA(r, g, b, float64(a)/255), nil
}

// getWidthArg reads an optional stroke width, defaulting to 1.
func getWidthArg(args []rt.Value, idx int) (uint32, error) {
	if !optional(args, idx) {
		return 1, nil
	}
	w, err := getFloatArg(args, idx)
	if err != nil {
		return 0, err
	}
	return uint32(math.Max(0, math.Round(w))), nil
}

// getStrokeArgs reads color [, width].
func getStrokeArgs(args []rt.Value, idx int) (backend.ShapeStyle, error) {
	c, err := getColorArg(args, idx)
	if err != nil {
		return backend.ShapeStyle{}, err
	}
	w, err := getWidthArg(args, idx+1)
	if err != nil {
		return backend.ShapeStyle{}, err
	}
	return backend.Stroke(c).WithWidth(w), nil
}

// getShapeArgs reads color [, filled [, width]].
func getShapeArgs(args []rt.Value, idx int) (backend.ShapeStyle, bool, error) {
	c, err := getColorArg(args, idx)
	if err != nil {
		return backend.ShapeStyle{}, false, err
	}
	filled := optional(args, idx+1) && rt.Truth(args[idx+1])
	w, err := getWidthArg(args, idx+2)
	if err != nil {
		return backend.ShapeStyle{}, false, err
	}
	style := backend.Stroke(c).WithWidth(w)
	style.Filled = filled
	return style, filled, nil
}

// getTextArgs reads [color [, size [, family]]] starting at idx.
func getTextArgs(args []rt.Value, idx int) (backend.TextStyleSpec, error) {
	style := backend.Font(backend.SansSerif, toolkit.DefaultFontSize)
	if optional(args, idx) {
		c, err := getColorArg(args, idx)
		if err != nil {
			return style, err
		}
		style = style.WithColor(c)
	}
	return getFontArgs(args, idx+1, style)
}

// getFontArgs reads [size [, family]] starting at idx into style.
func getFontArgs(args []rt.Value, idx int, style backend.TextStyleSpec) (backend.TextStyleSpec, error) {
	if optional(args, idx) {
		size, err := getFloatArg(args, idx)
		if err != nil {
			return style, err
		}
		style.FontSize = size
	}
	if optional(args, idx+1) {
		family, err := getStringArg(args, idx+1)
		if err != nil {
			return style, err
		}
		style.FontFamily = backend.FontFamily(family)
	}
	return style, nil
}

// getPointsArg reads a flat sequence {x1, y1, x2, y2, ...}.
func getPointsArg(args []rt.Value, idx int) ([]backend.Coord, error) {
	if idx >= len(args) {
		return nil, fmt.Errorf("argument %d out of range (have %d)", idx+1, len(args))
	}
	tbl, ok := args[idx].TryTable()
	if !ok {
		return nil, fmt.Errorf("argument %d is not a table", idx+1)
	}
	var coords []float64
	for i := int64(1); ; i++ {
		v := tbl.Get(rt.IntValue(i))
		if v == rt.NilValue {
			break
		}
		f, err := toFloat(v, idx)
		if err != nil {
			return nil, fmt.Errorf("point list entry %d: %w", i, err)
		}
		coords = append(coords, f)
	}
	if len(coords)%2 != 0 {
		return nil, ErrOddPoints
	}
	points := make([]backend.Coord, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		points = append(points, backend.Coord{X: int(math.Round(coords[i])), Y: int(math.Round(coords[i+1]))})
	}
	return points, nil
}
