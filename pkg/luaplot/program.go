// Package luaplot runs plotting programs written in Lua.
//
// A script defines draw_plot(width, height [, data]) and optionally
// layout_plot(max_width, max_height) returning the wanted width and height.
// While draw_plot runs, the script draws with the plot_* functions:
//
//	function draw_plot(w, h)
//	  plot_rect(0, 0, w, h, "white", true)
//	  plot_line(0, h, w, 0, "#1f77b4", 2)
//	  plot_text("hello", w / 2, 20, "black", 14)
//	end
//
// Colors are strings in any form toolkit.ParseColor accepts. Point lists
// are flat sequences {x1, y1, x2, y2, ...}.
package luaplot

import (
	"fmt"
	"io/fs"
	"math"
	"os"
	"sync"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-plotkit/pkg/backend"
	"github.com/opd-ai/go-plotkit/pkg/plotui"
	"github.com/opd-ai/go-plotkit/pkg/toolkit"
)

// Script names and loads the Lua source of a program.
type Script struct {
	Name string
	Load func() ([]byte, error)
}

// FromString returns a script with fixed source code.
func FromString(name, code string) Script {
	return Script{Name: name, Load: func() ([]byte, error) { return []byte(code), nil }}
}

// FromFile returns a script read from disk on every load.
func FromFile(path string) Script {
	return Script{Name: path, Load: func() ([]byte, error) {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read Lua file %s: %w", path, err)
		}
		return content, nil
	}}
}

// FromFS returns a script read from fsys, e.g. an embed.FS.
func FromFS(fsys fs.FS, path string) Script {
	return Script{Name: path, Load: func() ([]byte, error) {
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read Lua file from FS %s: %w", path, err)
		}
		return content, nil
	}}
}

// Option configures a Program.
type Option[T any] func(*Program[T])

// WithRuntimeConfig sets the resource limits and print output.
func WithRuntimeConfig[T any](config RuntimeConfig) Option[T] {
	return func(p *Program[T]) { p.config = config }
}

// WithData passes the application data to draw_plot as its third argument.
func WithData[T any](convert func(T) rt.Value) Option[T] {
	return func(p *Program[T]) { p.convert = convert }
}

// WithLogger sets the logger for script failures.
func WithLogger[T any](l toolkit.Logger) Option[T] {
	return func(p *Program[T]) {
		if l != nil {
			p.logger = l
		}
	}
}

// Program is a plotui.Program backed by a Lua script.
type Program[T any] struct {
	plotui.BaseProgram[T]

	script  Script
	config  RuntimeConfig
	convert func(T) rt.Value
	logger  toolkit.Logger

	mu      sync.Mutex
	runtime *Runtime

	// Set only while draw_plot runs.
	target   backend.DrawingBackend
	panicked any
}

var _ plotui.Program[int] = (*Program[int])(nil)

// New loads script and returns a program running it.
func New[T any](script Script, opts ...Option[T]) (*Program[T], error) {
	p := &Program[T]{
		script: script,
		config: DefaultRuntimeConfig(),
		logger: toolkit.NopLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	r, err := p.load()
	if err != nil {
		return nil, err
	}
	p.runtime = r
	return p, nil
}

// load builds a fresh runtime with the bindings installed and the script
// executed.
func (p *Program[T]) load() (*Runtime, error) {
	code, err := p.script.Load()
	if err != nil {
		return nil, err
	}
	r := NewRuntime(p.config)
	p.register(r)
	if err := r.Exec(p.script.Name, code); err != nil {
		r.Close()
		return nil, err
	}
	if !r.HasFunction("draw_plot") {
		r.Close()
		return nil, fmt.Errorf("script %s does not define draw_plot", p.script.Name)
	}
	return r, nil
}

// Reload reads and runs the script again in a fresh runtime. On failure
// the previous script stays active.
func (p *Program[T]) Reload() error {
	r, err := p.load()
	if err != nil {
		return err
	}
	p.mu.Lock()
	old := p.runtime
	p.runtime = r
	p.mu.Unlock()

	p.logger.Info("lua plot reloaded", "script", p.script.Name)
	return old.Close()
}

// Output returns everything the current script printed.
func (p *Program[T]) Output() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runtime.Output()
}

// Close releases the Lua runtime.
func (p *Program[T]) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runtime.Close()
}

// LayoutPlot implements plotui.Program. Without a layout_plot function, or
// when it fails, the plot asks for plotui.DefaultPlotSize.
func (p *Program[T]) LayoutPlot(ctx *toolkit.LayoutCtx, bc toolkit.BoxConstraints, data T, env *toolkit.Env) toolkit.Size {
	size, err := p.Layout(bc)
	if err != nil {
		p.logger.Warn("lua layout_plot failed", "script", p.script.Name, "error", err)
		return p.BaseProgram.LayoutPlot(ctx, bc, data, env)
	}
	return size
}

// Layout calls layout_plot with the maximum size and constrains its result.
func (p *Program[T]) Layout(bc toolkit.BoxConstraints) (toolkit.Size, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.runtime.HasFunction("layout_plot") {
		return bc.Constrain(plotui.DefaultPlotSize), nil
	}
	res, err := p.runtime.Call("layout_plot", 2, rt.FloatValue(bc.Max.Width), rt.FloatValue(bc.Max.Height))
	if err != nil {
		return toolkit.Size{}, err
	}
	w, err := toFloat(res[0], 0)
	if err != nil {
		return toolkit.Size{}, fmt.Errorf("layout_plot width: %w", err)
	}
	h, err := toFloat(res[1], 1)
	if err != nil {
		return toolkit.Size{}, fmt.Errorf("layout_plot height: %w", err)
	}
	if math.IsNaN(w) || math.IsNaN(h) {
		return toolkit.Size{}, fmt.Errorf("layout_plot returned NaN")
	}
	return bc.Constrain(toolkit.Size{Width: w, Height: h}), nil
}

// DrawPlot implements plotui.Program. Script errors are logged and the
// frame is left as drawn so far.
func (p *Program[T]) DrawPlot(ctx plotui.PlottingCtx, data T, env *toolkit.Env) {
	if err := p.Draw(ctx, data); err != nil {
		p.logger.Warn("lua draw_plot failed", "script", p.script.Name, "error", err)
	}
}

// Draw calls draw_plot with b as the target of the plot_* functions. A
// panic raised by b inside a plot_* call is re-raised once the Lua call has
// unwound.
func (p *Program[T]) Draw(b backend.DrawingBackend, data T) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.target = b
	p.panicked = nil
	defer func() { p.target = nil }()

	w, h := b.Size()
	args := []rt.Value{rt.IntValue(int64(w)), rt.IntValue(int64(h))}
	if p.convert != nil {
		args = append(args, p.convert(data))
	}
	_, err := p.runtime.Call("draw_plot", 0, args...)
	if r := p.panicked; r != nil {
		p.panicked = nil
		panic(r)
	}
	return err
}

// Floats converts xs to a Lua sequence, for use with WithData.
func Floats(xs []float64) rt.Value {
	t := rt.NewTable()
	for i, x := range xs {
		t.Set(rt.IntValue(int64(i+1)), rt.FloatValue(x))
	}
	return rt.TableValue(t)
}
