package main

import (
	"fmt"
	"image/png"
	"os"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-plotkit/internal/config"
	"github.com/opd-ai/go-plotkit/internal/distribution"
	"github.com/opd-ai/go-plotkit/pkg/luaplot"
	"github.com/opd-ai/go-plotkit/pkg/plotui"
	"github.com/opd-ai/go-plotkit/pkg/toolkit"
)

// scriptWeight is the share of the window height given to the Lua plot.
const scriptWeight = 0.5

// app is the widget tree of plotdemo and the configuration it was built
// from.
type app struct {
	cfg    *config.Config
	logger toolkit.Logger
	fonts  *toolkit.FontManager

	dist   *distribution.Program
	script *luaplot.Program[config.PlotConfig]
	root   toolkit.Widget[config.PlotConfig]
}

// newApp builds the distribution plot and, when cfg names a script, the
// Lua plot below it.
func newApp(cfg *config.Config, logger toolkit.Logger) (*app, error) {
	a := &app{
		cfg:    cfg,
		logger: logger,
		fonts:  toolkit.DefaultFonts(),
		dist:   distribution.New(logger),
	}

	column := toolkit.NewColumn[config.PlotConfig]().
		WithFlexChild(plotui.New[config.PlotConfig](a.dist, plotui.WithLogger(logger)), 1)

	if cfg.Script.Path != "" {
		script, err := luaplot.New[config.PlotConfig](
			luaplot.FromFile(cfg.Script.Path),
			luaplot.WithRuntimeConfig[config.PlotConfig](luaplot.RuntimeConfig{
				CPULimit:    cfg.Script.CPULimit,
				MemoryLimit: cfg.Script.MemoryLimit,
				Stdout:      os.Stdout,
			}),
			luaplot.WithData[config.PlotConfig](a.histogram),
			luaplot.WithLogger[config.PlotConfig](logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load script: %w", err)
		}
		a.script = script
		column = column.WithFlexChild(plotui.New[config.PlotConfig](script, plotui.WithLogger(logger)), scriptWeight)
	}

	a.root = column
	return a, nil
}

// histogram hands the Lua plot the x histogram of the current sample.
func (a *app) histogram(pc config.PlotConfig) rt.Value {
	x, _ := a.dist.Histograms(pc)
	return luaplot.Floats(x)
}

// Window returns a window showing the app.
func (a *app) Window() *toolkit.Window[config.PlotConfig] {
	return toolkit.NewWindow[config.PlotConfig](a.root, a.cfg.Plot, toolkit.Options[config.PlotConfig]{
		Title:  a.cfg.Window.Title,
		Width:  a.cfg.Window.Width,
		Height: a.cfg.Window.Height,
		Env:    a.cfg.Env(a.fonts),
		Logger: a.logger,
		Equal:  func(x, y config.PlotConfig) bool { return x == y },
		Fonts:  a.fonts,
	})
}

// Apply takes over a reloaded configuration. Plot settings reach the
// widgets through the window data; the script is reloaded from disk. The
// window, theme and script path are fixed once the window is open.
func (a *app) Apply(next *config.Config) {
	if next.Window != a.cfg.Window || next.Theme != a.cfg.Theme {
		a.logger.Info("window and theme changes apply after a restart")
	}
	if next.Script.Path != a.cfg.Script.Path {
		a.logger.Info("script path changes apply after a restart", "path", next.Script.Path)
	}
	if a.script != nil {
		if err := a.script.Reload(); err != nil {
			a.logger.Warn("script reload failed", "error", err)
		}
	}
	a.logger.Info("configuration reloaded", "samples", next.Plot.Samples, "seed", next.Plot.Seed)
}

// WritePNG renders one frame at the window size to path.
func (a *app) WritePNG(path string) error {
	size := toolkit.Size{Width: float64(a.cfg.Window.Width), Height: float64(a.cfg.Window.Height)}
	img := toolkit.RenderToImage(a.root, a.cfg.Plot, a.cfg.Env(a.fonts), size)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return f.Close()
}

// Close releases the Lua runtime.
func (a *app) Close() error {
	if a.script != nil {
		return a.script.Close()
	}
	return nil
}
