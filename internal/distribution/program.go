package distribution

import (
	"errors"
	"fmt"
	"sync"

	"github.com/opd-ai/go-plotkit/internal/config"
	"github.com/opd-ai/go-plotkit/pkg/backend"
	"github.com/opd-ai/go-plotkit/pkg/plotui"
	"github.com/opd-ai/go-plotkit/pkg/toolkit"
)

// plotData is everything derived from the configuration that drawing
// needs. It is rebuilt only when the sample inputs or the bin count change.
type plotData struct {
	key     sampleKey
	bins    int
	sample  Sample
	xCounts []float64
	yCounts []float64
	x, y    Summary
}

// Program is the distribution plot as a plotui.Program over the plot
// configuration. The window is split at SplitX and SplitY: the x histogram
// sits above the scatter plot, the y histogram to its right and the sample
// statistics in the remaining corner.
type Program struct {
	plotui.BaseProgram[config.PlotConfig]

	logger toolkit.Logger

	mu   sync.Mutex
	data *plotData
}

var _ plotui.Program[config.PlotConfig] = (*Program)(nil)

// New creates the program. A nil logger discards log output.
func New(logger toolkit.Logger) *Program {
	if logger == nil {
		logger = toolkit.NopLogger()
	}
	return &Program{logger: logger}
}

// prepare returns the data for pc, generating it when pc changed the
// sample or the bins.
func (p *Program) prepare(pc config.PlotConfig) *plotData {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := keyOf(pc)
	if p.data != nil && p.data.key == key && p.data.bins == pc.Bins {
		return p.data
	}

	d := &plotData{key: key, bins: pc.Bins}
	if p.data != nil && p.data.key == key {
		d.sample, d.x, d.y = p.data.sample, p.data.x, p.data.y
	} else {
		d.sample = Generate(pc)
		d.x = Summarize(d.sample.X)
		d.y = Summarize(d.sample.Y)
		p.logger.Debug("generated sample", "points", pc.Samples, "seed", pc.Seed)
	}
	d.xCounts = Histogram(d.sample.X, pc.Bins)
	d.yCounts = Histogram(d.sample.Y, pc.Bins)
	p.data = d
	return d
}

// Sample returns the points drawn for pc.
func (p *Program) Sample(pc config.PlotConfig) Sample {
	return p.prepare(pc).sample
}

// Histograms returns the bin counts of both coordinates for pc.
func (p *Program) Histograms(pc config.PlotConfig) (x, y []float64) {
	d := p.prepare(pc)
	return d.xCounts, d.yCounts
}

// LayoutPlot asks for the configured plot size.
func (p *Program) LayoutPlot(ctx *toolkit.LayoutCtx, bc toolkit.BoxConstraints, data config.PlotConfig, env *toolkit.Env) toolkit.Size {
	return bc.Constrain(toolkit.Size{Width: data.Width, Height: data.Height})
}

// UpdateSelf repaints after a configuration change and lays out again when
// the plot size changed.
func (p *Program) UpdateSelf(ctx *toolkit.UpdateCtx, oldData, data config.PlotConfig, env *toolkit.Env) {
	if oldData == data {
		return
	}
	if oldData.Width != data.Width || oldData.Height != data.Height {
		ctx.RequestLayout()
		return
	}
	ctx.RequestPaint()
}

// DrawPlot draws the plot and logs drawing failures.
func (p *Program) DrawPlot(ctx plotui.PlottingCtx, data config.PlotConfig, env *toolkit.Env) {
	if err := p.Draw(ctx, data, env); err != nil {
		p.logger.Warn("distribution plot incomplete", "error", err)
	}
}

// Draw draws the plot for pc on b. Every part is attempted; the errors of
// the parts that failed are joined.
func (p *Program) Draw(b backend.DrawingBackend, pc config.PlotConfig, env *toolkit.Env) error {
	if env == nil {
		env = toolkit.DefaultEnv()
	}
	d := p.prepare(pc)

	if err := backend.Whole(b).Fill(fromToolkit(env.Background)); err != nil {
		return fmt.Errorf("failed to fill background: %w", err)
	}

	areas := backend.SplitByBreakpoints(b, []int{pc.SplitX}, []int{pc.SplitY})
	xHist, stats, scatter, yHist := areas[0], areas[1], areas[2], areas[3]

	var errs []error
	canvas, err := drawScatter(scatter, pc, d.sample, env)
	if err != nil {
		errs = append(errs, fmt.Errorf("scatter plot: %w", err))
	}
	if err := drawXHistogram(xHist, pc, d.xCounts, canvas, env); err != nil {
		errs = append(errs, fmt.Errorf("x histogram: %w", err))
	}
	if err := drawYHistogram(yHist, pc, d.yCounts, canvas, env); err != nil {
		errs = append(errs, fmt.Errorf("y histogram: %w", err))
	}
	if err := drawSummary(stats, d, env); err != nil {
		errs = append(errs, fmt.Errorf("summary: %w", err))
	}
	return errors.Join(errs...)
}

// fromToolkit converts a packed toolkit color to a charting color.
func fromToolkit(c toolkit.Color) backend.Color {
	r, g, b, a := c.Components()
	return backend.RGBA(r, g, b, float64(a)/255)
}
