package distribution

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/opd-ai/go-plotkit/internal/config"
	"github.com/opd-ai/go-plotkit/pkg/backend"
	"github.com/opd-ai/go-plotkit/pkg/chartrender"
	"github.com/opd-ai/go-plotkit/pkg/toolkit"
)

// chartPadding is the gap between an area's edge and its chart.
const chartPadding = 10

// summaryFontSize is the text size of the statistics corner.
const summaryFontSize = 10.0

func chartColor(c toolkit.Color) drawing.Color {
	r, g, b, a := c.Components()
	return drawing.Color{R: r, G: g, B: b, A: a}
}

func padding(top, left, right, bottom int) chart.Box {
	return chart.Box{Top: top, Left: left, Right: right, Bottom: bottom, IsSet: true}
}

func unitRange() *chart.ContinuousRange {
	return &chart.ContinuousRange{Min: 0, Max: 1}
}

// render draws c over the whole of area.
func render(area *backend.Area, c chart.Chart) error {
	w, h := area.Size()
	c.Width, c.Height = int(w), int(h)
	return c.Render(chartrender.Provider(area), io.Discard)
}

func isEmpty(area *backend.Area) bool {
	w, h := area.Size()
	return w == 0 || h == 0
}

// drawScatter draws the points falling inside the unit square with both
// axes. It returns the chart's canvas box, which the histograms align to.
func drawScatter(area *backend.Area, pc config.PlotConfig, s Sample, env *toolkit.Env) (chart.Box, error) {
	if isEmpty(area) {
		return chart.Box{}, nil
	}

	xs := make([]float64, 0, s.Len())
	ys := make([]float64, 0, s.Len())
	for i := range s.X {
		if s.X[i] >= 0 && s.X[i] <= 1 && s.Y[i] >= 0 && s.Y[i] <= 1 {
			xs = append(xs, s.X[i])
			ys = append(ys, s.Y[i])
		}
	}

	axis := chart.Style{
		StrokeColor: chartColor(env.TextColor),
		FontColor:   chartColor(env.TextColor),
	}
	background := chartColor(env.Background)

	var canvas chart.Box
	c := chart.Chart{
		Background: chart.Style{
			FillColor: background,
			Padding:   padding(chartPadding, chartPadding, chartPadding, chartPadding),
		},
		Canvas: chart.Style{FillColor: background},
		XAxis:  chart.XAxis{Style: axis, Range: unitRange()},
		YAxis:  chart.YAxis{Style: axis, Range: unitRange()},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "points",
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    pc.PointRadius,
					DotColor:    chartColor(pc.PointColor.Toolkit()),
				},
				XValues: xs,
				YValues: ys,
			},
		},
		Elements: []chart.Renderable{
			func(_ chart.Renderer, box chart.Box, _ chart.Style) { canvas = box },
		},
	}
	if err := render(area, c); err != nil {
		return chart.Box{}, err
	}
	return canvas, nil
}

// drawXHistogram draws vertical bars over the scatter plot's x range. When
// the scatter plot was not drawn, the bars span the padded area.
func drawXHistogram(area *backend.Area, pc config.PlotConfig, counts []float64, canvas chart.Box, env *toolkit.Env) error {
	if isEmpty(area) || len(counts) == 0 {
		return nil
	}
	w, _ := area.Size()

	pad := padding(chartPadding, chartPadding, chartPadding, 0)
	if !canvas.IsZero() {
		pad.Left = canvas.Left
		pad.Right = int(w) - canvas.Right
	}

	bar := chartColor(pc.BarColor.Toolkit())
	background := chartColor(env.Background)
	hidden := chart.Style{Hidden: true}

	c := chart.Chart{
		Background: chart.Style{FillColor: background, Padding: pad},
		Canvas:     chart.Style{FillColor: background},
		XAxis:      chart.XAxis{Style: hidden, Range: unitRange()},
		YAxis:      chart.YAxis{Style: hidden, Range: &chart.ContinuousRange{Min: 0, Max: pc.HistogramMax}},
		Series: []chart.Series{
			chart.HistogramSeries{
				Name:  "x",
				Style: chart.Style{FillColor: bar, StrokeColor: bar, StrokeWidth: 1},
				InnerSeries: chart.ContinuousSeries{
					XValues: BinCenters(len(counts)),
					YValues: clampCounts(counts, pc.HistogramMax),
				},
			},
		},
	}
	return render(area, c)
}

// drawYHistogram draws horizontal bars, one per bin, between the scatter
// plot's canvas top and bottom.
func drawYHistogram(area *backend.Area, pc config.PlotConfig, counts []float64, canvas chart.Box, env *toolkit.Env) error {
	if isEmpty(area) || len(counts) == 0 {
		return nil
	}
	w, h := area.Size()

	top, bottom := chartPadding, int(h)-chartPadding
	if !canvas.IsZero() {
		top, bottom = canvas.Top, canvas.Bottom
	}
	span := float64(bottom - top)
	length := float64(int(w) - 2*chartPadding)
	if span <= 0 || length <= 0 {
		return nil
	}

	style := backend.Filled(fromToolkit(pc.BarColor.Toolkit()))
	for i, c := range clampCounts(counts, pc.HistogramMax) {
		if c <= 0 {
			continue
		}
		y0 := bottom - int(math.Round(float64(i+1)*span/float64(len(counts))))
		y1 := bottom - int(math.Round(float64(i)*span/float64(len(counts))))
		x1 := chartPadding + int(math.Round(c/pc.HistogramMax*length))
		if err := area.DrawRect(backend.Coord{X: chartPadding, Y: y0}, backend.Coord{X: x1, Y: y1}, style, true); err != nil {
			return err
		}
	}

	axis := backend.Stroke(fromToolkit(env.TextColor))
	return area.DrawLine(backend.Coord{X: chartPadding, Y: top}, backend.Coord{X: chartPadding, Y: bottom}, axis)
}

// drawSummary writes the point count and the mean and standard deviation
// of each coordinate, centered in area.
func drawSummary(area *backend.Area, d *plotData, env *toolkit.Env) error {
	if isEmpty(area) {
		return nil
	}
	w, h := area.Size()

	style := backend.Font(backend.SansSerif, summaryFontSize).WithColor(fromToolkit(env.TextColor))
	lines := []string{
		fmt.Sprintf("n = %d", d.sample.Len()),
		fmt.Sprintf("x %.3f ± %.3f", d.x.Mean, d.x.StdDev),
		fmt.Sprintf("y %.3f ± %.3f", d.y.Mean, d.y.StdDev),
	}

	lineHeight := int(summaryFontSize * 1.5)
	y := int(h)/2 - lineHeight*(len(lines)-1)/2
	for _, line := range lines {
		if err := area.DrawText(line, style, backend.Coord{X: int(w) / 2, Y: y}); err != nil {
			return err
		}
		y += lineHeight
	}
	return nil
}

// clampCounts caps counts at limit so no bar leaves its chart.
func clampCounts(counts []float64, limit float64) []float64 {
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = math.Min(c, limit)
	}
	return out
}
