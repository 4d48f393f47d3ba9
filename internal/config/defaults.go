package config

import "github.com/opd-ai/go-plotkit/pkg/toolkit"

// Default values for configuration options.
const (
	// DefaultTitle is the default window title.
	DefaultTitle = "plotdemo"
	// DefaultWidth is the default window width in pixels.
	DefaultWidth = 750
	// DefaultHeight is the default window height in pixels.
	DefaultHeight = 750
	// DefaultFont is the default font family.
	DefaultFont = "sans-serif"
	// DefaultFallbackFont is the default fallback font family.
	DefaultFallbackFont = "serif"
	// DefaultFontSize is the default font size in points.
	DefaultFontSize = 12.0
	// DefaultSamples is the default number of random points.
	DefaultSamples = 5000
)

// Default colors.
var (
	// DefaultBackground is the default background color (white).
	DefaultBackground = Color(toolkit.White)
	// DefaultTextColor is the default text color (black).
	DefaultTextColor = Color(toolkit.Black)
	// DefaultPlotColor is the default point and bar color (pure green).
	DefaultPlotColor = Color(toolkit.RGB8(0, 255, 0))
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  DefaultTitle,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Theme: ThemeConfig{
			Background:   DefaultBackground,
			Text:         DefaultTextColor,
			Font:         DefaultFont,
			FontSize:     DefaultFontSize,
			FallbackFont: DefaultFallbackFont,
		},
		Plot: PlotConfig{
			Samples:      DefaultSamples,
			Mean:         0.5,
			StdDev:       0.13,
			Seed:         1,
			Bins:         100,
			HistogramMax: 250,
			PointRadius:  2,
			PointColor:   DefaultPlotColor,
			BarColor:     DefaultPlotColor,
			SplitX:       650,
			SplitY:       100,
			Width:        DefaultWidth,
			Height:       DefaultHeight,
		},
		Script: ScriptConfig{
			CPULimit:    10_000_000,
			MemoryLimit: 50 * 1024 * 1024,
		},
	}
}
