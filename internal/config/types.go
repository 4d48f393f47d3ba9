// Package config provides the YAML configuration of the plot demo.
// It defines the configuration types, their defaults, environment variable
// expansion, validation and a file watcher for hot reload.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-plotkit/pkg/toolkit"
)

// Config represents the complete plot demo configuration.
type Config struct {
	// Window contains window-related configuration options.
	Window WindowConfig `yaml:"window"`
	// Theme contains the colors and fonts handed to widgets.
	Theme ThemeConfig `yaml:"theme"`
	// Plot contains the parameters of the distribution plot.
	Plot PlotConfig `yaml:"plot"`
	// Script configures an optional Lua plot shown below the distribution.
	Script ScriptConfig `yaml:"script"`
}

// WindowConfig holds window-related configuration options.
type WindowConfig struct {
	// Title is the window title.
	Title string `yaml:"title"`
	// Width is the initial window width in pixels.
	Width int `yaml:"width"`
	// Height is the initial window height in pixels.
	Height int `yaml:"height"`
}

// ThemeConfig holds the widget theme.
type ThemeConfig struct {
	// Background is the window background color.
	Background Color `yaml:"background"`
	// Text is the default text color.
	Text Color `yaml:"text"`
	// Font is the default font family name.
	Font string `yaml:"font"`
	// FontSize is the default font size in points.
	FontSize float64 `yaml:"font_size"`
	// FallbackFont is used when a requested family is unknown.
	FallbackFont string `yaml:"fallback_font"`
}

// PlotConfig holds the distribution plot parameters.
type PlotConfig struct {
	// Samples is the number of random points.
	Samples int `yaml:"samples"`
	// Mean is the mean of both coordinates.
	Mean float64 `yaml:"mean"`
	// StdDev is the standard deviation of both coordinates.
	StdDev float64 `yaml:"std_dev"`
	// Seed seeds the random generator; equal seeds give equal points.
	Seed uint64 `yaml:"seed"`
	// Bins is the number of histogram bins over [0, 1).
	Bins int `yaml:"bins"`
	// HistogramMax is the upper bound of the histogram count axis.
	HistogramMax float64 `yaml:"histogram_max"`
	// PointRadius is the scatter point radius in pixels.
	PointRadius float64 `yaml:"point_radius"`
	// PointColor is the scatter point color.
	PointColor Color `yaml:"point_color"`
	// BarColor is the histogram bar color.
	BarColor Color `yaml:"bar_color"`
	// SplitX is the x breakpoint between the scatter plot and the y histogram.
	SplitX int `yaml:"split_x"`
	// SplitY is the y breakpoint between the x histogram and the scatter plot.
	SplitY int `yaml:"split_y"`
	// Width and Height are the size the plot asks for.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ScriptConfig configures the Lua plot.
type ScriptConfig struct {
	// Path is the Lua script. Empty disables the Lua plot.
	Path string `yaml:"path"`
	// CPULimit is the instruction limit per Lua call. 0 means unlimited.
	CPULimit uint64 `yaml:"cpu_limit"`
	// MemoryLimit is the allocation limit in bytes per Lua call. 0 means unlimited.
	MemoryLimit uint64 `yaml:"memory_limit"`
}

// Color is a toolkit color written in YAML as a color string: a name
// ("navy"), hex ("#1f77b4", "#1f77b480") or rgb()/rgba().
type Color toolkit.Color

// UnmarshalYAML implements yaml.Unmarshaler. Environment variables in the
// string are expanded before parsing.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("line %d: color must be a string: %w", value.Line, err)
	}
	parsed, err := toolkit.ParseColor(ExpandEnv(s))
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = Color(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// Toolkit returns the color as a toolkit.Color.
func (c Color) Toolkit() toolkit.Color { return toolkit.Color(c) }

// String returns the color as #rrggbbaa.
func (c Color) String() string { return toolkit.Color(c).String() }

// Env builds the widget theme. Font names the manager does not know fall
// back to the generic sans-serif and serif families.
func (c *Config) Env(fonts *toolkit.FontManager) *toolkit.Env {
	env := toolkit.DefaultEnv()
	env.Background = c.Theme.Background.Toolkit()
	env.TextColor = c.Theme.Text.Toolkit()
	if c.Theme.FontSize > 0 {
		env.FontSize = c.Theme.FontSize
	}
	if fonts != nil {
		if f, ok := fonts.Lookup(c.Theme.Font); ok {
			env.FontFamily = f
		}
		if f, ok := fonts.Lookup(c.Theme.FallbackFont); ok {
			env.FallbackFamily = f
		}
	}
	return env
}
