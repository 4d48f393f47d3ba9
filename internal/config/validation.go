package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/opd-ai/go-plotkit/pkg/toolkit"
)

// ValidationError represents a configuration validation error.
// It contains the field name and a description of the issue.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the results of a configuration validation.
type ValidationResult struct {
	// Errors contains all validation errors found.
	Errors []ValidationError
	// Warnings contains non-fatal issues.
	Warnings []ValidationError
}

// IsValid returns true if there are no validation errors.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error returns a combined error message if there are errors, nil otherwise.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// AddError adds a validation error.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning adds a validation warning.
func (vr *ValidationResult) AddWarning(field, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Message: message})
}

// Validator checks a Config for values the demo cannot use.
type Validator struct {
	fonts *toolkit.FontManager
}

// NewValidator creates a Validator that checks font names against the
// embedded fonts.
func NewValidator() *Validator {
	return &Validator{fonts: toolkit.DefaultFonts()}
}

// WithFonts checks font names against fm instead.
func (v *Validator) WithFonts(fm *toolkit.FontManager) *Validator {
	v.fonts = fm
	return v
}

// Validate performs validation of a Config.
func (v *Validator) Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}

	v.validateWindow(&cfg.Window, result)
	v.validateTheme(&cfg.Theme, result)
	v.validatePlot(&cfg.Plot, result)
	v.validateScript(&cfg.Script, result)

	return result
}

// validateWindow validates WindowConfig settings.
func (v *Validator) validateWindow(wc *WindowConfig, result *ValidationResult) {
	if wc.Width <= 0 {
		result.AddError("window.width", fmt.Sprintf("must be positive, got %d", wc.Width))
	}
	if wc.Height <= 0 {
		result.AddError("window.height", fmt.Sprintf("must be positive, got %d", wc.Height))
	}

	const maxDimension = 10000
	if wc.Width > maxDimension {
		result.AddWarning("window.width", fmt.Sprintf("unusually large value %d", wc.Width))
	}
	if wc.Height > maxDimension {
		result.AddWarning("window.height", fmt.Sprintf("unusually large value %d", wc.Height))
	}
}

// validateTheme validates ThemeConfig settings.
func (v *Validator) validateTheme(tc *ThemeConfig, result *ValidationResult) {
	if tc.FontSize <= 0 {
		result.AddError("theme.font_size", fmt.Sprintf("must be positive, got %g", tc.FontSize))
	}
	if tc.FontSize > 200 {
		result.AddWarning("theme.font_size", fmt.Sprintf("unusually large font size: %g", tc.FontSize))
	}
	if v.fonts != nil {
		if _, ok := v.fonts.Lookup(tc.Font); !ok {
			result.AddWarning("theme.font", fmt.Sprintf("unknown font family %q, using the default", tc.Font))
		}
		if _, ok := v.fonts.Lookup(tc.FallbackFont); !ok {
			result.AddWarning("theme.fallback_font", fmt.Sprintf("unknown font family %q, using serif", tc.FallbackFont))
		}
	}
	if _, _, _, a := tc.Text.Toolkit().Components(); a == 0 {
		result.AddWarning("theme.text", "fully transparent text color will be invisible")
	}
}

// validatePlot validates PlotConfig settings.
func (v *Validator) validatePlot(pc *PlotConfig, result *ValidationResult) {
	if pc.Samples < 0 {
		result.AddError("plot.samples", fmt.Sprintf("must be non-negative, got %d", pc.Samples))
	}
	if pc.Samples > 1_000_000 {
		result.AddWarning("plot.samples", fmt.Sprintf("%d points may render slowly", pc.Samples))
	}
	if pc.StdDev <= 0 || math.IsNaN(pc.StdDev) || math.IsInf(pc.StdDev, 0) {
		result.AddError("plot.std_dev", fmt.Sprintf("must be positive and finite, got %g", pc.StdDev))
	}
	if math.IsNaN(pc.Mean) || math.IsInf(pc.Mean, 0) {
		result.AddError("plot.mean", fmt.Sprintf("must be finite, got %g", pc.Mean))
	}
	if pc.Bins < 1 {
		result.AddError("plot.bins", fmt.Sprintf("must be at least 1, got %d", pc.Bins))
	}
	if pc.HistogramMax <= 0 {
		result.AddError("plot.histogram_max", fmt.Sprintf("must be positive, got %g", pc.HistogramMax))
	}
	if pc.PointRadius < 0 {
		result.AddError("plot.point_radius", fmt.Sprintf("must be non-negative, got %g", pc.PointRadius))
	}
	if pc.SplitX < 0 {
		result.AddError("plot.split_x", fmt.Sprintf("must be non-negative, got %d", pc.SplitX))
	}
	if pc.SplitY < 0 {
		result.AddError("plot.split_y", fmt.Sprintf("must be non-negative, got %d", pc.SplitY))
	}
	if pc.Width <= 0 || pc.Height <= 0 {
		result.AddError("plot.size", fmt.Sprintf("must be positive, got %gx%g", pc.Width, pc.Height))
	}
	if pc.SplitX > int(pc.Width) {
		result.AddWarning("plot.split_x", "beyond the plot width, the y histogram is hidden")
	}
	if pc.SplitY > int(pc.Height) {
		result.AddWarning("plot.split_y", "beyond the plot height, the scatter plot is hidden")
	}
}

// validateScript validates ScriptConfig settings.
func (v *Validator) validateScript(sc *ScriptConfig, result *ValidationResult) {
	if sc.Path == "" {
		return
	}
	if !strings.HasSuffix(sc.Path, ".lua") {
		result.AddWarning("script.path", "does not end in .lua")
	}
	if sc.CPULimit == 0 {
		result.AddWarning("script.cpu_limit", "unlimited; a runaway script will freeze the window")
	}
}
