package toolkit

// Env carries theme values down the widget tree. Widgets read it during a
// frame and never modify it.
type Env struct {
	// Background fills the window before the root widget paints.
	Background Color
	// TextColor is the default color for text layouts.
	TextColor Color
	// FontFamily is the default family for text layouts.
	FontFamily FontFamily
	// FontSize is the default text size in points.
	FontSize float64
	// FallbackFamily is used when a requested family cannot be resolved.
	FallbackFamily FontFamily
}

// DefaultEnv returns the default theme: black sans-serif text on white.
func DefaultEnv() *Env {
	return &Env{
		Background:     White,
		TextColor:      Black,
		FontFamily:     SansSerifFamily,
		FontSize:       DefaultFontSize,
		FallbackFamily: SerifFamily,
	}
}

// Adapt returns a copy of env modified by fn.
func (e *Env) Adapt(fn func(*Env)) *Env {
	c := *e
	fn(&c)
	return &c
}
