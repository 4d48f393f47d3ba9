package toolkit

import (
	"image"
	"math"
	"sync"
)

var (
	defaultFonts     *FontManager
	defaultFontsOnce sync.Once
)

// DefaultFonts returns the shared FontManager holding the embedded Go fonts.
func DefaultFonts() *FontManager {
	defaultFontsOnce.Do(func() {
		defaultFonts = NewFontManager()
	})
	return defaultFonts
}

// RenderToImage runs a widget through WidgetAdded, layout and paint without
// a window and returns the result. The widget is laid out with tight
// constraints for size.
func RenderToImage[T any](w Widget[T], data T, env *Env, size Size) *image.RGBA {
	if env == nil {
		env = DefaultEnv()
	}
	img := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(size.Width)), int(math.Ceil(size.Height))))
	rc := NewImageContext(img, DefaultFonts())

	w.Lifecycle(NewLifeCycleCtx(Size{}), WidgetAdded{}, data, env)
	got := w.Layout(NewLayoutCtx(rc.Text()), Tight(size), data, env)
	w.Lifecycle(NewLifeCycleCtx(got), SizeChanged{Size: got}, data, env)

	rc.Fill(RectFromOriginSize(Point{}, size), env.Background)
	w.Paint(NewPaintCtx(rc.Sub(RectFromOriginSize(Point{}, got))), data, env)
	return img
}
