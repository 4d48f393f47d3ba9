package toolkit

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ErrWindowClosed is returned when the window loop is terminated via context cancellation.
var ErrWindowClosed = errors.New("window closed")

// Options configures a Window.
type Options[T any] struct {
	Title  string
	Width  int
	Height int
	// Env is the theme passed to every widget. DefaultEnv() when nil.
	Env *Env
	// Logger receives window lifecycle messages. NopLogger() when nil.
	Logger Logger
	// Equal decides whether data changed between frames. reflect.DeepEqual
	// when nil.
	Equal func(a, b T) bool
	// Fonts resolves font families. The shared default manager when nil.
	Fonts *FontManager
}

// Window hosts a root widget in an ebiten window. It implements ebiten.Game.
type Window[T any] struct {
	root   Widget[T]
	title  string
	width  int
	height int
	env    *Env
	logger Logger
	equal  func(a, b T) bool
	fonts  *FontManager

	mu          sync.Mutex
	data        T
	shown       T
	size        Size
	rootSize    Size
	added       bool
	needsLayout bool
	pending     []Event
	cursor      Point
	running     bool
	ctx         context.Context
}

// NewWindow creates a window showing root with the initial data.
func NewWindow[T any](root Widget[T], data T, opts Options[T]) *Window[T] {
	w := &Window[T]{
		root:        root,
		title:       opts.Title,
		width:       opts.Width,
		height:      opts.Height,
		env:         opts.Env,
		logger:      opts.Logger,
		equal:       opts.Equal,
		fonts:       opts.Fonts,
		data:        data,
		shown:       data,
		needsLayout: true,
	}
	if w.env == nil {
		w.env = DefaultEnv()
	}
	if w.logger == nil {
		w.logger = NopLogger()
	}
	if w.equal == nil {
		w.equal = func(a, b T) bool { return reflect.DeepEqual(a, b) }
	}
	if w.fonts == nil {
		w.fonts = DefaultFonts()
	}
	if w.width <= 0 {
		w.width = 800
	}
	if w.height <= 0 {
		w.height = 600
	}
	w.size = Size{Width: float64(w.width), Height: float64(w.height)}
	return w
}

// SetContext sets a context for the window loop. When the context is
// cancelled, the loop terminates with ErrWindowClosed.
func (w *Window[T]) SetContext(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ctx = ctx
}

// UpdateData changes the application data. The root widget sees the change
// through Update on the next frame. It is safe to call from any goroutine.
// fn should replace reference-typed fields rather than mutate them in place,
// otherwise the change cannot be detected.
func (w *Window[T]) UpdateData(fn func(data *T)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(&w.data)
}

// Data returns the current application data.
func (w *Window[T]) Data() T {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.data
}

// Env returns the window theme.
func (w *Window[T]) Env() *Env { return w.env }

// Update implements ebiten.Game.Update.
func (w *Window[T]) Update() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.ctx != nil {
		select {
		case <-w.ctx.Done():
			return ErrWindowClosed
		default:
		}
	}

	events := append(w.pending, w.pollInput()...)
	w.pending = nil
	for _, ev := range events {
		w.dispatch(ev)
	}
	w.syncData()
	return nil
}

// Draw implements ebiten.Game.Draw.
func (w *Window[T]) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	defer w.mu.Unlock()

	screen.Fill(w.env.Background)
	w.paint(NewEbitenContext(screen, w.fonts))
}

// Layout implements ebiten.Game.Layout. The root widget fills the window.
func (w *Window[T]) Layout(outsideWidth, outsideHeight int) (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resize(Size{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func (w *Window[T]) Run() error {
	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	w.mu.Lock()
	w.running = true
	w.mu.Unlock()
	w.logger.Debug("window opened", "title", w.title, "width", w.width, "height", w.height)

	err := ebiten.RunGame(w)

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
	w.logger.Debug("window closed", "error", err)

	return err
}

// IsRunning returns whether the window loop is currently running.
func (w *Window[T]) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// resize records a new window size. Must be called with mu held.
func (w *Window[T]) resize(size Size) {
	if size == w.size {
		return
	}
	w.size = size
	w.needsLayout = true
	w.pending = append(w.pending, WindowSizeEvent{Size: size})
}

// ensureAdded delivers WidgetAdded exactly once. Must be called with mu held.
func (w *Window[T]) ensureAdded() {
	if w.added {
		return
	}
	w.added = true
	ctx := NewLifeCycleCtx(w.rootSize)
	w.root.Lifecycle(ctx, WidgetAdded{}, w.data, w.env)
	if ctx.LayoutRequested() {
		w.needsLayout = true
	}
}

// dispatch delivers one event to the root. Must be called with mu held.
func (w *Window[T]) dispatch(ev Event) {
	w.ensureAdded()
	w.layoutIfNeeded(w.textFactory())
	ctx := NewEventCtx(w.rootSize)
	ctx.hot = true
	w.root.Event(ctx, ev, &w.data, w.env)
	if ctx.LayoutRequested() {
		w.needsLayout = true
	}
}

// syncData runs Update when the data changed since the last frame.
// Must be called with mu held.
func (w *Window[T]) syncData() {
	if w.equal(w.shown, w.data) {
		return
	}
	ctx := NewUpdateCtx(w.rootSize)
	w.root.Update(ctx, w.shown, w.data, w.env)
	w.shown = w.data
	if ctx.LayoutRequested() {
		w.needsLayout = true
	}
}

// layoutIfNeeded runs the root layout with tight constraints for the window
// size. Must be called with mu held.
func (w *Window[T]) layoutIfNeeded(factory TextFactory) {
	if !w.needsLayout {
		return
	}
	w.needsLayout = false
	size := w.root.Layout(NewLayoutCtx(factory), Tight(w.size), w.data, w.env)
	if size != w.rootSize {
		w.rootSize = size
		ctx := NewLifeCycleCtx(size)
		w.root.Lifecycle(ctx, SizeChanged{Size: size}, w.data, w.env)
		w.logger.Debug("root layout changed", "width", size.Width, "height", size.Height)
		if ctx.LayoutRequested() {
			w.needsLayout = true
		}
	}
}

// paint lays out if needed and paints the root onto rc. Must be called
// with mu held.
func (w *Window[T]) paint(rc RenderContext) {
	w.ensureAdded()
	w.layoutIfNeeded(rc.Text())
	w.root.Paint(NewPaintCtx(rc), w.data, w.env)
}

func (w *Window[T]) textFactory() TextFactory {
	return &ebitenTextFactory{fonts: w.fonts}
}

var mouseButtons = []struct {
	ebiten ebiten.MouseButton
	button MouseButton
}{
	{ebiten.MouseButtonLeft, ButtonLeft},
	{ebiten.MouseButtonRight, ButtonRight},
	{ebiten.MouseButtonMiddle, ButtonMiddle},
}

// pollInput converts this tick's ebiten input state into events.
func (w *Window[T]) pollInput() []Event {
	var events []Event
	x, y := ebiten.CursorPosition()
	pos := Point{X: float64(x), Y: float64(y)}
	if pos != w.cursor {
		w.cursor = pos
		events = append(events, MouseEvent{Kind: MouseMove, Pos: pos})
	}
	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.ebiten) {
			events = append(events, MouseEvent{Kind: MouseDown, Pos: pos, Button: mb.button})
		}
		if inpututil.IsMouseButtonJustReleased(mb.ebiten) {
			events = append(events, MouseEvent{Kind: MouseUp, Pos: pos, Button: mb.button})
		}
	}
	if dx, dy := ebiten.Wheel(); dx != 0 || dy != 0 {
		events = append(events, WheelEvent{Pos: pos, Delta: Point{X: dx, Y: dy}})
	}
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		events = append(events, KeyEvent{Key: k, Down: true})
	}
	for _, k := range inpututil.AppendJustReleasedKeys(nil) {
		events = append(events, KeyEvent{Key: k, Down: false})
	}
	return events
}
