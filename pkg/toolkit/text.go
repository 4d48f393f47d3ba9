package toolkit

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	etext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// DefaultFontSize is the text size used when neither the caller nor the Env
// picks one.
const DefaultFontSize = 12.0

// lineSpacingFactor is the line height as a multiple of the font size.
const lineSpacingFactor = 1.2

// fontSource holds one font's data and the per-engine faces parsed from it.
type fontSource struct {
	data   []byte
	sfnt   *opentype.Font
	goText *etext.GoTextFaceSource
	faces  map[float64]font.Face
	mu     sync.Mutex
}

// goTextSource returns the ebiten text/v2 face source, parsing it on first use.
func (fs *fontSource) goTextSource() (*etext.GoTextFaceSource, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.goText == nil {
		src, err := etext.NewGoTextFaceSource(bytes.NewReader(fs.data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		fs.goText = src
	}
	return fs.goText, nil
}

// openTypeFace returns an x/image face at size, cached per size.
func (fs *fontSource) openTypeFace(size float64) (font.Face, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if face, ok := fs.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(fs.sfnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face at size %g: %w", size, err)
	}
	if fs.faces == nil {
		fs.faces = make(map[float64]font.Face)
	}
	fs.faces[size] = face
	return face, nil
}

type familyEntry struct {
	name   string
	source *fontSource
}

// FontManager resolves font family names to font data. It is safe for
// concurrent use.
type FontManager struct {
	families map[string]familyEntry
	fallback string
	mu       sync.RWMutex
}

// NewFontManager returns a FontManager preloaded with the embedded Go fonts.
// The generic families resolve as follows: sans-serif and serif to Go,
// monospace to Go Mono. The embedded fonts include no serif face.
func NewFontManager() *FontManager {
	fm := &FontManager{
		families: make(map[string]familyEntry),
		fallback: SerifFamily.name,
	}
	fm.mustRegister("Go", goregular.TTF)
	fm.mustRegister("Go Bold", gobold.TTF)
	fm.mustRegister("Go Mono", gomono.TTF)

	for _, alias := range [][2]string{
		{"gosans", "Go"},
		{SansSerifFamily.name, "Go"},
		{SerifFamily.name, "Go"},
		{"gomono", "Go Mono"},
		{MonospaceFamily.name, "Go Mono"},
	} {
		_ = fm.RegisterAlias(alias[0], alias[1])
	}
	return fm
}

func (fm *FontManager) mustRegister(name string, data []byte) {
	if err := fm.RegisterFont(name, data); err != nil {
		panic("failed to load embedded font: " + err.Error())
	}
}

// RegisterFont registers TrueType or OpenType data under a family name,
// replacing any family of the same name.
func (fm *FontManager) RegisterFont(name string, data []byte) error {
	sfnt, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse font data for %s: %w", name, err)
	}
	fm.mu.Lock()
	defer fm.mu.Unlock()
	fm.families[strings.ToLower(name)] = familyEntry{
		name:   name,
		source: &fontSource{data: data, sfnt: sfnt},
	}
	return nil
}

// LoadFontFromFile reads a font file and registers it under name.
func (fm *FontManager) LoadFontFromFile(name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read font file %s: %w", path, err)
	}
	return fm.RegisterFont(name, data)
}

// RegisterAlias makes alias resolve to an existing family.
func (fm *FontManager) RegisterAlias(alias, family string) error {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	entry, ok := fm.families[strings.ToLower(family)]
	if !ok {
		return fmt.Errorf("font family %s not found", family)
	}
	fm.families[strings.ToLower(alias)] = familyEntry{name: alias, source: entry.source}
	return nil
}

// Lookup resolves a family name, case-insensitively.
func (fm *FontManager) Lookup(name string) (FontFamily, bool) {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	entry, ok := fm.families[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return FontFamily{}, false
	}
	return FontFamily{name: entry.name}, true
}

// source returns the font data for a family handle, falling back to the
// serif family for handles the manager does not know.
func (fm *FontManager) source(f FontFamily) (*fontSource, error) {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	if entry, ok := fm.families[strings.ToLower(f.name)]; ok {
		return entry.source, nil
	}
	if entry, ok := fm.families[fm.fallback]; ok {
		return entry.source, nil
	}
	return nil, fmt.Errorf("font family %q not found and no fallback registered", f.name)
}

// ListFamilies returns the sorted names of all registered families and
// aliases.
func (fm *FontManager) ListFamilies() []string {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	names := make([]string, 0, len(fm.families))
	for _, e := range fm.families {
		names = append(names, e.name)
	}
	sort.Strings(names)
	return names
}

// layoutBuilder implements TextLayoutBuilder for both render contexts. The
// engine-specific part is the build function.
type layoutBuilder struct {
	text   string
	family FontFamily
	size   float64
	color  Color
	build  func(b *layoutBuilder) (TextLayout, error)
}

func newLayoutBuilder(text string, build func(b *layoutBuilder) (TextLayout, error)) *layoutBuilder {
	return &layoutBuilder{
		text:   text,
		family: SansSerifFamily,
		size:   DefaultFontSize,
		color:  Black,
		build:  build,
	}
}

// Font implements TextLayoutBuilder.
func (b *layoutBuilder) Font(family FontFamily, size float64) TextLayoutBuilder {
	b.family = family
	if size > 0 {
		b.size = size
	}
	return b
}

// TextColor implements TextLayoutBuilder.
func (b *layoutBuilder) TextColor(c Color) TextLayoutBuilder {
	b.color = c
	return b
}

// Build implements TextLayoutBuilder.
func (b *layoutBuilder) Build() (TextLayout, error) {
	return b.build(b)
}

// Label is a lazily built text layout. Setters only record changes; the
// layout is rebuilt by RebuildIfNeeded against a TextFactory and Env.
type Label struct {
	text     string
	font     *FontDescriptor
	size     float64
	color    *Color
	layout   TextLayout
	outdated bool
}

// NewLabel returns a label for text.
func NewLabel(text string) *Label {
	return &Label{text: text, outdated: true}
}

// SetText replaces the label text.
func (l *Label) SetText(text string) {
	if text != l.text {
		l.text = text
		l.outdated = true
	}
}

// SetFont sets the font. A size set with SetTextSize takes precedence over
// the descriptor's size.
func (l *Label) SetFont(fd FontDescriptor) {
	l.font = &fd
	l.outdated = true
}

// SetTextSize overrides the font size.
func (l *Label) SetTextSize(size float64) {
	l.size = size
	l.outdated = true
}

// SetTextColor overrides the Env text color.
func (l *Label) SetTextColor(c Color) {
	l.color = &c
	l.outdated = true
}

// NeedsRebuild reports whether the layout is missing or stale.
func (l *Label) NeedsRebuild() bool {
	return l.outdated || l.layout == nil
}

// RebuildIfNeeded builds the layout when a setter changed it since the last
// build. Unset properties come from env.
func (l *Label) RebuildIfNeeded(factory TextFactory, env *Env) error {
	if !l.NeedsRebuild() {
		return nil
	}
	if env == nil {
		env = DefaultEnv()
	}
	family := env.FontFamily
	size := env.FontSize
	if l.font != nil {
		family = l.font.Family
		if l.font.Size > 0 {
			size = l.font.Size
		}
	}
	if l.size > 0 {
		size = l.size
	}
	color := env.TextColor
	if l.color != nil {
		color = *l.color
	}

	layout, err := factory.NewTextLayout(l.text).Font(family, size).TextColor(color).Build()
	if err != nil {
		return fmt.Errorf("failed to build label %q: %w", l.text, err)
	}
	l.layout = layout
	l.outdated = false
	return nil
}

// Size returns the measured size of the last built layout, or the zero size
// when nothing has been built.
func (l *Label) Size() Size {
	if l.layout == nil {
		return Size{}
	}
	return l.layout.Size()
}

// Layout returns the last built layout, or nil.
func (l *Label) Layout() TextLayout {
	return l.layout
}

// Draw draws the last built layout with its top-left corner at pos.
func (l *Label) Draw(ctx *PaintCtx, pos Point) {
	if l.layout != nil {
		ctx.DrawText(l.layout, pos)
	}
}

// textLayout is the TextLayout produced by both render contexts. Either
// context can draw a layout measured by the other.
type textLayout struct {
	text     string
	lines    []string
	family   FontFamily
	fontSize float64
	color    Color
	size     Size
}

func newTextLayout(b *layoutBuilder) *textLayout {
	return &textLayout{
		text:     b.text,
		lines:    strings.Split(b.text, "\n"),
		family:   b.family,
		fontSize: b.size,
		color:    b.color,
	}
}

// Text implements TextLayout.
func (l *textLayout) Text() string { return l.text }

// Size implements TextLayout.
func (l *textLayout) Size() Size { return l.size }

func (l *textLayout) lineHeight() float64 { return l.fontSize * lineSpacingFactor }
