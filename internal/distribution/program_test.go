package distribution

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/opd-ai/go-plotkit/internal/config"
	"github.com/opd-ai/go-plotkit/pkg/backend"
	"github.com/opd-ai/go-plotkit/pkg/plotui"
	"github.com/opd-ai/go-plotkit/pkg/toolkit"
)

// recordingBackend implements backend.DrawingBackend and
// backend.PolygonFiller and records what was drawn.
type recordingBackend struct {
	w, h     uint32
	rects    []string
	circles  int
	polygons int
	texts    []string
	fail     error
}

func (r *recordingBackend) Size() (uint32, uint32) { return r.w, r.h }
func (r *recordingBackend) EnsurePrepared() error  { return nil }
func (r *recordingBackend) Present() error         { return nil }

func (r *recordingBackend) DrawPixel(backend.Coord, backend.Color) error { return nil }

func (r *recordingBackend) DrawLine(from, to backend.Coord, s backend.Style) error { return nil }

func (r *recordingBackend) DrawRect(ul, br backend.Coord, s backend.Style, fill bool) error {
	r.rects = append(r.rects, fmt.Sprintf("%v-%v", ul, br))
	return nil
}

func (r *recordingBackend) DrawPath([]backend.Coord, backend.Style) error { return nil }

func (r *recordingBackend) DrawCircle(c backend.Coord, radius uint32, s backend.Style, fill bool) error {
	if fill {
		r.circles++
	}
	return r.fail
}

func (r *recordingBackend) DrawText(text string, s backend.TextStyle, pos backend.Coord) error {
	r.texts = append(r.texts, text)
	return nil
}

func (r *recordingBackend) EstimateTextSize(text string, s backend.TextStyle) (uint32, uint32, error) {
	return uint32(len(text) * 6), 10, nil
}

func (r *recordingBackend) FillPolygon([]backend.Coord, backend.Style) error {
	r.polygons++
	return nil
}

func TestDrawDistribution(t *testing.T) {
	pc := testPlotConfig(300)
	b := &recordingBackend{w: 750, h: 750}
	p := New(nil)

	if err := p.Draw(b, pc, toolkit.DefaultEnv()); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	if len(b.rects) == 0 || b.rects[0] != "{0 0}-{750 750}" {
		t.Errorf("first rect = %v, want the whole surface filled", b.rects)
	}

	s := p.Sample(pc)
	inside := 0
	for i := range s.X {
		if s.X[i] >= 0 && s.X[i] <= 1 && s.Y[i] >= 0 && s.Y[i] <= 1 {
			inside++
		}
	}
	if b.circles != inside {
		t.Errorf("filled circles = %d, want one per point inside the unit square (%d)", b.circles, inside)
	}
	if b.polygons == 0 {
		t.Error("no chart boxes or histogram bars were filled")
	}

	joined := strings.Join(b.texts, "\n")
	if !strings.Contains(joined, "n = 300") {
		t.Errorf("texts = %q, want the point count", b.texts)
	}
	if len(b.texts) <= 3 {
		t.Errorf("texts = %q, want scatter axis labels", b.texts)
	}
}

func TestDrawSkipsEmptyAreas(t *testing.T) {
	pc := testPlotConfig(50)
	pc.SplitX, pc.SplitY = 944, 80
	b := &recordingBackend{w: 750, h: 750}

	if err := New(nil).Draw(b, pc, nil); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	for _, text := range b.texts {
		if strings.HasPrefix(text, "n = ") {
			t.Errorf("summary drawn in a zero-width area")
		}
	}
	if b.circles == 0 {
		t.Error("scatter plot not drawn")
	}
}

func TestDrawJoinsPartErrors(t *testing.T) {
	sentinel := errors.New("no circles")
	b := &recordingBackend{w: 400, h: 400, fail: sentinel}
	pc := testPlotConfig(20)
	pc.SplitX, pc.SplitY = 300, 100

	err := New(nil).Draw(b, pc, nil)
	if !errors.Is(err, sentinel) {
		t.Fatalf("Draw() error = %v, want %v", err, sentinel)
	}
	if !strings.Contains(err.Error(), "scatter plot") {
		t.Errorf("error %q does not name the failing part", err)
	}
	if len(b.texts) == 0 {
		t.Error("parts after the failure were not drawn")
	}
}

func TestPrepareCachesSample(t *testing.T) {
	p := New(nil)
	pc := testPlotConfig(10)

	first := p.prepare(pc)
	if p.prepare(pc) != first {
		t.Error("unchanged config regenerated the data")
	}

	pc.Bins = 10
	rebinned := p.prepare(pc)
	if rebinned == first || &rebinned.sample.X[0] != &first.sample.X[0] {
		t.Error("changing the bins should rebin the same sample")
	}
	if len(rebinned.xCounts) != 10 {
		t.Errorf("bins = %d, want 10", len(rebinned.xCounts))
	}

	pc.Seed = 99
	if p.prepare(pc).sample.X[0] == first.sample.X[0] {
		t.Error("changing the seed should regenerate the sample")
	}
}

func TestLayoutPlot(t *testing.T) {
	pc := testPlotConfig(1)
	pc.Width, pc.Height = 600, 400
	p := New(nil)

	got := p.LayoutPlot(nil, toolkit.Loose(toolkit.Size{Width: 500, Height: 500}), pc, nil)
	if got != (toolkit.Size{Width: 500, Height: 400}) {
		t.Errorf("LayoutPlot() = %v, want 500x400", got)
	}
}

func TestUpdateSelf(t *testing.T) {
	p := New(nil)
	pc := testPlotConfig(1)

	ctx := toolkit.NewUpdateCtx(toolkit.Size{})
	p.UpdateSelf(ctx, pc, pc, nil)
	if ctx.PaintRequested() {
		t.Error("unchanged data requested a paint")
	}

	changed := pc
	changed.PointColor = config.Color(toolkit.Black)
	ctx = toolkit.NewUpdateCtx(toolkit.Size{})
	p.UpdateSelf(ctx, pc, changed, nil)
	if !ctx.PaintRequested() || ctx.LayoutRequested() {
		t.Error("a color change should repaint without layout")
	}

	resized := pc
	resized.Width = 100
	ctx = toolkit.NewUpdateCtx(toolkit.Size{})
	p.UpdateSelf(ctx, pc, resized, nil)
	if !ctx.LayoutRequested() {
		t.Error("a size change should request layout")
	}
}

func TestRendersThroughWidget(t *testing.T) {
	pc := testPlotConfig(200)
	pc.Width, pc.Height = 300, 300
	pc.SplitX, pc.SplitY = 250, 50
	pc.PointRadius = 3

	w := plotui.New[config.PlotConfig](New(nil))
	img := toolkit.RenderToImage[config.PlotConfig](w, pc, toolkit.DefaultEnv(), toolkit.Size{Width: 300, Height: 300})
	bounds := img.Bounds()
	if bounds.Dx() != 300 || bounds.Dy() != 300 {
		t.Fatalf("image size = %v, want 300x300", bounds)
	}

	green := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.G > 200 && c.R < 50 && c.B < 50 {
				green++
			}
		}
	}
	if green == 0 {
		t.Error("no point or bar pixels in the rendered plot")
	}
}
