package page

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gogpu/gg"
	"github.com/gogpu/parallax"
	"github.com/gogpu/parallax/canvas"
)

const heroPage = `
viewport:
  width: 800
  height: 1000
  document_height: 5000
elements:
  - id: hero
    top: 2000
    attrs:
      data-parallax: ""
      data-parallax-offset: "60"
    src: small.png
    sources:
      - media: "(min-width: 1024px)"
        src: large.png
      - media: "min-width: 600"
        src: medium.png
  - id: plain
    top: 100
    src: plain.png
  - id: late
    top: 3000
    pending: true
    attrs:
      data-parallax: ""
      data-parallax-start: document
    src: small.png
`

func mustParse(t *testing.T, doc string) *Page {
	t.Helper()
	p, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestParse(t *testing.T) {
	p := mustParse(t, heroPage)
	if w, h := p.View().Size(); w != 800 || h != 1000 {
		t.Errorf("viewport = %dx%d, want 800x1000", w, h)
	}
	if n := len(p.Elements()); n != 3 {
		t.Fatalf("Elements() = %d, want 3", n)
	}
	hero, ok := p.Element("hero")
	if !ok {
		t.Fatal("Element(hero) not found")
	}
	if hero.DocumentTop() != 2000 || !hero.Complete() {
		t.Errorf("hero top = %v, complete = %v", hero.DocumentTop(), hero.Complete())
	}
	if _, ok := hero.Attr(parallax.AttrMarker); !ok {
		t.Error("hero is missing the marker attribute")
	}
	if late, _ := p.Element("late"); late.Complete() {
		t.Error("late element should be pending")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"no viewport", "elements: []", ErrInvalidViewport},
		{"duplicate", "viewport: {width: 10, height: 10}\nelements: [{id: a}, {id: a}]", ErrDuplicateElement},
		{"bad media", "viewport: {width: 10, height: 10}\nelements: [{id: a, sources: [{media: '(max-width: 10px)', src: x}]}]", ErrInvalidMedia},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := Parse([]byte("viewport: [")); err == nil {
		t.Error("Parse() accepted malformed YAML")
	}
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{"pages/home.yaml": &fstest.MapFile{Data: []byte(heroPage)}}
	p, err := Load(fsys, "pages/home.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer p.Close()
	if len(p.All()) != 3 {
		t.Errorf("All() = %d, want 3", len(p.All()))
	}
	if _, err := Load(fsys, "missing.yaml"); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}

func TestCurrentSource(t *testing.T) {
	p := mustParse(t, heroPage)
	hero, _ := p.Element("hero")
	tests := []struct {
		width int
		want  string
	}{
		{320, "small.png"},
		{600, "medium.png"},
		{800, "medium.png"},
		{1024, "large.png"},
		{1920, "large.png"},
	}
	for _, tt := range tests {
		if err := p.View().Resize(tt.width, 1000); err != nil {
			t.Fatalf("Resize() error = %v", err)
		}
		if got := hero.CurrentSource(); got != tt.want {
			t.Errorf("width %d: CurrentSource() = %q, want %q", tt.width, got, tt.want)
		}
	}
}

func TestViewportScroll(t *testing.T) {
	p := mustParse(t, heroPage)
	v := p.View()
	v.SetScroll(-10)
	if v.Scroll() != 0 {
		t.Errorf("Scroll() = %v, want 0", v.Scroll())
	}
	v.ScrollBy(1500)
	if v.RootScrollTop() != 1500 || v.BodyScrollTop() != 0 {
		t.Errorf("root/body = %v/%v, want 1500/0", v.RootScrollTop(), v.BodyScrollTop())
	}
	v.ScrollBy(10000)
	if v.Scroll() != 4000 {
		t.Errorf("Scroll() = %v, want 4000", v.Scroll())
	}
	if err := v.Resize(800, 2000); err != nil {
		t.Fatal(err)
	}
	if v.Scroll() != 3000 {
		t.Errorf("Scroll() after resize = %v, want 3000", v.Scroll())
	}
	if err := v.Resize(0, 10); !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("Resize(0, 10) error = %v", err)
	}
}

func TestViewportQuirks(t *testing.T) {
	p := mustParse(t, "viewport: {width: 100, height: 100, quirks: true, scroll: 42}")
	v := p.View()
	if v.RootScrollTop() != 0 || v.BodyScrollTop() != 42 {
		t.Errorf("root/body = %v/%v, want 0/42", v.RootScrollTop(), v.BodyScrollTop())
	}
	if got := parallax.NewScrollTracker(v).Current(); got != 42 {
		t.Errorf("ScrollTracker.Current() = %d, want 42", got)
	}
	if v.MaxScroll() != -1 {
		t.Errorf("MaxScroll() = %v, want unbounded", v.MaxScroll())
	}
}

func TestCompleteRunsCallbacks(t *testing.T) {
	p := mustParse(t, heroPage)
	late, _ := p.Element("late")
	calls := 0
	late.OnComplete(func() { calls++ })
	if err := p.Complete("late"); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	p.CompleteAll()
	if calls != 1 || !late.Complete() {
		t.Errorf("calls = %d, complete = %v", calls, late.Complete())
	}
	late.OnComplete(func() { calls++ })
	if calls != 2 {
		t.Errorf("OnComplete on a complete element did not run immediately")
	}
	if err := p.Complete("nope"); !errors.Is(err, ErrUnknownElement) {
		t.Errorf("Complete(nope) error = %v", err)
	}
}

func solidPNG(t *testing.T, w, h int, c color.NRGBA) *fstest.MapFile {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return &fstest.MapFile{Data: buf.Bytes()}
}

func TestPageDrivesRegistry(t *testing.T) {
	p := mustParse(t, heroPage)
	fsys := fstest.MapFS{
		"medium.png": solidPNG(t, 200, 300, color.NRGBA{R: 255, A: 255}),
		"small.png":  solidPNG(t, 100, 100, color.NRGBA{B: 255, A: 255}),
	}
	loader := parallax.NewFSLoader(fsys, parallax.WithDecodeWorkers(1))
	defer loader.Close()

	r := parallax.Discover(p, loader)
	defer r.Close()
	if len(r.Instances()) != 1 || r.Pending() != 1 {
		t.Fatalf("instances = %d, pending = %d", len(r.Instances()), r.Pending())
	}
	loader.Sync()

	hero, _ := p.Element("hero")
	if w, h := hero.Canvas().Size(); w != 140 || h != 240 {
		t.Errorf("hero canvas = %dx%d, want 140x240", w, h)
	}

	p.View().SetScroll(1500)
	r.Frame()
	if hero.Canvas().Paints() != 1 {
		t.Fatalf("hero paints = %d, want 1", hero.Canvas().Paints())
	}

	dc := p.Frame(gg.RGB(1, 1, 1))
	cr, cg, _, _ := dc.Image().At(10, 510).RGBA()
	if cr>>8 < 250 || cg>>8 > 5 {
		t.Errorf("composed pixel = (%d, %d), want red", cr>>8, cg>>8)
	}
	wr, wg, _, _ := dc.Image().At(400, 510).RGBA()
	if wr>>8 < 250 || wg>>8 < 250 {
		t.Errorf("background pixel = (%d, %d), want white", wr>>8, wg>>8)
	}

	p.CompleteAll()
	if len(r.Instances()) != 2 {
		t.Errorf("instances after CompleteAll = %d, want 2", len(r.Instances()))
	}
}

func TestFrameSkipsClosedCanvas(t *testing.T) {
	var logs bytes.Buffer
	orig := parallax.Logger()
	t.Cleanup(func() { parallax.SetLogger(orig) })
	parallax.SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))

	p := mustParse(t, heroPage)
	plain, _ := p.Element("plain")
	_ = plain.Canvas().Close()
	if err := p.Compose(gg.NewContext(800, 1000)); !errors.Is(err, canvas.ErrCanvasClosed) {
		t.Errorf("Compose() error = %v, want ErrCanvasClosed", err)
	}

	dc := p.Frame(gg.RGB(1, 1, 1))
	if dc == nil {
		t.Fatal("Frame() = nil")
	}
	if !strings.Contains(logs.String(), "frame incomplete") {
		t.Errorf("log = %q, want a frame incomplete warning", logs.String())
	}
}
