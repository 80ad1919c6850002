package parallax

import (
	"errors"
	"testing"
)

// newScenario builds an element 2000px down a document in a 1000px
// viewport, bound to a 1000x1200 image.
func newScenario(t *testing.T, cfg Config) (*Instance, *fakeElement, *fakeViewport) {
	t.Helper()
	vp := &fakeViewport{height: 1000}
	el := newElement(2000, "hero.png", nil)
	loader := &syncLoader{images: map[string]Image{"hero.png": fakeImage{1000, 1200}}}
	in := NewInstance(el, vp, loader, cfg)
	if in == nil {
		t.Fatal("NewInstance returned nil")
	}
	if in.State() != StateReady {
		t.Fatalf("State() = %v, want ready", in.State())
	}
	return in, el, vp
}

func TestInstanceReadySizesSurface(t *testing.T) {
	in, el, _ := newScenario(t, DefaultConfig())
	s := el.canvas()
	if s.w != 940 || s.h != 1140 {
		t.Errorf("surface size = %dx%d, want 940x1140", s.w, s.h)
	}
	img := in.Image()
	if !img.Loaded || img.Source != "hero.png" || img.NaturalWidth != 1000 || img.NaturalHeight != 1200 {
		t.Errorf("Image() = %+v", img)
	}
	if g := in.Geometry(); g.TriggerStart != 1000 || g.ElementTop != 2000 || g.ViewportHeight != 1000 {
		t.Errorf("Geometry() = %+v", g)
	}
	if len(s.paints) != 0 {
		t.Errorf("paints at scroll 0 = %d, want 0", len(s.paints))
	}
}

func TestInstanceBottomPassScroll(t *testing.T) {
	tests := []struct {
		scroll    float64
		wantPaint bool
		wantX     float64
		wantY     float64
	}{
		{500, false, 0, 0},   // before trigger
		{999, false, 0, 0},   // one pixel before trigger
		{1000, true, -60, -60},
		{2060, true, -60, 4}, // 3.6 rounds to 4
		{3008, true, -60, 60},
		{3009, false, 0, 0},  // local offset 61 exceeds the displacement
		{3201, false, 0, 0},  // element scrolled past
	}
	for _, tt := range tests {
		in, el, vp := newScenario(t, DefaultConfig())
		vp.root = tt.scroll
		in.HandleScroll()
		s := el.canvas()
		if !tt.wantPaint {
			if len(s.paints) != 0 {
				t.Errorf("scroll %v: painted %+v, want no paint", tt.scroll, s.last())
			}
			continue
		}
		if len(s.paints) != 1 {
			t.Fatalf("scroll %v: %d paints, want 1", tt.scroll, len(s.paints))
		}
		if p := s.last(); p.x != tt.wantX || p.y != tt.wantY {
			t.Errorf("scroll %v: painted at (%v, %v), want (%v, %v)", tt.scroll, p.x, p.y, tt.wantX, tt.wantY)
		}
	}
}

func TestInstanceScrollIsIdempotent(t *testing.T) {
	in, el, vp := newScenario(t, DefaultConfig())
	vp.root = 1500
	in.HandleScroll()
	in.HandleScroll()
	in.HandleScroll()
	if n := len(el.canvas().paints); n != 1 {
		t.Errorf("paints = %d, want 1", n)
	}
	vp.root = 1501
	in.HandleScroll()
	if n := len(el.canvas().paints); n != 2 {
		t.Errorf("paints after new scroll = %d, want 2", n)
	}
	if in.Paints() != 2 {
		t.Errorf("Paints() = %d, want 2", in.Paints())
	}
}

func TestInstanceBodyScrollFallback(t *testing.T) {
	in, el, vp := newScenario(t, DefaultConfig())
	vp.body = 2060
	in.HandleScroll()
	if n := len(el.canvas().paints); n != 1 {
		t.Fatalf("paints = %d, want 1", n)
	}
	if p := el.canvas().last(); p.y != 4 {
		t.Errorf("y = %v, want 4", p.y)
	}
}

func TestInstanceOrientation(t *testing.T) {
	in, el, vp := newScenario(t, DefaultConfig())
	vp.root = 2060
	in.HandleScroll()

	in.HandleOrientation(600, -600)
	if b, g := in.Tilt(); b != 100 || g != -100 {
		t.Errorf("Tilt() = (%d, %d), want (100, -100)", b, g)
	}
	s := el.canvas()
	if len(s.paints) != 2 {
		t.Fatalf("paints = %d, want 2", len(s.paints))
	}
	// Beta clamps to the offset, gamma is left alone.
	if p := s.last(); p.x != 0 || p.y != 104 {
		t.Errorf("painted at (%v, %v), want (0, 104)", p.x, p.y)
	}

	// Same scroll, new tilt: repaints anyway.
	in.HandleOrientation(0, 0)
	if len(s.paints) != 3 {
		t.Fatalf("paints = %d, want 3", len(s.paints))
	}
	if p := s.last(); p.x != -60 || p.y != 4 {
		t.Errorf("painted at (%v, %v), want (-60, 4)", p.x, p.y)
	}
}

func TestInstanceOrientationOutsideWindow(t *testing.T) {
	in, el, vp := newScenario(t, DefaultConfig())
	vp.root = 200
	in.HandleOrientation(60, 60)
	if n := len(el.canvas().paints); n != 0 {
		t.Errorf("paints = %d, want 0", n)
	}
	if b, g := in.Tilt(); b != 10 || g != 10 {
		t.Errorf("Tilt() = (%d, %d), want (10, 10)", b, g)
	}
}

func TestInstanceDocumentMode(t *testing.T) {
	in, el, vp := newScenario(t, Config{Mode: ModeDocument, Offset: 60, Speed: 5})
	if in.Geometry().TriggerStart != 0 {
		t.Fatalf("TriggerStart = %v, want 0", in.Geometry().TriggerStart)
	}
	// The load completion paints at scroll 0.
	s := el.canvas()
	if len(s.paints) != 1 || s.last().y != 0 {
		t.Fatalf("initial paints = %+v", s.paints)
	}

	vp.root = 300
	in.HandleScroll()
	if p := s.last(); len(s.paints) != 2 || p.x != -60 || p.y != 60 {
		t.Errorf("scroll 300: paints = %+v", s.paints)
	}
	vp.root = 305
	in.HandleScroll()
	if len(s.paints) != 2 {
		t.Errorf("scroll 305 painted; local offset 61 should be suppressed")
	}
}

func TestInstanceTopPassMode(t *testing.T) {
	in, el, vp := newScenario(t, Config{Mode: ModeTopPass, Offset: 60, Speed: 4})
	if in.Geometry().TriggerStart != 2000 {
		t.Fatalf("TriggerStart = %v, want 2000", in.Geometry().TriggerStart)
	}
	vp.root = 2100
	in.HandleScroll()
	s := el.canvas()
	if len(s.paints) != 1 || s.last().y != 25 {
		t.Errorf("paints = %+v, want one at y=25", s.paints)
	}
}

func TestInstanceFrame(t *testing.T) {
	in, el, vp := newScenario(t, DefaultConfig())
	vp.root = 1200
	in.Frame()
	in.Frame()
	s := el.canvas()
	if len(s.paints) != 1 {
		t.Fatalf("paints = %d, want 1", len(s.paints))
	}
	vp.root = 1300
	in.Frame()
	if len(s.paints) != 2 {
		t.Errorf("paints = %d, want 2", len(s.paints))
	}
}

func TestInstanceStaleLoadDiscarded(t *testing.T) {
	vp := &fakeViewport{height: 1000, root: 1500}
	el := newElement(2000, "small.png", nil)
	loader := &manualLoader{}
	in := NewInstance(el, vp, loader, DefaultConfig())
	if in.State() != StateLoading {
		t.Fatalf("State() = %v, want loading", in.State())
	}

	el.src = "large.png"
	in.HandleResize()
	if len(loader.sources) != 2 || loader.sources[1] != "large.png" {
		t.Fatalf("load requests = %v", loader.sources)
	}

	loader.complete(1, fakeImage{2000, 2400})
	loader.complete(0, fakeImage{500, 600})

	img := in.Image()
	if img.Source != "large.png" || img.NaturalWidth != 2000 {
		t.Errorf("Image() = %+v, want large.png", img)
	}
	s := el.canvas()
	if s.w != 1940 || s.h != 2340 {
		t.Errorf("surface size = %dx%d, want 1940x2340", s.w, s.h)
	}
	for _, p := range s.paints {
		if p.img != (fakeImage{2000, 2400}) {
			t.Errorf("painted stale image %+v", p.img)
		}
	}
}

func TestInstanceResizeRederivesGeometry(t *testing.T) {
	in, el, vp := newScenario(t, DefaultConfig())
	vp.height = 800
	el.top = 2100
	in.HandleResize()
	g := in.Geometry()
	if g.TriggerStart != 1300 || g.ViewportHeight != 800 || g.ElementTop != 2100 {
		t.Errorf("Geometry() = %+v", g)
	}
	if in.State() != StateReady {
		t.Errorf("State() = %v, want ready", in.State())
	}
}

func TestInstanceLoadFailure(t *testing.T) {
	vp := &fakeViewport{height: 1000, root: 1500}
	el := newElement(2000, "missing.png", nil)
	loader := &manualLoader{}
	in := NewInstance(el, vp, loader, DefaultConfig())
	loader.fail(0)

	if in.State() != StateLoading {
		t.Errorf("State() = %v, want loading", in.State())
	}
	in.HandleScroll()
	in.HandleOrientation(10, 10)
	s := el.canvas()
	if len(s.paints) != 0 || s.w != 0 {
		t.Errorf("failed load touched the surface: %+v", s)
	}
}

func TestInstanceInertCases(t *testing.T) {
	t.Run("image smaller than offset", func(t *testing.T) {
		el := newElement(0, "tiny.png", nil)
		loader := &syncLoader{images: map[string]Image{"tiny.png": fakeImage{50, 50}}}
		in := NewInstance(el, &fakeViewport{height: 1000}, loader, DefaultConfig())
		if in.State() != StateLoading {
			t.Errorf("State() = %v, want loading", in.State())
		}
	})
	t.Run("empty source", func(t *testing.T) {
		el := newElement(0, "", nil)
		loader := &syncLoader{}
		in := NewInstance(el, &fakeViewport{height: 1000}, loader, DefaultConfig())
		if in.State() != StateLoading || loader.calls != 0 {
			t.Errorf("State() = %v, loads = %d", in.State(), loader.calls)
		}
	})
	t.Run("surface resize fails", func(t *testing.T) {
		el := newElement(0, "a.png", nil)
		el.surface = &fakeSurface{sizeErr: errors.New("boom")}
		loader := &syncLoader{images: map[string]Image{"a.png": fakeImage{500, 500}}}
		in := NewInstance(el, &fakeViewport{height: 1000}, loader, DefaultConfig())
		if in.State() != StateLoading {
			t.Errorf("State() = %v, want loading", in.State())
		}
	})
	t.Run("no surface", func(t *testing.T) {
		el := newElement(0, "a.png", nil)
		el.surface = nil
		if in := NewInstance(el, &fakeViewport{}, &syncLoader{}, DefaultConfig()); in != nil {
			t.Error("NewInstance returned an instance for an element without surface")
		}
	})
}

func TestInstanceClose(t *testing.T) {
	vp := &fakeViewport{height: 1000, root: 1500}
	el := newElement(2000, "hero.png", nil)
	loader := &manualLoader{}
	in := NewInstance(el, vp, loader, DefaultConfig())

	in.Close()
	loader.complete(0, fakeImage{1000, 1200})
	in.HandleScroll()
	in.HandleOrientation(30, 30)
	in.HandleResize()
	in.Frame()

	if in.State() != StateClosed {
		t.Errorf("State() = %v, want closed", in.State())
	}
	if len(loader.sources) != 1 {
		t.Errorf("load requests after Close = %v", loader.sources)
	}
	if s := el.canvas(); len(s.paints) != 0 || s.w != 0 {
		t.Errorf("closed instance touched the surface: %+v", s)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateUninitialized: "uninitialized",
		StateLoading:       "loading",
		StateReady:         "ready",
		StateClosed:        "closed",
		State(99):          "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}
