package parallax

import "log/slog"

// State is the lifecycle state of an Instance.
type State uint8

const (
	// StateUninitialized is the state before the first load is issued.
	StateUninitialized State = iota

	// StateLoading waits for the current image generation to decode.
	// An unavailable image keeps the instance here for good.
	StateLoading

	// StateReady paints on scroll, touch and orientation events.
	StateReady

	// StateClosed ignores all events and pending completions.
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// ImageState describes the image currently bound to an instance.
// It is replaced, never mutated, on every reload.
type ImageState struct {
	Source        string
	NaturalWidth  int
	NaturalHeight int
	Loaded        bool

	image Image
}

// Instance is the parallax controller of one element. It owns the layout
// geometry, the current image and tilt state, and decides on every event
// whether and how to repaint the element's surface.
//
// Instance is NOT safe for concurrent use: every method must be called
// from the host's event goroutine.
type Instance struct {
	el       Element
	viewport Viewport
	loader   Loader
	surface  Surface
	cfg      Config
	mapper   OffsetMapper
	scroll   ScrollTracker
	log      *slog.Logger

	state State
	geom  Geometry
	img   ImageState
	tilt  TiltTracker

	// generation identifies the most recent load; older completions
	// are discarded.
	generation uint64

	lastPainted int
	painted     bool
	inFlight    bool

	lastSeen int
	seen     bool

	paints uint64
}

// NewInstance creates an instance for el and starts loading its current
// source. It returns nil if el has no surface.
func NewInstance(el Element, viewport Viewport, loader Loader, cfg Config) *Instance {
	s := el.Surface()
	if s == nil {
		return nil
	}
	if cfg.Offset < 0 {
		cfg.Offset = 0
	}
	if cfg.Speed <= 0 {
		cfg.Speed = DefaultSpeed
	}
	in := &Instance{
		el:       el,
		viewport: viewport,
		loader:   loader,
		surface:  s,
		cfg:      cfg,
		mapper:   NewMapper(cfg),
		scroll:   NewScrollTracker(viewport),
		log:      Logger().With("mode", cfg.Mode.String()),
	}
	in.layout()
	in.load()
	return in
}

// State returns the lifecycle state.
func (in *Instance) State() State { return in.state }

// Config returns the instance configuration.
func (in *Instance) Config() Config { return in.cfg }

// Geometry returns the current layout geometry.
func (in *Instance) Geometry() Geometry { return in.geom }

// Image returns the state of the bound image.
func (in *Instance) Image() ImageState { return in.img }

// Element returns the host element.
func (in *Instance) Element() Element { return in.el }

// Tilt returns the unclamped tilt offsets.
func (in *Instance) Tilt() (beta, gamma int) { return in.tilt.Offsets() }

// Paints returns the number of draws issued to the surface so far.
func (in *Instance) Paints() uint64 { return in.paints }

// HandleScroll evaluates a scroll or touch event. It repaints at most once
// per distinct scroll value and only while the element is inside its
// effect window.
func (in *Instance) HandleScroll() {
	if in.state != StateReady {
		return
	}
	in.paint(in.scroll.Current(), false)
}

// HandleOrientation records a device orientation sample and repaints at
// the current scroll. Tilt repaints bypass scroll coalescing.
func (in *Instance) HandleOrientation(beta, gamma float64) {
	if in.state == StateClosed {
		return
	}
	in.tilt.Update(beta, gamma)
	if in.state == StateReady {
		in.paint(in.scroll.Current(), true)
	}
}

// HandleResize re-derives the geometry from the current layout and reloads
// the element's responsive source, which may have changed.
func (in *Instance) HandleResize() {
	if in.state == StateClosed {
		return
	}
	in.layout()
	in.load()
}

// Frame is the per-display-frame check. It runs the scroll path only when
// the scroll offset changed since the previous frame.
func (in *Instance) Frame() {
	if in.state == StateClosed {
		return
	}
	s := in.scroll.Current()
	if in.seen && s == in.lastSeen {
		return
	}
	in.lastSeen, in.seen = s, true
	in.HandleScroll()
}

// Close tears the instance down. Pending loads are discarded and all
// further events are ignored.
func (in *Instance) Close() {
	in.state = StateClosed
	in.generation++
}

func (in *Instance) layout() {
	top := in.el.DocumentTop()
	vh := in.viewport.Height()
	in.geom = Geometry{
		ElementTop:     top,
		ViewportHeight: vh,
		TriggerStart:   in.mapper.TriggerStart(top, vh),
	}
}

func (in *Instance) load() {
	in.generation++
	gen := in.generation
	src := in.el.CurrentSource()

	in.state = StateLoading
	in.img = ImageState{Source: src}
	in.painted = false

	if src == "" {
		in.log.Debug("parallax: element has no image source")
		return
	}
	in.loader.Load(src, func(img Image, err error) {
		in.loaded(gen, src, img, err)
	})
}

func (in *Instance) loaded(gen uint64, src string, img Image, err error) {
	if gen != in.generation || in.state == StateClosed {
		in.log.Debug("parallax: stale image load discarded", "source", src)
		return
	}
	if err != nil || img == nil {
		in.log.Debug("parallax: image unavailable", "source", src, "err", err)
		return
	}

	w, h := img.Width(), img.Height()
	sw, sh := w-in.cfg.Offset, h-in.cfg.Offset
	if sw <= 0 || sh <= 0 {
		in.log.Warn("parallax: image smaller than offset", "source", src,
			"width", w, "height", h, "offset", in.cfg.Offset)
		return
	}
	if err := in.surface.SetSize(sw, sh); err != nil {
		in.log.Warn("parallax: surface resize failed", "source", src, "err", err)
		return
	}

	in.img = ImageState{
		Source:        src,
		NaturalWidth:  w,
		NaturalHeight: h,
		Loaded:        true,
		image:         img,
	}
	in.state = StateReady
	in.log.Info("parallax: image ready", "source", src, "width", w, "height", h)
	in.paint(in.scroll.Current(), true)
}

// paint draws the image for scroll s. force skips the same-scroll and
// in-flight guards but not the effect window.
func (in *Instance) paint(s int, force bool) bool {
	if !in.img.Loaded {
		return false
	}
	if !force && (in.inFlight || (in.painted && s == in.lastPainted)) {
		return false
	}
	scroll := float64(s)
	if scroll > in.geom.ElementTop+float64(in.img.NaturalHeight) || scroll < in.geom.TriggerStart {
		return false
	}

	in.inFlight = true
	defer func() { in.inFlight = false }()
	in.lastPainted, in.painted = s, true

	localY := roundHalfUp(in.mapper.LocalOffset(scroll, in.geom))
	if localY > in.cfg.Offset {
		return false
	}

	beta, gamma := in.tilt.Clamped(in.cfg.Offset)
	x := float64(beta - in.cfg.Offset)
	y := float64(localY - gamma)
	if err := in.surface.Paint(in.img.image, x, y); err != nil {
		in.log.Debug("parallax: paint failed", "err", err)
		return false
	}
	in.paints++
	return true
}
