package page

import (
	"github.com/gogpu/parallax"
	"github.com/gogpu/parallax/canvas"
)

type source struct {
	minWidth int
	src      string
}

// Element is a page element carrying a picture and a canvas.
type Element struct {
	id       string
	left     float64
	top      float64
	attrs    map[string]string
	fallback string
	sources  []source
	viewport *Viewport
	canvas   *canvas.Canvas

	complete bool
	waiting  []func()
}

var _ parallax.Element = (*Element)(nil)

// ID returns the element id.
func (e *Element) ID() string { return e.id }

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// Left returns the horizontal document position.
func (e *Element) Left() float64 { return e.left }

// DocumentTop returns the vertical document position.
func (e *Element) DocumentTop() float64 { return e.top }

// Move sets the element position, as a host relayout would.
func (e *Element) Move(left, top float64) {
	e.left, e.top = left, top
}

// CurrentSource returns the source the picture selects for the current
// viewport width.
func (e *Element) CurrentSource() string {
	w := e.viewport.Width()
	for _, s := range e.sources {
		if w >= s.minWidth {
			return s.src
		}
	}
	return e.fallback
}

// Surface returns the element canvas.
func (e *Element) Surface() parallax.Surface { return e.canvas }

// Canvas returns the concrete element canvas.
func (e *Element) Canvas() *canvas.Canvas { return e.canvas }

// Complete reports whether the representative image finished loading.
func (e *Element) Complete() bool { return e.complete }

// OnComplete registers fn to run once the representative image finishes
// loading. fn runs immediately if it already has.
func (e *Element) OnComplete(fn func()) {
	if e.complete {
		fn()
		return
	}
	e.waiting = append(e.waiting, fn)
}

func (e *Element) finish() {
	if e.complete {
		return
	}
	e.complete = true
	waiting := e.waiting
	e.waiting = nil
	for _, fn := range waiting {
		fn()
	}
}
