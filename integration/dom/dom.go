// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build js && wasm

package dom

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/gogpu/parallax"
)

// Errors reported by the browser host.
var (
	// ErrLoadFailed is passed to load callbacks when the browser fails to
	// fetch or decode an image.
	ErrLoadFailed = errors.New("dom: image load failed")

	// ErrUnsupportedImage is returned when Paint receives an image that was
	// not produced by Loader.
	ErrUnsupportedImage = errors.New("dom: unsupported image type")

	// ErrNoContext is returned when a canvas has no 2d context.
	ErrNoContext = errors.New("dom: canvas 2d context unavailable")
)

// Document is the browser document.
type Document struct {
	doc    js.Value
	win    js.Value
	marker string
}

var _ parallax.Document = (*Document)(nil)

// DocumentOption configures a Document.
type DocumentOption func(*Document)

// WithMarker selects containers by attr instead of parallax.AttrMarker.
// It should match the marker passed to parallax.WithAttributeNames.
func WithMarker(attr string) DocumentOption {
	return func(d *Document) {
		if attr != "" {
			d.marker = attr
		}
	}
}

// NewDocument wraps the global document.
func NewDocument(opts ...DocumentOption) *Document {
	g := js.Global()
	d := &Document{doc: g.Get("document"), win: g, marker: parallax.AttrMarker}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Viewport returns the window viewport.
func (d *Document) Viewport() parallax.Viewport {
	return &Viewport{doc: d.doc, win: d.win}
}

// Elements returns every element carrying the marker attribute, in
// document order. The marked element is usually a canvas or block wrapping
// a picture; a marked img stands for itself.
func (d *Document) Elements() []parallax.Element {
	list := d.doc.Call("querySelectorAll", "["+d.marker+"]")
	n := list.Length()
	out := make([]parallax.Element, 0, n)
	for i := range n {
		out = append(out, newElement(list.Index(i), d.doc, d.win))
	}
	return out
}

// Viewport reads scroll and size from the window.
type Viewport struct {
	doc js.Value
	win js.Value
}

var _ parallax.Viewport = (*Viewport)(nil)

// RootScrollTop returns documentElement.scrollTop.
func (v *Viewport) RootScrollTop() float64 {
	return floatOr(v.doc.Get("documentElement").Get("scrollTop"), 0)
}

// BodyScrollTop returns body.scrollTop.
func (v *Viewport) BodyScrollTop() float64 {
	body := v.doc.Get("body")
	if body.IsNull() || body.IsUndefined() {
		return 0
	}
	return floatOr(body.Get("scrollTop"), 0)
}

// Height returns window.innerHeight.
func (v *Viewport) Height() float64 {
	return floatOr(v.win.Get("innerHeight"), 0)
}

// Element is a marked container and the picture inside it.
type Element struct {
	root    js.Value // carries the attributes
	img     js.Value // selects the source; null when the container has none
	doc     js.Value
	win     js.Value
	surface *Surface
}

var _ parallax.Element = (*Element)(nil)

func newElement(root, doc, win js.Value) *Element {
	img := root
	if tag(root) != "IMG" {
		img = root.Call("querySelector", "img")
	}
	return &Element{root: root, img: img, doc: doc, win: win}
}

// Attr returns the attribute from the marked container.
func (e *Element) Attr(name string) (string, bool) {
	if !e.root.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.root.Call("getAttribute", name).String(), true
}

// DocumentTop returns the element's top edge in document coordinates.
// A revealed canvas stands in for the hidden image.
func (e *Element) DocumentTop() float64 {
	target := e.root
	if e.surface != nil && e.surface.revealed && e.surface.show.Truthy() {
		target = e.surface.canvas
	}
	rect := target.Call("getBoundingClientRect")
	return rect.Get("top").Float() + floatOr(e.win.Get("pageYOffset"), 0)
}

// CurrentSource returns the source the browser selected for the picture.
func (e *Element) CurrentSource() string {
	if !e.img.Truthy() {
		return ""
	}
	if s := e.img.Get("currentSrc").String(); s != "" {
		return s
	}
	return e.img.Get("src").String()
}

// Surface returns the drawing surface. A marked canvas draws into itself;
// any other container gets a canvas inserted before its image, kept hidden
// until the first successful SetSize.
func (e *Element) Surface() parallax.Surface {
	if e.surface != nil {
		return e.surface
	}
	if tag(e.root) == "CANVAS" {
		ctx := e.root.Call("getContext", "2d")
		if ctx.IsNull() {
			return nil
		}
		e.surface = &Surface{canvas: e.root, ctx: ctx}
		return e.surface
	}
	canvas := e.doc.Call("createElement", "canvas")
	ctx := canvas.Call("getContext", "2d")
	if ctx.IsNull() {
		return nil
	}
	canvas.Set("className", "parallax-canvas")
	canvas.Get("style").Set("display", "none")
	if e.img.Truthy() {
		e.img.Get("parentNode").Call("insertBefore", canvas, e.img)
	} else {
		e.root.Call("appendChild", canvas)
	}
	e.surface = &Surface{canvas: canvas, ctx: ctx, show: canvas, hide: e.img}
	return e.surface
}

// Complete reports img.complete. A container without an image has
// nothing to wait for.
func (e *Element) Complete() bool {
	if !e.img.Truthy() {
		return true
	}
	return e.img.Get("complete").Bool()
}

// OnComplete runs fn once after the next load or error event.
func (e *Element) OnComplete(fn func()) {
	if !e.img.Truthy() {
		fn()
		return
	}
	once(e.img, fn, "load", "error")
}

// Surface draws into an HTML canvas.
type Surface struct {
	canvas js.Value
	ctx    js.Value

	// show and hide swap an inserted canvas for the static image on the
	// first SetSize; both are undefined for a marked canvas.
	show     js.Value
	hide     js.Value
	revealed bool
}

var _ parallax.Surface = (*Surface)(nil)

// SetSize sets the canvas bitmap size and, the first time, replaces the
// static image with the canvas.
func (s *Surface) SetSize(width, height int) error {
	if s.ctx.IsNull() {
		return ErrNoContext
	}
	s.canvas.Set("width", width)
	s.canvas.Set("height", height)
	if !s.revealed {
		s.revealed = true
		if s.show.Truthy() {
			s.show.Get("style").Set("display", "")
		}
		if s.hide.Truthy() {
			s.hide.Get("style").Set("display", "none")
		}
	}
	return nil
}

// Paint clears the canvas and draws img at (x, y).
func (s *Surface) Paint(img parallax.Image, x, y float64) error {
	im, ok := img.(*Image)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedImage, img)
	}
	s.ctx.Call("clearRect", 0, 0, s.canvas.Get("width"), s.canvas.Get("height"))
	s.ctx.Call("drawImage", im.v, x, y)
	return nil
}

// Image is a decoded browser image.
type Image struct {
	v js.Value
}

// Width returns naturalWidth.
func (i *Image) Width() int { return i.v.Get("naturalWidth").Int() }

// Height returns naturalHeight.
func (i *Image) Height() int { return i.v.Get("naturalHeight").Int() }

// Loader lets the browser fetch and decode images.
type Loader struct{}

var _ parallax.Loader = Loader{}

// NewLoader returns a browser image loader.
func NewLoader() Loader { return Loader{} }

// Load creates a detached image for source and reports its outcome.
// Completions run on the browser event loop, like every other event.
func (Loader) Load(source string, done func(parallax.Image, error)) {
	img := js.Global().Get("Image").New()
	once(img, func() {
		if img.Get("naturalWidth").Int() == 0 {
			done(nil, fmt.Errorf("%w: %s", ErrLoadFailed, source))
			return
		}
		done(&Image{v: img}, nil)
	}, "load", "error")
	img.Set("src", source)
}

// once registers fn for the first of events on target and releases the
// listener afterwards.
func once(target js.Value, fn func(), events ...string) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		for _, ev := range events {
			target.Call("removeEventListener", ev, cb)
		}
		cb.Release()
		fn()
		return nil
	})
	for _, ev := range events {
		target.Call("addEventListener", ev, cb)
	}
}

func tag(v js.Value) string {
	if !v.Truthy() {
		return ""
	}
	return v.Get("tagName").String()
}

func floatOr(v js.Value, def float64) float64 {
	if v.Type() != js.TypeNumber {
		return def
	}
	return v.Float()
}
