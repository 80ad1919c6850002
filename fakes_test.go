package parallax

import "errors"

type fakeViewport struct {
	root, body float64
	height     float64
}

func (v *fakeViewport) RootScrollTop() float64 { return v.root }
func (v *fakeViewport) BodyScrollTop() float64 { return v.body }
func (v *fakeViewport) Height() float64        { return v.height }

type fakeImage struct{ w, h int }

func (i fakeImage) Width() int  { return i.w }
func (i fakeImage) Height() int { return i.h }

type paintCall struct {
	img  Image
	x, y float64
}

type fakeSurface struct {
	w, h    int
	paints  []paintCall
	sizeErr error
}

func (s *fakeSurface) SetSize(w, h int) error {
	if s.sizeErr != nil {
		return s.sizeErr
	}
	s.w, s.h = w, h
	return nil
}

func (s *fakeSurface) Paint(img Image, x, y float64) error {
	s.paints = append(s.paints, paintCall{img: img, x: x, y: y})
	return nil
}

func (s *fakeSurface) last() paintCall {
	return s.paints[len(s.paints)-1]
}

type fakeElement struct {
	attrs    map[string]string
	top      float64
	src      string
	surface  Surface
	complete bool
	waiting  []func()
}

func newElement(top float64, src string, attrs map[string]string) *fakeElement {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &fakeElement{attrs: attrs, top: top, src: src, surface: &fakeSurface{}, complete: true}
}

func (e *fakeElement) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}
func (e *fakeElement) DocumentTop() float64   { return e.top }
func (e *fakeElement) CurrentSource() string  { return e.src }
func (e *fakeElement) Surface() Surface       { return e.surface }
func (e *fakeElement) Complete() bool         { return e.complete }
func (e *fakeElement) OnComplete(fn func())   { e.waiting = append(e.waiting, fn) }
func (e *fakeElement) canvas() *fakeSurface   { return e.surface.(*fakeSurface) }

// finishLoading marks the representative image complete and fires the
// registered callbacks.
func (e *fakeElement) finishLoading() {
	e.complete = true
	for _, fn := range e.waiting {
		fn()
	}
	e.waiting = nil
}

type fakeDocument struct {
	vp       *fakeViewport
	elements []Element
}

func (d *fakeDocument) Viewport() Viewport  { return d.vp }
func (d *fakeDocument) Elements() []Element { return d.elements }

var errNotFound = errors.New("not found")

// manualLoader records load requests; tests complete them explicitly and
// in any order.
type manualLoader struct {
	sources []string
	dones   []func(Image, error)
}

func (l *manualLoader) Load(source string, done func(Image, error)) {
	l.sources = append(l.sources, source)
	l.dones = append(l.dones, done)
}

func (l *manualLoader) complete(i int, img Image) {
	l.dones[i](img, nil)
}

func (l *manualLoader) fail(i int) {
	l.dones[i](nil, errNotFound)
}

// syncLoader completes every load immediately from a fixed set of images.
type syncLoader struct {
	images map[string]Image
	calls  int
}

func (l *syncLoader) Load(source string, done func(Image, error)) {
	l.calls++
	if img, ok := l.images[source]; ok {
		done(img, nil)
		return
	}
	done(nil, errNotFound)
}
