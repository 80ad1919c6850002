package parallax

// The interfaces in this file are implemented by hosts: the page package
// for YAML documents, integration/dom for browsers, and test fakes.
// All methods are called from the host's event goroutine.

// Image is a decoded picture with known natural dimensions.
// *gg.ImageBuf satisfies it.
type Image interface {
	Width() int
	Height() int
}

// Surface is the drawing target owned exclusively by one instance.
type Surface interface {
	// SetSize resizes the drawing surface, discarding its content.
	SetSize(width, height int) error

	// Paint replaces the surface content with img translated by (x, y).
	Paint(img Image, x, y float64) error
}

// Viewport is the visible part of a document.
type Viewport interface {
	ScrollReader

	// Height returns the viewport height in document pixels.
	Height() float64
}

// Element is a host element that may opt into the effect.
type Element interface {
	Attributes

	// DocumentTop returns the absolute document-space top of the element
	// under the current layout.
	DocumentTop() float64

	// CurrentSource returns the responsive source currently selected for
	// the element, or its fallback source.
	CurrentSource() string

	// Surface returns the element's drawing surface, or nil.
	Surface() Surface

	// Complete reports whether the element's representative image has
	// finished loading, including when it was served from cache.
	Complete() bool

	// OnComplete registers fn to run once the representative image
	// finishes loading. It is only called when Complete reports false.
	OnComplete(fn func())
}

// Document enumerates the elements of a page and exposes its viewport.
type Document interface {
	Viewport() Viewport
	Elements() []Element
}

// Loader resolves a source into a decoded image. Each Load call issues
// exactly one decode request. done is invoked exactly once on the host's
// event goroutine, or never if the loader is closed first.
type Loader interface {
	Load(source string, done func(img Image, err error))
}

// Drainer is implemented by loaders that decode off the event goroutine
// and queue completions. Drain runs queued completions and returns how
// many ran. Registry.Frame calls it before evaluating instances.
type Drainer interface {
	Drain() int
}
