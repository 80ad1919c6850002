package parallax

// ScrollReader exposes the two legacy vertical scroll measurements of a
// document: the root element's and the body's. Depending on the layout
// model only one of them is non-zero.
type ScrollReader interface {
	RootScrollTop() float64
	BodyScrollTop() float64
}

// ScrollTracker normalizes the vertical scroll offset of a document.
type ScrollTracker struct {
	src ScrollReader
}

// NewScrollTracker returns a tracker reading from src.
func NewScrollTracker(src ScrollReader) ScrollTracker {
	return ScrollTracker{src: src}
}

// Current returns the first non-zero of the root and body scroll offsets,
// truncated to whole pixels, or 0. A fractional root offset still wins
// over the body.
func (t ScrollTracker) Current() int {
	if t.src == nil {
		return 0
	}
	if v := t.src.RootScrollTop(); v != 0 {
		return int(v)
	}
	return int(t.src.BodyScrollTop())
}
