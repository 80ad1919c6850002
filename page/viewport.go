package page

import (
	"fmt"

	"github.com/gogpu/parallax"
)

// Viewport is the visible window onto a page.
type Viewport struct {
	width     int
	height    int
	docHeight int
	scroll    float64
	quirks    bool
}

var _ parallax.Viewport = (*Viewport)(nil)

// RootScrollTop returns the scroll offset reported on the root element.
// It is always 0 in quirks mode.
func (v *Viewport) RootScrollTop() float64 {
	if v.quirks {
		return 0
	}
	return v.scroll
}

// BodyScrollTop returns the scroll offset reported on the body.
// It is always 0 outside quirks mode.
func (v *Viewport) BodyScrollTop() float64 {
	if v.quirks {
		return v.scroll
	}
	return 0
}

// Scroll returns the scroll offset regardless of mode.
func (v *Viewport) Scroll() float64 { return v.scroll }

// Width returns the viewport width.
func (v *Viewport) Width() int { return v.width }

// Height returns the viewport height.
func (v *Viewport) Height() float64 { return float64(v.height) }

// Size returns the viewport size in pixels.
func (v *Viewport) Size() (width, height int) { return v.width, v.height }

// MaxScroll returns the largest scroll offset, or -1 if unbounded.
func (v *Viewport) MaxScroll() float64 {
	if v.docHeight <= 0 {
		return -1
	}
	return float64(max(0, v.docHeight-v.height))
}

// SetScroll moves the viewport to y, clamped to the document.
func (v *Viewport) SetScroll(y float64) {
	if y < 0 {
		y = 0
	}
	if m := v.MaxScroll(); m >= 0 && y > m {
		y = m
	}
	v.scroll = y
}

// ScrollBy moves the viewport by dy.
func (v *Viewport) ScrollBy(dy float64) {
	v.SetScroll(v.scroll + dy)
}

// Resize changes the viewport size and re-clamps the scroll offset.
func (v *Viewport) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, width, height)
	}
	v.width, v.height = width, height
	v.SetScroll(v.scroll)
	return nil
}
