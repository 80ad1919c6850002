package parallax

// Geometry is the layout-derived state of an instance, recomputed wholesale
// on every resize or orientation change.
type Geometry struct {
	// ElementTop is the absolute document-space top of the element.
	ElementTop float64

	// ViewportHeight is the height of the visible document area.
	ViewportHeight float64

	// TriggerStart is the scroll value at which the effect activates.
	TriggerStart float64
}

// OffsetMapper converts a global scroll position into a local image offset.
// Implementations are stateless values.
type OffsetMapper interface {
	// TriggerStart returns the scroll value at which drawing begins.
	TriggerStart(elementTop, viewportHeight float64) float64

	// LocalOffset returns the unrounded vertical image offset for scroll.
	LocalOffset(scroll float64, g Geometry) float64
}

// NewMapper returns the mapper selected by cfg.Mode.
func NewMapper(cfg Config) OffsetMapper {
	switch cfg.Mode {
	case ModeTopPass:
		return TopPass{Speed: cfg.Speed}
	case ModeDocument:
		return DocumentRelative{Speed: cfg.Speed}
	default:
		return BottomPass{Offset: cfg.Offset}
	}
}

// BottomPass maps the span during which the element travels one viewport
// height from the bottom edge onto [-Offset, Offset].
type BottomPass struct {
	Offset int
}

func (BottomPass) TriggerStart(elementTop, viewportHeight float64) float64 {
	return elementTop - viewportHeight
}

func (m BottomPass) LocalOffset(scroll float64, g Geometry) float64 {
	if m.Offset == 0 {
		return 0
	}
	offset := float64(m.Offset)
	if g.ViewportHeight <= 0 {
		return -offset
	}
	return (scroll-g.TriggerStart)/(g.ViewportHeight/offset) - offset
}

// TopPass moves the image by scroll/Speed once the element's top reaches
// the top of the viewport.
type TopPass struct {
	Speed int
}

func (TopPass) TriggerStart(elementTop, _ float64) float64 {
	return elementTop
}

func (m TopPass) LocalOffset(scroll float64, g Geometry) float64 {
	return (scroll - g.TriggerStart) / speedOrDefault(m.Speed)
}

// DocumentRelative moves the image by scroll/Speed over the whole document.
type DocumentRelative struct {
	Speed int
}

func (DocumentRelative) TriggerStart(float64, float64) float64 {
	return 0
}

func (m DocumentRelative) LocalOffset(scroll float64, _ Geometry) float64 {
	return scroll / speedOrDefault(m.Speed)
}

func speedOrDefault(speed int) float64 {
	if speed <= 0 {
		return DefaultSpeed
	}
	return float64(speed)
}
