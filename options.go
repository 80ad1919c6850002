package parallax

// Default attribute names read from host elements.
const (
	AttrMarker = "data-parallax"
	AttrStart  = "data-parallax-start"
	AttrOffset = "data-parallax-offset"
	AttrSpeed  = "data-parallax-speed"
)

// Option configures how a Registry discovers elements and builds instances.
// Use functional options to customize discovery.
//
// Example:
//
//	// Defaults: data-parallax* attributes, offset 60, speed 5
//	reg := parallax.Discover(doc, loader)
//
//	// Legacy markup with a smaller displacement
//	reg := parallax.Discover(doc, loader,
//	    parallax.WithAttributeNames("data-plx", "data-start", "data-offset", "data-speed"),
//	    parallax.WithDefaultOffset(40),
//	)
type Option func(*options)

// options holds optional configuration for discovery and parsing.
type options struct {
	markerAttr string
	startAttr  string
	offsetAttr string
	speedAttr  string

	defaultOffset int
	defaultSpeed  int
}

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		markerAttr:    AttrMarker,
		startAttr:     AttrStart,
		offsetAttr:    AttrOffset,
		speedAttr:     AttrSpeed,
		defaultOffset: DefaultOffset,
		defaultSpeed:  DefaultSpeed,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithAttributeNames overrides the attribute names read from host elements.
// Empty names keep the corresponding default.
func WithAttributeNames(marker, start, offset, speed string) Option {
	return func(o *options) {
		if marker != "" {
			o.markerAttr = marker
		}
		if start != "" {
			o.startAttr = start
		}
		if offset != "" {
			o.offsetAttr = offset
		}
		if speed != "" {
			o.speedAttr = speed
		}
	}
}

// WithDefaultOffset sets the offset used when an element declares none.
// Older markup revisions used 40 or 20. Negative values are ignored.
func WithDefaultOffset(offset int) Option {
	return func(o *options) {
		if offset >= 0 {
			o.defaultOffset = offset
		}
	}
}

// WithDefaultSpeed sets the speed used when an element declares none.
// Non-positive values are ignored.
func WithDefaultSpeed(speed int) Option {
	return func(o *options) {
		if speed > 0 {
			o.defaultSpeed = speed
		}
	}
}
