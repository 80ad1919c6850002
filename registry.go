package parallax

import (
	"context"
	"time"
)

// Registry is the owned collection of instances discovered in a document.
// It fans host events out to its instances.
//
// Registry is NOT safe for concurrent use: all methods, including Run,
// must be driven from a single event goroutine.
type Registry struct {
	doc       Document
	loader    Loader
	opts      options
	instances []*Instance
	pending   int
	closed    bool
}

// Discover enumerates the elements of doc that carry the marker attribute
// and creates an instance for each. Elements whose representative image is
// still loading are instantiated when it completes; cached and freshly
// loaded images are treated the same way.
func Discover(doc Document, loader Loader, opts ...Option) *Registry {
	r := &Registry{
		doc:    doc,
		loader: loader,
		opts:   buildOptions(opts),
	}
	for _, el := range doc.Elements() {
		if _, ok := el.Attr(r.opts.markerAttr); !ok {
			continue
		}
		if el.Complete() {
			r.add(el)
			continue
		}
		r.pending++
		el.OnComplete(func() {
			r.pending--
			if !r.closed {
				r.add(el)
			}
		})
	}
	Logger().Info("parallax: discovery finished",
		"instances", len(r.instances), "pending", r.pending)
	return r
}

func (r *Registry) add(el Element) {
	cfg := parseConfig(el, r.opts)
	in := NewInstance(el, r.doc.Viewport(), r.loader, cfg)
	if in == nil {
		Logger().Warn("parallax: element has no surface, skipped")
		return
	}
	r.instances = append(r.instances, in)
}

// Instances returns the instances created so far.
func (r *Registry) Instances() []*Instance {
	out := make([]*Instance, len(r.instances))
	copy(out, r.instances)
	return out
}

// Pending returns the number of elements still waiting for their
// representative image.
func (r *Registry) Pending() int { return r.pending }

// Scroll dispatches a scroll event.
func (r *Registry) Scroll() {
	for _, in := range r.instances {
		in.HandleScroll()
	}
}

// Touch dispatches a touch-start event. It is evaluated like a scroll.
func (r *Registry) Touch() {
	r.Scroll()
}

// Orientation dispatches a device orientation sample.
func (r *Registry) Orientation(beta, gamma float64) {
	for _, in := range r.instances {
		in.HandleOrientation(beta, gamma)
	}
}

// Resize dispatches a resize or orientation-change event.
func (r *Registry) Resize() {
	for _, in := range r.instances {
		in.HandleResize()
	}
}

// Frame runs once per display frame: it delivers queued image completions
// and lets every instance compare the scroll offset with the last one seen.
func (r *Registry) Frame() {
	if r.closed {
		return
	}
	if d, ok := r.loader.(Drainer); ok {
		d.Drain()
	}
	for _, in := range r.instances {
		in.Frame()
	}
}

// Run calls Frame every interval until ctx is done or the registry is
// closed. It is meant for hosts without a display refresh callback.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if r.closed {
				return nil
			}
			r.Frame()
		}
	}
}

// Close tears down every instance. Elements still waiting for their image
// are never instantiated.
func (r *Registry) Close() {
	if r.closed {
		return
	}
	r.closed = true
	for _, in := range r.instances {
		in.Close()
	}
}
