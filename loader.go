package parallax

import (
	"io/fs"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/parallax/cache"
	"github.com/gogpu/parallax/internal/decode"
)

// ImageCache holds decoded images keyed by normalized source path.
// It is safe for concurrent use and may be shared between loaders.
type ImageCache = cache.Cache[string, *gg.ImageBuf]

// NewImageCache creates an image cache bounded by budget bytes of pixel
// data. If budget <= 0, cache.DefaultBudget is used.
func NewImageCache(budget int) *ImageCache {
	return cache.New[string, *gg.ImageBuf](budget, cache.StringHasher, func(b *gg.ImageBuf) int {
		return b.ByteSize()
	})
}

// FSLoader decodes image sources from an fs.FS on a worker pool and
// queues the completions until Drain runs them on the event goroutine.
//
// Load and Drain must be called from the event goroutine; decoding
// happens elsewhere.
type FSLoader struct {
	fsys    fs.FS
	pool    *decode.Pool
	workers int
	cache   *ImageCache

	mu      sync.Mutex
	pending []func()
	closed  bool
}

// LoaderOption configures an FSLoader.
type LoaderOption func(*FSLoader)

// WithImageCache shares c between loaders. Passing nil disables caching.
func WithImageCache(c *ImageCache) LoaderOption {
	return func(l *FSLoader) {
		l.cache = c
	}
}

// WithDecodeWorkers sets the number of decode goroutines.
func WithDecodeWorkers(n int) LoaderOption {
	return func(l *FSLoader) {
		l.workers = n
	}
}

// NewFSLoader creates a loader reading sources from fsys.
// By default it owns a private image cache and a decode pool sized from
// GOMAXPROCS.
func NewFSLoader(fsys fs.FS, opts ...LoaderOption) *FSLoader {
	l := &FSLoader{
		fsys:  fsys,
		cache: NewImageCache(0),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.pool = decode.NewPool(l.workers)
	return l
}

// Load schedules one decode of source. A cached image still completes
// through the queue so every load resolves the same way.
func (l *FSLoader) Load(source string, done func(Image, error)) {
	key, err := decode.SourcePath(source)
	if err != nil {
		l.enqueue(func() { done(nil, err) })
		return
	}
	if l.cache != nil {
		if img, ok := l.cache.Get(key); ok {
			l.enqueue(func() { done(img, nil) })
			return
		}
	}
	accepted := l.pool.Submit(func() {
		img, err := decode.File(l.fsys, key)
		if err != nil {
			Logger().Debug("parallax: decode failed", "source", key, "err", err)
			l.enqueue(func() { done(nil, err) })
			return
		}
		if l.cache != nil {
			l.cache.Put(key, img)
		}
		l.enqueue(func() { done(img, nil) })
	})
	if !accepted {
		Logger().Debug("parallax: load dropped, loader closed", "source", key)
	}
}

func (l *FSLoader) enqueue(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.pending = append(l.pending, fn)
}

// Drain runs the queued completions in the order decodes finished and
// returns how many ran.
func (l *FSLoader) Drain() int {
	l.mu.Lock()
	batch := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Sync waits for all in-flight decodes, then drains. Headless hosts and
// tests use it to settle loads deterministically.
func (l *FSLoader) Sync() int {
	l.pool.Wait()
	return l.Drain()
}

// Cache returns the loader's image cache, or nil.
func (l *FSLoader) Cache() *ImageCache {
	return l.cache
}

// Close stops the decode workers and drops queued completions.
func (l *FSLoader) Close() error {
	l.mu.Lock()
	l.closed = true
	l.pending = nil
	l.mu.Unlock()
	l.pool.Close()
	return nil
}
