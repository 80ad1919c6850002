package page

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/parallax"
	"github.com/gogpu/parallax/canvas"
)

// Errors returned while building a page.
var (
	// ErrInvalidViewport is returned when the viewport size is not positive.
	ErrInvalidViewport = errors.New("page: invalid viewport")

	// ErrDuplicateElement is returned when two elements share an id.
	ErrDuplicateElement = errors.New("page: duplicate element id")

	// ErrUnknownElement is returned when an id does not name an element.
	ErrUnknownElement = errors.New("page: unknown element")

	// ErrInvalidMedia is returned for a media condition other than
	// "(min-width: Npx)".
	ErrInvalidMedia = errors.New("page: invalid media condition")
)

// Spec is the YAML form of a page.
type Spec struct {
	Viewport ViewportSpec  `yaml:"viewport"`
	Elements []ElementSpec `yaml:"elements"`
}

// ViewportSpec describes the initial viewport.
type ViewportSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// DocumentHeight bounds scrolling to DocumentHeight-Height.
	// Zero leaves scrolling unbounded.
	DocumentHeight int `yaml:"document_height,omitempty"`

	// Scroll is the initial scroll offset.
	Scroll float64 `yaml:"scroll,omitempty"`

	// Quirks reports the scroll offset on the body instead of the root
	// element, like a browser rendering in quirks mode.
	Quirks bool `yaml:"quirks,omitempty"`
}

// ElementSpec describes one element.
type ElementSpec struct {
	ID    string            `yaml:"id"`
	Left  float64           `yaml:"left,omitempty"`
	Top   float64           `yaml:"top"`
	Attrs map[string]string `yaml:"attrs,omitempty"`

	// Src is the fallback source of the picture.
	Src string `yaml:"src"`

	// Sources are tried in order; the first matching one wins.
	Sources []SourceSpec `yaml:"sources,omitempty"`

	// Pending marks the representative image as still loading when the
	// page is built. Page.Complete finishes it.
	Pending bool `yaml:"pending,omitempty"`
}

// SourceSpec is an alternative picture source.
type SourceSpec struct {
	Media string `yaml:"media"`
	Src   string `yaml:"src"`
}

// Page is a parsed page document. It is NOT safe for concurrent use.
type Page struct {
	viewport *Viewport
	elements []*Element
	byID     map[string]*Element
}

var _ parallax.Document = (*Page)(nil)

// Parse decodes a YAML page document and builds it.
func Parse(data []byte) (*Page, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("page: parse: %w", err)
	}
	return New(spec)
}

// Load reads and parses the page document name from fsys.
func Load(fsys fs.FS, name string) (*Page, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("page: read %s: %w", name, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return p, nil
}

// New builds a page from spec.
func New(spec Spec) (*Page, error) {
	vs := spec.Viewport
	if vs.Width <= 0 || vs.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, vs.Width, vs.Height)
	}
	p := &Page{
		viewport: &Viewport{
			width:     vs.Width,
			height:    vs.Height,
			docHeight: vs.DocumentHeight,
			quirks:    vs.Quirks,
		},
		byID: make(map[string]*Element, len(spec.Elements)),
	}
	p.viewport.SetScroll(vs.Scroll)

	for i, es := range spec.Elements {
		id := es.ID
		if id == "" {
			id = "element-" + strconv.Itoa(i)
		}
		if _, dup := p.byID[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateElement, id)
		}
		sources := make([]source, 0, len(es.Sources))
		for _, ss := range es.Sources {
			minWidth, err := parseMedia(ss.Media)
			if err != nil {
				return nil, fmt.Errorf("element %q: %w", id, err)
			}
			sources = append(sources, source{minWidth: minWidth, src: ss.Src})
		}
		el := &Element{
			id:       id,
			left:     es.Left,
			top:      es.Top,
			attrs:    es.Attrs,
			fallback: es.Src,
			sources:  sources,
			viewport: p.viewport,
			canvas:   canvas.MustNew(canvas.DefaultWidth, canvas.DefaultHeight),
			complete: !es.Pending,
		}
		p.elements = append(p.elements, el)
		p.byID[id] = el
	}
	return p, nil
}

// Viewport returns the page viewport.
func (p *Page) Viewport() parallax.Viewport { return p.viewport }

// View returns the concrete viewport, for hosts that scroll or resize it.
func (p *Page) View() *Viewport { return p.viewport }

// Elements returns every element in document order.
func (p *Page) Elements() []parallax.Element {
	out := make([]parallax.Element, len(p.elements))
	for i, el := range p.elements {
		out[i] = el
	}
	return out
}

// Element returns the element with the given id.
func (p *Page) Element(id string) (*Element, bool) {
	el, ok := p.byID[id]
	return el, ok
}

// All returns the concrete elements in document order.
func (p *Page) All() []*Element {
	out := make([]*Element, len(p.elements))
	copy(out, p.elements)
	return out
}

// Complete finishes loading the representative image of element id and
// runs its completion callbacks.
func (p *Page) Complete(id string) error {
	el, ok := p.byID[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownElement, id)
	}
	el.finish()
	return nil
}

// CompleteAll finishes every pending element.
func (p *Page) CompleteAll() {
	for _, el := range p.elements {
		el.finish()
	}
}

// Close releases every element canvas.
func (p *Page) Close() error {
	var errs []error
	for _, el := range p.elements {
		if err := el.canvas.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// parseMedia accepts "(min-width: 1024px)" and "min-width:1024", with or
// without the px unit. An empty condition always matches.
func parseMedia(media string) (int, error) {
	m := strings.TrimSpace(media)
	if m == "" {
		return 0, nil
	}
	m = strings.TrimSuffix(strings.TrimPrefix(m, "("), ")")
	name, value, ok := strings.Cut(m, ":")
	if !ok || strings.TrimSpace(name) != "min-width" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMedia, media)
	}
	value = strings.TrimSuffix(strings.TrimSpace(value), "px")
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMedia, media)
	}
	return n, nil
}
