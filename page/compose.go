package page

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/parallax"
)

// Compose draws every element canvas intersecting the viewport onto dc at
// its viewport position. dc is expected to match the viewport size.
// An element that cannot be drawn is skipped and reported in the joined
// error; the others are still composed.
func (p *Page) Compose(dc *gg.Context) error {
	scroll := p.viewport.scroll
	vh := p.viewport.Height()
	var errs []error
	for _, el := range p.elements {
		y := el.top - scroll
		if y >= vh || y+float64(el.canvas.Height()) <= 0 {
			continue
		}
		if err := el.canvas.Composite(dc, el.left, y); err != nil {
			errs = append(errs, fmt.Errorf("page: compose %q: %w", el.id, err))
		}
	}
	return errors.Join(errs...)
}

// Frame renders the current viewport into a new context over background.
// Elements that fail to compose leave holes and are logged.
func (p *Page) Frame(background gg.RGBA) *gg.Context {
	dc := gg.NewContext(p.viewport.width, p.viewport.height)
	dc.ClearWithColor(background)
	if err := p.Compose(dc); err != nil {
		parallax.Logger().Warn("page: frame incomplete", "err", err)
	}
	return dc
}
