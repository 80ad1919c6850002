// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ebitenview

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/parallax"
	"github.com/gogpu/parallax/page"
)

// Defaults for the input mapping.
const (
	DefaultWheelStep = 40.0
	DefaultTiltStep  = 30.0
)

// Option configures a View.
type Option func(*View)

// WithBackground sets the color behind the page.
func WithBackground(c color.Color) Option {
	return func(v *View) {
		v.background = c
	}
}

// WithWheelStep sets the scroll distance of one wheel notch.
func WithWheelStep(px float64) Option {
	return func(v *View) {
		if px > 0 {
			v.wheelStep = px
		}
	}
}

// WithTiltStep sets the orientation change, in degrees, of one arrow key
// press.
func WithTiltStep(deg float64) Option {
	return func(v *View) {
		if deg > 0 {
			v.tiltStep = deg
		}
	}
}

// View is an ebiten.Game rendering a page driven by a registry.
type View struct {
	page *page.Page
	reg  *parallax.Registry

	background color.Color
	wheelStep  float64
	tiltStep   float64

	beta, gamma float64

	layoutW, layoutH int
	resized          bool

	touches []ebiten.TouchID
	images  map[*page.Element]*ebiten.Image
}

var _ ebiten.Game = (*View)(nil)

// New creates a view of p. reg must have been discovered on p.
func New(p *page.Page, reg *parallax.Registry, opts ...Option) *View {
	v := &View{
		page:       p,
		reg:        reg,
		background: color.White,
		wheelStep:  DefaultWheelStep,
		tiltStep:   DefaultTiltStep,
		images:     make(map[*page.Element]*ebiten.Image),
	}
	v.layoutW, v.layoutH = p.View().Size()
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Update applies input and runs the per-frame scroll check.
func (v *View) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	vp := v.page.View()
	if v.resized {
		v.resized = false
		if err := vp.Resize(v.layoutW, v.layoutH); err == nil {
			v.reg.Resize()
		}
	}

	if dy := v.scrollDelta(vp.Height()); dy != 0 {
		vp.ScrollBy(dy)
		v.reg.Scroll()
	}

	v.touches = inpututil.AppendJustPressedTouchIDs(v.touches[:0])
	if len(v.touches) > 0 {
		v.reg.Touch()
	}

	if db, dg := v.tiltDelta(); db != 0 || dg != 0 {
		v.beta = clampAngle(v.beta+db, 180)
		v.gamma = clampAngle(v.gamma+dg, 90)
		v.reg.Orientation(v.beta, v.gamma)
	}

	v.reg.Frame()
	return nil
}

func (v *View) scrollDelta(pageHeight float64) float64 {
	_, wy := ebiten.Wheel()
	dy := -wy * v.wheelStep
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		dy += pageHeight
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		dy -= pageHeight
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		dy = -v.page.View().Scroll()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		if m := v.page.View().MaxScroll(); m >= 0 {
			dy = m - v.page.View().Scroll()
		}
	}
	return dy
}

func (v *View) tiltDelta() (beta, gamma float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		beta -= v.tiltStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		beta += v.tiltStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		gamma -= v.tiltStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		gamma += v.tiltStep
	}
	return beta, gamma
}

func clampAngle(a, limit float64) float64 {
	return max(-limit, min(limit, a))
}

// Draw uploads changed canvases and draws every visible element.
func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(v.background)
	vp := v.page.View()
	scroll := vp.Scroll()
	vh := vp.Height()
	for _, el := range v.page.All() {
		c := el.Canvas()
		y := el.DocumentTop() - scroll
		if y >= vh || y+float64(c.Height()) <= 0 {
			continue
		}
		img := v.upload(el)
		if img == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(el.Left(), y)
		screen.DrawImage(img, op)
	}
}

func (v *View) upload(el *page.Element) *ebiten.Image {
	c := el.Canvas()
	img := v.images[el]
	if img != nil && !c.IsDirty() {
		return img
	}
	snap, err := c.Flush()
	if err != nil {
		parallax.Logger().Debug("ebitenview: canvas flush failed", "element", el.ID(), "err", err)
		return img
	}
	rgba, ok := snap.(*image.RGBA)
	if img != nil && ok && img.Bounds().Size() == rgba.Bounds().Size() && rgba.Stride == 4*rgba.Rect.Dx() {
		// Canvas snapshots are premultiplied, as WritePixels expects.
		img.WritePixels(rgba.Pix)
		return img
	}
	if img != nil {
		img.Deallocate()
	}
	img = ebiten.NewImageFromImage(snap)
	v.images[el] = img
	return img
}

// Layout tracks the window size. The viewport follows it on the next
// Update.
func (v *View) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != v.layoutW || outsideHeight != v.layoutH) {
		v.layoutW, v.layoutH = outsideWidth, outsideHeight
		v.resized = true
	}
	return v.layoutW, v.layoutH
}

// Orientation returns the simulated device orientation.
func (v *View) Orientation() (beta, gamma float64) {
	return v.beta, v.gamma
}
