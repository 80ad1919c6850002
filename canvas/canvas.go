// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/parallax"
)

// Default size of a canvas before its first image is known, matching the
// HTML canvas element.
const (
	DefaultWidth  = 300
	DefaultHeight = 150
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("canvas: canvas is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("canvas: invalid dimensions")

	// ErrUnsupportedImage is returned when Paint receives an image that is
	// neither a *gg.ImageBuf nor an image.Image.
	ErrUnsupportedImage = errors.New("canvas: unsupported image type")
)

// Canvas wraps gg.Context and implements parallax.Surface.
type Canvas struct {
	ctx    *gg.Context
	width  int
	height int
	dirty  bool
	closed bool
	paints int
}

var _ parallax.Surface = (*Canvas)(nil)

// New creates a canvas of the given size.
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	return &Canvas{
		ctx:    gg.NewContext(width, height),
		width:  width,
		height: height,
		dirty:  true,
	}, nil
}

// MustNew is like New but panics on error.
// Use only when errors are programming mistakes (e.g., hardcoded dimensions).
func MustNew(width, height int) *Canvas {
	c, err := New(width, height)
	if err != nil {
		panic(err)
	}
	return c
}

// Context returns the gg drawing context, or nil if the canvas is closed.
func (c *Canvas) Context() *gg.Context {
	if c.closed {
		return nil
	}
	return c.ctx
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Size returns width and height as a convenience.
func (c *Canvas) Size() (width, height int) { return c.width, c.height }

// Paints returns how many times the canvas content was replaced.
func (c *Canvas) Paints() int { return c.paints }

// SetSize resizes the canvas and clears it.
func (c *Canvas) SetSize(width, height int) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if err := c.ctx.Resize(width, height); err != nil {
		return fmt.Errorf("canvas: context resize failed: %w", err)
	}
	c.ctx.Clear()
	c.width = width
	c.height = height
	c.dirty = true
	return nil
}

// Paint clears the canvas and draws img with its top-left corner at
// (x, y). Parts of the image outside the canvas are clipped.
func (c *Canvas) Paint(img parallax.Image, x, y float64) error {
	if c.closed {
		return ErrCanvasClosed
	}
	buf, err := imageBuf(img)
	if err != nil {
		return err
	}

	c.ctx.Clear()
	if src, dx, dy, ok := visible(buf.Width(), buf.Height(), c.width, c.height, x, y); ok {
		switch buf.Format() {
		case gg.FormatRGBA8, gg.FormatRGBAPremul:
			blit(c.ctx.ResizeTarget(), buf, src, dx, dy)
		default:
			convert(c.ctx.ResizeTarget(), buf, src, dx, dy)
		}
	}
	c.paints++
	c.dirty = true
	return nil
}

// visible computes the part of a w×h image placed at (x, y) that falls on
// a cw×ch canvas, and where it lands.
func visible(w, h, cw, ch int, x, y float64) (src image.Rectangle, dx, dy int, ok bool) {
	ix, iy := int(math.Round(x)), int(math.Round(y))
	sx, sy := max(0, -ix), max(0, -iy)
	dx, dy = max(0, ix), max(0, iy)
	sw := min(w-sx, cw-dx)
	sh := min(h-sy, ch-dy)
	if sw <= 0 || sh <= 0 {
		return image.Rectangle{}, 0, 0, false
	}
	return image.Rect(sx, sy, sx+sw, sy+sh), dx, dy, true
}

// blit copies the src rectangle of img into dst at (dx, dy) without
// resampling. The canvas was just cleared, so no blending is needed.
func blit(dst *gg.Pixmap, img *gg.ImageBuf, src image.Rectangle, dx, dy int) {
	data := img.PremultipliedData()
	stride := img.Stride()
	pix := dst.Data()
	dw := dst.Width()
	n := src.Dx() * 4
	for row := range src.Dy() {
		s := (src.Min.Y+row)*stride + src.Min.X*4
		d := ((dy+row)*dw + dx) * 4
		copy(pix[d:d+n], data[s:s+n])
	}
}

// convert is blit for formats whose bytes are not RGBA: each pixel goes
// through GetRGBA and is premultiplied on the way into dst.
func convert(dst *gg.Pixmap, img *gg.ImageBuf, src image.Rectangle, dx, dy int) {
	pix := dst.Data()
	dw := dst.Width()
	for row := range src.Dy() {
		d := ((dy+row)*dw + dx) * 4
		for col := range src.Dx() {
			r, g, b, a := img.GetRGBA(src.Min.X+col, src.Min.Y+row)
			pix[d] = premul(r, a)
			pix[d+1] = premul(g, a)
			pix[d+2] = premul(b, a)
			pix[d+3] = a
			d += 4
		}
	}
}

func premul(c, a uint8) uint8 {
	return uint8((uint16(c)*uint16(a) + 127) / 255)
}

func imageBuf(img parallax.Image) (*gg.ImageBuf, error) {
	switch v := img.(type) {
	case *gg.ImageBuf:
		if v == nil {
			return nil, ErrUnsupportedImage
		}
		return v, nil
	case image.Image:
		return fromStd(v)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedImage, img)
}

// fromStd copies a standard image into a premultiplied buffer. color.Color
// already reports premultiplied components, so no conversion is needed.
func fromStd(img image.Image) (*gg.ImageBuf, error) {
	b := img.Bounds()
	buf, err := gg.NewImageBuf(b.Dx(), b.Dy(), gg.FormatRGBAPremul)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	data := buf.Data()
	stride := buf.Stride()
	for y := range b.Dy() {
		d := y * stride
		for x := range b.Dx() {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			data[d] = uint8(r >> 8)
			data[d+1] = uint8(g >> 8)
			data[d+2] = uint8(bl >> 8)
			data[d+3] = uint8(a >> 8)
			d += 4
		}
	}
	return buf, nil
}

// IsDirty reports whether the content changed since the last Flush.
func (c *Canvas) IsDirty() bool { return c.dirty }

// Flush returns a snapshot of the canvas pixels and clears the dirty flag.
func (c *Canvas) Flush() (image.Image, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}
	c.dirty = false
	return c.ctx.Image(), nil
}

// SavePNG writes the canvas content to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	if c.closed {
		return ErrCanvasClosed
	}
	return c.ctx.SavePNG(path)
}

// Close releases the drawing context. Close is idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.ctx != nil {
		_ = c.ctx.Close()
		c.ctx = nil
	}
	return nil
}

// Composite draws the canvas content onto dc with its top-left corner at
// (x, y), clipped to dc.
func (c *Canvas) Composite(dc *gg.Context, x, y float64) error {
	if c.closed {
		return ErrCanvasClosed
	}
	src, dx, dy, ok := visible(c.width, c.height, dc.Width(), dc.Height(), x, y)
	if !ok {
		return nil
	}
	over(dc.ResizeTarget(), c.ctx.ResizeTarget(), src, dx, dy)
	return nil
}

// over blends the src rectangle of pm onto dst at (dx, dy) with
// source-over. Both pixmaps hold premultiplied RGBA.
func over(dst, pm *gg.Pixmap, src image.Rectangle, dx, dy int) {
	out := dst.Data()
	in := pm.Data()
	dw, sw := dst.Width(), pm.Width()
	for row := range src.Dy() {
		s := ((src.Min.Y+row)*sw + src.Min.X) * 4
		d := ((dy+row)*dw + dx) * 4
		for range src.Dx() {
			inv := 255 - uint16(in[s+3])
			for i := range 4 {
				out[d+i] = in[s+i] + uint8((uint16(out[d+i])*inv+127)/255)
			}
			s += 4
			d += 4
		}
	}
}
