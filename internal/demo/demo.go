// Package demo generates a self-contained sample page for the commands.
package demo

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
)

// PageFile is the name of the generated page document.
const PageFile = "page.yaml"

// Page is the sample page. Three bands exercise the three start modes; the
// hero band picks a wider image on wide viewports.
const Page = `viewport:
  width: 960
  height: 720
  document_height: 4200
elements:
  - id: hero
    left: 40
    top: 900
    attrs:
      data-parallax: ""
      data-parallax-start: passBottom
      data-parallax-offset: "60"
    src: hero-narrow.png
    sources:
      - media: "(min-width: 900px)"
        src: hero-wide.png
  - id: band
    left: 40
    top: 1900
    attrs:
      data-parallax: ""
      data-parallax-start: passTop
      data-parallax-offset: "80"
      data-parallax-speed: "4"
    src: band.png
  - id: footer
    left: 40
    top: 3000
    attrs:
      data-parallax: ""
      data-parallax-start: document
      data-parallax-offset: "40"
      data-parallax-speed: "100"
    src: footer.png
`

type asset struct {
	name string
	w, h int
	hue  float64
}

var assets = []asset{
	{"hero-wide.png", 940, 520, 200},
	{"hero-narrow.png", 640, 520, 200},
	{"band.png", 940, 480, 30},
	{"footer.png", 940, 400, 120},
}

// Write renders the sample images and page document into dir.
func Write(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	for _, a := range assets {
		dc := gg.NewContext(a.w, a.h)
		draw(dc, a.w, a.h, a.hue)
		err := dc.SavePNG(filepath.Join(dir, a.name))
		_ = dc.Close()
		if err != nil {
			return fmt.Errorf("demo: %s: %w", a.name, err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, PageFile), []byte(Page), 0o600); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	return nil
}

// draw paints a gradient with a grid of circles so movement is easy to
// see in the output frames.
func draw(dc *gg.Context, w, h int, hue float64) {
	grad := gg.NewLinearGradientBrush(0, 0, 0, float64(h))
	grad.AddColorStop(0, gg.HSL(hue, 0.6, 0.35))
	grad.AddColorStop(1, gg.HSL(hue+40, 0.7, 0.65))
	dc.SetFillBrush(grad)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	_ = dc.Fill()

	const cell = 80.0
	for y := cell / 2; y < float64(h); y += cell {
		for x := cell / 2; x < float64(w); x += cell {
			t := (x + y) / float64(w+h)
			dc.SetColor(gg.HSL(math.Mod(hue+180+t*60, 360), 0.8, 0.7))
			dc.DrawCircle(x, y, 14)
			_ = dc.Fill()
		}
	}

	dc.SetRGBA(1, 1, 1, 0.8)
	dc.SetLineWidth(6)
	dc.DrawRoundedRectangle(12, 12, float64(w)-24, float64(h)-24, 18)
	_ = dc.Stroke()
}
