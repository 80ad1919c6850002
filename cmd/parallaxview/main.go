// Command parallaxview opens a parallax page in a window.
//
// Scroll with the mouse wheel or Page Up/Down, tilt with the arrow keys,
// and resize the window to switch responsive sources. Without -page it
// shows a generated sample page.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	_ "github.com/silbinarywolf/preferdiscretegpu"

	"github.com/gogpu/gg"
	"github.com/gogpu/parallax"
	"github.com/gogpu/parallax/integration/ebitenview"
	"github.com/gogpu/parallax/internal/demo"
	"github.com/gogpu/parallax/page"
)

func main() {
	var (
		pagePath = flag.String("page", "", "page document (YAML); empty shows the sample page")
		assets   = flag.String("assets", "", "image directory (default: the page's directory)")
		bg       = flag.String("background", "#f4f1ea", "background color")
		wheel    = flag.Float64("wheel", ebitenview.DefaultWheelStep, "pixels per wheel notch")
		verbose  = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		parallax.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *pagePath == "" {
		dir, err := os.MkdirTemp("", "parallax-demo-")
		if err != nil {
			log.Fatalf("Failed to create demo directory: %v", err)
		}
		defer os.RemoveAll(dir)
		if err := demo.Write(dir); err != nil {
			log.Fatalf("Failed to write demo page: %v", err)
		}
		*pagePath = filepath.Join(dir, demo.PageFile)
	}
	if *assets == "" {
		*assets = filepath.Dir(*pagePath)
	}

	p, err := page.Load(os.DirFS(filepath.Dir(*pagePath)), filepath.Base(*pagePath))
	if err != nil {
		log.Fatalf("Failed to load page: %v", err)
	}
	defer p.Close()

	loader := parallax.NewFSLoader(os.DirFS(*assets))
	defer loader.Close()

	reg := parallax.Discover(p, loader)
	defer reg.Close()
	p.CompleteAll()

	view := ebitenview.New(p, reg,
		ebitenview.WithBackground(gg.Hex(*bg).Color()),
		ebitenview.WithWheelStep(*wheel),
	)

	w, h := p.View().Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("parallax - " + filepath.Base(*pagePath))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(view); err != nil {
		log.Fatalf("Viewer failed: %v", err)
	}
}
