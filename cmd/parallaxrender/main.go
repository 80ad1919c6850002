// Command parallaxrender renders a parallax page headlessly while sweeping
// the scroll offset, writing one PNG per step.
//
// Without -page it renders a generated sample page.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"github.com/gogpu/parallax"
	"github.com/gogpu/parallax/internal/demo"
	"github.com/gogpu/parallax/page"
)

func main() {
	var (
		pagePath = flag.String("page", "", "page document (YAML); empty renders the sample page")
		assets   = flag.String("assets", "", "image directory (default: the page's directory)")
		output   = flag.String("output", "frames", "output directory")
		from     = flag.Float64("from", 0, "first scroll offset")
		to       = flag.Float64("to", -1, "last scroll offset (default: end of document)")
		step     = flag.Float64("step", 40, "scroll distance between frames")
		beta     = flag.Float64("beta", 0, "device orientation beta in degrees")
		gamma    = flag.Float64("gamma", 0, "device orientation gamma in degrees")
		workers  = flag.Int("workers", 0, "decode workers (0: automatic)")
		bg       = flag.String("background", "#f4f1ea", "background color")
		verbose  = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		parallax.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if *step <= 0 {
		log.Fatalf("step must be positive, got %v", *step)
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

	loader := parallax.NewFSLoader(os.DirFS(*assets), parallax.WithDecodeWorkers(*workers))
	defer loader.Close()

	reg := parallax.Discover(p, loader)
	defer reg.Close()

	// Headless: every representative image is available up front.
	p.CompleteAll()
	loader.Sync()
	if *beta != 0 || *gamma != 0 {
		reg.Orientation(*beta, *gamma)
	}

	if err := os.MkdirAll(*output, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	last := *to
	if last < 0 {
		last = max(p.View().MaxScroll(), *from)
	}
	background := gg.Hex(*bg)

	frames := 0
	for s := *from; s <= last; s += *step {
		p.View().SetScroll(s)
		reg.Frame()
		dc := p.Frame(background)
		name := filepath.Join(*output, fmt.Sprintf("frame-%04d.png", frames))
		err := dc.SavePNG(name)
		_ = dc.Close()
		if err != nil {
			log.Fatalf("Failed to save %s: %v", name, err)
		}
		frames++
	}

	var paints uint64
	for _, in := range reg.Instances() {
		paints += in.Paints()
	}
	st := loader.Cache().Stats()
	log.Printf("Rendered %d frames to %s (%d instances, %d paints, %d images cached)\n",
		frames, *output, len(reg.Instances()), paints, st.Len)
}
