//go:build js && wasm

// Command parallaxwasm runs the parallax effect on the hosting web page.
//
//	GOOS=js GOARCH=wasm go build -o parallax.wasm ./cmd/parallaxwasm
//
// Mark picture containers with data-parallax; see the dom and parallax
// packages for the markup and the remaining attributes.
package main

import (
	"log/slog"
	"os"

	"github.com/gogpu/parallax"
	"github.com/gogpu/parallax/integration/dom"
)

func main() {
	parallax.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	reg := parallax.Discover(dom.NewDocument(), dom.NewLoader())
	dom.Attach(reg)

	select {}
}
