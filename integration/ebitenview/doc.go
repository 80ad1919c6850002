// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ebitenview hosts a parallax page in an ebiten window.
//
// View implements ebiten.Game. It maps desktop input onto the host events
// the parallax registry understands:
//
//   - mouse wheel, Page Up/Down, Home/End: scroll
//   - touch start: touch
//   - arrow keys: device orientation (Up/Down tilt beta, Left/Right gamma)
//   - window resize: resize
//
// and calls Registry.Frame once per tick. Element canvases are uploaded to
// ebiten images only when their content changed.
//
// Example:
//
//	p, _ := page.Load(os.DirFS("."), "page.yaml")
//	loader := parallax.NewFSLoader(os.DirFS("assets"))
//	reg := parallax.Discover(p, loader)
//	if err := ebiten.RunGame(ebitenview.New(p, reg)); err != nil {
//	    log.Fatal(err)
//	}
package ebitenview
