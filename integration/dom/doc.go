// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build js && wasm

// Package dom binds the parallax engine to a browser document through
// syscall/js.
//
// The marker attribute goes on a container wrapping a responsive picture:
//
//	<canvas data-parallax data-parallax-start="passTop">
//	  <picture>
//	    <source media="(min-width: 1024px)" srcset="large.jpg">
//	    <img src="small.jpg" alt="">
//	  </picture>
//	</canvas>
//
// Attributes are read from the container and the source from the img
// inside it. A marked canvas is drawn into directly. Any other container,
// or a marked img, gets a canvas inserted in front of the image; the image
// stays visible as a static fallback until the canvas is first sized.
//
//	reg := parallax.Discover(dom.NewDocument(), dom.NewLoader())
//	stop := dom.Attach(reg)
//	defer stop()
package dom
