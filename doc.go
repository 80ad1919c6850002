// Package parallax implements a scroll- and tilt-driven parallax effect for
// images embedded in a scrolling document.
//
// # Overview
//
// Each marked image is drawn onto a surface slightly smaller than the image
// itself. As the document scrolls, the image is redrawn at a vertical
// offset computed from the scroll position, so it appears to move at a
// different rate than the surrounding content. Device orientation adds a
// bounded horizontal and vertical shift.
//
// The package is host independent. A host supplies a Document (viewport
// plus elements), a Loader that decodes image sources, and forwards its
// events to a Registry:
//
//	reg := parallax.Discover(doc, parallax.NewFSLoader(os.DirFS("assets")))
//	defer reg.Close()
//
//	// on every host event
//	reg.Scroll()
//	reg.Touch()
//	reg.Orientation(beta, gamma)
//	reg.Resize()
//
//	// once per display frame
//	reg.Frame()
//
// The page package models a document in YAML, canvas provides a software
// Surface built on gg, and the integration packages host the effect in an
// ebiten window or a browser.
//
// # Declarative Attributes
//
// Elements opt in with the data-parallax attribute and configure the effect
// with:
//
//	data-parallax-start   passBottom (default), passTop, or document
//	data-parallax-offset  maximum displacement in pixels, default 60
//	data-parallax-speed   scroll divisor for passTop and document, default 5
//
// Invalid values silently fall back to the defaults.
//
// # Start Modes
//
// Every mode is an OffsetMapper:
//
//   - BottomPass starts when the element's top edge enters the viewport
//     from below and spreads the displacement over two viewport heights.
//   - TopPass starts when the element reaches the top of the viewport and
//     moves one pixel per Speed pixels of scroll.
//   - DocumentRelative tracks the document scroll from the very top.
//
// A frame whose rounded offset exceeds the configured displacement is not
// drawn; the previous frame stays on screen.
//
// # Threading
//
// Instance and Registry must be driven from a single event goroutine.
// FSLoader decodes on a worker pool and hands completions back through
// Registry.Frame, so image state only changes on that goroutine.
//
// # Logging
//
// parallax is silent by default. Use SetLogger to enable structured
// logging via log/slog.
package parallax
