// Package page models host markup for the parallax engine as a declarative
// YAML document.
//
// A page has one viewport and a list of elements. Each element has a
// document-space position, declarative attributes, and a picture: a
// fallback source plus alternative sources selected by the viewport width,
// like an HTML picture element with min-width media conditions.
//
//	viewport:
//	  width: 1280
//	  height: 800
//	elements:
//	  - id: hero
//	    top: 2000
//	    attrs:
//	      data-parallax: ""
//	      data-parallax-start: passBottom
//	    src: img/hero-small.png
//	    sources:
//	      - media: "(min-width: 1024px)"
//	        src: img/hero-large.png
//
// Page implements parallax.Document, its Viewport implements
// parallax.Viewport, and every Element implements parallax.Element with a
// canvas.Canvas as surface.
package page
