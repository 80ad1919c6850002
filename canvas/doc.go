// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package canvas provides a parallax drawing surface backed by a gg
// software context.
//
// A Canvas plays the role of the HTML canvas element: the parallax
// instance sizes it to the image's natural size minus the configured
// offset, then repaints it with the image translated by the computed
// offset. The data flow is:
//
//	parallax.Instance -> Canvas.Paint -> gg.Context (CPU) -> host
//
// Hosts present the result by polling IsDirty and calling Flush, which
// returns a snapshot of the pixels and clears the dirty flag.
//
// # Thread Safety
//
// Canvas is NOT safe for concurrent use. It belongs to the event
// goroutine that drives its parallax instance.
package canvas
