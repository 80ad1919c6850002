// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/gogpu/parallax"
)

type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

// Attach subscribes reg to window scroll, touchstart, deviceorientation,
// resize and orientationchange events and runs Registry.Frame on every
// animation frame. The returned function removes the listeners, stops the
// frame loop and closes reg.
func Attach(reg *parallax.Registry) (detach func()) {
	win := js.Global()
	var ls []listener
	on := func(event string, fn func(args []js.Value)) {
		f := js.FuncOf(func(_ js.Value, args []js.Value) any {
			fn(args)
			return nil
		})
		win.Call("addEventListener", event, f, map[string]any{"passive": true})
		ls = append(ls, listener{target: win, event: event, fn: f})
	}

	on("scroll", func([]js.Value) { reg.Scroll() })
	on("touchstart", func([]js.Value) { reg.Touch() })
	on("deviceorientation", func(args []js.Value) {
		if len(args) == 0 {
			return
		}
		ev := args[0]
		reg.Orientation(floatOr(ev.Get("beta"), 0), floatOr(ev.Get("gamma"), 0))
	})
	on("resize", func([]js.Value) { reg.Resize() })
	on("orientationchange", func([]js.Value) { reg.Resize() })

	stopped := false
	var handle js.Value
	var frame js.Func
	frame = js.FuncOf(func(js.Value, []js.Value) any {
		if stopped {
			return nil
		}
		reg.Frame()
		handle = win.Call("requestAnimationFrame", frame)
		return nil
	})
	handle = win.Call("requestAnimationFrame", frame)

	return func() {
		if stopped {
			return
		}
		stopped = true
		win.Call("cancelAnimationFrame", handle)
		frame.Release()
		for _, l := range ls {
			l.target.Call("removeEventListener", l.event, l.fn)
			l.fn.Release()
		}
		reg.Close()
	}
}
