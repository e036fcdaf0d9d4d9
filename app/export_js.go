// SPDX-License-Identifier: Unlicense OR MIT

//go:build js && wasm

package app

import (
	"log/slog"
	"syscall/js"
	"time"

	"gioui.org/x/gesturegate/gesture"
	"gioui.org/x/gesturegate/locale"
)

// Export registers a JavaScript function name(map, options) that
// attaches gesture handling to a Leaflet map. The returned object
// has enable, disable and remove methods.
//
// Recognized options are duration in milliseconds, locale, text
// with touch, scroll and scrollMac strings, and localesURL, the base
// URL of additional locale records. Option fullscreen defaults to
// true, which suspends gesture handling while the map is fullscreen;
// false keeps it active in fullscreen.
func Export(name string) {
	f := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) == 0 || !args[0].Truthy() {
			return js.Null()
		}
		var opts js.Value
		if len(args) > 1 {
			opts = args[1]
		}
		g := Attach(args[0], optionsOf(opts))
		return handle(g)
	})
	js.Global().Set(name, f)
}

func optionsOf(v js.Value) gesture.Options {
	opts := gesture.Options{Logger: slog.Default()}
	if v.Type() != js.TypeObject {
		return opts
	}
	if d := v.Get("duration"); d.Type() == js.TypeNumber {
		opts.Duration = time.Duration(d.Float() * float64(time.Millisecond))
	}
	opts.Locale = stringOf(v.Get("locale"))
	if t := v.Get("text"); t.Type() == js.TypeObject {
		opts.Text = locale.Content{
			Touch:     stringOf(t.Get("touch")),
			Scroll:    stringOf(t.Get("scroll")),
			ScrollMac: stringOf(t.Get("scrollMac")),
		}
	}
	// fullscreen: false means the gate stays on in fullscreen.
	if fs := v.Get("fullscreen"); fs.Type() == js.TypeBoolean {
		opts.StayOnFullscreen = !fs.Bool()
	}
	if u := stringOf(v.Get("localesURL")); u != "" {
		opts.Platform = navigatorPlatform()
		opts.Resolver = locale.Chain{
			Loader:   locale.Layers{locale.HTTP{BaseURL: u}, locale.Bundled},
			Platform: opts.Platform,
			Logger:   opts.Logger,
		}
	}
	return opts
}

func handle(g *gesture.Gate) js.Value {
	h := js.Global().Get("Object").New()
	var funcs []js.Func
	method := func(name string, f func()) {
		jsf := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			f()
			return nil
		})
		funcs = append(funcs, jsf)
		h.Set(name, jsf)
	}
	method("enable", g.Enable)
	method("disable", g.Disable)
	enabled := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		return g.Enabled()
	})
	funcs = append(funcs, enabled)
	h.Set("enabled", enabled)
	method("remove", func() {
		g.Close()
		for _, f := range funcs {
			f.Release()
		}
	})
	return h
}
