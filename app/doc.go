// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app attaches gesture handling to Leaflet maps in the browser.

The package is only available when compiling for js/wasm. Attach
installs a gesture.Gate on a Leaflet map:

	m := js.Global().Get("L").Call("map", "map")
	g := app.Attach(m, gesture.Options{})
	defer g.Close()

The gate listens to the map container with native listeners rather
than through Leaflet's event layer, since Leaflet turns Android touch
events into pointer events.

Export makes Attach available to JavaScript:

	app.Export("gestureHandling")

after which a page can call gestureHandling(map, {duration: 1000}).
*/
package app
