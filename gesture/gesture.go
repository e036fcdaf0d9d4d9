// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture implements gesture handling for maps embedded in
scrollable pages.

A Gate watches the touch, wheel and mouse input of a map viewport and
decides, per event, whether the map may pan and zoom or whether the
input belongs to the page. Intercepted input raises a transient
warning on the viewport, such as "use two fingers to move the map".

The Gate never pans or zooms by itself. It switches the host map's
dragging, wheel zoom and tap handlers on and off through the Host
interface, and marks the viewport with CSS classes:

	leaflet-gesture-handling          while the gate is enabled
	leaflet-gesture-handling-warning  while a warning is showing
	leaflet-gesture-handling-touch    touch warning, kept during fade out
	leaflet-gesture-handling-scroll   scroll warning, kept during fade out

The warning texts are stored in the data-gesture-handling-touch-content
and data-gesture-handling-scroll-content attributes.
*/
package gesture

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"gioui.org/x/gesturegate/io/event"
	"gioui.org/x/gesturegate/io/pointer"
	"gioui.org/x/gesturegate/locale"
)

// Host is the map widget a Gate controls.
type Host interface {
	SetDraggingEnabled(enable bool)
	SetScrollZoomEnabled(enable bool)
}

// TapHost is implemented by hosts with a tap handler.
type TapHost interface {
	SetTapEnabled(enable bool)
}

// RotatableHost is implemented by hosts that can rotate the map.
// While rotated, shift+wheel zooms the map.
type RotatableHost interface {
	Rotated() bool
}

// VersionedHost is implemented by hosts that report their version,
// such as "1.7.1".
type VersionedHost interface {
	Version() string
}

// Viewport is the element the map draws into.
type Viewport interface {
	AddClass(class string)
	RemoveClass(class string)
	SetAttribute(name, value string)
	// Attached reports whether the viewport is still part of
	// the document.
	Attached() bool
}

// Clock schedules the warning timers.
type Clock interface {
	// AfterFunc runs f in its own goroutine after d. The
	// returned function stops the timer.
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// Options configure a Gate. The zero value is valid.
type Options struct {
	// Text overrides the warning texts. It is used only when
	// all three texts are set.
	Text locale.Content
	// Duration is how long a warning lingers after the last
	// matching event. Zero means DefaultDuration.
	Duration time.Duration
	// Locale is the language tag of the texts. Empty means the
	// platform's preferred language.
	Locale string
	// Resolver looks up texts. Nil means the bundled locales.
	Resolver locale.Resolver
	// Platform describes the user's browser.
	Platform locale.Platform
	// StayOnFullscreen keeps the gate enabled while the map is
	// fullscreen. By default entering fullscreen disables the
	// gate and leaving it enables the gate again.
	StayOnFullscreen bool
	// Fullscreen delivers MapEnterFullscreen and MapExitFullscreen.
	// It stays subscribed while the gate is disabled. Nil means the
	// source passed to New, which then stays subscribed as well.
	Fullscreen event.Source
	Logger     *slog.Logger
	// Clock defaults to the system clock.
	Clock Clock
}

// MapEvent is a lifecycle event of the host map.
type MapEvent struct {
	Kind MapKind
	// Popup delivers the input events of the popup content
	// for MapPopupOpen and MapPopupClose. It must be
	// comparable, such as a pointer.
	Popup event.Source
}

// MapKind is the kind of a MapEvent.
type MapKind uint8

// Kind is a gesture kind with its own warning.
type Kind uint8

// Gate decides which gestures reach a map.
type Gate struct {
	host Host
	vp   Viewport
	src  event.Source
	fsrc event.Source
	opts Options
	log  *slog.Logger
	// tapBroken is set for hosts and browsers affected by the
	// Safari tap bug.
	tapBroken bool

	mu       sync.Mutex
	enabled  bool
	closed   bool
	dragging bool
	text     locale.Content
	ready    chan struct{}
	cancel   context.CancelFunc

	touching  debounce
	scrolling debounce
	// fading drops the kind marker after a warning faded out.
	fading  [2]debounce
	warning [2]bool

	unsubscribe func()
	fullscreen  func()
	popups      map[event.Source]func()
}

const (
	MapMoveStart MapKind = iota
	MapMove
	MapMoveEnd
	MapPopupOpen
	MapPopupClose
	MapEnterFullscreen
	MapExitFullscreen
)

const (
	KindTouch Kind = iota
	KindScroll
)

// DefaultDuration is the default warning linger time.
const DefaultDuration = 1700 * time.Millisecond

const (
	ClassBase    = "leaflet-gesture-handling"
	ClassWarning = ClassBase + "-warning"
	ClassTouch   = ClassBase + "-touch"
	ClassScroll  = ClassBase + "-scroll"

	AttrTouchContent  = "data-gesture-handling-touch-content"
	AttrScrollContent = "data-gesture-handling-scroll-content"
)

// New returns a disabled Gate for the host map, its viewport and the
// source of viewport and host events.
func New(host Host, vp Viewport, src event.Source, opts Options) *Gate {
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Resolver == nil {
		opts.Resolver = locale.Chain{
			Loader:   locale.Bundled,
			Platform: opts.Platform,
			Logger:   log,
		}
	}
	fsrc := opts.Fullscreen
	if fsrc == nil {
		fsrc = src
	}
	g := &Gate{
		host:   host,
		vp:     vp,
		src:    src,
		fsrc:   fsrc,
		opts:   opts,
		log:    log,
		popups: make(map[event.Source]func()),
		ready:  make(chan struct{}),
	}
	g.tapBroken = tapBroken(host, opts.Platform.UserAgent)
	return g
}

// Enable installs the gate: the host interactions are disabled until
// a gesture allows them, and the gate starts receiving events.
// Enabling an enabled gate does nothing.
func (g *Gate) Enable() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.enabled || g.closed {
		return
	}
	g.enabled = true
	g.resolveText()
	g.disableInteractions()
	g.unsubscribe = g.src.Subscribe(g)
	if g.fullscreen != nil {
		g.fullscreen()
	}
	g.fullscreen = g.fsrc.Subscribe(fullscreenHandler{g})
	g.vp.AddClass(ClassBase)
	g.log.Debug("gesture handling enabled")
}

// Disable removes the gate and gives all interactions back to the
// host. Pending warnings are cleared. The gate keeps listening to
// Options.Fullscreen for MapExitFullscreen, so a gate disabled by
// entering fullscreen comes back when fullscreen ends.
func (g *Gate) Disable() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.disable()
}

func (g *Gate) disable() {
	if !g.enabled {
		return
	}
	g.enabled = false
	g.enableInteractions()
	g.unsubscribe()
	g.unsubscribe = nil
	for p, unsub := range g.popups {
		unsub()
		delete(g.popups, p)
	}
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.touching.stop()
	g.scrolling.stop()
	for i := range g.fading {
		g.fading[i].stop()
		g.warning[i] = false
	}
	if g.vp.Attached() {
		g.vp.RemoveClass(ClassWarning)
		g.vp.RemoveClass(ClassTouch)
		g.vp.RemoveClass(ClassScroll)
		g.vp.RemoveClass(ClassBase)
	}
	g.log.Debug("gesture handling disabled")
}

// Close disables the gate for good and stops listening for
// fullscreen changes.
func (g *Gate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.disable()
	g.closed = true
	if g.fullscreen != nil {
		g.fullscreen()
		g.fullscreen = nil
	}
}

// Enabled reports whether the gate is enabled.
func (g *Gate) Enabled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.enabled
}

// Dragging reports whether the host map is moving.
func (g *Gate) Dragging() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dragging
}

// Event implements event.Handler for the viewport and host events.
// It reports whether the default action of e must be prevented.
func (g *Gate) Event(e event.Event) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.enabled {
		return false
	}
	switch e := e.(type) {
	case pointer.Event:
		switch {
		case e.Kind == pointer.Scroll:
			return g.scroll(e)
		case e.Kind == pointer.Enter:
			g.enableInteractions()
		case e.Kind == pointer.Leave:
			if !g.dragging {
				g.disableInteractions()
			}
		case e.Source == pointer.Touch, e.Kind == pointer.Click:
			return g.touch(e)
		}
	case MapEvent:
		g.mapEvent(e)
	}
	return false
}

func (g *Gate) mapEvent(e MapEvent) {
	switch e.Kind {
	case MapMoveStart, MapMove:
		g.dragging = true
	case MapMoveEnd:
		g.dragging = false
	case MapPopupOpen:
		g.popupOpen(e.Popup)
	case MapPopupClose:
		g.popupClose(e.Popup)
	}
}

type fullscreenHandler struct {
	g *Gate
}

func (h fullscreenHandler) Event(e event.Event) bool {
	me, ok := e.(MapEvent)
	if !ok || h.g.opts.StayOnFullscreen {
		return false
	}
	switch me.Kind {
	case MapEnterFullscreen:
		h.g.Disable()
	case MapExitFullscreen:
		h.g.Enable()
	}
	return false
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

func (k Kind) String() string {
	switch k {
	case KindTouch:
		return "touch"
	case KindScroll:
		return "scroll"
	default:
		panic("invalid Kind")
	}
}

func (k Kind) class() string {
	return ClassBase + "-" + k.String()
}

func (k MapKind) String() string {
	switch k {
	case MapMoveStart:
		return "movestart"
	case MapMove:
		return "move"
	case MapMoveEnd:
		return "moveend"
	case MapPopupOpen:
		return "popupopen"
	case MapPopupClose:
		return "popupclose"
	case MapEnterFullscreen:
		return "enterFullscreen"
	case MapExitFullscreen:
		return "exitFullscreen"
	default:
		panic("invalid MapKind")
	}
}

func (MapEvent) ImplementsEvent() {}
