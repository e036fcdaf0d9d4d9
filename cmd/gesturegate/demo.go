// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gioui.org/x/gesturegate/f32"
	"gioui.org/x/gesturegate/gesture"
	"gioui.org/x/gesturegate/internal/record"
	"gioui.org/x/gesturegate/io/key"
	"gioui.org/x/gesturegate/io/pointer"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run an interactive map in the terminal",
	Long: `Run an interactive map in the terminal. The mouse wheel scrolls
the page unless ctrl is held, dragging moves the map once the mouse
is over it, t sends a one finger touch, T a two finger touch, f
toggles fullscreen, d toggles gesture handling and q quits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("demo needs a terminal")
		}
		return runDemo(cfg)
	},
}

// syncHost guards a recording host shared with the timer goroutines.
// Tap calls are dropped when the host has no tap handler.
type syncHost struct {
	mu sync.Mutex
	h  gesture.Host
}

// hostState is a snapshot of the map handlers.
type hostState struct {
	Dragging, ScrollZoom, Tap, HasTap bool
}

// syncViewport guards a recording viewport and remembers when the
// warning was last hidden.
type syncViewport struct {
	mu  sync.Mutex
	vp  record.Viewport
	off time.Time
}

// demo is the state of the terminal map.
type demo struct {
	screen tcell.Screen
	host   *syncHost
	vp     *syncViewport
	src    *record.Source
	gate   *gesture.Gate
	dur    time.Duration

	box        rect
	inside     bool
	pressed    bool
	fullscreen bool
	scrolled   int
	zoom       int
	status     string
}

type rect struct {
	x0, y0, x1, y1 int
}

var (
	pageColor = colorful.Color{R: 0.08, G: 0.08, B: 0.1}
	mapColor  = colorful.Color{R: 0.55, G: 0.72, B: 0.55}
	warnColor = colorful.Color{R: 0.1, G: 0.1, B: 0.12}
)

func (h *syncHost) SetDraggingEnabled(enable bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.h.SetDraggingEnabled(enable)
}

func (h *syncHost) SetScrollZoomEnabled(enable bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.h.SetScrollZoomEnabled(enable)
}

func (h *syncHost) SetTapEnabled(enable bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if t, ok := h.h.(gesture.TapHost); ok {
		t.SetTapEnabled(enable)
	}
}

func (h *syncHost) Rotated() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.h.(gesture.RotatableHost)
	return ok && r.Rotated()
}

func (h *syncHost) Version() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.h.(gesture.VersionedHost); ok {
		return v.Version()
	}
	return ""
}

func (h *syncHost) state() hostState {
	h.mu.Lock()
	defer h.mu.Unlock()
	var st hostState
	st.Dragging, st.ScrollZoom, st.Tap, st.HasTap = hostStateOf(h.h)
	return st
}

func (v *syncViewport) AddClass(class string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vp.AddClass(class)
}

func (v *syncViewport) RemoveClass(class string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if class == gesture.ClassWarning && v.vp.HasClass(class) {
		v.off = time.Now()
	}
	v.vp.RemoveClass(class)
}

func (v *syncViewport) SetAttribute(name, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vp.SetAttribute(name, value)
}

func (v *syncViewport) Attached() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.vp.Attached()
}

// overlay returns the warning kind on display and its opacity.
func (v *syncViewport) overlay(dur time.Duration) (gesture.Kind, float64, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	var k gesture.Kind
	switch {
	case v.vp.HasClass(gesture.ClassTouch):
		k = gesture.KindTouch
	case v.vp.HasClass(gesture.ClassScroll):
		k = gesture.KindScroll
	default:
		return 0, 0, false
	}
	if v.vp.HasClass(gesture.ClassWarning) {
		return k, 1, true
	}
	a := 1 - float64(time.Since(v.off))/float64(dur)
	if a < 0 {
		a = 0
	}
	return k, a, true
}

func (v *syncViewport) classes() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.vp.Classes()
}

func runDemo(c Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	d := &demo{
		screen: screen,
		host:   &syncHost{h: c.host()},
		vp:     new(syncViewport),
		src:    new(record.Source),
	}
	// The screen owns the terminal; keep log lines off it.
	opts := c.options(nil)
	d.gate = gesture.New(d.host, d.vp, d.src, opts)
	d.dur = opts.Duration
	if d.dur == 0 {
		d.dur = gesture.DefaultDuration
	}
	d.gate.Enable()
	defer d.gate.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(50 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				screen.PostEvent(tcell.NewEventInterrupt(nil))
			case <-done:
				return
			}
		}
	}()

	for {
		d.layout()
		d.draw()
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if !d.key(ev) {
				return nil
			}
		case *tcell.EventMouse:
			d.mouse(ev)
		}
	}
}

func (d *demo) layout() {
	w, h := d.screen.Size()
	if d.fullscreen {
		d.box = rect{0, 0, w, h - 2}
		return
	}
	d.box = rect{w / 6, 3, w - w/6, h - 4}
}

// key handles a key press and reports whether the demo goes on.
func (d *demo) key(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}
	switch ev.Rune() {
	case 'q':
		return false
	case 't':
		d.touch(1)
	case 'T':
		d.touch(2)
	case 'f':
		d.fullscreen = !d.fullscreen
		kind := gesture.MapEnterFullscreen
		if !d.fullscreen {
			kind = gesture.MapExitFullscreen
		}
		d.src.Emit(gesture.MapEvent{Kind: kind})
		d.status = kind.String()
	case 'd':
		if d.gate.Enabled() {
			d.gate.Disable()
			d.status = "gesture handling off"
		} else {
			d.gate.Enable()
			d.status = "gesture handling on"
		}
	}
	return true
}

// touch simulates a swipe with the given number of fingers.
func (d *demo) touch(fingers int) {
	now := time.Duration(time.Now().UnixNano())
	prevented := false
	for _, k := range []pointer.Kind{pointer.Press, pointer.Move, pointer.Release} {
		n := fingers
		if k == pointer.Release {
			n = 0
		}
		if d.src.Emit(pointer.Event{Kind: k, Source: pointer.Touch, Touches: n, Time: now}) {
			prevented = true
		}
	}
	if d.host.state().Dragging {
		d.status = fmt.Sprintf("%d finger swipe moved the map", fingers)
	} else {
		d.status = fmt.Sprintf("%d finger swipe scrolled the page", fingers)
	}
	if prevented {
		d.status += " (page scroll prevented)"
	}
}

func (d *demo) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	in := d.box.contains(x, y)
	now := time.Duration(time.Now().UnixNano())
	if in != d.inside {
		d.inside = in
		kind := pointer.Leave
		if in {
			kind = pointer.Enter
		}
		d.src.Emit(pointer.Event{Kind: kind, Source: pointer.Mouse, Time: now})
	}
	btn := ev.Buttons()
	switch {
	case btn&(tcell.WheelUp|tcell.WheelDown) != 0:
		if !in {
			d.scrolled++
			return
		}
		dy := float32(1)
		if btn&tcell.WheelUp != 0 {
			dy = -1
		}
		e := pointer.Event{
			Kind:      pointer.Scroll,
			Source:    pointer.Mouse,
			Time:      now,
			Scroll:    f32.Pt(0, dy*100),
			Modifiers: modifiers(ev.Modifiers()),
		}
		if d.src.Emit(e) && d.host.state().ScrollZoom {
			d.zoom -= int(dy)
			d.status = fmt.Sprintf("zoom %d", d.zoom)
		} else {
			d.scrolled++
			d.status = "page scrolled"
		}
	case btn&tcell.Button1 != 0:
		if !d.pressed && in && d.host.state().Dragging {
			d.pressed = true
			d.src.Emit(gesture.MapEvent{Kind: gesture.MapMoveStart})
		} else if d.pressed {
			d.src.Emit(gesture.MapEvent{Kind: gesture.MapMove})
			d.status = "map moved"
		}
	case btn == tcell.ButtonNone && d.pressed:
		d.pressed = false
		d.src.Emit(gesture.MapEvent{Kind: gesture.MapMoveEnd})
	}
}

func (d *demo) draw() {
	s := d.screen
	w, h := s.Size()
	page := style(pageColor, colorful.Color{R: 0.8, G: 0.8, B: 0.8})
	s.Fill(' ', page)
	if !d.fullscreen {
		drawText(s, 1, 1, page, fmt.Sprintf("page scrolled %d times", d.scrolled))
	}

	bg := mapColor
	text := ""
	if k, a, ok := d.vp.overlay(d.dur); ok && a > 0 {
		bg = mapColor.BlendLab(warnColor, a*0.8).Clamped()
		t := d.gate.Text()
		text = t.Touch
		if k == gesture.KindScroll {
			text = t.Scroll
		}
	}
	ms := style(bg, colorful.Color{R: 1, G: 1, B: 1})
	for y := d.box.y0; y < d.box.y1; y++ {
		for x := d.box.x0; x < d.box.x1; x++ {
			s.SetContent(x, y, ' ', nil, ms)
		}
	}
	if text != "" {
		cx := d.box.x0 + (d.box.x1-d.box.x0-len([]rune(text)))/2
		drawText(s, cx, (d.box.y0+d.box.y1)/2, ms, text)
	}
	drawText(s, d.box.x0+1, d.box.y0, ms, fmt.Sprintf("zoom %d", d.zoom))

	hs := d.host.state()
	tap := "none"
	if hs.HasTap {
		tap = fmt.Sprint(hs.Tap)
	}
	drawText(s, 0, h-2, page, fmt.Sprintf("dragging=%t zoom=%t tap=%s  %s", hs.Dragging, hs.ScrollZoom, tap, d.status))
	drawText(s, 0, h-1, page, truncate(strings.Join(d.vp.classes(), " "), w))
	s.Show()
}

func (r rect) contains(x, y int) bool {
	return r.x0 <= x && x < r.x1 && r.y0 <= y && y < r.y1
}

func style(bg, fg colorful.Color) tcell.Style {
	return tcell.StyleDefault.Background(color(bg)).Foreground(color(fg))
}

func color(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func drawText(s tcell.Screen, x, y int, st tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, st)
		x++
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

func modifiers(m tcell.ModMask) key.Modifiers {
	var mods key.Modifiers
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModCommand
	}
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	return mods
}
