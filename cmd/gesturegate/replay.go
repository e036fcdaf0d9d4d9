// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gioui.org/x/gesturegate/gesture"
	"gioui.org/x/gesturegate/internal/record"
	"gioui.org/x/gesturegate/internal/vclock"
	"gioui.org/x/gesturegate/io/event"
	"gioui.org/x/gesturegate/io/key"
	"gioui.org/x/gesturegate/io/pointer"
	"gioui.org/x/gesturegate/locale"
)

// Trace is a recorded sequence of input events with the expected
// state of the map after each of them.
type Trace struct {
	Name string `yaml:"name"`
	// Options override the configuration file.
	Options TraceOptions `yaml:"options"`
	Steps   []Step       `yaml:"steps"`
}

// TraceOptions mirror the keys of the configuration file.
type TraceOptions struct {
	Duration         *Duration       `yaml:"duration"`
	Locale           *string         `yaml:"locale"`
	Platform         *string         `yaml:"platform"`
	UserAgent        *string         `yaml:"user_agent"`
	HostVersion      *string         `yaml:"host_version"`
	Rotate           *bool           `yaml:"rotate"`
	Tap              *bool           `yaml:"tap"`
	Text             *locale.Content `yaml:"text"`
	Locales          *string         `yaml:"locales"`
	LocalesURL       *string         `yaml:"locales_url"`
	StayOnFullscreen *bool           `yaml:"stay_on_fullscreen"`
}

// Step is a single event at a point in time.
type Step struct {
	// At is the time of the event since the start of the trace.
	At Duration `yaml:"at"`
	// Event names a DOM or map event such as "touchstart",
	// "wheel" or "movestart", or one of the actions "enable",
	// "disable", "detach". An empty event only advances time.
	Event   string   `yaml:"event"`
	Touches int      `yaml:"touches"`
	Target  []string `yaml:"target"`
	Mods    []string `yaml:"mods"`
	// Popup names the popup of popup events and of wheel
	// events over a popup.
	Popup  string  `yaml:"popup"`
	Expect *Expect `yaml:"expect"`
}

// Expect is the expected state after a step. Unset fields are not
// checked. Class names may omit the "leaflet-gesture-handling-"
// prefix, and "base" stands for the base class.
type Expect struct {
	Classes    *[]string         `yaml:"classes"`
	Has        []string          `yaml:"has"`
	Lacks      []string          `yaml:"lacks"`
	Enabled    *bool             `yaml:"enabled"`
	Dragging   *bool             `yaml:"dragging"`
	ScrollZoom *bool             `yaml:"scroll_zoom"`
	Tap        *bool             `yaml:"tap"`
	Prevented  *bool             `yaml:"prevented"`
	Attrs      map[string]string `yaml:"attrs"`
}

var replayCmd = &cobra.Command{
	Use:   "replay <trace.yaml>...",
	Short: "Replay input traces and check their expectations",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			t, err := loadTrace(path)
			if err != nil {
				return err
			}
			failures, err := replay(cmd.Context(), cmd.OutOrStdout(), t, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			for _, f := range failures {
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %s\n", path, f)
			}
			if len(failures) > 0 {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d traces failed", failed, len(args))
		}
		return nil
	},
}

// errUnknownEvent is returned for steps with an unknown event name.
var errUnknownEvent = errors.New("unknown event")

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	return d.UnmarshalText([]byte(n.Value))
}

func loadTrace(path string) (Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return Trace{}, err
	}
	defer f.Close()
	t, err := decodeTrace(f)
	if err != nil {
		return Trace{}, fmt.Errorf("failed to parse trace %s: %w", path, err)
	}
	if t.Name == "" {
		t.Name = path
	}
	return t, nil
}

// decodeTrace decodes a trace and rejects unknown keys.
func decodeTrace(r io.Reader) (Trace, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var t Trace
	if err := dec.Decode(&t); err != nil {
		return Trace{}, err
	}
	return t, nil
}

func (o TraceOptions) apply(c Config) Config {
	if o.Duration != nil {
		c.Duration = *o.Duration
	}
	if o.Locale != nil {
		c.Locale = *o.Locale
	}
	if o.Platform != nil {
		c.Platform = *o.Platform
	}
	if o.UserAgent != nil {
		c.UserAgent = *o.UserAgent
	}
	if o.HostVersion != nil {
		c.HostVersion = *o.HostVersion
	}
	if o.Rotate != nil {
		c.Rotate = *o.Rotate
	}
	if o.Tap != nil {
		c.Tap = *o.Tap
	}
	if o.Text != nil {
		c.Text = *o.Text
	}
	if o.Locales != nil {
		c.Locales = *o.Locales
	}
	if o.LocalesURL != nil {
		c.LocalesURL = *o.LocalesURL
	}
	if o.StayOnFullscreen != nil {
		c.StayOnFullscreen = *o.StayOnFullscreen
	}
	return c
}

// session is a gate wired to recording fakes.
type session struct {
	host   gesture.Host
	vp     *record.Viewport
	src    *record.Source
	clock  *vclock.Clock
	gate   *gesture.Gate
	popups map[string]*record.Source
}

func newSession(c Config) *session {
	s := &session{
		host:   c.host(),
		vp:     new(record.Viewport),
		src:    new(record.Source),
		clock:  new(vclock.Clock),
		popups: make(map[string]*record.Source),
	}
	opts := c.options(logger)
	opts.Clock = s.clock
	s.gate = gesture.New(s.host, s.vp, s.src, opts)
	return s
}

// enable enables the gate and waits for its texts.
func (s *session) enable(ctx context.Context) error {
	s.gate.Enable()
	return s.settle(ctx)
}

// settle waits for pending text lookups.
func (s *session) settle(ctx context.Context) error {
	select {
	case <-s.gate.Ready():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// replay runs t and returns the unmet expectations. Progress is
// written to w.
func replay(ctx context.Context, w io.Writer, t Trace, c Config) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	s := newSession(t.Options.apply(c))
	defer s.gate.Close()
	if err := s.enable(ctx); err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "trace %s\n", t.Name)
	var failures []string
	for i, st := range t.Steps {
		at := time.Duration(st.At)
		if at < s.clock.Now() {
			return nil, fmt.Errorf("step %d: time %s before %s", i, at, s.clock.Now())
		}
		s.clock.AdvanceTo(at)
		prevented, err := s.step(ctx, st)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		// Entering and leaving fullscreen re-enable the gate.
		if err := s.settle(ctx); err != nil {
			return nil, err
		}
		fmt.Fprintf(w, "%8s %-16s prevented=%-5t %s\n", at, st.Event, prevented, strings.Join(s.vp.Classes(), " "))
		if st.Expect != nil {
			for _, f := range s.check(*st.Expect, prevented) {
				failures = append(failures, fmt.Sprintf("step %d (%s at %s): %s", i, st.Event, at, f))
			}
		}
	}
	return failures, nil
}

// step delivers the event of st and reports whether its default
// action was prevented.
func (s *session) step(ctx context.Context, st Step) (bool, error) {
	var mods key.Modifiers
	for _, name := range st.Mods {
		m, ok := key.ParseModifier(name)
		if !ok {
			return false, fmt.Errorf("unknown modifier %q", name)
		}
		mods |= m
	}
	now := s.clock.Now()
	touch := func(k pointer.Kind) pointer.Event {
		return pointer.Event{
			Kind:      k,
			Source:    pointer.Touch,
			Touches:   st.Touches,
			Target:    pointer.Classes(st.Target),
			Time:      now,
			Modifiers: mods,
		}
	}
	mouse := func(k pointer.Kind) pointer.Event {
		return pointer.Event{
			Kind:      k,
			Source:    pointer.Mouse,
			Target:    pointer.Classes(st.Target),
			Time:      now,
			Modifiers: mods,
		}
	}
	var e event.Event
	switch st.Event {
	case "":
		return false, nil
	case "enable":
		return false, s.enable(ctx)
	case "disable":
		s.gate.Disable()
		return false, nil
	case "detach":
		s.vp.Detached = true
		return false, nil
	case "touchstart":
		e = touch(pointer.Press)
	case "touchmove":
		e = touch(pointer.Move)
	case "touchend":
		e = touch(pointer.Release)
	case "touchcancel":
		e = touch(pointer.Cancel)
	case "click":
		e = mouse(pointer.Click)
	case "mouseenter":
		e = mouse(pointer.Enter)
	case "mouseleave":
		e = mouse(pointer.Leave)
	case "wheel":
		pe := mouse(pointer.Scroll)
		pe.Scroll.Y = 100
		if st.Popup != "" {
			p, ok := s.popups[st.Popup]
			if !ok {
				return false, fmt.Errorf("wheel over unknown popup %q", st.Popup)
			}
			return p.Emit(pe), nil
		}
		e = pe
	default:
		me, ok := s.mapEvent(st)
		if !ok {
			return false, fmt.Errorf("%w %q", errUnknownEvent, st.Event)
		}
		e = me
	}
	return s.src.Emit(e), nil
}

func (s *session) mapEvent(st Step) (gesture.MapEvent, bool) {
	for k := gesture.MapMoveStart; k <= gesture.MapExitFullscreen; k++ {
		if k.String() != st.Event {
			continue
		}
		me := gesture.MapEvent{Kind: k}
		if k == gesture.MapPopupOpen || k == gesture.MapPopupClose {
			p, ok := s.popups[st.Popup]
			if !ok {
				p = new(record.Source)
				s.popups[st.Popup] = p
			}
			me.Popup = p
		}
		return me, true
	}
	return gesture.MapEvent{}, false
}

func (s *session) check(exp Expect, prevented bool) []string {
	var fails []string
	failf := func(format string, args ...interface{}) {
		fails = append(fails, fmt.Sprintf(format, args...))
	}
	if exp.Classes != nil {
		want := expandClasses(*exp.Classes)
		sort.Strings(want)
		got := s.vp.Classes()
		if strings.Join(got, " ") != strings.Join(want, " ") {
			failf("classes = %q; want %q", got, want)
		}
	}
	for _, c := range expandClasses(exp.Has) {
		if !s.vp.HasClass(c) {
			failf("missing class %s", c)
		}
	}
	for _, c := range expandClasses(exp.Lacks) {
		if s.vp.HasClass(c) {
			failf("unexpected class %s", c)
		}
	}
	for name, want := range exp.Attrs {
		if got, _ := s.vp.Attribute(name); got != want {
			failf("attribute %s = %q; want %q", name, got, want)
		}
	}
	dragging, zoom, tap, hasTap := hostStateOf(s.host)
	checkBool := func(name string, want *bool, got bool) {
		if want != nil && *want != got {
			failf("%s = %t; want %t", name, got, *want)
		}
	}
	checkBool("enabled", exp.Enabled, s.gate.Enabled())
	checkBool("dragging", exp.Dragging, dragging)
	checkBool("scroll_zoom", exp.ScrollZoom, zoom)
	checkBool("prevented", exp.Prevented, prevented)
	if exp.Tap != nil {
		if !hasTap {
			failf("tap expected but the host has no tap handler")
		} else {
			checkBool("tap", exp.Tap, tap)
		}
	}
	return fails
}

func hostStateOf(h gesture.Host) (dragging, zoom, tap, hasTap bool) {
	switch h := h.(type) {
	case *record.FullHost:
		return h.Dragging, h.ScrollZoom, h.Tap, true
	case *tapless:
		return h.Dragging, h.ScrollZoom, false, false
	case *record.Host:
		return h.Dragging, h.ScrollZoom, false, false
	}
	return false, false, false, false
}

func expandClasses(names []string) []string {
	classes := make([]string, 0, len(names))
	for _, n := range names {
		switch {
		case n == "base":
			n = gesture.ClassBase
		case !strings.HasPrefix(n, "leaflet-"):
			n = gesture.ClassBase + "-" + n
		}
		classes = append(classes, n)
	}
	return classes
}
